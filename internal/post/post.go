// Package post sends a note's text to LinkedIn through the configured
// tool-invocation endpoint and tells the user how it went.
//
// Every outcome is caught here. Post never returns an error: it shows
// exactly one notice and reports a Result the caller may render.
package post

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jpl-au/socialposts/internal/log"
	"github.com/jpl-au/socialposts/internal/notice"
	"github.com/jpl-au/socialposts/internal/toolcall"
)

// ToolName is the remote tool every post is sent to.
const ToolName = "post_to_linkedin"

// VisibilityPublic is the only visibility posts are published with.
const VisibilityPublic = "PUBLIC"

// Notice texts.
const (
	SuccessMessage = "Successfully posted to LinkedIn!"
	FailurePrefix  = "Failed to post to LinkedIn: "
)

// Payload is the argument object sent to the tool.
type Payload struct {
	Text       string `json:"text"`
	Visibility string `json:"visibility"`
}

// NewPayload builds the fixed-shape payload for text.
func NewPayload(text string) Payload {
	return Payload{Text: text, Visibility: VisibilityPublic}
}

// Args returns the payload as tool arguments.
func (p Payload) Args() map[string]any {
	return map[string]any{"text": p.Text, "visibility": p.Visibility}
}

// Kind classifies a failed post.
type Kind string

const (
	// KindTool: the tool ran and flagged an error with a message.
	KindTool Kind = "tool"
	// KindMalformed: the tool flagged an error but gave no readable text.
	KindMalformed Kind = "malformed"
	// KindTransport: the call itself failed (connect, handshake, I/O).
	KindTransport Kind = "transport"
)

// ErrNoDetail is the message used when an error response carries no text.
var ErrNoDetail = errors.New("tool reported an error without details")

// Result is the outcome of one post attempt: Ok with the tool's reply, or
// Err with a Kind and message.
type Result struct {
	Attempt string `json:"attempt"`
	Server  string `json:"server"`
	OK      bool   `json:"ok"`
	Reply   string `json:"reply,omitempty"`
	Kind    Kind   `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}

// Err returns the failure as an error, or nil for a successful post.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return &Error{Kind: r.Kind, Message: r.Message}
}

// Error is a failed post.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("post failed (%s): %s", e.Kind, e.Message)
}

// Settings supplies the endpoint name at call time, so an edit made while
// the process runs applies to the next post.
type Settings interface {
	MCPServer() string
}

// Poster runs the post action.
type Poster struct {
	tools    toolcall.Caller
	notifier notice.Notifier
	settings Settings
	source   string
	newID    func() string
}

// New returns a Poster. source names the trigger in the audit log
// (e.g. "social:share").
func New(tools toolcall.Caller, notifier notice.Notifier, settings Settings, source string) *Poster {
	return &Poster{
		tools:    tools,
		notifier: notifier,
		settings: settings,
		source:   source,
		newID:    uuid.NewString,
	}
}

// Post sends text and shows the outcome. The context bounds the call; no
// timeout is added here.
func (p *Poster) Post(ctx context.Context, text string) Result {
	res := p.post(ctx, text)

	l := log.Event(p.source, "post").
		Attempt(res.Attempt).
		Server(res.Server).
		Tool(ToolName).
		Detail("chars", len(text))
	if res.OK {
		l.Write(nil)
		p.notifier.Notify(notice.Info(SuccessMessage, notice.SuccessDuration))
		return res
	}

	l.Detail("kind", string(res.Kind)).Write(res.Err())
	p.notifier.Notify(notice.Error(FailurePrefix+res.Message, notice.FailureDuration))
	return res
}

func (p *Poster) post(ctx context.Context, text string) (res Result) {
	res = Result{Attempt: p.newID(), Server: p.settings.MCPServer()}

	// A panicking Caller still ends in a failure notice.
	defer func() {
		if r := recover(); r != nil {
			res.OK = false
			res.Kind = KindTransport
			res.Message = fmt.Sprint(r)
		}
	}()

	resp, err := p.tools.UseTool(ctx, res.Server, ToolName, NewPayload(text).Args())
	if err != nil {
		res.Kind = KindTransport
		res.Message = err.Error()
		return res
	}
	if resp == nil {
		res.Kind = KindMalformed
		res.Message = "tool returned no response"
		return res
	}

	if resp.IsError {
		if len(resp.Content) == 0 || resp.Content[0].Type != "text" {
			res.Kind = KindMalformed
			res.Message = ErrNoDetail.Error()
			return res
		}
		res.Kind = KindTool
		res.Message = resp.Content[0].Text
		return res
	}

	res.OK = true
	res.Reply, _ = resp.Text()
	return res
}
