// trigger.go implements the two post triggers: the "post-to-linkedin"
// command and the "share" icon trigger.
//
// Both read the active document and hand its text to the post handler. Only
// share insists on a markdown document; post-to-linkedin accepts whatever the
// user points it at, matching an editor command that runs on any open note.

package social

import (
	"errors"
	"fmt"

	"github.com/jpl-au/socialposts/cmd"
	"github.com/jpl-au/socialposts/extension"
	"github.com/jpl-au/socialposts/internal/document"
	"github.com/jpl-au/socialposts/internal/log"
	"github.com/jpl-au/socialposts/internal/notice"
	"github.com/jpl-au/socialposts/internal/post"
	"github.com/jpl-au/socialposts/internal/progress"
	"github.com/spf13/cobra"
)

// NoViewMessage is shown when a trigger fires without a markdown document.
const NoViewMessage = "No active markdown view"

func (e *Extension) newPostCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "post-to-linkedin [file]",
		Short: "Post current note to LinkedIn",
		Long: `Post the text of a note to LinkedIn through the configured MCP server.

  socialposts post-to-linkedin note.md          # post a file
  cat note.md | socialposts post-to-linkedin    # post piped text
  socialposts post-to-linkedin - < note.md      # read stdin explicitly
  socialposts post-to-linkedin note.md --dry-run

The note is sent verbatim with PUBLIC visibility to the post_to_linkedin
tool on the server named by "socialposts settings".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return e.trigger(c, args, SourceCommand, false)
		},
	}
	c.Flags().Bool(extension.FlagDryRun, false, "Show what would be posted without posting")
	return c
}

func (e *Extension) newShareCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "share [file]",
		Short: "Post to LinkedIn",
		Long: `Post a markdown note to LinkedIn. Same as post-to-linkedin, but the note
must be markdown (.md, .markdown); anything else shows "No active markdown
view" and nothing is posted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return e.trigger(c, args, SourceShare, true)
		},
	}
	c.Flags().Bool(extension.FlagDryRun, false, "Show what would be posted without posting")
	return c
}

// trigger resolves the active document and posts it. A failed post is
// reported by notice only; the command still succeeds.
func (e *Extension) trigger(c *cobra.Command, args []string, source string, requireMarkdown bool) error {
	src := document.Source{Stdin: cmd.In(), StdinIsTTY: cmd.StdinIsTerminal()}
	if len(args) > 0 {
		src.Path = args[0]
	}

	if requireMarkdown && src.Path != "" && src.Path != document.StdinPath && !document.IsMarkdown(src.Path) {
		return e.noView(source, src.Path)
	}

	doc, err := document.Read(src, e.ctx.Config().MaxContent())
	if errors.Is(err, document.ErrNoActiveDocument) {
		return e.noView(source, src.Path)
	}
	if err != nil {
		log.Event(source, "read").Detail("path", src.Path).Write(err)
		return cmd.PrintJSONError(err)
	}

	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)
	if dryRun {
		return e.preview(source, doc)
	}

	spin := progress.NewSpinner("Posting to LinkedIn")
	if !cmd.JSON() {
		spin.Start()
	}
	defer spin.Stop()

	p := post.New(e.ctx.Tools(), spinnerNotifier{spin, e.ctx.Notifier()}, e.ctx.Config(), source)
	res := p.Post(c.Context(), doc.Content)
	return cmd.PrintJSON(res)
}

// spinnerNotifier clears the spinner before the notice is shown.
type spinnerNotifier struct {
	spin *progress.Spinner
	next notice.Notifier
}

func (n spinnerNotifier) Notify(x notice.Notice) {
	n.spin.Stop()
	n.next.Notify(x)
}

// noView shows the no-document notice. Nothing is posted.
func (e *Extension) noView(source, path string) error {
	log.Event(source, "post").Detail("path", path).Write(document.ErrNoActiveDocument)
	e.ctx.Notifier().Notify(notice.Error(NoViewMessage, notice.DefaultDuration))
	return nil
}

// preview prints what would be sent without calling the tool.
func (e *Extension) preview(source string, doc document.Document) error {
	server := e.ctx.Config().MCPServer()
	payload := post.NewPayload(doc.Content)

	log.Event(source, "dry-run").Server(server).Tool(post.ToolName).Detail("chars", len(doc.Content)).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{
			"dry_run": true,
			"server":  server,
			"tool":    post.ToolName,
			"source":  doc.Name(),
			"payload": payload,
		})
	}

	w := cmd.Out()
	fmt.Fprintf(w, "Would call %s on %q with visibility %s (%d chars from %s)\n",
		post.ToolName, server, payload.Visibility, len(doc.Content), doc.Name())

	if cmd.StdoutIsTerminal() {
		if rendered, err := document.Render(doc.Content); err == nil {
			fmt.Fprint(w, rendered)
			return nil
		}
	}
	fmt.Fprintln(w, doc.Content)
	return nil
}
