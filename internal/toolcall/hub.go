// hub.go implements Caller over mcp-go client sessions.
//
// Design: sessions are opened on first use and kept until Close. A CLI run
// makes one call, but serve can post many times and should not respawn the
// server subprocess each time. There is no retry: a failed connect or call
// is returned to the caller, which decides what the user sees.

package toolcall

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jpl-au/socialposts/internal/config"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerSource resolves endpoint names to server definitions.
// *config.Config satisfies it.
type ServerSource interface {
	Server(name string) (config.Server, error)
}

// Hub connects to MCP servers by name and calls their tools.
type Hub struct {
	src  ServerSource
	info mcp.Implementation

	mu       sync.Mutex
	sessions map[string]*client.Client
	inproc   map[string]*server.MCPServer
}

var _ Caller = (*Hub)(nil)

// NewHub returns a Hub resolving names against src. clientName and
// clientVersion are sent in the MCP initialize handshake.
func NewHub(src ServerSource, clientName, clientVersion string) *Hub {
	return &Hub{
		src:      src,
		info:     mcp.Implementation{Name: clientName, Version: clientVersion},
		sessions: make(map[string]*client.Client),
		inproc:   make(map[string]*server.MCPServer),
	}
}

// Attach registers an in-process server under name. Attached servers take
// precedence over configured definitions with the same name.
func (h *Hub) Attach(name string, s *server.MCPServer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inproc[name] = s
}

// UseTool implements Caller.
func (h *Hub) UseTool(ctx context.Context, serverName, tool string, args map[string]any) (*Response, error) {
	c, err := h.session(ctx, serverName)
	if err != nil {
		return nil, err
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = tool
	req.Params.Arguments = args

	res, err := c.CallTool(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call %s on %q: %w", tool, serverName, err)
	}
	return fromResult(res), nil
}

// ListTools returns the tools a server advertises.
func (h *Hub) ListTools(ctx context.Context, serverName string) ([]mcp.Tool, error) {
	c, err := h.session(ctx, serverName)
	if err != nil {
		return nil, err
	}
	res, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("list tools on %q: %w", serverName, err)
	}
	return res.Tools, nil
}

// Close ends every open session.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var errs []error
	for name, c := range h.sessions {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %q: %w", name, err))
		}
		delete(h.sessions, name)
	}
	return errors.Join(errs...)
}

// session returns the cached session for name, connecting on first use.
func (h *Hub) session(ctx context.Context, name string) (*client.Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.sessions[name]; ok {
		return c, nil
	}

	c, err := h.connect(name)
	if err != nil {
		return nil, err
	}

	// The session outlives this call, so its transport must not be torn
	// down when the caller's context ends.
	if err := c.Start(context.WithoutCancel(ctx)); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("start %q: %w", name, err)
	}

	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = h.info
	if _, err := c.Initialize(ctx, req); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("initialize %q: %w", name, err)
	}

	h.sessions[name] = c
	return c, nil
}

func (h *Hub) connect(name string) (*client.Client, error) {
	if s, ok := h.inproc[name]; ok {
		return client.NewInProcessClient(s)
	}

	if h.src == nil {
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownServer, name)
	}
	def, err := h.src.Server(name)
	if err != nil {
		return nil, err
	}

	switch def.Transport() {
	case config.TransportHTTP:
		c, err := client.NewStreamableHttpClient(def.URL, transport.WithHTTPHeaders(def.Headers))
		if err != nil {
			return nil, fmt.Errorf("connect %q: %w", name, err)
		}
		return c, nil
	default:
		env, err := environ(def.Env, def.EnvFile)
		if err != nil {
			return nil, fmt.Errorf("server %q: %w", name, err)
		}
		return client.NewClient(transport.NewStdio(def.Command, env, def.Args...)), nil
	}
}
