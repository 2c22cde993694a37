package mcpserver

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/germanamz/calcy/pkg/tools/toolbox"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPServer serves a ToolBox over the MCP protocol using the official MCP Go SDK.
type MCPServer struct {
	server *mcp.Server
	log    *slog.Logger
}

// Option configures an MCPServer.
type Option func(*mcp.ServerOptions)

// WithInstructions sets the usage hint clients receive during initialization.
func WithInstructions(text string) Option {
	return func(o *mcp.ServerOptions) { o.Instructions = text }
}

// New creates a new MCPServer with the given name and version. A nil logger
// discards output.
func New(name, version string, log *slog.Logger, opts ...Option) *MCPServer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	var so mcp.ServerOptions
	for _, opt := range opts {
		opt(&so)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version,
	}, &so)

	return &MCPServer{server: server, log: log}
}

// Register adds every tool in tb to the server.
func (s *MCPServer) Register(tb *toolbox.ToolBox) {
	for _, t := range tb.Tools() {
		s.server.AddTool(toSDKTool(t), s.toSDKHandler(tb, t.Name))
	}
}

// Serve starts serving MCP requests. It reads requests from in and writes
// responses to out. It blocks until ctx is cancelled or the transport closes.
func (s *MCPServer) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	transport := &mcp.IOTransport{
		Reader: io.NopCloser(in),
		Writer: nopWriteCloser{out},
	}

	return s.run(ctx, transport)
}

// run starts the server with the given transport. Exported via Serve for
// production use; called directly by tests with InMemoryTransport.
func (s *MCPServer) run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

// toSDKTool converts a toolbox.Tool to an SDK *mcp.Tool.
func toSDKTool(t toolbox.Tool) *mcp.Tool {
	return &mcp.Tool{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: t.InputSchema,
	}
}

// toSDKHandler routes an SDK tool call through tb.Call, which supplies the
// empty-object default for missing arguments. Handler errors are reported to
// the client as tool errors, not protocol errors.
func (s *MCPServer) toSDKHandler(tb *toolbox.ToolBox, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := tb.Call(ctx, name, req.Params.Arguments)
		if err != nil {
			s.log.WarnContext(ctx, "tool call failed",
				"tool", name,
				"duration", time.Since(start),
				"error", err,
			)
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
				IsError: true,
			}, nil
		}

		s.log.DebugContext(ctx, "tool call", "tool", name, "duration", time.Since(start))

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: result}},
		}, nil
	}
}

// nopWriteCloser wraps an io.Writer as an io.WriteCloser with a no-op Close.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
