package mcpserver

import (
	"context"

	"github.com/mcp-initiator/mcpinit/internal/branding"
	"github.com/mcp-initiator/mcpinit/internal/scaffold"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Options configures the tools registered on the server.
type Options struct {
	Generator *scaffold.Generator // Shared generator; a new one when nil
	Owner     string              // Owner used when a call names none
	Preset    string              // Preset used when a call names none
}

// New creates an MCP server with the scaffold tools registered.
func New(version string, opts Options) *mcp.Server {
	if opts.Generator == nil {
		opts.Generator = scaffold.NewGenerator()
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    branding.CLIName(),
		Title:   branding.DisplayName(),
		Version: version,
	}, nil)

	h := &handlers{opts: opts}
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_mcp_server",
		Description: "Create a new Python MCP server project skeleton at <directory>/<name> from a template preset.",
	}, h.createProject)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_presets",
		Description: "List the template presets available to create_mcp_server.",
	}, h.listPresets)

	return server
}

// Run creates an MCP server and runs it on the given transport.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string, opts Options, transport mcp.Transport) error {
	server := New(version, opts)
	return server.Run(ctx, transport)
}
