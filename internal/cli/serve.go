package cli

import (
	"github.com/apex/log"
	"github.com/mcp-initiator/mcpinit/internal/config"
	"github.com/mcp-initiator/mcpinit/internal/mcpserver"
	"github.com/mcp-initiator/mcpinit/internal/scaffold"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an MCP server over stdio that creates MCP server projects",
	Long: `Run an MCP server on stdin/stdout exposing the create_mcp_server and
list_presets tools, so an MCP client can scaffold projects.

Example client configuration:
  {"mcpServers": {"mcpinit": {"command": "mcpinit", "args": ["serve"]}}}`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := mcpserver.Options{
			Generator: scaffold.NewGenerator(),
			Owner:     config.Owner(),
			Preset:    config.Get(config.KeyPreset),
		}
		log.WithField("version", buildVersion).Debug("serving MCP over stdio")
		return mcpserver.Run(cmd.Context(), buildVersion, opts, &mcp.StdioTransport{})
	},
}
