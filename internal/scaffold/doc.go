// Package scaffold generates new MCP server projects from embedded templates.
// It powers the "mcpinit create" command and the create_mcp_server tool:
// a preset selects a closed set of directories and template files, the
// project name and owner are substituted literally into each template, and
// the rendered tree is written under a caller-supplied base path.
package scaffold
