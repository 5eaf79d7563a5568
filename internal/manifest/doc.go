// Package manifest parses and validates the configuration manifests written
// into generated MCP server projects: MCP client configs (mcp.json,
// mcp-local.json), the FastMCP deployment manifest (.fastmcp.json) and
// pyproject.toml. JSON documents are checked against embedded JSON Schemas;
// version fields are checked as semantic versions.
package manifest
