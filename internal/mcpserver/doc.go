// Package mcpserver exposes the scaffold generator as Model Context Protocol
// tools so AI agents can create MCP server projects. All tool calls share one
// scaffold.Generator, which serializes requests that target the same path.
package mcpserver
