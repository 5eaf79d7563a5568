package manifest

import "path/filepath"

// Kind identifies which manifest format a file holds.
type Kind string

// Kind constants, detected from the file name.
const (
	KindUnknown      Kind = ""
	KindClientConfig Kind = "client-config"
	KindFastMCP      Kind = "fastmcp"
	KindPyProject    Kind = "pyproject"
)

// ClientConfig is an MCP client configuration (the mcpServers map read by
// Cursor, Claude Desktop and similar clients).
type ClientConfig struct {
	MCPServers map[string]ServerEntry `json:"mcpServers"`
}

// ServerEntry describes how a client launches or reaches one server.
type ServerEntry struct {
	Name        string            `json:"name,omitempty"`
	Description string            `json:"description,omitempty"`
	Command     string            `json:"command,omitempty"`
	Args        []string          `json:"args,omitempty"`
	Env         map[string]string `json:"env,omitempty"`
	URL         string            `json:"url,omitempty"`
	Transport   string            `json:"transport,omitempty"`
	Disabled    bool              `json:"disabled,omitempty"`
	AutoApprove []string          `json:"autoApprove,omitempty"`
}

// FastMCPManifest is the .fastmcp.json deployment descriptor.
type FastMCPManifest struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Branch  string   `json:"branch,omitempty"`
	Entry   string   `json:"entry"`
	Runtime string   `json:"runtime"`
	Files   []string `json:"files,omitempty"`
}

// PyProject holds the parts of pyproject.toml that generated projects rely on.
type PyProject struct {
	Project PyProjectMeta `toml:"project"`
}

// PyProjectMeta is the [project] table.
type PyProjectMeta struct {
	Name                 string              `toml:"name"`
	Version              string              `toml:"version"`
	Description          string              `toml:"description"`
	Authors              []PyProjectAuthor   `toml:"authors"`
	Readme               string              `toml:"readme"`
	RequiresPython       string              `toml:"requires-python"`
	Dependencies         []string            `toml:"dependencies"`
	OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	Scripts              map[string]string   `toml:"scripts"`
}

// PyProjectAuthor is one entry of project.authors.
type PyProjectAuthor struct {
	Name  string `toml:"name"`
	Email string `toml:"email,omitempty"`
}

// DetectKind returns the manifest kind for a file path based on its base name.
func DetectKind(path string) Kind {
	switch filepath.Base(path) {
	case "mcp.json", "mcp-local.json":
		return KindClientConfig
	case ".fastmcp.json":
		return KindFastMCP
	case "pyproject.toml":
		return KindPyProject
	default:
		return KindUnknown
	}
}
