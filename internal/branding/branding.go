// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package before building; Go's
// //go:embed bakes it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	HomeDir       string `yaml:"home_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	DefaultOwner  string `yaml:"default_owner"`
	EditorCommand string `yaml:"editor_command"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:       "mcpinit",
			DisplayName:   "MCP Server Initiator",
			Description:   "Scaffold new Python MCP server projects",
			HomeDir:       ".mcpinit",
			EnvPrefix:     "MCPINIT",
			DefaultOwner:  "jasonshen190",
			EditorCommand: "code",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "mcpinit").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".mcpinit").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "MCPINIT").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// DefaultOwner returns the GitHub owner written into generated projects
// when neither a flag nor the config file supplies one.
func DefaultOwner() string { load(); return defaults.DefaultOwner }

// EditorCommand returns the executable used to open generated projects.
func EditorCommand() string { load(); return defaults.EditorCommand }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("OWNER") → "MCPINIT_OWNER".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
