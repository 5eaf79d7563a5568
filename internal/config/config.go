package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcp-initiator/mcpinit/internal/branding"
	"github.com/mcp-initiator/mcpinit/internal/scaffold"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyOwner     = "owner"
	KeyPreset    = "preset"
	KeyWorkspace = "workspace"
	KeyEditor    = "editor"
)

// Keys lists every key accepted by Set.
var Keys = []string{KeyOwner, KeyPreset, KeyWorkspace, KeyEditor}

// Dir returns the path to the config directory (~/.mcpinit/).
// The MCPINIT_HOME environment variable overrides it.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("HOME")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.mcpinit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyOwner, branding.DefaultOwner())
	viper.SetDefault(KeyEditor, branding.EditorCommand())

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Owner returns the GitHub owner substituted into generated projects.
func Owner() string {
	if owner := strings.TrimSpace(Get(KeyOwner)); owner != "" {
		return owner
	}
	return branding.DefaultOwner()
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys, ", "))
	}
	if key == KeyOwner {
		if err := scaffold.ValidateOwner(value); err != nil {
			return err
		}
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Source reports where the effective value of key comes from: "env",
// "file", "default" or "unset".
func Source(key string) string {
	switch {
	case os.Getenv(branding.EnvVar(strings.ToUpper(key))) != "":
		return "env"
	case viper.InConfig(key):
		return "file"
	case viper.IsSet(key):
		return "default"
	default:
		return "unset"
	}
}

// IsKnownKey reports whether key is one of Keys.
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}
