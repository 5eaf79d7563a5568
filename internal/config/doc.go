// Package config manages user-level settings stored at ~/.mcpinit/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the GitHub owner written into generated projects and the default preset.
package config
