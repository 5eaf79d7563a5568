package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ParseClientConfig reads an MCP client configuration file.
func ParseClientConfig(path string) (*ClientConfig, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return parseJSON[ClientConfig](data, path)
}

// ParseFastMCP reads a .fastmcp.json deployment manifest.
func ParseFastMCP(path string) (*FastMCPManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return parseJSON[FastMCPManifest](data, path)
}

// ParsePyProject reads a pyproject.toml file.
func ParsePyProject(path string) (*PyProject, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var p PyProject
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &p, nil
}

// parseJSON unmarshals JSON data into a typed manifest struct.
func parseJSON[T any](data []byte, path string) (*T, error) {
	var m T
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
