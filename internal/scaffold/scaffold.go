package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcp-initiator/mcpinit/internal/branding"
	"github.com/mcp-initiator/mcpinit/internal/platform"
)

// Request describes one generation.
type Request struct {
	BasePath    string // Directory to create; made absolute before use
	ProjectName string // Must satisfy ValidateProjectName
	Owner       string // GitHub owner; branding default when empty
	Preset      string // Preset ID; DefaultPreset when empty
	Overwrite   bool   // Remove an existing entry at BasePath first
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	BasePath string
	Preset   string
	Replaced bool     // An existing entry was removed before writing
	Dirs     []string // Slash-separated, relative to BasePath
	Files    []string // Slash-separated, relative to BasePath, in write order
	Warnings []string
}

// Generator materializes presets on disk. Calls for the same base path are
// serialized; calls for different paths run independently. The zero value is
// ready to use.
type Generator struct {
	locks pathLocks
}

// NewGenerator returns a Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

var defaultGenerator = NewGenerator()

// Generate runs req on the package-level Generator.
func Generate(req Request) (*Result, error) {
	return defaultGenerator.Generate(req)
}

// Generate validates req and writes the selected preset under req.BasePath.
//
// Validation failures and an existing target without Overwrite return before
// anything is touched. Once writing starts, a filesystem failure aborts the
// remaining steps and leaves the partial tree in place; the returned error is
// an *IOError naming the failing path.
func (g *Generator) Generate(req Request) (*Result, error) {
	if err := ValidateProjectName(req.ProjectName); err != nil {
		return nil, err
	}

	presetID := req.Preset
	if presetID == "" {
		presetID = DefaultPreset
	}
	set, err := LookupPreset(presetID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.BasePath) == "" {
		return nil, &IOError{Op: "resolve", Path: req.BasePath, Err: errors.New("base path is empty")}
	}
	basePath, err := filepath.Abs(req.BasePath)
	if err != nil {
		return nil, &IOError{Op: "resolve", Path: req.BasePath, Err: err}
	}

	owner := req.Owner
	if strings.TrimSpace(owner) == "" {
		owner = branding.DefaultOwner()
	}
	if err := ValidateOwner(owner); err != nil {
		return nil, err
	}

	unlock := g.locks.lock(basePath)
	defer unlock()

	result := &Result{
		BasePath: basePath,
		Preset:   set.ID,
	}

	_, err = os.Lstat(basePath)
	switch {
	case err == nil:
		if !req.Overwrite {
			return nil, fmt.Errorf("%w: %s", ErrTargetExists, basePath)
		}
		if err := os.RemoveAll(basePath); err != nil {
			return nil, &IOError{Op: "remove", Path: basePath, Err: err}
		}
		result.Replaced = true
	case !errors.Is(err, fs.ErrNotExist):
		return nil, &IOError{Op: "stat", Path: basePath, Err: err}
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return result, &IOError{Op: "mkdir", Path: basePath, Err: err}
	}

	for _, dir := range set.Dirs {
		dirPath := filepath.Join(basePath, filepath.FromSlash(dir))
		if err := os.MkdirAll(dirPath, 0755); err != nil {
			return result, &IOError{Op: "mkdir", Path: dirPath, Err: err}
		}
		result.Dirs = append(result.Dirs, dir)
	}

	for _, spec := range set.Files {
		outPath := filepath.Join(basePath, filepath.Join(spec.Path...))
		content := Render(spec.Body, req.ProjectName, owner)

		if err := os.WriteFile(outPath, []byte(content), 0644); err != nil {
			return result, &IOError{Op: "write", Path: outPath, Err: err}
		}
		if spec.Executable {
			if err := platform.MakeExecutable(outPath); err != nil {
				return result, &IOError{Op: "chmod", Path: outPath, Err: err}
			}
		}

		result.Files = append(result.Files, spec.RelPath())
	}

	result.Warnings = checkManifests(basePath, set, req.ProjectName)

	return result, nil
}
