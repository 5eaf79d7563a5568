package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed templates
var templateFS embed.FS

const (
	templatesDir  = "templates"
	indexFile     = "presets.yaml"
	templateExt   = ".tmpl"
	maxPresetSize = 20
)

// DefaultPreset is the preset used when a request names none.
const DefaultPreset = "full"

// TemplateSpec describes one file a preset emits.
type TemplateSpec struct {
	Path       []string // Relative path segments, e.g. ["src", "mcp.json"]
	Template   string   // Template name inside the embedded templates dir
	Body       string   // Template body with placeholder tokens
	Executable bool     // Add execute permission after writing
}

// RelPath returns the slash-separated relative path of the emitted file.
func (s TemplateSpec) RelPath() string {
	return path.Join(s.Path...)
}

// TemplateSet is one preset: directories created first, then files written
// in order. Sets returned by this package are shared and must not be modified.
type TemplateSet struct {
	ID          string
	Description string
	Dirs        []string // Slash-separated, relative to the base path
	Files       []TemplateSpec
}

type presetIndex struct {
	Presets []struct {
		ID          string   `yaml:"id"`
		Description string   `yaml:"description"`
		Dirs        []string `yaml:"dirs"`
		Files       []struct {
			Path       string `yaml:"path"`
			Template   string `yaml:"template"`
			Executable bool   `yaml:"executable"`
		} `yaml:"files"`
	} `yaml:"presets"`
}

var (
	registryOnce sync.Once
	registry     []*TemplateSet
	registryErr  error
)

// Presets returns every registered preset in index order.
func Presets() ([]*TemplateSet, error) {
	registryOnce.Do(func() {
		registry, registryErr = loadRegistry(templateFS)
	})
	return registry, registryErr
}

// PresetIDs returns the registered preset identifiers in index order.
func PresetIDs() []string {
	sets, err := Presets()
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(sets))
	for _, s := range sets {
		ids = append(ids, s.ID)
	}
	return ids
}

// LookupPreset returns the preset with the given ID.
func LookupPreset(id string) (*TemplateSet, error) {
	sets, err := Presets()
	if err != nil {
		return nil, err
	}
	for _, s := range sets {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownPreset, id, strings.Join(PresetIDs(), ", "))
}

// loadRegistry parses the preset index and reads every referenced template.
func loadRegistry(fsys fs.FS) ([]*TemplateSet, error) {
	raw, err := fs.ReadFile(fsys, path.Join(templatesDir, indexFile))
	if err != nil {
		return nil, fmt.Errorf("reading preset index: %w", err)
	}

	var idx presetIndex
	if err := yaml.Unmarshal(raw, &idx); err != nil {
		return nil, fmt.Errorf("parsing preset index: %w", err)
	}

	seen := make(map[string]bool)
	var sets []*TemplateSet
	for _, p := range idx.Presets {
		if p.ID == "" {
			return nil, fmt.Errorf("preset index: entry without id")
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("preset index: duplicate preset %q", p.ID)
		}
		seen[p.ID] = true

		if len(p.Files) > maxPresetSize {
			return nil, fmt.Errorf("preset %q: %d files exceeds limit of %d", p.ID, len(p.Files), maxPresetSize)
		}

		set := &TemplateSet{ID: p.ID, Description: p.Description}

		for _, d := range p.Dirs {
			if err := checkRelPath(d); err != nil {
				return nil, fmt.Errorf("preset %q: directory %w", p.ID, err)
			}
			set.Dirs = append(set.Dirs, d)
		}

		written := make(map[string]bool)
		for _, f := range p.Files {
			if err := checkRelPath(f.Path); err != nil {
				return nil, fmt.Errorf("preset %q: file %w", p.ID, err)
			}
			if written[f.Path] {
				return nil, fmt.Errorf("preset %q: file %q listed twice", p.ID, f.Path)
			}
			written[f.Path] = true

			body, err := fs.ReadFile(fsys, path.Join(templatesDir, f.Template+templateExt))
			if err != nil {
				return nil, fmt.Errorf("preset %q: reading template %s: %w", p.ID, f.Template, err)
			}

			set.Files = append(set.Files, TemplateSpec{
				Path:       strings.Split(f.Path, "/"),
				Template:   f.Template,
				Body:       string(body),
				Executable: f.Executable,
			})
		}

		sets = append(sets, set)
	}

	if len(sets) == 0 {
		return nil, fmt.Errorf("preset index: no presets defined")
	}
	return sets, nil
}

// checkRelPath rejects paths that would escape the base directory.
func checkRelPath(p string) error {
	if p == "" {
		return fmt.Errorf("path is empty")
	}
	if path.IsAbs(p) || path.Clean(p) != p || p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return fmt.Errorf("%q is not a clean relative path", p)
	}
	return nil
}
