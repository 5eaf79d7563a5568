package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/apex/log"
	"github.com/mcp-initiator/mcpinit/internal/scaffold"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CreateInput is the argument object of create_mcp_server.
type CreateInput struct {
	Name      string `json:"name" jsonschema:"project name; letters, digits, hyphens and underscores only"`
	Directory string `json:"directory" jsonschema:"absolute path of the workspace directory that will contain the project"`
	Preset    string `json:"preset,omitempty" jsonschema:"template preset ID; see list_presets"`
	Owner     string `json:"owner,omitempty" jsonschema:"GitHub owner written into mcp.json, .fastmcp.json and pyproject.toml"`
	Overwrite bool   `json:"overwrite,omitempty" jsonschema:"replace an existing file or directory at the target path"`
}

// CreateOutput is the structured result of create_mcp_server.
type CreateOutput struct {
	BasePath string   `json:"base_path"`
	Preset   string   `json:"preset"`
	Replaced bool     `json:"replaced,omitempty"`
	Files    []string `json:"files,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// PresetInfo describes one preset in list_presets output.
type PresetInfo struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Dirs        []string `json:"dirs,omitempty"`
	Files       []string `json:"files,omitempty"`
}

// ListPresetsOutput is the structured result of list_presets.
type ListPresetsOutput struct {
	Presets []PresetInfo `json:"presets"`
}

type handlers struct {
	opts Options
}

func (h *handlers) createProject(ctx context.Context, req *mcp.CallToolRequest, in CreateInput) (*mcp.CallToolResult, CreateOutput, error) {
	if !filepath.IsAbs(in.Directory) {
		return nil, CreateOutput{}, fmt.Errorf("directory must be an absolute path, got %q", in.Directory)
	}
	if err := scaffold.ValidateProjectName(in.Name); err != nil {
		return nil, CreateOutput{}, err
	}

	preset := in.Preset
	if preset == "" {
		preset = h.opts.Preset
	}
	owner := in.Owner
	if owner == "" {
		owner = h.opts.Owner
	} else if err := scaffold.ValidateOwner(owner); err != nil {
		return nil, CreateOutput{}, err
	}

	result, err := h.opts.Generator.Generate(scaffold.Request{
		BasePath:    filepath.Join(in.Directory, in.Name),
		ProjectName: in.Name,
		Owner:       owner,
		Preset:      preset,
		Overwrite:   in.Overwrite,
	})
	if err != nil {
		return nil, CreateOutput{}, err
	}

	log.WithFields(log.Fields{
		"path":   result.BasePath,
		"preset": result.Preset,
		"files":  len(result.Files),
	}).Info("created project")

	out := CreateOutput{
		BasePath: result.BasePath,
		Preset:   result.Preset,
		Replaced: result.Replaced,
		Files:    result.Files,
		Warnings: result.Warnings,
	}
	return nil, out, nil
}

func (h *handlers) listPresets(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, ListPresetsOutput, error) {
	sets, err := scaffold.Presets()
	if err != nil {
		return nil, ListPresetsOutput{}, err
	}

	out := ListPresetsOutput{}
	for _, s := range sets {
		info := PresetInfo{ID: s.ID, Description: s.Description, Dirs: s.Dirs}
		for _, f := range s.Files {
			info.Files = append(info.Files, f.RelPath())
		}
		out.Presets = append(out.Presets, info)
	}
	return nil, out, nil
}
