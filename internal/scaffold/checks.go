package scaffold

import (
	"fmt"
	"path/filepath"

	"github.com/mcp-initiator/mcpinit/internal/manifest"
)

// checkManifests validates every generated manifest file and returns
// human-readable warnings. It never fails the generation.
func checkManifests(basePath string, set *TemplateSet, projectName string) []string {
	var warnings []string

	for _, spec := range set.Files {
		rel := spec.RelPath()
		if manifest.DetectKind(rel) == manifest.KindUnknown {
			continue
		}

		path := filepath.Join(basePath, filepath.FromSlash(rel))
		result, err := manifest.ValidateFile(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: could not validate: %v", rel, err))
			continue
		}
		for _, issue := range result.Issues {
			warnings = append(warnings, rel+": "+issue.String())
		}

		if result.Kind == manifest.KindPyProject {
			p, err := manifest.ParsePyProject(path)
			if err == nil && p.Project.Name != projectName {
				warnings = append(warnings, fmt.Sprintf("%s: project name %q does not match %q",
					rel, p.Project.Name, projectName))
			}
		}
	}

	return warnings
}
