package scaffold

import "strings"

// Placeholder tokens recognized in template bodies.
const (
	ProjectNamePlaceholder = "{{PROJECT_NAME}}"
	OwnerPlaceholder       = "{{GITHUB_OWNER}}"
)

// Render substitutes the project name and owner into a template body.
// Substitution is a single literal pass: values are never rescanned, and
// there is no escaping or other template syntax.
func Render(body, projectName, owner string) string {
	r := strings.NewReplacer(
		ProjectNamePlaceholder, projectName,
		OwnerPlaceholder, owner,
	)
	return r.Replace(body)
}
