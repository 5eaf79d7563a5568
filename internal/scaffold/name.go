package scaffold

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	projectNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	ownerPattern       = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]{0,38}$`)
)

// ValidateProjectName checks that name is non-empty after trimming and
// contains only letters, digits, hyphens and underscores.
func ValidateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidProjectName)
	}
	if !projectNamePattern.MatchString(name) {
		return fmt.Errorf("%w %q: can only contain letters, numbers, hyphens, and underscores",
			ErrInvalidProjectName, name)
	}
	return nil
}

// ValidateOwner checks that owner is a GitHub login: letters, digits and
// hyphens, starting with a letter or digit, at most 39 characters. The owner
// is substituted unescaped into JSON and TOML manifests.
func ValidateOwner(owner string) error {
	if owner == "" {
		return fmt.Errorf("%w: owner cannot be empty", ErrInvalidOwner)
	}
	if !ownerPattern.MatchString(owner) {
		return fmt.Errorf("%w %q: must be a GitHub login (letters, numbers and hyphens, up to 39 characters)",
			ErrInvalidOwner, owner)
	}
	return nil
}
