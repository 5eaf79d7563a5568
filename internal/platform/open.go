package platform

import (
	"fmt"
	"os/exec"
)

// OpenFolder opens dir in a new window of the given editor command
// (e.g. "code"). It returns once the editor process has been started.
func OpenFolder(editor, dir string) error {
	if editor == "" {
		return fmt.Errorf("no editor command configured")
	}
	bin, err := exec.LookPath(editor)
	if err != nil {
		return fmt.Errorf("editor %q not found on PATH: %w", editor, err)
	}

	cmd := exec.Command(bin, openArgs(editor, dir)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", editor, err)
	}
	// The editor detaches; reap the launcher without blocking the caller.
	go cmd.Wait() //nolint:errcheck
	return nil
}

// openArgs returns the arguments that open dir in a new window. VS Code
// style editors take -n; anything else gets the directory alone.
func openArgs(editor, dir string) []string {
	switch editor {
	case "code", "code-insiders", "cursor", "codium":
		return []string{"-n", dir}
	default:
		return []string{dir}
	}
}
