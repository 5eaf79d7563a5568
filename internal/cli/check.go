package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mcp-initiator/mcpinit/internal/manifest"
	"github.com/spf13/cobra"
)

// skipDirs are never descended into when looking for manifests.
var skipDirs = map[string]bool{
	".git":         true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	"node_modules": true,
	"build":        true,
	"dist":         true,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Validate the manifests of an MCP server project",
	Long: `Validate mcp.json, mcp-local.json, .fastmcp.json and pyproject.toml files
found under dir (default: the current directory).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("checking %s: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}

		paths, err := findManifests(dir)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no manifests found under %s", dir)
		}

		out := cmd.OutOrStdout()
		green := color.New(color.FgGreen)
		red := color.New(color.FgRed)

		failed := 0
		for _, p := range paths {
			rel, _ := filepath.Rel(dir, p)
			rel = filepath.ToSlash(rel)

			result, err := manifest.ValidateFile(p)
			if err != nil {
				failed++
				red.Fprintf(out, "✗ %s\n", rel)
				fmt.Fprintf(out, "    %v\n", err)
				continue
			}
			if result.Valid {
				green.Fprintf(out, "✓ %s\n", rel)
				continue
			}
			failed++
			red.Fprintf(out, "✗ %s\n", rel)
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "    %s\n", issue)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d manifests failed validation", failed, len(paths))
		}
		return nil
	},
}

// findManifests returns the recognized manifest files under dir in walk order.
func findManifests(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if manifest.DetectKind(p) != manifest.KindUnknown {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return paths, nil
}
