package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/mcp-initiator/mcpinit/internal/config"
	"github.com/mcp-initiator/mcpinit/internal/manifest"
	"github.com/mcp-initiator/mcpinit/internal/platform"
	"github.com/mcp-initiator/mcpinit/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	createPreset    string
	createOwner     string
	createDir       string
	createOutputDir string
	createForce     bool
	createOpen      bool
)

func init() {
	createCmd.Flags().StringVarP(&createPreset, "preset", "p", "", "Template preset (default: config 'preset' or \"full\")")
	createCmd.Flags().StringVar(&createOwner, "owner", "", "GitHub owner written into the project (default: config 'owner')")
	createCmd.Flags().StringVarP(&createDir, "dir", "d", "", "Workspace directory the project folder is created in (default: config 'workspace' or cwd)")
	createCmd.Flags().StringVar(&createOutputDir, "output-dir", "", "Exact project directory (overrides --dir)")
	createCmd.Flags().BoolVarP(&createForce, "force", "f", false, "Overwrite an existing project directory without asking")
	createCmd.Flags().BoolVar(&createOpen, "open", false, "Open the new project in the configured editor")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Scaffold a new MCP server project",
	Long: `Create a new Python MCP server project from a built-in preset.

When no name is given and stdin is a terminal, you are prompted for one.
If the project directory already exists you are asked before it is replaced;
in non-interactive use pass --force.

Examples:
  mcpinit create my-mcp-server
  mcpinit create weather --preset minimal --dir ~/projects
  mcpinit create demo --output-dir /tmp/demo --force --open`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()
	interactive := isInteractive(in)

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		if !interactive {
			return fmt.Errorf("project name is required when stdin is not a terminal")
		}
		n, err := promptProjectName(in, out)
		if err != nil {
			return err
		}
		name = n
	}
	if err := scaffold.ValidateProjectName(name); err != nil {
		return err
	}
	if createOwner != "" {
		if err := scaffold.ValidateOwner(createOwner); err != nil {
			return err
		}
	}

	basePath, err := resolveBasePath(name)
	if err != nil {
		return err
	}

	preset := firstNonEmpty(createPreset, config.Get(config.KeyPreset), scaffold.DefaultPreset)
	owner := firstNonEmpty(createOwner, config.Owner())

	overwrite := createForce
	if !overwrite && interactive {
		if _, err := os.Lstat(basePath); err == nil {
			ok, err := confirmOverwrite(in, out, name)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Aborted; nothing was changed.")
				return nil
			}
			overwrite = true
		}
	}

	log.WithFields(log.Fields{
		"path":   basePath,
		"preset": preset,
		"owner":  owner,
	}).Debug("generating project")

	result, err := scaffold.Generate(scaffold.Request{
		BasePath:    basePath,
		ProjectName: name,
		Owner:       owner,
		Preset:      preset,
		Overwrite:   overwrite,
	})
	if err != nil {
		if errors.Is(err, scaffold.ErrTargetExists) && !interactive {
			return fmt.Errorf("%w (pass --force to replace it)", err)
		}
		return fmt.Errorf("creating MCP server: %w", err)
	}

	printResult(out, name, result)
	printNextSteps(out, result)

	if createOpen {
		editor := config.Get(config.KeyEditor)
		if err := platform.OpenFolder(editor, result.BasePath); err != nil {
			log.Warnf("could not open project: %v", err)
		}
	}
	return nil
}

// resolveBasePath picks the project directory from --output-dir, --dir,
// the configured workspace, or the current directory, in that order.
func resolveBasePath(name string) (string, error) {
	if createOutputDir != "" {
		return filepath.Abs(createOutputDir)
	}
	dir := firstNonEmpty(createDir, config.Get(config.KeyWorkspace))
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
		dir = wd
	}
	return filepath.Abs(filepath.Join(dir, name))
}

func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func promptProjectName(in io.Reader, out io.Writer) (string, error) {
	prompt := promptui.Prompt{
		Label:    "Name for your MCP server folder",
		Validate: scaffold.ValidateProjectName,
		Stdin:    io.NopCloser(in),
		Stdout:   nopWriteCloser{out},
	}
	name, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("reading project name: %w", err)
	}
	return name, nil
}

// confirmOverwrite asks before an existing folder is replaced. Declining
// returns false with no error.
func confirmOverwrite(in io.Reader, out io.Writer, name string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Folder %q already exists. Overwrite it", name),
		IsConfirm: true,
		Stdin:     io.NopCloser(in),
		Stdout:    nopWriteCloser{out},
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	return true, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func printResult(out io.Writer, name string, result *scaffold.Result) {
	green := color.New(color.FgGreen, color.Bold)
	if result.Replaced {
		green.Fprintf(out, "MCP server %q replaced at %s\n", name, result.BasePath)
	} else {
		green.Fprintf(out, "MCP server %q created at %s\n", name, result.BasePath)
	}
	for _, f := range result.Files {
		fmt.Fprintf(out, "  %s\n", f)
	}
	if len(result.Warnings) > 0 {
		yellow := color.New(color.FgYellow)
		yellow.Fprintln(out, "\nWarnings:")
		for _, w := range result.Warnings {
			yellow.Fprintf(out, "  - %s\n", w)
		}
	}
}

func printNextSteps(out io.Writer, result *scaffold.Result) {
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintf(out, "  1. cd %s\n", result.BasePath)
	fmt.Fprintln(out, "  2. pip install -r requirements.txt")
	if m, err := manifest.ParseFastMCP(filepath.Join(result.BasePath, ".fastmcp.json")); err == nil && m.Entry != "" {
		fmt.Fprintf(out, "  3. python %s\n", m.Entry)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
