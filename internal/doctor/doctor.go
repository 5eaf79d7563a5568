package doctor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/mcp-initiator/mcpinit/internal/config"
	"github.com/mcp-initiator/mcpinit/internal/scaffold"
	"go.yaml.in/yaml/v3"
)

// MinPython is the Python version constraint fastmcp installs under.
const MinPython = ">= 3.10"

// Status is the outcome of one check.
type Status string

const (
	StatusOK   Status = " OK "
	StatusMiss Status = "MISS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
	StatusFix  Status = "FIX "
)

// Check is one reported line.
type Check struct {
	Status  Status
	Subject string
	Detail  string
}

func (c Check) String() string {
	if c.Detail == "" {
		return fmt.Sprintf("[%s] %s", c.Status, c.Subject)
	}
	return fmt.Sprintf("[%s] %s: %s", c.Status, c.Subject, c.Detail)
}

// Report collects the checks of one run.
type Report struct {
	Checks []Check
}

// Problems returns the checks that reported a missing or failed item.
func (r *Report) Problems() []Check {
	var out []Check
	for _, c := range r.Checks {
		if c.Status == StatusMiss || c.Status == StatusFail {
			out = append(out, c)
		}
	}
	return out
}

// Options configures a doctor run. Zero values select the real environment.
type Options struct {
	Fix       bool   // Create a missing config directory
	ConfigDir string // Default: config.Dir()
	Python    string // Default: "python3"
	Editor    string // Default: config editor value

	LookPath func(file string) (string, error)
	Output   func(name string, args ...string) ([]byte, error)
}

func (o *Options) defaults() {
	if o.ConfigDir == "" {
		o.ConfigDir = config.Dir()
	}
	if o.Python == "" {
		o.Python = "python3"
	}
	if o.Editor == "" {
		o.Editor = config.Get(config.KeyEditor)
	}
	if o.LookPath == nil {
		o.LookPath = exec.LookPath
	}
	if o.Output == nil {
		o.Output = func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).CombinedOutput()
		}
	}
}

// Run executes every check, writing one line per check to w.
func Run(w io.Writer, opts Options) *Report {
	opts.defaults()
	r := &Report{}
	add := func(c Check) {
		r.Checks = append(r.Checks, c)
		fmt.Fprintf(w, "  %s\n", c)
	}

	fmt.Fprintln(w, "Configuration:")
	for _, c := range checkConfigDir(opts.ConfigDir, opts.Fix) {
		add(c)
	}
	add(checkConfigFile(filepath.Join(opts.ConfigDir, "config.yaml")))
	add(checkPresets())

	fmt.Fprintln(w, "Toolchain:")
	python := checkPython(opts)
	add(python)
	if python.Status == StatusOK || python.Status == StatusWarn {
		add(checkPip(opts))
	}
	add(checkEditor(opts))

	return r
}

func checkConfigDir(dir string, fix bool) []Check {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		if !fix {
			return []Check{{StatusWarn, dir, "does not exist (created on first 'config set')"}}
		}
		if mkErr := os.MkdirAll(dir, 0755); mkErr != nil {
			return []Check{{StatusFail, dir, fmt.Sprintf("could not create: %v", mkErr)}}
		}
		return []Check{{StatusMiss, dir, "did not exist"}, {StatusFix, dir, "created"}}
	}
	if err != nil {
		return []Check{{StatusFail, dir, err.Error()}}
	}
	if !info.IsDir() {
		return []Check{{StatusFail, dir, "exists but is not a directory"}}
	}
	return []Check{{StatusOK, dir, "exists"}}
}

// checkConfigFile parses the config file and flags keys mcpinit ignores.
func checkConfigFile(path string) Check {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Check{StatusOK, path, "not present, defaults in use"}
	}
	if err != nil {
		return Check{StatusFail, path, err.Error()}
	}

	var values map[string]interface{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return Check{StatusFail, path, fmt.Sprintf("invalid YAML: %v", err)}
	}

	var unknown []string
	for k := range values {
		if !config.IsKnownKey(k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Check{StatusWarn, path, fmt.Sprintf("unknown keys %v", unknown)}
	}
	return Check{StatusOK, path, fmt.Sprintf("%d keys set", len(values))}
}

func checkPresets() Check {
	sets, err := scaffold.Presets()
	if err != nil {
		return Check{StatusFail, "presets", err.Error()}
	}
	return Check{StatusOK, "presets", fmt.Sprintf("%d available", len(sets))}
}

var pythonVersionRe = regexp.MustCompile(`Python (\d+\.\d+(?:\.\d+)?)`)

func checkPython(opts Options) Check {
	if _, err := opts.LookPath(opts.Python); err != nil {
		return Check{StatusMiss, opts.Python, "not found on PATH"}
	}
	out, err := opts.Output(opts.Python, "--version")
	if err != nil {
		return Check{StatusFail, opts.Python, fmt.Sprintf("running --version: %v", err)}
	}

	m := pythonVersionRe.FindSubmatch(out)
	if m == nil {
		return Check{StatusWarn, opts.Python, fmt.Sprintf("unrecognized version output %q", out)}
	}
	v, err := semver.NewVersion(string(m[1]))
	if err != nil {
		return Check{StatusWarn, opts.Python, fmt.Sprintf("unparseable version %q", m[1])}
	}
	c, err := semver.NewConstraint(MinPython)
	if err != nil {
		return Check{StatusFail, opts.Python, err.Error()}
	}
	if !c.Check(v) {
		return Check{StatusWarn, opts.Python, fmt.Sprintf("%s does not satisfy %s", v, MinPython)}
	}
	return Check{StatusOK, opts.Python, v.String()}
}

func checkPip(opts Options) Check {
	if _, err := opts.Output(opts.Python, "-m", "pip", "--version"); err != nil {
		return Check{StatusMiss, "pip", fmt.Sprintf("%s -m pip is unavailable", opts.Python)}
	}
	return Check{StatusOK, "pip", "available"}
}

// checkEditor only warns; the editor is needed for 'create --open' alone.
func checkEditor(opts Options) Check {
	if opts.Editor == "" {
		return Check{StatusWarn, "editor", "no editor configured"}
	}
	path, err := opts.LookPath(opts.Editor)
	if err != nil {
		return Check{StatusWarn, opts.Editor, "not found on PATH ('create --open' will not work)"}
	}
	return Check{StatusOK, opts.Editor, path}
}
