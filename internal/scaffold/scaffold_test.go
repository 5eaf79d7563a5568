package scaffold

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFullPreset(t *testing.T) {
	ws := t.TempDir()
	base := filepath.Join(ws, "my-mcp-server")

	result, err := Generate(Request{
		BasePath:    base,
		ProjectName: "my-mcp-server",
		Owner:       "octocat",
		Preset:      "full",
	})
	require.NoError(t, err)

	assert.Equal(t, base, result.BasePath)
	assert.Equal(t, "full", result.Preset)
	assert.False(t, result.Replaced)
	assert.Equal(t, []string{"src", "src/components"}, result.Dirs)
	assert.Empty(t, result.Warnings)

	assertDir(t, base)
	assertDir(t, filepath.Join(base, "src"))
	assertDir(t, filepath.Join(base, "src", "components"))

	assert.Equal(t, presetFiles(t, "full"), result.Files)
	assert.ElementsMatch(t, result.Files, walkFiles(t, base))

	pyproject := readGenerated(t, base, "pyproject.toml")
	assert.Contains(t, pyproject, `name = "my-mcp-server"`)
	assert.Contains(t, pyproject, `{ name = "octocat" }`)
	assert.Contains(t, pyproject, `my-mcp-server = "src.demo_server:main"`)

	mcpJSON := readGenerated(t, base, "src/mcp.json")
	assert.Contains(t, mcpJSON, `"args": ["git+https://github.com/octocat/my-mcp-server.git@main"]`)

	fastmcp := readGenerated(t, base, ".fastmcp.json")
	assert.Contains(t, fastmcp, `"name": "octocat.my-mcp-server"`)

	gitignore := readGenerated(t, base, ".gitignore")
	assert.True(t, strings.HasSuffix(gitignore, "my-mcp-server.egg-info/\n"))

	server := readGenerated(t, base, "src/demo_server.py")
	assert.Contains(t, server, `mcp = FastMCP("my-mcp-server")`)

	assert.Equal(t, "", readGenerated(t, base, "src/__init__.py"))
}

func TestGenerateMinimalPreset(t *testing.T) {
	base := filepath.Join(t.TempDir(), "tiny")

	result, err := Generate(Request{BasePath: base, ProjectName: "tiny", Owner: "octocat", Preset: "minimal"})
	require.NoError(t, err)

	assert.Equal(t, []string{"src"}, result.Dirs)
	assert.Empty(t, result.Warnings)
	assert.ElementsMatch(t, presetFiles(t, "minimal"), walkFiles(t, base))

	_, err = os.Stat(filepath.Join(base, "src", "components"))
	assert.True(t, errors.Is(err, fs.ErrNotExist), "minimal preset must not create components/")

	assert.Contains(t, readGenerated(t, base, "pyproject.toml"), `tiny = "src.server:main"`)
	assert.Contains(t, readGenerated(t, base, "src/server.py"), `FastMCP("tiny")`)
}

// TestGenerateMatchesGolden compares every generated file byte for byte with
// testdata/golden/<preset>/<path>.golden, rendered for demo-server/octocat.
func TestGenerateMatchesGolden(t *testing.T) {
	for _, id := range PresetIDs() {
		t.Run(id, func(t *testing.T) {
			base := filepath.Join(t.TempDir(), "demo-server")
			_, err := Generate(Request{BasePath: base, ProjectName: "demo-server", Owner: "octocat", Preset: id})
			require.NoError(t, err)

			goldenDir := filepath.Join("testdata", "golden", id)
			var golden []string
			for _, rel := range walkFiles(t, goldenDir) {
				golden = append(golden, strings.TrimSuffix(rel, ".golden"))
			}
			assert.ElementsMatch(t, golden, walkFiles(t, base))

			for _, rel := range golden {
				want, err := os.ReadFile(filepath.Join(goldenDir, filepath.FromSlash(rel)+".golden"))
				require.NoError(t, err)
				got := readGenerated(t, base, rel)
				assert.Equal(t, string(want), got, rel)
				assert.NotContains(t, got, ProjectNamePlaceholder, rel)
				assert.NotContains(t, got, OwnerPlaceholder, rel)
			}
		})
	}
}

func TestGenerateDefaultsOwnerAndPreset(t *testing.T) {
	base := filepath.Join(t.TempDir(), "demo")
	result, err := Generate(Request{BasePath: base, ProjectName: "demo"})
	require.NoError(t, err)

	assert.Equal(t, DefaultPreset, result.Preset)
	assert.Contains(t, readGenerated(t, base, "src/mcp.json"), "github.com/jasonshen190/demo.git")
}

func TestGenerateExecutableScript(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no permission bits on Windows")
	}
	base := filepath.Join(t.TempDir(), "demo")
	_, err := Generate(Request{BasePath: base, ProjectName: "demo"})
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(base, "src", "setup_and_run.py"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestGenerateInvalidProjectName(t *testing.T) {
	for _, name := range []string{"", "  ", "my server", "a/b", "../escape"} {
		t.Run(name, func(t *testing.T) {
			ws := t.TempDir()
			base := filepath.Join(ws, "target")

			_, err := Generate(Request{BasePath: base, ProjectName: name})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidProjectName), "got %v", err)

			entries, err := os.ReadDir(ws)
			require.NoError(t, err)
			assert.Empty(t, entries, "nothing may be written")
		})
	}
}

func TestGenerateInvalidOwner(t *testing.T) {
	for _, owner := range []string{"a\"b", "two words", "-dash"} {
		t.Run(owner, func(t *testing.T) {
			ws := t.TempDir()
			base := filepath.Join(ws, "o")

			_, err := Generate(Request{BasePath: base, ProjectName: "o", Owner: owner})
			require.ErrorIs(t, err, ErrInvalidOwner)

			entries, err := os.ReadDir(ws)
			require.NoError(t, err)
			assert.Empty(t, entries, "nothing may be written")
		})
	}
}

func TestGenerateUnknownPreset(t *testing.T) {
	ws := t.TempDir()
	_, err := Generate(Request{BasePath: filepath.Join(ws, "demo"), ProjectName: "demo", Preset: "deluxe"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPreset))

	entries, err := os.ReadDir(ws)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerateEmptyBasePath(t *testing.T) {
	_, err := Generate(Request{BasePath: " ", ProjectName: "demo"})
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr), "got %v", err)
	assert.Equal(t, "resolve", ioErr.Op)
}

func TestGenerateTargetExists(t *testing.T) {
	base := filepath.Join(t.TempDir(), "demo")
	_, err := Generate(Request{BasePath: base, ProjectName: "demo", Owner: "first"})
	require.NoError(t, err)

	// Hand edits must survive a rejected second run.
	readme := filepath.Join(base, "README.md")
	require.NoError(t, os.WriteFile(readme, []byte("edited"), 0644))
	before := snapshot(t, base)

	_, err = Generate(Request{BasePath: base, ProjectName: "demo", Owner: "second"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTargetExists))
	assert.Contains(t, err.Error(), base)

	assert.Equal(t, before, snapshot(t, base))
}

func TestGenerateTargetExistsAsFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "demo")
	require.NoError(t, os.WriteFile(base, []byte("not a dir"), 0644))

	_, err := Generate(Request{BasePath: base, ProjectName: "demo"})
	assert.True(t, errors.Is(err, ErrTargetExists))

	data, err := os.ReadFile(base)
	require.NoError(t, err)
	assert.Equal(t, "not a dir", string(data))
}

func TestGenerateOverwriteReplacesTree(t *testing.T) {
	base := filepath.Join(t.TempDir(), "demo")
	require.NoError(t, os.MkdirAll(filepath.Join(base, "stale", "deep"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "stale", "deep", "old.txt"), []byte("old"), 0644))

	result, err := Generate(Request{BasePath: base, ProjectName: "demo", Overwrite: true})
	require.NoError(t, err)
	assert.True(t, result.Replaced)

	_, err = os.Stat(filepath.Join(base, "stale"))
	assert.True(t, errors.Is(err, fs.ErrNotExist), "stale entries must be removed")
	assert.ElementsMatch(t, presetFiles(t, DefaultPreset), walkFiles(t, base))
}

func TestGenerateOverwriteIsIdempotent(t *testing.T) {
	ws := t.TempDir()
	once := filepath.Join(ws, "once")
	twice := filepath.Join(ws, "twice")

	req := Request{ProjectName: "demo-server", Owner: "octocat", Overwrite: true}

	req.BasePath = once
	_, err := Generate(req)
	require.NoError(t, err)

	req.BasePath = twice
	_, err = Generate(req)
	require.NoError(t, err)
	_, err = Generate(req)
	require.NoError(t, err)

	assert.Equal(t, snapshot(t, once), snapshot(t, twice))
}

func TestGenerateOverwriteWithoutExistingTarget(t *testing.T) {
	base := filepath.Join(t.TempDir(), "demo")
	result, err := Generate(Request{BasePath: base, ProjectName: "demo", Overwrite: true})
	require.NoError(t, err)
	assert.False(t, result.Replaced)
}

func TestGenerateRelativeBasePath(t *testing.T) {
	ws := t.TempDir()
	t.Chdir(ws)

	result, err := Generate(Request{BasePath: "demo", ProjectName: "demo"})
	require.NoError(t, err)

	want, err := filepath.Abs("demo")
	require.NoError(t, err)
	assert.Equal(t, want, result.BasePath)
	assertDir(t, filepath.Join(ws, "demo", "src"))
}

func TestGenerateIOFailureReportsPath(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("needs a read-only directory")
	}
	ws := t.TempDir()
	require.NoError(t, os.Chmod(ws, 0555))
	t.Cleanup(func() { os.Chmod(ws, 0755) })

	base := filepath.Join(ws, "demo")
	_, err := Generate(Request{BasePath: base, ProjectName: "demo"})

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr), "got %v", err)
	assert.Equal(t, "mkdir", ioErr.Op)
	assert.Equal(t, base, ioErr.Path)
	assert.True(t, errors.Is(err, fs.ErrPermission))
}

func TestGenerateWarnsOnNonPEPName(t *testing.T) {
	base := filepath.Join(t.TempDir(), "_private")
	result, err := Generate(Request{BasePath: base, ProjectName: "_private", Preset: "minimal"})
	require.NoError(t, err)

	require.NotEmpty(t, result.Warnings)
	assert.True(t, strings.HasPrefix(result.Warnings[0], "pyproject.toml: /project/name"), result.Warnings[0])
}

func TestGeneratorSerializesSamePath(t *testing.T) {
	g := NewGenerator()
	base := filepath.Join(t.TempDir(), "demo")

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = g.Generate(Request{BasePath: base, ProjectName: "demo", Owner: "octocat", Overwrite: true})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 0, g.locks.size())

	ref := filepath.Join(t.TempDir(), "demo")
	_, err := g.Generate(Request{BasePath: ref, ProjectName: "demo", Owner: "octocat"})
	require.NoError(t, err)
	assert.Equal(t, snapshot(t, ref), snapshot(t, base))
}

func TestPathLocksExclusive(t *testing.T) {
	var l pathLocks

	unlockA := l.lock("/a")
	unlockB := l.lock("/b") // different path, does not block
	assert.Equal(t, 2, l.size())

	acquired := make(chan struct{})
	go func() {
		unlock := l.lock("/a")
		close(acquired)
		unlock()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock on /a acquired while held")
	default:
	}

	unlockA()
	<-acquired
	unlockB()
	assert.Equal(t, 0, l.size())
}

// ─── Test Helpers ──────────────────────────────────────────────────

func presetFiles(t *testing.T, id string) []string {
	t.Helper()
	set, err := LookupPreset(id)
	require.NoError(t, err)
	var files []string
	for _, spec := range set.Files {
		files = append(files, spec.RelPath())
	}
	return files
}

func readGenerated(t *testing.T, base, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(base, filepath.FromSlash(rel)))
	require.NoError(t, err, "reading %s", rel)
	return string(data)
}

func assertDir(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "%s is not a directory", path)
}

// walkFiles lists regular files under root as slash-separated relative paths.
func walkFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	return files
}

// snapshot maps every file under root to its content and mode.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	for _, rel := range walkFiles(t, root) {
		p := filepath.Join(root, filepath.FromSlash(rel))
		info, err := os.Stat(p)
		require.NoError(t, err)
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		out[rel] = info.Mode().Perm().String() + "\n" + string(data)
	}
	return out
}
