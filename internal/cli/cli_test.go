package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NewTec-GmbH/lobster-rust/internal/config"
)

// Test Plan for CLI:
// - executeAnalysis writes the interchange file and counts its records
// - executeAnalysis fails for a missing root file without creating output
// - Positional arguments override configured paths
// - loadConfig reads an explicit config file
// - The logger honors --verbose
// - The progress reporter counts visited and failed files
// - Watch mode rewrites the output after a source change and stops on cancel
// - --activity is rejected
// - The version command prints the schema

func writeCrate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"main.rs": "mod util;\n\n// lobster-trace: cli.entry\nfn main() {}\n",
		"util.rs": "pub struct Helper;\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestExecuteAnalysis_WritesInterchangeFile(t *testing.T) {
	t.Parallel()

	dir := writeCrate(t)
	cfg := config.Default()
	cfg.SourceDir = dir
	cfg.Output = filepath.Join(t.TempDir(), "out.lobster")

	n, err := executeAnalysis(cfg, newLogger(&bytes.Buffer{}, false), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	content, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)

	var doc struct {
		Data []struct {
			Tag  string   `json:"tag"`
			Refs []string `json:"refs"`
		} `json:"data"`
		Generator string `json:"generator"`
		Schema    string `json:"schema"`
		Version   int    `json:"version"`
	}
	require.NoError(t, json.Unmarshal(content, &doc))
	assert.Equal(t, "lobster-rust", doc.Generator)
	assert.Equal(t, "lobster-imp-trace", doc.Schema)
	assert.Equal(t, 3, doc.Version)
	require.Len(t, doc.Data, 2)
	assert.Equal(t, "rust main.main", doc.Data[0].Tag)
	assert.Equal(t, []string{"req cli.entry"}, doc.Data[0].Refs)
	assert.Equal(t, "rust util.Helper", doc.Data[1].Tag)
}

func TestExecuteAnalysis_MissingRoot(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.SourceDir = t.TempDir()
	cfg.Output = filepath.Join(t.TempDir(), "out.lobster")

	_, err := executeAnalysis(cfg, newLogger(&bytes.Buffer{}, false), nil)
	require.Error(t, err)
	assert.NoFileExists(t, cfg.Output)
}

func TestApplyArgs(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	applyArgs(cfg, nil)
	assert.Equal(t, "./src/", cfg.SourceDir)
	assert.Equal(t, "rust.lobster", cfg.Output)

	applyArgs(cfg, []string{"crate/src"})
	assert.Equal(t, "crate/src", cfg.SourceDir)
	assert.Equal(t, "rust.lobster", cfg.Output)

	applyArgs(cfg, []string{"other/src", "other.lobster"})
	assert.Equal(t, "other/src", cfg.SourceDir)
	assert.Equal(t, "other.lobster", cfg.Output)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lib: true\noutput: lib.lobster\n"), 0644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Lib)
	assert.Equal(t, "lib.lobster", cfg.Output)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var quiet, loud bytes.Buffer
	newLogger(&quiet, false).Debug("hidden")
	newLogger(&loud, true).Debug("shown")

	assert.Empty(t, quiet.String())
	assert.Contains(t, loud.String(), "shown")
}

func TestCLIProgressReporter(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := NewCLIProgressReporter(&out, "src")
	p.OnFileStart(filepath.Join("src", "main.rs"))
	p.OnFileDone(filepath.Join("src", "main.rs"), nil)
	p.OnFileStart(filepath.Join("src", "gone.rs"))
	p.OnFileDone(filepath.Join("src", "gone.rs"), os.ErrNotExist)
	p.Finish()

	assert.Equal(t, 2, p.visited)
	assert.Equal(t, 1, p.failed)
	assert.Equal(t, "main.rs", p.relative(filepath.Join("src", "main.rs")))
}

func TestRootCmd_RejectsActivity(t *testing.T) {
	rootCmd.SetArgs([]string{"--activity"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	t.Cleanup(func() {
		activityFlag = false
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	assert.ErrorIs(t, err, ErrActivityUnsupported)
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetArgs([]string{"version"})
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "lobster-rust dev")
	assert.Contains(t, out.String(), "lobster-imp-trace v3")
}

// lineWriter hands every write to a channel.
type lineWriter chan string

func (w lineWriter) Write(p []byte) (int, error) {
	w <- string(p)
	return len(p), nil
}

func TestWatchAndRerun(t *testing.T) {
	t.Parallel()

	dir := writeCrate(t)
	cfg := config.Default()
	cfg.SourceDir = dir
	cfg.Output = filepath.Join(t.TempDir(), "out.lobster")

	ctx, cancel := context.WithCancel(context.Background())
	out := make(lineWriter, 8)
	done := make(chan error, 1)
	go func() {
		done <- watchAndRerun(ctx, cfg, newLogger(&bytes.Buffer{}, false), out)
	}()

	// Wait for watcher to initialize
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "util.rs"), []byte("pub struct Helper;\npub fn extra() {}\n"), 0644))

	select {
	case line := <-out:
		assert.Contains(t, line, "Written 3 items")
	case <-time.After(5 * time.Second):
		t.Fatal("analysis was not rerun")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
