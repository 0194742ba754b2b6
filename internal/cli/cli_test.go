// internal/cli/cli_test.go
package ccboard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/mwiater/ccboard/internal/appconfig"
	"github.com/mwiater/ccboard/internal/leaderboard"
	"github.com/mwiater/ccboard/internal/logging"
	"github.com/mwiater/ccboard/internal/view"
)

const sampleYAML = `models:
  model-a:
    baseline: { average: 2 }
    bm25: { average: 5, python: 6 }
  model-b:
    bm25: { average: 8 }
    oracle: { average: 10.5 }
`

func init() {
	color.NoColor = true
}

// testConfig writes doc to a temp root and returns a config that reads it
// through the root-relative default source.
func testConfig(t *testing.T, doc string) appconfig.Config {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "leaderboard.yml"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	cfg := appconfig.Defaults()
	cfg.Root = root
	cfg.Output = filepath.Join(t.TempDir(), "out", "leaderboard.html")
	return cfg
}

func TestRunRenderHTML(t *testing.T) {
	cfg := testConfig(t, sampleYAML)

	path, err := runRender(context.Background(), cfg, io.Discard)
	if err != nil {
		t.Fatalf("runRender error: %v", err)
	}
	if path != cfg.Output {
		t.Fatalf("expected path %q, got %q", cfg.Output, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	page := string(data)
	a := strings.Index(page, "model-a")
	b := strings.Index(page, "model-b")
	if a < 0 || b < 0 {
		t.Fatalf("expected both models in page")
	}
	if b > a {
		t.Fatalf("expected model-b before model-a")
	}
}

func TestRunRenderMarkdownToStdout(t *testing.T) {
	cfg := testConfig(t, sampleYAML)
	cfg.Format = "markdown"
	cfg.Output = "-"

	var out bytes.Buffer
	path, err := runRender(context.Background(), cfg, &out)
	if err != nil {
		t.Fatalf("runRender error: %v", err)
	}
	if path != "-" {
		t.Fatalf("expected stdout marker, got %q", path)
	}
	if !strings.Contains(out.String(), "| 1 | model-b | - | 8 | 10.5 |") {
		t.Fatalf("unexpected markdown:\n%s", out.String())
	}
}

func TestRunRenderFailureModes(t *testing.T) {
	t.Run("unsupported format", func(t *testing.T) {
		cfg := testConfig(t, sampleYAML)
		cfg.Format = "pdf"
		if _, err := runRender(context.Background(), cfg, io.Discard); err == nil {
			t.Fatal("expected error for unsupported format")
		}
	})

	t.Run("lenient renders header only", func(t *testing.T) {
		cfg := testConfig(t, "models: [")
		cfg.Output = "-"
		var out bytes.Buffer
		if _, err := runRender(context.Background(), cfg, &out); err != nil {
			t.Fatalf("expected lenient render, got %v", err)
		}
		if !strings.Contains(out.String(), view.DefaultTitle) {
			t.Fatalf("expected header in output")
		}
		if strings.Contains(out.String(), "data-rank") {
			t.Fatalf("expected no rows in output")
		}
	})

	t.Run("strict returns load error", func(t *testing.T) {
		cfg := testConfig(t, "models: [")
		cfg.Strict = true
		_, err := runRender(context.Background(), cfg, io.Discard)
		if !errors.Is(err, leaderboard.ErrParse) {
			t.Fatalf("expected ErrParse, got %v", err)
		}
	})
}

func TestRunValidate(t *testing.T) {
	cfg := testConfig(t, sampleYAML)
	var out bytes.Buffer
	if err := runValidate(context.Background(), cfg, &out); err != nil {
		t.Fatalf("runValidate error: %v", err)
	}
	if !strings.Contains(out.String(), "OK (2 models)") {
		t.Fatalf("unexpected output: %s", out.String())
	}
	if !strings.Contains(out.String(), "top: model-b (bm25 average 8)") {
		t.Fatalf("expected top model in output: %s", out.String())
	}
}

func TestRunValidateListsProblems(t *testing.T) {
	cfg := testConfig(t, "models:\n  a:\n    baseline: { average: 1 }\n  b:\n    bm25: {}\n")
	var out bytes.Buffer
	err := runValidate(context.Background(), cfg, &out)
	if !errors.Is(err, leaderboard.ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
	if !strings.Contains(out.String(), "problem(s)") {
		t.Fatalf("expected problem summary, got %s", out.String())
	}
	if strings.Count(out.String(), "  - ") < 2 {
		t.Fatalf("expected one line per violation, got %s", out.String())
	}
}

func TestRunList(t *testing.T) {
	cfg := testConfig(t, sampleYAML)
	var out bytes.Buffer
	if err := runList(context.Background(), cfg, &out); err != nil {
		t.Fatalf("runList error: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "python=6") {
		t.Fatalf("expected language breakdown, got:\n%s", text)
	}
	if strings.Index(text, "model-b") > strings.Index(text, "model-a") {
		t.Fatalf("expected model-b listed first:\n%s", text)
	}
}

func TestRunShowPlain(t *testing.T) {
	cfg := testConfig(t, sampleYAML)
	var out bytes.Buffer
	if err := runShow(context.Background(), cfg, &out, false); err != nil {
		t.Fatalf("runShow error: %v", err)
	}
	if !strings.Contains(out.String(), "oracle 10.5") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRunShowInteractiveUsesTUI(t *testing.T) {
	orig := runTUI
	t.Cleanup(func() { runTUI = orig })

	called := false
	runTUI = func(ctx context.Context, v *view.View) error {
		called = true
		if v.State() != view.StateNotLoaded {
			t.Fatalf("expected the program to load the view itself")
		}
		return nil
	}
	if err := runShow(context.Background(), testConfig(t, sampleYAML), io.Discard, true); err != nil {
		t.Fatalf("runShow error: %v", err)
	}
	if !called {
		t.Fatal("expected TUI to run")
	}
}

func TestLoadViewDebugDump(t *testing.T) {
	orig := debugOut
	t.Cleanup(func() { debugOut = orig })
	var dump bytes.Buffer
	debugOut = &dump

	cfg := testConfig(t, sampleYAML)
	cfg.Debug = true
	v := newView(cfg)
	loadView(context.Background(), cfg, v)

	if v.State() != view.StateLoaded {
		t.Fatalf("expected loaded state, got %s", v.State())
	}
	if !strings.Contains(dump.String(), "model-b") {
		t.Fatalf("expected parsed entries in debug dump, got %q", dump.String())
	}
}

func TestGetConfigDefaults(t *testing.T) {
	orig := currentConfig
	t.Cleanup(func() { currentConfig = orig })

	currentConfig = nil
	cfg := getConfig()
	if cfg.Source != appconfig.DefaultSource || cfg.Root != appconfig.DefaultRoot {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	custom := appconfig.Defaults()
	custom.Scale = 12
	currentConfig = &custom
	if got := getConfig().Scale; got != 12 {
		t.Fatalf("expected scale 12, got %v", got)
	}
}

func TestViewOptionsFromConfig(t *testing.T) {
	cfg := appconfig.Defaults()
	cfg.Title = "Custom"
	cfg.Scale = 0
	opts := viewOptions(cfg)
	if opts.Title != "Custom" {
		t.Fatalf("expected title override, got %q", opts.Title)
	}
	if opts.Scale != view.DefaultScale {
		t.Fatalf("expected default scale, got %v", opts.Scale)
	}
}

func TestEnsureConfigLoadedMergesFileUnderFlags(t *testing.T) {
	origFile := cfgFile
	t.Cleanup(func() {
		cfgFile = origFile
		_ = rootCmd.PersistentFlags().Set("scale", "30")
		rootCmd.PersistentFlags().Lookup("scale").Changed = false
		_ = ensureConfigLoadedFrom(t, origFile)
	})

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("source: data/lb.yml\nscale: 12\ntitle: From File\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ensureConfigLoadedFrom(t, path); err != nil {
		t.Fatalf("ensureConfigLoaded error: %v", err)
	}
	cfg, err := mergedConfig()
	if err != nil {
		t.Fatalf("mergedConfig error: %v", err)
	}
	if cfg.Source != "data/lb.yml" || cfg.Scale != 12 || cfg.Title != "From File" {
		t.Fatalf("expected file values, got %+v", cfg)
	}
	if cfg.ConfigPath != path {
		t.Fatalf("expected ConfigPath %q, got %q", path, cfg.ConfigPath)
	}

	if err := rootCmd.PersistentFlags().Set("scale", "7"); err != nil {
		t.Fatal(err)
	}
	cfg, err = mergedConfig()
	if err != nil {
		t.Fatalf("mergedConfig error: %v", err)
	}
	if cfg.Scale != 7 {
		t.Fatalf("expected flag to override file scale, got %v", cfg.Scale)
	}
}

func TestEnsureConfigLoadedMissingFileUsesDefaults(t *testing.T) {
	origFile := cfgFile
	t.Cleanup(func() {
		cfgFile = origFile
		_ = ensureConfigLoadedFrom(t, origFile)
	})

	if err := ensureConfigLoadedFrom(t, filepath.Join(t.TempDir(), "absent.json")); err != nil {
		t.Fatalf("expected missing file to be tolerated, got %v", err)
	}
	cfg, err := mergedConfig()
	if err != nil {
		t.Fatalf("mergedConfig error: %v", err)
	}
	if cfg.ConfigPath != "" || cfg.Source != appconfig.DefaultSource {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestEnsureConfigLoadedRejectsBadFile(t *testing.T) {
	origFile := cfgFile
	t.Cleanup(func() { cfgFile = origFile })

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"scale": -2}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ensureConfigLoadedFrom(t, path); err == nil {
		t.Fatal("expected error for negative scale in config file")
	}
}

func ensureConfigLoadedFrom(t *testing.T, path string) error {
	t.Helper()
	cfgFile = path
	return ensureConfigLoaded()
}

func TestExecuteClosesLogOnFailure(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "ccboard.log")
	flags := rootCmd.PersistentFlags()
	origConfig := currentConfig
	t.Cleanup(func() {
		currentConfig = origConfig
		for name, value := range map[string]string{"source": appconfig.DefaultSource, "log-file": "", "config": appconfig.DefaultConfigPath} {
			_ = flags.Set(name, value)
			flags.Lookup(name).Changed = false
		}
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		log.SetOutput(os.Stderr)
	})

	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{
		"validate",
		"--config", filepath.Join(dir, "absent.json"),
		"--source", "file://" + filepath.ToSlash(filepath.Join(dir, "missing.yml")),
		"--log-file", logPath,
	})
	if err := execute(); !errors.Is(err, leaderboard.ErrFetch) {
		t.Fatalf("expected ErrFetch from validate, got %v", err)
	}

	var after bytes.Buffer
	log.SetOutput(&after)
	logging.LogEvent("after close")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "after close") {
		t.Fatal("expected the log file to be closed after a failed command")
	}
}
