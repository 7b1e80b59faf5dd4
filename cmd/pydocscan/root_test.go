package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/nao1215/pydocscan/internal/config"
	"github.com/nao1215/pydocscan/internal/crawler"
	"github.com/nao1215/pydocscan/internal/report"
)

const docsRoot = `<html><body>
<div class="sphinxsidebarwrapper">
  <h3>Docs by version</h3>
  <ul>
    <li><a href="https://docs.python.org/3.14/">Python 3.14 (in development)</a></li>
    <li><a href="https://docs.python.org/3.13/">Python 3.13 (stable)</a></li>
    <li><a href="https://www.python.org/doc/versions/">All versions</a></li>
  </ul>
</div></body></html>`

// testEnv is an isolated pydocscan installation backed by a local site.
type testEnv struct {
	server     *httptest.Server
	hits       *atomic.Int32
	configPath string
	baseDir    string
	cacheDir   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	hits := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/3/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(docsRoot)) //nolint:errcheck
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "pydocscan.yaml")
	content := fmt.Sprintf(`urls:
  mainDoc: %[1]s/3/
  whatsNew: %[1]s/missing/
http:
  timeout: 5s
  retryMax: 0
`, server.URL)
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	return &testEnv{
		server:     server,
		hits:       hits,
		configPath: configPath,
		baseDir:    filepath.Join(dir, "data"),
		cacheDir:   filepath.Join(dir, "cache"),
	}
}

// run executes pydocscan with args plus the environment flags.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args,
		"--config", e.configPath,
		"--base-dir", e.baseDir,
		"--cache-dir", e.cacheDir,
	))

	err := cmd.Execute()
	return stdout.String(), err
}

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if !strings.HasPrefix(cmd.Use, "pydocscan") {
			t.Errorf("expected use to start with 'pydocscan', got %q", cmd.Use)
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("accepts every mode", func(t *testing.T) {
		t.Parallel()
		want := []string{"whats-new", "latest-versions", "download", "pep"}
		if strings.Join(cmd.ValidArgs, ",") != strings.Join(want, ",") {
			t.Errorf("unexpected valid args %v", cmd.ValidArgs)
		}
	})

	t.Run("has flags", func(t *testing.T) {
		t.Parallel()

		for name, shorthand := range map[string]string{"clear-cache": "c", "output": "o"} {
			flag := cmd.Flags().Lookup(name)
			if flag == nil {
				t.Fatalf("expected %s flag", name)
			}
			if flag.Shorthand != shorthand {
				t.Errorf("expected shorthand %q for %s, got %q", shorthand, name, flag.Shorthand)
			}
		}
		for _, name := range []string{"verbose", "quiet", "config", "base-dir", "cache-dir"} {
			if cmd.PersistentFlags().Lookup(name) == nil {
				t.Errorf("expected persistent %s flag", name)
			}
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()

		names := make(map[string]bool)
		for _, sub := range cmd.Commands() {
			names[sub.Name()] = true
		}
		for _, want := range []string{"history", "init", "version"} {
			if !names[want] {
				t.Errorf("expected subcommand %q", want)
			}
		}
	})
}

// TestRootCmdArgs tests argument and flag validation.
func TestRootCmdArgs(t *testing.T) {
	t.Parallel()

	t.Run("missing mode", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		if _, err := env.run(t); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("unknown mode", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		_, err := env.run(t, "changelog")
		if err == nil || !strings.Contains(err.Error(), `invalid argument "changelog"`) {
			t.Errorf("expected invalid argument error, got %v", err)
		}
		if env.hits.Load() != 0 {
			t.Error("no request should be made")
		}
	})

	t.Run("two modes", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		if _, err := env.run(t, "pep", "download"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("unknown output", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		_, err := env.run(t, "latest-versions", "-o", "xml")
		if !errors.Is(err, config.ErrInvalidOutput) {
			t.Errorf("expected ErrInvalidOutput, got %v", err)
		}
	})

	t.Run("verbose and quiet", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		_, err := env.run(t, "latest-versions", "-v", "-q")
		if !errors.Is(err, config.ErrConflictingVerbosity) {
			t.Errorf("expected ErrConflictingVerbosity, got %v", err)
		}
	})

	t.Run("explicit config file must exist", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"pep", "--config", filepath.Join(t.TempDir(), "missing.yaml")})

		if err := cmd.Execute(); !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})
}

// TestRootCmdRun tests complete runs against a local site.
func TestRootCmdRun(t *testing.T) {
	t.Parallel()

	t.Run("prints the version list", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		stdout, err := env.run(t, "latest-versions", "-q")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "Link Version Status\n" +
			"https://docs.python.org/3.14/ 3.14 in development\n" +
			"https://docs.python.org/3.13/ 3.13 stable\n" +
			"https://www.python.org/doc/versions/ All versions \n"
		if stdout != want {
			t.Errorf("got %q, want %q", stdout, want)
		}

		logData, err := os.ReadFile(filepath.Join(env.baseDir, "logs", "pydocscan.log"))
		if err != nil {
			t.Fatalf("expected log file: %v", err)
		}
		for _, marker := range []string{"scanner started", "scanner finished"} {
			if !strings.Contains(string(logData), marker) {
				t.Errorf("expected %q in log file", marker)
			}
		}
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		stdout, err := env.run(t, "latest-versions", "-q", "-o", "json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var result report.JSONResult
		if err := json.Unmarshal([]byte(stdout), &result); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if len(result.Rows) != 3 || result.Rows[1][1] != "3.13" {
			t.Errorf("unexpected rows %v", result.Rows)
		}
	})

	t.Run("file output", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		stdout, err := env.run(t, "latest-versions", "-q", "-o", "file")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != "" {
			t.Errorf("expected nothing on stdout, got %q", stdout)
		}

		files, err := filepath.Glob(filepath.Join(env.baseDir, "results", "latest-versions_*.csv"))
		if err != nil || len(files) != 1 {
			t.Fatalf("expected one results file, got %v (%v)", files, err)
		}
		table, err := report.ReadCSV(files[0])
		if err != nil {
			t.Fatal(err)
		}
		if table.Len() != 3 {
			t.Errorf("expected 3 rows, got %d", table.Len())
		}
	})

	t.Run("pages are cached until cleared", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		for range 2 {
			if _, err := env.run(t, "latest-versions", "-q"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if got := env.hits.Load(); got != 1 {
			t.Errorf("expected 1 request with a warm cache, got %d", got)
		}

		if _, err := env.run(t, "latest-versions", "-q", "--clear-cache"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := env.hits.Load(); got != 2 {
			t.Errorf("expected a refetch after clearing, got %d requests", got)
		}
	})

	t.Run("seed failure is returned", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		stdout, err := env.run(t, "whats-new", "-q")

		var fetchErr *crawler.FetchError
		if !errors.As(err, &fetchErr) {
			t.Fatalf("expected FetchError, got %v", err)
		}
		if fetchErr.URL != env.server.URL+"/missing/" || fetchErr.StatusCode != http.StatusNotFound {
			t.Errorf("unexpected error %+v", fetchErr)
		}
		if stdout != "" {
			t.Errorf("expected nothing on stdout, got %q", stdout)
		}
	})
}
