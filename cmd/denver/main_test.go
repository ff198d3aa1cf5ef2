package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eugenenazirov/denver/internal/application"
)

func setupDir(t *testing.T, files map[string]string) string {
	t.Helper()

	for _, key := range []string{"DENVER_CONFIG", "DENVER_DIR", "DENVER_MERGE_LEFT", "DENVER_DETACH", "DENVER_LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func environ() application.Option {
	return application.WithEnviron(func() []string { return []string{"PATH=/bin:/usr/bin"} })
}

func TestRunPropagatesChildStatus(t *testing.T) {
	for _, name := range []string{"true", "false"} {
		if _, err := exec.LookPath(name); err != nil {
			t.Skipf("%s not available: %v", name, err)
		}
	}
	dir := setupDir(t, map[string]string{".env": "A=1\n"})

	var stderr bytes.Buffer
	if code := run([]string{"--dir", dir, "true"}, &stderr, environ()); code != 0 {
		t.Fatalf("expected status 0, got %d (%s)", code, stderr.String())
	}
	if code := run([]string{"--dir", dir, "false"}, &stderr, environ()); code != 1 {
		t.Fatalf("expected status 1, got %d", code)
	}
}

func TestRunFailsOnMissingEnvironment(t *testing.T) {
	dir := setupDir(t, map[string]string{".env": "A=1\n"})

	var stderr bytes.Buffer
	code := run([]string{"--dir", dir, "-e", "missing", "true"}, &stderr, environ())
	if code != 1 {
		t.Fatalf("expected status 1, got %d", code)
	}
	if msg := stderr.String(); !strings.HasPrefix(msg, "denver: ") || !strings.Contains(msg, ".missing.env") {
		t.Fatalf("expected message naming the missing file, got %q", msg)
	}
	if lines := strings.Split(strings.TrimSpace(stderr.String()), "\n"); len(lines) != 1 {
		t.Fatalf("expected the failure to be reported once, got %d lines: %q", len(lines), stderr.String())
	}
}

func TestRunAcceptsCmdFlag(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skipf("false not available: %v", err)
	}
	dir := setupDir(t, map[string]string{".env": "A=1\n"})

	var stderr bytes.Buffer
	if code := run([]string{"--dir", dir, "-c", "false"}, &stderr, environ()); code != 1 {
		t.Fatalf("expected status 1 from --cmd, got %d (%s)", code, stderr.String())
	}
}

func TestRunFailsOnMissingDefaultFile(t *testing.T) {
	dir := setupDir(t, nil)

	var stderr bytes.Buffer
	if code := run([]string{"--dir", dir, "true"}, &stderr, environ()); code != 1 {
		t.Fatalf("expected status 1, got %d", code)
	}
}

func TestRunReportsSpawnFailure(t *testing.T) {
	dir := setupDir(t, map[string]string{".env": "A=1\n"})

	var stderr bytes.Buffer
	code := run([]string{"--dir", dir, "denver-definitely-missing-binary --flag"}, &stderr, environ())
	if code != 1 {
		t.Fatalf("expected status 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "cannot start command") {
		t.Fatalf("expected spawn error message, got %q", stderr.String())
	}
}

func TestRunRejectsUsageErrors(t *testing.T) {
	setupDir(t, nil)

	var stderr bytes.Buffer
	if code := run([]string{"--env"}, &stderr); code != 2 {
		t.Fatalf("expected status 2, got %d", code)
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	setupDir(t, nil)

	var stderr bytes.Buffer
	if code := run([]string{"--log-level", "chatty", "true"}, &stderr); code != 1 {
		t.Fatalf("expected status 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "config") {
		t.Fatalf("expected config error message, got %q", stderr.String())
	}
}
