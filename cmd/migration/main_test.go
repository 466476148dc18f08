package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/fantasy-matchups/internal/platform/logging"
)

func TestParseSteps(t *testing.T) {
	if got, err := parseSteps(nil); err != nil || got != 1 {
		t.Fatalf("expected default of 1 step, got %d (%v)", got, err)
	}
	if got, err := parseSteps([]string{" 3 "}); err != nil || got != 3 {
		t.Fatalf("expected 3 steps, got %d (%v)", got, err)
	}
	if _, err := parseSteps([]string{"0"}); err == nil {
		t.Fatalf("expected error for zero steps")
	}
	if _, err := parseSteps([]string{"x"}); err == nil {
		t.Fatalf("expected error for non-numeric steps")
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if got, err := parseVersion("4"); err != nil || got != 4 {
		t.Fatalf("unexpected version: %d (%v)", got, err)
	}
	if got, err := parseTarget("2"); err != nil || got != 2 {
		t.Fatalf("unexpected target: %d (%v)", got, err)
	}
	if _, err := parseTarget("-2"); err == nil {
		t.Fatalf("expected error for negative target")
	}
}

func TestResolveMigrationsDir_FromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MIGRATIONS_DIR", dir)

	got, err := resolveMigrationsDir()
	if err != nil {
		t.Fatalf("resolve migrations dir: %v", err)
	}
	want, _ := filepath.Abs(dir)
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestResolveMigrationsDir_Missing(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", filepath.Join(t.TempDir(), "missing"))
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(wd, "migrations")); statErr == nil {
		t.Skip("working directory has a migrations dir")
	}

	if _, err := resolveMigrationsDir(); err == nil {
		t.Fatalf("expected error when no migrations dir exists")
	}
}

func TestRun_Usage(t *testing.T) {
	err := run(nil, logging.NewNop())
	var usage usageError
	if !errors.As(err, &usage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestRun_RequiresDBURL(t *testing.T) {
	t.Setenv("DB_URL", "")
	if err := run([]string{"up"}, logging.NewNop()); err == nil {
		t.Fatalf("expected error without DB_URL")
	}
}

func TestNormalizeDBURL(t *testing.T) {
	got := normalizeDBURL("postgres://u:p@localhost:5432/db?sslmode=disable", true)
	if got == "postgres://u:p@localhost:5432/db?sslmode=disable" {
		t.Fatalf("expected flag to be appended")
	}
	in := "host=localhost dbname=db"
	if got := normalizeDBURL(in, true); got != in {
		t.Fatalf("expected key value dsn unchanged, got %q", got)
	}
}
