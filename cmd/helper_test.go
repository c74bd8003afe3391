package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/mdimport"
	"github.com/etnz/mdimport/config"
	"github.com/google/subcommands"
	"golang.org/x/text/language"
)

// withSettings replaces the settings for the duration of the test.
func withSettings(t *testing.T, cfg *config.Config) {
	t.Helper()
	old := settings
	settings = cfg
	t.Cleanup(func() { settings = old })
}

// tempSettings uses a book and a downloads folder in a temporary directory.
func tempSettings(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Book:      filepath.Join(dir, "book"),
		Downloads: filepath.Join(dir, "downloads"),
		Locale:    language.AmericanEnglish,
		Currency:  "USD",
	}
	if err := os.MkdirAll(cfg.Downloads, 0o755); err != nil {
		t.Fatal(err)
	}
	withSettings(t, cfg)
	return cfg
}

// run parses args for c and executes it.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s: cannot parse %q: %v", c.Name(), args, err)
	}
	return c.Execute(context.Background(), f)
}

// mustRun executes c and fails the test unless it succeeds.
func mustRun(t *testing.T, c subcommands.Command, args ...string) {
	t.Helper()
	if status := run(t, c, args...); status != subcommands.ExitSuccess {
		t.Fatalf("%s %q = %v want success", c.Name(), args, status)
	}
}

// setupBook creates a 401k account holding 10 VFIAX and 100 in cash, with
// a VFIAX price of 500 on Jan 2, 2025.
func setupBook(t *testing.T) {
	t.Helper()
	mustRun(t, &openAccountCmd{}, "-name", "Fidelity 401k", "-number", "X12345678", "-balance", "100")
	mustRun(t, &openAccountCmd{}, "-name", "Vanguard 500 Index", "-type", "security", "-ticker", "VFIAX", "-parent", "Fidelity 401k", "-balance", "10")
	mustRun(t, &declareSecurityCmd{}, "-ticker", "VFIAX", "-name", "Vanguard 500 Index", "-price", "500", "-d", "2025-01-02")
}

func decodeBook(t *testing.T) *mdimport.Book {
	t.Helper()
	b, err := mdimport.DecodeBook(settings.Book)
	if err != nil {
		t.Fatalf("DecodeBook() error: %v", err)
	}
	return b
}

func writeDownload(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(settings.Downloads, name)
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return file
}
