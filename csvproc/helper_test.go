package csvproc

import (
	"os"
	"path/filepath"
	"testing"
)

// lines is a Console collecting lines.
type lines []string

func (l *lines) AddText(text string) { *l = append(*l, text) }

// writeFile writes content in a fresh temporary directory and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const testMapping = `
# test mapping
col.ticker = Symbol
col.price = Last Price
col.name = Description
`
