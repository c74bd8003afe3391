package csvproc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadMapping(t *testing.T) {
	m, err := LoadMapping([]byte(testMapping), "")
	if err != nil {
		t.Fatalf("LoadMapping() unexpected error: %v", err)
	}
	if col, ok := m.Column("col.price"); !ok || col != "Last Price" {
		t.Errorf("Column(col.price) = %q, %v want %q", col, ok, "Last Price")
	}
	if _, ok := m.Column("col.date"); ok {
		t.Errorf("Column(col.date) should not be mapped")
	}
	if diff := cmp.Diff([]string{"col.ticker", "col.price", "col.name"}, m.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMappingOverride(t *testing.T) {
	override := writeFile(t, "columns.properties", "col.price=Close\ncol.date=Date\n")
	m, err := LoadMapping([]byte(testMapping), override)
	if err != nil {
		t.Fatalf("LoadMapping() unexpected error: %v", err)
	}
	want := map[string]string{
		"col.ticker": "Symbol",
		"col.price":  "Close",
		"col.date":   "Date",
	}
	for key, col := range want {
		if got, _ := m.Column(key); got != col {
			t.Errorf("Column(%s) = %q want %q", key, got, col)
		}
	}

	if _, err := LoadMapping([]byte(testMapping), override+".missing"); err == nil {
		t.Errorf("LoadMapping() with a missing override should fail")
	}
}

func TestEmptyColumnIsUnmapped(t *testing.T) {
	m, err := LoadMapping([]byte("col.date =\ncol.ticker=Symbol\n"), "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Column("col.date"); ok {
		t.Errorf("Column(col.date) should be unmapped")
	}
}
