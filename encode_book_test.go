package mdimport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeMissingBook(t *testing.T) {
	b, err := DecodeBook(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("DecodeBook() unexpected error: %v", err)
	}
	if b.Securities().Len() != 0 || len(b.Root().SubAccounts()) != 0 {
		t.Errorf("DecodeBook() of a missing folder should be empty")
	}
}

func TestEncodeBook(t *testing.T) {
	folder := filepath.Join(t.TempDir(), "book")
	b := testBook(t)
	sec := b.Securities().ByTicker("VFIAX")
	sec.AddSnapshot(mkdate(2024, 12, 31), Snapshot{Price: USD(495.5), High: USD(497), Low: USD(490), Volume: Q(1200)})

	if err := EncodeBook(folder, b); err != nil {
		t.Fatalf("EncodeBook() unexpected error: %v", err)
	}

	read := func(name string) []string {
		t.Helper()
		data, err := os.ReadFile(filepath.Join(folder, name))
		if err != nil {
			t.Fatal(err)
		}
		return strings.Split(strings.TrimSpace(string(data)), "\n")
	}

	wantAccounts := []string{
		`{"name":"Fidelity","type":"investment","number":"123456","currency":"USD"}`,
		`{"name":"Vanguard 500","type":"security","parent":"Fidelity","ticker":"VFIAX","balance":"10"}`,
		`{"name":"Checking","type":"bank"}`,
	}
	if diff := cmp.Diff(wantAccounts, read(accountsFile)); diff != "" {
		t.Errorf("accounts mismatch (-want +got):\n%s", diff)
	}
	wantSecurities := []string{
		`{"ticker":"VFIAX","name":"Vanguard 500","currency":"USD","price":"500"}`,
	}
	if diff := cmp.Diff(wantSecurities, read(securitiesFile)); diff != "" {
		t.Errorf("securities mismatch (-want +got):\n%s", diff)
	}
	want2024 := []string{
		`{"on":"2024-12-31","ticker":"VFIAX","price":"495.5","high":"497","low":"490","volume":"1200"}`,
	}
	if diff := cmp.Diff(want2024, read("2024.jsonl")); diff != "" {
		t.Errorf("2024.jsonl mismatch (-want +got):\n%s", diff)
	}

	// round trip
	back, err := DecodeBook(folder)
	if err != nil {
		t.Fatalf("DecodeBook() unexpected error: %v", err)
	}
	if err := EncodeBook(folder, back); err != nil {
		t.Fatalf("EncodeBook() unexpected error: %v", err)
	}
	if diff := cmp.Diff(wantAccounts, read(accountsFile)); diff != "" {
		t.Errorf("accounts mismatch after round trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want2024, read("2024.jsonl")); diff != "" {
		t.Errorf("2024.jsonl mismatch after round trip (-want +got):\n%s", diff)
	}
	vfiax := back.Securities().ByTicker("VFIAX")
	if vfiax == nil || !vfiax.Price().Equal(USD(500)) {
		t.Fatalf("decoded VFIAX = %v", vfiax)
	}
	if day, snap, _ := vfiax.LatestSnapshot(); day != mkdate(2025, 1, 2) || !snap.Price.Equal(USD(500)) {
		t.Errorf("decoded LatestSnapshot() = %v, %v", day, snap.Price)
	}
}

func TestEncodeBookDeletesStaleYears(t *testing.T) {
	folder := t.TempDir()
	stale := filepath.Join(folder, "2019.jsonl")
	if err := os.WriteFile(stale, []byte("\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := EncodeBook(folder, testBook(t)); err != nil {
		t.Fatalf("EncodeBook() unexpected error: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("EncodeBook() should delete %s", stale)
	}
	if _, err := os.Stat(filepath.Join(folder, "2025.jsonl")); err != nil {
		t.Errorf("EncodeBook() should create 2025.jsonl: %v", err)
	}
}

func TestDecodeBookErrors(t *testing.T) {
	testCases := []struct {
		name string
		file string
		txt  string
	}{
		{"bad json", accountsFile, `{"name":`},
		{"unknown parent", accountsFile, `{"name":"A","type":"bank","parent":"Nope"}`},
		{"bad type", accountsFile, `{"name":"A","type":"root"}`},
		{"unknown ticker", "2025.jsonl", `{"on":"2025-01-02","ticker":"NOPE","price":"1"}`},
		{"missing date", "2025.jsonl", `{"ticker":"NOPE","price":"1"}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			folder := t.TempDir()
			if err := os.WriteFile(filepath.Join(folder, tc.file), []byte(tc.txt+"\n"), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := DecodeBook(folder); err == nil {
				t.Errorf("DecodeBook() expected an error")
			}
		})
	}
}
