package fwimport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/mdimport"
	"github.com/etnz/mdimport/console"
	"github.com/etnz/mdimport/date"
	"golang.org/x/text/language"
)

const header = "Account Number,Account Name,Symbol,Description,Quantity,Last Price,Current Value\n"

// testBook returns a book with a 401k account holding 10 VFIAX and 100 in cash,
// and a VFIAX closing price of 500 on Jan 2, 2025.
func testBook(t *testing.T) *mdimport.Book {
	t.Helper()
	b := mdimport.NewBook()
	k := mdimport.NewAccount(mdimport.InvestmentAccount, "Fidelity 401k")
	k.SetNumber("X12345678")
	k.SetCurrency("USD")
	k.SetBalance(mdimport.Q(100).Decimal())
	if err := b.Root().AddSubAccount(k); err != nil {
		t.Fatal(err)
	}
	vfiax := mdimport.NewAccount(mdimport.SecurityAccount, "Vanguard 500 Index")
	vfiax.SetTicker("VFIAX")
	vfiax.SetBalance(mdimport.Q(10).Decimal())
	if err := k.AddSubAccount(vfiax); err != nil {
		t.Fatal(err)
	}

	sec := mdimport.NewSecurity("VFIAX", "Vanguard 500 Index", "USD")
	sec.AddSnapshot(date.New(2025, 1, 2), mdimport.Snapshot{Price: mdimport.M(500, "USD")})
	sec.SetPrice(mdimport.M(500, "USD"))
	if err := b.Securities().Add(sec); err != nil {
		t.Fatal(err)
	}
	return b
}

// newImporter writes content as an export named name, and returns an importer for it.
func newImporter(t *testing.T, b *mdimport.Book, name, content, override string) (*Importer, *console.Log) {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	mapping, err := LoadMapping(override)
	if err != nil {
		t.Fatal(err)
	}
	marketDate, ok := MarketDateFromFileName(name)
	if !ok {
		marketDate = date.New(2025, 1, 3)
	}
	out := new(console.Log)
	return New(b, file, marketDate, mapping, out, language.AmericanEnglish), out
}

func texts(l *console.Log) []string {
	var res []string
	for _, e := range l.Entries() {
		res = append(res, e.Text)
	}
	return res
}
