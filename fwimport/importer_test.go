package fwimport

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/mdimport"
	"github.com/etnz/mdimport/console"
	"github.com/etnz/mdimport/csvproc"
	"github.com/etnz/mdimport/date"
	"github.com/google/go-cmp/cmp"
)

func TestImportFile(t *testing.T) {
	const name = "Portfolio_Position_Jan-4-2025.csv"
	b := testBook(t)
	imp, out := newImporter(t, b, name, header+
		"X12345678,401k,VFIAX,Vanguard 500 Index,12,$510.25,$6123.00\n"+
		"X12345678,401k,SPAXX**,Money Market,150,1,$150.00\n"+
		"Z999,Other,VFIAX,Vanguard 500 Index,1,510.25,510.25\n"+
		"X12345678,401k,BAD,Bad,abc,1,1\n", "")

	if err := imp.ImportFile(); err != nil {
		t.Fatalf("ImportFile() unexpected error: %v", err)
	}
	want := []string{
		"Importing price data from file Portfolio_Position_Jan-4-2025.csv.",
		"Change Vanguard 500 Index (VFIAX) price from $500.00 to $510.25 (+2.05%).",
		"Found a different Vanguard 500 Index (VFIAX) share balance in account Fidelity 401k: have 10, imported 12.",
		"Found a different balance in account Fidelity 401k: have $100.00, imported $150.00; Note: no security for ticker symbol [SPAXX**] (Money Market).",
		"Unable to obtain investment account with number [Z999].",
		`Skipped row 4 of Portfolio_Position_Jan-4-2025.csv: invalid col.shares value "abc": invalid number "abc"`,
		"Found effective date Fri Jan 3, 2025.",
	}
	if diff := cmp.Diff(want, texts(out)); diff != "" {
		t.Errorf("console mismatch (-want +got):\n%s", diff)
	}
	if tone := out.Entries()[1].Tone; tone != console.Gain {
		t.Errorf("price change tone = %v want gain", tone)
	}
	if !imp.IsModified() || len(imp.Changes()) != 1 {
		t.Fatalf("IsModified() = %v, %d changes want 1 change", imp.IsModified(), len(imp.Changes()))
	}

	// nothing is written before the commit.
	sec := b.Securities().ByTicker("VFIAX")
	if !sec.Price().Equal(mdimport.M(500, "USD")) {
		t.Errorf("Price() before commit = %v want $500.00", sec.Price())
	}

	out.ClearText()
	if err := imp.CommitChanges(); err != nil {
		t.Fatalf("CommitChanges() unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"Changed 1 security price."}, texts(out)); diff != "" {
		t.Errorf("console mismatch (-want +got):\n%s", diff)
	}
	if imp.IsModified() {
		t.Errorf("IsModified() after commit should be false")
	}
	if !sec.Price().Equal(mdimport.M(510.25, "USD")) {
		t.Errorf("Price() after commit = %v want $510.25", sec.Price())
	}
	if day, snap, _ := sec.LatestSnapshot(); day != date.New(2025, 1, 3) || !snap.Price.Equal(mdimport.M(510.25, "USD")) {
		t.Errorf("LatestSnapshot() = %v, %v want 2025-01-03, $510.25", day, snap.Price)
	}
}

func TestImportFileNoChange(t *testing.T) {
	b := testBook(t)
	// the book already has the price on the effective date.
	imp, out := newImporter(t, b, "Portfolio_Position_Jan-3-2025.csv", header+
		"X12345678,401k,VFIAX,Vanguard 500 Index,10,500,5000\n", "")

	if err := imp.ImportFile(); err != nil {
		t.Fatalf("ImportFile() unexpected error: %v", err)
	}
	want := []string{
		"Importing price data from file Portfolio_Position_Jan-3-2025.csv.",
		"Found effective date Thu Jan 2, 2025.",
		"No new price data found.",
	}
	if diff := cmp.Diff(want, texts(out)); diff != "" {
		t.Errorf("console mismatch (-want +got):\n%s", diff)
	}
	if imp.IsModified() {
		t.Errorf("IsModified() = true want false")
	}
}

func TestImportFileCorrectsCurrentPrice(t *testing.T) {
	b := testBook(t)
	b.Securities().ByTicker("VFIAX").SetPrice(mdimport.M(499, "USD"))
	imp, out := newImporter(t, b, "Portfolio_Position_Jan-3-2025.csv", header+
		"X12345678,401k,VFIAX,Vanguard 500 Index,10,500,5000\n", "")

	if err := imp.ImportFile(); err != nil {
		t.Fatalf("ImportFile() unexpected error: %v", err)
	}
	if got, want := texts(out)[1], "Corrected Vanguard 500 Index (VFIAX) current price from $499.00 to $500.00."; got != want {
		t.Errorf("console[1] = %q want %q", got, want)
	}
	if got, want := texts(out)[len(texts(out))-1], "No new price data found."; got != want {
		t.Errorf("last line = %q want %q", got, want)
	}
	// the corrected price must still be saved.
	if !imp.IsModified() || len(imp.Changes()) != 0 {
		t.Errorf("IsModified() = %v, %d changes want true, 0", imp.IsModified(), len(imp.Changes()))
	}

	out.ClearText()
	if err := imp.CommitChanges(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Changed 1 security price."}, texts(out)); diff != "" {
		t.Errorf("console mismatch (-want +got):\n%s", diff)
	}
	if p := b.Securities().ByTicker("VFIAX").Price(); !p.Equal(mdimport.M(500, "USD")) {
		t.Errorf("Price() = %v want $500.00", p)
	}
	if imp.IsModified() {
		t.Errorf("IsModified() after commit should be false")
	}
}

func TestImportFileWithDateColumn(t *testing.T) {
	b := testBook(t)
	override := filepath.Join(t.TempDir(), "fw.properties")
	if err := os.WriteFile(override, []byte("col.date=Date\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	imp, out := newImporter(t, b, "positions.csv",
		"Account Number,Symbol,Description,Quantity,Last Price,Current Value,Date\n"+
			"Fidelity 401k,VFIAX,Vanguard 500 Index,10,501,5010,1/6/2025\n"+
			"Fidelity 401k,SPAXX**,Money Market,100,1,100,2025-01-07\n", override)

	if err := imp.ImportFile(); err != nil {
		t.Fatalf("ImportFile() unexpected error: %v", err)
	}
	got := texts(out)
	if want := "Found effective dates Mon Jan 6, 2025; Tue Jan 7, 2025."; got[len(got)-1] != want {
		t.Errorf("last line = %q want %q", got[len(got)-1], want)
	}
	changes := imp.Changes()
	if len(changes) != 1 || changes[0].On() != date.New(2025, 1, 6) {
		t.Errorf("Changes() = %v want one change on 2025-01-06", changes)
	}
}

func TestImportFileMissingSecurityAccount(t *testing.T) {
	b := testBook(t)
	if err := b.Securities().Add(mdimport.NewSecurity("FXAIX", "Fidelity 500 Index", "USD")); err != nil {
		t.Fatal(err)
	}
	imp, out := newImporter(t, b, "Portfolio_Position_Jan-4-2025.csv", header+
		"X12345678,401k,FXAIX,Fidelity 500 Index,3,200,600\n", "")
	if err := imp.ImportFile(); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"Importing price data from file Portfolio_Position_Jan-4-2025.csv.",
		"Change Fidelity 500 Index (FXAIX) price from $1.00 to $200.00 (+19900.00%).",
		"Unable to obtain security [Fidelity 500 Index (FXAIX)] in account Fidelity 401k.",
		"Found effective date Fri Jan 3, 2025.",
	}
	if diff := cmp.Diff(want, texts(out)); diff != "" {
		t.Errorf("console mismatch (-want +got):\n%s", diff)
	}
}

func TestImportFileMissingColumn(t *testing.T) {
	imp, _ := newImporter(t, testBook(t), "Portfolio_Position_Jan-4-2025.csv",
		"Symbol,Last Price\nVFIAX,500\n", "")
	err := imp.ImportFile()
	if !errors.Is(err, csvproc.ErrColumnNotFound) {
		t.Errorf("ImportFile() = %v want ErrColumnNotFound", err)
	}
}

func TestMarketDateFromFileName(t *testing.T) {
	testCases := []struct {
		name  string
		want  date.Date
		found bool
	}{
		{"Portfolio_Position_Jan-4-2025.csv", date.New(2025, 1, 3), true},
		{"/downloads/Portfolio_Position_Mar-1-2024.csv", date.New(2024, 2, 29), true},
		{"Portfolio_Position_Dec-16-2017.csv", date.New(2017, 12, 15), true},
		{"Portfolio_Position_latest.csv", date.Date{}, false},
		{"quotes.csv", date.Date{}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := MarketDateFromFileName(tc.name)
			if got != tc.want || found != tc.found {
				t.Errorf("MarketDateFromFileName(%q) = %v, %v want %v, %v", tc.name, got, found, tc.want, tc.found)
			}
		})
	}
}

func TestImportFileBackdatedComparesWithSnapshot(t *testing.T) {
	b := testBook(t)
	sec := b.Securities().ByTicker("VFIAX")
	sec.AddSnapshot(date.New(2025, 1, 10), mdimport.Snapshot{Price: mdimport.M(520, "USD")})
	sec.SetPrice(mdimport.M(520, "USD"))
	imp, out := newImporter(t, b, "Portfolio_Position_Jan-4-2025.csv", header+
		"X12345678,401k,VFIAX,Vanguard 500 Index,10,510,5100\n", "")

	if err := imp.ImportFile(); err != nil {
		t.Fatal(err)
	}
	if got, want := texts(out)[1], "Change Vanguard 500 Index (VFIAX) price from $500.00 to $510.00 (+2.00%)."; got != want {
		t.Errorf("console[1] = %q want %q", got, want)
	}
	changes := imp.Changes()
	if len(changes) != 1 || !changes[0].OldPrice().Equal(mdimport.M(500, "USD")) {
		t.Fatalf("Changes() old price = %v want $500.00", changes)
	}
}

func TestImportFileCashBalanceCurrency(t *testing.T) {
	const cash = "X12345678,401k,SPAXX**,Money Market,150,1,$150.00\n"
	testCases := []struct {
		name            string
		securityCur     string
		defaultCurrency string
		want            string
	}{
		{"security currency", "EUR", "USD", "have €100.00, imported €150.00"},
		{"default currency", "", "USD", "have $100.00, imported $150.00"},
		{"no currency", "", "", "have 100, imported 150"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := testBook(t)
			k, _ := b.Root().FindInvestment("X12345678")
			k.SetCurrency("")
			k.SubAccounts()[0].SetTicker("")
			if tc.securityCur != "" {
				veurx := mdimport.NewAccount(mdimport.SecurityAccount, "Vanguard Europe")
				veurx.SetTicker("VEURX")
				if err := k.AddSubAccount(veurx); err != nil {
					t.Fatal(err)
				}
				if err := b.Securities().Add(mdimport.NewSecurity("VEURX", "Vanguard Europe", tc.securityCur)); err != nil {
					t.Fatal(err)
				}
			}
			imp, out := newImporter(t, b, "Portfolio_Position_Jan-4-2025.csv", header+cash, "")
			imp.SetDefaultCurrency(tc.defaultCurrency)
			if err := imp.ImportFile(); err != nil {
				t.Fatal(err)
			}
			want := "Found a different balance in account Fidelity 401k: " + tc.want + "; Note: no security for ticker symbol [SPAXX**] (Money Market)."
			if got := texts(out)[1]; got != want {
				t.Errorf("console[1] = %q want %q", got, want)
			}
		})
	}
}
