package mdimport

import (
	"testing"
	"time"

	"github.com/etnz/mdimport/date"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// mkdate is a helper to write dates in tests.
func mkdate(y, m, d int) date.Date { return date.New(y, time.Month(m), d) }

// testBook returns a small book:
//
//	Fidelity (investment, number 123456)
//	  Vanguard 500 (security VFIAX, 10 shares)
//	Checking (bank)
func testBook(t *testing.T) *Book {
	t.Helper()
	b := NewBook()
	fid := NewAccount(InvestmentAccount, "Fidelity")
	fid.SetNumber("123456")
	fid.SetCurrency("USD")
	if err := b.Root().AddSubAccount(fid); err != nil {
		t.Fatal(err)
	}
	vfiax := NewAccount(SecurityAccount, "Vanguard 500")
	vfiax.SetTicker("VFIAX")
	vfiax.SetBalance(Q(10).Decimal())
	if err := fid.AddSubAccount(vfiax); err != nil {
		t.Fatal(err)
	}
	if err := b.Root().AddSubAccount(NewAccount(BankAccount, "Checking")); err != nil {
		t.Fatal(err)
	}

	sec := NewSecurity("VFIAX", "Vanguard 500", "USD")
	sec.AddSnapshot(mkdate(2025, 1, 2), Snapshot{Price: USD(500)})
	sec.SetPrice(USD(500))
	if err := b.Securities().Add(sec); err != nil {
		t.Fatal(err)
	}
	return b
}

// mustDate parses an ISO date or fails the test.
func mustDate(t *testing.T, s string) date.Date {
	t.Helper()
	d, err := date.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}
