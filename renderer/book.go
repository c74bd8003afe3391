package renderer

import (
	"strings"

	"github.com/etnz/mdimport"
	"github.com/etnz/mdimport/date"
)

// Book is the rendered view of a book.
type Book struct {
	Accounts   []BookAccount
	Securities []BookSecurity
}

// BookAccount is one account line, in tree order.
type BookAccount struct {
	Name    string // full name
	Type    mdimport.AccountType
	Number  string
	Balance string // money, or shares for security accounts
}

// BookSecurity is one security line.
type BookSecurity struct {
	Ticker    string
	Name      string
	Price     mdimport.Money
	LastQuote date.Date // zero without snapshots
	Quotes    int
}

// NewBook creates the view of b.
func NewBook(b *mdimport.Book) *Book {
	v := &Book{}
	for acc := range b.Root().Walk() {
		line := BookAccount{
			Name:   escape(acc.FullName()),
			Type:   acc.Type(),
			Number: escape(acc.Number()),
		}
		if acc.Type() == mdimport.SecurityAccount {
			line.Balance = acc.Shares().String() + " " + acc.Ticker()
		} else {
			line.Balance = acc.Balance().String()
		}
		v.Accounts = append(v.Accounts, line)
	}
	for sec := range b.Securities().All() {
		line := BookSecurity{
			Ticker: sec.Ticker(),
			Name:   escape(sec.Name()),
			Price:  sec.Price(),
		}
		if on, _, ok := sec.LatestSnapshot(); ok {
			line.LastQuote = on
		}
		for range sec.Snapshots() {
			line.Quotes++
		}
		v.Securities = append(v.Securities, line)
	}
	return v
}

// escape protects table cells.
func escape(s string) string { return strings.ReplaceAll(s, "|", `\|`) }
