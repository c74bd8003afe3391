// Package fwimport imports Fidelity NetBenefits workplace account positions.
//
// Each row of the export is an account position: prices that differ from
// the book are staged as price updates, share and cash balances that differ
// are reported.
package fwimport

import (
	_ "embed"
	"path/filepath"
	"slices"
	"strings"

	"github.com/etnz/mdimport"
	"github.com/etnz/mdimport/console"
	"github.com/etnz/mdimport/csvproc"
	"github.com/etnz/mdimport/date"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed fw-import.properties
var defaultMapping []byte

// effectiveDateLayout is how effective dates are reported.
const effectiveDateLayout = "Mon Jan 2, 2006"

// LoadMapping returns the default column mapping merged with the optional
// override properties file.
func LoadMapping(override string) (*csvproc.Mapping, error) {
	return csvproc.LoadMapping(defaultMapping, override)
}

// Console receives the import report.
type Console interface {
	AddText(text string)
	AddTone(tone console.Tone, text string)
}

// RowRec is an imported row.
type RowRec struct {
	AccountNumber string // account name or number
	Ticker        string
	SecurityName  string
	Shares        mdimport.Quantity
	Price         decimal.Decimal
	Balance       decimal.Decimal // balance or value
	EffectiveDate date.Date
}

// Importer reconciles a position export with a book.
type Importer struct {
	book       *mdimport.Book
	proc       *csvproc.Processor
	out        Console
	printer    *message.Printer
	marketDate date.Date
	currency   string // of accounts without one

	priceChanges mdimport.PriceChanges
	dates        []date.Date // ordered set
}

// New returns an importer of file into book. marketDate is the effective
// date of rows without one.
func New(book *mdimport.Book, file string, marketDate date.Date, mapping *csvproc.Mapping, out Console, tag language.Tag) *Importer {
	return &Importer{
		book:       book,
		proc:       csvproc.New(file, mapping, out, tag),
		out:        out,
		printer:    messages.Printer(tag),
		marketDate: marketDate,
	}
}

// SetDefaultCurrency sets the currency of the cash balances of accounts
// that neither have a currency nor hold a security with one.
func (i *Importer) SetDefaultCurrency(cur string) { i.currency = cur }

func (i *Importer) writeFormatted(key string, args ...any) {
	i.out.AddText(i.printer.Sprintf(key, args...))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// ImportFile imports the file and stages the price changes.
func (i *Importer) ImportFile() error {
	i.writeFormatted("FWIMP01", filepath.Base(i.proc.File()))

	if err := i.proc.ProcessFile(i.processRow); err != nil {
		return err
	}
	if len(i.dates) > 0 {
		days := make([]string, len(i.dates))
		for j, d := range i.dates {
			days[j] = d.Format(effectiveDateLayout)
		}
		i.writeFormatted("FWIMP09", plural(len(i.dates)), strings.Join(days, "; "))
	}

	if i.priceChanges.Len() == 0 {
		i.writeFormatted("FWIMP08")
	}
	return nil
}

// col returns a mapped value, any error aborts the import.
func (i *Importer) col(key string) (string, error) { return i.proc.Col(key) }

func (i *Importer) decimalCol(key string) (decimal.Decimal, error) {
	s, err := i.col(key)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := mdimport.ParseDecimal(s)
	if err != nil {
		return decimal.Zero, csvproc.NewRowError(key, s, err)
	}
	return d, nil
}

// importRow reads the current row.
func (i *Importer) importRow() (RowRec, error) {
	var imp RowRec
	var err error
	if imp.AccountNumber, err = i.col("col.account.num"); err != nil {
		return imp, err
	}
	if imp.Ticker, err = i.col("col.ticker"); err != nil {
		return imp, err
	}
	if imp.SecurityName, err = i.col("col.name"); err != nil {
		return imp, err
	}
	shares, err := i.decimalCol("col.shares")
	if err != nil {
		return imp, err
	}
	imp.Shares = mdimport.Q(shares)
	if imp.Price, err = i.decimalCol("col.price"); err != nil {
		return imp, err
	}
	if imp.Balance, err = i.decimalCol("col.value"); err != nil {
		return imp, err
	}

	imp.EffectiveDate = i.marketDate
	if i.proc.HasCol("col.date") {
		s, err := i.col("col.date")
		if err != nil {
			return imp, err
		}
		if s != "" {
			if imp.EffectiveDate, err = date.ParseAny(s, "1/2/2006"); err != nil {
				return imp, csvproc.NewRowError("col.date", s, err)
			}
		}
	}
	return imp, nil
}

// processRow imports the current row.
func (i *Importer) processRow() error {
	imp, err := i.importRow()
	if err != nil {
		return err
	}
	account, found := i.book.Root().FindInvestment(imp.AccountNumber)
	if !found {
		i.writeFormatted("FWIMP05", imp.AccountNumber)
	}

	security := i.book.Securities().ByTicker(imp.Ticker)
	if security == nil {
		if found {
			i.verifyAccountBalance(account, imp)
		}
	} else {
		i.storePriceQuoteIfDiff(security, imp.Price, imp.EffectiveDate)
		if found {
			i.verifyShareBalance(account, security, imp.Shares)
		}
	}
	if !slices.Contains(i.dates, imp.EffectiveDate) {
		i.dates = append(i.dates, imp.EffectiveDate)
	}
	return nil
}

// storePriceQuoteIfDiff stages the price unless the book already has it on
// that day, or the security is already staged.
func (i *Importer) storePriceQuoteIfDiff(security *mdimport.Security, value decimal.Decimal, effectiveDate date.Date) {
	price := mdimport.M(value, security.Currency())
	oldPrice := mdimport.M(1, security.Currency())
	day, snap, found := security.SnapshotForDate(effectiveDate)
	if found {
		oldPrice = security.ValidatedSnapshotPrice(day, snap, func(old, new mdimport.Money) {
			oldS, newS := mdimport.PriceStrings(old, new)
			i.writeFormatted("FWIMP00", security.Name(), security.Ticker(), oldS, newS)
			i.priceChanges.Corrected(security)
		})
	}

	if (!found || day != effectiveDate || !price.SameAmount(oldPrice)) && !i.priceChanges.Has(security) {
		oldS, newS := mdimport.PriceStrings(oldPrice, price)
		i.out.AddTone(console.ToneOf(price.Decimal(), oldPrice.Decimal()),
			i.printer.Sprintf("FWIMP03", security.Name(), security.Ticker(), oldS, newS, price.Change(oldPrice).SignedString()))

		i.priceChanges.Add(mdimport.NewSecurityHandler(security).ComparedTo(oldPrice).StoreNewPrice(price, effectiveDate))
	}
}

// verifyAccountBalance reports a cash position that differs from the account balance.
func (i *Importer) verifyAccountBalance(account *mdimport.Account, imp RowRec) {
	if imp.Balance.Equal(account.CurrentBalance()) {
		return
	}
	var have, imported string
	if cur := i.accountCurrency(account); cur != "" {
		have, imported = mdimport.PriceStrings(mdimport.M(account.CurrentBalance(), cur), mdimport.M(imp.Balance, cur))
	} else {
		have, imported = mdimport.QuantityStrings(account.Shares(), mdimport.Q(imp.Balance))
	}
	i.writeFormatted("FWIMP02", account.Name(), have, imported, imp.Ticker, imp.SecurityName)
}

// accountCurrency returns the account currency, or else the currency of the
// first security held in a sub-account, or else the default currency.
func (i *Importer) accountCurrency(account *mdimport.Account) string {
	if cur := account.Currency(); cur != "" {
		return cur
	}
	for _, sub := range account.SubAccounts() {
		if sub.Ticker() == "" {
			continue
		}
		if sec := i.book.Securities().ByTicker(sub.Ticker()); sec != nil && sec.Currency() != "" {
			return sec.Currency()
		}
	}
	return i.currency
}

// verifyShareBalance reports a share count that differs from the security account.
func (i *Importer) verifyShareBalance(account *mdimport.Account, security *mdimport.Security, shares mdimport.Quantity) {
	secAccount, found := account.SubAccountByName(security.Name())
	if !found {
		i.writeFormatted("FWIMP06", security.Name(), security.Ticker(), account.Name())
		return
	}
	if shares.Equal(secAccount.Shares()) {
		return
	}
	have, imported := mdimport.QuantityStrings(secAccount.Shares(), shares)
	i.writeFormatted("FWIMP04", secAccount.Name(), security.Ticker(), account.Name(), have, imported)
}

// CommitChanges applies the staged price changes to the book.
func (i *Importer) CommitChanges() error {
	n := i.priceChanges.Apply()
	i.writeFormatted("FWIMP07", n, plural(n))
	i.ForgetChanges()
	return nil
}

// ForgetChanges discards the staged changes.
func (i *Importer) ForgetChanges() {
	i.priceChanges.Clear()
	i.dates = nil
}

// IsModified reports whether price changes are staged or current prices were corrected.
func (i *Importer) IsModified() bool { return i.priceChanges.Modified() }

// Changes returns the staged updates.
func (i *Importer) Changes() []*mdimport.SecurityHandler { return i.priceChanges.Handlers() }
