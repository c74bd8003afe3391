// Package yqimport imports daily quotes downloaded from Yahoo Finance.
//
// Every quote is recorded on the market date chosen by the user, when it
// differs from what the book already knows.
package yqimport

import (
	_ "embed"
	"errors"
	"path/filepath"
	"strings"

	"github.com/etnz/mdimport"
	"github.com/etnz/mdimport/console"
	"github.com/etnz/mdimport/csvproc"
	"github.com/etnz/mdimport/date"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed yq-import.properties
var defaultMapping []byte

// DefaultPattern matches the quote downloads in a folder.
const DefaultPattern = "quotes*.csv"

const marketDateLayout = "Mon Jan 2, 2006"

// tradeDateLayouts are the accepted trade date formats, after ISO.
var tradeDateLayouts = []string{"20060102", "2006/01/02", "1/2/2006"}

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

// QuoteRec is an imported row.
type QuoteRec struct {
	Ticker    string
	Price     decimal.Decimal
	High      decimal.Decimal // zero when unknown
	Low       decimal.Decimal // zero when unknown
	Volume    decimal.Decimal // zero when unknown
	TradeDate date.Date       // zero when unknown
}

// Importer stages the quotes of a file into a book.
type Importer struct {
	book       *mdimport.Book
	proc       *csvproc.Processor
	out        Console
	printer    *message.Printer
	marketDate date.Date

	priceChanges mdimport.PriceChanges
}

// New returns an importer of file into book, recording quotes on marketDate.
func New(book *mdimport.Book, file string, marketDate date.Date, mapping *csvproc.Mapping, out Console, tag language.Tag) *Importer {
	return &Importer{
		book:       book,
		proc:       csvproc.New(file, mapping, out, tag),
		out:        out,
		printer:    messages.Printer(tag),
		marketDate: marketDate,
	}
}

func (i *Importer) writeFormatted(key string, args ...any) {
	i.out.AddText(i.printer.Sprintf(key, args...))
}

// ImportFile imports the file and stages the price changes.
func (i *Importer) ImportFile() error {
	i.writeFormatted("YQIMP01", filepath.Base(i.proc.File()), i.marketDate.Format(marketDateLayout))

	if err := i.proc.ProcessFile(i.processRow); err != nil {
		return err
	}
	if i.priceChanges.Len() == 0 {
		i.writeFormatted("YQIMP08")
	}
	return nil
}

// optionalDecimal reads an optional number, zero when unmapped or empty.
func (i *Importer) optionalDecimal(key string) (decimal.Decimal, error) {
	if !i.proc.HasCol(key) {
		return decimal.Zero, nil
	}
	s, err := i.proc.Col(key)
	if err != nil || s == "" || s == "N/A" {
		return decimal.Zero, err
	}
	d, err := mdimport.ParseDecimal(s)
	if err != nil {
		return decimal.Zero, csvproc.NewRowError(key, s, err)
	}
	return d, nil
}

// importRow reads the current row.
func (i *Importer) importRow() (QuoteRec, error) {
	var q QuoteRec
	ticker, err := i.proc.Col("col.ticker")
	if err != nil {
		return q, err
	}
	// index symbols like ^GSPC are declared without the caret.
	q.Ticker = strings.TrimPrefix(ticker, "^")

	price, err := i.proc.Col("col.price")
	if err != nil {
		return q, err
	}
	if q.Price, err = mdimport.ParseDecimal(price); err != nil {
		return q, csvproc.NewRowError("col.price", price, err)
	}
	if !q.Price.IsPositive() {
		return q, csvproc.NewRowError("col.price", price, errors.New("price must be positive"))
	}

	if q.High, err = i.optionalDecimal("col.high"); err != nil {
		return q, err
	}
	if q.Low, err = i.optionalDecimal("col.low"); err != nil {
		return q, err
	}
	if q.Volume, err = i.optionalDecimal("col.volume"); err != nil {
		return q, err
	}

	if i.proc.HasCol("col.date") {
		s, err := i.proc.Col("col.date")
		if err != nil {
			return q, err
		}
		// an unreadable trade date is only informative.
		q.TradeDate, _ = date.ParseAny(s, tradeDateLayouts...)
	}
	return q, nil
}

// processRow imports the current row.
func (i *Importer) processRow() error {
	q, err := i.importRow()
	if err != nil {
		return err
	}
	security := i.book.Securities().ByTicker(q.Ticker)
	if security == nil {
		i.writeFormatted("YQIMP05", q.Ticker, q.Price.String())
		return nil
	}
	if !q.TradeDate.IsZero() && q.TradeDate != i.marketDate {
		i.writeFormatted("YQIMP06", security.Name(), security.Ticker(), q.TradeDate.Format(marketDateLayout))
	}
	i.storePriceQuoteIfDiff(security, q)
	return nil
}

// storePriceQuoteIfDiff stages the quote unless the book already has the
// same price on the market date, or the security is already staged.
func (i *Importer) storePriceQuoteIfDiff(security *mdimport.Security, q QuoteRec) {
	cur := security.Currency()
	price := mdimport.M(q.Price, cur)
	oldPrice := mdimport.M(1, cur)
	day, snap, found := security.SnapshotForDate(i.marketDate)
	if found {
		oldPrice = security.ValidatedSnapshotPrice(day, snap, func(old, new mdimport.Money) {
			oldS, newS := mdimport.PriceStrings(old, new)
			i.writeFormatted("YQIMP00", security.Name(), security.Ticker(), oldS, newS)
			i.priceChanges.Corrected(security)
		})
	}

	if (!found || day != i.marketDate || !price.SameAmount(oldPrice)) && !i.priceChanges.Has(security) {
		oldS, newS := mdimport.PriceStrings(oldPrice, price)
		i.out.AddTone(console.ToneOf(price.Decimal(), oldPrice.Decimal()),
			i.printer.Sprintf("YQIMP03", security.Name(), security.Ticker(), oldS, newS, price.Change(oldPrice).SignedString()))

		i.priceChanges.Add(mdimport.NewSecurityHandler(security).ComparedTo(oldPrice).StoreNewQuote(i.marketDate, mdimport.Snapshot{
			Price:  price,
			High:   mdimport.M(q.High, cur),
			Low:    mdimport.M(q.Low, cur),
			Volume: mdimport.Q(q.Volume),
		}))
	}
}

// CommitChanges applies the staged quotes to the book.
func (i *Importer) CommitChanges() error {
	n := i.priceChanges.Apply()
	plural := "s"
	if n == 1 {
		plural = ""
	}
	i.writeFormatted("YQIMP07", n, plural)
	i.ForgetChanges()
	return nil
}

// ForgetChanges discards the staged quotes.
func (i *Importer) ForgetChanges() { i.priceChanges.Clear() }

// IsModified reports whether quotes are staged or current prices were corrected.
func (i *Importer) IsModified() bool { return i.priceChanges.Modified() }

// Changes returns the staged updates.
func (i *Importer) Changes() []*mdimport.SecurityHandler { return i.priceChanges.Handlers() }
