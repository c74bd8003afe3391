package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/mdimport"
	"github.com/etnz/mdimport/date"
	"github.com/google/subcommands"
)

type declareSecurityCmd struct {
	ticker   string
	name     string
	currency string
	price    string
	date     string
}

func (*declareSecurityCmd) Name() string     { return "declare-security" }
func (*declareSecurityCmd) Synopsis() string { return "declare a security in the book" }
func (*declareSecurityCmd) Usage() string {
	return `declare-security -ticker <ticker> -name <name> [-currency <currency>] [-price <price> [-d <date>]]

  Declares a security. Import rows are matched to securities by ticker,
  ignoring case. With -price, a first quote is recorded on the given date and
  becomes the current price.
`
}

func (c *declareSecurityCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Ticker symbol (required)")
	f.StringVar(&c.name, "name", "", "Security name (required)")
	f.StringVar(&c.currency, "currency", "", "The currency of the security, 3-letter code (default the configured currency)")
	f.StringVar(&c.price, "price", "", "Optional current price")
	f.StringVar(&c.date, "d", date.Today().String(), "Date of the price (YYYY-MM-DD)")
}

func (c *declareSecurityCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -ticker and -name flags are required.")
		return subcommands.ExitUsageError
	}

	if c.currency == "" {
		c.currency = settings.Currency
	}
	sec := mdimport.NewSecurity(c.ticker, c.name, c.currency)
	if c.price != "" {
		price, err := mdimport.ParseMoney(c.price, c.currency)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
			return subcommands.ExitUsageError
		}
		day, err := date.Parse(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		sec.AddSnapshot(day, mdimport.Snapshot{Price: price})
		sec.SetPrice(price)
	}

	book, err := OpenBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book %q: %v\n", settings.Book, err)
		return subcommands.ExitFailure
	}
	if err := book.Securities().Add(sec); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveBook(book); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving book %q: %v\n", settings.Book, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ Successfully declared security '%s'.\n", sec.Ticker())
	return subcommands.ExitSuccess
}
