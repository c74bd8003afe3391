package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/mdimport"
	"github.com/google/subcommands"
)

type openAccountCmd struct {
	name     string
	number   string
	parent   string
	typ      string
	ticker   string
	balance  string
	currency string
}

func (*openAccountCmd) Name() string     { return "open-account" }
func (*openAccountCmd) Synopsis() string { return "add an account to the book" }
func (*openAccountCmd) Usage() string {
	return `open-account -name <name> [-type investment|security|bank] [-parent <account>] [-number <number>] [-ticker <ticker>] [-balance <amount>] [-currency <currency>]

  Adds an account to the book:
  - investment accounts are matched to the import rows by number, then by name.
  - security accounts hold the shares of one security, they must have a
    ticker and an investment account parent.
  - bank accounts hold cash.

  The balance is an amount of money, or a number of shares for a security
  account.
`
}

func (c *openAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Account name (required)")
	f.StringVar(&c.number, "number", "", "Account number")
	f.StringVar(&c.parent, "parent", "", "Full name of the parent account (default top level)")
	f.StringVar(&c.typ, "type", string(mdimport.InvestmentAccount), "Account type: investment, security or bank")
	f.StringVar(&c.ticker, "ticker", "", "Ticker of the security held (security accounts)")
	f.StringVar(&c.balance, "balance", "0", "Current balance")
	f.StringVar(&c.currency, "currency", "", "Account currency, 3-letter code (default the configured currency)")
}

func (c *openAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name is required.")
		return subcommands.ExitUsageError
	}
	typ, err := mdimport.ParseAccountType(c.typ)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if typ == mdimport.SecurityAccount && c.ticker == "" {
		fmt.Fprintln(os.Stderr, "Error: -ticker is required for a security account.")
		return subcommands.ExitUsageError
	}
	balance, err := mdimport.ParseDecimal(c.balance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing balance: %v\n", err)
		return subcommands.ExitUsageError
	}

	book, err := OpenBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book %q: %v\n", settings.Book, err)
		return subcommands.ExitFailure
	}

	parent := book.Root()
	if c.parent != "" {
		var ok bool
		if parent, ok = book.Root().FindByFullName(c.parent); !ok {
			fmt.Fprintf(os.Stderr, "Error: parent account %q not found.\n", c.parent)
			return subcommands.ExitFailure
		}
	}
	if typ == mdimport.SecurityAccount && parent.Type() != mdimport.InvestmentAccount {
		fmt.Fprintln(os.Stderr, "Error: a security account must have an investment account -parent.")
		return subcommands.ExitUsageError
	}

	acc := mdimport.NewAccount(typ, c.name)
	acc.SetNumber(c.number)
	acc.SetTicker(c.ticker)
	if c.currency == "" {
		c.currency = settings.Currency
	}
	acc.SetCurrency(c.currency)
	acc.SetBalance(balance)
	if err := parent.AddSubAccount(acc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := SaveBook(book); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving book %q: %v\n", settings.Book, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ Successfully opened account '%s'.\n", acc.FullName())
	return subcommands.ExitSuccess
}
