package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/mdimport/renderer"
	"github.com/google/subcommands"
)

type bookCmd struct {
	raw bool
}

func (*bookCmd) Name() string     { return "book" }
func (*bookCmd) Synopsis() string { return "show the accounts and securities of the book" }
func (*bookCmd) Usage() string {
	return `book [-raw]

  Shows the account tree with balances, and the securities with their
  current price and last quote.
`
}

func (c *bookCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "Print the markdown source instead of rendering it")
}

func (c *bookCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := OpenBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book %q: %v\n", settings.Book, err)
		return subcommands.ExitFailure
	}
	md := renderer.RenderBook(renderer.NewBook(book))
	if c.raw {
		fmt.Print(md)
		return subcommands.ExitSuccess
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
