package cmd

import (
	"context"
	"flag"

	"github.com/etnz/mdimport"
	"github.com/etnz/mdimport/console"
	"github.com/etnz/mdimport/date"
	"github.com/etnz/mdimport/yqimport"
	"github.com/google/subcommands"
)

type yqImportCmd struct {
	importFlags
}

func (*yqImportCmd) Name() string     { return "yq-import" }
func (*yqImportCmd) Synopsis() string { return "import Yahoo quote prices" }
func (*yqImportCmd) Usage() string {
	return `yq-import [-file <file>] [-date <date>] [-commit] [-html <file>]

  Reads a Yahoo quotes export and stages a price snapshot for every security
  whose price differs from the book.

  The default file is the newest quotes*.csv file in the downloads folder.
  The market date defaults to today.

  Nothing is written to the book unless -commit is set.
`
}

func (c *yqImportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	run := &importRun{
		name:    "yq-import",
		pattern: yqimport.DefaultPattern,
		newImporter: func(book *mdimport.Book, file string, marketDate date.Date, out *console.Log) (stagingImporter, error) {
			mapping, err := yqimport.LoadMapping(settings.YqColumns)
			if err != nil {
				return nil, err
			}
			return yqimport.New(book, file, marketDate, mapping, out, settings.Locale), nil
		},
	}
	return run.execute(&c.importFlags)
}
