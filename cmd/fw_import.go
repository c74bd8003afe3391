package cmd

import (
	"context"
	"flag"

	"github.com/etnz/mdimport"
	"github.com/etnz/mdimport/console"
	"github.com/etnz/mdimport/date"
	"github.com/etnz/mdimport/fwimport"
	"github.com/google/subcommands"
)

type fwImportCmd struct {
	importFlags
}

func (*fwImportCmd) Name() string     { return "fw-import" }
func (*fwImportCmd) Synopsis() string { return "import Fidelity NetBenefits positions" }
func (*fwImportCmd) Usage() string {
	return `fw-import [-file <file>] [-date <date>] [-commit] [-html <file>]

  Reads a NetBenefits position export, reports the prices and balances that
  differ from the book, and stages price updates.

  The default file is the newest Portfolio_Position_* file in the downloads
  folder. The market date defaults to the day before the date in the file
  name.

  Nothing is written to the book unless -commit is set.
`
}

func (c *fwImportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	run := &importRun{
		name:     "fw-import",
		pattern:  fwimport.DefaultPattern,
		fileDate: fwimport.MarketDateFromFileName,
		newImporter: func(book *mdimport.Book, file string, marketDate date.Date, out *console.Log) (stagingImporter, error) {
			mapping, err := fwimport.LoadMapping(settings.FwColumns)
			if err != nil {
				return nil, err
			}
			imp := fwimport.New(book, file, marketDate, mapping, out, settings.Locale)
			imp.SetDefaultCurrency(settings.Currency)
			return imp, nil
		},
	}
	return run.execute(&c.importFlags)
}
