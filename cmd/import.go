package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/etnz/mdimport"
	"github.com/etnz/mdimport/console"
	"github.com/etnz/mdimport/csvproc"
	"github.com/etnz/mdimport/date"
	"github.com/etnz/mdimport/feature"
	"github.com/etnz/mdimport/renderer"
	"github.com/google/subcommands"
)

// importFlags are the flags shared by the import commands.
type importFlags struct {
	file   string
	date   string
	commit bool
	html   string
}

func (c *importFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "CSV file to import (default the newest matching file in the downloads folder)")
	f.StringVar(&c.date, "date", "", "Market date of the prices (YYYY-MM-DD)")
	f.BoolVar(&c.commit, "commit", false, "Apply the staged price updates and save the book")
	f.StringVar(&c.html, "html", "", "Write the import report as an HTML document into this file")
}

// importRun describes one import command run.
type importRun struct {
	name    string // feature name, also the report title
	pattern string // default file pattern in the downloads folder
	// fileDate returns the market date carried by the file name, if any.
	fileDate func(file string) (date.Date, bool)
	// newImporter builds the importer.
	newImporter func(book *mdimport.Book, file string, marketDate date.Date, out *console.Log) (stagingImporter, error)
}

// stagingImporter is an importer that can list its staged updates.
type stagingImporter interface {
	feature.Importer
	Changes() []*mdimport.SecurityHandler
}

var errNoFile = errors.New("no file to import")

// resolveFile returns the file to import.
func (r *importRun) resolveFile(file string) (string, error) {
	if file != "" {
		return file, nil
	}
	if found := csvproc.DefaultFile(settings.Downloads, r.pattern); found != "" {
		return found, nil
	}
	return "", fmt.Errorf("%w: no file matching %q in %q, use -file", errNoFile, r.pattern, settings.Downloads)
}

// marketDate returns the market date: the -date flag, the file name date,
// or today.
func (r *importRun) marketDate(flagDate, file string) (date.Date, error) {
	if flagDate != "" {
		return date.Parse(flagDate)
	}
	if r.fileDate != nil {
		if day, ok := r.fileDate(file); ok {
			return day, nil
		}
	}
	return date.Today(), nil
}

func (r *importRun) execute(c *importFlags) subcommands.ExitStatus {
	file, err := r.resolveFile(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	day, err := r.marketDate(c.date, file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	book, err := OpenBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading book %q: %v\n", settings.Book, err)
		return subcommands.ExitFailure
	}

	out := new(console.Log)
	importer, err := r.newImporter(book, file, day, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	feat := feature.New(r.name, importer, out, func() error { return SaveBook(book) })
	defer feat.Cleanup()

	fmt.Printf("Importing %s\n", file)
	fmt.Printf("Market date: %s (%s)\n", day, day.Format("Mon"))

	status := subcommands.ExitSuccess
	staged := false
	if err := feat.ImportFile(); err != nil {
		status = subcommands.ExitFailure
	} else if staged = feat.IsModified(); staged && c.commit {
		if err := feat.CommitChanges(); err != nil {
			status = subcommands.ExitFailure
		}
	}

	if err := out.Render(os.Stdout); err != nil {
		log.Error("cannot render the report", "err", err)
	}
	if c.html != "" {
		if err := writeHTML(c.html, r.name+": "+filepath.Base(file), out); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
			status = subcommands.ExitFailure
		}
	}
	if staged && !c.commit && status == subcommands.ExitSuccess {
		if changes := importer.Changes(); len(changes) > 0 {
			printMarkdown(renderer.RenderChanges(renderer.NewChanges("Staged price updates", changes)))
		}
		fmt.Println("Nothing was written to the book, run again with -commit to apply the price updates.")
	}
	return status
}

func writeHTML(filename, title string, out *console.Log) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := out.WriteHTML(f, title); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
