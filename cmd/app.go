// Package cmd implements the mdimport command line: importers, book
// maintenance, and documentation.
package cmd

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/etnz/mdimport"
	"github.com/etnz/mdimport/config"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&fwImportCmd{}, "import")
	c.Register(&yqImportCmd{}, "import")

	c.Register(&openAccountCmd{}, "book")
	c.Register(&declareSecurityCmd{}, "book")
	c.Register(&bookCmd{}, "book")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "", "Configuration file (default mdimport.yaml in the current directory or $HOME/.config/mdimport)")
	bookFolder = flag.String("book", ".mdbook", "Path to the book folder")
	downloads  = flag.String("downloads", "", "Folder searched for the files to import (default $HOME/Downloads)")
	locale     = flag.String("locale", "en-US", "Language of the import reports")
	Verbose    = flag.Bool("v", false, "Log debug information")

	defaultCurrency = flag.String("default-currency", "USD", "Currency of the accounts that do not set one")
)

// flagKeys maps the global flags to their configuration key.
var flagKeys = map[string]string{
	"book":             config.KeyBook,
	"downloads":        config.KeyDownloads,
	"locale":           config.KeyLocale,
	"v":                config.KeyVerbose,
	"default-currency": config.KeyCurrency,
}

// settings are the effective settings, loaded by Init.
var settings = &config.Config{Book: ".mdbook", Currency: "USD"}

// Init loads the settings and installs the default logger. It must be called
// after the command line flags have been parsed.
func Init() error {
	overrides := make(map[string]string)
	flag.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			overrides[key] = f.Value.String()
		}
	})
	cfg, err := config.Load(*configFile, overrides)
	if err != nil {
		return err
	}
	settings = cfg
	log.SetDefault(newLogger(cfg.Verbose))
	log.Debug("settings", "book", cfg.Book, "downloads", cfg.Downloads, "locale", cfg.Locale)
	return nil
}

func newLogger(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "mdimport",
		Level:           level,
	})
}

// OpenBook decodes the book from the book folder. A missing folder is an
// empty book.
func OpenBook() (*mdimport.Book, error) {
	return mdimport.DecodeBook(settings.Book)
}

// SaveBook encodes the book into the book folder.
func SaveBook(b *mdimport.Book) error {
	return mdimport.EncodeBook(settings.Book, b)
}
