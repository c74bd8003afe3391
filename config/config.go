// Package config loads the mdimport settings.
//
// Settings are layered, each layer overriding the previous one: defaults,
// the mdimport.yaml file, MDIMPORT_* environment variables, and finally the
// flags set on the command line.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Keys of the settings.
const (
	KeyBook      = "book"
	KeyDownloads = "downloads"
	KeyLocale    = "locale"
	KeyVerbose   = "verbose"
	KeyCurrency  = "currency"
	KeyFwColumns = "fw.columns"
	KeyYqColumns = "yq.columns"
)

// EnvPrefix prefixes the environment variables read, and passed to extensions.
const EnvPrefix = "MDIMPORT"

// Config holds the effective settings.
type Config struct {
	Book      string       // book folder
	Downloads string       // folder searched for files to import
	Locale    language.Tag // language of the reports
	Verbose   bool
	Currency  string // currency of accounts that do not set one
	FwColumns string // optional column mapping override for fw-import
	YqColumns string // optional column mapping override for yq-import
}

// Load reads the settings. configFile, when not empty, replaces the
// mdimport.yaml search. overrides are the values of the flags explicitly set.
func Load(configFile string, overrides map[string]string) (*Config, error) {
	v := viper.New()

	home, _ := os.UserHomeDir()
	v.SetDefault(KeyBook, ".mdbook")
	v.SetDefault(KeyDownloads, filepath.Join(home, "Downloads"))
	v.SetDefault(KeyLocale, "en-US")
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyCurrency, "USD")
	v.SetDefault(KeyFwColumns, "")
	v.SetDefault(KeyYqColumns, "")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("mdimport")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home != "" {
			v.AddConfigPath(filepath.Join(home, ".config", "mdimport"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("cannot read configuration: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range overrides {
		v.Set(key, value)
	}

	tag, err := language.Parse(v.GetString(KeyLocale))
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", KeyLocale, v.GetString(KeyLocale), err)
	}
	return &Config{
		Book:      v.GetString(KeyBook),
		Downloads: v.GetString(KeyDownloads),
		Locale:    tag,
		Verbose:   v.GetBool(KeyVerbose),
		Currency:  strings.ToUpper(v.GetString(KeyCurrency)),
		FwColumns: v.GetString(KeyFwColumns),
		YqColumns: v.GetString(KeyYqColumns),
	}, nil
}

// Env returns the settings as environment variables, for extensions.
func (c *Config) Env() []string {
	return []string{
		EnvPrefix + "_BOOK=" + c.Book,
		EnvPrefix + "_DOWNLOADS=" + c.Downloads,
		EnvPrefix + "_LOCALE=" + c.Locale.String(),
		EnvPrefix + "_VERBOSE=" + strconv.FormatBool(c.Verbose),
		EnvPrefix + "_CURRENCY=" + c.Currency,
	}
}
