package fwimport

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/mdimport/date"
)

const (
	// FileNamePrefix starts the name of every NetBenefits position export.
	FileNamePrefix = "Portfolio_Position_"
	// DefaultPattern matches the position exports in a folder.
	DefaultPattern = FileNamePrefix + "*"

	fileNameDateLayout = "Jan-2-2006"
)

// MarketDateFromFileName returns the market date of an export named like
// Portfolio_Position_Jan-3-2025.csv.
//
// The file name carries the download date, positions are valued at the
// close of the previous day.
func MarketDateFromFileName(name string) (date.Date, bool) {
	base := filepath.Base(name)
	if !strings.HasPrefix(base, FileNamePrefix) {
		return date.Date{}, false
	}
	s := strings.TrimPrefix(base, FileNamePrefix)
	s = strings.TrimSuffix(s, filepath.Ext(s))
	t, err := time.Parse(fileNameDateLayout, s)
	if err != nil {
		return date.Date{}, false
	}
	return date.New(t.Date()).Add(-1), true
}
