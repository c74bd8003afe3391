package csvproc

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/transform"
)

// Console receives the lines reported while processing a file.
type Console interface {
	AddText(text string)
}

// Processor reads a CSV file row by row, and gives access to the current
// row values through a Mapping.
type Processor struct {
	file    string
	mapping *Mapping
	console Console
	printer *message.Printer

	header []string
	row    map[string]string
	rowNum int
}

// New returns a processor for file.
func New(file string, mapping *Mapping, console Console, tag language.Tag) *Processor {
	return &Processor{
		file:    file,
		mapping: mapping,
		console: console,
		printer: messages.Printer(tag),
	}
}

// File returns the file to import.
func (p *Processor) File() string { return p.file }

// Columns returns the header names of the file being processed.
func (p *Processor) Columns() []string { return p.header }

// RowNumber is the number of the current data row, starting at 1.
func (p *Processor) RowNumber() int { return p.rowNum }

func (p *Processor) addText(key string, args ...any) {
	p.console.AddText(p.printer.Sprintf(key, args...))
}

// ProcessFile calls processRow for every data row of the file.
//
// A file that cannot be opened is reported to the console, there is nothing
// to import. A RowError returned by processRow is reported and the row is
// skipped, any other error stops the processing and is returned.
func (p *Processor) ProcessFile(processRow func() error) error {
	f, err := os.Open(p.file)
	if err != nil {
		p.addText("MDUTL12", p.file, err)
		return nil // nothing to import
	}
	defer f.Close()

	p.header, p.row, p.rowNum = nil, nil, 0

	// exports from Windows tools often start with a byte order mark.
	r := transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := strings.Split(line, ",")
		if p.header == nil {
			p.header = make([]string, len(values))
			for i, v := range values {
				p.header[i] = unquote(v)
			}
			log.Debug("csv-header", "file", p.file, "columns", p.header)
			continue
		}

		p.rowNum++
		p.row = make(map[string]string, len(p.header))
		for i, h := range p.header {
			if i < len(values) {
				p.row[h] = values[i]
			} else {
				p.row[h] = ""
			}
		}

		err := processRow()
		var rowErr *RowError
		if errors.As(err, &rowErr) {
			p.addText("MDUTL15", p.rowNum, filepath.Base(p.file), rowErr)
			log.Debug("skip-row", "file", p.file, "row", p.rowNum, "err", rowErr)
			continue
		}
		if err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: %w", p.printer.Sprintf("MDUTL14", p.file), err)
	}
	return nil
}

// Col returns the value of the column mapped to key in the current row.
//
// Surrounding double quotes are removed and the value is trimmed.
func (p *Processor) Col(key string) (string, error) {
	col, mapped := p.mapping.Column(key)
	val, found := p.row[col]
	if !mapped || !found {
		if !mapped {
			col = key
		}
		found := "[" + strings.Join(p.header, ", ") + "]"
		return "", &ColumnError{
			Key:    key,
			Column: col,
			File:   p.file,
			Found:  p.header,
			msg:    p.printer.Sprintf("MDUTL11", col, key, p.file, found),
		}
	}
	return unquote(val), nil
}

// HasCol reports whether key is mapped to a column of the file.
func (p *Processor) HasCol(key string) bool {
	col, mapped := p.mapping.Column(key)
	if !mapped {
		return false
	}
	_, found := p.row[col]
	return found
}

// unquote removes one pair of enclosing double quotes and trims the result.
func unquote(val string) string {
	if len(val) >= 2 && strings.HasPrefix(val, `"`) && strings.HasSuffix(val, `"`) {
		val = val[1 : len(val)-1]
	}
	return strings.TrimSpace(val)
}
