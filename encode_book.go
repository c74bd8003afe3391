package mdimport

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/etnz/mdimport/date"
	"github.com/shopspring/decimal"
)

const (
	accountsFile      = "accounts.jsonl"
	securitiesFile    = "securities.jsonl"
	snapshotFilesGlob = "[0-9][0-9][0-9][0-9].jsonl"
)

// This file contains code to persist a book in a folder, in a way that is still human-readable and git-friendly.
//
//   accounts.jsonl    one account per line, parents before children.
//   securities.jsonl  one security per line, in declaration order.
//   YYYY.jsonl        one snapshot per line, sorted by date then ticker, a file per year.
//
// Decode reads the definition files, then all the snapshot files found with a glob.
// Encode writes every file, then deletes the snapshot files that were not written.

// jaccount is an account line.
type jaccount struct {
	Name     string          `json:"name"`
	Type     AccountType     `json:"type"`
	Parent   string          `json:"parent"`
	Number   string          `json:"number"`
	Ticker   string          `json:"ticker"`
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
}

// jsecurity is a security line.
type jsecurity struct {
	Ticker   string          `json:"ticker"`
	Name     string          `json:"name"`
	Currency string          `json:"currency"`
	Price    decimal.Decimal `json:"price"`
}

// jsnapshot is a snapshot line.
type jsnapshot struct {
	On     date.Date       `json:"on"`
	Ticker string          `json:"ticker"`
	Price  decimal.Decimal `json:"price"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Volume decimal.Decimal `json:"volume"`
}

// fileLine structures a line from a collection of files as the persistence layer represent them.
type fileLine struct {
	filename string
	i        int
	txt      string
}

// loadLines read all non blank lines from a set of files and return them in list of structured lines.
func loadLines(filenames ...string) (list []fileLine, err error) {
	for _, filename := range filenames {
		r, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("cannot open %q for reading: %w", filename, err)
		}
		list, err = scanLines(list, filename, r)
		r.Close()
		if err != nil {
			return nil, err
		}
	}
	return list, nil
}

func scanLines(list []fileLine, filename string, r io.Reader) ([]fileLine, error) {
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		txt := scanner.Text()
		if strings.TrimSpace(txt) == "" {
			continue
		}
		list = append(list, fileLine{filename, i, txt})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", filename, err)
	}
	return list, nil
}

// decodeAccounts adds the account lines to b.
func (b *Book) decodeAccounts(lines []fileLine) error {
	for _, l := range lines {
		var ja jaccount
		if err := json.Unmarshal([]byte(l.txt), &ja); err != nil {
			return fmt.Errorf("parse error %s:%v: not a correct json: %w", l.filename, l.i, err)
		}
		if _, err := ParseAccountType(string(ja.Type)); err != nil {
			return fmt.Errorf("parse error %s:%v: %w", l.filename, l.i, err)
		}
		parent := b.root
		if ja.Parent != "" {
			var ok bool
			if parent, ok = b.root.FindByFullName(ja.Parent); !ok {
				return fmt.Errorf("parse error %s:%v: parent account %q must be declared before", l.filename, l.i, ja.Parent)
			}
		}
		acc := NewAccount(ja.Type, ja.Name)
		acc.SetNumber(ja.Number)
		acc.SetTicker(ja.Ticker)
		acc.SetCurrency(ja.Currency)
		acc.SetBalance(ja.Balance)
		if err := parent.AddSubAccount(acc); err != nil {
			return fmt.Errorf("parse error %s:%v: %w", l.filename, l.i, err)
		}
	}
	return nil
}

// decodeSecurities adds the security lines to b.
func (b *Book) decodeSecurities(lines []fileLine) error {
	for _, l := range lines {
		var js jsecurity
		if err := json.Unmarshal([]byte(l.txt), &js); err != nil {
			return fmt.Errorf("parse error %s:%v: not a correct json: %w", l.filename, l.i, err)
		}
		sec := NewSecurity(js.Ticker, js.Name, js.Currency)
		sec.SetPrice(M(js.Price, js.Currency))
		if err := b.securities.Add(sec); err != nil {
			log.Warn("format error", "file", l.filename, "line", l.i, "err", err)
			continue
		}
	}
	return nil
}

// decodeSnapshots adds the snapshot lines to the book securities.
func (b *Book) decodeSnapshots(lines []fileLine) error {
	for _, l := range lines {
		var js jsnapshot
		if err := json.Unmarshal([]byte(l.txt), &js); err != nil {
			return fmt.Errorf("parse error %s:%v: not a correct json: %w", l.filename, l.i, err)
		}
		if js.On.IsZero() {
			return fmt.Errorf("parse error %s:%v: missing the property %q with a date", l.filename, l.i, "on")
		}
		sec := b.securities.ByTicker(js.Ticker)
		if sec == nil {
			return fmt.Errorf("parse error %s:%v: property %q must be an existing ticker", l.filename, l.i, "ticker")
		}
		sec.AddSnapshot(js.On, Snapshot{
			Price:  M(js.Price, sec.Currency()),
			High:   M(js.High, sec.Currency()),
			Low:    M(js.Low, sec.Currency()),
			Volume: Q(js.Volume),
		})
	}
	return nil
}

// DecodeBook reads a book folder. A missing folder is an empty book.
func DecodeBook(folder string) (*Book, error) {
	b := NewBook()

	if _, err := os.Stat(folder); errors.Is(err, fs.ErrNotExist) {
		return b, nil
	}

	for _, def := range []struct {
		name   string
		decode func([]fileLine) error
	}{
		{accountsFile, b.decodeAccounts},
		{securitiesFile, b.decodeSecurities},
	} {
		filename := filepath.Join(folder, def.name)
		lines, err := loadLines(filename)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load error: %w", err)
		}
		if err := def.decode(lines); err != nil {
			return nil, fmt.Errorf("load error: %w", err)
		}
	}

	// Use glob to find all the files that are part of the book.
	filenames, err := filepath.Glob(filepath.Join(folder, snapshotFilesGlob))
	if err != nil {
		return nil, fmt.Errorf("load error: cannot scan folder %q for snapshot files: %w", folder, err)
	}
	lines, err := loadLines(filenames...)
	if err != nil {
		return nil, fmt.Errorf("load error: %w", err)
	}
	if err := b.decodeSnapshots(lines); err != nil {
		return nil, fmt.Errorf("load error: %w", err)
	}
	return b, nil
}

// Persist section.

func encodeAccount(acc *Account) ([]byte, error) {
	var w jsonObjectWriter
	w.Append("name", acc.Name())
	w.Append("type", acc.Type())
	w.Optional("parent", acc.Parent().FullName())
	w.Optional("number", acc.Number())
	w.Optional("ticker", acc.Ticker())
	w.Optional("currency", acc.Currency())
	w.OptionalAmount("balance", acc.CurrentBalance())
	return w.MarshalJSON()
}

func encodeSecurity(sec *Security) ([]byte, error) {
	var w jsonObjectWriter
	w.Append("ticker", sec.Ticker())
	w.Optional("name", sec.Name())
	w.Append("currency", sec.Currency())
	w.OptionalAmount("price", sec.Price().Decimal())
	return w.MarshalJSON()
}

func encodeSnapshot(on date.Date, ticker string, snap Snapshot) ([]byte, error) {
	var w jsonObjectWriter
	w.Append("on", on)
	w.Append("ticker", ticker)
	w.Append("price", snap.Price.Decimal())
	w.OptionalAmount("high", snap.High.Decimal())
	w.OptionalAmount("low", snap.Low.Decimal())
	w.OptionalAmount("volume", snap.Volume.Decimal())
	return w.MarshalJSON()
}

// writeFile creates filename with one line per item.
func writeFile(filename string, lines [][]byte) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("persist error: cannot create file %q: %w", filename, err)
	}
	defer f.Close()
	log.Debug("create-book-file", "name", filename)

	w := bufio.NewWriter(f)
	for _, l := range lines {
		w.Write(l)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("persist error: write error on file %q: %w", filename, err)
	}
	return f.Close()
}

// EncodeBook writes the book into folder, creating it if needed.
func EncodeBook(folder string, b *Book) error {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("persist error: cannot create folder %q: %w", folder, err)
	}

	var accounts [][]byte
	for acc := range b.root.Walk() {
		line, err := encodeAccount(acc)
		if err != nil {
			return fmt.Errorf("persist error: cannot marshal account %q: %w", acc.FullName(), err)
		}
		accounts = append(accounts, line)
	}
	if err := writeFile(filepath.Join(folder, accountsFile), accounts); err != nil {
		return err
	}

	// we first generate the snapshot values into this list of structured items.
	type item struct {
		day    date.Date
		ticker string
		snap   Snapshot
	}
	var items []item
	var securities [][]byte
	for sec := range b.securities.All() {
		line, err := encodeSecurity(sec)
		if err != nil {
			return fmt.Errorf("persist error: cannot marshal security %q: %w", sec.Ticker(), err)
		}
		securities = append(securities, line)
		for day, snap := range sec.Snapshots() {
			items = append(items, item{day, sec.Ticker(), snap})
		}
	}
	if err := writeFile(filepath.Join(folder, securitiesFile), securities); err != nil {
		return err
	}

	slices.SortStableFunc(items, func(a, b item) int {
		if c := a.day.Compare(b.day); c != 0 {
			return c
		}
		return strings.Compare(a.ticker, b.ticker)
	})

	// Group snapshot lines by yearly file.
	files := make(map[string][][]byte)
	var order []string
	for _, it := range items {
		filename := filepath.Join(folder, fmt.Sprintf("%04d.jsonl", it.day.Year()))
		line, err := encodeSnapshot(it.day, it.ticker, it.snap)
		if err != nil {
			return fmt.Errorf("persist error: cannot marshal snapshot %s %s: %w", it.ticker, it.day, err)
		}
		if _, ok := files[filename]; !ok {
			order = append(order, filename)
		}
		files[filename] = append(files[filename], line)
	}
	for _, filename := range order {
		if err := writeFile(filename, files[filename]); err != nil {
			return err
		}
	}

	// Delete extraneous files.
	filenames, err := filepath.Glob(filepath.Join(folder, snapshotFilesGlob))
	if err != nil {
		return fmt.Errorf("persist error: cannot scan folder %q for snapshot files to be deleted: %w", folder, err)
	}
	for _, filename := range filenames {
		if _, ok := files[filename]; ok {
			continue // skip created ones
		}
		if err := os.Remove(filename); err != nil {
			return fmt.Errorf("persist error: cannot delete file %q: %w", filename, err)
		}
		log.Debug("delete-book-file", "name", filename)
	}
	return nil
}
