package mdimport

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Securities holds the securities of a book, in declaration order.
type Securities struct {
	securities []*Security
	index      map[string]*Security
}

// NewSecurities returns a new empty security table.
func NewSecurities() *Securities {
	return &Securities{
		securities: make([]*Security, 0),
		index:      make(map[string]*Security),
	}
}

func key(ticker string) string { return strings.ToUpper(strings.TrimSpace(ticker)) }

// ByTicker returns the security with that ticker, ignoring case, or nil.
func (s *Securities) ByTicker(ticker string) *Security { return s.index[key(ticker)] }

func (s *Securities) Has(ticker string) bool {
	_, ok := s.index[key(ticker)]
	return ok
}

// Add declares a new security. Tickers are unique.
func (s *Securities) Add(sec *Security) error {
	k := key(sec.Ticker())
	if k == "" {
		return fmt.Errorf("security %q has no ticker", sec.Name())
	}
	if _, exists := s.index[k]; exists {
		return fmt.Errorf("ticker %q is already defined", sec.Ticker())
	}
	s.securities = append(s.securities, sec)
	s.index[k] = sec
	return nil
}

func (s *Securities) Len() int { return len(s.securities) }

// All iterates over securities in declaration order.
func (s *Securities) All() iter.Seq[*Security] { return slices.Values(s.securities) }
