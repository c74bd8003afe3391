package mdimport

import (
	"iter"

	"github.com/etnz/mdimport/date"
)

// Snapshot is one dated price quote of a security.
type Snapshot struct {
	Price  Money
	High   Money // optional
	Low    Money // optional
	Volume Quantity
}

// Security is a tradable asset of the book, identified by its ticker.
type Security struct {
	ticker    string
	name      string
	currency  string
	price     Money // current price
	snapshots date.History[Snapshot]
}

// NewSecurity returns a security without any price.
func NewSecurity(ticker, name, currency string) *Security {
	return &Security{
		ticker:   ticker,
		name:     name,
		currency: currency,
		price:    M(0, currency),
	}
}

func (s *Security) Ticker() string   { return s.ticker }
func (s *Security) Name() string     { return s.name }
func (s *Security) Currency() string { return s.currency }

// Price returns the current price, the one used for valuation today.
func (s *Security) Price() Money { return s.price }

// SetPrice changes the current price.
func (s *Security) SetPrice(p Money) { s.price = p.In(s.currency) }

// AddSnapshot records a snapshot, replacing any snapshot on the same day.
func (s *Security) AddSnapshot(on date.Date, snap Snapshot) {
	snap.Price = snap.Price.In(s.currency)
	snap.High = snap.High.In(s.currency)
	snap.Low = snap.Low.In(s.currency)
	s.snapshots.Append(on, snap)
}

// Snapshots iterates over snapshots in chronological order.
func (s *Security) Snapshots() iter.Seq2[date.Date, Snapshot] { return s.snapshots.Values() }

// SnapshotForDate returns the snapshot on day 'on', or else the latest one before.
func (s *Security) SnapshotForDate(on date.Date) (date.Date, Snapshot, bool) {
	return s.snapshots.EntryAsOf(on)
}

// LatestSnapshot returns the most recent snapshot.
func (s *Security) LatestSnapshot() (date.Date, Snapshot, bool) {
	if s.snapshots.Len() == 0 {
		return date.Date{}, Snapshot{}, false
	}
	day, snap := s.snapshots.Latest()
	return day, snap, true
}

// ValidatedSnapshotPrice returns the price of the snapshot recorded on day 'on'.
//
// When that snapshot is the latest one, the current price must be equal to
// its price. If it is not, the current price is corrected and 'correct' is
// called with the previous and the new current price.
func (s *Security) ValidatedSnapshotPrice(on date.Date, snap Snapshot, correct func(old, new Money)) Money {
	latest, _, ok := s.LatestSnapshot()
	if ok && latest == on && !s.price.SameAmount(snap.Price) {
		old := s.price
		s.SetPrice(snap.Price)
		if correct != nil {
			correct(old, s.price)
		}
	}
	return snap.Price
}
