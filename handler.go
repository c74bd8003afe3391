package mdimport

import (
	"slices"

	"github.com/charmbracelet/log"
	"github.com/etnz/mdimport/date"
)

// SecurityHandler is a deferred price update of a single security.
//
// Nothing changes in the book until ApplyUpdate is called.
type SecurityHandler struct {
	security *Security
	on       date.Date
	snap     Snapshot
	old      *Money // price the update was compared with
}

// NewSecurityHandler returns an empty update for sec.
func NewSecurityHandler(sec *Security) *SecurityHandler {
	return &SecurityHandler{security: sec}
}

// StoreNewPrice stages a closing price on day 'on'.
func (h *SecurityHandler) StoreNewPrice(price Money, on date.Date) *SecurityHandler {
	return h.StoreNewQuote(on, Snapshot{Price: price})
}

// StoreNewQuote stages a full quote on day 'on'.
func (h *SecurityHandler) StoreNewQuote(on date.Date, snap Snapshot) *SecurityHandler {
	h.on, h.snap = on, snap
	return h
}

// ComparedTo records the book price the new price was compared with.
func (h *SecurityHandler) ComparedTo(old Money) *SecurityHandler {
	h.old = &old
	return h
}

// OldPrice returns the price recorded by ComparedTo, or the current price.
func (h *SecurityHandler) OldPrice() Money {
	if h.old != nil {
		return *h.old
	}
	return h.security.Price()
}

func (h *SecurityHandler) Security() *Security { return h.security }
func (h *SecurityHandler) On() date.Date       { return h.on }
func (h *SecurityHandler) Snapshot() Snapshot  { return h.snap }

// ApplyUpdate records the staged snapshot. When it is the most recent one,
// it also becomes the current price of the security.
func (h *SecurityHandler) ApplyUpdate() {
	sec := h.security
	sec.AddSnapshot(h.on, h.snap)
	if latest, _, _ := sec.LatestSnapshot(); latest == h.on {
		sec.SetPrice(h.snap.Price)
	}
	log.Debug("apply-price-update", "ticker", sec.Ticker(), "on", h.on, "price", h.snap.Price)
}

// PriceChanges is the ordered set of staged security updates, at most one per security.
//
// It also records the securities whose current price was corrected during
// the import: those changes are already in the book, but still need saving.
type PriceChanges struct {
	handlers  []*SecurityHandler
	corrected []*Security
}

// Add stages h, replacing in place a previous update of the same security.
func (c *PriceChanges) Add(h *SecurityHandler) {
	i := slices.IndexFunc(c.handlers, func(x *SecurityHandler) bool { return x.security == h.security })
	if i >= 0 {
		c.handlers[i] = h
		return
	}
	c.handlers = append(c.handlers, h)
}

// Has reports whether an update of sec is staged.
func (c *PriceChanges) Has(sec *Security) bool {
	return slices.ContainsFunc(c.handlers, func(x *SecurityHandler) bool { return x.security == sec })
}

func (c *PriceChanges) Len() int { return len(c.handlers) }

// Handlers returns the staged updates in staging order.
func (c *PriceChanges) Handlers() []*SecurityHandler { return slices.Clone(c.handlers) }

// Apply applies all staged updates and returns the number of securities
// whose price changed, corrected ones included.
// The staged updates are kept, call Clear to forget them.
func (c *PriceChanges) Apply() int {
	for _, h := range c.handlers {
		h.ApplyUpdate()
	}
	n := len(c.handlers)
	for _, sec := range c.corrected {
		if !c.Has(sec) {
			n++
		}
	}
	return n
}

// Corrected records that the current price of sec was corrected.
func (c *PriceChanges) Corrected(sec *Security) {
	if !slices.Contains(c.corrected, sec) {
		c.corrected = append(c.corrected, sec)
	}
}

// Modified reports whether the book differs from its saved state: updates
// are staged or prices were corrected.
func (c *PriceChanges) Modified() bool { return len(c.handlers) > 0 || len(c.corrected) > 0 }

// Clear forgets all staged updates and corrections.
func (c *PriceChanges) Clear() { c.handlers, c.corrected = nil, nil }
