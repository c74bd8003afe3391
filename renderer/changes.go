package renderer

import (
	"github.com/etnz/mdimport"
	"github.com/etnz/mdimport/date"
)

// Changes is the rendered view of staged price updates.
type Changes struct {
	Title   string
	Updates []Update
}

// Update is a staged price update.
type Update struct {
	Ticker   string
	Name     string
	On       date.Date
	OldPrice string
	NewPrice string
	Change   mdimport.Percent
}

// NewChanges creates the view of the staged updates.
func NewChanges(title string, handlers []*mdimport.SecurityHandler) *Changes {
	v := &Changes{Title: title}
	for _, h := range handlers {
		sec := h.Security()
		oldPrice, newPrice := mdimport.PriceStrings(h.OldPrice(), h.Snapshot().Price)
		v.Updates = append(v.Updates, Update{
			Ticker:   sec.Ticker(),
			Name:     escape(sec.Name()),
			On:       h.On(),
			OldPrice: oldPrice,
			NewPrice: newPrice,
			Change:   h.Snapshot().Price.Change(h.OldPrice()),
		})
	}
	return v
}
