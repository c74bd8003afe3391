package csvproc

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Messages is a bundle of message formats identified by keys.
//
// Printers built from it format a key with its message, or with the key
// itself when it is not part of the bundle.
type Messages struct {
	cat *catalog.Builder
}

// NewMessages returns a bundle of English messages.
func NewMessages(msgs map[string]string) *Messages {
	cat := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range msgs {
		// only fails for invalid messages
		if err := cat.SetString(language.English, key, msg); err != nil {
			panic(err)
		}
	}
	return &Messages{cat: cat}
}

// Printer returns a printer for the best supported language matching tag.
func (m *Messages) Printer(tag language.Tag) *message.Printer {
	supported := m.cat.Languages()
	if len(supported) > 0 {
		_, i, _ := language.NewMatcher(supported).Match(tag)
		tag = supported[i]
	}
	return message.NewPrinter(tag, message.Catalog(m.cat))
}

var messages = NewMessages(map[string]string{
	"MDUTL11": "Unable to locate column %s (%s) in %s; Found columns %s",
	"MDUTL12": "Unable to open file %s: %v",
	"MDUTL14": "Error reading from file %s",
	"MDUTL15": "Skipped row %d of %s: %v",
})
