package csvproc

import (
	"fmt"
	"strings"

	"github.com/magiconair/properties"
)

// Mapping maps property keys (like "col.ticker") to the header names found
// in a CSV file.
type Mapping struct {
	props *properties.Properties
}

// LoadMapping parses the default mapping and, if override is not empty,
// merges the properties file override on top of it.
func LoadMapping(defaults []byte, override string) (*Mapping, error) {
	props, err := properties.Load(defaults, properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("invalid default column mapping: %w", err)
	}
	if override != "" {
		o, err := properties.LoadFile(override, properties.UTF8)
		if err != nil {
			return nil, fmt.Errorf("cannot load column mapping %q: %w", override, err)
		}
		props.Merge(o)
	}
	return &Mapping{props: props}, nil
}

// Column returns the header name mapped to key. An empty name leaves the key unmapped.
func (m *Mapping) Column(key string) (string, bool) {
	col, ok := m.props.Get(key)
	col = strings.TrimSpace(col)
	return col, ok && col != ""
}

// Keys returns the mapped keys in file order.
func (m *Mapping) Keys() []string { return m.props.Keys() }
