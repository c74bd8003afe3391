package mdimport

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}

}

// ParseDecimal reads a number as exported by brokers: a leading currency
// symbol, thousand separators and surrounding spaces are tolerated.
func ParseDecimal(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return decimal.Zero, fmt.Errorf("empty number")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q", s)
	}
	return d, nil
}

// Quantity is a number of shares, or any unit-less amount.
type Quantity struct {
	value decimal.Decimal
}

func Q[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

// ParseQuantity parses a share count with ParseDecimal rules.
func ParseQuantity(s string) (Quantity, error) {
	d, err := ParseDecimal(s)
	return Quantity{value: d}, err
}

func (t Quantity) Equal(p Quantity) bool           { return t.value.Equal(p.value) }
func (t Quantity) LessThan(quantity Quantity) bool { return t.value.LessThan(quantity.value) }
func (t Quantity) Add(p Quantity) Quantity         { return Quantity{value: t.value.Add(p.value)} }
func (t Quantity) Sub(p Quantity) Quantity         { return Quantity{value: t.value.Sub(p.value)} }
func (t Quantity) IsPositive() bool                { return t.value.IsPositive() }
func (t Quantity) IsZero() bool                    { return t.value.IsZero() }
func (t Quantity) Decimal() decimal.Decimal        { return t.value }
func (q Quantity) String() string                  { return q.value.String() }

// StringFixed formats the quantity with at least 'places' fraction digits.
func (q Quantity) StringFixed(places int) string {
	if d := digits(q.value); d > places {
		places = d
	}
	return q.value.StringFixed(int32(places))
}

// QuantityStrings formats two quantities with the same number of fraction digits.
func QuantityStrings(a, b Quantity) (string, string) {
	n := max(digits(a.value), digits(b.value))
	return a.value.StringFixed(int32(n)), b.value.StringFixed(int32(n))
}

// digits returns the number of significant fraction digits of d.
func digits(d decimal.Decimal) int {
	if exp := d.Exponent(); exp < 0 {
		// trailing zeros are not significant
		s := strings.TrimRight(d.String(), "0")
		if i := strings.IndexByte(s, '.'); i >= 0 {
			return len(s) - i - 1
		}
	}
	return 0
}

// MarshalJSON implements the json.Marshaler interface.
func (t Quantity) MarshalJSON() ([]byte, error) {
	return t.value.MarshalJSON()
}
func (t *Quantity) UnmarshalJSON(decimalBytes []byte) error {
	return t.value.UnmarshalJSON(decimalBytes)
}
