package mdimport

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// maxPriceDigits caps the fraction digits used to display prices.
const maxPriceDigits = 6

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// ParseMoney parses an amount in the given currency with ParseDecimal rules.
func ParseMoney(s, currency string) (Money, error) {
	d, err := ParseDecimal(s)
	return Money{value: d, cur: currency}, err
}

// functions that requires the full currency

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// StringDigits formats the money with 'fraction' digits, or the currency
// default when that is larger.
func (m Money) StringDigits(fraction int) string {
	cur := m.currency()
	if fraction < cur.Fraction {
		fraction = cur.Fraction
	}
	f := money.NewFormatter(fraction, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)
	return f.Format(m.value.Round(int32(fraction)).Shift(int32(fraction)).IntPart())
}

// PriceStrings formats a pair of prices with the same number of fraction
// digits, enough to show both values exactly (up to a limit).
func PriceStrings(a, b Money) (string, string) {
	n := max(digits(a.value), digits(b.value))
	n = min(n, maxPriceDigits)
	return a.StringDigits(n), b.StringDigits(n)
}

// Simple wrapper around money.Money

func (m Money) Currency() string           { return m.cur }
func (m Money) Decimal() decimal.Decimal   { return m.value }
func (m Money) Equal(n Money) bool         { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) SameAmount(n Money) bool    { return m.value.Equal(n.value) }
func (m Money) IsZero() bool               { return m.value.IsZero() }
func (m Money) IsPositive() bool           { return m.value.IsPositive() }
func (m Money) LessThan(amount Money) bool { return m.value.LessThan(amount.value) }
func (m Money) GreaterThan(n Money) bool   { return m.value.GreaterThan(n.value) }
func (m Money) Mul(n Quantity) Money       { return Money{value: m.value.Mul(n.value), cur: m.cur} }
func (m Money) In(currency string) Money   { return Money{value: m.value, cur: currency} }
func (m Money) Compare(n Money) int        { return m.value.Cmp(n.value) }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// Change returns the relative change from old to m in percent.
// A zero old value yields a zero change.
func (m Money) Change(old Money) Percent {
	if old.value.IsZero() {
		return 0
	}
	ratio := m.value.Div(old.value).Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
	return Percent(ratio.InexactFloat64())
}
