package mdimport

import (
	"fmt"
	"iter"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType is the kind of an account in the book.
type AccountType string

const (
	RootAccount       AccountType = "root"
	InvestmentAccount AccountType = "investment"
	SecurityAccount   AccountType = "security"
	BankAccount       AccountType = "bank"
)

// ParseAccountType accepts any type but the root one.
func ParseAccountType(s string) (AccountType, error) {
	switch t := AccountType(strings.ToLower(strings.TrimSpace(s))); t {
	case InvestmentAccount, SecurityAccount, BankAccount:
		return t, nil
	}
	return "", fmt.Errorf("invalid account type %q, must be one of investment, security, bank", s)
}

// Account is a node of the account tree.
//
// Investment accounts have an account number, security accounts hold shares
// of a single security and are named after it.
type Account struct {
	typ      AccountType
	name     string
	number   string
	ticker   string
	currency string
	balance  decimal.Decimal

	parent *Account
	subs   []*Account
}

// NewAccount returns a detached account.
func NewAccount(typ AccountType, name string) *Account {
	return &Account{typ: typ, name: name}
}

func (a *Account) Type() AccountType       { return a.typ }
func (a *Account) Name() string            { return a.name }
func (a *Account) Number() string          { return a.number }
func (a *Account) Ticker() string          { return a.ticker }
func (a *Account) Currency() string        { return a.currency }
func (a *Account) Parent() *Account        { return a.parent }
func (a *Account) SubAccounts() []*Account { return a.subs }

func (a *Account) SetNumber(number string)      { a.number = number }
func (a *Account) SetTicker(ticker string)      { a.ticker = ticker }
func (a *Account) SetCurrency(currency string)  { a.currency = currency }
func (a *Account) SetBalance(b decimal.Decimal) { a.balance = b }

// CurrentBalance is the money balance, or the number of shares for a security account.
func (a *Account) CurrentBalance() decimal.Decimal { return a.balance }

// Balance returns the current balance as money in the account currency.
func (a *Account) Balance() Money { return M(a.balance, a.currency) }

// Shares returns the current balance as a quantity of shares.
func (a *Account) Shares() Quantity { return Q(a.balance) }

// FullName is the colon separated path from the root, the root excluded.
func (a *Account) FullName() string {
	if a.parent == nil || a.parent.typ == RootAccount {
		return a.name
	}
	return a.parent.FullName() + ":" + a.name
}

// AddSubAccount attaches sub as a child. Names are unique among siblings.
func (a *Account) AddSubAccount(sub *Account) error {
	if strings.TrimSpace(sub.name) == "" {
		return fmt.Errorf("account name cannot be empty")
	}
	if _, exists := a.SubAccountByName(sub.name); exists {
		return fmt.Errorf("account %q already exists in %q", sub.name, a.FullName())
	}
	sub.parent = a
	a.subs = append(a.subs, sub)
	return nil
}

// SubAccountByName returns the direct child with that name, ignoring case.
func (a *Account) SubAccountByName(name string) (*Account, bool) {
	for _, sub := range a.subs {
		if strings.EqualFold(sub.name, name) {
			return sub, true
		}
	}
	return nil, false
}

// Walk iterates depth-first over all descendants of a.
func (a *Account) Walk() iter.Seq[*Account] {
	return func(yield func(*Account) bool) {
		a.walk(yield)
	}
}

func (a *Account) walk(yield func(*Account) bool) bool {
	for _, sub := range a.subs {
		if !yield(sub) || !sub.walk(yield) {
			return false
		}
	}
	return true
}

// FindInvestment searches investment accounts depth-first, first by account
// number then by name (ignoring case).
func (a *Account) FindInvestment(numberOrName string) (*Account, bool) {
	numberOrName = strings.TrimSpace(numberOrName)
	if numberOrName == "" {
		return nil, false
	}
	for acc := range a.Walk() {
		if acc.typ == InvestmentAccount && acc.number == numberOrName {
			return acc, true
		}
	}
	for acc := range a.Walk() {
		if acc.typ == InvestmentAccount && strings.EqualFold(acc.name, numberOrName) {
			return acc, true
		}
	}
	return nil, false
}

// FindByFullName returns the descendant with that full name.
func (a *Account) FindByFullName(fullName string) (*Account, bool) {
	for acc := range a.Walk() {
		if strings.EqualFold(acc.FullName(), fullName) {
			return acc, true
		}
	}
	return nil, false
}
