package mdimport

// Book is the set of accounts and securities being reconciled.
type Book struct {
	root       *Account
	securities *Securities
}

// NewBook returns an empty book.
func NewBook() *Book {
	return &Book{
		root:       NewAccount(RootAccount, ""),
		securities: NewSecurities(),
	}
}

// Root returns the root of the account tree.
func (b *Book) Root() *Account { return b.root }

// Securities returns the security table.
func (b *Book) Securities() *Securities { return b.securities }
