// Package statement is the parsed form of an OFX/QFX export: accounts, each
// with one statement of transactions and positions.
package statement

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/ofx2csv/record"
)

// ErrAccountCount is returned when a document does not hold exactly one account.
var ErrAccountCount = errors.New("expected exactly one account")

// Kind identifies the OFX message set an account came from.
type Kind string

const (
	KindInvestment Kind = "investment"
	KindBank       Kind = "bank"
	KindCreditCard Kind = "creditcard"
)

type Document struct {
	Accounts []Account
}

type Account struct {
	ID        string
	Kind      Kind
	Statement Statement
}

// Statement is one period of account activity.
type Statement struct {
	EndDate       time.Time
	AvailableCash decimal.Decimal
	Transactions  []record.Record
	Positions     []record.Record
}

// SingleAccount returns the document's only account.
func (d *Document) SingleAccount() (*Account, error) {
	if len(d.Accounts) != 1 {
		return nil, fmt.Errorf("%w: found %d", ErrAccountCount, len(d.Accounts))
	}
	return &d.Accounts[0], nil
}

// Parser turns a raw export into a Document.
type Parser interface {
	Parse(r io.Reader) (*Document, error)
}
