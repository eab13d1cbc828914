package convert

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/ofx2csv/record"
	"github.com/rustyeddy/ofx2csv/statement"
	"github.com/rustyeddy/ofx2csv/value"
)

var (
	ErrNoTransactions = errors.New("statement has no transactions")
	ErrNoPositions    = errors.New("statement has no positions")
)

// CashSecurity is the security name given to the synthesized cash row.
const CashSecurity = "CASH"

// CashPosition builds the synthetic holding that stands for the account's
// cash balance: one unit per currency unit, priced at 1.
func CashPosition(stmt statement.Statement) record.Record {
	return record.Record{
		{Name: "date", Value: value.Timestamp(stmt.EndDate)},
		{Name: "market_value", Value: value.Int(1)},
		{Name: "unit_price", Value: value.Int(1)},
		{Name: "units", Value: value.NewDecimal(stmt.AvailableCash)},
		{Name: "security", Value: value.Text(CashSecurity)},
	}
}

// Positions flattens the statement's holdings with the cash row first.
// A cash row whose fields differ from the real positions is logged and
// still emitted; the flattener fills the gaps with empty cells.
func Positions(stmt statement.Statement, log zerolog.Logger) ([]record.Row, error) {
	if len(stmt.Positions) == 0 {
		return nil, ErrNoPositions
	}

	cash := CashPosition(stmt)
	union := record.UnionOf(stmt.Positions)
	if !union.Equal(cash.Names()) {
		log.Warn().
			Strs("cash_keys", cash.Names()).
			Strs("position_keys", union.Names()).
			Msg("cash position keys do not match position keys")
	}

	all := make([]record.Record, 0, len(stmt.Positions)+1)
	all = append(all, cash)
	all = append(all, stmt.Positions...)

	rows, err := record.Flatten(all, log)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	return rows, nil
}

// Transactions flattens the statement's transactions.
func Transactions(stmt statement.Statement, log zerolog.Logger) ([]record.Row, error) {
	if len(stmt.Transactions) == 0 {
		return nil, ErrNoTransactions
	}
	rows, err := record.Flatten(stmt.Transactions, log)
	if err != nil {
		return nil, fmt.Errorf("transactions: %w", err)
	}
	return rows, nil
}
