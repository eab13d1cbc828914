// Package journal keeps an optional record of completed conversions.
package journal

import (
	"context"
	"time"
)

// Run describes one successful conversion.
type Run struct {
	RunID            string
	Source           string
	AccountID        string
	TransactionsPath string
	PositionsPath    string
	TransactionRows  int
	PositionRows     int
	ConvertedAt      time.Time
}

type Journal interface {
	RecordRun(ctx context.Context, r Run) error
	Close() error
}
