package journal

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

var _ Journal = (*SQLite)(nil)

// SQLite stores runs in a single-table SQLite database.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(ctx context.Context, r Run) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO runs
		(run_id, source, account_id, transactions_path, positions_path, transaction_rows, position_rows, converted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Source, r.AccountID, r.TransactionsPath, r.PositionsPath,
		r.TransactionRows, r.PositionRows, r.ConvertedAt.UTC(),
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
