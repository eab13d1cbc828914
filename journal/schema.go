package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	account_id TEXT NOT NULL,
	transactions_path TEXT NOT NULL,
	positions_path TEXT NOT NULL,
	transaction_rows INTEGER NOT NULL,
	position_rows INTEGER NOT NULL,
	converted_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_converted_at ON runs(converted_at);
`
