// Package convert drives one OFX/QFX export through parsing, flattening and
// CSV output.
package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/ofx2csv/csvfile"
	"github.com/rustyeddy/ofx2csv/journal"
	"github.com/rustyeddy/ofx2csv/pkg/id"
	"github.com/rustyeddy/ofx2csv/statement"
)

const (
	TransactionsSuffix = "_transactions.csv"
	PositionsSuffix    = "_positions.csv"
)

// Result reports what a conversion wrote.
type Result struct {
	RunID            string
	AccountID        string
	TransactionsPath string
	PositionsPath    string
	TransactionRows  int
	PositionRows     int
}

// Converter turns one export into a transactions CSV and a positions CSV.
// Journal is optional.
type Converter struct {
	Parser  statement.Parser
	Log     zerolog.Logger
	Journal journal.Journal
	Now     func() time.Time
}

// New returns a Converter using the OFX parser and no journal.
func New(log zerolog.Logger) *Converter {
	return &Converter{
		Parser: statement.OFXParser{},
		Log:    log,
		Now:    time.Now,
	}
}

// OutputPaths names the two CSV files for src inside outDir.
func OutputPaths(src, outDir string) (transactions, positions string) {
	base := filepath.Base(src)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, base+TransactionsSuffix),
		filepath.Join(outDir, base+PositionsSuffix)
}

// Convert reads src and writes both CSV files into outDir. Nothing is written
// unless parsing and flattening both succeed. A failure writing the positions
// file leaves the transactions file in place.
func (c *Converter) Convert(ctx context.Context, src, outDir string) (*Result, error) {
	parser := c.Parser
	if parser == nil {
		parser = statement.OFXParser{}
	}

	doc, err := parseFile(parser, src)
	if err != nil {
		return nil, err
	}

	acct, err := doc.SingleAccount()
	if err != nil {
		return nil, err
	}

	txRows, err := Transactions(acct.Statement, c.Log)
	if err != nil {
		return nil, err
	}
	posRows, err := Positions(acct.Statement, c.Log)
	if err != nil {
		return nil, err
	}

	txPath, posPath := OutputPaths(src, outDir)
	if err := csvfile.Write(txPath, txRows, c.Log); err != nil {
		return nil, err
	}
	if err := csvfile.Write(posPath, posRows, c.Log); err != nil {
		return nil, err
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	at := now().UTC()

	res := &Result{
		RunID:            id.New(at),
		AccountID:        acct.ID,
		TransactionsPath: txPath,
		PositionsPath:    posPath,
		TransactionRows:  len(txRows),
		PositionRows:     len(posRows),
	}

	if c.Journal != nil {
		run := journal.Run{
			RunID:            res.RunID,
			Source:           src,
			AccountID:        res.AccountID,
			TransactionsPath: txPath,
			PositionsPath:    posPath,
			TransactionRows:  res.TransactionRows,
			PositionRows:     res.PositionRows,
			ConvertedAt:      at,
		}
		if err := c.Journal.RecordRun(ctx, run); err != nil {
			return res, fmt.Errorf("journal: %w", err)
		}
		c.Log.Debug().Str("run_id", res.RunID).Msg("recorded run")
	}

	return res, nil
}

func parseFile(p statement.Parser, path string) (*statement.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}
