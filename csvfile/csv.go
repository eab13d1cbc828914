// Package csvfile writes flattened rows to disk.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/ofx2csv/record"
)

// ErrNoRows is returned when there is no first row to take the header from.
var ErrNoRows = errors.New("no rows to write")

// Write creates (or truncates) path and writes a header taken from the first
// row followed by every row in order.
func Write(path string, rows []record.Row, log zerolog.Logger) error {
	if len(rows) == 0 {
		return ErrNoRows
	}

	log.Info().Str("path", path).Msg("Writing")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := rows[0].Keys()
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	line := make([]string, len(header))
	for i, row := range rows {
		for j, k := range header {
			line[j], _ = row.Get(k)
		}
		if err := w.Write(line); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv flush: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Info().Str("path", path).Int("rows", len(rows)).Msg("Done")
	return nil
}
