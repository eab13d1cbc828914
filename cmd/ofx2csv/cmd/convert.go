package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/ofx2csv/convert"
	"github.com/rustyeddy/ofx2csv/journal"
)

const instructions = `Usage: ofx2csv convert <file_path> [output_dir]

  file_path   OFX or QFX export holding exactly one account
  output_dir  directory for the CSV files (default: file_path's directory)

Writes <name>_transactions.csv and <name>_positions.csv, where <name> is
file_path's base name without its extension.`

var errUsage = errors.New("invalid arguments")

var convertCmd = &cobra.Command{
	Use:   "convert <file_path> [output_dir]",
	Short: "Convert an OFX/QFX file to transactions and positions CSVs",
	Long: `Convert one OFX/QFX export into two CSV files.

Example:
  ofx2csv convert ~/Downloads/Export.QFX
  ofx2csv convert ~/Downloads/Export.QFX ./out --journal runs.db`,
	RunE: runConvert,
}

var convertJournal string

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertJournal, "journal", "", "record the run in this SQLite journal")
}

func runConvert(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	src, outDir, err := resolvePaths(out, args)
	if err != nil {
		return err
	}

	c := convert.New(logger)

	dbPath := convertJournal
	if dbPath == "" && cfg != nil {
		dbPath = cfg.Journal.DBPath
	}
	if dbPath != "" {
		j, err := journal.NewSQLite(dbPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()
		c.Journal = j
	}

	res, err := c.Convert(cmd.Context(), src, outDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ %s: %d transactions, %d positions\n", res.AccountID, res.TransactionRows, res.PositionRows)
	if c.Journal != nil {
		fmt.Fprintf(out, "  Run: %s\n", res.RunID)
	}
	return nil
}

// resolvePaths checks the positional arguments, printing the instructions
// when they cannot be used.
func resolvePaths(out io.Writer, args []string) (string, string, error) {
	if len(args) == 0 || len(args) > 2 {
		fmt.Fprintln(out, instructions)
		return "", "", errUsage
	}

	src := args[0]
	if _, err := os.Stat(src); err != nil {
		fmt.Fprintf(out, "File not found: %s\n\n%s\n", src, instructions)
		return "", "", fmt.Errorf("%w: file not found: %s", errUsage, src)
	}

	outDir := filepath.Dir(src)
	if len(args) == 2 {
		outDir = args[1]
		if fi, err := os.Stat(outDir); err != nil || !fi.IsDir() {
			fmt.Fprintf(out, "Output directory not found: %s\n\n%s\n", outDir, instructions)
			return "", "", fmt.Errorf("%w: output directory not found: %s", errUsage, outDir)
		}
	}
	return src, outDir, nil
}
