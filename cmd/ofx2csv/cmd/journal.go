package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/ofx2csv/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the conversion journal",
	Long: `Query conversions recorded in the SQLite run journal.

Subcommands:
  list  - List recent conversions, newest first
  run   - Show one conversion by run ID

Examples:
  ofx2csv journal list --limit 5 --db runs.db
  ofx2csv journal run 01HZX3Q8J5TQWQ7P6G1S2V3K4M`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent conversions",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalRunCmd = &cobra.Command{
	Use:   "run <run-id>",
	Short: "Show one conversion",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalRun,
}

var (
	journalDBPath string
	journalLimit  int
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalRunCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "", "path to SQLite journal DB (default: journal.db_path)")
	journalListCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "maximum runs to list (0 for all)")
}

func openJournal() (*journal.SQLite, error) {
	path := journalDBPath
	if path == "" && cfg != nil {
		path = cfg.Journal.DBPath
	}
	if path == "" {
		return nil, errors.New("no journal configured: pass --db or set journal.db_path")
	}

	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	runs, err := j.ListRuns(cmd.Context(), journalLimit)
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), journal.FormatRunsOrg(runs))
	return nil
}

func runJournalRun(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	r, err := j.GetRun(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), journal.FormatRunOrg(r))
	return nil
}
