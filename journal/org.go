package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatRunOrg renders a Run as an Org-mode block with the facts kept in a
// PROPERTIES drawer.
func FormatRunOrg(r Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Conversion: %s (%s)\n", r.Source, shortID(r.RunID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":RUN_ID: %s\n", r.RunID)
	fmt.Fprintf(&b, ":ACCOUNT_ID: %s\n", r.AccountID)
	fmt.Fprintf(&b, ":SOURCE: %s\n", r.Source)
	fmt.Fprintf(&b, ":TRANSACTIONS: %s\n", r.TransactionsPath)
	fmt.Fprintf(&b, ":TRANSACTION_ROWS: %d\n", r.TransactionRows)
	fmt.Fprintf(&b, ":POSITIONS: %s\n", r.PositionsPath)
	fmt.Fprintf(&b, ":POSITION_ROWS: %d\n", r.PositionRows)
	fmt.Fprintf(&b, ":CONVERTED_AT: %s\n", r.ConvertedAt.UTC().Format(time.RFC3339))
	b.WriteString(":END:\n")
	return b.String()
}

// FormatRunsOrg renders multiple runs separated by blank lines.
func FormatRunsOrg(runs []Run) string {
	var b strings.Builder
	for i, r := range runs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatRunOrg(r))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
