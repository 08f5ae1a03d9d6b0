package menu

import (
	"fmt"
	"io"
	"strings"

	"smartspend/internal/core"
)

// writeTable prints txs in the order given.
func writeTable(w io.Writer, txs []core.Transaction) {
	fmt.Fprintf(w, "%-4s %-12s %-8s %-15s %10s  Description\n", "ID", "Date", "Type", "Category", "Amount")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, t := range txs {
		sign := "+"
		if t.Kind == core.Expense {
			sign = "-"
		}
		fmt.Fprintf(w, "%-4d %-12s %-8s %-15s %s$%9s  %s\n",
			t.ID, t.Date, t.Kind, t.Category, sign, t.Amount, t.Description)
	}
}
