package output

import (
	"fmt"
	"strings"

	"adjustdb/internal/diff"
)

type summaryFormatter struct{}

// Format renders a compact change summary.
// Example output:
//
//	Tables:  +3, ~2, -1, =14
//	Columns: +5, ~2, -0
func (summaryFormatter) Format(r *Report) (string, error) {
	c := r.Classification

	var addedCols, removedCols, changedCols int
	for _, table := range c.Modified {
		cd := diff.CompareColumns(table, r.Source, r.Target)
		addedCols += len(cd.Added)
		removedCols += len(cd.Removed)
		changedCols += len(cd.Changed)
	}

	var sb strings.Builder
	sb.WriteString("Schema Comparison Summary\n")
	sb.WriteString("=========================\n\n")
	fmt.Fprintf(&sb, "Tables:  +%d, ~%d, -%d, =%d\n",
		len(c.New), len(c.Modified), len(c.Removed), len(c.Identical))
	fmt.Fprintf(&sb, "Columns: +%d, ~%d, -%d\n", addedCols, changedCols, removedCols)

	if len(c.Warnings) > 0 {
		fmt.Fprintf(&sb, "\nWarnings: %d\n", len(c.Warnings))
	}

	return sb.String(), nil
}
