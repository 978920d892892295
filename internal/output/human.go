package output

import (
	"fmt"
	"strings"

	"adjustdb/internal/diff"
)

// identicalListLimit caps how many identical tables the summary lists before
// collapsing the rest into a count.
const identicalListLimit = 10

type humanFormatter struct{}

// Format renders the full analysis: per-bucket table listings with row
// estimates and, for modified tables, the detailed column and index diffs.
func (humanFormatter) Format(r *Report) (string, error) {
	var sb strings.Builder

	sb.WriteString("DATABASE DIFFERENCES ANALYSIS\n")
	fmt.Fprintf(&sb, "Source: %s (%d tables)  Target: %s (%d tables)\n",
		r.Source.Name, len(r.Source.Tables), r.Target.Name, len(r.Target.Tables))

	c := r.Classification

	if len(c.New) > 0 {
		fmt.Fprintf(&sb, "\nNEW TABLES (%d, exist only in source):\n", len(c.New))
		for _, table := range c.New {
			fmt.Fprintf(&sb, "  + %s (~%d records)\n", table, r.Source.Table(table).Rows)
		}
	}

	if len(c.Removed) > 0 {
		fmt.Fprintf(&sb, "\nTABLES TO REMOVE (%d, exist only in target):\n", len(c.Removed))
		for _, table := range c.Removed {
			fmt.Fprintf(&sb, "  - %s (~%d records)\n", table, r.Target.Table(table).Rows)
		}
	}

	if len(c.Modified) > 0 {
		fmt.Fprintf(&sb, "\nMODIFIED TABLES (%d):\n", len(c.Modified))
		for _, table := range c.Modified {
			fmt.Fprintf(&sb, "  ~ %s (source ~%d -> target ~%d records)\n",
				table, r.Source.Table(table).Rows, r.Target.Table(table).Rows)
			writeTableChanges(&sb, "      ", table, r)
		}
	}

	if len(c.Identical) > 0 {
		fmt.Fprintf(&sb, "\nIDENTICAL TABLES (%d):\n", len(c.Identical))
		for i, table := range c.Identical {
			if i == identicalListLimit {
				fmt.Fprintf(&sb, "  ... and %d more tables\n", len(c.Identical)-identicalListLimit)
				break
			}
			fmt.Fprintf(&sb, "  = %s\n", table)
		}
	}

	warnings := make([]string, 0, len(r.Source.Warnings)+len(r.Target.Warnings)+len(c.Warnings))
	for _, w := range r.Source.Warnings {
		warnings = append(warnings, "source: "+w)
	}
	for _, w := range r.Target.Warnings {
		warnings = append(warnings, "target: "+w)
	}
	warnings = append(warnings, c.Warnings...)
	if len(warnings) > 0 {
		sb.WriteString("\nWARNINGS:\n")
		for _, w := range warnings {
			fmt.Fprintf(&sb, "  ! %s\n", w)
		}
	}

	if c.IsEmpty() {
		sb.WriteString("\nDatabases are already synchronized.\n")
	}

	return sb.String(), nil
}

func writeTableChanges(sb *strings.Builder, indent, table string, r *Report) {
	cd := diff.CompareColumns(table, r.Source, r.Target)
	if len(cd.Added) > 0 {
		fmt.Fprintf(sb, "%s+ columns: %s\n", indent, strings.Join(cd.Added, ", "))
	}
	if len(cd.Removed) > 0 {
		fmt.Fprintf(sb, "%s- columns: %s\n", indent, strings.Join(cd.Removed, ", "))
	}
	for _, ch := range cd.Changed {
		fmt.Fprintf(sb, "%s~ column %s:\n", indent, ch.Name)
		for _, fc := range ch.Changes {
			fmt.Fprintf(sb, "%s    %s: %s -> %s\n", indent, fc.Field, displayValue(fc.Old), displayValue(fc.New))
		}
	}

	id := diff.CompareIndexes(table, r.Source, r.Target)
	for _, idx := range id.Added {
		fmt.Fprintf(sb, "%s+ index %s (%s)\n", indent, idx.Name, strings.Join(idx.Columns, ", "))
	}
	for _, idx := range id.Removed {
		fmt.Fprintf(sb, "%s- index %s (%s)\n", indent, idx.Name, strings.Join(idx.Columns, ", "))
	}

	fd := diff.CompareForeignKeys(table, r.Source, r.Target)
	for _, fk := range fd.Added {
		fmt.Fprintf(sb, "%s+ foreign key %s (%s -> %s.%s)\n", indent, fk.Name, fk.Column, fk.RefTable, fk.RefColumn)
	}
	for _, fk := range fd.Removed {
		fmt.Fprintf(sb, "%s- foreign key %s (%s -> %s.%s)\n", indent, fk.Name, fk.Column, fk.RefTable, fk.RefColumn)
	}
}

func displayValue(v string) string {
	if v == "" {
		return "(none)"
	}
	return v
}

// TableDetail renders one table's full difference view, used by the
// interactive prompt's "show details" choice.
func TableDetail(table string, r *Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "TABLE DETAILS: %s\n", table)

	switch r.Classification.Bucket(table) {
	case "new":
		t := r.Source.Table(table)
		fmt.Fprintf(&sb, "New table (does not exist in target)\n")
		fmt.Fprintf(&sb, "Engine: %s  Records: ~%d\n", t.Engine, t.Rows)
		fmt.Fprintf(&sb, "Structure (%d columns):\n", len(t.Columns))
		for _, col := range t.Columns {
			line := fmt.Sprintf("  %s: %s", col.Name, col.Type)
			if col.Nullable {
				line += " NULL"
			} else {
				line += " NOT NULL"
			}
			if d := col.DefaultString(); d != "" {
				line += " DEFAULT " + d
			}
			if col.Extra != "" {
				line += " " + col.Extra
			}
			sb.WriteString(line + "\n")
		}
	case "removed":
		t := r.Target.Table(table)
		fmt.Fprintf(&sb, "Exists only in target (~%d records, %d columns)\n", t.Rows, len(t.Columns))
		for _, col := range t.Columns {
			fmt.Fprintf(&sb, "  %s: %s\n", col.Name, col.Type)
		}
	default:
		fmt.Fprintf(&sb, "Records: source ~%d -> target ~%d\n",
			r.Source.Table(table).Rows, r.Target.Table(table).Rows)
		writeTableChanges(&sb, "  ", table, r)
	}

	return sb.String()
}
