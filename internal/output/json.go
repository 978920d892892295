package output

import (
	"encoding/json"
	"fmt"

	"adjustdb/internal/diff"
)

type jsonFormatter struct{}

type jsonReport struct {
	Source         string               `json:"source"`
	Target         string               `json:"target"`
	Classification *diff.Classification `json:"classification"`
	ModifiedTables []jsonTableDetail    `json:"modifiedTables,omitempty"`
}

type jsonTableDetail struct {
	Name        string               `json:"name"`
	Columns     *diff.ColumnDiff     `json:"columns"`
	Indexes     *diff.IndexDiff      `json:"indexes,omitempty"`
	ForeignKeys *diff.ForeignKeyDiff `json:"foreignKeys,omitempty"`
}

// Format renders the classification plus per-modified-table detail as
// indented JSON, suitable for piping into other tooling.
func (jsonFormatter) Format(r *Report) (string, error) {
	out := jsonReport{
		Source:         r.Source.Name,
		Target:         r.Target.Name,
		Classification: r.Classification,
	}

	for _, table := range r.Classification.Modified {
		detail := jsonTableDetail{
			Name:    table,
			Columns: diff.CompareColumns(table, r.Source, r.Target),
		}
		if id := diff.CompareIndexes(table, r.Source, r.Target); !id.IsEmpty() {
			detail.Indexes = id
		}
		if fd := diff.CompareForeignKeys(table, r.Source, r.Target); !fd.IsEmpty() {
			detail.ForeignKeys = fd
		}
		out.ModifiedTables = append(out.ModifiedTables, detail)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(data) + "\n", nil
}
