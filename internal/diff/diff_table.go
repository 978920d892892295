package diff

import (
	"adjustdb/internal/core"
)

// FieldChange records one differing column attribute. Old is the target-side
// value, New the source-side value: applying the change moves the target
// toward the source, never the reverse.
type FieldChange struct {
	Field string `json:"field"` // type | nullable | default | extra
	Old   string `json:"old"`
	New   string `json:"new"`
}

// ColumnChange is the full attribute delta for one shared column.
type ColumnChange struct {
	Name    string         `json:"name"`
	Old     *core.Column   `json:"-"` // target side
	New     *core.Column   `json:"-"` // source side
	Changes []*FieldChange `json:"changes"`
}

// ColumnDiff describes how a shared table's columns differ between source and
// target. Added and Removed hold column names; Changed holds per-column
// attribute deltas. All three are name-sorted.
type ColumnDiff struct {
	Added   []string        `json:"added"`   // in source, missing from target
	Removed []string        `json:"removed"` // in target, missing from source
	Changed []*ColumnChange `json:"changed"`
}

// IsEmpty reports whether the table's columns are identical on both sides.
func (d *ColumnDiff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// CompareColumns diffs the named table's columns between the two schemas.
// It returns an empty diff when the table is missing from either side; table
// presence is the classifier's concern, not this function's.
func CompareColumns(table string, source, target *core.Schema) *ColumnDiff {
	d := &ColumnDiff{}
	st := source.Table(table)
	tt := target.Table(table)
	if st == nil || tt == nil {
		return d
	}

	for _, sc := range st.Columns {
		tc := tt.FindColumn(sc.Name)
		if tc == nil {
			d.Added = append(d.Added, sc.Name)
			continue
		}
		if !sc.Equal(tc) {
			d.Changed = append(d.Changed, &ColumnChange{
				Name:    sc.Name,
				Old:     tc,
				New:     sc,
				Changes: columnFieldChanges(tc, sc),
			})
		}
	}

	for _, tc := range tt.Columns {
		if st.FindColumn(tc.Name) == nil {
			d.Removed = append(d.Removed, tc.Name)
		}
	}

	sortStrings(d.Added)
	sortStrings(d.Removed)
	sortByName(d.Changed, func(c *ColumnChange) string { return c.Name })

	return d
}

// columnFieldChanges enumerates the differing attributes of a shared column.
// oldC is the target-side definition, newC the source-side one.
func columnFieldChanges(oldC, newC *core.Column) []*FieldChange {
	c := &fieldChangeCollector{}
	c.Add("type", oldC.Type, newC.Type)
	c.Add("nullable", nullability(oldC.Nullable), nullability(newC.Nullable))
	c.Add("default", oldC.DefaultString(), newC.DefaultString())
	c.Add("extra", oldC.Extra, newC.Extra)
	return c.Changes
}

func nullability(nullable bool) string {
	if nullable {
		return "NULL"
	}
	return "NOT NULL"
}
