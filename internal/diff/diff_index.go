package diff

import (
	"adjustdb/internal/core"
)

// IndexDiff describes index differences for one shared table. An index that
// exists under the same name with different member columns appears in both
// Removed (the target definition) and Added (the source definition); there is
// no in-place "index modified" state.
type IndexDiff struct {
	Added   []*core.Index `json:"added"`
	Removed []*core.Index `json:"removed"`
}

// IsEmpty reports whether the table's indexes are identical on both sides.
func (d *IndexDiff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// CompareIndexes diffs the named table's indexes between the two schemas,
// keyed by index name.
func CompareIndexes(table string, source, target *core.Schema) *IndexDiff {
	d := &IndexDiff{}
	st := source.Table(table)
	tt := target.Table(table)
	if st == nil || tt == nil {
		return d
	}

	for _, si := range st.Indexes {
		ti := tt.FindIndex(si.Name)
		switch {
		case ti == nil:
			d.Added = append(d.Added, si)
		case !si.Equal(ti):
			d.Removed = append(d.Removed, ti)
			d.Added = append(d.Added, si)
		}
	}

	for _, ti := range tt.Indexes {
		if st.FindIndex(ti.Name) == nil {
			d.Removed = append(d.Removed, ti)
		}
	}

	sortByName(d.Added, func(i *core.Index) string { return i.Name })
	sortByName(d.Removed, func(i *core.Index) string { return i.Name })

	return d
}

// ForeignKeyDiff describes foreign-key differences for one shared table,
// keyed by constraint name. Like indexes, a constraint whose definition
// changed shows up as removed (old) plus added (new).
type ForeignKeyDiff struct {
	Added   []*core.ForeignKey `json:"added"`
	Removed []*core.ForeignKey `json:"removed"`
}

// IsEmpty reports whether the table's foreign keys are identical on both sides.
func (d *ForeignKeyDiff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// CompareForeignKeys diffs the named table's foreign keys between the two
// schemas.
func CompareForeignKeys(table string, source, target *core.Schema) *ForeignKeyDiff {
	d := &ForeignKeyDiff{}
	st := source.Table(table)
	tt := target.Table(table)
	if st == nil || tt == nil {
		return d
	}

	tgtByName := make(map[string]*core.ForeignKey, len(tt.ForeignKeys))
	for _, fk := range tt.ForeignKeys {
		tgtByName[fk.Name] = fk
	}
	srcByName := make(map[string]*core.ForeignKey, len(st.ForeignKeys))
	for _, fk := range st.ForeignKeys {
		srcByName[fk.Name] = fk
	}

	for _, sfk := range st.ForeignKeys {
		tfk, ok := tgtByName[sfk.Name]
		switch {
		case !ok:
			d.Added = append(d.Added, sfk)
		case *sfk != *tfk:
			d.Removed = append(d.Removed, tfk)
			d.Added = append(d.Added, sfk)
		}
	}

	for _, tfk := range tt.ForeignKeys {
		if _, ok := srcByName[tfk.Name]; !ok {
			d.Removed = append(d.Removed, tfk)
		}
	}

	sortByName(d.Added, func(fk *core.ForeignKey) string { return fk.Name })
	sortByName(d.Removed, func(fk *core.ForeignKey) string { return fk.Name })

	return d
}
