// Package diff compares two introspected schemas. It classifies every table
// into one of four buckets (new, removed, modified, identical) and produces
// the per-table column and index diffs that drive both reporting and ALTER
// generation. All functions are pure: the input schemas are never mutated.
package diff

import (
	"fmt"
	"sort"

	"adjustdb/internal/core"
)

// Classification is the four-way table partition derived from a source and a
// target schema. Every table name present in either schema appears in exactly
// one bucket. Buckets are sorted so repeated runs produce identical output.
type Classification struct {
	New       []string `json:"new"`       // present only in source
	Removed   []string `json:"removed"`   // present only in target
	Modified  []string `json:"modified"`  // present in both, structurally different
	Identical []string `json:"identical"` // present in both, no detected difference

	Warnings []string `json:"warnings,omitempty"`
}

// Classify compares the source schema against the target schema.
//
// Table names are compared exactly and case-sensitively. A shared table is
// modified iff its column-name set differs between the two sides, or at least
// one shared column has an unequal definition (type, nullability, default,
// extra). Index-only and foreign-key-only changes do not promote a table to
// modified; they are surfaced by CompareIndexes / CompareForeignKeys during
// detailed reporting. A table with partial metadata on either side is always
// classified as modified so a human reviews it instead of trusting an
// incomplete comparison.
func Classify(source, target *core.Schema) *Classification {
	c := &Classification{}

	for _, name := range source.TableNames() {
		if !target.HasTable(name) {
			c.New = append(c.New, name)
		}
	}
	for _, name := range target.TableNames() {
		if !source.HasTable(name) {
			c.Removed = append(c.Removed, name)
		}
	}

	for _, name := range source.TableNames() {
		st := source.Table(name)
		tt := target.Table(name)
		if tt == nil {
			continue
		}
		if st.Partial || tt.Partial {
			c.Warnings = append(c.Warnings,
				fmt.Sprintf("table %s: metadata incomplete, classified as modified for manual review", name))
			c.Modified = append(c.Modified, name)
			continue
		}
		if tableModified(st, tt) {
			c.Modified = append(c.Modified, name)
		} else {
			c.Identical = append(c.Identical, name)
		}
	}

	sort.Strings(c.New)
	sort.Strings(c.Removed)
	sort.Strings(c.Modified)
	sort.Strings(c.Identical)

	return c
}

func tableModified(source, target *core.Table) bool {
	srcNames := source.ColumnNames()
	tgtNames := target.ColumnNames()
	if !equalNameSet(srcNames, tgtNames) {
		return true
	}
	for _, name := range srcNames {
		tc := target.FindColumn(name)
		if tc == nil {
			return true
		}
		if !source.FindColumn(name).Equal(tc) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the two schemas need no synchronization at all.
func (c *Classification) IsEmpty() bool {
	return len(c.New) == 0 && len(c.Removed) == 0 && len(c.Modified) == 0
}

// ChangedCount returns the number of tables that differ in any way.
func (c *Classification) ChangedCount() int {
	return len(c.New) + len(c.Removed) + len(c.Modified)
}

// Bucket returns the bucket the named table landed in, or "" if the table is
// unknown to both schemas.
func (c *Classification) Bucket(table string) string {
	for _, t := range c.New {
		if t == table {
			return "new"
		}
	}
	for _, t := range c.Removed {
		if t == table {
			return "removed"
		}
	}
	for _, t := range c.Modified {
		if t == table {
			return "modified"
		}
	}
	for _, t := range c.Identical {
		if t == table {
			return "identical"
		}
	}
	return ""
}
