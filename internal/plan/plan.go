package plan

import (
	"fmt"

	"adjustdb/internal/core"
	"adjustdb/internal/diff"
)

// Plan is the ordered result of applying a selection to a classification.
// Structure holds DDL-producing operations, Data holds one sync marker per
// table that needs its rows exported. A plan is built once per run and
// consumed once by the emitter.
type Plan struct {
	SourceName string
	TargetName string

	Structure []core.Operation
	Data      []core.Operation

	// Warnings lists selections that violated the classification contract
	// and were dropped. Selections come from an interactive actor, so a bad
	// one is reported, never fatal.
	Warnings []string
}

// IsEmpty reports whether the plan contains no operations at all.
func (p *Plan) IsEmpty() bool {
	return len(p.Structure) == 0 && len(p.Data) == 0
}

// Build derives a plan from the classification and the user's selections.
//
// Ordering is fixed so repeated builds are byte-identical:
//  1. drop-table operations, in selection order;
//  2. create/alter per table, structure-only selections first, then
//     structure-and-data selections, filtered to tables the source contains;
//  3. within one altered table: add columns (name-sorted), drop columns
//     (name-sorted), modify columns (name-sorted), every clause carrying the
//     source-side definition;
//  4. one data-sync marker per structure-and-data table, in selection order,
//     whether or not its structure changed.
func Build(c *diff.Classification, sel *Selection, source, target *core.Schema) *Plan {
	p := &Plan{SourceName: source.Name, TargetName: target.Name}

	for _, table := range sel.Drop() {
		if c.Bucket(table) != "removed" {
			p.warnInvalid(table, ActionDrop, c)
			continue
		}
		p.Structure = append(p.Structure, core.Operation{Kind: core.OpDropTable, Table: table})
	}

	for _, table := range structureTables(c, sel, p) {
		st := source.Table(table)
		if st == nil {
			// Classification guarantees new/modified tables exist in the
			// source; a miss here means the schemas changed underfoot.
			p.Warnings = append(p.Warnings,
				fmt.Sprintf("table %s: selected but no longer present in source, skipped", table))
			continue
		}

		if !target.HasTable(table) {
			p.Structure = append(p.Structure, core.Operation{
				Kind:      core.OpCreateTable,
				Table:     table,
				CreateSQL: st.CreateStatement,
			})
			continue
		}

		p.Structure = append(p.Structure, alterOperations(table, source, target)...)
	}

	for _, table := range sel.StructureAndData() {
		if bucket := c.Bucket(table); bucket != "new" && bucket != "modified" {
			continue // already warned above
		}
		st := source.Table(table)
		if st == nil {
			continue
		}
		p.Data = append(p.Data, core.Operation{
			Kind:          core.OpSyncData,
			Table:         table,
			Rows:          st.Rows,
			InsertColumns: st.ColumnNames(),
		})
	}

	return p
}

// structureTables returns the create/alter processing order: structure-only
// selections followed by structure-and-data selections, invalid ones dropped
// with a warning.
func structureTables(c *diff.Classification, sel *Selection, p *Plan) []string {
	var tables []string
	appendValid := func(list []string, action Action) {
		for _, table := range list {
			bucket := c.Bucket(table)
			if bucket != "new" && bucket != "modified" {
				p.warnInvalid(table, action, c)
				continue
			}
			tables = append(tables, table)
		}
	}
	appendValid(sel.StructureOnly(), ActionStructureOnly)
	appendValid(sel.StructureAndData(), ActionStructureAndData)
	return tables
}

// alterOperations emits the fixed add/drop/modify sub-order for a table
// present on both sides. Every clause carries the source-side definition:
// the modification moves the target toward the source.
func alterOperations(table string, source, target *core.Schema) []core.Operation {
	cd := diff.CompareColumns(table, source, target)
	st := source.Table(table)

	var ops []core.Operation
	for _, name := range cd.Added {
		ops = append(ops, core.Operation{
			Kind:   core.OpAddColumn,
			Table:  table,
			Column: st.FindColumn(name),
		})
	}
	for _, name := range cd.Removed {
		ops = append(ops, core.Operation{
			Kind:   core.OpDropColumn,
			Table:  table,
			Column: &core.Column{Name: name},
		})
	}
	for _, change := range cd.Changed {
		ops = append(ops, core.Operation{
			Kind:   core.OpModifyColumn,
			Table:  table,
			Column: change.New,
		})
	}
	return ops
}

func (p *Plan) warnInvalid(table string, action Action, c *diff.Classification) {
	bucket := c.Bucket(table)
	if bucket == "" {
		bucket = "unknown"
	}
	p.Warnings = append(p.Warnings,
		fmt.Sprintf("table %s: action %s not valid for %s table, ignored", table, action, bucket))
}
