// Package mysql renders sync plans into MySQL/MariaDB SQL scripts.
package mysql

import (
	"fmt"
	"time"

	"adjustdb/internal/core"
	"adjustdb/internal/dialect"
	"adjustdb/internal/plan"
)

func init() {
	dialect.Register(core.DialectMySQL, func() dialect.Emitter { return NewGenerator() })
	dialect.Register(core.DialectMariaDB, func() dialect.Emitter { return NewGenerator() })
}

// Generator renders plans as MySQL statement text. The clock is injectable so
// tests can pin the header timestamp and assert byte-identical output.
type Generator struct {
	now func() time.Time
}

// NewGenerator returns a generator using the wall clock.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorAt returns a generator with a fixed clock.
func NewGeneratorAt(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// RenderStructure renders the structure script. Drop-table statements come
// first, then creates and alters in plan order, the whole body bracketed in a
// single FOREIGN_KEY_CHECKS=0 window so statement order never has to satisfy
// foreign-key dependency order.
func (g *Generator) RenderStructure(p *plan.Plan) []string {
	stmts := g.header("Structure synchronization script", p)
	stmts = append(stmts,
		fmt.Sprintf("USE %s;", g.QuoteIdentifier(p.TargetName)),
		"SET FOREIGN_KEY_CHECKS = 0;",
		"",
	)

	lastAltered := ""
	for _, op := range p.Structure {
		switch op.Kind {
		case core.OpDropTable:
			stmts = append(stmts,
				fmt.Sprintf("-- Removing table %s", op.Table),
				fmt.Sprintf("DROP TABLE IF EXISTS %s;", g.QuoteIdentifier(op.Table)),
				"",
			)
		case core.OpCreateTable:
			stmts = append(stmts,
				fmt.Sprintf("-- Creating table %s", op.Table),
				op.CreateSQL+";",
				"",
			)
		case core.OpAddColumn, core.OpDropColumn, core.OpModifyColumn:
			if op.Table != lastAltered {
				if lastAltered != "" {
					stmts = append(stmts, "")
				}
				stmts = append(stmts, fmt.Sprintf("-- Modifying table structure %s", op.Table))
				lastAltered = op.Table
			}
			stmts = append(stmts, g.alterStatement(op))
		}
	}
	if lastAltered != "" {
		stmts = append(stmts, "")
	}

	stmts = append(stmts, "SET FOREIGN_KEY_CHECKS = 1;")
	return stmts
}

// RenderData renders the data-sync script: per selected table a truncate, the
// insert column-list header, and a deferred-export marker. Bulk row transfer
// belongs to an external export process; no row literal ever appears here.
// Returns nil when the plan carries no data-sync markers.
func (g *Generator) RenderData(p *plan.Plan) []string {
	if len(p.Data) == 0 {
		return nil
	}

	stmts := g.header("Data synchronization script", p)
	stmts = append(stmts,
		fmt.Sprintf("USE %s;", g.QuoteIdentifier(p.TargetName)),
		"SET FOREIGN_KEY_CHECKS = 0;",
		"",
	)

	for _, op := range p.Data {
		if op.Kind != core.OpSyncData {
			continue
		}
		stmts = append(stmts,
			fmt.Sprintf("-- Synchronizing data for table %s (~%d records)", op.Table, op.Rows),
			fmt.Sprintf("TRUNCATE TABLE %s;", g.QuoteIdentifier(op.Table)),
		)
		if op.Rows > 0 {
			stmts = append(stmts,
				fmt.Sprintf("-- %s", g.insertHeader(op)),
				fmt.Sprintf("-- Rows for table %s must be exported separately (~%d records).", op.Table, op.Rows),
				fmt.Sprintf("-- Use: mysqldump %s %s --no-create-info", p.SourceName, op.Table),
			)
		}
		stmts = append(stmts, "")
	}

	stmts = append(stmts, "SET FOREIGN_KEY_CHECKS = 1;")
	return stmts
}

func (g *Generator) header(title string, p *plan.Plan) []string {
	return []string{
		"-- " + title,
		"-- Generated by: adjustdb",
		"-- Generated on: " + g.now().Format("2006-01-02 15:04:05"),
		fmt.Sprintf("-- Source: %s -> Target: %s", p.SourceName, p.TargetName),
		"",
	}
}

func (g *Generator) alterStatement(op core.Operation) string {
	table := g.QuoteIdentifier(op.Table)
	switch op.Kind {
	case core.OpAddColumn:
		return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", table, g.columnDefinition(op.Column))
	case core.OpDropColumn:
		return fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s;", table, g.QuoteIdentifier(op.Column.Name))
	case core.OpModifyColumn:
		return fmt.Sprintf("ALTER TABLE %s MODIFY COLUMN %s;", table, g.columnDefinition(op.Column))
	}
	return ""
}

func (g *Generator) insertHeader(op core.Operation) string {
	cols := make([]string, len(op.InsertColumns))
	for i, c := range op.InsertColumns {
		cols[i] = g.QuoteIdentifier(c)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES ...", g.QuoteIdentifier(op.Table), joinComma(cols))
}
