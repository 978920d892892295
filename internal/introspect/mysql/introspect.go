// Package mysql extracts schema models from MySQL and MariaDB databases via
// information_schema and SHOW CREATE TABLE. A failure fetching one table's
// metadata marks that table partial and keeps going; only a missing database
// context or an unreachable catalog fails the whole extraction.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"adjustdb/internal/core"
	"adjustdb/internal/introspect"
)

func init() {
	introspect.Register(core.DialectMySQL, New)
	introspect.Register(core.DialectMariaDB, New)
}

type extractor struct{}

type extractCtx struct {
	ctx context.Context
	db  *sql.DB
}

// New returns the MySQL/MariaDB extractor.
func New() introspect.Extractor {
	return &extractor{}
}

func (e *extractor) Extract(ctx context.Context, db *sql.DB) (*core.Schema, error) {
	var current sql.NullString
	if err := db.QueryRowContext(ctx, "SELECT DATABASE()").Scan(&current); err != nil {
		return nil, &introspect.ExtractionError{Reason: "catalog unreachable", Err: err}
	}
	if !current.Valid || current.String == "" {
		return nil, &introspect.ExtractionError{Reason: "no database selected on connection"}
	}

	schema := core.NewSchema(current.String)
	ec := &extractCtx{ctx: ctx, db: db}

	tables, err := listTables(ec)
	if err != nil {
		return nil, &introspect.ExtractionError{Database: schema.Name, Reason: "listing tables failed", Err: err}
	}

	for _, t := range tables {
		extractTable(ec, t)
		for _, w := range t.Warnings {
			schema.Warnings = append(schema.Warnings, fmt.Sprintf("table %s: %s", t.Name, w))
		}
		schema.Tables[t.Name] = t
	}

	return schema, nil
}

// extractTable fills in the table's create statement, columns, indexes, and
// foreign keys. Each fetch degrades independently: whatever was retrievable
// is kept and the miss becomes a warning on the table.
func extractTable(ec *extractCtx, t *core.Table) {
	if err := fetchCreateStatement(ec, t); err != nil {
		markPartial(t, "create statement unavailable", err)
	}
	if err := fetchColumns(ec, t); err != nil {
		markPartial(t, "column metadata unavailable", err)
	}
	if err := fetchIndexes(ec, t); err != nil {
		markPartial(t, "index metadata unavailable", err)
	}
	fetchForeignKeys(ec, t)
}
