package mysql

import (
	"database/sql"
	"fmt"

	"adjustdb/internal/core"
)

// listTables enumerates all base tables (views excluded) with their engine,
// collation, and estimated row count. The estimate comes from table
// statistics and may be stale; it is display and decision context only.
func listTables(ec *extractCtx) ([]*core.Table, error) {
	rows, err := ec.db.QueryContext(ec.ctx, `
		SELECT table_name, engine, table_collation, table_rows
		FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []*core.Table
	for rows.Next() {
		var name string
		var engine, collation sql.NullString
		var tableRows sql.NullInt64
		if err := rows.Scan(&name, &engine, &collation, &tableRows); err != nil {
			return nil, err
		}
		tables = append(tables, &core.Table{
			Name:      name,
			Engine:    engine.String,
			Collation: collation.String,
			Rows:      tableRows.Int64,
		})
	}
	return tables, rows.Err()
}

// fetchCreateStatement captures the verbatim CREATE TABLE text. It is the
// only representation used when the table has to be created from scratch on
// the target, so engine, charset, and partition options carry over exactly.
func fetchCreateStatement(ec *extractCtx, t *core.Table) error {
	var name, create string
	err := ec.db.QueryRowContext(ec.ctx,
		fmt.Sprintf("SHOW CREATE TABLE %s", quoteIdentifier(t.Name))).Scan(&name, &create)
	if err != nil {
		return err
	}
	t.CreateStatement = create
	return nil
}

func markPartial(t *core.Table, reason string, err error) {
	t.Partial = true
	if err != nil {
		reason = fmt.Sprintf("%s: %v", reason, err)
	}
	t.Warnings = append(t.Warnings, reason)
}

func quoteIdentifier(name string) string {
	out := make([]byte, 0, len(name)+2)
	out = append(out, '`')
	for i := 0; i < len(name); i++ {
		if name[i] == '`' {
			out = append(out, '`')
		}
		out = append(out, name[i])
	}
	return string(append(out, '`'))
}
