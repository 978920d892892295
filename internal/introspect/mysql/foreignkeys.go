package mysql

import (
	"adjustdb/internal/core"
)

const fkQueryWithRules = `
	SELECT kcu.constraint_name, kcu.column_name,
	       kcu.referenced_table_name, kcu.referenced_column_name,
	       COALESCE(rc.update_rule, 'RESTRICT'), COALESCE(rc.delete_rule, 'RESTRICT')
	FROM information_schema.key_column_usage kcu
	LEFT JOIN information_schema.referential_constraints rc
	    ON kcu.constraint_name = rc.constraint_name
	    AND kcu.table_schema = rc.constraint_schema
	WHERE kcu.table_schema = DATABASE()
	    AND kcu.table_name = ?
	    AND kcu.referenced_table_name IS NOT NULL`

const fkQueryFallback = `
	SELECT constraint_name, column_name,
	       referenced_table_name, referenced_column_name,
	       'RESTRICT', 'RESTRICT'
	FROM information_schema.key_column_usage
	WHERE table_schema = DATABASE()
	    AND table_name = ?
	    AND referenced_table_name IS NOT NULL`

// fetchForeignKeys loads the table's foreign keys with their referential
// rules. Older MariaDB servers lack a queryable referential_constraints
// view; the fallback keeps the constraints and defaults both rules to
// RESTRICT, degrading rule accuracy without failing the table.
func fetchForeignKeys(ec *extractCtx, t *core.Table) {
	if err := queryForeignKeys(ec, t, fkQueryWithRules); err == nil {
		return
	}
	t.ForeignKeys = nil
	if err := queryForeignKeys(ec, t, fkQueryFallback); err != nil {
		markPartial(t, "foreign key metadata unavailable", err)
	} else {
		t.Warnings = append(t.Warnings, "referential rules unavailable, defaulted to RESTRICT")
	}
}

func queryForeignKeys(ec *extractCtx, t *core.Table, query string) error {
	rows, err := ec.db.QueryContext(ec.ctx, query, t.Name)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		fk := &core.ForeignKey{}
		if err := rows.Scan(&fk.Name, &fk.Column, &fk.RefTable, &fk.RefColumn, &fk.OnUpdate, &fk.OnDelete); err != nil {
			return err
		}
		t.ForeignKeys = append(t.ForeignKeys, fk)
	}

	return rows.Err()
}
