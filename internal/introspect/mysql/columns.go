package mysql

import (
	"database/sql"

	"adjustdb/internal/core"
)

// fetchColumns loads the table's columns in ordinal order. COLUMN_TYPE is
// kept verbatim (it is what MODIFY COLUMN clauses are rendered from) and the
// default distinguishes catalog NULL (no default) from an explicit value.
func fetchColumns(ec *extractCtx, t *core.Table) error {
	rows, err := ec.db.QueryContext(ec.ctx, `
		SELECT column_name, column_type, is_nullable, column_default,
		       extra, ordinal_position, column_key
		FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ?
		ORDER BY ordinal_position
	`, t.Name)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name, colType, nullable string
		var defaultVal, extra, colKey sql.NullString
		var ordinal int
		if err := rows.Scan(&name, &colType, &nullable, &defaultVal, &extra, &ordinal, &colKey); err != nil {
			return err
		}

		col := &core.Column{
			Name:     name,
			Type:     colType,
			Nullable: nullable == "YES",
			Extra:    extra.String,
			Ordinal:  ordinal,
			Key:      keyRole(colKey.String),
		}
		if defaultVal.Valid {
			col.Default = &defaultVal.String
		}

		t.Columns = append(t.Columns, col)
	}

	return rows.Err()
}

func keyRole(columnKey string) core.KeyRole {
	switch columnKey {
	case "PRI":
		return core.KeyPrimary
	case "UNI":
		return core.KeyUnique
	default:
		return core.KeyNone
	}
}
