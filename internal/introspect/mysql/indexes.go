package mysql

import (
	"adjustdb/internal/core"
)

// fetchIndexes loads the table's indexes grouped by index name, preserving
// member-column order via seq_in_index.
func fetchIndexes(ec *extractCtx, t *core.Table) error {
	rows, err := ec.db.QueryContext(ec.ctx, `
		SELECT index_name, column_name
		FROM information_schema.statistics
		WHERE table_schema = DATABASE() AND table_name = ?
		ORDER BY index_name, seq_in_index
	`, t.Name)
	if err != nil {
		return err
	}
	defer rows.Close()

	var current *core.Index
	for rows.Next() {
		var indexName, columnName string
		if err := rows.Scan(&indexName, &columnName); err != nil {
			return err
		}
		if current == nil || current.Name != indexName {
			current = &core.Index{Name: indexName}
			t.Indexes = append(t.Indexes, current)
		}
		current.Columns = append(current.Columns, columnName)
	}

	return rows.Err()
}
