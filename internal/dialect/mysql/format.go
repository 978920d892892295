package mysql

import (
	"strings"

	"adjustdb/internal/core"
)

// columnDefinition renders the column clause shared by ADD COLUMN and MODIFY
// COLUMN: "`name` type NULL|NOT NULL [DEFAULT d] [extra]", with empty
// segments trimmed. It is a pure function of the column definition.
func (g *Generator) columnDefinition(c *core.Column) string {
	parts := []string{g.QuoteIdentifier(c.Name), c.Type}

	if c.Nullable {
		parts = append(parts, "NULL")
	} else {
		parts = append(parts, "NOT NULL")
	}

	// The default arrives as the catalog reports it (already quoted for
	// string literals on MariaDB, bare for expressions and numbers), so it
	// is passed through verbatim.
	if d := c.DefaultString(); d != "" {
		parts = append(parts, "DEFAULT "+d)
	}

	if extra := strings.TrimSpace(c.Extra); extra != "" {
		parts = append(parts, extra)
	}

	return strings.Join(parts, " ")
}

// QuoteIdentifier backtick-quotes a table or column name, doubling any
// embedded backticks.
func (g *Generator) QuoteIdentifier(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "`", "``")
	return "`" + name + "`"
}

func joinComma(parts []string) string {
	return strings.Join(parts, ", ")
}
