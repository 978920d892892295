package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestColumnEqual(t *testing.T) {
	base := &Column{Name: "email", Type: "varchar(50)", Nullable: false, Extra: ""}

	t.Run("identical definitions are equal", func(t *testing.T) {
		other := &Column{Name: "email", Type: "varchar(50)", Nullable: false}
		assert.True(t, base.Equal(other))
		assert.True(t, other.Equal(base))
	})

	t.Run("type change breaks equality", func(t *testing.T) {
		other := &Column{Name: "email", Type: "varchar(100)", Nullable: false}
		assert.False(t, base.Equal(other))
	})

	t.Run("nullability change breaks equality", func(t *testing.T) {
		other := &Column{Name: "email", Type: "varchar(50)", Nullable: true}
		assert.False(t, base.Equal(other))
	})

	t.Run("extra-only change breaks equality", func(t *testing.T) {
		other := &Column{Name: "email", Type: "varchar(50)", Nullable: false, Extra: "auto_increment"}
		assert.False(t, base.Equal(other))
	})

	t.Run("nil default and empty default are equivalent", func(t *testing.T) {
		withEmpty := &Column{Name: "email", Type: "varchar(50)", Default: strPtr("")}
		assert.True(t, base.Equal(withEmpty))
	})

	t.Run("explicit default breaks equality with no default", func(t *testing.T) {
		other := &Column{Name: "email", Type: "varchar(50)", Default: strPtr("'none'")}
		assert.False(t, base.Equal(other))
	})

	t.Run("ordinal and key role are ignored", func(t *testing.T) {
		other := &Column{Name: "email", Type: "varchar(50)", Ordinal: 7, Key: KeyUnique}
		assert.True(t, base.Equal(other))
	})

	t.Run("name is not compared", func(t *testing.T) {
		// Callers match columns by name before comparing definitions.
		other := &Column{Name: "mail", Type: "varchar(50)"}
		assert.True(t, base.Equal(other))
	})

	t.Run("nil handling", func(t *testing.T) {
		var nilCol *Column
		assert.False(t, base.Equal(nil))
		assert.True(t, nilCol.Equal(nil))
	})
}

func TestColumnDefaultString(t *testing.T) {
	assert.Equal(t, "", (&Column{}).DefaultString())
	assert.Equal(t, "", (&Column{Default: strPtr("")}).DefaultString())
	assert.Equal(t, "0", (&Column{Default: strPtr("0")}).DefaultString())
}

func TestIndexEqual(t *testing.T) {
	idx := &Index{Name: "idx_user", Columns: []string{"user_id", "created_at"}}

	t.Run("same name and columns", func(t *testing.T) {
		assert.True(t, idx.Equal(&Index{Name: "idx_user", Columns: []string{"user_id", "created_at"}}))
	})

	t.Run("column order matters", func(t *testing.T) {
		assert.False(t, idx.Equal(&Index{Name: "idx_user", Columns: []string{"created_at", "user_id"}}))
	})

	t.Run("different name", func(t *testing.T) {
		assert.False(t, idx.Equal(&Index{Name: "idx_other", Columns: []string{"user_id", "created_at"}}))
	})

	t.Run("different length", func(t *testing.T) {
		assert.False(t, idx.Equal(&Index{Name: "idx_user", Columns: []string{"user_id"}}))
	})
}

func TestTableLookups(t *testing.T) {
	table := &Table{
		Name: "users",
		Columns: []*Column{
			{Name: "id", Type: "int", Ordinal: 1},
			{Name: "email", Type: "varchar(50)", Ordinal: 2},
		},
		Indexes: []*Index{{Name: "PRIMARY", Columns: []string{"id"}}},
	}

	require.NotNil(t, table.FindColumn("email"))
	assert.Nil(t, table.FindColumn("Email"), "column lookup is case-sensitive")
	assert.Nil(t, table.FindColumn("missing"))

	require.NotNil(t, table.FindIndex("PRIMARY"))
	assert.Nil(t, table.FindIndex("primary"))

	assert.Equal(t, []string{"id", "email"}, table.ColumnNames())
	assert.Equal(t, "Table: users (2 cols, 1 indexes, 0 foreign keys)", table.String())
}

func TestSchemaTableNames(t *testing.T) {
	s := NewSchema("appdb")
	s.Tables["users"] = &Table{Name: "users"}
	s.Tables["orders"] = &Table{Name: "orders"}
	s.Tables["Users"] = &Table{Name: "Users"}

	assert.Equal(t, []string{"Users", "orders", "users"}, s.TableNames())

	assert.True(t, s.HasTable("users"))
	assert.True(t, s.HasTable("Users"))
	assert.False(t, s.HasTable("USERS"))
	assert.Nil(t, s.Table("missing"))
}

func TestIsValidDialect(t *testing.T) {
	assert.True(t, IsValidDialect("mysql"))
	assert.True(t, IsValidDialect("MariaDB"))
	assert.False(t, IsValidDialect("postgres"))
}
