package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adjustdb/internal/core"
	"adjustdb/internal/diff"
)

func strPtr(s string) *string { return &s }

func schemaOf(name string, tables ...*core.Table) *core.Schema {
	s := core.NewSchema(name)
	for _, t := range tables {
		s.Tables[t.Name] = t
	}
	return s
}

// fixtures returns a source/target pair covering all four buckets:
// users is new, orders is modified, products is identical, legacy_logs
// exists only in the target.
func fixtures() (*core.Schema, *core.Schema) {
	users := &core.Table{
		Name:            "users",
		CreateStatement: "CREATE TABLE `users` (\n  `id` int(11) NOT NULL AUTO_INCREMENT,\n  PRIMARY KEY (`id`)\n) ENGINE=InnoDB",
		Rows:            120,
		Columns: []*core.Column{
			{Name: "id", Type: "int(11)", Nullable: false, Extra: "auto_increment", Ordinal: 1, Key: core.KeyPrimary},
		},
	}
	ordersSrc := &core.Table{
		Name: "orders",
		Rows: 4500,
		Columns: []*core.Column{
			{Name: "id", Type: "int(11)", Nullable: false, Extra: "auto_increment", Ordinal: 1},
			{Name: "status", Type: "varchar(20)", Nullable: false, Default: strPtr("'new'"), Ordinal: 2},
			{Name: "note", Type: "text", Nullable: true, Ordinal: 3},
		},
	}
	ordersTgt := &core.Table{
		Name: "orders",
		Rows: 4100,
		Columns: []*core.Column{
			{Name: "id", Type: "int(11)", Nullable: false, Extra: "auto_increment", Ordinal: 1},
			{Name: "status", Type: "varchar(10)", Nullable: true, Ordinal: 2},
			{Name: "legacy_flag", Type: "tinyint(1)", Nullable: false, Ordinal: 3},
		},
	}
	products := &core.Table{
		Name:    "products",
		Rows:    800,
		Columns: []*core.Column{{Name: "id", Type: "int(11)", Nullable: false, Ordinal: 1}, {Name: "name", Type: "varchar(100)", Nullable: false, Ordinal: 2}},
	}
	productsCopy := &core.Table{
		Name:    "products",
		Rows:    790,
		Columns: []*core.Column{{Name: "id", Type: "int(11)", Nullable: false, Ordinal: 1}, {Name: "name", Type: "varchar(100)", Nullable: false, Ordinal: 2}},
	}
	legacy := &core.Table{Name: "legacy_logs", Rows: 9}

	source := schemaOf("devdb", users, ordersSrc, products)
	target := schemaOf("proddb", ordersTgt, productsCopy, legacy)
	return source, target
}

func kinds(ops []core.Operation) []core.OperationKind {
	out := make([]core.OperationKind, len(ops))
	for i, op := range ops {
		out[i] = op.Kind
	}
	return out
}

func TestBuildOrdering(t *testing.T) {
	source, target := fixtures()
	c := diff.Classify(source, target)

	sel := NewSelection()
	sel.Set("users", ActionStructureAndData)
	sel.Set("orders", ActionStructureOnly)
	sel.Set("legacy_logs", ActionDrop)

	p := Build(c, sel, source, target)

	require.Empty(t, p.Warnings)
	assert.Equal(t, "devdb", p.SourceName)
	assert.Equal(t, "proddb", p.TargetName)

	// Drops first, then structure-only tables, then structure-and-data tables.
	require.Len(t, p.Structure, 5)
	assert.Equal(t, core.OpDropTable, p.Structure[0].Kind)
	assert.Equal(t, "legacy_logs", p.Structure[0].Table)

	assert.Equal(t, []core.OperationKind{
		core.OpDropTable,
		core.OpAddColumn, core.OpDropColumn, core.OpModifyColumn,
		core.OpCreateTable,
	}, kinds(p.Structure))

	// orders alters: add note, drop legacy_flag, modify status with the
	// source-side definition.
	assert.Equal(t, "note", p.Structure[1].Column.Name)
	assert.Equal(t, "legacy_flag", p.Structure[2].Column.Name)
	assert.Equal(t, "status", p.Structure[3].Column.Name)
	assert.Equal(t, "varchar(20)", p.Structure[3].Column.Type)
	assert.False(t, p.Structure[3].Column.Nullable)
	assert.Equal(t, "'new'", p.Structure[3].Column.DefaultString())

	// users is created verbatim from the source definition.
	assert.Equal(t, "users", p.Structure[4].Table)
	assert.Contains(t, p.Structure[4].CreateSQL, "CREATE TABLE `users`")

	// One data marker, for the single structure-and-data table.
	require.Len(t, p.Data, 1)
	assert.Equal(t, core.OpSyncData, p.Data[0].Kind)
	assert.Equal(t, "users", p.Data[0].Table)
	assert.Equal(t, int64(120), p.Data[0].Rows)
	assert.Equal(t, []string{"id"}, p.Data[0].InsertColumns)
}

func TestBuildAlterClausesAreNameSorted(t *testing.T) {
	source := schemaOf("dev", &core.Table{
		Name: "t",
		Columns: []*core.Column{
			{Name: "zeta", Type: "int(11)", Ordinal: 1},
			{Name: "alpha", Type: "int(11)", Ordinal: 2},
		},
	})
	target := schemaOf("prod", &core.Table{
		Name:    "t",
		Columns: []*core.Column{{Name: "omega", Type: "int(11)", Ordinal: 1}},
	})
	c := diff.Classify(source, target)

	sel := NewSelection()
	sel.Set("t", ActionStructureOnly)

	p := Build(c, sel, source, target)
	require.Len(t, p.Structure, 3)
	assert.Equal(t, "alpha", p.Structure[0].Column.Name)
	assert.Equal(t, "zeta", p.Structure[1].Column.Name)
	assert.Equal(t, core.OpDropColumn, p.Structure[2].Kind)
	assert.Equal(t, "omega", p.Structure[2].Column.Name)
}

func TestBuildIsDeterministic(t *testing.T) {
	source, target := fixtures()
	c := diff.Classify(source, target)

	sel := NewSelection()
	sel.Set("orders", ActionStructureAndData)
	sel.Set("users", ActionStructureOnly)
	sel.Set("legacy_logs", ActionDrop)

	first := Build(c, sel, source, target)
	second := Build(c, sel, source, target)
	assert.Equal(t, first, second)
}

func TestBuildDataMarkerForUnchangedStructure(t *testing.T) {
	// A modified table selected for structure-and-data gets its data marker
	// even when only data is wanted; an identical table cannot be selected at
	// all and is warned about instead.
	source, target := fixtures()
	c := diff.Classify(source, target)

	sel := NewSelection()
	sel.Set("products", ActionStructureAndData)

	p := Build(c, sel, source, target)
	assert.Empty(t, p.Structure)
	assert.Empty(t, p.Data)
	require.Len(t, p.Warnings, 1)
	assert.Contains(t, p.Warnings[0], "products")
	assert.Contains(t, p.Warnings[0], "identical")
}

func TestBuildInvalidSelectionsAreWarnedNotFatal(t *testing.T) {
	source, target := fixtures()
	c := diff.Classify(source, target)

	sel := NewSelection()
	sel.Set("users", ActionDrop)                // new table cannot be dropped
	sel.Set("legacy_logs", ActionStructureOnly) // removed table cannot be synced
	sel.Set("ghost", ActionStructureAndData)    // unknown table

	p := Build(c, sel, source, target)
	assert.True(t, p.IsEmpty())
	require.Len(t, p.Warnings, 3)
	assert.Contains(t, p.Warnings[0], "users")
	assert.Contains(t, p.Warnings[0], "new")
	assert.Contains(t, p.Warnings[1], "legacy_logs")
	assert.Contains(t, p.Warnings[2], "unknown")
}

func TestBuildEmptySelection(t *testing.T) {
	source, target := fixtures()
	c := diff.Classify(source, target)

	p := Build(c, NewSelection(), source, target)
	assert.True(t, p.IsEmpty())
	assert.Empty(t, p.Warnings)
}

func TestSelectionLastChoiceWins(t *testing.T) {
	sel := NewSelection()
	sel.Set("a", ActionStructureOnly)
	sel.Set("b", ActionStructureOnly)
	sel.Set("a", ActionStructureAndData)

	assert.Equal(t, ActionStructureAndData, sel.Action("a"))
	assert.Equal(t, []string{"b"}, sel.StructureOnly())
	assert.Equal(t, []string{"a"}, sel.StructureAndData())
	assert.Equal(t, ActionSkip, sel.Action("unchosen"))
	assert.False(t, sel.IsEmpty())
}

func TestSelectionReselectionMovesToEnd(t *testing.T) {
	sel := NewSelection()
	sel.Set("a", ActionStructureOnly)
	sel.Set("b", ActionStructureOnly)
	sel.Set("a", ActionStructureOnly)

	assert.Equal(t, []string{"b", "a"}, sel.StructureOnly())
}
