package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adjustdb/internal/core"
	"adjustdb/internal/diff"
)

func strPtr(s string) *string { return &s }

func testReport() *Report {
	users := &core.Table{
		Name: "users",
		Rows: 120,
		Columns: []*core.Column{
			{Name: "id", Type: "int(11)", Nullable: false, Extra: "auto_increment", Ordinal: 1, Key: core.KeyPrimary},
			{Name: "email", Type: "varchar(50)", Nullable: false, Ordinal: 2},
		},
		Engine: "InnoDB",
	}
	ordersSrc := &core.Table{
		Name: "orders",
		Rows: 4500,
		Columns: []*core.Column{
			{Name: "id", Type: "int(11)", Nullable: false, Ordinal: 1},
			{Name: "status", Type: "varchar(20)", Nullable: false, Default: strPtr("'new'"), Ordinal: 2},
		},
		Indexes: []*core.Index{{Name: "idx_status", Columns: []string{"status"}}},
	}
	ordersTgt := &core.Table{
		Name: "orders",
		Rows: 4100,
		Columns: []*core.Column{
			{Name: "id", Type: "int(11)", Nullable: false, Ordinal: 1},
			{Name: "status", Type: "varchar(10)", Nullable: true, Ordinal: 2},
		},
	}
	legacy := &core.Table{Name: "legacy_logs", Rows: 9, Columns: []*core.Column{{Name: "id", Type: "int(11)", Ordinal: 1}}}

	source := core.NewSchema("devdb")
	source.Tables["users"] = users
	source.Tables["orders"] = ordersSrc

	target := core.NewSchema("proddb")
	target.Tables["orders"] = ordersTgt
	target.Tables["legacy_logs"] = legacy

	return &Report{
		Dialect:        core.DialectMySQL,
		Source:         source,
		Target:         target,
		Classification: diff.Classify(source, target),
	}
}

func TestHumanFormat(t *testing.T) {
	f, err := NewFormatter("human")
	require.NoError(t, err)

	text, err := f.Format(testReport())
	require.NoError(t, err)

	assert.Contains(t, text, "DATABASE DIFFERENCES ANALYSIS")
	assert.Contains(t, text, "Source: devdb (2 tables)  Target: proddb (2 tables)")
	assert.Contains(t, text, "NEW TABLES (1, exist only in source):")
	assert.Contains(t, text, "+ users (~120 records)")
	assert.Contains(t, text, "TABLES TO REMOVE (1, exist only in target):")
	assert.Contains(t, text, "- legacy_logs (~9 records)")
	assert.Contains(t, text, "MODIFIED TABLES (1):")
	assert.Contains(t, text, "~ orders (source ~4500 -> target ~4100 records)")
	assert.Contains(t, text, "~ column status:")
	assert.Contains(t, text, "type: varchar(10) -> varchar(20)")
	assert.Contains(t, text, "nullable: NULL -> NOT NULL")
	assert.Contains(t, text, "default: (none) -> 'new'")
	assert.Contains(t, text, "+ index idx_status (status)")
	assert.NotContains(t, text, "WARNINGS")
}

func TestHumanFormatSurfacesExtractionWarnings(t *testing.T) {
	r := testReport()
	r.Source.Warnings = []string{"table orders: referential rules unavailable, defaulted to RESTRICT"}
	r.Target.Warnings = []string{"table legacy_logs: index metadata unavailable"}

	f, _ := NewFormatter("human")
	text, err := f.Format(r)
	require.NoError(t, err)

	assert.Contains(t, text, "WARNINGS:")
	assert.Contains(t, text, "! source: table orders: referential rules unavailable, defaulted to RESTRICT")
	assert.Contains(t, text, "! target: table legacy_logs: index metadata unavailable")
}

func TestHumanFormatSynchronized(t *testing.T) {
	source := core.NewSchema("a")
	target := core.NewSchema("b")
	r := &Report{Source: source, Target: target, Classification: diff.Classify(source, target)}

	f, _ := NewFormatter("human")
	text, err := f.Format(r)
	require.NoError(t, err)
	assert.Contains(t, text, "Databases are already synchronized.")
}

func TestHumanFormatCollapsesLongIdenticalList(t *testing.T) {
	source := core.NewSchema("a")
	target := core.NewSchema("b")
	for i := 0; i < 15; i++ {
		name := fmt.Sprintf("table_%02d", i)
		source.Tables[name] = &core.Table{Name: name}
		target.Tables[name] = &core.Table{Name: name}
	}
	r := &Report{Source: source, Target: target, Classification: diff.Classify(source, target)}

	f, _ := NewFormatter("human")
	text, err := f.Format(r)
	require.NoError(t, err)
	assert.Contains(t, text, "IDENTICAL TABLES (15):")
	assert.Contains(t, text, "= table_09")
	assert.NotContains(t, text, "= table_10")
	assert.Contains(t, text, "... and 5 more tables")
}

func TestJSONFormat(t *testing.T) {
	f, err := NewFormatter("json")
	require.NoError(t, err)

	text, err := f.Format(testReport())
	require.NoError(t, err)

	var decoded struct {
		Source         string               `json:"source"`
		Target         string               `json:"target"`
		Classification *diff.Classification `json:"classification"`
		ModifiedTables []struct {
			Name    string           `json:"name"`
			Columns *diff.ColumnDiff `json:"columns"`
			Indexes *diff.IndexDiff  `json:"indexes"`
		} `json:"modifiedTables"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &decoded))

	assert.Equal(t, "devdb", decoded.Source)
	assert.Equal(t, "proddb", decoded.Target)
	assert.Equal(t, []string{"users"}, decoded.Classification.New)
	assert.Equal(t, []string{"legacy_logs"}, decoded.Classification.Removed)
	require.Len(t, decoded.ModifiedTables, 1)
	assert.Equal(t, "orders", decoded.ModifiedTables[0].Name)
	require.Len(t, decoded.ModifiedTables[0].Columns.Changed, 1)
	require.NotNil(t, decoded.ModifiedTables[0].Indexes)
	assert.Len(t, decoded.ModifiedTables[0].Indexes.Added, 1)
}

func TestSummaryFormat(t *testing.T) {
	f, err := NewFormatter("summary")
	require.NoError(t, err)

	text, err := f.Format(testReport())
	require.NoError(t, err)

	assert.Contains(t, text, "Tables:  +1, ~1, -1, =0")
	assert.Contains(t, text, "Columns: +0, ~1, -0")
}

func TestNewFormatterUnknown(t *testing.T) {
	_, err := NewFormatter("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")

	f, err := NewFormatter("")
	require.NoError(t, err)
	assert.IsType(t, humanFormatter{}, f)
}

func TestTableDetail(t *testing.T) {
	r := testReport()

	t.Run("new table", func(t *testing.T) {
		text := TableDetail("users", r)
		assert.Contains(t, text, "TABLE DETAILS: users")
		assert.Contains(t, text, "New table (does not exist in target)")
		assert.Contains(t, text, "Engine: InnoDB  Records: ~120")
		assert.Contains(t, text, "id: int(11) NOT NULL auto_increment")
		assert.Contains(t, text, "email: varchar(50) NOT NULL")
	})

	t.Run("removed table", func(t *testing.T) {
		text := TableDetail("legacy_logs", r)
		assert.Contains(t, text, "Exists only in target (~9 records, 1 columns)")
	})

	t.Run("modified table", func(t *testing.T) {
		text := TableDetail("orders", r)
		assert.Contains(t, text, "Records: source ~4500 -> target ~4100")
		assert.Contains(t, text, "~ column status:")
	})
}

func TestSaveScripts(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "sync_database")

	structure := []string{"-- Structure synchronization script", "USE `proddb`;"}
	data := []string{"-- Data synchronization script", "TRUNCATE TABLE `products`;"}

	written, err := SaveScripts(base, structure, data)
	require.NoError(t, err)
	require.Equal(t, []string{base + "_structure.sql", base + "_data.sql"}, written)

	content, err := os.ReadFile(base + "_structure.sql")
	require.NoError(t, err)
	assert.Equal(t, "-- Structure synchronization script\nUSE `proddb`;\n", string(content))
}

func TestSaveScriptsSkipsEmptyData(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "sync_database")

	written, err := SaveScripts(base, []string{"USE `proddb`;"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{base + "_structure.sql"}, written)

	_, err = os.Stat(base + "_data.sql")
	assert.True(t, os.IsNotExist(err))
}
