// Package core contains the single source of truth for an introspected
// database schema. It provides a structured representation of tables, columns,
// indexes, and foreign keys as they exist in one database at one point in
// time, plus the logical operations a sync plan is made of.
package core

import (
	"fmt"
	"sort"
	"strings"
)

// Dialect identifies a supported SQL dialect.
type Dialect string

const (
	DialectMySQL   Dialect = "mysql"
	DialectMariaDB Dialect = "mariadb"
)

// SupportedDialects returns a slice of all supported dialect values.
func SupportedDialects() []Dialect {
	return []Dialect{DialectMySQL, DialectMariaDB}
}

// IsValidDialect reports whether d is a recognized dialect string.
func IsValidDialect(d string) bool {
	for _, supported := range SupportedDialects() {
		if strings.EqualFold(string(supported), d) {
			return true
		}
	}
	return false
}

// KeyRole describes how a column participates in a key.
type KeyRole string

const (
	KeyNone    KeyRole = ""
	KeyPrimary KeyRole = "PRI"
	KeyUnique  KeyRole = "UNI"
)

// Column represents a single column of an introspected table.
//
// Identity is the name. Default distinguishes "no default" (nil) from an
// explicit default value; for comparison purposes both nil and the empty
// string normalize to "".
type Column struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"` // verbatim COLUMN_TYPE, e.g. "varchar(50)"
	Nullable bool    `json:"nullable"`
	Default  *string `json:"default,omitempty"`
	Extra    string  `json:"extra,omitempty"` // e.g. "auto_increment"
	Ordinal  int     `json:"ordinal"`
	Key      KeyRole `json:"key,omitempty"`
}

// DefaultString returns the default value normalized for comparison and
// rendering. A nil default and an empty default are equivalent.
func (c *Column) DefaultString() string {
	if c.Default == nil {
		return ""
	}
	return *c.Default
}

// Equal reports whether two column definitions are interchangeable: type,
// nullability, normalized default, and extra attributes all match. Ordinal
// position and key role are deliberately excluded; they never drive an ALTER.
func (c *Column) Equal(other *Column) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Type == other.Type &&
		c.Nullable == other.Nullable &&
		c.DefaultString() == other.DefaultString() &&
		c.Extra == other.Extra
}

// Index represents an index as an ordered list of member column names.
type Index struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

// Equal reports whether two indexes have the same name and the same member
// columns in the same order.
func (i *Index) Equal(other *Index) bool {
	if i == nil || other == nil {
		return i == other
	}
	if i.Name != other.Name || len(i.Columns) != len(other.Columns) {
		return false
	}
	for n := range i.Columns {
		if i.Columns[n] != other.Columns[n] {
			return false
		}
	}
	return true
}

// ForeignKey represents a single-column foreign key constraint.
// OnUpdate and OnDelete default to RESTRICT when the engine cannot report them.
type ForeignKey struct {
	Name      string `json:"name"`
	Column    string `json:"column"`
	RefTable  string `json:"refTable"`
	RefColumn string `json:"refColumn"`
	OnUpdate  string `json:"onUpdate"`
	OnDelete  string `json:"onDelete"`
}

// Table represents one introspected table.
type Table struct {
	Name            string        `json:"name"`
	CreateStatement string        `json:"createStatement,omitempty"` // verbatim SHOW CREATE TABLE
	Engine          string        `json:"engine,omitempty"`
	Collation       string        `json:"collation,omitempty"`
	Rows            int64         `json:"rows"` // estimate only, never exact
	Columns         []*Column     `json:"columns"`
	Indexes         []*Index      `json:"indexes,omitempty"`
	ForeignKeys     []*ForeignKey `json:"foreignKeys,omitempty"`

	// Partial marks a table whose metadata could not be fully fetched.
	// The differ classifies such tables as modified to force manual review.
	Partial  bool     `json:"partial,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// FindColumn looks for a column by exact name inside a table.
func (t *Table) FindColumn(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindIndex looks for an index by exact name inside a table.
func (t *Table) FindIndex(name string) *Index {
	for _, i := range t.Indexes {
		if i.Name == name {
			return i
		}
	}
	return nil
}

// ColumnNames returns the table's column names in ordinal order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// String returns a short description of the table for reports.
func (t *Table) String() string {
	return fmt.Sprintf("Table: %s (%d cols, %d indexes, %d foreign keys)",
		t.Name, len(t.Columns), len(t.Indexes), len(t.ForeignKeys))
}

// Schema is the normalized model of one database at one point in time.
// It is immutable once extraction finishes; the differ and plan builder
// only ever read it.
type Schema struct {
	Name     string            `json:"name"`
	Tables   map[string]*Table `json:"tables"`
	Warnings []string          `json:"warnings,omitempty"`
}

// NewSchema returns an empty schema for the named database.
func NewSchema(name string) *Schema {
	return &Schema{Name: name, Tables: make(map[string]*Table)}
}

// TableNames returns all table names in sorted order.
func (s *Schema) TableNames() []string {
	names := make([]string, 0, len(s.Tables))
	for name := range s.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Table returns the named table, or nil. Lookup is exact and case-sensitive;
// a schema extracted from a server with lower_case_table_names=0 can hold
// tables differing only in case.
func (s *Schema) Table(name string) *Table {
	return s.Tables[name]
}

// HasTable reports whether the schema contains the named table.
func (s *Schema) HasTable(name string) bool {
	_, ok := s.Tables[name]
	return ok
}
