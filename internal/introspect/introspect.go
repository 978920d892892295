// Package introspect extracts a normalized schema model from a live database.
// Implementations register themselves per dialect; callers get an Extractor
// through the registry and never depend on a concrete engine package.
package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"adjustdb/internal/core"
)

// Extractor produces the schema model for one database. The connection must
// already have a database selected, or the extractor must be able to
// determine one; otherwise extraction fails with *ExtractionError.
type Extractor interface {
	Extract(ctx context.Context, db *sql.DB) (*core.Schema, error)
}

// ExtractionError means one side's schema could not be extracted at all:
// the catalog is unreachable or no database context could be determined.
// A failure on a single table's metadata is not an ExtractionError; the
// table is retained with partial data and a warning instead.
type ExtractionError struct {
	Database string
	Reason   string
	Err      error
}

func (e *ExtractionError) Error() string {
	name := e.Database
	if name == "" {
		name = "(unknown database)"
	}
	if e.Err != nil {
		return fmt.Sprintf("extract %s: %s: %v", name, e.Reason, e.Err)
	}
	return fmt.Sprintf("extract %s: %s", name, e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

var (
	registry = make(map[core.Dialect]func() Extractor)
	mu       sync.RWMutex
)

// Register records an extractor constructor for a dialect.
func Register(dialect core.Dialect, fn func() Extractor) {
	mu.Lock()
	defer mu.Unlock()
	registry[dialect] = fn
}

// New returns an extractor for the given dialect.
func New(dialect core.Dialect) (Extractor, error) {
	mu.RLock()
	fn, ok := registry[dialect]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
	return fn(), nil
}
