// Package dialect provides a unified interface for rendering sync plans into
// dialect-specific SQL scripts. Emitters register themselves so the CLI can
// select one by name without importing every implementation.
package dialect

import (
	"fmt"

	"adjustdb/internal/core"
	"adjustdb/internal/plan"
)

// Emitter renders a sync plan into ordered statement text. Both render
// methods are pure given a fixed clock: the same plan yields byte-identical
// statement lists on every call.
type Emitter interface {
	// RenderStructure renders the DDL script: header comment block, the
	// database-context statement, a referential-integrity-check-free window
	// bracketing every drop/create/alter, and the closing re-enable.
	RenderStructure(p *plan.Plan) []string

	// RenderData renders the data-sync script. It never emits literal row
	// data; each table gets a truncate plus a deferred-export marker block.
	RenderData(p *plan.Plan) []string

	// QuoteIdentifier quotes a table or column name for the dialect.
	QuoteIdentifier(name string) string
}

var registry = map[core.Dialect]func() Emitter{}

// Register records an emitter constructor for the given dialect.
func Register(d core.Dialect, ctor func() Emitter) {
	registry[d] = ctor
}

// New returns an emitter for the given dialect.
func New(d core.Dialect) (Emitter, error) {
	ctor, ok := registry[d]
	if !ok {
		return nil, fmt.Errorf("unsupported dialect %q", d)
	}
	return ctor(), nil
}
