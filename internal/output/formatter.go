// Package output renders classification reports in several formats and
// persists generated SQL scripts. It is extendable and for now provides
// three formats: human, JSON, and summary.
package output

import (
	"fmt"
	"strings"

	"adjustdb/internal/core"
	"adjustdb/internal/diff"
)

// Format is an enum type representing the available output formats.
type Format string

const (
	FormatHuman   Format = "human"
	FormatJSON    Format = "json"
	FormatSummary Format = "summary"
)

// Report bundles everything a formatter needs: both schemas and the
// classification derived from them. Formatters only read it.
type Report struct {
	Dialect        core.Dialect
	Source         *core.Schema
	Target         *core.Schema
	Classification *diff.Classification
}

// Formatter renders a classification report as text.
type Formatter interface {
	Format(r *Report) (string, error)
}

// NewFormatter creates a formatter by name, defaulting to human output.
func NewFormatter(name string) (Formatter, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatHuman:
		return humanFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	case FormatSummary:
		return summaryFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s; use 'human', 'json', or 'summary'", name)
	}
}
