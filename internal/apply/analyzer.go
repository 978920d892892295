package apply

import (
	"strings"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/format"
	_ "github.com/pingcap/tidb/pkg/parser/test_driver" // registers the parser driver
)

// WarningLevel grades preflight findings.
type WarningLevel string

const (
	WarnCaution WarningLevel = "CAUTION"
	WarnDanger  WarningLevel = "DANGER"
)

// Warning is one preflight finding about a statement.
type Warning struct {
	Level   WarningLevel
	Message string
	SQL     string
}

// PreflightResult lists what the analyzer found in a statement batch.
type PreflightResult struct {
	Warnings []Warning
}

// HasDestructive reports whether any statement would destroy data.
func (r *PreflightResult) HasDestructive() bool {
	for _, w := range r.Warnings {
		if w.Level == WarnDanger {
			return true
		}
	}
	return false
}

// StatementAnalyzer classifies statements using TiDB's AST parser, falling
// back to keyword matching for anything the parser cannot handle.
type StatementAnalyzer struct {
	parser *parser.Parser
}

// NewStatementAnalyzer creates a new AST-based statement analyzer.
func NewStatementAnalyzer() *StatementAnalyzer {
	return &StatementAnalyzer{parser: parser.New()}
}

// AnalyzeStatements runs preflight over a batch.
func (a *StatementAnalyzer) AnalyzeStatements(statements []string) *PreflightResult {
	result := &PreflightResult{}
	for _, stmt := range statements {
		if w := a.analyzeStatement(stmt); w != nil {
			result.Warnings = append(result.Warnings, *w)
		}
	}
	return result
}

func (a *StatementAnalyzer) analyzeStatement(sql string) *Warning {
	nodes, _, err := a.parser.Parse(sql, "", "")
	if err != nil || len(nodes) == 0 {
		return analyzeByKeyword(sql)
	}

	switch node := nodes[0].(type) {
	case *ast.DropTableStmt:
		return &Warning{Level: WarnDanger, Message: "DROP TABLE permanently deletes the table and its data", SQL: sql}
	case *ast.TruncateTableStmt:
		return &Warning{Level: WarnDanger, Message: "TRUNCATE TABLE permanently deletes all rows", SQL: sql}
	case *ast.AlterTableStmt:
		for _, spec := range node.Specs {
			switch spec.Tp {
			case ast.AlterTableDropColumn:
				return &Warning{Level: WarnDanger, Message: "DROP COLUMN permanently deletes the column and its data", SQL: sql}
			case ast.AlterTableModifyColumn, ast.AlterTableChangeColumn:
				return &Warning{Level: WarnCaution, Message: "column modification may rebuild and lock the table", SQL: sql}
			}
		}
	}
	return nil
}

// analyzeByKeyword is the fallback for statements TiDB's parser rejects
// (vendor-specific CREATE options and the like).
func analyzeByKeyword(sql string) *Warning {
	upper := strings.ToUpper(strings.TrimSpace(sql))
	switch {
	case strings.HasPrefix(upper, "DROP TABLE"):
		return &Warning{Level: WarnDanger, Message: "DROP TABLE permanently deletes the table and its data", SQL: sql}
	case strings.HasPrefix(upper, "TRUNCATE"):
		return &Warning{Level: WarnDanger, Message: "TRUNCATE TABLE permanently deletes all rows", SQL: sql}
	case strings.Contains(upper, "DROP COLUMN"):
		return &Warning{Level: WarnDanger, Message: "DROP COLUMN permanently deletes the column and its data", SQL: sql}
	}
	return nil
}

// ParseStatements splits script text into individual statements. The TiDB
// parser handles semicolons inside literals correctly; when it cannot parse
// the script (generated CREATEs can carry options it rejects), a line-based
// splitter takes over.
func (a *StatementAnalyzer) ParseStatements(content string) []string {
	content = strings.TrimSpace(content)

	if nodes, _, err := a.parser.Parse(content, "", ""); err == nil && len(nodes) > 0 {
		var statements []string
		for _, node := range nodes {
			if node == nil {
				continue
			}
			var sb strings.Builder
			ctx := format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)
			if restoreErr := node.Restore(ctx); restoreErr != nil {
				continue
			}
			if stmt := strings.TrimSpace(sb.String()); stmt != "" {
				statements = append(statements, stmt+";")
			}
		}
		if len(statements) > 0 {
			return statements
		}
	}

	return splitByLines(content)
}

func splitByLines(content string) []string {
	var statements []string
	var current strings.Builder

	for line := range strings.SplitSeq(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}

		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(trimmed, ";") {
			if stmt := strings.TrimSpace(current.String()); stmt != "" {
				statements = append(statements, stmt)
			}
			current.Reset()
		}
	}

	if remaining := strings.TrimSpace(current.String()); remaining != "" {
		statements = append(statements, remaining)
	}

	return statements
}

// ParseStatements exposes script splitting on the applier for the CLI's
// apply-from-file path.
func (a *Applier) ParseStatements(content string) []string {
	return a.analyzer.ParseStatements(content)
}
