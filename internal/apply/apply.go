// Package apply executes a generated structure script against the target
// database. The target connection is the only shared mutable resource in the
// whole tool and it is owned exclusively by this package. Execution either
// wraps the batch in a single transaction (all-or-nothing) or runs statement
// by statement, logging failures and continuing, then reporting the batch as
// failed if anything went wrong.
package apply

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

// Options contains the settings for one apply run.
type Options struct {
	DSN         string
	DryRun      bool
	Transaction bool
	Unsafe      bool // allow destructive statements without confirmation
	Out         io.Writer
}

// Applier connects to the target database and applies statement batches.
type Applier struct {
	db       *sql.DB
	options  Options
	analyzer *StatementAnalyzer
	out      io.Writer
}

// NewApplier returns an applier with the provided options.
func NewApplier(options Options) *Applier {
	out := options.Out
	if out == nil {
		out = io.Discard
	}
	return &Applier{
		options:  options,
		analyzer: NewStatementAnalyzer(),
		out:      out,
	}
}

func (a *Applier) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func (a *Applier) println(args ...any) {
	_, _ = fmt.Fprintln(a.out, args...)
}

// Connect establishes the target connection and pings it.
func (a *Applier) Connect(ctx context.Context) error {
	db, err := sql.Open("mysql", a.options.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	if pingErr := db.PingContext(ctx); pingErr != nil {
		if closeErr := db.Close(); closeErr != nil {
			return fmt.Errorf("failed to ping database: %v; additionally failed to close connection: %w", pingErr, closeErr)
		}
		return fmt.Errorf("failed to ping database: %w", pingErr)
	}
	a.db = db
	return nil
}

// Close closes the target connection if one was opened.
func (a *Applier) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Apply runs the statements. Comment lines and blank entries never reach the
// database. In dry-run mode nothing is executed; the preflight report and
// statement list are printed instead.
func (a *Applier) Apply(ctx context.Context, statements []string) error {
	statements = executableStatements(statements)
	preflight := a.analyzer.AnalyzeStatements(statements)

	if a.options.DryRun {
		return a.dryRun(statements, preflight)
	}

	if preflight.HasDestructive() && !a.options.Unsafe {
		return fmt.Errorf("script contains destructive statements; re-run with --unsafe to proceed")
	}

	if a.options.Transaction {
		return a.applyWithTransaction(ctx, statements)
	}
	return a.applyStatementByStatement(ctx, statements)
}

// executableStatements drops comments and empty lines, keeping only
// statements that should hit the server.
func executableStatements(statements []string) []string {
	out := make([]string, 0, len(statements))
	for _, stmt := range statements {
		trimmed := strings.TrimSpace(stmt)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func (a *Applier) dryRun(statements []string, preflight *PreflightResult) error {
	a.println("=== DRY RUN ===")
	if len(preflight.Warnings) == 0 {
		a.println("No preflight warnings")
	}
	for _, w := range preflight.Warnings {
		a.printf("[%s] %s\n", w.Level, w.Message)
		if w.SQL != "" {
			a.printf("    SQL: %s\n", truncateSQL(w.SQL))
		}
	}
	a.println("--- Statements ---")
	for i, stmt := range statements {
		a.printf("%d. %s\n", i+1, stmt)
	}
	if preflight.HasDestructive() && !a.options.Unsafe {
		return fmt.Errorf("preflight failed: destructive statements present without --unsafe")
	}
	a.println("=== DRY RUN COMPLETE ===")
	return nil
}

// applyWithTransaction runs the whole batch inside one transaction. Note that
// MySQL DDL causes implicit commits, so this only gives true atomicity for
// batches the server treats as transactional.
func (a *Applier) applyWithTransaction(ctx context.Context, statements []string) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for i, stmt := range statements {
		a.printf("Executing statement %d/%d...\n", i+1, len(statements))
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return fmt.Errorf("execute failed: %w; rollback also failed: %v", err, rbErr)
			}
			return fmt.Errorf("execute failed (rolled back): %w\n  Statement: %s", err, truncateSQL(stmt))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	a.printf("Successfully applied %d statements\n", len(statements))
	return nil
}

// applyStatementByStatement logs each failure and keeps going; already-applied
// statements stay applied. The batch is reported as failed when any statement
// failed.
func (a *Applier) applyStatementByStatement(ctx context.Context, statements []string) error {
	var failed int
	for i, stmt := range statements {
		a.printf("Executing statement %d/%d...\n", i+1, len(statements))
		if _, err := a.db.ExecContext(ctx, stmt); err != nil {
			failed++
			a.printf("  error in %s: %v\n", truncateSQL(stmt), err)
		}
	}

	applied := len(statements) - failed
	a.printf("Applied %d/%d statements\n", applied, len(statements))
	if failed > 0 {
		return fmt.Errorf("%d of %d statements failed; %d applied statements were not rolled back",
			failed, len(statements), applied)
	}
	return nil
}

func truncateSQL(stmt string) string {
	stmt = strings.TrimSpace(stmt)
	if len(stmt) > 80 {
		return stmt[:77] + "..."
	}
	return stmt
}
