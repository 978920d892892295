package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"adjustdb/internal/apply"
	"adjustdb/internal/config"
	"adjustdb/internal/core"
	"adjustdb/internal/diff"
	"adjustdb/internal/dialect"
	_ "adjustdb/internal/dialect/mysql" // registers the MySQL/MariaDB emitter
	"adjustdb/internal/introspect"
	_ "adjustdb/internal/introspect/mysql" // registers the MySQL/MariaDB extractor
	"adjustdb/internal/output"
	"adjustdb/internal/plan"
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// buildReport loads the config, extracts both schemas concurrently, and
// classifies the differences.
func buildReport(cmd *cobra.Command) (*output.Report, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	extractor, err := introspect.New(core.Dialect(cfg.Dialect))
	if err != nil {
		return nil, err
	}

	type result struct {
		schema *core.Schema
		err    error
	}
	extract := func(endpoint config.Endpoint, out chan<- result) {
		schema, err := extractSchema(ctx, extractor, endpoint)
		out <- result{schema: schema, err: err}
	}

	sourceCh := make(chan result, 1)
	targetCh := make(chan result, 1)
	go extract(cfg.Source, sourceCh)
	go extract(cfg.Target, targetCh)

	sourceRes, targetRes := <-sourceCh, <-targetCh
	if sourceRes.err != nil {
		return nil, fmt.Errorf("source: %w", sourceRes.err)
	}
	if targetRes.err != nil {
		return nil, fmt.Errorf("target: %w", targetRes.err)
	}

	classification := diff.Classify(sourceRes.schema, targetRes.schema)
	return &output.Report{
		Dialect:        core.Dialect(cfg.Dialect),
		Source:         sourceRes.schema,
		Target:         targetRes.schema,
		Classification: classification,
	}, nil
}

func extractSchema(ctx context.Context, extractor introspect.Extractor, endpoint config.Endpoint) (*core.Schema, error) {
	db, err := sql.Open("mysql", endpoint.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open connection to %s: %w", endpoint.Database, err)
	}
	defer db.Close()

	return extractor.Extract(ctx, db)
}

// renderPlan picks the emitter for the dialect and renders both scripts.
func renderPlan(d core.Dialect, p *plan.Plan) (structure, data []string, err error) {
	emitter, err := dialect.New(d)
	if err != nil {
		return nil, nil, err
	}
	return emitter.RenderStructure(p), emitter.RenderData(p), nil
}

// applyScript reads a generated script and executes it against the target.
func applyScript(ctx context.Context, cfg *config.Config, path string, options apply.Options) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read script %s: %w", path, err)
	}

	options.DSN = cfg.Target.DSN()
	if options.Out == nil {
		options.Out = os.Stdout
	}

	applier := apply.NewApplier(options)
	if !options.DryRun {
		if err := applier.Connect(ctx); err != nil {
			return err
		}
		defer applier.Close()
	}

	statements := applier.ParseStatements(string(content))
	if err := applier.Apply(ctx, statements); err != nil {
		return err
	}
	if !options.DryRun {
		color.Green("Applied %s to %s", path, cfg.Target.Database)
	}
	return nil
}
