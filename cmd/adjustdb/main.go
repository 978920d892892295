// Package main contains the adjustdb CLI: compare two databases, pick what to
// sync table by table, and generate (or apply) the resulting SQL scripts.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"adjustdb/internal/apply"
	"adjustdb/internal/config"
	"adjustdb/internal/output"
	"adjustdb/internal/plan"
	"adjustdb/internal/prompt"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "adjustdb",
		Short:         "Compare two databases and synchronize schema selectively",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultPath, "connection config file")

	rootCmd.AddCommand(diffCmd())
	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(syncCmd())
	rootCmd.AddCommand(applyCmd())

	if err := rootCmd.Execute(); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func diffCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare source and target schemas and report the differences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := buildReport(cmd)
			if err != nil {
				return err
			}

			formatter, err := output.NewFormatter(format)
			if err != nil {
				return err
			}
			text, err := formatter.Format(report)
			if err != nil {
				return err
			}
			fmt.Print(text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "human", "output format: human, json, or summary")
	return cmd
}

func planCmd() *cobra.Command {
	var (
		structureOnly    []string
		structureAndData []string
		dropTables       []string
		outBase          string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate sync scripts from explicit table selections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := buildReport(cmd)
			if err != nil {
				return err
			}

			sel := plan.NewSelection()
			for _, t := range structureOnly {
				sel.Set(t, plan.ActionStructureOnly)
			}
			for _, t := range structureAndData {
				sel.Set(t, plan.ActionStructureAndData)
			}
			for _, t := range dropTables {
				sel.Set(t, plan.ActionDrop)
			}
			if sel.IsEmpty() {
				return fmt.Errorf("nothing selected; use --structure-only, --structure-and-data, or --drop")
			}

			return generateScripts(report, sel, outBase)
		},
	}

	cmd.Flags().StringSliceVar(&structureOnly, "structure-only", nil, "tables to sync structure only")
	cmd.Flags().StringSliceVar(&structureAndData, "structure-and-data", nil, "tables to sync structure and data")
	cmd.Flags().StringSliceVar(&dropTables, "drop", nil, "target-only tables to drop")
	cmd.Flags().StringVarP(&outBase, "out", "o", "sync_database", "base name for generated script files")
	return cmd
}

func syncCmd() *cobra.Command {
	var (
		outBase     string
		applyNow    bool
		transaction bool
		dryRun      bool
		unsafe      bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Interactively choose what to sync, then generate scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := buildReport(cmd)
			if err != nil {
				return err
			}

			if report.Classification.IsEmpty() {
				color.Green("Databases are already synchronized.")
				return nil
			}

			formatter, err := output.NewFormatter("human")
			if err != nil {
				return err
			}
			text, err := formatter.Format(report)
			if err != nil {
				return err
			}
			fmt.Print(text)

			sel, err := prompt.Run(report)
			if err != nil {
				return err
			}
			if sel.IsEmpty() {
				color.Yellow("Nothing selected; no scripts generated.")
				return nil
			}

			if err := generateScripts(report, sel, outBase); err != nil {
				return err
			}
			if !applyNow {
				return nil
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return applyScript(cmd.Context(), cfg, outBase+"_structure.sql", apply.Options{
				Transaction: transaction,
				DryRun:      dryRun,
				Unsafe:      unsafe,
			})
		},
	}

	cmd.Flags().StringVarP(&outBase, "out", "o", "sync_database", "base name for generated script files")
	cmd.Flags().BoolVar(&applyNow, "apply", false, "apply the structure script to the target after generating")
	cmd.Flags().BoolVar(&transaction, "transaction", false, "apply inside a single transaction (all-or-nothing)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be applied without executing")
	cmd.Flags().BoolVar(&unsafe, "unsafe", false, "allow destructive statements")
	return cmd
}

func applyCmd() *cobra.Command {
	var (
		file        string
		transaction bool
		dryRun      bool
		unsafe      bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a previously generated structure script to the target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return applyScript(cmd.Context(), cfg, file, apply.Options{
				Transaction: transaction,
				DryRun:      dryRun,
				Unsafe:      unsafe,
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "sync_database_structure.sql", "script file to apply")
	cmd.Flags().BoolVar(&transaction, "transaction", false, "apply inside a single transaction (all-or-nothing)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be applied without executing")
	cmd.Flags().BoolVar(&unsafe, "unsafe", false, "allow destructive statements")
	return cmd
}

// generateScripts builds the plan, renders both scripts, and saves them.
func generateScripts(report *output.Report, sel *plan.Selection, outBase string) error {
	p := plan.Build(report.Classification, sel, report.Source, report.Target)
	for _, w := range p.Warnings {
		color.Yellow("warning: %s", w)
	}
	if p.IsEmpty() {
		color.Yellow("Selection produced no operations; no scripts generated.")
		return nil
	}

	structure, data, err := renderPlan(report.Dialect, p)
	if err != nil {
		return err
	}

	written, err := output.SaveScripts(outBase, structure, data)
	if err != nil {
		return err
	}
	for _, path := range written {
		color.Green("Saved %s", path)
	}
	if len(data) > 0 {
		color.Yellow("Data sync is deferred: export the selected tables separately (see %s_data.sql).", outBase)
	}
	return nil
}
