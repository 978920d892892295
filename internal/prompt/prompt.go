// Package prompt collects per-table sync choices from a human. It is the
// interactive boundary: the core packages never call into it, they only
// receive the finished Selection it produces. Quitting at any point returns
// ErrAborted and no selection, so nothing downstream is generated.
package prompt

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"adjustdb/internal/output"
	"adjustdb/internal/plan"
)

// ErrAborted is returned when the user quits before finishing the selection.
var ErrAborted = errors.New("selection aborted by user")

const (
	choiceStructureOnly    = "Structure only"
	choiceStructureAndData = "Structure + data"
	choiceSkip             = "Skip this table"
	choiceDetails          = "Show details"
	choiceQuit             = "Quit"

	choiceDrop = "Drop it from the target"
	choiceKeep = "Keep it"
)

// Run walks the user through every actionable table: new and modified tables
// get a sync choice, removed tables a drop confirmation.
func Run(r *output.Report) (*plan.Selection, error) {
	sel := plan.NewSelection()
	c := r.Classification

	for _, table := range c.New {
		if err := askSyncChoice(sel, table, "new", r); err != nil {
			return nil, err
		}
	}
	for _, table := range c.Modified {
		if err := askSyncChoice(sel, table, "modified", r); err != nil {
			return nil, err
		}
	}
	for _, table := range c.Removed {
		if err := askDropChoice(sel, table, r); err != nil {
			return nil, err
		}
	}

	return sel, nil
}

func askSyncChoice(sel *plan.Selection, table, bucket string, r *output.Report) error {
	rows := r.Source.Table(table).Rows
	message := fmt.Sprintf("Table %q (%s, ~%d records):", table, bucket, rows)
	options := []string{choiceStructureOnly, choiceStructureAndData, choiceSkip, choiceDetails, choiceQuit}

	for {
		choice, err := ask(message, options)
		if err != nil {
			return err
		}
		switch choice {
		case choiceStructureOnly:
			sel.Set(table, plan.ActionStructureOnly)
			return nil
		case choiceStructureAndData:
			sel.Set(table, plan.ActionStructureAndData)
			return nil
		case choiceSkip:
			return nil
		case choiceDetails:
			fmt.Println(output.TableDetail(table, r))
		case choiceQuit:
			return ErrAborted
		}
	}
}

func askDropChoice(sel *plan.Selection, table string, r *output.Report) error {
	rows := r.Target.Table(table).Rows
	message := fmt.Sprintf("Table %q exists only in target (~%d records):", table, rows)
	options := []string{choiceKeep, choiceDrop, choiceDetails, choiceQuit}

	for {
		choice, err := ask(message, options)
		if err != nil {
			return err
		}
		switch choice {
		case choiceDrop:
			sel.Set(table, plan.ActionDrop)
			return nil
		case choiceKeep:
			return nil
		case choiceDetails:
			fmt.Println(output.TableDetail(table, r))
		case choiceQuit:
			return ErrAborted
		}
	}
}

func ask(message string, options []string) (string, error) {
	var choice string
	err := survey.AskOne(&survey.Select{Message: message, Options: options}, &choice)
	if err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return choice, nil
}
