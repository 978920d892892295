// Package plan turns a table classification plus per-table user selections
// into an ordered list of logical operations. Building a plan is a pure
// transformation: it reads the two schemas, touches no database, and produces
// the same operation list for the same inputs every time.
package plan

// Action is what the user chose to do with one table.
type Action string

const (
	ActionSkip             Action = "skip"
	ActionStructureOnly    Action = "structure_only"
	ActionStructureAndData Action = "structure_and_data"
	ActionDrop             Action = "drop"
)

// Selection records per-table actions in the order they were chosen. Order
// matters: the plan processes create/alter tables in structure-only selection
// order followed by structure-and-data selection order, and data-sync markers
// in structure-and-data selection order. A table absent from the selection is
// skipped.
type Selection struct {
	actions map[string]Action

	structureOnly    []string
	structureAndData []string
	drop             []string
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{actions: make(map[string]Action)}
}

// Set records the action for a table. Choosing again for the same table
// replaces the earlier choice and moves the table to the end of its list.
func (s *Selection) Set(table string, action Action) {
	if prev, ok := s.actions[table]; ok {
		s.remove(table, prev)
	}
	s.actions[table] = action
	switch action {
	case ActionStructureOnly:
		s.structureOnly = append(s.structureOnly, table)
	case ActionStructureAndData:
		s.structureAndData = append(s.structureAndData, table)
	case ActionDrop:
		s.drop = append(s.drop, table)
	}
}

func (s *Selection) remove(table string, action Action) {
	delete(s.actions, table)
	pick := func(list []string) []string {
		for i, t := range list {
			if t == table {
				return append(list[:i:i], list[i+1:]...)
			}
		}
		return list
	}
	switch action {
	case ActionStructureOnly:
		s.structureOnly = pick(s.structureOnly)
	case ActionStructureAndData:
		s.structureAndData = pick(s.structureAndData)
	case ActionDrop:
		s.drop = pick(s.drop)
	}
}

// Action returns the recorded action for a table; absent tables are skipped.
func (s *Selection) Action(table string) Action {
	if a, ok := s.actions[table]; ok {
		return a
	}
	return ActionSkip
}

// StructureOnly returns the tables selected for structure-only sync, in
// selection order.
func (s *Selection) StructureOnly() []string {
	return append([]string(nil), s.structureOnly...)
}

// StructureAndData returns the tables selected for structure-and-data sync,
// in selection order.
func (s *Selection) StructureAndData() []string {
	return append([]string(nil), s.structureAndData...)
}

// Drop returns the tables confirmed for removal, in selection order.
func (s *Selection) Drop() []string {
	return append([]string(nil), s.drop...)
}

// IsEmpty reports whether nothing actionable was selected.
func (s *Selection) IsEmpty() bool {
	return len(s.structureOnly) == 0 && len(s.structureAndData) == 0 && len(s.drop) == 0
}
