package diff

import "sort"

type fieldChangeCollector struct {
	Changes []*FieldChange
}

func (c *fieldChangeCollector) Add(field, oldV, newV string) {
	if oldV == newV {
		return
	}
	c.Changes = append(c.Changes, &FieldChange{Field: field, Old: oldV, New: newV})
}

func sortStrings(s []string) {
	if len(s) > 1 {
		sort.Strings(s)
	}
}

// sortByName sorts items by an extracted name. Comparison is exact, matching
// the case-sensitive table and column identity used everywhere else.
func sortByName[T any](items []T, name func(T) string) {
	if len(items) <= 1 {
		return
	}
	sort.Slice(items, func(i, j int) bool {
		return name(items[i]) < name(items[j])
	})
}

// equalNameSet reports whether two name slices contain the same set of names.
func equalNameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]struct{}, len(a))
	for _, n := range a {
		seen[n] = struct{}{}
	}
	for _, n := range b {
		if _, ok := seen[n]; !ok {
			return false
		}
	}
	return true
}
