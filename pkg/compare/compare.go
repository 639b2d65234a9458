package compare

import (
	"fmt"
	"sort"
	"strings"
)

// SetDiff describes how a second string set differs from a first one.
type SetDiff struct {
	Added   []string
	Removed []string
}

func (d SetDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

func (d SetDiff) String() string {
	var parts []string
	if len(d.Added) > 0 {
		parts = append(parts, fmt.Sprintf("Added: [%s]", strings.Join(d.Added, ", ")))
	}
	if len(d.Removed) > 0 {
		parts = append(parts, fmt.Sprintf("Removed: [%s]", strings.Join(d.Removed, ", ")))
	}
	return strings.Join(parts, "; ")
}

// Sets checks if two string slices contain the same elements, ignoring order and duplicates.
// Returns true if the sets are equal, and the sorted additions and removals otherwise.
func Sets(setA, setB []string) (bool, SetDiff) {
	inA := make(map[string]struct{}, len(setA))
	for _, s := range setA {
		inA[s] = struct{}{}
	}
	inB := make(map[string]struct{}, len(setB))
	for _, s := range setB {
		inB[s] = struct{}{}
	}

	var diff SetDiff
	for k := range inB {
		if _, ok := inA[k]; !ok {
			diff.Added = append(diff.Added, k)
		}
	}
	for k := range inA {
		if _, ok := inB[k]; !ok {
			diff.Removed = append(diff.Removed, k)
		}
	}
	sort.Strings(diff.Added)
	sort.Strings(diff.Removed)

	return diff.Empty(), diff
}
