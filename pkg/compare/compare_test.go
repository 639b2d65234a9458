package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSets(t *testing.T) {
	tests := []struct {
		name        string
		a, b        []string
		wantEqual   bool
		wantAdded   []string
		wantRemoved []string
	}{
		{"both nil", nil, nil, true, nil, nil},
		{"same elements different order", []string{"a", "b"}, []string{"b", "a"}, true, nil, nil},
		{"duplicates ignored", []string{"a", "a"}, []string{"a"}, true, nil, nil},
		{"added", []string{"a"}, []string{"a", "c", "b"}, false, []string{"b", "c"}, nil},
		{"removed", []string{"x", "a"}, []string{"a"}, false, nil, []string{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			equal, diff := Sets(tt.a, tt.b)
			assert.Equal(t, tt.wantEqual, equal)
			assert.Equal(t, tt.wantAdded, diff.Added)
			assert.Equal(t, tt.wantRemoved, diff.Removed)
		})
	}
}

func TestSetDiffString(t *testing.T) {
	_, diff := Sets([]string{"old"}, []string{"new"})
	assert.Equal(t, "Added: [new]; Removed: [old]", diff.String())
	assert.Equal(t, "", SetDiff{}.String())
}
