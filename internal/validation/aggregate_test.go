package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olusolaa/infra-board/internal/core/domain"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		errs     []string
		warnings []string
		isValid  bool
		want     domain.DisplayState
	}{
		{"errors and invalid", []string{"e1"}, nil, false, domain.DisplayError},
		{"errors beat warnings when invalid", []string{"e1"}, []string{"w1"}, false, domain.DisplayError},
		{"warnings only", nil, []string{"w1"}, true, domain.DisplayWarning},
		{"warnings on invalid without errors", nil, []string{"w1"}, false, domain.DisplayWarning},
		{"clean and valid", nil, nil, true, domain.DisplayOk},
		{"empty slices and valid", []string{}, []string{}, true, domain.DisplayOk},
		{"invalid without messages", nil, nil, false, domain.DisplayNeutral},
		// errors on a resource still flagged valid never render as error
		{"errors but valid", []string{"e1"}, nil, true, domain.DisplayWarning},
		{"errors and warnings but valid", []string{"e1"}, []string{"w1"}, true, domain.DisplayWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Aggregate(tt.errs, tt.warnings, tt.isValid))
		})
	}
}

func TestAggregate_ErrorsOnValidResourceIsWarning(t *testing.T) {
	assert.Equal(t, domain.DisplayWarning, Aggregate([]string{"e1"}, []string{}, true))
}

type stubProvider map[string]domain.ValidationState

func (s stubProvider) ValidationState(id string) (domain.ValidationState, bool) {
	st, ok := s[id]
	return st, ok
}

func TestDisplayStateFor(t *testing.T) {
	provider := stubProvider{
		"bad":  {IsValid: false, Errors: []string{"boom"}},
		"good": {IsValid: true},
	}

	assert.Equal(t, domain.DisplayError, DisplayStateFor(provider, "bad"))
	assert.Equal(t, domain.DisplayOk, DisplayStateFor(provider, "good"))
	assert.Equal(t, domain.DisplayNeutral, DisplayStateFor(provider, "absent"))
	assert.Equal(t, domain.DisplayNeutral, DisplayStateFor(nil, "bad"))
}

type panickingProvider struct{}

func (panickingProvider) ValidationState(string) (domain.ValidationState, bool) {
	panic("store unavailable")
}

func TestDisplayStateFor_FailingProviderIsNeutral(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Equal(t, domain.DisplayNeutral, DisplayStateFor(panickingProvider{}, "bad"))
	})

	state, ok := Lookup(panickingProvider{}, "bad")
	assert.False(t, ok)
	assert.Equal(t, domain.ValidationState{}, state)
}
