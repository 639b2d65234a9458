// Package validation derives per-resource validation states and collapses
// them into a single display state.
package validation

import (
	"github.com/olusolaa/infra-board/internal/core/domain"
	"github.com/olusolaa/infra-board/internal/core/ports"
)

// Aggregate collapses a validation outcome into one display state. The
// checks apply in order and the first match wins:
//
//  1. errors present and not valid: error
//  2. warnings present, or errors present on a valid resource: warning
//  3. valid with no errors: ok
//  4. anything else: neutral
func Aggregate(errs, warnings []string, isValid bool) domain.DisplayState {
	switch {
	case len(errs) > 0 && !isValid:
		return domain.DisplayError
	case len(warnings) > 0 || len(errs) > 0:
		return domain.DisplayWarning
	case isValid:
		return domain.DisplayOk
	default:
		return domain.DisplayNeutral
	}
}

// AggregateState is Aggregate over a ValidationState.
func AggregateState(s domain.ValidationState) domain.DisplayState {
	return Aggregate(s.Errors, s.Warnings, s.IsValid)
}

// DisplayStateFor looks up a resource's state. A nil provider, a missing
// entry or a failing provider yields neutral.
func DisplayStateFor(provider ports.ValidationProvider, resourceID string) domain.DisplayState {
	state, ok := Lookup(provider, resourceID)
	if !ok {
		return domain.DisplayNeutral
	}
	return AggregateState(state)
}

// Lookup asks provider for a resource's state. A provider that panics is
// treated as having no entry.
func Lookup(provider ports.ValidationProvider, resourceID string) (state domain.ValidationState, ok bool) {
	if provider == nil {
		return domain.ValidationState{}, false
	}
	defer func() {
		if r := recover(); r != nil {
			state, ok = domain.ValidationState{}, false
		}
	}()
	return provider.ValidationState(resourceID)
}
