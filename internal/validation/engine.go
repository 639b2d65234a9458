package validation

import (
	"context"
	"fmt"

	"github.com/olusolaa/infra-board/internal/core/domain"
	"github.com/olusolaa/infra-board/internal/core/ports"
	apperrors "github.com/olusolaa/infra-board/internal/errors"
)

// Engine runs registered rules against a snapshot.
type Engine struct {
	rules  []Rule
	logger ports.Logger
}

func NewEngine(logger ports.Logger, rules ...Rule) *Engine {
	return &Engine{
		rules:  append([]Rule(nil), rules...),
		logger: logger.WithFields(map[string]any{"component": "validation"}),
	}
}

// NewDefaultEngine is an Engine with DefaultRules registered.
func NewDefaultEngine(logger ports.Logger) *Engine {
	return NewEngine(logger, DefaultRules()...)
}

func (e *Engine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
	e.logger.Debugf(context.Background(), "Registered rule: %s", rule.ID())
}

// Validate evaluates every rule. A failing rule is logged and skipped; it
// never aborts the run.
func (e *Engine) Validate(ctx context.Context, snap *domain.Snapshot) *Results {
	results := newResults(snap)
	if snap == nil {
		return results
	}
	for _, rule := range e.rules {
		findings, err := e.run(rule, snap)
		if err != nil {
			e.logger.Errorf(ctx, err, "Rule %s failed", rule.ID())
			continue
		}
		for _, f := range findings {
			results.add(f)
		}
	}
	e.logger.Debugf(ctx, "Validation produced %d findings across %d rules", len(results.findings), len(e.rules))
	return results
}

func (e *Engine) run(rule Rule, snap *domain.Snapshot) (findings []domain.Finding, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.New(apperrors.CodeValidationRuleError, fmt.Sprintf("rule %s panicked: %v", rule.ID(), r))
		}
	}()
	return rule.Check(snap), nil
}

// Results holds the validation state of every snapshot element and
// implements ports.ValidationProvider.
type Results struct {
	states   map[string]*domain.ValidationState
	findings []domain.Finding
}

var _ ports.ValidationProvider = (*Results)(nil)

func newResults(snap *domain.Snapshot) *Results {
	r := &Results{states: make(map[string]*domain.ValidationState)}
	if snap == nil {
		return r
	}
	for _, d := range snap.Domains {
		r.states[d.ID] = &domain.ValidationState{IsValid: true}
	}
	for _, res := range snap.Resources {
		r.states[res.ID] = &domain.ValidationState{IsValid: true}
	}
	return r
}

func (r *Results) add(f domain.Finding) {
	r.findings = append(r.findings, f)
	state, ok := r.states[f.ElementID]
	if !ok {
		state = &domain.ValidationState{IsValid: true}
		r.states[f.ElementID] = state
	}
	switch f.Severity {
	case domain.SeverityError:
		state.Errors = append(state.Errors, f.Message)
		state.IsValid = false
	default:
		state.Warnings = append(state.Warnings, f.Message)
	}
}

func (r *Results) ValidationState(id string) (domain.ValidationState, bool) {
	state, ok := r.states[id]
	if !ok {
		return domain.ValidationState{}, false
	}
	out := domain.ValidationState{IsValid: state.IsValid}
	out.Errors = append(out.Errors, state.Errors...)
	out.Warnings = append(out.Warnings, state.Warnings...)
	return out, true
}

// Findings returns every finding in rule evaluation order.
func (r *Results) Findings() []domain.Finding {
	return append([]domain.Finding(nil), r.findings...)
}

func (r *Results) ErrorCount() int {
	n := 0
	for _, f := range r.findings {
		if f.Severity == domain.SeverityError {
			n++
		}
	}
	return n
}

func (r *Results) WarningCount() int {
	return len(r.findings) - r.ErrorCount()
}
