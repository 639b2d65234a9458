package validation

import "github.com/olusolaa/infra-board/internal/core/domain"

// Rule inspects a whole snapshot and reports findings against its elements.
type Rule interface {
	ID() string
	Check(snap *domain.Snapshot) []domain.Finding
}

// RuleFunc adapts a function to the Rule interface.
type RuleFunc struct {
	RuleID string
	Fn     func(snap *domain.Snapshot) []domain.Finding
}

func (r RuleFunc) ID() string {
	return r.RuleID
}

func (r RuleFunc) Check(snap *domain.Snapshot) []domain.Finding {
	return r.Fn(snap)
}

func newError(ruleID, elementID, msg string) domain.Finding {
	return domain.Finding{ElementID: elementID, Severity: domain.SeverityError, Message: msg, RuleID: ruleID}
}

func newWarning(ruleID, elementID, msg string) domain.Finding {
	return domain.Finding{ElementID: elementID, Severity: domain.SeverityWarning, Message: msg, RuleID: ruleID}
}
