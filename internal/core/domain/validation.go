package domain

// ValidationState is the derived validation outcome for one resource.
type ValidationState struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// DisplayState is the single summary state shown for a resource.
type DisplayState string

const (
	DisplayError   DisplayState = "error"
	DisplayWarning DisplayState = "warning"
	DisplayOk      DisplayState = "ok"
	DisplayNeutral DisplayState = "neutral"
)

func (s DisplayState) String() string {
	return string(s)
}

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a single rule outcome attached to a snapshot element.
type Finding struct {
	ElementID string   `json:"element_id"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
	RuleID    string   `json:"rule_id"`
}
