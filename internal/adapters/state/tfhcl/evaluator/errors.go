package evaluator

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// DiagnosticsError carries HCL diagnostics out of the evaluator as an error.
type DiagnosticsError struct {
	Operation string
	Path      string
	Diags     hcl.Diagnostics
}

func (e *DiagnosticsError) Error() string {
	return fmt.Sprintf("HCL %s error in %q: %s", e.Operation, e.Path, e.Diags.Error())
}

// VariableLoadError indicates failure loading a .tfvars file.
type VariableLoadError struct {
	VarFilePath string
	Err         error
}

func (e *VariableLoadError) Error() string {
	return fmt.Sprintf("failed to load variables from %q: %v", e.VarFilePath, e.Err)
}
func (e *VariableLoadError) Unwrap() error { return e.Err }

// ValueConversionError indicates failure converting a cty.Value to a Go value.
type ValueConversionError struct {
	AttributeName string
	Err           error
}

func (e *ValueConversionError) Error() string {
	if e.AttributeName != "" {
		return fmt.Sprintf("error converting value for attribute %q: %v", e.AttributeName, e.Err)
	}
	return fmt.Sprintf("error converting cty value: %v", e.Err)
}
func (e *ValueConversionError) Unwrap() error { return e.Err }

func DiagsHasFatalErrors(diags hcl.Diagnostics) bool {
	for _, diag := range diags {
		if diag.Severity == hcl.DiagError {
			return true
		}
	}
	return false
}
