package evaluator

import (
	"context"
	stdErrors "errors"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/olusolaa/infra-board/internal/core/ports"
)

// Variable is an input variable declaration. Variables without a default
// evaluate to an unknown value.
type Variable struct {
	Name       string
	Default    cty.Value
	HasDefault bool
	DeclRange  hcl.Range
}

func (v *Variable) Value() cty.Value {
	if !v.HasDefault {
		return cty.DynamicVal
	}
	return v.Default
}

func decodeVariableBlock(block *hcl.Block) (*Variable, hcl.Diagnostics) {
	content, _, diags := block.Body.PartialContent(variableSchema)
	v := &Variable{Name: block.Labels[0], DeclRange: block.DefRange}
	if content == nil {
		return v, diags
	}
	if attr, ok := content.Attributes[attrDefault]; ok {
		val, valDiags := attr.Expr.Value(nil)
		if valDiags.HasErrors() {
			diags = diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagWarning,
				Summary:  "Invalid default value",
				Detail:   "Could not evaluate default value expression: " + valDiags.Error(),
				Subject:  attr.Expr.Range().Ptr(),
			})
			return v, diags
		}
		v.Default = val
		v.HasDefault = true
	}
	return v, diags
}

// LoadVarFile reads a .tfvars (or .tfvars.json) file of literal assignments.
func LoadVarFile(ctx context.Context, path string, logger ports.Logger) (map[string]cty.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger = logger.WithFields(map[string]any{"vars_file": path})

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &VariableLoadError{VarFilePath: path, Err: err}
	}

	parser := hclparse.NewParser()
	var file *hcl.File
	var diags hcl.Diagnostics
	if strings.HasSuffix(path, ".json") {
		file, diags = parser.ParseJSON(src, path)
	} else {
		file, diags = parser.ParseHCL(src, path)
	}
	if file == nil || DiagsHasFatalErrors(diags) {
		return nil, &VariableLoadError{VarFilePath: path, Err: stdErrors.New(diags.Error())}
	}

	attrs, attrDiags := file.Body.JustAttributes()
	diags = append(diags, attrDiags...)
	if DiagsHasFatalErrors(attrDiags) {
		return nil, &VariableLoadError{VarFilePath: path, Err: stdErrors.New(attrDiags.Error())}
	}

	vars := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, valDiags := attr.Expr.Value(nil)
		if valDiags.HasErrors() {
			logger.Warnf(ctx, "Skipping variable %s: %s", name, valDiags.Error())
			continue
		}
		vars[name] = val
	}
	logger.Debugf(ctx, "Loaded %d variable(s)", len(vars))
	return vars, nil
}
