package evaluator

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/olusolaa/infra-board/internal/core/ports"
)

const defaultWorkspace = "default"

// BuildEvalContext constructs the evaluation context for a module: `var` from
// declared defaults overridden by inputVars, `local` from the module's locals,
// plus `path` and `terraform.workspace`. Locals that depend on unknown values
// or on each other in a cycle are left out and reported as warnings.
func BuildEvalContext(ctx context.Context, mod *Module, inputVars map[string]cty.Value, logger ports.Logger) (*hcl.EvalContext, hcl.Diagnostics) {
	logger = logger.WithFields(map[string]any{"component": "hcl_eval_context", "module_path": mod.Path})

	vars := make(map[string]cty.Value, len(mod.Variables))
	for name, v := range mod.Variables {
		vars[name] = v.Value()
	}
	for name, val := range inputVars {
		if _, declared := mod.Variables[name]; !declared {
			logger.Debugf(ctx, "Ignoring value for undeclared variable %s", name)
			continue
		}
		vars[name] = val
	}

	modulePath, err := filepath.Abs(mod.Path)
	if err != nil {
		modulePath = mod.Path
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var": cty.ObjectVal(vars),
			"path": cty.ObjectVal(map[string]cty.Value{
				"module": cty.StringVal(modulePath),
				"root":   cty.StringVal(modulePath),
				"cwd":    cty.StringVal(modulePath),
			}),
			"terraform": cty.ObjectVal(map[string]cty.Value{"workspace": cty.StringVal(defaultWorkspace)}),
			"local":     cty.EmptyObjectVal,
		},
		Functions: StandardFunctions(),
	}

	locals, diags := evaluateLocals(mod.Locals, evalCtx)
	evalCtx.Variables["local"] = cty.ObjectVal(locals)
	logger.Debugf(ctx, "Built evaluation context with %d variable(s) and %d of %d local(s)", len(vars), len(locals), len(mod.Locals))
	return evalCtx, diags
}

// evaluateLocals resolves locals in dependency order by repeated passes: each
// pass evaluates what it can against the locals resolved so far and stops
// once a pass makes no progress.
func evaluateLocals(attrs map[string]*hcl.Attribute, evalCtx *hcl.EvalContext) (map[string]cty.Value, hcl.Diagnostics) {
	resolved := make(map[string]cty.Value, len(attrs))
	pending := make([]string, 0, len(attrs))
	for name := range attrs {
		pending = append(pending, name)
	}
	sort.Strings(pending)

	for len(pending) > 0 {
		var next []string
		for _, name := range pending {
			evalCtx.Variables["local"] = cty.ObjectVal(resolved)
			val, valDiags := attrs[name].Expr.Value(evalCtx)
			if valDiags.HasErrors() || !val.IsWhollyKnown() {
				next = append(next, name)
				continue
			}
			resolved[name] = val
		}
		if len(next) == len(pending) {
			break
		}
		pending = next
	}

	var diags hcl.Diagnostics
	for _, name := range pending {
		diags = diags.Append(&hcl.Diagnostic{
			Severity: hcl.DiagWarning,
			Summary:  "Unresolved local value",
			Detail:   fmt.Sprintf("local.%s depends on values that are unknown before apply.", name),
			Subject:  attrs[name].Range.Ptr(),
		})
	}
	return resolved, diags
}
