package evaluator

import (
	"context"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/olusolaa/infra-board/internal/core/ports"
)

// Meta-arguments and meta-blocks carry no resource configuration.
var (
	skippedAttributes = map[string]struct{}{
		attrCount: {}, attrForEach: {}, "depends_on": {}, "provider": {},
	}
	skippedBlocks = map[string]struct{}{
		"lifecycle": {}, "provisioner": {}, "connection": {}, "dynamic": {},
	}
)

// Evaluator turns resource bodies into argument maps. Expressions that cannot
// be resolved statically (references to other resources, data sources,
// unknown variables) keep their source text in "${...}" form.
type Evaluator struct {
	mod     *Module
	evalCtx *hcl.EvalContext
	logger  ports.Logger
}

func New(mod *Module, evalCtx *hcl.EvalContext, logger ports.Logger) *Evaluator {
	return &Evaluator{
		mod:     mod,
		evalCtx: evalCtx,
		logger:  logger.WithFields(map[string]any{"component": "hcl_resource_evaluator"}),
	}
}

func (e *Evaluator) EvaluateResource(ctx context.Context, r *ResourceBlock) (map[string]any, hcl.Diagnostics) {
	logger := e.logger.WithFields(map[string]any{"hcl_resource": r.Address()})
	args, diags := e.evaluateBody(ctx, r.Body, logger)
	logger.Debugf(ctx, "Evaluated %d argument(s)", len(args))
	return args, diags
}

func (e *Evaluator) evaluateBody(ctx context.Context, body hcl.Body, logger ports.Logger) (map[string]any, hcl.Diagnostics) {
	syntaxBody, ok := body.(*hclsyntax.Body)
	if !ok {
		return e.evaluateAttributes(ctx, body, logger)
	}

	out := make(map[string]any, len(syntaxBody.Attributes)+len(syntaxBody.Blocks))
	var diags hcl.Diagnostics

	names := make([]string, 0, len(syntaxBody.Attributes))
	for name := range syntaxBody.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, skip := skippedAttributes[name]; skip {
			continue
		}
		val, attrDiags := e.evaluateExpr(ctx, name, syntaxBody.Attributes[name].Expr, logger)
		diags = append(diags, attrDiags...)
		out[name] = val
	}

	for _, block := range syntaxBody.Blocks {
		if _, skip := skippedBlocks[block.Type]; skip {
			continue
		}
		nested, nestedDiags := e.evaluateBody(ctx, block.Body, logger.WithFields(map[string]any{"nested_block_type": block.Type}))
		diags = append(diags, nestedDiags...)
		list, _ := out[block.Type].([]any)
		out[block.Type] = append(list, nested)
	}
	return out, diags
}

// evaluateAttributes handles JSON bodies, where nested blocks are plain
// object-valued attributes.
func (e *Evaluator) evaluateAttributes(ctx context.Context, body hcl.Body, logger ports.Logger) (map[string]any, hcl.Diagnostics) {
	attrs, diags := body.JustAttributes()
	out := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		if _, skip := skippedAttributes[name]; skip {
			continue
		}
		val, attrDiags := e.evaluateExpr(ctx, name, attr.Expr, logger)
		diags = append(diags, attrDiags...)
		out[name] = val
	}
	return out, diags
}

func (e *Evaluator) evaluateExpr(ctx context.Context, name string, expr hcl.Expression, logger ports.Logger) (any, hcl.Diagnostics) {
	val, valDiags := expr.Value(e.evalCtx)
	if valDiags.HasErrors() || !val.IsWhollyKnown() {
		return e.evaluatePartially(ctx, name, expr, logger)
	}
	goVal, err := ConvertCtyValue(val)
	if err != nil {
		return e.sourceReference(expr), hcl.Diagnostics{{
			Severity: hcl.DiagWarning,
			Summary:  "Value conversion failed",
			Detail:   (&ValueConversionError{AttributeName: name, Err: err}).Error(),
			Subject:  expr.Range().Ptr(),
		}}
	}
	return goVal, nil
}

// evaluatePartially descends into list and object constructors so that only
// the unresolvable elements fall back to source text.
func (e *Evaluator) evaluatePartially(ctx context.Context, name string, expr hcl.Expression, logger ports.Logger) (any, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	switch x := expr.(type) {
	case *hclsyntax.TupleConsExpr:
		out := make([]any, 0, len(x.Exprs))
		for _, item := range x.Exprs {
			val, itemDiags := e.evaluateExpr(ctx, name, item, logger)
			diags = append(diags, itemDiags...)
			out = append(out, val)
		}
		return out, diags
	case *hclsyntax.ObjectConsExpr:
		out := make(map[string]any, len(x.Items))
		for _, item := range x.Items {
			key := e.sourceReference(item.KeyExpr)
			if k, keyDiags := item.KeyExpr.Value(e.evalCtx); !keyDiags.HasErrors() && k.IsKnown() && k.Type() == cty.String && !k.IsNull() {
				key = k.AsString()
			}
			val, itemDiags := e.evaluateExpr(ctx, name, item.ValueExpr, logger)
			diags = append(diags, itemDiags...)
			out[key] = val
		}
		return out, diags
	}
	logger.Debugf(ctx, "Keeping source text for %s", name)
	return e.sourceReference(expr), nil
}

// sourceReference renders an unresolved expression: quoted templates lose
// their quotes, anything else is wrapped as an interpolation.
func (e *Evaluator) sourceReference(expr hcl.Expression) string {
	src := strings.TrimSpace(e.mod.SourceText(expr.Range()))
	if len(src) >= 2 && strings.HasPrefix(src, `"`) && strings.HasSuffix(src, `"`) {
		return src[1 : len(src)-1]
	}
	return "${" + src + "}"
}
