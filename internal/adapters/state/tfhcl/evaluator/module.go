package evaluator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

const (
	blockResource = "resource"
	blockVariable = "variable"
	blockLocals   = "locals"
	blockProvider = "provider"
	blockModule   = "module"

	attrCount   = "count"
	attrForEach = "for_each"
	attrRegion  = "region"
	attrAlias   = "alias"
	attrDefault = "default"
	attrSource  = "source"
)

var moduleSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: blockResource, LabelNames: []string{"type", "name"}},
		{Type: blockVariable, LabelNames: []string{"name"}},
		{Type: blockLocals},
		{Type: blockProvider, LabelNames: []string{"name"}},
		{Type: blockModule, LabelNames: []string{"name"}},
	},
}

var (
	resourceMetaSchema = &hcl.BodySchema{Attributes: []hcl.AttributeSchema{{Name: attrCount}, {Name: attrForEach}}}
	providerSchema     = &hcl.BodySchema{Attributes: []hcl.AttributeSchema{{Name: attrRegion}, {Name: attrAlias}}}
	variableSchema     = &hcl.BodySchema{Attributes: []hcl.AttributeSchema{{Name: attrDefault}}}
	moduleCallSchema   = &hcl.BodySchema{Attributes: []hcl.AttributeSchema{{Name: attrSource, Required: true}}}
)

// Module call arguments that are not input variables.
var moduleMetaArguments = map[string]struct{}{
	attrSource: {}, "version": {}, attrCount: {}, attrForEach: {}, "providers": {}, "depends_on": {},
}

// ResourceBlock is one `resource "type" "name"` block, not yet evaluated.
type ResourceBlock struct {
	Type     string
	Name     string
	Body     hcl.Body
	DefRange hcl.Range
	Count    hcl.Expression
	ForEach  hcl.Expression
}

func (r *ResourceBlock) Address() string {
	return r.Type + "." + r.Name
}

// ModuleCall is one `module "name"` block. Source is empty when it is not a
// static string.
type ModuleCall struct {
	Name     string
	Source   string
	Body     hcl.Body
	DefRange hcl.Range
}

// IsLocal reports whether the call refers to a directory on disk rather than
// a registry or remote module.
func (c *ModuleCall) IsLocal() bool {
	return strings.HasPrefix(c.Source, "./") || strings.HasPrefix(c.Source, "../")
}

// Dir resolves a local source against the calling module's directory.
func (c *ModuleCall) Dir(parent string) string {
	return filepath.Join(parent, filepath.FromSlash(c.Source))
}

// Inputs evaluates the call's arguments in the caller's context. Arguments
// that do not resolve to known values are left out, so the callee falls back
// to its variable defaults.
func (c *ModuleCall) Inputs(evalCtx *hcl.EvalContext) (map[string]cty.Value, hcl.Diagnostics) {
	var (
		attrs hcl.Attributes
		diags hcl.Diagnostics
	)
	if body, ok := c.Body.(*hclsyntax.Body); ok {
		attrs = make(hcl.Attributes, len(body.Attributes))
		for name, attr := range body.Attributes {
			attrs[name] = attr.AsHCLAttribute()
		}
	} else {
		attrs, diags = c.Body.JustAttributes()
	}

	inputs := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		if _, meta := moduleMetaArguments[name]; meta {
			continue
		}
		val, valDiags := attr.Expr.Value(evalCtx)
		if valDiags.HasErrors() || !val.IsWhollyKnown() {
			continue
		}
		inputs[name] = val
	}
	return inputs, diags
}

// Module is the set of top-level declarations of one Terraform directory.
// Blocks other than resource, variable, locals, provider and module are
// ignored.
type Module struct {
	Path        string
	Resources   []*ResourceBlock
	ModuleCalls []*ModuleCall
	Variables   map[string]*Variable
	Locals      map[string]*hcl.Attribute
	// ProviderRegions holds the region expression of each unaliased provider.
	ProviderRegions map[string]hcl.Expression

	sources map[string][]byte
}

// DecodeModule collects declarations from files in the given order.
func DecodeModule(path string, files []*hcl.File, filenames []string) (*Module, hcl.Diagnostics) {
	mod := &Module{
		Path:            path,
		Variables:       make(map[string]*Variable),
		Locals:          make(map[string]*hcl.Attribute),
		ProviderRegions: make(map[string]hcl.Expression),
		sources:         make(map[string][]byte, len(files)),
	}
	var diags hcl.Diagnostics
	seen := make(map[string]hcl.Range)

	for i, file := range files {
		if file == nil || file.Body == nil {
			continue
		}
		mod.sources[filenames[i]] = file.Bytes

		content, _, contentDiags := file.Body.PartialContent(moduleSchema)
		diags = append(diags, contentDiags...)
		if content == nil {
			continue
		}

		for _, block := range content.Blocks {
			switch block.Type {
			case blockResource:
				addr := block.Labels[0] + "." + block.Labels[1]
				if prev, dup := seen[addr]; dup {
					diags = diags.Append(&hcl.Diagnostic{
						Severity: hcl.DiagError,
						Summary:  "Duplicate resource address",
						Detail:   fmt.Sprintf("Resource %s was already declared at %s.", addr, prev),
						Subject:  block.DefRange.Ptr(),
					})
					continue
				}
				seen[addr] = block.DefRange
				mod.Resources = append(mod.Resources, decodeResourceBlock(block))

			case blockVariable:
				v, vDiags := decodeVariableBlock(block)
				diags = append(diags, vDiags...)
				if v != nil {
					mod.Variables[v.Name] = v
				}

			case blockLocals:
				attrs, attrDiags := block.Body.JustAttributes()
				diags = append(diags, attrDiags...)
				for name, attr := range attrs {
					if prev, dup := mod.Locals[name]; dup {
						diags = diags.Append(&hcl.Diagnostic{
							Severity: hcl.DiagError,
							Summary:  "Duplicate local value definition",
							Detail:   fmt.Sprintf("A local value named %q was already defined at %s.", name, prev.NameRange),
							Subject:  attr.NameRange.Ptr(),
						})
						continue
					}
					mod.Locals[name] = attr
				}

			case blockModule:
				call, callDiags := decodeModuleCall(block)
				diags = append(diags, callDiags...)
				mod.ModuleCalls = append(mod.ModuleCalls, call)

			case blockProvider:
				pc, _, pDiags := block.Body.PartialContent(providerSchema)
				diags = append(diags, pDiags...)
				if pc == nil {
					continue
				}
				if _, aliased := pc.Attributes[attrAlias]; aliased {
					continue
				}
				if region, ok := pc.Attributes[attrRegion]; ok {
					mod.ProviderRegions[block.Labels[0]] = region.Expr
				}
			}
		}
	}
	return mod, diags
}

func decodeModuleCall(block *hcl.Block) (*ModuleCall, hcl.Diagnostics) {
	call := &ModuleCall{Name: block.Labels[0], Body: block.Body, DefRange: block.DefRange}
	content, _, diags := block.Body.PartialContent(moduleCallSchema)
	if content == nil {
		return call, diags
	}
	attr, ok := content.Attributes[attrSource]
	if !ok {
		return call, diags
	}
	val, valDiags := attr.Expr.Value(nil)
	if valDiags.HasErrors() || !val.IsKnown() || val.IsNull() || val.Type() != cty.String {
		diags = diags.Append(&hcl.Diagnostic{
			Severity: hcl.DiagWarning,
			Summary:  "Unsupported module source",
			Detail:   fmt.Sprintf("The source of module %q must be a static string.", call.Name),
			Subject:  attr.Expr.Range().Ptr(),
		})
		return call, diags
	}
	call.Source = val.AsString()
	return call, diags
}

func decodeResourceBlock(block *hcl.Block) *ResourceBlock {
	r := &ResourceBlock{
		Type:     block.Labels[0],
		Name:     block.Labels[1],
		Body:     block.Body,
		DefRange: block.DefRange,
	}
	// Meta-arguments are read without evaluation; only their references matter.
	meta, _, _ := block.Body.PartialContent(resourceMetaSchema)
	if meta != nil {
		if attr, ok := meta.Attributes[attrCount]; ok {
			r.Count = attr.Expr
		}
		if attr, ok := meta.Attributes[attrForEach]; ok {
			r.ForEach = attr.Expr
		}
	}
	return r
}

// LocalReferences returns the names of local values a resource's count or
// for_each expressions refer to, in reference order.
func (r *ResourceBlock) LocalReferences() []string {
	var names []string
	for _, expr := range []hcl.Expression{r.ForEach, r.Count} {
		if expr == nil {
			continue
		}
		for _, trav := range expr.Variables() {
			if trav.RootName() != "local" || len(trav) < 2 {
				continue
			}
			if attr, ok := trav[1].(hcl.TraverseAttr); ok {
				names = append(names, attr.Name)
			}
		}
	}
	return names
}

// SourceText returns the raw source of an expression's range.
func (m *Module) SourceText(rng hcl.Range) string {
	src, ok := m.sources[rng.Filename]
	if !ok {
		return ""
	}
	return string(rng.SliceBytes(src))
}
