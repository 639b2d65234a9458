package tfhcl

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/olusolaa/infra-board/internal/adapters/state/mapping"
	"github.com/olusolaa/infra-board/internal/adapters/state/tfhcl/evaluator"
	"github.com/olusolaa/infra-board/internal/core/domain"
	"github.com/olusolaa/infra-board/internal/core/ports"
	"github.com/olusolaa/infra-board/internal/errors"
)

const ProviderTypeTFHCL = "tfhcl"

// Provider reads a Terraform configuration directory as a snapshot store.
// The directory is parsed afresh on every Load.
type Provider struct {
	dirPath  string
	varFiles []string
	logger   ports.Logger
}

type Config struct {
	Directory string `mapstructure:"path" validate:"required"`
	// VarFiles are .tfvars files applied over variable defaults, relative to Directory.
	VarFiles []string `mapstructure:"var_files"`
}

func NewProvider(cfg Config, logger ports.Logger) (*Provider, error) {
	if cfg.Directory == "" {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			"tfhcl store requires a directory path", "Set store.path to a Terraform configuration directory.")
	}
	return &Provider{
		dirPath:  cfg.Directory,
		varFiles: cfg.VarFiles,
		logger: logger.WithFields(map[string]any{
			"store":   ProviderTypeTFHCL,
			"hcl_dir": cfg.Directory,
		}),
	}, nil
}

func (p *Provider) Type() string { return ProviderTypeTFHCL }

func (p *Provider) Path() string { return p.dirPath }

// maxModuleDepth bounds local module nesting.
const maxModuleDepth = 8

// Load evaluates every resource block of the directory and of the local
// modules it calls. Resources iterated over local.availability_zones or
// local.regions get per-az or regional deployment descriptors.
func (p *Provider) Load(ctx context.Context) (*domain.Snapshot, error) {
	mod, err := parseDirectory(ctx, p.dirPath, p.logger)
	if err != nil {
		return nil, err
	}

	inputVars, err := p.loadVarFiles(ctx)
	if err != nil {
		return nil, err
	}

	b := mapping.NewSnapshotBuilder()
	evalCtx, err := p.loadModule(ctx, b, mod, "", inputVars, []string{absPath(p.dirPath)})
	if err != nil {
		return nil, err
	}

	snap := b.Build(fmt.Sprintf("%s:%s", ProviderTypeTFHCL, p.dirPath), deploymentConfig(ctx, mod, evalCtx, p.logger))
	p.logger.Infof(ctx, "Loaded %d resources in %d domains from HCL", len(snap.Resources), len(snap.Domains))
	return snap, nil
}

// loadModule adds the resources of mod under the address prefix, then
// descends into its local module calls. stack holds the absolute directories
// of the calling chain.
func (p *Provider) loadModule(ctx context.Context, b *mapping.SnapshotBuilder, mod *evaluator.Module,
	prefix string, inputVars map[string]cty.Value, stack []string) (*hcl.EvalContext, error) {
	evalCtx, diags := evaluator.BuildEvalContext(ctx, mod, inputVars, p.logger)
	for _, d := range diags {
		p.logger.Warnf(ctx, "%s", d.Error())
	}

	eval := evaluator.New(mod, evalCtx, p.logger)
	for _, r := range mod.Resources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		args, evalDiags := eval.EvaluateResource(ctx, r)
		for _, d := range evalDiags {
			p.logger.Warnf(ctx, "%s", d.Error())
		}
		raw := mapping.RawResource{
			Address:    r.Address(),
			Type:       r.Type,
			Name:       r.Name,
			Attributes: args,
			Deployment: deploymentFor(r),
		}
		if prefix != "" {
			raw.Address = prefix + "." + raw.Address
			raw.Name = strings.ReplaceAll(prefix, "module.", "") + "." + r.Name
		}
		if err := b.Add(raw); err != nil {
			return nil, errors.Wrap(err, errors.CodeMappingError, fmt.Sprintf("mapping HCL resource %s", raw.Address))
		}
	}

	for _, call := range mod.ModuleCalls {
		if !call.IsLocal() {
			p.logger.Debugf(ctx, "Skipping non-local module %s (%s)", call.Name, call.Source)
			continue
		}
		dir := call.Dir(mod.Path)
		childPrefix := "module." + call.Name
		if prefix != "" {
			childPrefix = prefix + "." + childPrefix
		}
		if len(stack) >= maxModuleDepth || containsPath(stack, absPath(dir)) {
			p.logger.Warnf(ctx, "Skipping module %s: nesting too deep or cyclic", childPrefix)
			continue
		}

		child, err := parseDirectory(ctx, dir, p.logger.WithFields(map[string]any{"hcl_module": childPrefix}))
		if err != nil {
			return nil, errors.WrapUserFacing(err, errors.CodeHCLParseError,
				fmt.Sprintf("failed to load module %s from %s", childPrefix, dir),
				fmt.Sprintf("Check the source of module %q.", call.Name))
		}
		inputs, inputDiags := call.Inputs(evalCtx)
		for _, d := range inputDiags {
			p.logger.Warnf(ctx, "%s", d.Error())
		}
		if _, err := p.loadModule(ctx, b, child, childPrefix, inputs, append(stack, absPath(dir))); err != nil {
			return nil, err
		}
	}
	return evalCtx, nil
}

// ModuleDirs returns dir followed by the directories of every local module
// reachable from it, without evaluating anything.
func ModuleDirs(ctx context.Context, dir string, logger ports.Logger) ([]string, error) {
	dirs := []string{dir}
	seen := map[string]bool{absPath(dir): true}
	for i := 0; i < len(dirs); i++ {
		mod, err := parseDirectory(ctx, dirs[i], logger)
		if err != nil {
			return dirs, err
		}
		for _, call := range mod.ModuleCalls {
			if !call.IsLocal() {
				continue
			}
			child := call.Dir(dirs[i])
			if abs := absPath(child); !seen[abs] {
				seen[abs] = true
				dirs = append(dirs, child)
			}
		}
	}
	return dirs, nil
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

func containsPath(paths []string, path string) bool {
	for _, p := range paths {
		if p == path {
			return true
		}
	}
	return false
}

func (p *Provider) loadVarFiles(ctx context.Context) (map[string]cty.Value, error) {
	vars := make(map[string]cty.Value)
	for _, path := range p.varFiles {
		if !filepath.IsAbs(path) {
			path = filepath.Join(p.dirPath, path)
		}
		loaded, err := evaluator.LoadVarFile(ctx, path, p.logger)
		if err != nil {
			return nil, errors.WrapUserFacing(err, errors.CodeHCLEvalError,
				fmt.Sprintf("failed to load variables file %s", path), "Check store.var_files.")
		}
		for name, val := range loaded {
			vars[name] = val
		}
	}
	return vars, nil
}
