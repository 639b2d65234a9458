package tfhcl

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/olusolaa/infra-board/internal/adapters/state/tfhcl/evaluator"
	"github.com/olusolaa/infra-board/internal/core/domain"
	"github.com/olusolaa/infra-board/internal/core/ports"
	"github.com/olusolaa/infra-board/pkg/convert"
)

// Locals that describe the deployment topology.
const (
	LocalAvailabilityZones = "availability_zones"
	LocalPrimaryRegion     = "primary_region"
	LocalRegions           = "regions"

	paramSource = "source"
)

// deploymentFor infers a strategy from what a resource's for_each or count
// iterates over.
func deploymentFor(r *evaluator.ResourceBlock) *domain.DeploymentDescriptor {
	for _, name := range r.LocalReferences() {
		switch name {
		case LocalAvailabilityZones:
			return &domain.DeploymentDescriptor{
				Strategy: domain.StrategyPerAZ,
				Params:   map[string]any{paramSource: "local." + name},
			}
		case LocalRegions:
			return &domain.DeploymentDescriptor{
				Strategy: domain.StrategyRegional,
				Params:   map[string]any{paramSource: "local." + name},
			}
		}
	}
	return nil
}

// deploymentConfig reads the topology locals. The primary region falls back to
// the aws provider's region, then to the first listed region.
func deploymentConfig(ctx context.Context, mod *evaluator.Module, evalCtx *hcl.EvalContext, logger ports.Logger) domain.DeploymentConfig {
	locals := evalCtx.Variables["local"]
	cfg := domain.DeploymentConfig{
		AvailabilityZones: stringList(localValue(locals, LocalAvailabilityZones)),
		PrimaryRegion:     stringValue(localValue(locals, LocalPrimaryRegion)),
	}
	if cfg.AvailabilityZones == nil {
		cfg.AvailabilityZones = []string{}
	}

	if cfg.PrimaryRegion == "" {
		if expr, ok := mod.ProviderRegions["aws"]; ok {
			val, diags := expr.Value(evalCtx)
			if diags.HasErrors() {
				logger.Debugf(ctx, "Provider region is not statically known")
			} else {
				cfg.PrimaryRegion = stringValue(val)
			}
		}
	}

	regions := stringList(localValue(locals, LocalRegions))
	if cfg.PrimaryRegion == "" && len(regions) > 0 {
		cfg.PrimaryRegion = regions[0]
	}
	for _, region := range regions {
		if region != cfg.PrimaryRegion {
			cfg.ReplicaRegions = append(cfg.ReplicaRegions, region)
		}
	}
	return cfg
}

// localValue returns a null value when the local is not defined.
func localValue(locals cty.Value, name string) cty.Value {
	if locals.IsNull() || !locals.IsKnown() || !locals.Type().IsObjectType() || !locals.Type().HasAttribute(name) {
		return cty.NullVal(cty.DynamicPseudoType)
	}
	return locals.GetAttr(name)
}

func stringValue(val cty.Value) string {
	goVal, err := evaluator.ConvertCtyValue(val)
	if err != nil {
		return ""
	}
	s, _ := goVal.(string)
	return s
}

func stringList(val cty.Value) []string {
	goVal, err := evaluator.ConvertCtyValue(val)
	if err != nil || goVal == nil {
		return nil
	}
	list, _ := convert.ToSliceOfString(goVal)
	return list
}
