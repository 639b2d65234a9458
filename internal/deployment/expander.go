package deployment

import (
	"fmt"
	"strings"

	"github.com/olusolaa/infra-board/internal/core/domain"
)

// Expander materializes a resource into the concrete instances its
// strategy implies for a DeploymentConfig.
type Expander struct {
	config domain.DeploymentConfig
}

func NewExpander(cfg domain.DeploymentConfig) *Expander {
	return &Expander{config: cfg}
}

func (e *Expander) Expand(r domain.Resource) []domain.DeploymentAlias {
	base := r.Name
	if base == "" {
		base = r.ID
	}
	alias := domain.DeploymentAlias{
		ResourceID:   r.ID,
		ResourceType: r.Type,
		BaseName:     base,
		AliasType:    domain.AliasNone,
	}

	switch StrategyOf(r) {
	case domain.StrategyPerAZ:
		out := make([]domain.DeploymentAlias, 0, len(e.config.AvailabilityZones))
		for i, az := range e.config.AvailabilityZones {
			a := alias
			a.ResourceID = fmt.Sprintf("%s_%d", r.ID, i)
			a.AliasType = domain.AliasAZ
			a.AliasValue = az
			a.AliasIndex = i
			a.TerraformName = TerraformName(a)
			out = append(out, a)
		}
		return out
	case domain.StrategyMultiAZ:
		alias.AliasType = domain.AliasMultiAZ
		alias.AliasValue = strings.Join(e.config.AvailabilityZones, ",")
	case domain.StrategyRegional:
		regions := e.config.Regions()
		out := make([]domain.DeploymentAlias, 0, len(regions))
		for i, region := range regions {
			a := alias
			a.ResourceID = fmt.Sprintf("%s_%d", r.ID, i)
			a.AliasType = domain.AliasRegion
			a.AliasValue = region
			a.AliasIndex = i
			a.TerraformName = TerraformName(a)
			out = append(out, a)
		}
		return out
	}

	alias.TerraformName = TerraformName(alias)
	return []domain.DeploymentAlias{alias}
}

// TerraformName derives the address-safe name of an alias: zone aliases use
// the zone suffix ("us-east-1a" -> "1a") and region aliases the region with
// dashes replaced.
func TerraformName(a domain.DeploymentAlias) string {
	switch a.AliasType {
	case domain.AliasAZ:
		parts := strings.Split(a.AliasValue, "-")
		return a.BaseName + "_" + parts[len(parts)-1]
	case domain.AliasRegion:
		return a.BaseName + "_" + strings.ReplaceAll(a.AliasValue, "-", "_")
	default:
		return a.BaseName
	}
}
