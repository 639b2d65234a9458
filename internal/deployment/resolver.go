// Package deployment resolves deployment strategies into badges and
// materialized replica aliases.
package deployment

import (
	"strconv"

	"github.com/olusolaa/infra-board/internal/core/domain"
)

const (
	LabelMultiAZ  = "Multi-AZ"
	LabelRegional = "Regional"
)

func replicaLabel(n int) string {
	return strconv.Itoa(n) + "×"
}

// ResolveBadge maps a strategy to its display label and replica count.
// Unknown or empty strategies resolve as single.
func ResolveBadge(strategy domain.Strategy, cfg domain.DeploymentConfig) domain.DeploymentBadge {
	switch strategy {
	case domain.StrategyPerAZ:
		n := len(cfg.AvailabilityZones)
		return domain.DeploymentBadge{Strategy: strategy, Label: replicaLabel(n), ReplicaCount: n}
	case domain.StrategyMultiAZ:
		return domain.DeploymentBadge{Strategy: strategy, Label: LabelMultiAZ, ReplicaCount: domain.SymbolicReplicaCount}
	case domain.StrategyRegional:
		return domain.DeploymentBadge{Strategy: strategy, Label: LabelRegional, ReplicaCount: 1}
	default:
		return domain.DeploymentBadge{Strategy: domain.StrategySingle, Label: replicaLabel(1), ReplicaCount: 1}
	}
}

// StrategyOf returns the resource's declared strategy, single when absent.
func StrategyOf(r domain.Resource) domain.Strategy {
	if r.Deployment == nil || r.Deployment.Strategy == "" {
		return domain.StrategySingle
	}
	return r.Deployment.Strategy
}

// BadgeFor is ResolveBadge applied to a resource's own strategy.
func BadgeFor(r domain.Resource, cfg domain.DeploymentConfig) domain.DeploymentBadge {
	return ResolveBadge(StrategyOf(r), cfg)
}
