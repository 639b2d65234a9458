// Package grouping builds the category and environment groupings of a
// snapshot. All functions are pure and leave their inputs untouched.
package grouping

import (
	"sort"

	"github.com/olusolaa/infra-board/internal/core/domain"
)

const unrankedEnvironment = 99

var environmentRank = map[domain.Environment]int{
	domain.EnvironmentDev:     1,
	domain.EnvironmentStaging: 2,
	domain.EnvironmentProd:    3,
}

// GroupByCategory walks domains in order and appends each domain's resolved
// resources under its category. Unresolvable resource ids are skipped and
// categories with no resolved resources never appear.
func GroupByCategory(domains []domain.Domain, resources []domain.Resource) domain.CategoryGroups {
	idx := NewResourceIndex(resources)
	groups := domain.NewCategoryGroups()

	for _, d := range domains {
		resolved := make([]domain.Resource, 0, len(d.ResourceIDs))
		for _, id := range d.ResourceIDs {
			if r, ok := ResolveResource(idx, id); ok {
				resolved = append(resolved, r)
			}
		}
		groups.Append(d.Category, resolved...)
	}
	return groups
}

// GroupByEnvironmentAndCategory buckets resources by environment tag and then
// by their domain's category, preserving input order. Resources whose domain
// cannot be resolved are skipped.
func GroupByEnvironmentAndCategory(resources []domain.Resource, domains []domain.Domain) domain.EnvironmentGroups {
	idx := NewDomainIndex(domains)
	groups := domain.NewEnvironmentGroups()

	for _, r := range resources {
		d, ok := ResolveDomain(idx, r.DomainID)
		if !ok {
			continue
		}
		groups.Append(EnvironmentOf(r), d.Category, r)
	}
	return groups
}

// SortEnvironments orders dev, staging and prod first. Other environments
// keep their relative input order after them.
func SortEnvironments(envs []domain.Environment) []domain.Environment {
	out := make([]domain.Environment, len(envs))
	copy(out, envs)
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i]) < rank(out[j])
	})
	return out
}

func rank(env domain.Environment) int {
	if r, ok := environmentRank[env]; ok {
		return r
	}
	return unrankedEnvironment
}

// EnvironmentOf reads the Environment tag, defaulting to "unknown".
func EnvironmentOf(r domain.Resource) domain.Environment {
	tags, ok := r.Argument(domain.KeyTags)
	if !ok {
		return domain.EnvironmentUnknown
	}
	var env string
	switch t := tags.(type) {
	case map[string]string:
		env = t[domain.TagEnvironment]
	case map[string]any:
		env, _ = t[domain.TagEnvironment].(string)
	}
	if env == "" {
		return domain.EnvironmentUnknown
	}
	return domain.Environment(env)
}

// Build produces both groupings for one pass.
func Build(domains []domain.Domain, resources []domain.Resource) domain.GroupedView {
	return domain.GroupedView{
		ByCategory:    GroupByCategory(domains, resources),
		ByEnvironment: GroupByEnvironmentAndCategory(resources, domains),
	}
}
