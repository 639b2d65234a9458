package grouping

import "github.com/olusolaa/infra-board/internal/core/domain"

// ResourceIndex resolves resources by id.
type ResourceIndex map[string]domain.Resource

// DomainIndex resolves domains by id.
type DomainIndex map[string]domain.Domain

// NewResourceIndex indexes resources by id. The first occurrence of a
// duplicated id wins.
func NewResourceIndex(resources []domain.Resource) ResourceIndex {
	idx := make(ResourceIndex, len(resources))
	for _, r := range resources {
		if _, exists := idx[r.ID]; !exists {
			idx[r.ID] = r
		}
	}
	return idx
}

func NewDomainIndex(domains []domain.Domain) DomainIndex {
	idx := make(DomainIndex, len(domains))
	for _, d := range domains {
		if _, exists := idx[d.ID]; !exists {
			idx[d.ID] = d
		}
	}
	return idx
}

// ResolveResource is the lookup step for a domain's resource ids. A missing
// id is reported with ok=false and callers drop it.
func ResolveResource(idx ResourceIndex, id string) (domain.Resource, bool) {
	r, ok := idx[id]
	return r, ok
}

func ResolveDomain(idx DomainIndex, id string) (domain.Domain, bool) {
	d, ok := idx[id]
	return d, ok
}
