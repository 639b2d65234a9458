// Package mapping turns raw store records into domain snapshots. Stores that
// carry no domain structure of their own get one synthesized Domain per
// taxonomy category.
package mapping

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olusolaa/infra-board/internal/core/domain"
	"github.com/olusolaa/infra-board/internal/errors"
	"github.com/olusolaa/infra-board/internal/taxonomy"
	"github.com/olusolaa/infra-board/pkg/convert"
)

const domainIDPrefix = "domain_"

// RawResource is a resource as read from a store, before normalization.
type RawResource struct {
	Address    string
	Type       string
	Name       string
	Attributes map[string]any
	Deployment *domain.DeploymentDescriptor
}

// DomainID is the id of the synthesized domain for a category.
func DomainID(category domain.Category) string {
	return domainIDPrefix + string(category)
}

// SnapshotBuilder accumulates resources in insertion order and creates
// category domains on first use.
type SnapshotBuilder struct {
	domains   []*domain.Domain
	byID      map[string]*domain.Domain
	resources []domain.Resource
	seen      map[string]struct{}
}

func NewSnapshotBuilder() *SnapshotBuilder {
	return &SnapshotBuilder{
		byID: make(map[string]*domain.Domain),
		seen: make(map[string]struct{}),
	}
}

func (b *SnapshotBuilder) Add(raw RawResource) error {
	if raw.Address == "" || raw.Type == "" {
		return errors.New(errors.CodeMappingError, fmt.Sprintf("resource record is missing address or type (%q, %q)", raw.Address, raw.Type))
	}
	if _, dup := b.seen[raw.Address]; dup {
		return errors.New(errors.CodeMappingError, fmt.Sprintf("resource '%s' defined more than once", raw.Address))
	}
	b.seen[raw.Address] = struct{}{}

	category := taxonomy.CategoryOf(raw.Type)
	d := b.domainFor(category)
	d.ResourceIDs = append(d.ResourceIDs, raw.Address)

	args := NormalizeArguments(raw.Attributes)
	r := domain.Resource{
		ID:         raw.Address,
		Type:       raw.Type,
		Name:       raw.Name,
		DomainID:   d.ID,
		Arguments:  args,
		Deployment: raw.Deployment,
	}
	if az, ok := args[domain.KeyAvailabilityZone].(string); ok && !IsReference(az) {
		r.AvailabilityZone = az
	}
	b.resources = append(b.resources, r)
	return nil
}

// IsReference reports whether a value is unresolved interpolation source
// such as "${each.value}".
func IsReference(s string) bool {
	return strings.Contains(s, "${")
}

func (b *SnapshotBuilder) domainFor(category domain.Category) *domain.Domain {
	id := DomainID(category)
	if d, ok := b.byID[id]; ok {
		return d
	}
	d := &domain.Domain{ID: id, Name: string(category), Category: category}
	b.byID[id] = d
	b.domains = append(b.domains, d)
	return d
}

func (b *SnapshotBuilder) Len() int {
	return len(b.resources)
}

// Build returns the snapshot. The builder should not be reused afterwards.
func (b *SnapshotBuilder) Build(source string, cfg domain.DeploymentConfig) *domain.Snapshot {
	snap := &domain.Snapshot{
		Source:     source,
		Deployment: cfg,
		Domains:    make([]domain.Domain, 0, len(b.domains)),
		Resources:  b.resources,
	}
	for _, d := range b.domains {
		snap.Domains = append(snap.Domains, *d)
	}
	if snap.Resources == nil {
		snap.Resources = []domain.Resource{}
	}
	return snap
}

// NormalizeArguments copies the attribute bag, flattening tags to
// map[string]string. Null attributes are dropped.
func NormalizeArguments(raw map[string]any) map[string]any {
	args := make(map[string]any, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		if k == domain.KeyTags {
			args[k] = normalizeTags(v)
			continue
		}
		args[k] = v
	}
	return args
}

func normalizeTags(raw any) map[string]string {
	tags := convert.StringEntries(raw)
	if tags == nil {
		return map[string]string{}
	}
	return tags
}

// ZonesOf collects the distinct availability_zone values of a resource set,
// sorted by name.
func ZonesOf(resources []domain.Resource) []string {
	set := make(map[string]struct{})
	for _, r := range resources {
		if r.AvailabilityZone != "" {
			set[r.AvailabilityZone] = struct{}{}
		}
	}
	zones := make([]string, 0, len(set))
	for z := range set {
		zones = append(zones, z)
	}
	sort.Strings(zones)
	return zones
}
