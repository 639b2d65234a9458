package project

import (
	"github.com/olusolaa/infra-board/internal/core/domain"
)

// projectFile is the on-disk layout of a board project.
type projectFile struct {
	Deployment deploymentConfigRecord `mapstructure:"deployment"`
	Domains    []domainRecord         `mapstructure:"domains" validate:"dive"`
	Resources  []resourceRecord       `mapstructure:"resources" validate:"dive"`
}

type deploymentConfigRecord struct {
	PrimaryRegion     string   `mapstructure:"primary_region"`
	AvailabilityZones []string `mapstructure:"availability_zones" validate:"dive,required"`
	ReplicaRegions    []string `mapstructure:"replica_regions" validate:"dive,required"`
}

type domainRecord struct {
	ID          string   `mapstructure:"id" validate:"required"`
	Name        string   `mapstructure:"name"`
	Category    string   `mapstructure:"category" validate:"required,oneof=networking compute serverless data storage messaging identity observability edge uncategorized"`
	ResourceIDs []string `mapstructure:"resource_ids"`
}

type resourceRecord struct {
	ID               string            `mapstructure:"id" validate:"required"`
	Type             string            `mapstructure:"type" validate:"required"`
	Name             string            `mapstructure:"name"`
	DomainID         string            `mapstructure:"domain_id"`
	Arguments        map[string]any    `mapstructure:"arguments"`
	Deployment       *deploymentRecord `mapstructure:"deployment"`
	Position         *positionRecord   `mapstructure:"position"`
	AvailabilityZone string            `mapstructure:"availability_zone"`
}

// deploymentRecord keeps every key besides strategy as a parameter.
type deploymentRecord struct {
	Strategy string         `mapstructure:"strategy"`
	Params   map[string]any `mapstructure:",remain"`
}

type positionRecord struct {
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`
}

func (f *projectFile) toSnapshot(source string) *domain.Snapshot {
	snap := &domain.Snapshot{
		Source: source,
		Deployment: domain.DeploymentConfig{
			PrimaryRegion:     f.Deployment.PrimaryRegion,
			AvailabilityZones: f.Deployment.AvailabilityZones,
			ReplicaRegions:    f.Deployment.ReplicaRegions,
		},
		Domains:   make([]domain.Domain, 0, len(f.Domains)),
		Resources: make([]domain.Resource, 0, len(f.Resources)),
	}
	if snap.Deployment.AvailabilityZones == nil {
		snap.Deployment.AvailabilityZones = []string{}
	}

	for _, d := range f.Domains {
		snap.Domains = append(snap.Domains, domain.Domain{
			ID:          d.ID,
			Name:        d.Name,
			Category:    domain.Category(d.Category),
			ResourceIDs: d.ResourceIDs,
		})
	}
	for _, r := range f.Resources {
		snap.Resources = append(snap.Resources, r.toResource())
	}
	return snap
}

func (r resourceRecord) toResource() domain.Resource {
	res := domain.Resource{
		ID:               r.ID,
		Type:             r.Type,
		Name:             r.Name,
		DomainID:         r.DomainID,
		Arguments:        normalize(r.Arguments),
		AvailabilityZone: r.AvailabilityZone,
	}
	if res.AvailabilityZone == "" {
		if az, ok := res.Arguments[domain.KeyAvailabilityZone].(string); ok {
			res.AvailabilityZone = az
		}
	}
	if r.Deployment != nil {
		res.Deployment = &domain.DeploymentDescriptor{
			Strategy: domain.Strategy(r.Deployment.Strategy),
			Params:   r.Deployment.Params,
		}
	}
	if r.Position != nil {
		res.Position = &domain.Position{X: r.Position.X, Y: r.Position.Y}
	}
	return res
}
