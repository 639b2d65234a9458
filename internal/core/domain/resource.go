package domain

type Position struct {
	X float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y float64 `json:"y" yaml:"y" mapstructure:"y"`
}

// Resource is a single infrastructure element owned by exactly one Domain.
type Resource struct {
	ID               string                `json:"id"`
	Type             string                `json:"type"`
	Name             string                `json:"name"`
	DomainID         string                `json:"domain_id"`
	Arguments        map[string]any        `json:"arguments,omitempty"`
	Deployment       *DeploymentDescriptor `json:"deployment,omitempty"`
	Position         *Position             `json:"position,omitempty"`
	AvailabilityZone string                `json:"availability_zone,omitempty"`
}

func (r Resource) Argument(name string) (any, bool) {
	if r.Arguments == nil {
		return nil, false
	}
	v, ok := r.Arguments[name]
	return v, ok
}

// Domain groups resources sharing one Category.
type Domain struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	Category    Category `json:"category"`
	ResourceIDs []string `json:"resource_ids"`
}
