package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	jsoniter "github.com/json-iterator/go"
)

var fingerprintJSON = jsoniter.Config{
	SortMapKeys:            true,
	EscapeHTML:             false,
	ValidateJsonRawMessage: true,
}.Froze()

// Snapshot is a point-in-time copy of a resource store.
type Snapshot struct {
	Source     string           `json:"source"`
	Domains    []Domain         `json:"domains"`
	Resources  []Resource       `json:"resources"`
	Deployment DeploymentConfig `json:"deployment"`
}

// Fingerprint returns a stable SHA-256 over the snapshot contents. Domains
// and resources are hashed in id order and map keys in sorted order, so the
// same store content hashes equally whatever order it was read in.
func (s *Snapshot) Fingerprint() (string, error) {
	if s == nil {
		return "", nil
	}
	domains := append([]Domain(nil), s.Domains...)
	sort.SliceStable(domains, func(i, j int) bool { return domains[i].ID < domains[j].ID })
	resources := append([]Resource(nil), s.Resources...)
	sort.SliceStable(resources, func(i, j int) bool { return resources[i].ID < resources[j].ID })

	payload := struct {
		Domains    []Domain         `json:"domains"`
		Resources  []Resource       `json:"resources"`
		Deployment DeploymentConfig `json:"deployment"`
	}{domains, resources, s.Deployment}
	data, err := fingerprintJSON.Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Clone returns a deep copy. Argument bags are copied recursively through
// nested maps and slices.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{
		Source: s.Source,
		Deployment: DeploymentConfig{
			PrimaryRegion:     s.Deployment.PrimaryRegion,
			AvailabilityZones: cloneStrings(s.Deployment.AvailabilityZones),
			ReplicaRegions:    cloneStrings(s.Deployment.ReplicaRegions),
		},
	}
	if s.Domains != nil {
		out.Domains = make([]Domain, len(s.Domains))
		for i, d := range s.Domains {
			d.ResourceIDs = cloneStrings(d.ResourceIDs)
			out.Domains[i] = d
		}
	}
	if s.Resources != nil {
		out.Resources = make([]Resource, len(s.Resources))
		for i, r := range s.Resources {
			out.Resources[i] = r.Clone()
		}
	}
	return out
}

func (r Resource) Clone() Resource {
	out := r
	if r.Arguments != nil {
		out.Arguments = cloneMap(r.Arguments)
	}
	if r.Deployment != nil {
		d := *r.Deployment
		if d.Params != nil {
			d.Params = cloneMap(d.Params)
		}
		out.Deployment = &d
	}
	if r.Position != nil {
		p := *r.Position
		out.Position = &p
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case map[string]string:
		m := make(map[string]string, len(t))
		for k, s := range t {
			m[k] = s
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = cloneValue(e)
		}
		return s
	case []string:
		return cloneStrings(t)
	case []map[string]any:
		s := make([]map[string]any, len(t))
		for i, e := range t {
			s[i] = cloneMap(e)
		}
		return s
	default:
		return v
	}
}
