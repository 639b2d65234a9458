package domain

type Strategy string

const (
	StrategySingle   Strategy = "single"
	StrategyPerAZ    Strategy = "per-az"
	StrategyMultiAZ  Strategy = "multi-az"
	StrategyRegional Strategy = "regional"
)

func (s Strategy) IsKnown() bool {
	switch s {
	case StrategySingle, StrategyPerAZ, StrategyMultiAZ, StrategyRegional:
		return true
	}
	return false
}

func (s Strategy) String() string {
	return string(s)
}

type DeploymentDescriptor struct {
	Strategy Strategy       `json:"strategy"`
	Params   map[string]any `json:"params,omitempty"`
}

// DeploymentConfig is process-wide and read-only for the engine.
type DeploymentConfig struct {
	PrimaryRegion     string   `json:"primary_region,omitempty"`
	AvailabilityZones []string `json:"availability_zones"`
	ReplicaRegions    []string `json:"replica_regions,omitempty"`
}

// Regions lists the primary region followed by the replicas.
func (c DeploymentConfig) Regions() []string {
	regions := make([]string, 0, 1+len(c.ReplicaRegions))
	if c.PrimaryRegion != "" {
		regions = append(regions, c.PrimaryRegion)
	}
	return append(regions, c.ReplicaRegions...)
}

// SymbolicReplicaCount marks strategies whose replica count is not bound to a
// concrete number of zones.
const SymbolicReplicaCount = -1

type DeploymentBadge struct {
	Strategy     Strategy `json:"strategy"`
	Label        string   `json:"label"`
	ReplicaCount int      `json:"replica_count"`
}

func (b DeploymentBadge) IsSymbolic() bool {
	return b.ReplicaCount == SymbolicReplicaCount
}

type AliasType string

const (
	AliasNone    AliasType = "none"
	AliasAZ      AliasType = "az"
	AliasMultiAZ AliasType = "multi-az"
	AliasRegion  AliasType = "region"
)

// DeploymentAlias is one concrete instance a resource materializes into.
type DeploymentAlias struct {
	ResourceID    string    `json:"resource_id"`
	ResourceType  string    `json:"resource_type"`
	BaseName      string    `json:"base_name"`
	AliasType     AliasType `json:"alias_type"`
	AliasValue    string    `json:"alias_value"`
	AliasIndex    int       `json:"alias_index"`
	TerraformName string    `json:"terraform_name"`
}
