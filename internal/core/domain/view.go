package domain

// CategoryGroups maps categories to ordered resources. Order holds the
// categories in first-seen order and never contains a key with no resources.
type CategoryGroups struct {
	Order   []Category              `json:"order"`
	Buckets map[Category][]Resource `json:"buckets"`
}

func NewCategoryGroups() CategoryGroups {
	return CategoryGroups{Buckets: make(map[Category][]Resource)}
}

// Append adds resources under category, registering the category on first use.
// Empty input is ignored.
func (g *CategoryGroups) Append(category Category, resources ...Resource) {
	if len(resources) == 0 {
		return
	}
	if g.Buckets == nil {
		g.Buckets = make(map[Category][]Resource)
	}
	if _, ok := g.Buckets[category]; !ok {
		g.Order = append(g.Order, category)
	}
	g.Buckets[category] = append(g.Buckets[category], resources...)
}

func (g CategoryGroups) Get(category Category) ([]Resource, bool) {
	rs, ok := g.Buckets[category]
	return rs, ok
}

func (g CategoryGroups) Len() int {
	return len(g.Order)
}

// EnvironmentGroups maps environments to per-category groups, with
// environments in first-seen order.
type EnvironmentGroups struct {
	Order   []Environment                  `json:"order"`
	Buckets map[Environment]CategoryGroups `json:"buckets"`
}

func NewEnvironmentGroups() EnvironmentGroups {
	return EnvironmentGroups{Buckets: make(map[Environment]CategoryGroups)}
}

func (g *EnvironmentGroups) Append(env Environment, category Category, resource Resource) {
	if g.Buckets == nil {
		g.Buckets = make(map[Environment]CategoryGroups)
	}
	groups, ok := g.Buckets[env]
	if !ok {
		g.Order = append(g.Order, env)
		groups = NewCategoryGroups()
	}
	groups.Append(category, resource)
	g.Buckets[env] = groups
}

func (g EnvironmentGroups) Get(env Environment) (CategoryGroups, bool) {
	cg, ok := g.Buckets[env]
	return cg, ok
}

type GroupedView struct {
	ByCategory    CategoryGroups    `json:"by_category"`
	ByEnvironment EnvironmentGroups `json:"by_environment"`
}

// Card is the per-resource view model consumed by reporters.
type Card struct {
	Resource         Resource          `json:"resource"`
	DomainCategory   Category          `json:"domain_category"`
	TaxonomyCategory Category          `json:"taxonomy_category"`
	IconKey          string            `json:"icon_key"`
	Environment      Environment       `json:"environment"`
	Badge            DeploymentBadge   `json:"badge"`
	Aliases          []DeploymentAlias `json:"aliases,omitempty"`
	Validation       *ValidationState  `json:"validation,omitempty"`
	DisplayState     DisplayState      `json:"display_state"`
	Cost             *ResourceCost     `json:"cost,omitempty"`
}

// Board is the full view model for one snapshot.
type Board struct {
	Source       string           `json:"source"`
	Fingerprint  string           `json:"fingerprint"`
	Deployment   DeploymentConfig `json:"deployment"`
	Grouped      GroupedView      `json:"grouped"`
	Environments []Environment    `json:"environments"`
	Cards        map[string]Card  `json:"cards"`
	Findings     []Finding        `json:"findings,omitempty"`
	Cost         *CostSummary     `json:"cost,omitempty"`
}
