package domain

// Category is the fixed classification of a Domain and its resources.
type Category string

const (
	CategoryNetworking    Category = "networking"
	CategoryCompute       Category = "compute"
	CategoryServerless    Category = "serverless"
	CategoryData          Category = "data"
	CategoryStorage       Category = "storage"
	CategoryMessaging     Category = "messaging"
	CategoryIdentity      Category = "identity"
	CategoryObservability Category = "observability"
	CategoryEdge          Category = "edge"

	// CategoryUncategorized is the taxonomy fallback. It is not part of the
	// closed set returned by Categories.
	CategoryUncategorized Category = "uncategorized"
)

var categories = []Category{
	CategoryNetworking,
	CategoryCompute,
	CategoryServerless,
	CategoryData,
	CategoryStorage,
	CategoryMessaging,
	CategoryIdentity,
	CategoryObservability,
	CategoryEdge,
}

// Categories returns the closed category set in canonical order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) IsKnown() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// Environment is a free-form tag attached to a resource.
type Environment string

const (
	EnvironmentDev     Environment = "dev"
	EnvironmentStaging Environment = "staging"
	EnvironmentProd    Environment = "prod"
	EnvironmentUnknown Environment = "unknown"
)

func (e Environment) String() string {
	return string(e)
}
