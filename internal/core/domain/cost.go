package domain

// Scenario is a usage level that cost estimates are computed for.
type Scenario string

const (
	ScenarioIdle      Scenario = "idle"
	ScenarioUsers10   Scenario = "10_users"
	ScenarioUsers100  Scenario = "100_users"
	ScenarioUsers1000 Scenario = "1000_users"
)

const (
	DefaultCurrency = "USD"
	HoursPerMonth   = 730
	MonthsPerYear   = 12
)

var scenarios = []Scenario{ScenarioIdle, ScenarioUsers10, ScenarioUsers100, ScenarioUsers1000}

// Scenarios returns every scenario from the lightest load to the heaviest.
func Scenarios() []Scenario {
	out := make([]Scenario, len(scenarios))
	copy(out, scenarios)
	return out
}

func (s Scenario) IsKnown() bool {
	for _, known := range scenarios {
		if s == known {
			return true
		}
	}
	return false
}

// CostDriver is one priced quantity behind a resource's cost.
type CostDriver struct {
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	Cost        float64 `json:"cost"`
	Explanation string  `json:"explanation"`
}

// ResourceCost is the estimated monthly cost of one resource under one
// scenario.
type ResourceCost struct {
	ResourceID   string       `json:"resource_id"`
	ResourceType string       `json:"resource_type"`
	Scenario     Scenario     `json:"scenario"`
	Currency     string       `json:"currency"`
	MonthlyCost  float64      `json:"monthly_cost"`
	AnnualCost   float64      `json:"annual_cost"`
	Drivers      []CostDriver `json:"drivers"`
	Suggestions  []string     `json:"suggestions,omitempty"`
}

// CostSummary totals the priced resources of a board.
type CostSummary struct {
	StackType         string               `json:"stack_type"`
	Region            string               `json:"region"`
	Currency          string               `json:"currency"`
	Scenario          Scenario             `json:"scenario"`
	TotalMonthly      float64              `json:"total_monthly"`
	TotalAnnual       float64              `json:"total_annual"`
	MonthlyByScenario map[Scenario]float64 `json:"monthly_by_scenario"`
	FreeTierEligible  bool                 `json:"free_tier_eligible"`
	Recommendations   []string             `json:"recommendations,omitempty"`
}
