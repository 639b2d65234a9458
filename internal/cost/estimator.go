// Package cost estimates the monthly AWS cost of board resources under a
// set of usage scenarios.
package cost

import (
	"context"
	"fmt"
	"strings"

	"github.com/olusolaa/infra-board/internal/core/domain"
	"github.com/olusolaa/infra-board/internal/core/ports"
	"github.com/olusolaa/infra-board/internal/grouping"
	"github.com/olusolaa/infra-board/pkg/convert"
)

const (
	keyInstanceType     = "instance_type"
	keyInstanceClass    = "instance_class"
	keyAllocatedStorage = "allocated_storage"
	keyMultiAZ          = "multi_az"
	keyMemorySize       = "memory_size"
	keyEBSVolumeSize    = "ebs_volume_size"
	keyRootBlockDevice  = "root_block_device"
	keyVolumeSize       = "volume_size"

	defaultVolumeGB     = 20
	defaultLambdaMemory = 512

	// Idle boards cheaper than this fit the AWS free tier.
	freeTierThreshold = 5.0
)

type Config struct {
	Enabled   bool   `mapstructure:"enabled"`
	Scenario  string `mapstructure:"scenario" validate:"oneof=idle 10_users 100_users 1000_users"`
	StackType string `mapstructure:"stack_type" validate:"oneof=3-tier-web-app serverless-api static-website container-platform"`
	Currency  string `mapstructure:"currency" validate:"oneof=USD EUR GBP JPY"`
}

func DefaultConfig() Config {
	return Config{
		Scenario:  string(domain.ScenarioIdle),
		StackType: StackThreeTierWebApp,
		Currency:  domain.DefaultCurrency,
	}
}

// Estimator prices resources by type from their arguments and the usage
// profile of the configured stack type.
type Estimator struct {
	config Config
	logger ports.Logger
}

var _ ports.CostEstimator = (*Estimator)(nil)

func NewEstimator(cfg Config, logger ports.Logger) *Estimator {
	if cfg.Scenario == "" {
		cfg.Scenario = string(domain.ScenarioIdle)
	}
	if cfg.StackType == "" {
		cfg.StackType = StackThreeTierWebApp
	}
	if cfg.Currency == "" {
		cfg.Currency = domain.DefaultCurrency
	}
	return &Estimator{
		config: cfg,
		logger: logger.WithFields(map[string]any{"component": "cost_estimator"}),
	}
}

// Annotate prices every card of board under the configured scenario and
// totals every scenario into the board's cost summary. Resources of types
// that are not billed on their own are left without a cost.
func (e *Estimator) Annotate(ctx context.Context, snap *domain.Snapshot, board *domain.Board) error {
	if snap == nil || board == nil {
		return nil
	}
	region := snap.Deployment.PrimaryRegion
	if region == "" {
		region = defaultRegion
	}
	selected := domain.Scenario(e.config.Scenario)

	summary := &domain.CostSummary{
		StackType:         e.config.StackType,
		Region:            region,
		Currency:          e.config.Currency,
		Scenario:          selected,
		MonthlyByScenario: make(map[domain.Scenario]float64, len(domain.Scenarios())),
	}

	for _, scenario := range domain.Scenarios() {
		if err := ctx.Err(); err != nil {
			return err
		}
		usage := UsageFor(e.config.StackType, scenario)
		var total float64
		for id, card := range board.Cards {
			rc, ok := e.estimate(card.Resource, region, scenario, usage)
			if !ok {
				continue
			}
			scaleByReplicas(rc, card.Badge)
			e.convert(rc)
			total += rc.MonthlyCost
			if scenario == selected {
				card.Cost = rc
				board.Cards[id] = card
			}
		}
		summary.MonthlyByScenario[scenario] = total
	}

	summary.TotalMonthly = summary.MonthlyByScenario[selected]
	summary.TotalAnnual = summary.TotalMonthly * domain.MonthsPerYear
	summary.FreeTierEligible = summary.MonthlyByScenario[domain.ScenarioIdle] < convertCurrency(freeTierThreshold, e.config.Currency)
	heaviest := domain.ScenarioUsers1000
	summary.Recommendations = recommendations(e.config.StackType, heaviest,
		summary.MonthlyByScenario[heaviest]/convertCurrency(1, e.config.Currency))
	board.Cost = summary

	e.logger.Debugf(ctx, "Estimated %.2f %s/month for %s under %s",
		summary.TotalMonthly, summary.Currency, summary.StackType, summary.Scenario)
	return nil
}

// EstimateResource prices one resource in USD. It reports false for
// resource types that are not billed on their own.
func (e *Estimator) EstimateResource(r domain.Resource, region string, scenario domain.Scenario) (*domain.ResourceCost, bool) {
	return e.estimate(r, region, scenario, UsageFor(e.config.StackType, scenario))
}

func (e *Estimator) estimate(r domain.Resource, region string, scenario domain.Scenario, u Usage) (*domain.ResourceCost, bool) {
	var (
		drivers     []domain.CostDriver
		suggestions []string
	)
	switch r.Type {
	case "aws_instance":
		drivers, suggestions = ec2Drivers(r, region, u)
	case "aws_db_instance":
		drivers, suggestions = rdsDrivers(r, region, u)
	case "aws_lambda_function":
		drivers, suggestions = lambdaDrivers(r, region, u)
	case "aws_s3_bucket":
		drivers, suggestions = s3Drivers(region, u)
	case "aws_dynamodb_table":
		drivers, suggestions = dynamoDrivers(region, u)
	case "aws_lb", "aws_alb":
		drivers = albDrivers(region, u)
	case "aws_nat_gateway":
		drivers, suggestions = natDrivers(region, u)
	case "aws_cloudwatch_log_group":
		drivers, suggestions = logDrivers(region, u)
	default:
		return nil, false
	}

	rc := &domain.ResourceCost{
		ResourceID:   r.ID,
		ResourceType: r.Type,
		Scenario:     scenario,
		Currency:     domain.DefaultCurrency,
		Drivers:      drivers,
		Suggestions:  suggestions,
	}
	for _, d := range drivers {
		rc.MonthlyCost += d.Cost
	}
	rc.AnnualCost = rc.MonthlyCost * domain.MonthsPerYear
	if rc.MonthlyCost > 30 && r.Type == "aws_db_instance" {
		rc.Suggestions = append([]string{"Consider Reserved Instances for 35-65% savings"}, rc.Suggestions...)
	}
	if rc.MonthlyCost > 20 && r.Type == "aws_instance" {
		rc.Suggestions = append([]string{"Consider Reserved Instances for 40% savings"}, rc.Suggestions...)
	}
	return rc, true
}

// scaleByReplicas multiplies a cost by the number of concrete instances the
// resource deploys as. Symbolic badges stay at one.
func scaleByReplicas(rc *domain.ResourceCost, badge domain.DeploymentBadge) {
	if badge.ReplicaCount <= 1 {
		return
	}
	n := float64(badge.ReplicaCount)
	for i := range rc.Drivers {
		rc.Drivers[i].Cost *= n
		rc.Drivers[i].Explanation += fmt.Sprintf(" × %d replicas", badge.ReplicaCount)
	}
	rc.MonthlyCost *= n
	rc.AnnualCost *= n
}

func (e *Estimator) convert(rc *domain.ResourceCost) {
	rc.Currency = e.config.Currency
	for i := range rc.Drivers {
		rc.Drivers[i].Cost = convertCurrency(rc.Drivers[i].Cost, e.config.Currency)
	}
	rc.MonthlyCost = convertCurrency(rc.MonthlyCost, e.config.Currency)
	rc.AnnualCost = convertCurrency(rc.AnnualCost, e.config.Currency)
}

func ec2Drivers(r domain.Resource, region string, u Usage) ([]domain.CostDriver, []string) {
	instanceType := stringArg(r, keyInstanceType, defaultEC2Type)
	volume := numberArg(r, keyEBSVolumeSize, 0)
	if volume == 0 {
		raw, _ := r.Argument(keyRootBlockDevice)
		if block, ok := convert.ToBlock(raw); ok {
			volume, _ = convert.ToFloat64(block[keyVolumeSize])
		}
	}
	if volume <= 0 {
		volume = defaultVolumeGB
	}

	hourly, _ := ec2Price(instanceType, region)
	compute := hourly * u.EC2Hours
	storage := volume * ebsGP3PerGB * u.EC2Instances

	drivers := []domain.CostDriver{
		{Name: "Instance hours", Quantity: u.EC2Hours, Cost: compute,
			Explanation: fmt.Sprintf("%.0f× %s × %.0f hours", u.EC2Instances, instanceType, u.EC2Hours/u.EC2Instances)},
		{Name: "EBS storage", Quantity: volume * u.EC2Instances, Cost: storage,
			Explanation: fmt.Sprintf("%.0fGB gp3 × %.0f instances", volume, u.EC2Instances)},
	}
	var suggestions []string
	if family, size, ok := strings.Cut(instanceType, "."); ok && family == "t3" {
		suggestions = append(suggestions, fmt.Sprintf("Consider t4g.%s for 20%% savings (ARM-based)", size))
	}
	return drivers, suggestions
}

func rdsDrivers(r domain.Resource, region string, u Usage) ([]domain.CostDriver, []string) {
	class := stringArg(r, keyInstanceClass, defaultRDSClass)
	storage := numberArg(r, keyAllocatedStorage, defaultVolumeGB)
	raw, _ := r.Argument(keyMultiAZ)
	multiAZ, _ := convert.ToBool(raw)

	hourly, _ := rdsPrice(class, region)
	label := fmt.Sprintf("%s × %.0f hours", class, u.RDSHours)
	if multiAZ {
		hourly *= 2
		label += " × 2 (Multi-AZ)"
	}
	backup := storage * rdsBackupShare

	drivers := []domain.CostDriver{
		{Name: "Instance hours", Quantity: u.RDSHours, Cost: hourly * u.RDSHours, Explanation: label},
		{Name: "Storage", Quantity: storage, Cost: storage * rdsStoragePerGB,
			Explanation: fmt.Sprintf("%.0fGB gp3 storage", storage)},
		{Name: "Backup storage", Quantity: backup, Cost: backup * rdsBackupPerGB,
			Explanation: "Automated backups (~50% of allocated)"},
	}
	var suggestions []string
	if !multiAZ && grouping.EnvironmentOf(r) == domain.EnvironmentProd {
		suggestions = append(suggestions, "Enable Multi-AZ for production high availability")
	}
	return drivers, suggestions
}

func lambdaDrivers(r domain.Resource, region string, u Usage) ([]domain.CostDriver, []string) {
	memory := numberArg(r, keyMemorySize, defaultLambdaMemory)
	gbSeconds := (memory / 1024) * (u.LambdaDurationMs / 1000) * u.LambdaInvocations
	total := lambdaCost(u.LambdaInvocations, gbSeconds, region)

	drivers := []domain.CostDriver{
		{Name: "Requests", Quantity: u.LambdaInvocations, Cost: total * 0.1,
			Explanation: fmt.Sprintf("%.0f invocations", u.LambdaInvocations)},
		{Name: "Duration", Quantity: gbSeconds, Cost: total * 0.9,
			Explanation: fmt.Sprintf("%.2f GB-seconds (%.0fMB × %.0fms avg)", gbSeconds, memory, u.LambdaDurationMs)},
	}
	var suggestions []string
	if memory > defaultLambdaMemory {
		suggestions = append(suggestions, "Optimize memory allocation using AWS Lambda Power Tuning")
	}
	if u.LambdaInvocations > 100000 {
		suggestions = append(suggestions, "Use Lambda connection pooling to reduce cold starts")
	}
	return drivers, suggestions
}

func s3Drivers(region string, u Usage) ([]domain.CostDriver, []string) {
	total := s3Cost(u.S3StorageGB, u.S3GetRequests, u.S3PutRequests, u.S3TransferGB, region)
	drivers := []domain.CostDriver{
		{Name: "Storage", Quantity: u.S3StorageGB, Cost: total * 0.4,
			Explanation: fmt.Sprintf("%gGB Standard storage", u.S3StorageGB)},
		{Name: "Requests", Quantity: u.S3GetRequests + u.S3PutRequests, Cost: total * 0.3,
			Explanation: fmt.Sprintf("%.0f GET + %.0f PUT", u.S3GetRequests, u.S3PutRequests)},
		{Name: "Data transfer", Quantity: u.S3TransferGB, Cost: total * 0.3,
			Explanation: fmt.Sprintf("%gGB outbound transfer", u.S3TransferGB)},
	}
	var suggestions []string
	if u.S3StorageGB > 10 {
		suggestions = append(suggestions, "Use S3 Lifecycle Policies to transition old data to Glacier")
	}
	if u.S3TransferGB > 10 {
		suggestions = append(suggestions, "Use CloudFront CDN to reduce S3 transfer costs by up to 70%")
	}
	return drivers, suggestions
}

func dynamoDrivers(region string, u Usage) ([]domain.CostDriver, []string) {
	total := dynamoCost(u.DynamoStorageGB, u.DynamoWrites, u.DynamoReads, region)
	drivers := []domain.CostDriver{
		{Name: "Storage", Quantity: u.DynamoStorageGB, Cost: total * 0.3,
			Explanation: fmt.Sprintf("%gGB storage", u.DynamoStorageGB)},
		{Name: "Write requests", Quantity: u.DynamoWrites, Cost: total * 0.4,
			Explanation: fmt.Sprintf("%.0f write requests", u.DynamoWrites)},
		{Name: "Read requests", Quantity: u.DynamoReads, Cost: total * 0.3,
			Explanation: fmt.Sprintf("%.0f read requests", u.DynamoReads)},
	}
	var suggestions []string
	if u.DynamoWrites > 100000 || u.DynamoReads > 1000000 {
		suggestions = append(suggestions, "Consider DynamoDB Reserved Capacity for predictable workloads (50-77% savings)")
	}
	return drivers, suggestions
}

func albDrivers(region string, u Usage) []domain.CostDriver {
	total := albCost(u.ALBHours, u.ALBNewConnections, u.ALBActiveConnections, u.ALBProcessedGB, region)
	return []domain.CostDriver{
		{Name: "ALB hours", Quantity: u.ALBHours, Cost: total * 0.4,
			Explanation: fmt.Sprintf("%.0f hours", u.ALBHours)},
		{Name: "LCU usage", Quantity: u.ALBProcessedGB, Cost: total * 0.6,
			Explanation: fmt.Sprintf("%gGB processed, %.0f new conns/sec", u.ALBProcessedGB, u.ALBNewConnections)},
	}
}

func natDrivers(region string, u Usage) ([]domain.CostDriver, []string) {
	m := regionalMultiplier(region)
	drivers := []domain.CostDriver{
		{Name: "NAT Gateway hours", Quantity: u.NATHours, Cost: u.NATHours * natPerHour * m,
			Explanation: fmt.Sprintf("%.0f hours", u.NATHours)},
		{Name: "Data processed", Quantity: u.NATDataGB, Cost: u.NATDataGB * natPerGB * m,
			Explanation: fmt.Sprintf("%gGB processed", u.NATDataGB)},
	}
	var suggestions []string
	if u.NATDataGB > 100 {
		suggestions = append(suggestions, "Consider VPC endpoints to reduce NAT Gateway data transfer costs")
	}
	return drivers, suggestions
}

func logDrivers(region string, u Usage) ([]domain.CostDriver, []string) {
	m := regionalMultiplier(region)
	ingested := u.LogGB - logFreeIngestionGB
	if ingested < 0 {
		ingested = 0
	}
	drivers := []domain.CostDriver{
		{Name: "Log ingestion", Quantity: u.LogGB, Cost: ingested * logIngestionPerGB * m,
			Explanation: fmt.Sprintf("%gGB ingested", u.LogGB)},
		{Name: "Log storage", Quantity: u.LogGB, Cost: u.LogGB * logStoragePerGB * m,
			Explanation: fmt.Sprintf("%gGB stored", u.LogGB)},
	}
	var suggestions []string
	if u.LogGB > 10 {
		suggestions = append(suggestions, "Set log retention policies to reduce storage costs")
	}
	return drivers, suggestions
}

// stringArg returns a literal string argument. Unresolved references fall
// back to def.
func stringArg(r domain.Resource, key, def string) string {
	v, _ := r.Argument(key)
	s, ok := v.(string)
	if !ok || s == "" || strings.HasPrefix(s, "${") {
		return def
	}
	return s
}

func numberArg(r domain.Resource, key string, def float64) float64 {
	v, _ := r.Argument(key)
	if f, ok := convert.ToFloat64(v); ok && f > 0 {
		return f
	}
	return def
}
