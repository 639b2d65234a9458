package cost

import "github.com/olusolaa/infra-board/internal/core/domain"

// Stack types select the usage profile a board is priced against.
const (
	StackThreeTierWebApp   = "3-tier-web-app"
	StackServerlessAPI     = "serverless-api"
	StackStaticWebsite     = "static-website"
	StackContainerPlatform = "container-platform"
)

// Usage is the monthly traffic assumed for one stack type and scenario.
// Zero fields take the defaults in withDefaults.
type Usage struct {
	EC2Instances         float64
	EC2Hours             float64
	RDSHours             float64
	ALBHours             float64
	ALBNewConnections    float64
	ALBActiveConnections float64
	ALBProcessedGB       float64
	S3StorageGB          float64
	S3GetRequests        float64
	S3PutRequests        float64
	S3TransferGB         float64
	NATHours             float64
	NATDataGB            float64
	LogGB                float64
	LambdaInvocations    float64
	LambdaDurationMs     float64
	DynamoStorageGB      float64
	DynamoWrites         float64
	DynamoReads          float64
}

func (u Usage) withDefaults() Usage {
	set := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	set(&u.EC2Instances, 1)
	set(&u.EC2Hours, domain.HoursPerMonth)
	set(&u.RDSHours, domain.HoursPerMonth)
	set(&u.ALBHours, domain.HoursPerMonth)
	set(&u.ALBNewConnections, 1000)
	set(&u.ALBActiveConnections, 100)
	set(&u.ALBProcessedGB, 10)
	set(&u.S3StorageGB, 1)
	set(&u.S3GetRequests, 1000)
	set(&u.S3PutRequests, 100)
	set(&u.S3TransferGB, 0.5)
	set(&u.NATHours, domain.HoursPerMonth)
	set(&u.NATDataGB, 10)
	set(&u.LogGB, 1)
	set(&u.LambdaInvocations, 1000)
	set(&u.LambdaDurationMs, 200)
	set(&u.DynamoStorageGB, 1)
	set(&u.DynamoWrites, 1000)
	set(&u.DynamoReads, 10000)
	return u
}

var stackUsage = map[string]map[domain.Scenario]Usage{
	StackThreeTierWebApp: {
		domain.ScenarioIdle: {
			EC2Instances: 1, EC2Hours: 730, RDSHours: 730,
			ALBHours: 730, ALBNewConnections: 100, ALBActiveConnections: 10, ALBProcessedGB: 1,
			S3StorageGB: 1, S3GetRequests: 1000, S3PutRequests: 100, S3TransferGB: 0.5,
			NATHours: 730, NATDataGB: 1, LogGB: 0.5,
		},
		domain.ScenarioUsers10: {
			EC2Instances: 1, EC2Hours: 730, RDSHours: 730,
			ALBHours: 730, ALBNewConnections: 5000, ALBActiveConnections: 100, ALBProcessedGB: 10,
			S3StorageGB: 5, S3GetRequests: 50000, S3PutRequests: 5000, S3TransferGB: 2,
			NATHours: 730, NATDataGB: 5, LogGB: 2,
		},
		domain.ScenarioUsers100: {
			EC2Instances: 2, EC2Hours: 1460, RDSHours: 730,
			ALBHours: 730, ALBNewConnections: 50000, ALBActiveConnections: 1000, ALBProcessedGB: 100,
			S3StorageGB: 20, S3GetRequests: 500000, S3PutRequests: 50000, S3TransferGB: 20,
			NATHours: 730, NATDataGB: 50, LogGB: 10,
		},
		domain.ScenarioUsers1000: {
			EC2Instances: 4, EC2Hours: 2920, RDSHours: 730,
			ALBHours: 730, ALBNewConnections: 500000, ALBActiveConnections: 10000, ALBProcessedGB: 1000,
			S3StorageGB: 100, S3GetRequests: 5000000, S3PutRequests: 500000, S3TransferGB: 200,
			NATHours: 730, NATDataGB: 500, LogGB: 50,
		},
	},
	StackServerlessAPI: {
		domain.ScenarioIdle: {
			LambdaInvocations: 100, LambdaDurationMs: 200,
			DynamoStorageGB: 0.1, DynamoWrites: 100, DynamoReads: 1000,
			S3StorageGB: 1, S3GetRequests: 100, S3PutRequests: 10, S3TransferGB: 0.1, LogGB: 0.1,
		},
		domain.ScenarioUsers10: {
			LambdaInvocations: 5000, LambdaDurationMs: 200,
			DynamoStorageGB: 1, DynamoWrites: 5000, DynamoReads: 10000,
			S3StorageGB: 5, S3GetRequests: 5000, S3PutRequests: 500, S3TransferGB: 1, LogGB: 0.5,
		},
		domain.ScenarioUsers100: {
			LambdaInvocations: 50000, LambdaDurationMs: 200,
			DynamoStorageGB: 5, DynamoWrites: 50000, DynamoReads: 100000,
			S3StorageGB: 20, S3GetRequests: 50000, S3PutRequests: 5000, S3TransferGB: 10, LogGB: 2,
		},
		domain.ScenarioUsers1000: {
			LambdaInvocations: 500000, LambdaDurationMs: 200,
			DynamoStorageGB: 25, DynamoWrites: 500000, DynamoReads: 1000000,
			S3StorageGB: 100, S3GetRequests: 500000, S3PutRequests: 50000, S3TransferGB: 100, LogGB: 10,
		},
	},
	StackStaticWebsite: {
		domain.ScenarioIdle:      {S3StorageGB: 1, S3GetRequests: 100, S3PutRequests: 10},
		domain.ScenarioUsers10:   {S3StorageGB: 5, S3GetRequests: 5000, S3PutRequests: 500},
		domain.ScenarioUsers100:  {S3StorageGB: 10, S3GetRequests: 50000, S3PutRequests: 5000},
		domain.ScenarioUsers1000: {S3StorageGB: 50, S3GetRequests: 500000, S3PutRequests: 50000},
	},
	StackContainerPlatform: {
		domain.ScenarioIdle: {
			ALBHours: 730, ALBNewConnections: 100, ALBActiveConnections: 10, ALBProcessedGB: 1,
			RDSHours: 730, S3StorageGB: 5, LogGB: 1,
		},
		domain.ScenarioUsers10: {
			ALBHours: 730, ALBNewConnections: 5000, ALBActiveConnections: 100, ALBProcessedGB: 10,
			RDSHours: 730, S3StorageGB: 10, LogGB: 5,
		},
		domain.ScenarioUsers100: {
			ALBHours: 730, ALBNewConnections: 50000, ALBActiveConnections: 1000, ALBProcessedGB: 100,
			RDSHours: 730, S3StorageGB: 50, LogGB: 20,
		},
		domain.ScenarioUsers1000: {
			ALBHours: 730, ALBNewConnections: 500000, ALBActiveConnections: 10000, ALBProcessedGB: 1000,
			RDSHours: 730, S3StorageGB: 200, LogGB: 100,
		},
	},
}

// StackTypes lists the known usage profiles.
func StackTypes() []string {
	return []string{StackThreeTierWebApp, StackServerlessAPI, StackStaticWebsite, StackContainerPlatform}
}

// UsageFor returns the usage of a stack type under a scenario. Unknown stack
// types use the web app profile.
func UsageFor(stackType string, scenario domain.Scenario) Usage {
	stack, ok := stackUsage[stackType]
	if !ok {
		stack = stackUsage[StackThreeTierWebApp]
	}
	return stack[scenario].withDefaults()
}

// recommendations returns stack-wide savings advice for the heaviest
// scenario's monthly total.
func recommendations(stackType string, scenario domain.Scenario, total float64) []string {
	var out []string
	heavy := scenario == domain.ScenarioUsers100 || scenario == domain.ScenarioUsers1000
	if total > 50 {
		out = append(out, "Consider Reserved Instances after 3-6 months of consistent usage (40% savings)")
	}
	switch stackType {
	case StackThreeTierWebApp:
		if heavy {
			out = append(out,
				"Use Auto Scaling to match capacity with demand",
				"Implement S3 Lifecycle Policies to archive old data to Glacier")
		}
		out = append(out,
			"Use Compute Savings Plans for flexible EC2/Fargate savings (up to 66%)",
			"Right-size EC2 instances using CloudWatch metrics")
	case StackServerlessAPI:
		out = append(out,
			"Optimize Lambda memory allocation using AWS Lambda Power Tuning",
			"Use Lambda Provisioned Concurrency only for latency-critical functions")
		if heavy {
			out = append(out, "Consider DynamoDB Reserved Capacity for predictable workloads")
		}
	case StackStaticWebsite:
		out = append(out,
			"Enable CloudFront compression to reduce data transfer costs",
			"Use S3 Intelligent-Tiering for automatic cost optimization")
	case StackContainerPlatform:
		out = append(out,
			"Use Fargate Spot for fault-tolerant workloads (70% savings)",
			"Right-size container resource allocation")
		if heavy {
			out = append(out, "Consider Compute Savings Plans for Fargate")
		}
	}
	return out
}
