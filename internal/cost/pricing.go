package cost

import "math"

const defaultRegion = "us-east-1"

// Prices below are on-demand USD list prices for us-east-1. Other regions
// apply a multiplier.
var regionalMultipliers = map[string]float64{
	"us-east-1":      1.0,
	"us-east-2":      1.0,
	"us-west-1":      1.02,
	"us-west-2":      1.0,
	"eu-west-1":      1.10,
	"eu-central-1":   1.12,
	"ap-southeast-1": 1.08,
	"ap-northeast-1": 1.09,
}

// Hourly, Linux.
var ec2Hourly = map[string]float64{
	"t3.micro":   0.0104,
	"t3.small":   0.0208,
	"t3.medium":  0.0416,
	"t3.large":   0.0832,
	"t3.xlarge":  0.1664,
	"t4g.micro":  0.0084,
	"t4g.small":  0.0168,
	"t4g.medium": 0.0336,
	"t4g.large":  0.0672,
}

var rdsHourly = map[string]float64{
	"db.t3.micro":  0.017,
	"db.t3.small":  0.034,
	"db.t3.medium": 0.068,
	"db.t3.large":  0.136,
}

const (
	defaultEC2Type  = "t3.micro"
	defaultRDSClass = "db.t3.micro"

	lambdaPerRequest     = 0.20 / 1_000_000
	lambdaPerGBSecond    = 0.0000166667
	lambdaFreeRequests   = 1_000_000
	lambdaFreeGBSeconds  = 400_000
	s3StandardPerGB      = 0.023
	s3PerGet             = 0.0004 / 1000
	s3PerPut             = 0.005 / 1000
	s3TransferPerGB      = 0.09
	s3FreeStorageGB      = 5
	s3FreeGets           = 20_000
	s3FreePuts           = 2_000
	s3FreeTransferGB     = 1
	dynamoPerWrite       = 1.25 / 1_000_000
	dynamoPerRead        = 0.25 / 1_000_000
	dynamoPerGB          = 0.25
	dynamoFreeWrites     = 1_000_000
	dynamoFreeReads      = 2_500_000
	dynamoFreeStorageGB  = 25
	albPerHour           = 0.0225
	albPerLCUHour        = 0.008
	natPerHour           = 0.045
	natPerGB             = 0.045
	logIngestionPerGB    = 0.50
	logStoragePerGB      = 0.03
	logFreeIngestionGB   = 5
	ebsGP3PerGB          = 0.08
	rdsStoragePerGB      = 0.115
	rdsBackupPerGB       = 0.095
	rdsBackupShare       = 0.5
	albNewConnsPerLCU    = 25 * 3600
	albActiveConnsPerLCU = 3000 * 60
)

// Rates from USD. Approximate and fixed.
var exchangeRates = map[string]float64{
	"USD": 1.0,
	"EUR": 0.92,
	"GBP": 0.79,
	"JPY": 149.0,
}

func regionalMultiplier(region string) float64 {
	if m, ok := regionalMultipliers[region]; ok {
		return m
	}
	return 1.0
}

func convertCurrency(usd float64, currency string) float64 {
	if rate, ok := exchangeRates[currency]; ok {
		return usd * rate
	}
	return usd
}

// ec2Price returns the hourly rate and whether the type was priced; unknown
// types fall back to the smallest general purpose instance.
func ec2Price(instanceType, region string) (float64, bool) {
	base, ok := ec2Hourly[instanceType]
	if !ok {
		base = ec2Hourly[defaultEC2Type]
	}
	return base * regionalMultiplier(region), ok
}

func rdsPrice(instanceClass, region string) (float64, bool) {
	base, ok := rdsHourly[instanceClass]
	if !ok {
		base = rdsHourly[defaultRDSClass]
	}
	return base * regionalMultiplier(region), ok
}

func lambdaCost(requests, gbSeconds float64, region string) float64 {
	requests = math.Max(0, requests-lambdaFreeRequests)
	gbSeconds = math.Max(0, gbSeconds-lambdaFreeGBSeconds)
	return (requests*lambdaPerRequest + gbSeconds*lambdaPerGBSecond) * regionalMultiplier(region)
}

func s3Cost(storageGB, gets, puts, transferGB float64, region string) float64 {
	storageGB = math.Max(0, storageGB-s3FreeStorageGB)
	gets = math.Max(0, gets-s3FreeGets)
	puts = math.Max(0, puts-s3FreePuts)
	transferGB = math.Max(0, transferGB-s3FreeTransferGB)
	total := storageGB*s3StandardPerGB + gets*s3PerGet + puts*s3PerPut + transferGB*s3TransferPerGB
	return total * regionalMultiplier(region)
}

func dynamoCost(storageGB, writes, reads float64, region string) float64 {
	storageGB = math.Max(0, storageGB-dynamoFreeStorageGB)
	writes = math.Max(0, writes-dynamoFreeWrites)
	reads = math.Max(0, reads-dynamoFreeReads)
	return (storageGB*dynamoPerGB + writes*dynamoPerWrite + reads*dynamoPerRead) * regionalMultiplier(region)
}

// albCost bills the hour rate plus load balancer capacity units, where the
// busiest of new connections, active connections and processed bytes sets
// the LCU count.
func albCost(hours, newConns, activeConns, processedGB float64, region string) float64 {
	lcu := math.Max(newConns/albNewConnsPerLCU, math.Max(activeConns/albActiveConnsPerLCU, processedGB))
	return (hours*albPerHour + lcu*hours*albPerLCUHour) * regionalMultiplier(region)
}
