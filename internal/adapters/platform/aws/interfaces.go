package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

//go:generate mockery --name EC2ZoneAPI --output ./mocks --outpkg mocks --case underscore
//go:generate mockery --name STSClientInterface --output ./mocks --outpkg mocks --case underscore

// EC2ZoneAPI is the slice of the EC2 client used for zone discovery.
type EC2ZoneAPI interface {
	DescribeAvailabilityZones(ctx context.Context, params *ec2.DescribeAvailabilityZonesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAvailabilityZonesOutput, error)
}

type STSClientInterface interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// RateLimiter blocks until an API call may proceed.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// ErrorHandler maps an AWS SDK error to an application error.
type ErrorHandler interface {
	Handle(ctx context.Context, service, operation string, err error) error
}
