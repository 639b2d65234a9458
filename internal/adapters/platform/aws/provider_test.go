package aws

import (
	"context"
	stdErrors "errors"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/infra-board/internal/adapters/platform/aws/limiter"
	awsmocks "github.com/olusolaa/infra-board/internal/adapters/platform/aws/mocks"
	portsmocks "github.com/olusolaa/infra-board/internal/core/ports/mocks"
	"github.com/olusolaa/infra-board/internal/errors"
	"github.com/olusolaa/infra-board/internal/log"
)

func zone(name string, state ec2types.AvailabilityZoneState, zoneType string) ec2types.AvailabilityZone {
	return ec2types.AvailabilityZone{
		ZoneName: awssdk.String(name),
		State:    state,
		ZoneType: awssdk.String(zoneType),
	}
}

func setupZoneProvider(t *testing.T) (*ZoneProvider, *awsmocks.EC2ZoneAPI, *awsmocks.STSClientInterface) {
	t.Helper()
	ec2Client := awsmocks.NewEC2ZoneAPI(t)
	stsClient := awsmocks.NewSTSClientInterface(t)
	logger := log.NewNop()
	p := NewZoneProviderWithClients(ec2Client, stsClient, limiter.New(limiter.MaxRPS, logger), "us-east-1", logger)
	return p, ec2Client, stsClient
}

func TestZoneProvider_AvailabilityZones(t *testing.T) {
	p, ec2Client, stsClient := setupZoneProvider(t)
	assert.Equal(t, ProviderTypeAWS, p.Type())
	assert.Equal(t, "us-east-1", p.Region())

	stsClient.On("GetCallerIdentity", mock.Anything, mock.Anything, mock.Anything).
		Return(&sts.GetCallerIdentityOutput{Account: awssdk.String("123456789012")}, nil).Once()
	ec2Client.On("DescribeAvailabilityZones", mock.Anything, mock.MatchedBy(func(in *ec2.DescribeAvailabilityZonesInput) bool {
		return len(in.Filters) == 1 && awssdk.ToString(in.Filters[0].Name) == "state" && in.Filters[0].Values[0] == "available"
	}), mock.Anything).Return(&ec2.DescribeAvailabilityZonesOutput{
		AvailabilityZones: []ec2types.AvailabilityZone{
			zone("us-east-1c", ec2types.AvailabilityZoneStateAvailable, "availability-zone"),
			zone("us-east-1a", ec2types.AvailabilityZoneStateAvailable, "availability-zone"),
			zone("us-east-1-bos-1a", ec2types.AvailabilityZoneStateAvailable, "local-zone"),
			zone("us-east-1e", ec2types.AvailabilityZoneStateImpaired, "availability-zone"),
			{ZoneName: awssdk.String("us-east-1b"), State: ec2types.AvailabilityZoneStateAvailable},
		},
	}, nil).Twice()

	zones, err := p.AvailabilityZones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"us-east-1a", "us-east-1b", "us-east-1c"}, zones)

	// Caller identity is only resolved once.
	_, err = p.AvailabilityZones(context.Background())
	require.NoError(t, err)
}

func TestZoneProvider_IdentityFailureIsNotFatal(t *testing.T) {
	ec2Client := awsmocks.NewEC2ZoneAPI(t)
	stsClient := awsmocks.NewSTSClientInterface(t)
	logger := portsmocks.NewLogger(t)
	logger.On("Debugf", mock.Anything, mock.Anything, mock.Anything).Maybe()
	logger.On("Warnf", mock.Anything, "Could not resolve AWS caller identity: %v", mock.Anything).Once()

	p := NewZoneProviderWithClients(ec2Client, stsClient, limiter.New(limiter.MaxRPS, logger), "eu-west-1", logger)

	stsClient.On("GetCallerIdentity", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &smithy.GenericAPIError{Code: "ExpiredToken", Message: "token expired"}).Once()
	ec2Client.On("DescribeAvailabilityZones", mock.Anything, mock.Anything, mock.Anything).
		Return(&ec2.DescribeAvailabilityZonesOutput{AvailabilityZones: []ec2types.AvailabilityZone{
			zone("eu-west-1a", ec2types.AvailabilityZoneStateAvailable, "availability-zone"),
		}}, nil).Once()

	zones, err := p.AvailabilityZones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"eu-west-1a"}, zones)
}

func TestZoneProvider_ClassifiesAPIErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code errors.Code
	}{
		{name: "auth", err: &smithy.GenericAPIError{Code: "UnauthorizedOperation"}, code: errors.CodePlatformAuthError},
		{name: "throttled", err: &smithy.GenericAPIError{Code: "RequestLimitExceeded"}, code: errors.CodePlatformAPIError},
		{name: "transport", err: stdErrors.New("dial tcp: i/o timeout"), code: errors.CodePlatformAPIError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ec2Client, stsClient := setupZoneProvider(t)
			stsClient.On("GetCallerIdentity", mock.Anything, mock.Anything, mock.Anything).
				Return(&sts.GetCallerIdentityOutput{Account: awssdk.String("1")}, nil).Once()
			ec2Client.On("DescribeAvailabilityZones", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			_, err := p.AvailabilityZones(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestZoneProvider_CancelledContext(t *testing.T) {
	p, _, _ := setupZoneProvider(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.AvailabilityZones(ctx)
	require.Error(t, err)
	assert.Equal(t, errors.CodePlatformAPIError, errors.GetCode(err))
	assert.ErrorIs(t, err, context.Canceled)
}
