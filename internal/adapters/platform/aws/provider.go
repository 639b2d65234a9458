package aws

import (
	"context"
	"sort"
	"sync"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	awserrors "github.com/olusolaa/infra-board/internal/adapters/platform/aws/errors"
	"github.com/olusolaa/infra-board/internal/adapters/platform/aws/limiter"
	"github.com/olusolaa/infra-board/internal/core/ports"
	"github.com/olusolaa/infra-board/internal/errors"
)

const (
	ProviderTypeAWS = "aws"

	serviceEC2 = "ec2"
	serviceSTS = "sts"

	zoneTypeAvailabilityZone = "availability-zone"
)

type Config struct {
	Enabled      bool   `mapstructure:"enabled"`
	Region       string `mapstructure:"region"`
	Profile      string `mapstructure:"profile"`
	RateLimitRPS int    `mapstructure:"rate_limit_rps" validate:"omitempty,min=1,max=100"`
}

// ZoneProvider discovers the availability zones of one region. Local and
// Wavelength zones are excluded.
type ZoneProvider struct {
	ec2     EC2ZoneAPI
	sts     STSClientInterface
	limiter RateLimiter
	errs    ErrorHandler
	region  string
	logger  ports.Logger

	identityOnce sync.Once
}

func NewZoneProvider(ctx context.Context, cfg Config, logger ports.Logger) (*ZoneProvider, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation, "failed to load AWS configuration",
			"Check AWS_PROFILE and the shared config files.")
	}
	if awsCfg.Region == "" {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation, "no AWS region configured",
			"Set platform.aws.region or AWS_REGION.")
	}

	plog := logger.WithFields(map[string]any{"platform": ProviderTypeAWS, "region": awsCfg.Region})
	return NewZoneProviderWithClients(
		ec2.NewFromConfig(awsCfg),
		sts.NewFromConfig(awsCfg),
		limiter.New(cfg.RateLimitRPS, plog),
		awsCfg.Region,
		plog,
	), nil
}

// NewZoneProviderWithClients wires explicit clients, mainly for tests.
func NewZoneProviderWithClients(ec2Client EC2ZoneAPI, stsClient STSClientInterface, rl RateLimiter, region string, logger ports.Logger) *ZoneProvider {
	return &ZoneProvider{
		ec2:     ec2Client,
		sts:     stsClient,
		limiter: rl,
		errs:    awserrors.DefaultErrorHandler{},
		region:  region,
		logger:  logger,
	}
}

func (p *ZoneProvider) Type() string { return ProviderTypeAWS }

func (p *ZoneProvider) Region() string { return p.region }

// AvailabilityZones returns the names of available zones, sorted.
func (p *ZoneProvider) AvailabilityZones(ctx context.Context) ([]string, error) {
	p.identityOnce.Do(func() { p.logIdentity(ctx) })

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, p.errs.Handle(ctx, serviceEC2, "DescribeAvailabilityZones", err)
	}
	out, err := p.ec2.DescribeAvailabilityZones(ctx, &ec2.DescribeAvailabilityZonesInput{
		Filters: []ec2types.Filter{{Name: awssdk.String("state"), Values: []string{string(ec2types.AvailabilityZoneStateAvailable)}}},
	})
	if err != nil {
		return nil, p.errs.Handle(ctx, serviceEC2, "DescribeAvailabilityZones", err)
	}

	zones := make([]string, 0, len(out.AvailabilityZones))
	for _, az := range out.AvailabilityZones {
		name := awssdk.ToString(az.ZoneName)
		if name == "" || az.State != ec2types.AvailabilityZoneStateAvailable {
			continue
		}
		if zt := awssdk.ToString(az.ZoneType); zt != "" && zt != zoneTypeAvailabilityZone {
			continue
		}
		zones = append(zones, name)
	}
	sort.Strings(zones)
	p.logger.Debugf(ctx, "Discovered %d availability zone(s)", len(zones))
	return zones, nil
}

// logIdentity records which account zones are read from. Failure is only logged.
func (p *ZoneProvider) logIdentity(ctx context.Context) {
	if err := p.limiter.Wait(ctx); err != nil {
		return
	}
	out, err := p.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		p.logger.Warnf(ctx, "Could not resolve AWS caller identity: %v", p.errs.Handle(ctx, serviceSTS, "GetCallerIdentity", err))
		return
	}
	p.logger.Infof(ctx, "Discovering availability zones for account %s in %s", awssdk.ToString(out.Account), p.region)
}
