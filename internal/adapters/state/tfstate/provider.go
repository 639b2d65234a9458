package tfstate

import (
	"context"
	"fmt"

	"github.com/olusolaa/infra-board/internal/adapters/state/mapping"
	"github.com/olusolaa/infra-board/internal/core/domain"
	"github.com/olusolaa/infra-board/internal/core/ports"
	"github.com/olusolaa/infra-board/internal/errors"
)

const ProviderTypeTFState = "tfstate"

// Provider reads a Terraform state file as a snapshot store.
type Provider struct {
	filePath string
	region   string
	parser   *stateParser
	logger   ports.Logger
}

type Config struct {
	FilePath string `mapstructure:"path" validate:"required"`
	// Region labels the snapshot's primary region; state files do not record it.
	Region string `mapstructure:"region"`
}

func NewProvider(cfg Config, logger ports.Logger) (*Provider, error) {
	if cfg.FilePath == "" {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			"tfstate store requires a file path", "Set store.path to a terraform.tfstate file.")
	}

	plog := logger.WithFields(map[string]any{
		"store":      ProviderTypeTFState,
		"state_file": cfg.FilePath,
	})

	return &Provider{
		filePath: cfg.FilePath,
		region:   cfg.Region,
		parser:   newStateParser(cfg.FilePath, plog),
		logger:   plog,
	}, nil
}

func (p *Provider) Type() string { return ProviderTypeTFState }

func (p *Provider) Path() string { return p.filePath }

// Load maps every managed resource instance. Deployment zones are the
// distinct availability_zone attributes found in the state.
func (p *Provider) Load(ctx context.Context) (*domain.Snapshot, error) {
	state, err := p.parser.parseAndCache(ctx)
	if err != nil {
		return nil, err
	}

	b := mapping.NewSnapshotBuilder()
	switch {
	case state.show != nil:
		err = mapShowState(state.show, b)
	default:
		err = mapRawState(state.raw, b, p.logger)
	}
	if err != nil {
		return nil, err
	}

	snap := b.Build(fmt.Sprintf("%s:%s", ProviderTypeTFState, p.filePath), domain.DeploymentConfig{
		PrimaryRegion: p.region,
	})
	snap.Deployment.AvailabilityZones = mapping.ZonesOf(snap.Resources)
	p.logger.Infof(ctx, "Loaded %d resources in %d domains from state", len(snap.Resources), len(snap.Domains))
	return snap, nil
}
