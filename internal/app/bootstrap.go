package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/olusolaa/infra-board/internal/adapters/platform/aws"
	"github.com/olusolaa/infra-board/internal/adapters/platform/static"
	"github.com/olusolaa/infra-board/internal/adapters/state/project"
	"github.com/olusolaa/infra-board/internal/adapters/state/tfhcl"
	"github.com/olusolaa/infra-board/internal/adapters/state/tfstate"
	"github.com/olusolaa/infra-board/internal/config"
	"github.com/olusolaa/infra-board/internal/core/ports"
	"github.com/olusolaa/infra-board/internal/core/service"
	"github.com/olusolaa/infra-board/internal/cost"
	"github.com/olusolaa/infra-board/internal/errors"
	"github.com/olusolaa/infra-board/internal/log"
	jsonreporter "github.com/olusolaa/infra-board/internal/reporting/json"
	"github.com/olusolaa/infra-board/internal/reporting/text"
	"github.com/olusolaa/infra-board/internal/validation"
)

type options struct {
	output    io.Writer
	logOutput io.Writer
	zones     ports.ZoneProvider
}

type Option func(*options)

// WithOutput sends reports to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}

// WithLogOutput sends logs to w instead of stderr.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOutput = w }
}

// WithZoneProvider replaces the configured zone provider.
func WithZoneProvider(zp ports.ZoneProvider) Option {
	return func(o *options) { o.zones = zp }
}

func BuildApplicationFromViper(ctx context.Context, v *viper.Viper, opts ...Option) (*Application, error) {
	o := &options{logOutput: os.Stderr}
	for _, opt := range opts {
		opt(o)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	logger, err := log.NewLoggerTo(cfg.Log, o.logOutput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		return nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	logger.Debugf(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Log.Level, cfg.Log.Format)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	} else {
		logger.Debugf(ctx, "No configuration file found, using defaults/env/flags.")
	}

	applyCLIOverrides(ctx, cfg, v, logger)

	if err := cfg.Validate(ctx); err != nil {
		logger.Errorf(ctx, err, "Configuration validation failed")
		return nil, err
	}
	logger.Debugf(ctx, "Configuration validated successfully")

	return buildApplication(ctx, cfg, logger, o)
}

func buildApplication(ctx context.Context, cfg *config.Config, logger ports.Logger, o *options) (*Application, error) {
	registry := service.NewComponentRegistry()

	snapshots, err := newSnapshotProvider(ctx, cfg.Store, logger)
	if err != nil {
		return nil, err
	}
	if err := registry.RegisterSnapshotProvider(snapshots); err != nil {
		return nil, err
	}

	zones := o.zones
	if zones == nil {
		zones, err = newZoneProvider(ctx, cfg.Platform, logger)
		if err != nil {
			return nil, err
		}
	}
	if zones != nil {
		if err := registry.RegisterZoneProvider(zones); err != nil {
			return nil, err
		}
	}

	if err := registerReporters(ctx, registry, cfg.Output, o.output, logger); err != nil {
		return nil, err
	}
	reporter, err := registry.GetReporter(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	validator := validation.NewDefaultEngine(logger)

	var engineOpts []service.Option
	if cfg.Cost.Enabled {
		logger.Debugf(ctx, "Estimating costs for %s under %s in %s", cfg.Cost.StackType, cfg.Cost.Scenario, cfg.Cost.Currency)
		engineOpts = append(engineOpts, service.WithCostEstimator(cost.NewEstimator(cfg.Cost, logger)))
	}

	logger.Debugf(ctx, "Initializing board engine")
	engine, err := service.NewBoardEngine(snapshots, zones, reporter, validator, logger, engineOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize board engine")
	}

	logger.Debugf(ctx, "Application bootstrap complete")
	return NewApplication(engine, logger, cfg), nil
}

func newSnapshotProvider(ctx context.Context, store config.StoreConfig, logger ports.Logger) (ports.SnapshotProvider, error) {
	provLog := logger.WithFields(map[string]any{"store": store.Type})
	var (
		provider ports.SnapshotProvider
		err      error
	)
	switch store.Type {
	case project.ProviderTypeProject:
		provider, err = project.NewProvider(store.Project(), provLog)
	case tfstate.ProviderTypeTFState:
		provider, err = tfstate.NewProvider(store.TFState(), provLog)
	case tfhcl.ProviderTypeTFHCL:
		provider, err = tfhcl.NewProvider(store.TFHCL(), provLog)
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("invalid store type: %s", store.Type), "Supported: project, tfstate, tfhcl")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigValidation, fmt.Sprintf("failed to initialize %s store", store.Type))
	}
	provLog.Infof(ctx, "Using %s store: %s", store.Type, store.Path)
	return provider, nil
}

// newZoneProvider prefers AWS discovery when enabled and falls back to the
// static list. It returns nil when neither is configured.
func newZoneProvider(ctx context.Context, platform config.PlatformConfig, logger ports.Logger) (ports.ZoneProvider, error) {
	if platform.AWS.Enabled {
		zp, err := aws.NewZoneProvider(ctx, platform.AWS, logger)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeConfigValidation, "failed to initialize AWS zone provider")
		}
		logger.Infof(ctx, "Using AWS zone discovery")
		return zp, nil
	}
	if len(platform.Static.Zones) > 0 {
		logger.Debugf(ctx, "Using %d static availability zones", len(platform.Static.Zones))
		return static.NewZoneProvider(platform.Static, logger), nil
	}
	logger.Debugf(ctx, "No zone provider configured; using zones from the store only")
	return nil, nil
}

func registerReporters(ctx context.Context, registry *service.ComponentRegistry, out config.OutputConfig, w io.Writer, logger ports.Logger) error {
	reportLog := logger.WithFields(map[string]any{"component": "reporter"})

	var (
		textReporter *text.Reporter
		jsonReporter *jsonreporter.Reporter
		err          error
	)
	if w != nil {
		textReporter = text.NewReporterTo(out.Text, w, reportLog)
		jsonReporter = jsonreporter.NewReporterTo(out.JSON, w, reportLog)
	} else {
		if textReporter, err = text.NewReporter(out.Text, reportLog); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "failed to initialize Text reporter")
		}
		if jsonReporter, err = jsonreporter.NewReporter(out.JSON, reportLog); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "failed to initialize JSON reporter")
		}
	}

	if err := registry.RegisterReporter(text.ReporterTypeText, textReporter); err != nil {
		return err
	}
	if err := registry.RegisterReporter(jsonreporter.ReporterTypeJSON, jsonReporter); err != nil {
		return err
	}
	reportLog.Debugf(ctx, "Using %s reporter", out.Format)
	return nil
}
