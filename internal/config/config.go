package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/olusolaa/infra-board/internal/adapters/platform/aws"
	"github.com/olusolaa/infra-board/internal/adapters/platform/static"
	"github.com/olusolaa/infra-board/internal/adapters/state/project"
	"github.com/olusolaa/infra-board/internal/adapters/state/tfhcl"
	"github.com/olusolaa/infra-board/internal/adapters/state/tfstate"
	"github.com/olusolaa/infra-board/internal/cost"
	"github.com/olusolaa/infra-board/internal/errors"
	"github.com/olusolaa/infra-board/internal/log"
	jsonreporter "github.com/olusolaa/infra-board/internal/reporting/json"
	"github.com/olusolaa/infra-board/internal/reporting/text"
)

const (
	FileName  = ".infra-board"
	EnvPrefix = "BOARD"

	DefaultWatchDebounce = 500 * time.Millisecond
)

type Config struct {
	Store    StoreConfig    `mapstructure:"store"`
	Platform PlatformConfig `mapstructure:"platform"`
	Output   OutputConfig   `mapstructure:"output"`
	Log      log.Config     `mapstructure:"log"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Cost     cost.Config    `mapstructure:"cost"`
}

type StoreConfig struct {
	Type string `mapstructure:"type" validate:"required,oneof=project tfstate tfhcl"`
	Path string `mapstructure:"path" validate:"required"`
	// VarFiles only apply to HCL directories.
	VarFiles []string `mapstructure:"var_files" validate:"excluded_unless=Type tfhcl,dive,required"`
	Region   string   `mapstructure:"region"`
}

type PlatformConfig struct {
	AWS    aws.Config    `mapstructure:"aws"`
	Static static.Config `mapstructure:"static"`
}

type OutputConfig struct {
	Format string              `mapstructure:"format" validate:"required,oneof=text json"`
	Text   text.Config         `mapstructure:"text"`
	JSON   jsonreporter.Config `mapstructure:"json"`
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" validate:"min=0"`
}

func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Type: project.ProviderTypeProject,
			Path: "infra-board.yaml",
		},
		Platform: PlatformConfig{
			AWS: aws.Config{RateLimitRPS: 20},
		},
		Output: OutputConfig{
			Format: text.ReporterTypeText,
		},
		Log:   log.DefaultConfig(),
		Watch: WatchConfig{Debounce: DefaultWatchDebounce},
		Cost:  cost.DefaultConfig(),
	}
}

// SetDefaults registers every key with v so environment variables are seen
// by Unmarshal even when no config file mentions them.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("store.type", d.Store.Type)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("store.var_files", d.Store.VarFiles)
	v.SetDefault("store.region", d.Store.Region)
	v.SetDefault("platform.aws.enabled", d.Platform.AWS.Enabled)
	v.SetDefault("platform.aws.region", d.Platform.AWS.Region)
	v.SetDefault("platform.aws.profile", d.Platform.AWS.Profile)
	v.SetDefault("platform.aws.rate_limit_rps", d.Platform.AWS.RateLimitRPS)
	v.SetDefault("platform.static.zones", d.Platform.Static.Zones)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.text.no_color", d.Output.Text.NoColor)
	v.SetDefault("output.text.show_aliases", d.Output.Text.ShowAliases)
	v.SetDefault("output.json.compact", d.Output.JSON.Compact)
	v.SetDefault("log.level", string(d.Log.Level))
	v.SetDefault("log.format", string(d.Log.Format))
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("cost.enabled", d.Cost.Enabled)
	v.SetDefault("cost.scenario", d.Cost.Scenario)
	v.SetDefault("cost.stack_type", d.Cost.StackType)
	v.SetDefault("cost.currency", d.Cost.Currency)
}

// NewViper returns a viper instance with defaults and the BOARD_ environment
// binding in place.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func Load(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigParseError,
			"failed to unmarshal configuration", "Check the types of the values in your configuration file.")
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate(ctx context.Context) error {
	err := validate.StructCtx(ctx, c)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(err, errors.CodeConfigValidation, "configuration validation failed")
	}
	var details strings.Builder
	details.WriteString("Configuration validation failed:")
	for _, fe := range validationErrors {
		details.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.NewUserFacing(errors.CodeConfigValidation, details.String(), "Please check your configuration file or flags.")
}

func (s StoreConfig) TFState() tfstate.Config {
	return tfstate.Config{FilePath: s.Path, Region: s.Region}
}

func (s StoreConfig) TFHCL() tfhcl.Config {
	return tfhcl.Config{Directory: s.Path, VarFiles: s.VarFiles}
}

func (s StoreConfig) Project() project.Config {
	return project.Config{FilePath: s.Path}
}
