package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/infra-board/internal/errors"
	"github.com/olusolaa/infra-board/internal/log"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate(context.Background()))
	assert.Equal(t, "project", cfg.Store.Type)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, DefaultWatchDebounce, cfg.Watch.Debounce)
	assert.False(t, cfg.Cost.Enabled)
	assert.Equal(t, "idle", cfg.Cost.Scenario)
	assert.Equal(t, "USD", cfg.Cost.Currency)
}

func TestLoad_FromFile(t *testing.T) {
	v := NewViper()
	v.SetConfigFile("testdata/board.yaml")
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate(context.Background()))

	assert.Equal(t, "tfhcl", cfg.Store.Type)
	assert.Equal(t, []string{"prod.tfvars"}, cfg.Store.VarFiles)
	assert.True(t, cfg.Platform.AWS.Enabled)
	assert.Equal(t, "eu-west-1", cfg.Platform.AWS.Region)
	assert.Equal(t, 5, cfg.Platform.AWS.RateLimitRPS)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.JSON.Compact)
	assert.Equal(t, log.LevelDebug, cfg.Log.Level)
	assert.Equal(t, log.FormatText, cfg.Log.Format)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
	assert.True(t, cfg.Cost.Enabled)
	assert.Equal(t, "100_users", cfg.Cost.Scenario)
	assert.Equal(t, "serverless-api", cfg.Cost.StackType)
	assert.Equal(t, "EUR", cfg.Cost.Currency)

	hcl := cfg.Store.TFHCL()
	assert.Equal(t, "./infra", hcl.Directory)
	assert.Equal(t, []string{"prod.tfvars"}, hcl.VarFiles)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("BOARD_STORE_TYPE", "tfstate")
	t.Setenv("BOARD_STORE_PATH", "prod.tfstate")
	t.Setenv("BOARD_STORE_REGION", "us-west-2")
	t.Setenv("BOARD_OUTPUT_TEXT_NO_COLOR", "true")
	t.Setenv("BOARD_COST_STACK_TYPE", "static-website")

	cfg, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, "tfstate", cfg.Store.Type)
	assert.True(t, cfg.Output.Text.NoColor)
	assert.Equal(t, "static-website", cfg.Cost.StackType)
	st := cfg.Store.TFState()
	assert.Equal(t, "prod.tfstate", st.FilePath)
	assert.Equal(t, "us-west-2", st.Region)
}

func TestLoad_TypeMismatch(t *testing.T) {
	v := NewViper()
	v.Set("platform.aws.rate_limit_rps", "fast")

	_, err := Load(v)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeConfigParseError))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown store", func(c *Config) { c.Store.Type = "consul" }, "Config.Store.Type"},
		{"missing path", func(c *Config) { c.Store.Path = "" }, "Config.Store.Path"},
		{"var files outside hcl", func(c *Config) { c.Store.VarFiles = []string{"a.tfvars"} }, "Config.Store.VarFiles"},
		{"unknown format", func(c *Config) { c.Output.Format = "html" }, "Config.Output.Format"},
		{"rate limit too high", func(c *Config) { c.Platform.AWS.RateLimitRPS = 500 }, "Config.Platform.AWS.RateLimitRPS"},
		{"blank static zone", func(c *Config) { c.Platform.Static.Zones = []string{"us-east-1a", ""} }, "Config.Platform.Static.Zones[1]"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "Config.Log.Level"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, "Config.Watch.Debounce"},
		{"unknown scenario", func(c *Config) { c.Cost.Scenario = "peak" }, "Config.Cost.Scenario"},
		{"unknown currency", func(c *Config) { c.Cost.Currency = "CHF" }, "Config.Cost.Currency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.CodeConfigValidation))
			msg, suggestion, ok := errors.GetUserFacingMessage(err)
			require.True(t, ok)
			assert.Contains(t, msg, tt.field)
			assert.NotEmpty(t, suggestion)
		})
	}
}

func TestValidate_VarFilesForHCL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.Type = "tfhcl"
	cfg.Store.VarFiles = []string{"prod.tfvars"}
	assert.NoError(t, cfg.Validate(context.Background()))
}
