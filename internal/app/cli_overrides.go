package app

import (
	"context"
	"strings"

	"github.com/spf13/viper"

	"github.com/olusolaa/infra-board/internal/config"
	"github.com/olusolaa/infra-board/internal/core/ports"
)

// Keys set by command-line flags that need more than a plain viper binding.
const (
	KeyZonesOverride    = "zones"
	KeyVarFilesOverride = "var_files"
)

func applyCLIOverrides(ctx context.Context, cfg *config.Config, v *viper.Viper, logger ports.Logger) {
	if raw := v.GetString(KeyZonesOverride); raw != "" {
		if zones := parseList(raw); zones != nil {
			logger.Debugf(ctx, "Applying zone override from command line: %v", zones)
			cfg.Platform.Static.Zones = zones
			if cfg.Platform.AWS.Enabled {
				logger.Warnf(ctx, "Zone override given; disabling AWS zone discovery")
				cfg.Platform.AWS.Enabled = false
			}
		}
	}
	if raw := v.GetString(KeyVarFilesOverride); raw != "" {
		if files := parseList(raw); files != nil {
			logger.Debugf(ctx, "Applying var file override from command line: %v", files)
			cfg.Store.VarFiles = files
		}
	}
}

// parseList splits a comma separated flag value, dropping blanks and
// duplicates. Order is preserved for var files, which apply in sequence.
func parseList(override string) []string {
	if override == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var parsed []string
	for _, item := range strings.Split(override, ",") {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		parsed = append(parsed, trimmed)
	}
	return parsed
}
