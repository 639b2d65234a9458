// Package static serves availability zones listed in configuration.
package static

import (
	"context"
	"sort"
	"strings"

	"github.com/olusolaa/infra-board/internal/core/ports"
)

const ProviderTypeStatic = "static"

type Config struct {
	Zones []string `mapstructure:"zones" validate:"dive,required"`
}

type ZoneProvider struct {
	zones  []string
	logger ports.Logger
}

// NewZoneProvider trims, de-duplicates and sorts the configured zones.
func NewZoneProvider(cfg Config, logger ports.Logger) *ZoneProvider {
	seen := make(map[string]struct{}, len(cfg.Zones))
	zones := make([]string, 0, len(cfg.Zones))
	for _, z := range cfg.Zones {
		z = strings.TrimSpace(z)
		if z == "" {
			continue
		}
		if _, dup := seen[z]; dup {
			continue
		}
		seen[z] = struct{}{}
		zones = append(zones, z)
	}
	sort.Strings(zones)
	return &ZoneProvider{
		zones:  zones,
		logger: logger.WithFields(map[string]any{"platform": ProviderTypeStatic}),
	}
}

func (p *ZoneProvider) Type() string { return ProviderTypeStatic }

func (p *ZoneProvider) AvailabilityZones(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.logger.Debugf(ctx, "Serving %d configured availability zone(s)", len(p.zones))
	return append([]string(nil), p.zones...), nil
}
