package static

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/infra-board/internal/log"
)

func TestZoneProvider_AvailabilityZones(t *testing.T) {
	p := NewZoneProvider(Config{Zones: []string{"us-east-1b", " us-east-1a ", "", "us-east-1b"}}, log.NewNop())
	assert.Equal(t, ProviderTypeStatic, p.Type())

	zones, err := p.AvailabilityZones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"us-east-1a", "us-east-1b"}, zones)

	zones[0] = "mutated"
	again, err := p.AvailabilityZones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "us-east-1a", again[0])
}

func TestZoneProvider_Empty(t *testing.T) {
	zones, err := NewZoneProvider(Config{}, log.NewNop()).AvailabilityZones(context.Background())
	require.NoError(t, err)
	assert.Empty(t, zones)
}

func TestZoneProvider_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewZoneProvider(Config{Zones: []string{"a"}}, log.NewNop()).AvailabilityZones(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
