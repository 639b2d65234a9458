package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/infra-board/internal/core/domain"
	"github.com/olusolaa/infra-board/internal/log"
	"github.com/olusolaa/infra-board/internal/validation"
)

func boardSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Source: "project:test.yaml",
		Deployment: domain.DeploymentConfig{
			PrimaryRegion:     "us-east-1",
			AvailabilityZones: []string{"us-east-1a", "us-east-1b", "us-east-1c"},
		},
		Domains: []domain.Domain{
			{ID: "net", Name: "network", Category: domain.CategoryNetworking, ResourceIDs: []string{"vpc", "nat"}},
			{ID: "data", Name: "data", Category: domain.CategoryData, ResourceIDs: []string{"db"}},
		},
		Resources: []domain.Resource{
			{ID: "vpc", Type: "aws_vpc", Name: "main", DomainID: "net",
				Arguments: map[string]any{"tags": map[string]any{"Environment": "prod"}}},
			{ID: "nat", Type: "aws_nat_gateway", Name: "nat", DomainID: "net",
				Arguments:  map[string]any{"tags": map[string]any{"Environment": "dev"}},
				Deployment: &domain.DeploymentDescriptor{Strategy: domain.StrategyPerAZ}},
			{ID: "db", Type: "aws_db_instance", Name: "primary", DomainID: "data",
				Deployment: &domain.DeploymentDescriptor{Strategy: domain.StrategyMultiAZ}},
			{ID: "stray", Type: "aws_widget", Name: "stray", DomainID: "gone"},
		},
	}
}

func TestBuildBoard(t *testing.T) {
	snap := boardSnapshot()
	results := validation.NewDefaultEngine(log.NewNop()).Validate(context.Background(), snap)

	board, err := BuildBoard(snap, results, results.Findings())
	require.NoError(t, err)

	assert.Equal(t, "project:test.yaml", board.Source)
	assert.Len(t, board.Fingerprint, 64)
	assert.Equal(t, []domain.Environment{"dev", "prod", domain.EnvironmentUnknown}, board.Environments)
	assert.Equal(t, []domain.Category{domain.CategoryNetworking, domain.CategoryData}, board.Grouped.ByCategory.Order)
	require.Len(t, board.Cards, 4)

	nat := board.Cards["nat"]
	assert.Equal(t, "3×", nat.Badge.Label)
	assert.Equal(t, 3, nat.Badge.ReplicaCount)
	assert.Len(t, nat.Aliases, 3)
	assert.Equal(t, domain.EnvironmentDev, nat.Environment)
	assert.Equal(t, domain.CategoryNetworking, nat.DomainCategory)
	assert.Equal(t, "gateway", nat.IconKey)
	assert.Equal(t, domain.DisplayOk, nat.DisplayState)

	db := board.Cards["db"]
	assert.Equal(t, "Multi-AZ", db.Badge.Label)
	assert.True(t, db.Badge.IsSymbolic())
	assert.Equal(t, domain.EnvironmentUnknown, db.Environment)

	stray := board.Cards["stray"]
	assert.Equal(t, domain.CategoryUncategorized, stray.DomainCategory)
	assert.Equal(t, domain.CategoryUncategorized, stray.TaxonomyCategory)
	assert.Equal(t, "box", stray.IconKey)
	assert.Equal(t, domain.DisplayError, stray.DisplayState)
	require.NotNil(t, stray.Validation)
	assert.False(t, stray.Validation.IsValid)
	assert.NotEmpty(t, board.Findings)
}

func TestBuildBoard_WithoutValidation(t *testing.T) {
	board, err := BuildBoard(boardSnapshot(), nil, nil)
	require.NoError(t, err)

	for id, card := range board.Cards {
		assert.Equal(t, domain.DisplayNeutral, card.DisplayState, id)
		assert.Nil(t, card.Validation, id)
	}
}

type failingStates struct{}

func (failingStates) ValidationState(string) (domain.ValidationState, bool) {
	panic("validation store unavailable")
}

func TestBuildBoard_FailingValidationProvider(t *testing.T) {
	var board *domain.Board
	require.NotPanics(t, func() {
		var err error
		board, err = BuildBoard(boardSnapshot(), failingStates{}, nil)
		require.NoError(t, err)
	})

	require.Len(t, board.Cards, 4)
	for id, card := range board.Cards {
		assert.Equal(t, domain.DisplayNeutral, card.DisplayState, id)
		assert.Nil(t, card.Validation, id)
	}
}

func TestBuildBoard_NilSnapshot(t *testing.T) {
	board, err := BuildBoard(nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, board.Cards)
}

func TestBuildBoard_DoesNotMutateSnapshot(t *testing.T) {
	snap := boardSnapshot()
	before := snap.Clone()

	_, err := BuildBoard(snap, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, before, snap)
}
