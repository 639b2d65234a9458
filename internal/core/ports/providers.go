package ports

import (
	"context"

	"github.com/olusolaa/infra-board/internal/core/domain"
)

//go:generate mockery --name SnapshotProvider --output ./mocks --outpkg mocks --case underscore
type SnapshotProvider interface {
	Type() string
	Load(ctx context.Context) (*domain.Snapshot, error)
}

//go:generate mockery --name ZoneProvider --output ./mocks --outpkg mocks --case underscore
type ZoneProvider interface {
	Type() string
	AvailabilityZones(ctx context.Context) ([]string, error)
}

// ValidationProvider looks up the derived validation state of a resource.
type ValidationProvider interface {
	ValidationState(resourceID string) (domain.ValidationState, bool)
}

// CostEstimator prices the resources of a built board, filling each priced
// card's Cost and the board's summary.
//
//go:generate mockery --name CostEstimator --output ./mocks --outpkg mocks --case underscore
type CostEstimator interface {
	Annotate(ctx context.Context, snap *domain.Snapshot, board *domain.Board) error
}
