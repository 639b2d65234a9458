package ports

import (
	"context"

	"github.com/olusolaa/infra-board/internal/core/domain"
)

//go:generate mockery --name BoardEngine --output ./mocks --outpkg mocks --case underscore
type BoardEngine interface {
	// Run loads the current snapshot and reports its board. The bool is false
	// when the snapshot was unchanged since the previous run and nothing was
	// reported.
	Run(ctx context.Context) (*domain.Board, bool, error)
}
