package ports

import (
	"context"

	"github.com/olusolaa/infra-board/internal/core/domain"
)

//go:generate mockery --name Reporter --output ./mocks --outpkg mocks --case underscore
type Reporter interface {
	Report(ctx context.Context, board *domain.Board) error
}
