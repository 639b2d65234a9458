package service

import (
	"context"
	"sync"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"github.com/olusolaa/infra-board/internal/core/domain"
	"github.com/olusolaa/infra-board/internal/core/ports"
	"github.com/olusolaa/infra-board/internal/errors"
	"github.com/olusolaa/infra-board/internal/validation"
	"github.com/olusolaa/infra-board/pkg/compare"
)

// BoardEngine loads a snapshot, builds its board and reports it. It keeps
// the last snapshot and skips rebuilding when nothing changed.
type BoardEngine struct {
	snapshots ports.SnapshotProvider
	zones     ports.ZoneProvider
	reporter  ports.Reporter
	validator *validation.Engine
	estimator ports.CostEstimator
	logger    ports.Logger

	mu        sync.Mutex
	last      *domain.Snapshot
	lastBoard *domain.Board
}

var _ ports.BoardEngine = (*BoardEngine)(nil)

// Option configures optional engine collaborators.
type Option func(*BoardEngine)

// WithCostEstimator prices every built board before it is reported.
func WithCostEstimator(estimator ports.CostEstimator) Option {
	return func(e *BoardEngine) {
		e.estimator = estimator
	}
}

// NewBoardEngine wires the engine. zones may be nil, in which case only the
// zones carried by the snapshot are used.
func NewBoardEngine(
	snapshots ports.SnapshotProvider,
	zones ports.ZoneProvider,
	reporter ports.Reporter,
	validator *validation.Engine,
	logger ports.Logger,
	opts ...Option,
) (*BoardEngine, error) {
	if snapshots == nil {
		return nil, errors.New(errors.CodeConfigValidation, "snapshot provider cannot be nil")
	}
	if reporter == nil {
		return nil, errors.New(errors.CodeConfigValidation, "reporter cannot be nil")
	}
	if validator == nil {
		return nil, errors.New(errors.CodeConfigValidation, "validation engine cannot be nil")
	}
	e := &BoardEngine{
		snapshots: snapshots,
		zones:     zones,
		reporter:  reporter,
		validator: validator,
		logger:    logger.WithFields(map[string]any{"component": "engine"}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *BoardEngine) Run(ctx context.Context) (*domain.Board, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, zones, err := e.load(ctx)
	if err != nil {
		return nil, false, err
	}

	snap = snap.Clone()
	if len(snap.Deployment.AvailabilityZones) == 0 && len(zones) > 0 {
		e.logger.Debugf(ctx, "Using %d availability zones from %s", len(zones), e.zones.Type())
		snap.Deployment.AvailabilityZones = zones
	}

	if e.last != nil && cmp.Equal(e.last, snap) {
		e.logger.Debugf(ctx, "Snapshot unchanged, skipping rebuild")
		return e.lastBoard, false, nil
	}
	if e.last != nil {
		if equal, diff := compare.Sets(resourceIDs(e.last), resourceIDs(snap)); !equal {
			e.logger.Infof(ctx, "Resources changed: %s", diff)
		} else {
			e.logger.Infof(ctx, "Resource arguments changed")
		}
	}

	results := e.validator.Validate(ctx, snap)
	board, err := BuildBoard(snap, results, results.Findings())
	if err != nil {
		return nil, false, errors.Wrap(err, errors.CodeInternal, "failed to build board")
	}
	e.logger.Infof(ctx, "Built board for %d resources in %d environments (%d errors, %d warnings)",
		len(board.Cards), len(board.Environments), results.ErrorCount(), results.WarningCount())

	if e.estimator != nil {
		if err := e.estimator.Annotate(ctx, snap, board); err != nil {
			return nil, false, errors.Wrap(err, errors.CodeInternal, "failed to estimate costs")
		}
	}

	if err := e.reporter.Report(ctx, board); err != nil {
		return nil, false, errors.Wrap(err, errors.CodeReportError, "failed to generate report")
	}

	e.last = snap
	e.lastBoard = board
	return board, true, nil
}

// load fetches the snapshot and the zone list concurrently. Zone discovery
// failures are logged and leave the zone list empty.
func (e *BoardEngine) load(ctx context.Context) (*domain.Snapshot, []string, error) {
	var (
		snap  *domain.Snapshot
		zones []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e.logger.Debugf(gctx, "Loading snapshot from %s store", e.snapshots.Type())
		s, err := e.snapshots.Load(gctx)
		if err != nil {
			return errors.Wrap(err, errors.CodeStoreReadError, "failed to load snapshot")
		}
		if s == nil {
			return errors.New(errors.CodeStoreInvalid, "store returned no snapshot")
		}
		snap = s
		return nil
	})
	if e.zones != nil {
		g.Go(func() error {
			z, err := e.zones.AvailabilityZones(gctx)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				e.logger.Warnf(gctx, "Zone discovery via %s failed, continuing without it: %v", e.zones.Type(), err)
				return nil
			}
			zones = z
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return snap, zones, nil
}

func resourceIDs(snap *domain.Snapshot) []string {
	ids := make([]string, len(snap.Resources))
	for i, r := range snap.Resources {
		ids[i] = r.ID
	}
	return ids
}
