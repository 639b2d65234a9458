package limiter

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/olusolaa/infra-board/internal/core/ports"
)

const (
	DefaultRPS = 20
	MinRPS     = 1
	MaxRPS     = 100
)

// Limiter throttles AWS API calls with a token bucket whose burst equals
// the per-second rate.
type Limiter struct {
	limiter *rate.Limiter
	rps     int
	logger  ports.Logger
}

// New falls back to DefaultRPS when rps is zero or outside [MinRPS, MaxRPS].
func New(rps int, logger ports.Logger) *Limiter {
	limitValue := DefaultRPS
	if rps >= MinRPS && rps <= MaxRPS {
		limitValue = rps
	} else if rps != 0 {
		logger.Warnf(nil, "Invalid AWS API RPS configured (%d), using default %d RPS. Valid range: %d-%d.", rps, DefaultRPS, MinRPS, MaxRPS)
	}
	logger.Debugf(nil, "Initialized AWS API rate limiter: %d RPS", limitValue)
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(limitValue), limitValue),
		rps:     limitValue,
		logger:  logger,
	}
}

func (l *Limiter) RPS() int { return l.rps }

func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		if ctx.Err() == nil {
			l.logger.Warnf(ctx, "Error waiting for AWS API rate limiter: %v", err)
		}
		return err
	}
	return nil
}
