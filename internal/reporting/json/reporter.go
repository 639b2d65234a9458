package json

import (
	"context"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/infra-board/internal/core/domain"
	"github.com/olusolaa/infra-board/internal/core/ports"
	"github.com/olusolaa/infra-board/internal/errors"
)

const ReporterTypeJSON = "json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	Compact bool `mapstructure:"compact"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	return NewReporterTo(cfg, os.Stdout, logger), nil
}

func NewReporterTo(cfg Config, w io.Writer, logger ports.Logger) *Reporter {
	return &Reporter{
		config: cfg,
		writer: w,
		logger: logger.WithFields(map[string]any{"component": "json_reporter"}),
	}
}

type jsonReport struct {
	Summary jsonSummary   `json:"summary"`
	Board   *domain.Board `json:"board"`
}

type jsonSummary struct {
	Resources    int `json:"resources"`
	Environments int `json:"environments"`
	Categories   int `json:"categories"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	OK           int `json:"ok"`
	Unvalidated  int `json:"unvalidated"`
	// Set only when costs were estimated.
	MonthlyCost *float64 `json:"monthly_cost,omitempty"`
	Currency    string   `json:"currency,omitempty"`
}

func (r *Reporter) Report(ctx context.Context, board *domain.Board) error {
	if err := ctx.Err(); err != nil {
		r.logger.Warnf(ctx, "JSON report generation cancelled.")
		return err
	}
	if board == nil {
		board = &domain.Board{Cards: map[string]domain.Card{}}
	}

	report := jsonReport{
		Summary: jsonSummary{
			Resources:    len(board.Cards),
			Environments: len(board.Environments),
			Categories:   board.Grouped.ByCategory.Len(),
		},
		Board: board,
	}
	if board.Cost != nil {
		monthly := board.Cost.TotalMonthly
		report.Summary.MonthlyCost = &monthly
		report.Summary.Currency = board.Cost.Currency
	}
	for _, card := range board.Cards {
		switch card.DisplayState {
		case domain.DisplayError:
			report.Summary.Errors++
		case domain.DisplayWarning:
			report.Summary.Warnings++
		case domain.DisplayOk:
			report.Summary.OK++
		default:
			report.Summary.Unvalidated++
		}
	}

	encoder := json.NewEncoder(r.writer)
	if !r.config.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(report); err != nil {
		r.logger.Errorf(ctx, err, "Failed to encode JSON report")
		return errors.Wrap(err, errors.CodeReportError, "failed to encode JSON report")
	}

	r.logger.Debugf(ctx, "JSON report successfully generated.")
	return nil
}
