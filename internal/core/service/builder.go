package service

import (
	"github.com/olusolaa/infra-board/internal/core/domain"
	"github.com/olusolaa/infra-board/internal/core/ports"
	"github.com/olusolaa/infra-board/internal/deployment"
	"github.com/olusolaa/infra-board/internal/grouping"
	"github.com/olusolaa/infra-board/internal/taxonomy"
	"github.com/olusolaa/infra-board/internal/validation"
)

// BuildBoard composes groupings, badges, aliases and validation states into
// the board for one snapshot. It reads snap without modifying it. Every
// resource gets a card, including those missing from the groupings.
func BuildBoard(snap *domain.Snapshot, states ports.ValidationProvider, findings []domain.Finding) (*domain.Board, error) {
	board := &domain.Board{
		Cards:    make(map[string]domain.Card),
		Findings: findings,
	}
	if snap == nil {
		return board, nil
	}

	fingerprint, err := snap.Fingerprint()
	if err != nil {
		return nil, err
	}
	board.Source = snap.Source
	board.Fingerprint = fingerprint
	board.Deployment = snap.Deployment
	board.Grouped = grouping.Build(snap.Domains, snap.Resources)
	board.Environments = grouping.SortEnvironments(board.Grouped.ByEnvironment.Order)

	domains := grouping.NewDomainIndex(snap.Domains)
	expander := deployment.NewExpander(snap.Deployment)

	for _, r := range snap.Resources {
		if _, exists := board.Cards[r.ID]; exists {
			continue
		}
		card := domain.Card{
			Resource:         r,
			DomainCategory:   domain.CategoryUncategorized,
			TaxonomyCategory: taxonomy.CategoryOf(r.Type),
			IconKey:          string(taxonomy.IconKeyOf(r.Type)),
			Environment:      grouping.EnvironmentOf(r),
			Badge:            deployment.BadgeFor(r, snap.Deployment),
			Aliases:          expander.Expand(r),
			DisplayState:     validation.DisplayStateFor(states, r.ID),
		}
		if d, ok := grouping.ResolveDomain(domains, r.DomainID); ok {
			card.DomainCategory = d.Category
		}
		if state, ok := validation.Lookup(states, r.ID); ok {
			card.Validation = &state
		}
		board.Cards[r.ID] = card
	}
	return board, nil
}
