package repository

import (
	"context"
	"time"

	"StockLens/internal/domain/models"
)

// FacetFetcher performs one backend GET. Implementations never return a Go
// error: every failure is carried inside the FacetResult.
type FacetFetcher interface {
	Fetch(ctx context.Context, facet models.Facet, path string) models.FacetResult
}

// Presenter receives each committed view-model. Presenters must not mutate it.
type Presenter interface {
	Present(ctx context.Context, vm *models.ViewModel) error
}

// ThemeStore persists the light/dark preference per session.
type ThemeStore interface {
	GetTheme(ctx context.Context, session string) (Theme, error)
	SetTheme(ctx context.Context, session string, theme Theme) error
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Metrics records gateway and orchestrator outcomes.
type Metrics interface {
	RecordFacet(facet models.Facet, outcome string, d time.Duration)
	RecordLoad(outcome string, d time.Duration)
}
