package usecase

import (
	"time"

	"StockLens/internal/domain/models"
)

// Assemble merges the joined facets and their derived values into a view.
// Slices are copied so the view shares nothing mutable with its inputs.
func Assemble(symbol models.Symbol, f models.Facets, d models.Derived, now time.Time) *models.ViewModel {
	vm := &models.ViewModel{
		Symbol:      symbol,
		GeneratedAt: now,
		Price:       models.Present(f.Price),
		Overview:    f.Overview,
		Financials:  f.Financials,
		News:        f.News,
		Indicators:  f.Indicators,
		Health:      f.Health,
		Derived:     d,
	}
	if f.Price.PreviousClose != nil {
		pc := *f.Price.PreviousClose
		vm.Price.Data.PreviousClose = &pc
	}

	vm.News.Data = cloneSlice(f.News.Data)
	if vm.News.Data == nil {
		vm.News.Data = []models.NewsItem{}
	}
	vm.Health.Data.Reasons = cloneSlice(f.Health.Data.Reasons)

	vm.Derived.News = cloneSlice(d.News)
	vm.Derived.Risks = cloneSlice(d.Risks)
	vm.Derived.Health.Reasons = cloneSlice(d.Health.Reasons)
	vm.Derived.Chart.Points = cloneSlice(d.Chart.Points)
	return vm
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}
