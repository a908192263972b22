package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"StockLens/internal/domain/models"
	domrepo "StockLens/internal/domain/repository"
	"StockLens/internal/service/derive"
	"StockLens/internal/service/gateway"
	applogger "StockLens/pkg/logger"
	"StockLens/pkg/metrics"
)

// Load outcomes recorded in metrics.
const (
	LoadOK         = "ok"
	LoadPartial    = "partial"
	LoadValidation = "validation"
	LoadNotFound   = "not_found"
	LoadSuperseded = "superseded"
)

// Orchestrator fans out the six facet fetches for a symbol, joins them under
// the price-is-fatal policy, derives and assembles the view, then commits it
// to the session if the load is still current.
type Orchestrator struct {
	fetcher domrepo.FacetFetcher
	deriver *derive.Deriver
	metrics domrepo.Metrics
	l       *applogger.Logger
	now     func() time.Time
}

func NewOrchestrator(fetcher domrepo.FacetFetcher, deriver *derive.Deriver, m domrepo.Metrics, l *applogger.Logger) *Orchestrator {
	if m == nil {
		m = metrics.Noop{}
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &Orchestrator{
		fetcher: fetcher,
		deriver: deriver,
		metrics: m,
		l:       l,
		now:     time.Now,
	}
}

// LoadSymbol runs one full load for sess. It returns a validation or
// not-found *models.LoadError, models.ErrSuperseded when a newer load for
// the same session started first, or the committed view.
func (o *Orchestrator) LoadSymbol(ctx context.Context, sess *Session, raw string) (*models.ViewModel, error) {
	start := time.Now()

	symbol, err := models.NormalizeSymbol(raw)
	if err != nil {
		o.metrics.RecordLoad(LoadValidation, time.Since(start))
		return nil, err
	}

	token := sess.begin(symbol)
	defer sess.finish()

	log := o.l.With(
		applogger.String("session", sess.ID()),
		applogger.String("symbol", symbol.String()),
		applogger.Uint64("token", token),
	)
	log.Debug("load started")

	results := o.fanOut(ctx, symbol)

	facets, lerr := join(symbol, results)
	if lerr != nil {
		if !sess.current(token) {
			return nil, o.superseded(log, symbol, start)
		}
		o.metrics.RecordLoad(LoadNotFound, time.Since(start))
		log.Info("load failed", applogger.Error(lerr))
		return nil, lerr
	}

	now := o.now()
	vm := Assemble(symbol, facets, o.deriver.Derive(facets, now), now)

	if !sess.commit(ctx, token, vm) {
		return nil, o.superseded(log, symbol, start)
	}

	outcome := LoadOK
	if missing := unavailable(vm); len(missing) > 0 {
		outcome = LoadPartial
		log.Warn("load committed with partial data", applogger.Strings("unavailable", missing))
	}
	o.metrics.RecordLoad(outcome, time.Since(start))
	log.Info("load committed",
		applogger.String("outcome", outcome),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return vm, nil
}

func (o *Orchestrator) superseded(log *applogger.Logger, symbol models.Symbol, start time.Time) error {
	o.metrics.RecordLoad(LoadSuperseded, time.Since(start))
	log.Debug("load discarded, superseded")
	return fmt.Errorf("%s: %w", symbol, models.ErrSuperseded)
}

// fanOut starts every facet fetch before waiting on any of them.
func (o *Orchestrator) fanOut(ctx context.Context, symbol models.Symbol) map[models.Facet]models.FacetResult {
	ch := make(chan models.FacetResult, len(models.AllFacets))
	var wg sync.WaitGroup

	for _, facet := range models.AllFacets {
		wg.Add(1)
		go func(facet models.Facet) {
			defer wg.Done()
			ch <- o.fetcher.Fetch(ctx, facet, facet.Path(symbol))
		}(facet)
	}

	go func() { wg.Wait(); close(ch) }()

	results := make(map[models.Facet]models.FacetResult, len(models.AllFacets))
	for r := range ch {
		results[r.Facet] = r
	}
	return results
}

// join applies the asymmetric policy: a failed or undecodable price aborts
// the load, every other facet degrades to an unavailable section.
func join(symbol models.Symbol, results map[models.Facet]models.FacetResult) (models.Facets, error) {
	var f models.Facets

	price := resultFor(results, models.FacetPrice)
	if price.Err != nil {
		return f, models.ClassifyFacetError(symbol, price.Err)
	}
	quote, err := gateway.DecodePrice(symbol, price.Payload)
	if err != nil {
		return f, &models.LoadError{Kind: models.KindNotFound, Facet: models.FacetPrice, Symbol: symbol, Err: err}
	}
	f.Price = quote

	f.Overview = section(symbol, resultFor(results, models.FacetOverview), gateway.DecodeOverview)
	f.Financials = section(symbol, resultFor(results, models.FacetFinancials), gateway.DecodeFinancials)
	f.News = section(symbol, resultFor(results, models.FacetNews), gateway.DecodeNews)
	f.Indicators = section(symbol, resultFor(results, models.FacetIndicators), gateway.DecodeIndicators)
	f.Health = section(symbol, resultFor(results, models.FacetHealthScore), gateway.DecodeHealth)
	return f, nil
}

func resultFor(results map[models.Facet]models.FacetResult, facet models.Facet) models.FacetResult {
	if r, ok := results[facet]; ok {
		return r
	}
	return models.FacetResult{
		Facet: facet,
		Err:   &models.FacetError{Facet: facet, Message: "no result"},
	}
}

func section[T any](symbol models.Symbol, r models.FacetResult, decode func(json.RawMessage) (T, error)) models.Section[T] {
	if r.Err != nil {
		return models.Unavailable[T](models.ClassifyFacetError(symbol, r.Err))
	}
	v, err := decode(r.Payload)
	if err != nil {
		return models.Unavailable[T](&models.LoadError{
			Kind:   models.KindPartialData,
			Facet:  r.Facet,
			Symbol: symbol,
			Err:    err,
		})
	}
	return models.Present(v)
}

func unavailable(vm *models.ViewModel) []string {
	available := map[models.Facet]bool{
		models.FacetPrice:       vm.Price.Available,
		models.FacetOverview:    vm.Overview.Available,
		models.FacetFinancials:  vm.Financials.Available,
		models.FacetNews:        vm.News.Available,
		models.FacetIndicators:  vm.Indicators.Available,
		models.FacetHealthScore: vm.Health.Available,
	}
	var out []string
	for _, facet := range models.AllFacets {
		if !available[facet] {
			out = append(out, string(facet))
		}
	}
	return out
}

// IsSuperseded reports whether err came from a load that lost to a newer one.
func IsSuperseded(err error) bool {
	return errors.Is(err, models.ErrSuperseded)
}
