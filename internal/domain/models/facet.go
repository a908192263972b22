package models

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Symbol is a normalized ticker: trimmed, upper-cased, never empty once
// returned by NormalizeSymbol.
type Symbol string

// NormalizeSymbol trims and upper-cases raw input.
func NormalizeSymbol(raw string) (Symbol, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return "", &LoadError{Kind: KindValidation, Err: ErrEmptySymbol}
	}
	return Symbol(s), nil
}

func (s Symbol) String() string { return string(s) }

// Facet names one independently fetched data category.
type Facet string

const (
	FacetPrice       Facet = "price"
	FacetOverview    Facet = "overview"
	FacetFinancials  Facet = "financials"
	FacetNews        Facet = "news"
	FacetIndicators  Facet = "indicators"
	FacetHealthScore Facet = "health-score"
)

// AllFacets is the fixed fan-out set, price first.
var AllFacets = []Facet{
	FacetPrice,
	FacetOverview,
	FacetFinancials,
	FacetNews,
	FacetIndicators,
	FacetHealthScore,
}

// Path returns the backend path for this facet and symbol.
func (f Facet) Path(s Symbol) string {
	return fmt.Sprintf("/api/%s/%s", f, url.PathEscape(string(s)))
}

// Fatal reports whether a failure of this facet aborts the whole load.
func (f Facet) Fatal() bool { return f == FacetPrice }

// FacetError describes why one facet could not be used. Status is zero for
// transport and parse failures.
type FacetError struct {
	Facet   Facet  `json:"facet"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
}

func (e *FacetError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Facet, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Facet, e.Message)
}

// Transport reports a failure that never produced an HTTP status.
func (e *FacetError) Transport() bool { return e.Status == 0 }

// FacetResult is either a raw JSON payload or a FacetError, never both.
type FacetResult struct {
	Facet   Facet
	Payload json.RawMessage
	Err     *FacetError
}

// OK reports a usable payload.
func (r FacetResult) OK() bool { return r.Err == nil }
