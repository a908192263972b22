package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies load failures.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindNotFound    ErrorKind = "not_found"
	KindPartialData ErrorKind = "partial_data"
	KindTransport   ErrorKind = "transport"
)

var (
	ErrEmptySymbol = errors.New("symbol is empty")

	// Sentinels for errors.Is; LoadError matches them by Kind.
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("symbol not found")
	ErrPartialData = errors.New("partial data")
	ErrTransport   = errors.New("transport error")

	// ErrSuperseded is returned for a load whose session token went stale
	// before it could commit.
	ErrSuperseded = errors.New("load superseded by a newer request")
)

// LoadError carries the kind, the offending facet (if any) and the cause.
type LoadError struct {
	Kind   ErrorKind
	Facet  Facet
	Symbol Symbol
	Err    error
}

func (e *LoadError) Error() string {
	var msg string
	switch {
	case e.Facet != "" && e.Symbol != "":
		msg = fmt.Sprintf("%s: %s facet for %s", e.Kind, e.Facet, e.Symbol)
	case e.Symbol != "":
		msg = fmt.Sprintf("%s: %s", e.Kind, e.Symbol)
	default:
		msg = string(e.Kind)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrNotFound) and friends match on Kind.
func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrPartialData:
		return e.Kind == KindPartialData
	case ErrTransport:
		return e.Kind == KindTransport
	}
	return false
}

// ClassifyFacetError maps a gateway failure onto the load taxonomy. Only
// the price facet escalates to NotFound.
func ClassifyFacetError(symbol Symbol, fe *FacetError) *LoadError {
	kind := KindPartialData
	if fe.Facet.Fatal() {
		kind = KindNotFound
	}
	return &LoadError{Kind: kind, Facet: fe.Facet, Symbol: symbol, Err: fe}
}
