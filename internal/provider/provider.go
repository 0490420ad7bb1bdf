// Package provider holds the live upstream sources. Each provider is typed
// by capability (airport, flight, fare lookup) and normalizes its raw
// response into the canonical model, substituting documented defaults for
// merely-missing optional fields.
package provider

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/skydeck-app/skydeck/internal/model"
)

// ErrNotConfigured marks a provider whose credentials are absent. The
// orchestrator treats it like any other failure and moves on.
var ErrNotConfigured = errors.New("provider credentials not configured")

// ErrNoData marks an upstream call that succeeded but produced nothing
// usable for the request.
var ErrNoData = errors.New("provider returned no data")

// AirportSource looks up airport metadata by IATA code.
type AirportSource interface {
	Name() string
	Airport(ctx context.Context, code string) (model.AirportRecord, error)
}

// FlightSource looks up flights for an origin/destination/date triple.
type FlightSource interface {
	Name() string
	Flights(ctx context.Context, origin, destination, date string) ([]model.FlightRecord, error)
}

// FareSource looks up fare calendars for a route.
type FareSource interface {
	Name() string
	Fares(ctx context.Context, origin, destination, date string) ([]model.FarePoint, error)
}

// NewHTTPClient returns the shared client used by all providers. Per-call
// deadlines come from the request context; this timeout is a backstop.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
