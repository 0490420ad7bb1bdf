package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/skydeck-app/skydeck/internal/derive"
	"github.com/skydeck-app/skydeck/internal/model"
	"github.com/skydeck-app/skydeck/internal/provider"
	"github.com/skydeck-app/skydeck/internal/staticdata"
)

// FlightQuery is a flight lookup request.
type FlightQuery struct {
	Origin      string
	Destination string
	Date        string // YYYY-MM-DD
	Travelers   int
	SeatClass   string
}

type flightResult struct {
	flights []model.FlightRecord
	source  string
}

// fetchFlights walks cache then live providers, falling back to a mock
// itinerary. Concurrent misses for one route share a single fetch.
func (e *Engine) fetchFlights(ctx context.Context, origin, destination, date string) ([]model.FlightRecord, string) {
	key := "flights:" + origin + "|" + destination + "|" + date

	if v, _, ok := e.cache.Get(key); ok {
		if flights, ok := v.([]model.FlightRecord); ok {
			return flights, model.SourceCache
		}
	}

	v, _, _ := e.flightGroup.Do(key, func() (any, error) {
		// Shared by every waiter on this key; detached from the caller.
		fetchCtx := context.WithoutCancel(ctx)
		for _, src := range e.flights {
			callCtx, cancel := context.WithTimeout(fetchCtx, e.providerTimeout)
			flights, err := src.Flights(callCtx, origin, destination, date)
			cancel()
			if err != nil {
				if errors.Is(err, provider.ErrNotConfigured) {
					slog.Debug("flight provider skipped", "provider", src.Name())
				} else {
					slog.Warn("flight provider failed", "provider", src.Name(),
						"route", origin+"-"+destination, "error", err)
				}
				continue
			}
			if len(flights) == 0 {
				// An empty result is no result; the next source gets a shot.
				slog.Debug("flight provider returned nothing", "provider", src.Name())
				continue
			}
			e.cache.Set(key, flights, src.Name(), e.flightTTL)
			return flightResult{flights: flights, source: src.Name()}, nil
		}
		return flightResult{flights: mockFlights(origin, destination, date), source: model.SourceMock}, nil
	})

	res := v.(flightResult)
	return res.flights, res.source
}

// SearchFlights resolves flights for a route and derives carbon accounting
// and planner hints for the primary result.
func (e *Engine) SearchFlights(ctx context.Context, q FlightQuery) (model.FlightResponse, error) {
	start := time.Now()

	origin, err := normalizeCode(q.Origin, "origin")
	if err != nil {
		return model.FlightResponse{}, err
	}
	destination, err := normalizeCode(q.Destination, "destination")
	if err != nil {
		return model.FlightResponse{}, err
	}
	date, err := validateDate(q.Date)
	if err != nil {
		return model.FlightResponse{}, err
	}
	travelers := q.Travelers
	if travelers < 1 {
		travelers = 1
	}

	flights, source := e.fetchFlights(ctx, origin, destination, date)
	if len(flights) == 0 {
		flights, source = mockFlights(origin, destination, date), model.SourceMock
	}
	primary := flights[0]

	// Endpoint records feed the derivations; only the curated table is
	// consulted here, a live lookup per endpoint would defeat the fallback
	// cost model.
	var originRec, destRec *model.AirportRecord
	if rec, ok := staticdata.Airport(origin); ok {
		originRec = &rec
	}
	if rec, ok := staticdata.Airport(destination); ok {
		destRec = &rec
	}

	carbon := derive.Carbon(derive.CarbonInput{
		Flight:      primary,
		Origin:      originRec,
		Destination: destRec,
		Passengers:  travelers,
		SeatClass:   q.SeatClass,
		Source:      source,
	})
	planner := derive.Planner(primary, originRec, destRec)

	alternatives := []model.FlightRecord{}
	if len(flights) > 1 {
		end := len(flights)
		if end > 4 {
			end = 4
		}
		alternatives = flights[1:end]
	}

	e.emit("flights", origin+"-"+destination, source, start, true)
	return model.FlightResponse{
		Success:      true,
		Data:         primary,
		Carbon:       carbon,
		Planner:      planner,
		Source:       source,
		Alternatives: alternatives,
	}, nil
}
