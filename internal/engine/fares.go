package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/skydeck-app/skydeck/internal/model"
	"github.com/skydeck-app/skydeck/internal/provider"
)

type fareResult struct {
	fares  []model.FarePoint
	source string
}

// FareCalendar resolves a month of fares for a route through cache and the
// ordered fare providers, degrading to a deterministic mock calendar.
func (e *Engine) FareCalendar(ctx context.Context, origin, destination, date string) (model.FareResponse, error) {
	start := time.Now()

	origin, err := normalizeCode(origin, "origin")
	if err != nil {
		return model.FareResponse{}, err
	}
	destination, err = normalizeCode(destination, "destination")
	if err != nil {
		return model.FareResponse{}, err
	}
	date, err = validateDate(date)
	if err != nil {
		return model.FareResponse{}, err
	}

	key := "fares:" + origin + "|" + destination + "|" + date

	if v, _, ok := e.cache.Get(key); ok {
		if fares, ok := v.([]model.FarePoint); ok {
			e.emit("fares", origin+"-"+destination, model.SourceCache, start, true)
			return model.FareResponse{Success: true, Fares: fares, Source: model.SourceCache}, nil
		}
	}

	v, _, _ := e.fareGroup.Do(key, func() (any, error) {
		// Shared by every waiter on this key; detached from the caller.
		fetchCtx := context.WithoutCancel(ctx)
		for _, src := range e.fares {
			callCtx, cancel := context.WithTimeout(fetchCtx, e.providerTimeout)
			fares, err := src.Fares(callCtx, origin, destination, date)
			cancel()
			if err != nil {
				if errors.Is(err, provider.ErrNotConfigured) {
					slog.Debug("fare provider skipped", "provider", src.Name())
				} else {
					slog.Warn("fare provider failed", "provider", src.Name(),
						"route", origin+"-"+destination, "error", err)
				}
				continue
			}
			if len(fares) == 0 {
				slog.Debug("fare provider returned nothing", "provider", src.Name())
				continue
			}
			e.cache.Set(key, fares, src.Name(), e.fareTTL)
			return fareResult{fares: fares, source: src.Name()}, nil
		}
		return fareResult{fares: mockFares(origin, destination, date), source: model.SourceMock}, nil
	})

	res := v.(fareResult)
	e.emit("fares", origin+"-"+destination, res.source, start, true)
	return model.FareResponse{Success: true, Fares: res.fares, Source: res.source}, nil
}
