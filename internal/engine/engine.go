// Package engine implements the source fallback orchestrator: every lookup
// walks static data, then the TTL cache, then the ordered live providers,
// and finally a synthetic record, so the caller always gets an answer.
// Only malformed input surfaces as an error.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/skydeck-app/skydeck/internal/cache"
	"github.com/skydeck-app/skydeck/internal/derive"
	"github.com/skydeck-app/skydeck/internal/model"
	"github.com/skydeck-app/skydeck/internal/provider"
	"github.com/skydeck-app/skydeck/internal/staticdata"
	"github.com/skydeck-app/skydeck/internal/stats"
)

// ErrInvalidInput marks a request missing a required identifier. This is
// the only engine error a caller ever sees.
var ErrInvalidInput = errors.New("invalid input")

// Options wires the engine's collaborators and tuning knobs.
type Options struct {
	Cache      *cache.Cache
	Stats      *stats.Aggregator
	Airports   []provider.AirportSource
	Flights    []provider.FlightSource
	Fares      []provider.FareSource
	AirportTTL time.Duration
	FlightTTL  time.Duration
	FareTTL    time.Duration
	// ProviderTimeout bounds each individual live-provider call.
	ProviderTimeout time.Duration
}

// Engine is the orchestrator. One instance per process; safe for
// concurrent use.
type Engine struct {
	cache    *cache.Cache
	stats    *stats.Aggregator
	airports []provider.AirportSource
	flights  []provider.FlightSource
	fares    []provider.FareSource

	airportTTL      time.Duration
	flightTTL       time.Duration
	fareTTL         time.Duration
	providerTimeout time.Duration

	// In-flight de-duplication per fingerprint: concurrent misses for the
	// same key share one upstream fetch instead of stampeding providers.
	airportGroup singleflight.Group
	flightGroup  singleflight.Group
	fareGroup    singleflight.Group

	now func() time.Time
}

// New builds an engine. Zero TTLs and timeout take defaults (30m airports,
// 10m flights, 5m fares, 8s per provider call).
func New(opts Options) *Engine {
	e := &Engine{
		cache:           opts.Cache,
		stats:           opts.Stats,
		airports:        opts.Airports,
		flights:         opts.Flights,
		fares:           opts.Fares,
		airportTTL:      opts.AirportTTL,
		flightTTL:       opts.FlightTTL,
		fareTTL:         opts.FareTTL,
		providerTimeout: opts.ProviderTimeout,
		now:             time.Now,
	}
	if e.cache == nil {
		e.cache = cache.New(0)
	}
	if e.airportTTL <= 0 {
		e.airportTTL = 30 * time.Minute
	}
	if e.flightTTL <= 0 {
		e.flightTTL = 10 * time.Minute
	}
	if e.fareTTL <= 0 {
		e.fareTTL = 5 * time.Minute
	}
	if e.providerTimeout <= 0 {
		e.providerTimeout = 8 * time.Second
	}
	return e
}

// Cache exposes the engine's cache for introspection endpoints.
func (e *Engine) Cache() *cache.Cache { return e.cache }

// normalizeCode validates and uppercases a 3-letter IATA code. Surrounding
// whitespace is tolerated, interior characters must all be letters.
func normalizeCode(code, field string) (string, error) {
	code = strings.TrimSpace(code)
	out := make([]byte, 0, 3)
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case c >= 'a' && c <= 'z':
			out = append(out, c-('a'-'A'))
		case c >= 'A' && c <= 'Z':
			out = append(out, c)
		default:
			return "", fmt.Errorf("%w: %s must be a 3-letter IATA code", ErrInvalidInput, field)
		}
	}
	if len(out) != 3 {
		return "", fmt.Errorf("%w: %s must be a 3-letter IATA code", ErrInvalidInput, field)
	}
	return string(out), nil
}

func validateDate(date string) (string, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return date, nil
}

// emit records a stats event. Analytics must never affect the response, so
// a nil aggregator is simply skipped.
func (e *Engine) emit(action, key, source string, start time.Time, success bool) {
	if e.stats == nil {
		return
	}
	e.stats.Record(stats.Event{
		Day:       e.now().Format("2006-01-02"),
		Key:       key,
		Success:   success,
		LatencyMS: time.Since(start).Milliseconds(),
		Source:    source,
		Action:    action,
	})
}

type airportResult struct {
	record model.AirportRecord
	source string
}

// resolveAirport walks the fallback chain for one airport code. It never
// fails: the synthetic tier always produces a record.
func (e *Engine) resolveAirport(ctx context.Context, code string) (model.AirportRecord, string) {
	if rec, ok := staticdata.Airport(code); ok {
		return rec, model.SourceStatic
	}

	key := "airport:" + code
	if v, _, ok := e.cache.Get(key); ok {
		if rec, ok := v.(model.AirportRecord); ok {
			return rec, model.SourceCache
		}
	}

	v, _, _ := e.airportGroup.Do(key, func() (any, error) {
		// The fetch is shared by every waiter on this key, so it must not
		// die with whichever request happened to start it.
		fetchCtx := context.WithoutCancel(ctx)
		for _, src := range e.airports {
			callCtx, cancel := context.WithTimeout(fetchCtx, e.providerTimeout)
			rec, err := src.Airport(callCtx, code)
			cancel()
			if err != nil {
				if errors.Is(err, provider.ErrNotConfigured) {
					slog.Debug("airport provider skipped", "provider", src.Name())
				} else {
					slog.Warn("airport provider failed", "provider", src.Name(), "code", code, "error", err)
				}
				continue
			}
			e.cache.Set(key, rec, src.Name(), e.airportTTL)
			return airportResult{record: rec, source: src.Name()}, nil
		}
		return airportResult{record: syntheticAirport(code), source: model.SourceSynthetic}, nil
	})

	res := v.(airportResult)
	return res.record, res.source
}

// LookupAirport resolves one airport's metadata through the fallback chain.
func (e *Engine) LookupAirport(ctx context.Context, code string) (model.AirportResponse, error) {
	start := time.Now()

	code, err := normalizeCode(code, "airportCode")
	if err != nil {
		return model.AirportResponse{}, err
	}

	rec, source := e.resolveAirport(ctx, code)
	e.emit("airport", code, source, start, true)
	return model.AirportResponse{Success: true, Data: rec, Source: source}, nil
}

// LayoverSuggestions resolves the airport, then derives the bucketed
// advisory for the requested dwell time (default 3h).
func (e *Engine) LayoverSuggestions(ctx context.Context, code string, durationHours float64) (model.LayoverResponse, error) {
	start := time.Now()

	code, err := normalizeCode(code, "airportCode")
	if err != nil {
		return model.LayoverResponse{}, err
	}

	rec, source := e.resolveAirport(ctx, code)
	adv := derive.Advisory(rec, durationHours)
	e.emit("layover", code, source, start, true)
	return model.LayoverResponse{Success: true, Suggestions: adv, Source: source}, nil
}
