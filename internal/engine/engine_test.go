package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skydeck-app/skydeck/internal/cache"
	"github.com/skydeck-app/skydeck/internal/model"
	"github.com/skydeck-app/skydeck/internal/provider"
	"github.com/skydeck-app/skydeck/internal/stats"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeAirportSource struct {
	name   string
	record model.AirportRecord
	err    error
	calls  int
}

func (f *fakeAirportSource) Name() string { return f.name }

func (f *fakeAirportSource) Airport(ctx context.Context, code string) (model.AirportRecord, error) {
	f.calls++
	if f.err != nil {
		return model.AirportRecord{}, f.err
	}
	return f.record, nil
}

type fakeFlightSource struct {
	name    string
	flights []model.FlightRecord
	err     error
	calls   int
}

func (f *fakeFlightSource) Name() string { return f.name }

func (f *fakeFlightSource) Flights(ctx context.Context, origin, destination, date string) ([]model.FlightRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.flights, nil
}

type fakeFareSource struct {
	name  string
	fares []model.FarePoint
	err   error
	calls int
}

func (f *fakeFareSource) Name() string { return f.name }

func (f *fakeFareSource) Fares(ctx context.Context, origin, destination, date string) ([]model.FarePoint, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.fares, nil
}

// ---------------------------------------------------------------------------
// Airport lookup
// ---------------------------------------------------------------------------

func TestLookupAirportStaticShortCircuit(t *testing.T) {
	src := &fakeAirportSource{name: "live"}
	e := New(Options{Airports: []provider.AirportSource{src}})

	resp, err := e.LookupAirport(context.Background(), "jfk")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, model.SourceStatic, resp.Source)
	assert.Equal(t, "JFK", resp.Data.IATA)
	assert.Equal(t, "New York", resp.Data.City)
	assert.Equal(t, 0, src.calls, "static hits must not touch live providers")
	assert.Equal(t, 0, e.Cache().Size(), "static hits are never cached")
}

func TestLookupAirportProviderThenCache(t *testing.T) {
	rec := model.AirportRecord{IATA: "BNA", Name: "Nashville International", City: "Nashville", Country: "United States"}
	src := &fakeAirportSource{name: "aviationstack", record: rec}
	e := New(Options{Airports: []provider.AirportSource{src}})

	first, err := e.LookupAirport(context.Background(), "BNA")
	require.NoError(t, err)
	assert.Equal(t, "aviationstack", first.Source)
	assert.Equal(t, "Nashville", first.Data.City)
	assert.Equal(t, 1, src.calls)

	second, err := e.LookupAirport(context.Background(), "BNA")
	require.NoError(t, err)
	assert.Equal(t, model.SourceCache, second.Source)
	assert.Equal(t, "Nashville", second.Data.City)
	assert.Equal(t, 1, src.calls, "cache hit must not call the provider again")
}

func TestLookupAirportFallbackOrder(t *testing.T) {
	failing := &fakeAirportSource{name: "first", err: errors.New("upstream 500")}
	working := &fakeAirportSource{name: "second", record: model.AirportRecord{IATA: "BNA", Name: "Nashville International"}}
	e := New(Options{Airports: []provider.AirportSource{failing, working}})

	resp, err := e.LookupAirport(context.Background(), "BNA")
	require.NoError(t, err)

	assert.Equal(t, "second", resp.Source)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, working.calls)
}

func TestLookupAirportSyntheticWhenAllFail(t *testing.T) {
	failing := &fakeAirportSource{name: "live", err: errors.New("timeout")}
	e := New(Options{Airports: []provider.AirportSource{failing}})

	resp, err := e.LookupAirport(context.Background(), "ZZZ")
	require.NoError(t, err)

	assert.True(t, resp.Success, "fallback exhaustion still succeeds")
	assert.Equal(t, model.SourceSynthetic, resp.Source)
	assert.Equal(t, "ZZZ", resp.Data.IATA)
	assert.Equal(t, "ZZZ Airport", resp.Data.Name)
	assert.NotEmpty(t, resp.Data.Amenities)
	assert.Equal(t, 0, e.Cache().Size(), "synthetic records are never cached")
}

func TestLookupAirportSyntheticWithNoProviders(t *testing.T) {
	e := New(Options{})

	resp, err := e.LookupAirport(context.Background(), "XNA")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, model.SourceSynthetic, resp.Source)
}

func TestLookupAirportInvalidInput(t *testing.T) {
	e := New(Options{})

	for _, code := range []string{"", "JF", "JFKX", "12A", "J-K", "J FK"} {
		_, err := e.LookupAirport(context.Background(), code)
		assert.ErrorIs(t, err, ErrInvalidInput, "code %q", code)
	}
}

func TestLookupAirportNormalizesCase(t *testing.T) {
	e := New(Options{})
	resp, err := e.LookupAirport(context.Background(), " lhr ")
	require.NoError(t, err)
	assert.Equal(t, "LHR", resp.Data.IATA)
	assert.Equal(t, model.SourceStatic, resp.Source)
}

func TestLookupAirportEmitsStats(t *testing.T) {
	agg := stats.New(10)
	e := New(Options{Stats: agg})
	e.now = func() time.Time { return time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC) }

	_, err := e.LookupAirport(context.Background(), "JFK")
	require.NoError(t, err)

	assert.True(t, agg.Has("2026-08-31", "JFK"))
}

// ---------------------------------------------------------------------------
// Flight search
// ---------------------------------------------------------------------------

func TestSearchFlightsProviderThenCache(t *testing.T) {
	dep := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	src := &fakeFlightSource{
		name: "opensky",
		flights: []model.FlightRecord{{
			Origin: "JFK", Destination: "LAX", Callsign: "AA100",
			AircraftType: "B738", ScheduledDeparture: dep, ScheduledArrival: dep.Add(6 * time.Hour),
		}},
	}
	e := New(Options{Flights: []provider.FlightSource{src}})
	q := FlightQuery{Origin: "JFK", Destination: "LAX", Date: "2026-09-01", Travelers: 2}

	first, err := e.SearchFlights(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, "opensky", first.Source)
	assert.Equal(t, "AA100", first.Data.Callsign)
	assert.Equal(t, 1, src.calls)

	second, err := e.SearchFlights(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, model.SourceCache, second.Source)
	assert.Equal(t, 1, src.calls)
}

func TestSearchFlightsDerivations(t *testing.T) {
	src := &fakeFlightSource{
		name: "opensky",
		flights: []model.FlightRecord{{
			Origin: "JFK", Destination: "LAX", AircraftType: "B738",
		}},
	}
	e := New(Options{Flights: []provider.FlightSource{src}})

	resp, err := e.SearchFlights(context.Background(), FlightQuery{
		Origin: "JFK", Destination: "LAX", Date: "2026-09-01", Travelers: 2, SeatClass: "economy",
	})
	require.NoError(t, err)

	// Both endpoints are curated, so the coordinates tier fires.
	assert.Equal(t, "coordinates", resp.Carbon.DistanceMethod)
	assert.Greater(t, resp.Carbon.KgPerPax, 0)
	assert.Equal(t, "B738", resp.Carbon.AircraftType)
	assert.Equal(t, "calculated", resp.Carbon.Source)

	// JFK to LAX is domestic.
	assert.Equal(t, 60, resp.Planner.CheckInCloseMinutes)
	assert.False(t, resp.Planner.ConnectionRisk.HasConnection)
}

func TestSearchFlightsMockFallback(t *testing.T) {
	failing := &fakeFlightSource{name: "opensky", err: errors.New("upstream down")}
	e := New(Options{Flights: []provider.FlightSource{failing}})
	q := FlightQuery{Origin: "QQQ", Destination: "WWW", Date: "2026-09-01"}

	resp, err := e.SearchFlights(context.Background(), q)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, model.SourceMock, resp.Source)
	assert.Equal(t, "QQQ", resp.Data.Origin)
	assert.Equal(t, "WWW", resp.Data.Destination)
	assert.NotEmpty(t, resp.Data.Callsign)
	assert.Equal(t, "estimated", resp.Carbon.Source)

	// Deterministic: same request, same itinerary.
	again, err := e.SearchFlights(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, resp.Data, again.Data)
	assert.Equal(t, 0, e.Cache().Size(), "mock results are never cached")
}

func TestSearchFlightsAlternativesCapped(t *testing.T) {
	var flights []model.FlightRecord
	for i := 0; i < 6; i++ {
		flights = append(flights, model.FlightRecord{Origin: "JFK", Destination: "LAX"})
	}
	src := &fakeFlightSource{name: "opensky", flights: flights}
	e := New(Options{Flights: []provider.FlightSource{src}})

	resp, err := e.SearchFlights(context.Background(), FlightQuery{
		Origin: "JFK", Destination: "LAX", Date: "2026-09-01",
	})
	require.NoError(t, err)
	assert.Len(t, resp.Alternatives, 3)
}

func TestSearchFlightsEmptyProviderResult(t *testing.T) {
	src := &fakeFlightSource{name: "opensky", flights: []model.FlightRecord{}}
	e := New(Options{Flights: []provider.FlightSource{src}})

	resp, err := e.SearchFlights(context.Background(), FlightQuery{
		Origin: "JFK", Destination: "LAX", Date: "2026-09-01",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, model.SourceMock, resp.Source)
}

func TestSearchFlightsInvalidInput(t *testing.T) {
	e := New(Options{})

	_, err := e.SearchFlights(context.Background(), FlightQuery{Origin: "J", Destination: "LAX", Date: "2026-09-01"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.SearchFlights(context.Background(), FlightQuery{Origin: "JFK", Destination: "LAX", Date: "tomorrow"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSearchFlightsEmptyResultDoesNotWinChain(t *testing.T) {
	empty := &fakeFlightSource{name: "first", flights: []model.FlightRecord{}}
	working := &fakeFlightSource{
		name:    "second",
		flights: []model.FlightRecord{{Origin: "JFK", Destination: "LAX", Callsign: "AA100"}},
	}
	e := New(Options{Flights: []provider.FlightSource{empty, working}})

	resp, err := e.SearchFlights(context.Background(), FlightQuery{
		Origin: "JFK", Destination: "LAX", Date: "2026-09-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "second", resp.Source, "empty result passes the turn to the next provider")
	assert.Equal(t, "AA100", resp.Data.Callsign)
	assert.Equal(t, 1, empty.calls)
	assert.Equal(t, 1, working.calls)
}

func TestSearchFlightsEmptyResultNotCached(t *testing.T) {
	empty := &fakeFlightSource{name: "first", flights: []model.FlightRecord{}}
	e := New(Options{Flights: []provider.FlightSource{empty}})
	q := FlightQuery{Origin: "JFK", Destination: "LAX", Date: "2026-09-01"}

	resp, err := e.SearchFlights(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, model.SourceMock, resp.Source)
	assert.Equal(t, 0, e.Cache().Size(), "empty provider results must not poison the cache")

	// Next call tries the provider again instead of serving a cached empty.
	_, err = e.SearchFlights(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 2, empty.calls)
}

func TestSearchFlightsNotConfiguredProviderSkipped(t *testing.T) {
	skipped := &fakeFlightSource{name: "opensky", err: provider.ErrNotConfigured}
	working := &fakeFlightSource{
		name:    "aerodatabox",
		flights: []model.FlightRecord{{Origin: "JFK", Destination: "LAX"}},
	}
	e := New(Options{Flights: []provider.FlightSource{skipped, working}})

	resp, err := e.SearchFlights(context.Background(), FlightQuery{
		Origin: "JFK", Destination: "LAX", Date: "2026-09-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "aerodatabox", resp.Source)
}

// ---------------------------------------------------------------------------
// Fare calendar
// ---------------------------------------------------------------------------

func TestFareCalendarProviderThenCache(t *testing.T) {
	src := &fakeFareSource{
		name:  "travelpayouts",
		fares: []model.FarePoint{{Date: "2026-09-01", Price: 199, Currency: "USD"}},
	}
	e := New(Options{Fares: []provider.FareSource{src}})

	first, err := e.FareCalendar(context.Background(), "JFK", "LAX", "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, "travelpayouts", first.Source)
	assert.Equal(t, 1, src.calls)

	second, err := e.FareCalendar(context.Background(), "JFK", "LAX", "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, model.SourceCache, second.Source)
	assert.Equal(t, 1, src.calls)
}

func TestFareCalendarMockFallback(t *testing.T) {
	e := New(Options{})

	resp, err := e.FareCalendar(context.Background(), "JFK", "LAX", "2026-09-15")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, model.SourceMock, resp.Source)
	assert.Len(t, resp.Fares, 30, "September has 30 days")

	cheapest := 0
	for _, f := range resp.Fares {
		assert.Greater(t, f.Price, 0.0)
		assert.Equal(t, "USD", f.Currency)
		if f.IsCheapest {
			cheapest++
		}
	}
	assert.GreaterOrEqual(t, cheapest, 1)

	// Same route and month, same calendar.
	again, err := e.FareCalendar(context.Background(), "JFK", "LAX", "2026-09-15")
	require.NoError(t, err)
	assert.Equal(t, resp.Fares, again.Fares)
}

func TestFareCalendarEmptyResultDoesNotWinChain(t *testing.T) {
	empty := &fakeFareSource{name: "first", fares: []model.FarePoint{}}
	working := &fakeFareSource{
		name:  "second",
		fares: []model.FarePoint{{Date: "2026-09-01", Price: 199, Currency: "USD"}},
	}
	e := New(Options{Fares: []provider.FareSource{empty, working}})

	resp, err := e.FareCalendar(context.Background(), "JFK", "LAX", "2026-09-01")
	require.NoError(t, err)

	assert.Equal(t, "second", resp.Source)
	require.Len(t, resp.Fares, 1)
	assert.Equal(t, 1, empty.calls)
	assert.Equal(t, 1, working.calls)
}

func TestFareCalendarEmptyResultFallsToMock(t *testing.T) {
	empty := &fakeFareSource{name: "first", fares: []model.FarePoint{}}
	e := New(Options{Fares: []provider.FareSource{empty}})

	resp, err := e.FareCalendar(context.Background(), "JFK", "LAX", "2026-09-01")
	require.NoError(t, err)

	assert.Equal(t, model.SourceMock, resp.Source)
	assert.NotEmpty(t, resp.Fares, "an empty calendar never reaches the caller")
	assert.Equal(t, 0, e.Cache().Size())
}

func TestFareCalendarInvalidInput(t *testing.T) {
	e := New(Options{})

	_, err := e.FareCalendar(context.Background(), "", "LAX", "2026-09-01")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.FareCalendar(context.Background(), "JFK", "LAX", "09/01/2026")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// ---------------------------------------------------------------------------
// Fetch lifetime
// ---------------------------------------------------------------------------

// ctxAwareAirportSource fails when its context is already dead, the way a
// real HTTP client would.
type ctxAwareAirportSource struct {
	record model.AirportRecord
	calls  int
}

func (c *ctxAwareAirportSource) Name() string { return "live" }

func (c *ctxAwareAirportSource) Airport(ctx context.Context, code string) (model.AirportRecord, error) {
	c.calls++
	if err := ctx.Err(); err != nil {
		return model.AirportRecord{}, err
	}
	return c.record, nil
}

func TestLookupAirportSurvivesCallerCancellation(t *testing.T) {
	src := &ctxAwareAirportSource{record: model.AirportRecord{IATA: "BNA", Name: "Nashville International"}}
	e := New(Options{Airports: []provider.AirportSource{src}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := e.LookupAirport(ctx, "BNA")
	require.NoError(t, err)

	assert.Equal(t, "live", resp.Source,
		"the shared fetch is detached from the request that started it")
	assert.Equal(t, 1, src.calls)
}

// ---------------------------------------------------------------------------
// TTL behaviour
// ---------------------------------------------------------------------------

func TestCachedAirportExpires(t *testing.T) {
	rec := model.AirportRecord{IATA: "BNA", Name: "Nashville International"}
	src := &fakeAirportSource{name: "live", record: rec}

	c := cache.New(10)
	e := New(Options{Cache: c, Airports: []provider.AirportSource{src}, AirportTTL: time.Nanosecond})

	_, err := e.LookupAirport(context.Background(), "BNA")
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)

	time.Sleep(time.Millisecond)

	resp, err := e.LookupAirport(context.Background(), "BNA")
	require.NoError(t, err)
	assert.Equal(t, "live", resp.Source, "expired entry refetches from the provider")
	assert.Equal(t, 2, src.calls)
}

// ---------------------------------------------------------------------------
// Layover suggestions
// ---------------------------------------------------------------------------

func TestLayoverSuggestionsCuratedAirport(t *testing.T) {
	e := New(Options{})

	resp, err := e.LayoverSuggestions(context.Background(), "SIN", 10)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, model.SourceStatic, resp.Source)
	assert.Equal(t, "SIN", resp.Suggestions.Airport)
	assert.Equal(t, "long", resp.Suggestions.Bucket)
	assert.NotEmpty(t, resp.Suggestions.Activities)
}

func TestLayoverSuggestionsUnknownAirport(t *testing.T) {
	e := New(Options{})

	resp, err := e.LayoverSuggestions(context.Background(), "ZZZ", 2)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, model.SourceSynthetic, resp.Source)
	assert.Equal(t, "short", resp.Suggestions.Bucket)
	assert.NotEmpty(t, resp.Suggestions.Warnings)
}

func TestLayoverSuggestionsInvalidInput(t *testing.T) {
	e := New(Options{})
	_, err := e.LayoverSuggestions(context.Background(), "not-a-code", 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
