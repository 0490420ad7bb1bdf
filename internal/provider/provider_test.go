package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// OpenSky
// ---------------------------------------------------------------------------

func newOpenSkyForTest(tokenURL, baseURL string) *OpenSky {
	o := NewOpenSky(NewHTTPClient(5*time.Second), "id", "secret")
	o.tokenURL = tokenURL
	o.baseURL = baseURL
	return o
}

func TestOpenSkyFlights(t *testing.T) {
	var tokenCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokenCalls, 1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok123", "expires_in": 1800})
	})
	mux.HandleFunc("/flights/departure", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		assert.Equal(t, "JFK", r.URL.Query().Get("airport"))
		json.NewEncoder(w).Encode([]map[string]any{
			{
				"icao24": "a0ffcc", "callsign": "AAL100  ",
				"estDepartureAirport": "JFK", "estArrivalAirport": "LAX",
				"firstSeen": 1756710000, "lastSeen": 1756731600,
			},
			{
				// Wrong destination, must be filtered out.
				"icao24": "b1eecc", "callsign": "DAL200",
				"estDepartureAirport": "JFK", "estArrivalAirport": "ORD",
				"firstSeen": 1756710000, "lastSeen": 1756720000,
			},
			{
				// No timestamps, no flight identity.
				"icao24": "c2ddcc", "callsign": "UAL300",
				"estDepartureAirport": "JFK", "estArrivalAirport": "LAX",
				"firstSeen": 0, "lastSeen": 0,
			},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	o := newOpenSkyForTest(srv.URL+"/oauth/token", srv.URL)

	flights, err := o.Flights(context.Background(), "JFK", "LAX", "2026-09-01")
	require.NoError(t, err)
	require.Len(t, flights, 1)

	f := flights[0]
	assert.Equal(t, "JFK", f.Origin)
	assert.Equal(t, "LAX", f.Destination)
	assert.Equal(t, "AAL100", f.Callsign, "callsign padding is trimmed")
	assert.Equal(t, "a0ffcc", f.ICAO24)
	assert.Equal(t, time.Unix(1756710000, 0).UTC(), f.ScheduledDeparture)
	assert.Equal(t, "landed", f.Status)

	// Token is cached across calls.
	_, err = o.Flights(context.Background(), "JFK", "LAX", "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls))
}

func TestOpenSkyNoMatchingFlights(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 1800})
	})
	mux.HandleFunc("/flights/departure", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	o := newOpenSkyForTest(srv.URL+"/oauth/token", srv.URL)

	_, err := o.Flights(context.Background(), "JFK", "LAX", "2026-09-01")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestOpenSkyNotConfigured(t *testing.T) {
	o := NewOpenSky(NewHTTPClient(time.Second), "", "")
	_, err := o.Flights(context.Background(), "JFK", "LAX", "2026-09-01")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestOpenSkyUpstreamError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 1800})
	})
	mux.HandleFunc("/flights/departure", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	o := newOpenSkyForTest(srv.URL+"/oauth/token", srv.URL)

	_, err := o.Flights(context.Background(), "JFK", "LAX", "2026-09-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

// ---------------------------------------------------------------------------
// AviationStack
// ---------------------------------------------------------------------------

func TestAviationStackAirport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/airports", r.URL.Path)
		assert.Equal(t, "key123", r.URL.Query().Get("access_key"))
		assert.Equal(t, "BNA", r.URL.Query().Get("search"))
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{
				"airport_name": "Nashville International",
				"city_name":    "Nashville",
				"country_name": "United States",
				"iata_code":    "bna",
				"timezone":     "America/Chicago",
				"latitude":     "36.124501", // string form
				"longitude":    -86.678200,  // number form
			}},
		})
	}))
	defer srv.Close()

	a := NewAviationStack(NewHTTPClient(5*time.Second), "key123")
	a.baseURL = srv.URL

	rec, err := a.Airport(context.Background(), "BNA")
	require.NoError(t, err)

	assert.Equal(t, "BNA", rec.IATA, "code is uppercased")
	assert.Equal(t, "Nashville International", rec.Name)
	assert.Equal(t, "Nashville", rec.City)
	assert.Equal(t, "America/Chicago", rec.Timezone)
	require.NotNil(t, rec.Coordinates)
	assert.InDelta(t, 36.1245, rec.Coordinates.Latitude, 1e-4)
	assert.InDelta(t, -86.6782, rec.Coordinates.Longitude, 1e-4)
	assert.NotEmpty(t, rec.Amenities)
}

func TestAviationStackDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"iata_code": "xyz"}},
		})
	}))
	defer srv.Close()

	a := NewAviationStack(NewHTTPClient(5*time.Second), "key123")
	a.baseURL = srv.URL

	rec, err := a.Airport(context.Background(), "XYZ")
	require.NoError(t, err)

	assert.Equal(t, "XYZ Airport", rec.Name)
	assert.Equal(t, "Unknown", rec.City)
	assert.Equal(t, "Unknown", rec.Country)
	assert.Nil(t, rec.Coordinates)
}

func TestAviationStackEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{}})
	}))
	defer srv.Close()

	a := NewAviationStack(NewHTTPClient(5*time.Second), "key123")
	a.baseURL = srv.URL

	_, err := a.Airport(context.Background(), "ZZZ")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestAviationStackNotConfigured(t *testing.T) {
	a := NewAviationStack(NewHTTPClient(time.Second), "")
	_, err := a.Airport(context.Background(), "JFK")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

// ---------------------------------------------------------------------------
// AeroDataBox
// ---------------------------------------------------------------------------

func TestAeroDataBoxFlights(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key123", r.Header.Get("X-RapidAPI-Key"))
		assert.Contains(t, r.URL.Path, "/flights/airports/iata/JFK/")
		json.NewEncoder(w).Encode(map[string]any{
			"departures": []map[string]any{
				{
					"number":   "AA 100",
					"airline":  map[string]any{"name": "American Airlines"},
					"aircraft": map[string]any{"model": "Boeing 737-800"},
					"departure": map[string]any{
						"scheduledTime": map[string]any{"utc": "2026-09-01 10:00Z"},
						"revisedTime":   map[string]any{"utc": "2026-09-01 10:15Z"},
					},
					"arrival": map[string]any{
						"airport":       map[string]any{"iata": "lax"},
						"scheduledTime": map[string]any{"utc": "2026-09-01 13:00Z"},
					},
				},
				{
					// Wrong destination, filtered out.
					"number":  "DL 200",
					"arrival": map[string]any{"airport": map[string]any{"iata": "ORD"}},
				},
				{
					// No departure timestamp, no identity.
					"number":  "UA 300",
					"arrival": map[string]any{"airport": map[string]any{"iata": "LAX"}},
				},
			},
		})
	}))
	defer srv.Close()

	a := NewAeroDataBox(NewHTTPClient(5*time.Second), "key123")
	a.baseURL = srv.URL

	flights, err := a.Flights(context.Background(), "JFK", "LAX", "2026-09-01")
	require.NoError(t, err)
	require.Len(t, flights, 1)

	f := flights[0]
	assert.Equal(t, "AA100", f.Callsign, "flight number spaces are stripped")
	assert.Equal(t, "American Airlines", f.Airline)
	assert.Equal(t, "Boeing 737-800", f.AircraftType)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), f.ScheduledDeparture)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 15, 0, 0, time.UTC), f.EstimatedDeparture)
	assert.Equal(t, "scheduled", f.Status)
}

func TestAeroDataBoxNotConfigured(t *testing.T) {
	a := NewAeroDataBox(NewHTTPClient(time.Second), "")
	_, err := a.Flights(context.Background(), "JFK", "LAX", "2026-09-01")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

// ---------------------------------------------------------------------------
// Travelpayouts
// ---------------------------------------------------------------------------

func TestTravelpayoutsFares(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/prices/month-matrix", r.URL.Path)
		assert.Equal(t, "tok123", r.URL.Query().Get("token"))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{"depart_date": "2026-09-01", "value": 250.0, "gate": "AA"},
				{"depart_date": "2026-09-02", "value": 180.0, "currency": "USD", "gate": "DL"},
				{"depart_date": "", "value": 99.0},
			},
		})
	}))
	defer srv.Close()

	tp := NewTravelpayouts(NewHTTPClient(5*time.Second), "tok123", "")
	tp.baseURL = srv.URL

	fares, err := tp.Fares(context.Background(), "JFK", "LAX", "2026-09-01")
	require.NoError(t, err)
	require.Len(t, fares, 2, "dateless entries are dropped")

	assert.Equal(t, "USD", fares[0].Currency, "missing currency defaults to USD")
	assert.False(t, fares[0].IsCheapest)
	assert.True(t, fares[1].IsCheapest)
}

func TestTravelpayoutsUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "quota exceeded"})
	}))
	defer srv.Close()

	tp := NewTravelpayouts(NewHTTPClient(5*time.Second), "tok123", "")
	tp.baseURL = srv.URL

	_, err := tp.Fares(context.Background(), "JFK", "LAX", "2026-09-01")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestTravelpayoutsNotConfigured(t *testing.T) {
	tp := NewTravelpayouts(NewHTTPClient(time.Second), "", "")
	_, err := tp.Fares(context.Background(), "JFK", "LAX", "2026-09-01")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
