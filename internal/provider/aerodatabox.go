package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/skydeck-app/skydeck/internal/model"
)

// AeroDataBox fetches scheduled departures via RapidAPI.
type AeroDataBox struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

func NewAeroDataBox(client *http.Client, apiKey string) *AeroDataBox {
	return &AeroDataBox{
		client:  client,
		apiKey:  apiKey,
		baseURL: "https://aerodatabox.p.rapidapi.com",
	}
}

func (a *AeroDataBox) Name() string { return "aerodatabox" }

// The FIDS payload is deeply optional; every nested field may be absent.
type adbTime struct {
	UTC   string `json:"utc"`
	Local string `json:"local"`
}

type adbMovement struct {
	Airport *struct {
		IATA string `json:"iata"`
		Name string `json:"name"`
	} `json:"airport"`
	ScheduledTime *adbTime `json:"scheduledTime"`
	RevisedTime   *adbTime `json:"revisedTime"`
}

type adbFlight struct {
	Number  string `json:"number"`
	Airline *struct {
		Name string `json:"name"`
	} `json:"airline"`
	Aircraft *struct {
		Model string `json:"model"`
	} `json:"aircraft"`
	Departure *adbMovement `json:"departure"`
	Arrival   *adbMovement `json:"arrival"`
}

func parseADBTime(t *adbTime) time.Time {
	if t == nil {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04Z", "2006-01-02 15:04-07:00"} {
		for _, s := range []string{t.UTC, t.Local} {
			if s == "" {
				continue
			}
			if ts, err := time.Parse(layout, s); err == nil {
				return ts.UTC()
			}
		}
	}
	return time.Time{}
}

// Flights returns the day's departures from origin filtered to those
// arriving at destination.
func (a *AeroDataBox) Flights(ctx context.Context, origin, destination, date string) ([]model.FlightRecord, error) {
	if a.apiKey == "" {
		return nil, ErrNotConfigured
	}

	u := fmt.Sprintf("%s/flights/airports/iata/%s/%sT00:00/%sT23:59?withLeg=true&direction=Departure",
		a.baseURL, origin, date, date)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("aerodatabox request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", a.apiKey)
	req.Header.Set("X-RapidAPI-Host", "aerodatabox.p.rapidapi.com")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("aerodatabox: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aerodatabox API error: %d", resp.StatusCode)
	}

	var body struct {
		Departures []adbFlight `json:"departures"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("aerodatabox parse: %w", err)
	}

	var flights []model.FlightRecord
	for _, f := range body.Departures {
		if f.Arrival == nil || f.Arrival.Airport == nil ||
			!strings.EqualFold(f.Arrival.Airport.IATA, destination) {
			continue
		}

		rec := model.FlightRecord{
			Origin:      origin,
			Destination: destination,
			Callsign:    strings.ReplaceAll(f.Number, " ", ""),
			Status:      "scheduled",
			Stops:       0,
		}
		if f.Airline != nil {
			rec.Airline = f.Airline.Name
		}
		if f.Aircraft != nil {
			rec.AircraftType = f.Aircraft.Model
		}
		if f.Departure != nil {
			rec.ScheduledDeparture = parseADBTime(f.Departure.ScheduledTime)
			rec.EstimatedDeparture = parseADBTime(f.Departure.RevisedTime)
		}
		rec.ScheduledArrival = parseADBTime(f.Arrival.ScheduledTime)
		rec.EstimatedArrival = parseADBTime(f.Arrival.RevisedTime)

		// Identity requires origin, destination, and a departure timestamp.
		if rec.ScheduledDeparture.IsZero() && rec.EstimatedDeparture.IsZero() {
			continue
		}
		flights = append(flights, rec)
	}

	if len(flights) == 0 {
		return nil, ErrNoData
	}

	slog.Info("aerodatabox result", "route", origin+"-"+destination, "flights", len(flights))
	return flights, nil
}
