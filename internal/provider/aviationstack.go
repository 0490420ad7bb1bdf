package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/skydeck-app/skydeck/internal/model"
	"github.com/skydeck-app/skydeck/internal/staticdata"
)

// AviationStack looks up airport metadata.
type AviationStack struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

func NewAviationStack(client *http.Client, apiKey string) *AviationStack {
	return &AviationStack{
		client:  client,
		apiKey:  apiKey,
		baseURL: "http://api.aviationstack.com/v1",
	}
}

func (a *AviationStack) Name() string { return "aviationstack" }

type avsAirport struct {
	AirportName string `json:"airport_name"`
	CityName    string `json:"city_name"`
	CountryName string `json:"country_name"`
	IATACode    string `json:"iata_code"`
	Timezone    string `json:"timezone"`
	Latitude    any    `json:"latitude"`
	Longitude   any    `json:"longitude"`
}

// floatField tolerates the API returning coordinates as either numbers or
// strings.
func floatField(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// Airport looks up one airport by IATA code. Missing optional fields take
// documented defaults; only an undeterminable airport code fails.
func (a *AviationStack) Airport(ctx context.Context, code string) (model.AirportRecord, error) {
	if a.apiKey == "" {
		return model.AirportRecord{}, ErrNotConfigured
	}

	u := fmt.Sprintf("%s/airports?access_key=%s&search=%s&limit=1",
		a.baseURL, url.QueryEscape(a.apiKey), url.QueryEscape(code))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.AirportRecord{}, fmt.Errorf("aviationstack request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return model.AirportRecord{}, fmt.Errorf("aviationstack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.AirportRecord{}, fmt.Errorf("aviationstack API error: %d", resp.StatusCode)
	}

	var body struct {
		Data []avsAirport `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return model.AirportRecord{}, fmt.Errorf("aviationstack parse: %w", err)
	}
	if len(body.Data) == 0 {
		return model.AirportRecord{}, ErrNoData
	}

	raw := body.Data[0]
	iata := strings.ToUpper(raw.IATACode)
	if iata == "" {
		iata = strings.ToUpper(code)
	}
	if iata == "" {
		// Identity field cannot be determined.
		return model.AirportRecord{}, fmt.Errorf("aviationstack: %w: no airport code", ErrNoData)
	}

	rec := model.AirportRecord{
		IATA:      iata,
		Name:      raw.AirportName,
		City:      raw.CityName,
		Country:   raw.CountryName,
		Timezone:  raw.Timezone,
		Amenities: staticdata.GenericAmenities(),
		Services:  staticdata.GenericServices(),
	}
	if rec.Name == "" {
		rec.Name = iata + " Airport"
	}
	if rec.City == "" {
		rec.City = "Unknown"
	}
	if rec.Country == "" {
		rec.Country = "Unknown"
	}
	if lat, ok := floatField(raw.Latitude); ok {
		if lon, ok := floatField(raw.Longitude); ok {
			rec.Coordinates = &model.Coordinates{Latitude: lat, Longitude: lon}
		}
	}

	slog.Info("aviationstack result", "airport", rec.IATA, "city", rec.City)
	return rec, nil
}
