package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/skydeck-app/skydeck/internal/model"
)

// Travelpayouts fetches the month price matrix for a route.
type Travelpayouts struct {
	client  *http.Client
	token   string
	marker  string
	baseURL string
}

func NewTravelpayouts(client *http.Client, token, marker string) *Travelpayouts {
	return &Travelpayouts{
		client:  client,
		token:   token,
		marker:  marker,
		baseURL: "https://api.travelpayouts.com",
	}
}

func (t *Travelpayouts) Name() string { return "travelpayouts" }

type tpFare struct {
	DepartDate string  `json:"depart_date"`
	Value      float64 `json:"value"`
	Currency   string  `json:"currency"`
	Gate       string  `json:"gate"`
}

// Fares returns the route's month matrix with the cheapest date flagged.
func (t *Travelpayouts) Fares(ctx context.Context, origin, destination, date string) ([]model.FarePoint, error) {
	if t.token == "" {
		return nil, ErrNotConfigured
	}

	u := fmt.Sprintf("%s/v2/prices/month-matrix?currency=usd&origin=%s&destination=%s&show_to_affiliates=true&token=%s",
		t.baseURL, url.QueryEscape(origin), url.QueryEscape(destination), url.QueryEscape(t.token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("travelpayouts request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("travelpayouts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("travelpayouts API error: %d", resp.StatusCode)
	}

	var body struct {
		Success bool     `json:"success"`
		Data    []tpFare `json:"data"`
		Message string   `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("travelpayouts parse: %w", err)
	}
	if !body.Success || len(body.Data) == 0 {
		return nil, ErrNoData
	}

	fares := make([]model.FarePoint, 0, len(body.Data))
	for _, f := range body.Data {
		if f.DepartDate == "" {
			continue
		}
		currency := f.Currency
		if currency == "" {
			currency = "USD"
		}
		fares = append(fares, model.FarePoint{
			Date:     f.DepartDate,
			Price:    f.Value,
			Currency: currency,
			Airline:  f.Gate,
		})
	}
	if len(fares) == 0 {
		return nil, ErrNoData
	}

	cheapest := fares[0].Price
	for _, f := range fares[1:] {
		if f.Price < cheapest {
			cheapest = f.Price
		}
	}
	for i := range fares {
		fares[i].IsCheapest = fares[i].Price == cheapest
	}

	slog.Info("travelpayouts result", "route", origin+"-"+destination, "fares", len(fares))
	return fares, nil
}
