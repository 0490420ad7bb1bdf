package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/skydeck-app/skydeck/internal/model"
)

// OpenSky fetches flight movements from the OpenSky Network. Uses OAuth2
// client credentials; the token is cached until shortly before expiry.
type OpenSky struct {
	client       *http.Client
	clientID     string
	clientSecret string

	baseURL  string
	tokenURL string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewOpenSky(client *http.Client, clientID, clientSecret string) *OpenSky {
	return &OpenSky{
		client:       client,
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      "https://opensky-network.org/api",
		tokenURL:     "https://opensky-network.org/api/oauth/token",
	}
}

func (o *OpenSky) Name() string { return "opensky" }

func (o *OpenSky) getToken(ctx context.Context) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.token != "" && time.Now().Before(o.tokenExpiry) {
		return o.token, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {o.clientID},
		"client_secret": {o.clientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("opensky token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("opensky token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("opensky token error: %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("opensky token parse: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("opensky token: empty access_token")
	}

	o.token = body.AccessToken
	// 60-second buffer so a token never expires mid-request.
	o.tokenExpiry = time.Now().Add(time.Duration(body.ExpiresIn)*time.Second - time.Minute)
	return o.token, nil
}

type openskyFlight struct {
	ICAO24              string `json:"icao24"`
	Callsign            string `json:"callsign"`
	EstDepartureAirport string `json:"estDepartureAirport"`
	EstArrivalAirport   string `json:"estArrivalAirport"`
	FirstSeen           int64  `json:"firstSeen"`
	LastSeen            int64  `json:"lastSeen"`
}

// Flights returns the day's departures from origin that arrived at
// destination, normalized into canonical flight records.
func (o *OpenSky) Flights(ctx context.Context, origin, destination, date string) ([]model.FlightRecord, error) {
	if o.clientID == "" || o.clientSecret == "" {
		return nil, ErrNotConfigured
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("opensky: bad date %q: %w", date, err)
	}
	begin := day.UTC().Unix()
	end := day.UTC().Add(24*time.Hour - time.Second).Unix()

	token, err := o.getToken(ctx)
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/flights/departure?airport=%s&begin=%d&end=%d",
		o.baseURL, url.QueryEscape(origin), begin, end)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("opensky request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("opensky: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("opensky API error: %d", resp.StatusCode)
	}

	var raw []openskyFlight
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("opensky parse: %w", err)
	}

	var flights []model.FlightRecord
	for _, f := range raw {
		if f.EstArrivalAirport != destination {
			continue
		}
		if f.FirstSeen == 0 && f.LastSeen == 0 {
			// No usable timestamps means no flight identity.
			continue
		}
		flights = append(flights, model.FlightRecord{
			Origin:             origin,
			Destination:        destination,
			Callsign:           strings.TrimSpace(f.Callsign),
			ICAO24:             f.ICAO24,
			ScheduledDeparture: time.Unix(f.FirstSeen, 0).UTC(),
			ScheduledArrival:   time.Unix(f.LastSeen, 0).UTC(),
			Status:             "landed",
			Stops:              0,
		})
	}

	if len(flights) == 0 {
		return nil, ErrNoData
	}

	slog.Info("opensky result", "route", origin+"-"+destination, "flights", len(flights))
	return flights, nil
}
