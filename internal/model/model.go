package model

import "time"

// Source tags attached to every response. Providers report their own name;
// these cover the non-provider tiers.
const (
	SourceStatic    = "static"
	SourceCache     = "cache"
	SourceSynthetic = "synthetic"
	SourceMock      = "mock"
)

// Coordinates is a WGS84 lat/lon pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AirportRecord is the canonical airport shape every provider response is
// normalized into. Built from a single source, never merged.
type AirportRecord struct {
	IATA        string            `json:"iata"`
	Name        string            `json:"name"`
	City        string            `json:"city"`
	Country     string            `json:"country"`
	Timezone    string            `json:"timezone"`
	Coordinates *Coordinates      `json:"coordinates,omitempty"`
	Terminals   []string          `json:"terminals,omitempty"`
	Amenities   []string          `json:"amenities"`
	Services    []string          `json:"services"`
	Transit     map[string]string `json:"transit,omitempty"`
	Tips        []string          `json:"tips,omitempty"`
}

// FlightLeg is a single segment of a multi-leg itinerary.
type FlightLeg struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Departure   time.Time `json:"departure"`
	Arrival     time.Time `json:"arrival"`
}

// FlightRecord is the canonical flight shape, produced fresh per request.
type FlightRecord struct {
	Origin             string      `json:"origin"`
	Destination        string      `json:"destination"`
	Callsign           string      `json:"callsign,omitempty"`
	Airline            string      `json:"airline,omitempty"`
	ICAO24             string      `json:"icao24,omitempty"`
	AircraftType       string      `json:"aircraft_type,omitempty"`
	ScheduledDeparture time.Time   `json:"scheduled_departure"`
	ScheduledArrival   time.Time   `json:"scheduled_arrival"`
	EstimatedDeparture time.Time   `json:"estimated_departure,omitempty"`
	EstimatedArrival   time.Time   `json:"estimated_arrival,omitempty"`
	Status             string      `json:"status,omitempty"`
	Stops              int         `json:"stops"`
	Legs               []FlightLeg `json:"legs,omitempty"`
}

// FarePoint is one date's price in a fare calendar.
type FarePoint struct {
	Date       string  `json:"date"`
	Price      float64 `json:"price"`
	Currency   string  `json:"currency"`
	Airline    string  `json:"airline,omitempty"`
	IsCheapest bool    `json:"isCheapest"`
}

// CarbonResult holds the emission accounting for one itinerary.
type CarbonResult struct {
	KgPerPax       int     `json:"kgPerPax"`
	TotalKg        int     `json:"totalKg"`
	DistanceKM     int     `json:"distance"`
	DistanceMethod string  `json:"distanceMethod"`
	AircraftType   string  `json:"aircraftType"`
	EmissionFactor float64 `json:"emissionFactor"`
	SeatClass      string  `json:"seatClass"`
	OffsetCostUSD  float64 `json:"offsetCost"`
	OffsetTrees    int     `json:"offsetTrees"`
	SAFKgPerPax    int     `json:"safKgPerPax"`
	SAFTotalKg     int     `json:"safTotalKg"`
	Source         string  `json:"source"`
}

// LayoverAdvisory is the bucketed recommendation set for a dwell at one
// airport. Deterministic given (airport, duration).
type LayoverAdvisory struct {
	Airport       string   `json:"airport"`
	City          string   `json:"city,omitempty"`
	Bucket        string   `json:"bucket"`
	DurationHours float64  `json:"durationHours"`
	Activities    []string `json:"activities"`
	Services      []string `json:"services"`
	Warnings      []string `json:"warnings,omitempty"`
	Tips          []string `json:"tips,omitempty"`
}

// ConnectionRisk estimates the chance of missing a connection.
type ConnectionRisk struct {
	HasConnection  bool   `json:"hasConnection"`
	LayoverMinutes int    `json:"layoverMin"`
	RiskPercent    int    `json:"riskPercent"`
	Advice         string `json:"advice"`
}

// PlannerHints are the when-to-leave heuristics attached to a flight lookup.
type PlannerHints struct {
	DepartureLocal          string         `json:"depLocalTime"`
	RecommendedArrivalISO   string         `json:"recommendedArrivalAtAirportISO,omitempty"`
	RecommendedLeaveHomeISO string         `json:"recommendedLeaveHomeISO,omitempty"`
	CheckInCloseMinutes     int            `json:"checkInCloseMinutes"`
	BoardingCloseMinutes    int            `json:"boardingCloseMinutes"`
	SecurityBufferMinutes   int            `json:"securityBufferMinutes"`
	TransitToAirportMinutes int            `json:"typicalTransitToAirportMinutes"`
	ConnectionRisk          ConnectionRisk `json:"connectionRisk"`
	AlternateSuggestions    []string       `json:"alternateSuggestions"`
}

// AirportResponse is the envelope for an airport lookup.
type AirportResponse struct {
	Success bool          `json:"success"`
	Data    AirportRecord `json:"data"`
	Source  string        `json:"source"`
}

// FlightResponse is the envelope for a flight lookup.
type FlightResponse struct {
	Success      bool           `json:"success"`
	Data         FlightRecord   `json:"data"`
	Carbon       CarbonResult   `json:"carbon"`
	Planner      PlannerHints   `json:"planner"`
	Source       string         `json:"source"`
	Alternatives []FlightRecord `json:"alternatives"`
}

// LayoverResponse is the envelope for a layover advisory lookup.
type LayoverResponse struct {
	Success     bool            `json:"success"`
	Suggestions LayoverAdvisory `json:"suggestions"`
	Source      string          `json:"source"`
}

// FareResponse is the envelope for a fare calendar lookup.
type FareResponse struct {
	Success bool        `json:"success"`
	Fares   []FarePoint `json:"fares"`
	Source  string      `json:"source"`
}
