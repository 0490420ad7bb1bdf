// Package staticdata holds the curated in-process tables consulted before
// any cache or live provider: well-known airports, route distances, and
// carrier fleet defaults.
package staticdata

import "github.com/skydeck-app/skydeck/internal/model"

var airports = map[string]model.AirportRecord{
	"JFK": {
		IATA:        "JFK",
		Name:        "John F. Kennedy International Airport",
		City:        "New York",
		Country:     "United States",
		Timezone:    "America/New_York",
		Coordinates: &model.Coordinates{Latitude: 40.6413, Longitude: -73.7781},
		Terminals:   []string{"1", "4", "5", "7", "8"},
		Amenities: []string{
			"Free Wi-Fi (JFK Wi-Fi)",
			"Multiple airline lounges",
			"Minute Suites sleep pods",
			"Art galleries throughout terminals",
			"Charging stations near all gates",
		},
		Services: []string{
			"Baggage wrapping services",
			"Luggage storage and lockers",
			"Meet & greet services",
			"AirTrain to all terminals",
		},
		Transit: map[string]string{
			"train": "AirTrain + A/E subway, 45-60 minutes to Manhattan",
			"taxi":  "Flat fare to Manhattan, 40-70 minutes depending on traffic",
			"bus":   "NYC Express Bus to Midtown",
		},
		Tips: []string{
			"TWA Hotel is connected via shuttle for long layovers",
			"Terminal transfers require the AirTrain; allow 20 minutes",
		},
	},
	"LAX": {
		IATA:        "LAX",
		Name:        "Los Angeles International Airport",
		City:        "Los Angeles",
		Country:     "United States",
		Timezone:    "America/Los_Angeles",
		Coordinates: &model.Coordinates{Latitude: 33.9416, Longitude: -118.4085},
		Terminals:   []string{"1", "2", "3", "4", "5", "6", "7", "8", "B"},
		Amenities: []string{
			"Free Wi-Fi throughout terminals",
			"Multiple dining options post-security",
			"Lounges available for premium passengers",
			"Observation deck in Tom Bradley terminal",
		},
		Services: []string{
			"Baggage storage near Terminal 1",
			"LAX FlyAway bus to downtown",
			"Pet relief areas in every terminal",
		},
		Transit: map[string]string{
			"shuttle": "LAX Shuttle connects terminals and Metro",
			"taxi":    "30-60 minutes to downtown depending on traffic",
		},
	},
	"LHR": {
		IATA:        "LHR",
		Name:        "London Heathrow Airport",
		City:        "London",
		Country:     "United Kingdom",
		Timezone:    "Europe/London",
		Coordinates: &model.Coordinates{Latitude: 51.4700, Longitude: -0.4543},
		Terminals:   []string{"2", "3", "4", "5"},
		Amenities: []string{
			"Free Wi-Fi (Heathrow Wi-Fi)",
			"Premium Plaza lounges",
			"Sleep pods in Terminal 5",
			"Spa and shower facilities",
			"Personal shopper service",
		},
		Services: []string{
			"Luggage storage at every terminal",
			"Heathrow Express to Paddington",
			"Hotel shuttles from central bus station",
		},
		Transit: map[string]string{
			"train": "Heathrow Express, 15 minutes to Paddington",
			"tube":  "Piccadilly line, 45 minutes to Central London",
			"bus":   "National Express coaches nationwide",
		},
		Tips: []string{
			"Terminal 5 security is fastest before 06:00",
			"Allow 90 minutes for inter-terminal connections",
		},
	},
	"ORD": {
		IATA:        "ORD",
		Name:        "Chicago O'Hare International Airport",
		City:        "Chicago",
		Country:     "United States",
		Timezone:    "America/Chicago",
		Coordinates: &model.Coordinates{Latitude: 41.9742, Longitude: -87.9073},
		Terminals:   []string{"1", "2", "3", "5"},
		Amenities: []string{
			"Free Wi-Fi throughout terminals",
			"Yoga room in Terminal 3",
			"Urban garden in Terminal 3 rotunda",
			"Charging stations near all gates",
		},
		Services: []string{
			"Baggage storage in Terminal 2",
			"Blue Line CTA to downtown",
		},
		Transit: map[string]string{
			"train": "Blue Line, 40-45 minutes to the Loop",
		},
	},
	"ATL": {
		IATA:        "ATL",
		Name:        "Hartsfield-Jackson Atlanta International Airport",
		City:        "Atlanta",
		Country:     "United States",
		Timezone:    "America/New_York",
		Coordinates: &model.Coordinates{Latitude: 33.6407, Longitude: -84.4277},
		Terminals:   []string{"T", "A", "B", "C", "D", "E", "F"},
		Amenities: []string{
			"Free Wi-Fi throughout terminals",
			"Art program along the Plane Train walkway",
			"Multiple dining options post-security",
		},
		Services: []string{
			"Plane Train between concourses",
			"MARTA rail to downtown",
		},
		Transit: map[string]string{
			"train": "MARTA, 20 minutes to downtown Atlanta",
		},
	},
	"DFW": {
		IATA:        "DFW",
		Name:        "Dallas/Fort Worth International Airport",
		City:        "Dallas",
		Country:     "United States",
		Timezone:    "America/Chicago",
		Coordinates: &model.Coordinates{Latitude: 32.8998, Longitude: -97.0403},
		Terminals:   []string{"A", "B", "C", "D", "E"},
		Amenities: []string{
			"Free Wi-Fi throughout terminals",
			"Skylink train between all terminals",
			"Founders' Plaza observation area",
		},
		Services: []string{
			"Minute Suites in Terminal D",
			"TEXRail to Fort Worth",
		},
	},
	"SFO": {
		IATA:        "SFO",
		Name:        "San Francisco International Airport",
		City:        "San Francisco",
		Country:     "United States",
		Timezone:    "America/Los_Angeles",
		Coordinates: &model.Coordinates{Latitude: 37.6213, Longitude: -122.3790},
		Terminals:   []string{"1", "2", "3", "I"},
		Amenities: []string{
			"Free Wi-Fi throughout terminals",
			"SFO Museum exhibitions",
			"Yoga rooms in Terminals 2 and 3",
		},
		Services: []string{
			"BART station inside International Terminal",
			"AirTrain between terminals",
		},
		Transit: map[string]string{
			"train": "BART, 30 minutes to downtown San Francisco",
		},
	},
	"CDG": {
		IATA:        "CDG",
		Name:        "Paris Charles de Gaulle Airport",
		City:        "Paris",
		Country:     "France",
		Timezone:    "Europe/Paris",
		Coordinates: &model.Coordinates{Latitude: 49.0097, Longitude: 2.5479},
		Terminals:   []string{"1", "2A", "2B", "2C", "2D", "2E", "2F", "2G", "3"},
		Amenities: []string{
			"Free Wi-Fi throughout terminals",
			"Instant Paris lounge in Terminal 2E",
			"Espace Musees art space",
		},
		Services: []string{
			"CDGVAL shuttle between terminals",
			"RER B to central Paris",
		},
		Transit: map[string]string{
			"train": "RER B, 35 minutes to Gare du Nord",
		},
	},
	"DXB": {
		IATA:        "DXB",
		Name:        "Dubai International Airport",
		City:        "Dubai",
		Country:     "United Arab Emirates",
		Timezone:    "Asia/Dubai",
		Coordinates: &model.Coordinates{Latitude: 25.2532, Longitude: 55.3657},
		Terminals:   []string{"1", "2", "3"},
		Amenities: []string{
			"Free Wi-Fi throughout terminals",
			"Zen gardens in Terminal 3",
			"Sleep pods and hourly hotels",
			"Swimming pool and gym in Terminal 3 hotel",
		},
		Services: []string{
			"Dubai Metro red line from Terminals 1 and 3",
			"Baggage storage at all terminals",
		},
	},
	"SIN": {
		IATA:        "SIN",
		Name:        "Singapore Changi Airport",
		City:        "Singapore",
		Country:     "Singapore",
		Timezone:    "Asia/Singapore",
		Coordinates: &model.Coordinates{Latitude: 1.3644, Longitude: 103.9915},
		Terminals:   []string{"1", "2", "3", "4"},
		Amenities: []string{
			"Free Wi-Fi throughout terminals",
			"Butterfly garden in Terminal 3",
			"Rooftop pool in Terminal 1",
			"Free 24-hour movie theatres",
			"Jewel Rain Vortex waterfall",
		},
		Services: []string{
			"Free Singapore tour for layovers over 5.5 hours",
			"MRT to city from Terminal 2/3",
		},
		Tips: []string{
			"Transit hotel inside Terminal 3 rents rooms by 6-hour block",
		},
	},
	"HND": {
		IATA:        "HND",
		Name:        "Tokyo Haneda Airport",
		City:        "Tokyo",
		Country:     "Japan",
		Timezone:    "Asia/Tokyo",
		Coordinates: &model.Coordinates{Latitude: 35.5494, Longitude: 139.7798},
		Terminals:   []string{"1", "2", "3"},
		Amenities: []string{
			"Free Wi-Fi throughout terminals",
			"Observation decks on Terminals 1 and 2",
			"Edo-style shopping street in Terminal 3",
		},
		Services: []string{
			"Tokyo Monorail to Hamamatsucho",
			"Keikyu line to Shinagawa",
		},
	},
	"FRA": {
		IATA:        "FRA",
		Name:        "Frankfurt Airport",
		City:        "Frankfurt",
		Country:     "Germany",
		Timezone:    "Europe/Berlin",
		Coordinates: &model.Coordinates{Latitude: 50.0379, Longitude: 8.5622},
		Terminals:   []string{"1", "2"},
		Amenities: []string{
			"Free Wi-Fi throughout terminals",
			"Leisure zones with loungers",
			"Showers in both terminals",
		},
		Services: []string{
			"SkyLine between terminals",
			"Regional and ICE trains below Terminal 1",
		},
	},
	"AMS": {
		IATA:        "AMS",
		Name:        "Amsterdam Airport Schiphol",
		City:        "Amsterdam",
		Country:     "Netherlands",
		Timezone:    "Europe/Amsterdam",
		Coordinates: &model.Coordinates{Latitude: 52.3105, Longitude: 4.7683},
		Terminals:   []string{"1", "2", "3"},
		Amenities: []string{
			"Free Wi-Fi throughout terminals",
			"Rijksmuseum annex after passport control",
			"Airport library in Lounge 2",
			"Park with real trees in Lounge 1",
		},
		Services: []string{
			"NS trains to Amsterdam Centraal every 10 minutes",
			"Baggage storage in arrivals",
		},
	},
}

// Airport returns the curated record for an uppercase IATA code.
func Airport(code string) (model.AirportRecord, bool) {
	rec, ok := airports[code]
	return rec, ok
}

// AirportCount reports the size of the curated table.
func AirportCount() int {
	return len(airports)
}
