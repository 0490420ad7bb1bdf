package engine

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/skydeck-app/skydeck/internal/model"
	"github.com/skydeck-app/skydeck/internal/staticdata"
)

// The synthetic tier builds minimal generic records from the input
// identifiers alone. Everything here is deterministic: the same request
// always synthesizes the same record.

func syntheticAirport(code string) model.AirportRecord {
	return model.AirportRecord{
		IATA:      code,
		Name:      code + " Airport",
		City:      "Unknown",
		Country:   "Unknown",
		Amenities: staticdata.GenericAmenities(),
		Services:  staticdata.GenericServices(),
		Tips:      staticdata.GenericTips(),
	}
}

var mockCarriers = []struct {
	flightNumber string
	airline      string
}{
	{"AA123", "American Airlines"},
	{"DL456", "Delta"},
	{"UA789", "United"},
	{"WN321", "Southwest"},
	{"B6789", "JetBlue"},
}

// routeSeed hashes the request identifiers so mock output is stable per
// route and date.
func routeSeed(parts ...string) uint32 {
	h := fnv.New32a()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{'|'})
	}
	return h.Sum32()
}

func mockFlights(origin, destination, date string) []model.FlightRecord {
	carrier := mockCarriers[routeSeed(origin, destination, date)%uint32(len(mockCarriers))]

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		day = time.Now().UTC().Truncate(24 * time.Hour)
	}
	dep := day.Add(10 * time.Hour)
	arr := day.Add(13 * time.Hour)

	return []model.FlightRecord{{
		Origin:             origin,
		Destination:        destination,
		Callsign:           carrier.flightNumber,
		Airline:            carrier.airline,
		ICAO24:             "ABCDEF",
		AircraftType:       "B738",
		ScheduledDeparture: dep,
		ScheduledArrival:   arr,
		EstimatedDeparture: dep.Add(15 * time.Minute),
		EstimatedArrival:   arr.Add(20 * time.Minute),
		Status:             "scheduled",
		Stops:              0,
	}}
}

// mockFares generates a month of plausible prices seeded by route and
// month: a route-specific base with day-to-day variation and a weekend
// bump, cheapest date flagged.
func mockFares(origin, destination, date string) []model.FarePoint {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		day = time.Now().UTC()
	}
	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := monthStart.AddDate(0, 1, -1).Day()

	seed := routeSeed(origin, destination, monthStart.Format("2006-01"))
	base := 150 + float64(seed%120)

	fares := make([]model.FarePoint, 0, daysInMonth)
	cheapest := -1.0
	for d := 1; d <= daysInMonth; d++ {
		cur := monthStart.AddDate(0, 0, d-1)
		// Small linear-congruential walk keeps variation deterministic.
		seed = seed*1664525 + 1013904223
		price := base + float64(seed%80)
		if wd := cur.Weekday(); wd == time.Friday || wd == time.Sunday {
			price += 35
		}
		if cheapest < 0 || price < cheapest {
			cheapest = price
		}
		fares = append(fares, model.FarePoint{
			Date:     cur.Format("2006-01-02"),
			Price:    price,
			Currency: "USD",
			Airline:  fmt.Sprintf("%s%02d", "XX", seed%90),
		})
	}
	for i := range fares {
		fares[i].IsCheapest = fares[i].Price == cheapest
	}
	return fares
}
