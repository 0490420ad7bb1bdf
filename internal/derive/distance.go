// Package derive holds the pure derivation functions applied to canonical
// records: great-circle distance, carbon accounting, layover advisories,
// and connection-risk scoring. Nothing here performs I/O.
package derive

import (
	"math"

	"github.com/skydeck-app/skydeck/internal/model"
	"github.com/skydeck-app/skydeck/internal/staticdata"
)

const (
	earthRadiusKM  = 6371
	cruiseSpeedKMH = 850
)

// DefaultDistanceKM is the last-resort distance when nothing else is known.
var DefaultDistanceKM = 1500.0

// Distance methods reported alongside the derived value.
const (
	DistanceByCoordinates = "coordinates"
	DistanceByRouteTable  = "route_table"
	DistanceByFlightTime  = "flight_time"
	DistanceByDefault     = "default"
)

// Haversine returns the great-circle distance in kilometers between two
// lat/lon points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

// FlightDistance resolves a distance for the flight through the fallback
// chain: endpoint coordinates, static route table, scheduled-duration
// heuristic, fixed default. The second return names the tier that fired.
func FlightDistance(f model.FlightRecord, origin, destination *model.AirportRecord) (float64, string) {
	if origin != nil && destination != nil &&
		origin.Coordinates != nil && destination.Coordinates != nil {
		km := Haversine(
			origin.Coordinates.Latitude, origin.Coordinates.Longitude,
			destination.Coordinates.Latitude, destination.Coordinates.Longitude,
		)
		return km, DistanceByCoordinates
	}

	if km, ok := staticdata.RouteDistance(f.Origin, f.Destination); ok {
		return float64(km), DistanceByRouteTable
	}

	if !f.ScheduledDeparture.IsZero() && !f.ScheduledArrival.IsZero() &&
		f.ScheduledArrival.After(f.ScheduledDeparture) {
		hours := f.ScheduledArrival.Sub(f.ScheduledDeparture).Hours()
		return hours * cruiseSpeedKMH, DistanceByFlightTime
	}

	return DefaultDistanceKM, DistanceByDefault
}
