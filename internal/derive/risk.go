package derive

import (
	"math"
	"time"

	"github.com/skydeck-app/skydeck/internal/model"
	"github.com/skydeck-app/skydeck/internal/staticdata"
)

// Connection-risk defaults.
var (
	AssumedLayoverMinutes = 60
	NonStopRiskPercent    = 5
)

// LayoverRiskPercent maps a layover length in minutes to a missed-connection
// risk percentage via fixed breakpoints.
func LayoverRiskPercent(minutes int) int {
	switch {
	case minutes < 45:
		return 60
	case minutes < 60:
		return 40
	case minutes < 90:
		return 20
	default:
		return 8
	}
}

// ConnectionRisk scores the itinerary's connection. Leg timestamps give the
// true layover; a bare stop count assumes the configured default; non-stop
// itineraries are a flat low constant.
func ConnectionRisk(f model.FlightRecord) model.ConnectionRisk {
	if len(f.Legs) > 1 {
		leg1Arr := f.Legs[0].Arrival
		leg2Dep := f.Legs[1].Departure
		if !leg1Arr.IsZero() && !leg2Dep.IsZero() {
			layover := int(math.Max(0, math.Round(leg2Dep.Sub(leg1Arr).Minutes())))
			advice := "Moderate/Low risk"
			if layover < 60 {
				advice = "High risk"
			}
			return model.ConnectionRisk{
				HasConnection:  true,
				LayoverMinutes: layover,
				RiskPercent:    LayoverRiskPercent(layover),
				Advice:         advice,
			}
		}
	}

	if f.Stops > 0 {
		return model.ConnectionRisk{
			HasConnection:  true,
			LayoverMinutes: AssumedLayoverMinutes,
			RiskPercent:    LayoverRiskPercent(AssumedLayoverMinutes),
			Advice:         "Estimated",
		}
	}

	return model.ConnectionRisk{
		HasConnection:  false,
		LayoverMinutes: 0,
		RiskPercent:    NonStopRiskPercent,
		Advice:         "Non-stop, low connection risk",
	}
}

// Airport processing heuristics used by Planner, in minutes.
const (
	checkInCloseIntl        = 90
	checkInCloseDomestic    = 60
	arriveBeforeIntl        = 180
	arriveBeforeDomestic    = 120
	boardingCloseMinutes    = 30
	securityBufferMinutes   = 30
	transitToAirportMinutes = 60
)

// isInternational compares endpoint countries when known, otherwise falls
// back to the major-US-airport heuristic. Unknown pairs assume international.
func isInternational(f model.FlightRecord, origin, destination *model.AirportRecord) bool {
	if origin != nil && destination != nil &&
		origin.Country != "" && origin.Country != "Unknown" &&
		destination.Country != "" && destination.Country != "Unknown" {
		return origin.Country != destination.Country
	}
	if staticdata.IsUSAirport(f.Origin) && staticdata.IsUSAirport(f.Destination) {
		return false
	}
	return true
}

// Planner builds the when-to-leave hints for a flight.
func Planner(f model.FlightRecord, origin, destination *model.AirportRecord) model.PlannerHints {
	international := isInternational(f, origin, destination)

	checkInClose := checkInCloseDomestic
	arriveBefore := arriveBeforeDomestic
	if international {
		checkInClose = checkInCloseIntl
		arriveBefore = arriveBeforeIntl
	}

	dep := f.EstimatedDeparture
	if dep.IsZero() {
		dep = f.ScheduledDeparture
	}

	hints := model.PlannerHints{
		DepartureLocal:          "TBD",
		CheckInCloseMinutes:     checkInClose,
		BoardingCloseMinutes:    boardingCloseMinutes,
		SecurityBufferMinutes:   securityBufferMinutes,
		TransitToAirportMinutes: transitToAirportMinutes,
		ConnectionRisk:          ConnectionRisk(f),
	}

	if !dep.IsZero() {
		hints.DepartureLocal = dep.Format("15:04")
		arrival := dep.Add(-time.Duration(arriveBefore) * time.Minute)
		hints.RecommendedArrivalISO = arrival.Format(time.RFC3339)
		hints.RecommendedLeaveHomeISO = arrival.
			Add(-time.Duration(transitToAirportMinutes) * time.Minute).
			Format(time.RFC3339)
	}

	if f.Stops > 0 {
		hints.AlternateSuggestions = []string{
			"If you prefer lower connection risk, consider a later non-stop or a one-stop with a longer layover.",
		}
	} else {
		hints.AlternateSuggestions = []string{
			"Non-stop flight, no connection risk estimated.",
		}
	}

	return hints
}
