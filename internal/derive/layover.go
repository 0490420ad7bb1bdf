package derive

import (
	"github.com/skydeck-app/skydeck/internal/model"
	"github.com/skydeck-app/skydeck/internal/staticdata"
)

// Layover duration buckets.
const (
	BucketShort  = "short"  // under 3 hours
	BucketMedium = "medium" // 3 to 8 hours
	BucketLong   = "long"   // 8 hours and up
)

// DefaultLayoverHours is assumed when a request carries no duration.
var DefaultLayoverHours = 3.0

// DurationBucket assigns a layover duration to its advisory bucket.
// Boundaries are inclusive upward: exactly 3h is medium, exactly 8h long.
func DurationBucket(hours float64) string {
	switch {
	case hours < 3:
		return BucketShort
	case hours < 8:
		return BucketMedium
	default:
		return BucketLong
	}
}

var bucketActivities = map[string][]string{
	BucketShort: {
		"Grab a meal near your departure gate",
		"Browse duty-free and terminal shops",
		"Find a charging station and top up devices",
	},
	BucketMedium: {
		"Book a lounge pass for showers and quiet seating",
		"Explore the terminal's dining and shopping areas",
		"Stretch out in a rest zone or quiet area",
	},
	BucketLong: {
		"Consider a short trip into the city if transit is fast",
		"Book an airport hotel or day room to rest properly",
		"Take a full meal away from the gate area",
	},
}

var bucketServices = map[string][]string{
	BucketShort: {
		"Fast-track security where available",
		"Gate-area food delivery at larger airports",
	},
	BucketMedium: {
		"Lounges typically charge $35-50/day with shower access",
		"Luggage storage and lockers",
	},
	BucketLong: {
		"Airport hotels with day rates",
		"Left-luggage counters for city excursions",
		"Some airports offer free city tours for long layovers",
	},
}

var bucketWarnings = map[string][]string{
	BucketShort: {
		"Stay airside: clearing security again may take longer than your layover",
		"Check your departure gate before settling in",
	},
	BucketMedium: {
		"Re-clear security with at least 90 minutes to spare if you exit",
	},
	BucketLong: {
		"Check visa requirements before leaving the airport",
		"Confirm whether checked bags are tagged through to your destination",
	},
}

// Advisory builds the recommendation set for an airport and dwell time.
// Generic bucket templates come first; curated airport-specific extras are
// appended when present. Deterministic for a given (airport, duration).
func Advisory(airport model.AirportRecord, durationHours float64) model.LayoverAdvisory {
	if durationHours <= 0 {
		durationHours = DefaultLayoverHours
	}
	bucket := DurationBucket(durationHours)

	adv := model.LayoverAdvisory{
		Airport:       airport.IATA,
		City:          airport.City,
		Bucket:        bucket,
		DurationHours: durationHours,
		Activities:    append([]string(nil), bucketActivities[bucket]...),
		Services:      append([]string(nil), bucketServices[bucket]...),
		Warnings:      append([]string(nil), bucketWarnings[bucket]...),
		Tips:          append([]string(nil), airport.Tips...),
	}

	if extras, ok := staticdata.LayoverExtras(airport.IATA); ok {
		adv.Activities = append(adv.Activities, extras.Activities...)
		adv.Services = append(adv.Services, extras.Services...)
		adv.Tips = append(adv.Tips, extras.Tips...)
	}

	return adv
}
