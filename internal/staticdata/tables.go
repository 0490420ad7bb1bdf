package staticdata

// routeDistances maps "ORIG-DEST" to great-circle kilometers for routes
// whose endpoints may lack coordinates. Symmetric lookups are handled by
// RouteDistance.
var routeDistances = map[string]int{
	// Domestic US
	"JFK-LAX": 3975, "LAX-ORD": 2804, "DFW-ORD": 1290,
	"ATL-LAX": 1944, "DEN-JFK": 2592, "SFO-MIA": 4176,
	// Transatlantic
	"JFK-LHR": 5548, "LAX-LHR": 8775, "ORD-LHR": 6340,
	"MIA-LHR": 7120, "SEA-LHR": 7720, "BOS-LHR": 5270,
	// Transpacific
	"LAX-HND": 8808, "SFO-HND": 9130, "JFK-NRT": 10850,
	"LAX-SYD": 12039, "YVR-SYD": 12575,
	// Europe
	"LHR-CDG": 344, "FRA-AMS": 365, "MAD-LIS": 503,
	"CDG-IST": 2250, "LHR-DXB": 5492,
}

// RouteDistance returns the static distance for an origin/destination pair
// in either direction.
func RouteDistance(origin, destination string) (int, bool) {
	if km, ok := routeDistances[origin+"-"+destination]; ok {
		return km, true
	}
	if km, ok := routeDistances[destination+"-"+origin]; ok {
		return km, true
	}
	return 0, false
}

// carrierFleet maps an airline/callsign prefix to the type the carrier
// most commonly flies. Used when a flight carries no aircraft model.
var carrierFleet = map[string]string{
	"AA": "B738", "DL": "B739", "UA": "A320",
	"WN": "B737", "B6": "A321", "LH": "A320",
	"BA": "A320", "AF": "A320", "EK": "A388",
	"SQ": "A359", "NH": "B789", "QF": "B789",
}

// CarrierAircraft returns the typical aircraft for a carrier prefix.
func CarrierAircraft(prefix string) (string, bool) {
	t, ok := carrierFleet[prefix]
	return t, ok
}

// icao24Fleet maps the leading characters of a Mode-S hex code to an
// aircraft type hint. Coarse, but better than the category default.
var icao24Fleet = map[string]string{
	"A0": "A320", "A1": "A321", "A2": "A330",
	"B0": "B738", "B1": "B739", "B2": "B788",
	"C0": "CRJ9", "E0": "E190", "F0": "A388",
}

// ICAO24Aircraft returns the aircraft type hint for a Mode-S hex prefix.
func ICAO24Aircraft(prefix string) (string, bool) {
	t, ok := icao24Fleet[prefix]
	return t, ok
}

// usIATAs are the major US airports used by the domestic/international
// heuristic when country data is unavailable.
var usIATAs = map[string]bool{
	"JFK": true, "LAX": true, "ORD": true, "ATL": true, "DFW": true,
	"SFO": true, "MIA": true, "SEA": true, "BOS": true, "IAD": true,
	"DEN": true, "PHX": true, "IAH": true,
}

// IsUSAirport reports whether the code is a known major US airport.
func IsUSAirport(code string) bool {
	return usIATAs[code]
}
