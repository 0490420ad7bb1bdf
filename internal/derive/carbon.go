package derive

import (
	"math"
	"strings"

	"github.com/skydeck-app/skydeck/internal/model"
	"github.com/skydeck-app/skydeck/internal/staticdata"
)

// emissionFactors maps aircraft type to kg CO2 per passenger-kilometer,
// with category fallbacks. Process-wide constant.
var emissionFactors = map[string]float64{
	// Narrow-body jets
	"A320": 0.095, "A319": 0.097, "A321": 0.094,
	"B737": 0.096, "B738": 0.094, "B739": 0.092,
	// Wide-body jets
	"A330": 0.090, "A340": 0.105, "A350": 0.085, "A359": 0.085, "A388": 0.105,
	"B767": 0.100, "B777": 0.095, "B787": 0.088, "B788": 0.088, "B789": 0.087,
	// Regional jets
	"E170": 0.102, "E190": 0.098, "CRJ2": 0.110, "CRJ9": 0.102,
	// Prop aircraft
	"ATR7": 0.115, "DH8D": 0.108,
	// Defaults by category
	"small": 0.115, "medium": 0.098, "large": 0.090, "regional": 0.105,
}

// Heuristic constants carried over from the original accounting. Exposed as
// variables so an embedder can override them without a rebuild.
var (
	OffsetUSDPerTon     = 20.0
	KgCO2PerTreePerYear = 21.0
	SAFReductionPercent = 60.0
)

// seatClassMultipliers scale per-passenger emissions by cabin footprint.
var seatClassMultipliers = map[string]float64{
	"economy":  1,
	"premium":  1.5,
	"business": 3,
}

// typeAliases maps normalized model prefixes to their emission-table type.
// Checked in order so longer prefixes win.
var typeAliases = []struct {
	prefix string
	code   string
}{
	{"B7378", "B738"},
	{"B7379", "B739"},
	{"B7878", "B788"},
	{"B7879", "B789"},
	{"A3509", "A359"},
	{"A380", "A388"},
	{"A320N", "A320"},
	{"A321N", "A321"},
}

// NormalizeAircraftType uppercases the raw model string, strips everything
// non-alphanumeric, and collapses known variants onto table entries.
func NormalizeAircraftType(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	t := b.String()
	if t == "" {
		return ""
	}
	if _, ok := emissionFactors[t]; ok {
		return t
	}
	for _, alias := range typeAliases {
		if strings.HasPrefix(t, alias.prefix) {
			return alias.code
		}
	}
	// Long variants like B738MAX still start with a known four-char type.
	if len(t) > 4 {
		if _, ok := emissionFactors[t[:4]]; ok {
			return t[:4]
		}
	}
	return t
}

// InferAircraftType picks the aircraft type for a flight: explicit model,
// then the Mode-S hex hint, then the carrier fleet table, then "medium".
func InferAircraftType(f model.FlightRecord) string {
	if t := NormalizeAircraftType(f.AircraftType); t != "" {
		return t
	}
	if len(f.ICAO24) >= 2 {
		if t, ok := staticdata.ICAO24Aircraft(strings.ToUpper(f.ICAO24[:2])); ok {
			return t
		}
	}
	carrier := f.Airline
	if carrier == "" {
		carrier = f.Callsign
	}
	if len(carrier) >= 2 {
		if t, ok := staticdata.CarrierAircraft(strings.ToUpper(carrier[:2])); ok {
			return t
		}
	}
	return "medium"
}

// EmissionFactor looks up the per-passenger-km factor, falling back to the
// medium category.
func EmissionFactor(aircraftType string) float64 {
	if f, ok := emissionFactors[aircraftType]; ok {
		return f
	}
	return emissionFactors["medium"]
}

// SeatClassMultiplier returns the cabin multiplier, defaulting to economy.
func SeatClassMultiplier(seatClass string) (string, float64) {
	class := strings.ToLower(strings.TrimSpace(seatClass))
	if m, ok := seatClassMultipliers[class]; ok {
		return class, m
	}
	return "economy", 1
}

// CarbonInput bundles everything Carbon needs. Origin/Destination records
// are optional; their absence only degrades the distance tier.
type CarbonInput struct {
	Flight      model.FlightRecord
	Origin      *model.AirportRecord
	Destination *model.AirportRecord
	Passengers  int
	SeatClass   string
	Source      string
}

// Carbon computes the emission accounting for one itinerary. Total for all
// well-formed input; missing sub-fields degrade through documented
// defaults rather than failing.
func Carbon(in CarbonInput) model.CarbonResult {
	pax := in.Passengers
	if pax < 1 {
		pax = 1
	}

	distance, method := FlightDistance(in.Flight, in.Origin, in.Destination)
	aircraftType := InferAircraftType(in.Flight)
	factor := EmissionFactor(aircraftType)
	seatClass, multiplier := SeatClassMultiplier(in.SeatClass)

	kgPerPax := distance * factor * multiplier
	totalKg := math.Round(kgPerPax * float64(pax))

	safPerPax := kgPerPax * (1 - SAFReductionPercent/100)
	safTotal := math.Round(safPerPax * float64(pax))

	source := "calculated"
	if in.Source == model.SourceSynthetic || in.Source == model.SourceMock {
		source = "estimated"
	}

	return model.CarbonResult{
		KgPerPax:       int(math.Round(kgPerPax)),
		TotalKg:        int(totalKg),
		DistanceKM:     int(math.Round(distance)),
		DistanceMethod: method,
		AircraftType:   aircraftType,
		EmissionFactor: factor,
		SeatClass:      seatClass,
		OffsetCostUSD:  math.Round(totalKg/1000*OffsetUSDPerTon*100) / 100,
		OffsetTrees:    int(math.Ceil(totalKg / KgCO2PerTreePerYear)),
		SAFKgPerPax:    int(math.Round(safPerPax)),
		SAFTotalKg:     int(safTotal),
		Source:         source,
	}
}
