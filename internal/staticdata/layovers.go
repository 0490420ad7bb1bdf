package staticdata

// LayoverOverride holds airport-specific additions appended to the generic
// duration-bucket templates.
type LayoverOverride struct {
	Activities []string
	Services   []string
	Tips       []string
}

var layoverOverrides = map[string]LayoverOverride{
	"JFK": {
		Activities: []string{
			"Visit the TWA Hotel's restored 1962 lounge (connected via shuttle)",
			"Rockaway Beach is 30 minutes away on the A train",
			"Art galleries and live music performances throughout terminals",
		},
		Services: []string{
			"Minute Suites sleep pods in Terminal 4",
		},
		Tips: []string{
			"Allow 20 minutes for AirTrain terminal transfers",
		},
	},
	"LHR": {
		Activities: []string{
			"Windsor Castle is 25 minutes by taxi",
			"Kew Gardens is 30 minutes on the Tube",
		},
		Services: []string{
			"Sleep pods and showers in Terminal 5",
			"Sofitel is connected to Terminal 5 for day rooms",
		},
		Tips: []string{
			"Heathrow Express reaches Paddington in 15 minutes",
		},
	},
	"SIN": {
		Activities: []string{
			"Jewel Rain Vortex and canopy park are landside of Terminal 1",
			"Free 24-hour movie theatres in Terminals 2 and 3",
		},
		Services: []string{
			"Free Singapore city tour for layovers over 5.5 hours",
			"Transit hotel rooms rented in 6-hour blocks",
		},
	},
	"DXB": {
		Activities: []string{
			"Zen gardens and the aviation gallery in Terminal 3",
		},
		Services: []string{
			"Swimming pool and gym at the Terminal 3 hotel",
			"Sleep pods near most Terminal 3 gates",
		},
	},
}

// LayoverExtras returns the airport-specific advisory additions, if any.
func LayoverExtras(code string) (LayoverOverride, bool) {
	o, ok := layoverOverrides[code]
	return o, ok
}
