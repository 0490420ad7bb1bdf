package staticdata

// Generic amenity/service/tip lists used when a provider response omits
// them and for synthetic records.

// GenericAmenities returns the default amenity list.
func GenericAmenities() []string {
	return []string{
		"Free Wi-Fi throughout terminals",
		"Multiple dining options post-security",
		"Lounges available for premium passengers",
		"Charging stations near all gates",
		"Rest zones with comfortable seating",
		"Business centers with printing facilities",
		"Children's play areas",
		"Medical facilities and pharmacies",
		"Currency exchange and ATMs",
		"Shopping outlets and duty-free stores",
	}
}

// GenericServices returns the default service list.
func GenericServices() []string {
	return []string{
		"Baggage wrapping services",
		"Luggage storage and lockers",
		"Meet & greet services",
		"Airport hotels for long layovers",
		"Transportation to city center",
	}
}

// GenericTips returns the default traveler tips.
func GenericTips() []string {
	return []string{
		"Arrive at least 2 hours before domestic flights, 3 hours for international",
		"Download the airport app for real-time updates",
		"Pack essentials in carry-on in case of baggage delay",
		"Keep liquids in containers under 100ml for carry-on",
		"Have boarding pass and ID ready at security",
	}
}
