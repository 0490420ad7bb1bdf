package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all process configuration. Provider credentials are
// optional: an absent key marks that provider unavailable rather than
// failing startup.
type Config struct {
	Port           string
	AllowedOrigins []string
	DatabaseURL    string

	OpenSkyClientID     string
	OpenSkyClientSecret string
	RapidAPIKey         string
	AviationStackKey    string
	TravelpayoutsToken  string
	TravelpayoutsMarker string

	AirportCacheTTL time.Duration
	FlightCacheTTL  time.Duration
	FareCacheTTL    time.Duration
	ProviderTimeout time.Duration

	CacheMaxEntries int
	StatsMaxBuckets int
}

// Load reads configuration from the environment, loading a .env file first
// when one is present.
func Load() (*Config, error) {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	origins := strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: origins,
		DatabaseURL:    os.Getenv("DATABASE_URL"),

		OpenSkyClientID:     os.Getenv("OPENSKY_CLIENT_ID"),
		OpenSkyClientSecret: os.Getenv("OPENSKY_CLIENT_SECRET"),
		RapidAPIKey:         os.Getenv("RAPIDAPI_KEY"),
		AviationStackKey:    os.Getenv("AVIATIONSTACK_API_KEY"),
		TravelpayoutsToken:  os.Getenv("TRAVELPAYOUTS_TOKEN"),
		TravelpayoutsMarker: os.Getenv("TRAVELPAYOUTS_MARKER"),

		AirportCacheTTL: getDurationEnv("AIRPORT_CACHE_TTL_SECONDS", 30*60),
		FlightCacheTTL:  getDurationEnv("FLIGHT_CACHE_TTL_SECONDS", 10*60),
		FareCacheTTL:    getDurationEnv("FARE_CACHE_TTL_SECONDS", 5*60),
		ProviderTimeout: getDurationEnv("PROVIDER_TIMEOUT_SECONDS", 8),

		CacheMaxEntries: getIntEnv("CACHE_MAX_ENTRIES", 1000),
		StatsMaxBuckets: getIntEnv("STATS_MAX_BUCKETS", 100),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultSeconds int) time.Duration {
	return time.Duration(getIntEnv(key, defaultSeconds)) * time.Second
}
