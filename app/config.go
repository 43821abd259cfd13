package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the settings read from the environment
type Config struct {
	Port            string
	BaseURL         string
	UploadDir       string
	RestaurantName  string
	CORSOrigins     []string
	RateLimitRPS    float64
	RateLimitBurst  int
	Location        *time.Location
	CredentialsPath string // Google service account file; Drive import is disabled when empty
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// LoadConfig reads the configuration from environment variables
func LoadConfig() (*Config, error) {
	// PORT from Render doesn't include the colon, but accept it either way
	port := strings.TrimPrefix(getenv("PORT", "8080"), ":")

	cfg := &Config{
		Port:            port,
		BaseURL:         strings.TrimSuffix(getenv("BASE_URL", "http://localhost:"+port), "/"),
		UploadDir:       getenv("UPLOAD_DIR", "uploads"),
		RestaurantName:  getenv("RESTAURANT_NAME", "FoodPoint"),
		CredentialsPath: getenv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		Location:        time.Local,
	}

	for _, origin := range strings.Split(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	rps, err := strconv.ParseFloat(getenv("RATE_LIMIT_RPS", "20"), 64)
	if err != nil || rps <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must be a positive number")
	}
	cfg.RateLimitRPS = rps

	burst, err := strconv.Atoi(getenv("RATE_LIMIT_BURST", "40"))
	if err != nil || burst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_BURST must be a positive integer")
	}
	cfg.RateLimitBurst = burst

	if tz := getenv("TZ", ""); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid TZ %q: %w", tz, err)
		}
		cfg.Location = loc
	}

	return cfg, nil
}
