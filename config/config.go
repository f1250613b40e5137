package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	APIURL       string
	FetchTimeout time.Duration
	CacheTTL     time.Duration

	ListenAddr string
	Debug      bool

	ExportPrefix string
	TopBrands    int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		APIURL:       getEnv("API_URL", "https://w7e62hoex6.execute-api.us-east-1.amazonaws.com/prod/getScrapingData"),
		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 30*time.Second),
		CacheTTL:     getEnvDuration("CACHE_TTL", 5*time.Minute),

		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),
		Debug:      getEnvBool("DEBUG", false),

		ExportPrefix: getEnv("EXPORT_PREFIX", "voitures_filtered"),
		TopBrands:    getEnvInt("TOP_BRANDS", 10),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
