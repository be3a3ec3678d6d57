package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds environment driven configuration values. Components that need
// a value (page size, cache TTL) receive it explicitly instead of reading
// ambient globals.
type Config struct {
	Port          string
	DatabaseURL   string
	SessionSecret string

	// Listing page size for every feed
	PageSize int
	// How long a cached rendering of the global feed may be served
	IndexCacheTTL time.Duration
	// Page cache capacity (entries)
	CacheSize int

	UploadDir      string
	MaxUploadBytes int64

	LogPath  string
	LogLevel string
}

// Load reads configuration from the environment. Call after godotenv has had
// a chance to populate it.
func Load() Config {
	return Config{
		Port:           getenv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SessionSecret:  getenv("SESSION_SECRET", "secret_key_change_me"),
		PageSize:       getint("PAGE_SIZE", 10),
		IndexCacheTTL:  time.Duration(getint("INDEX_CACHE_SECONDS", 20)) * time.Second,
		CacheSize:      getint("CACHE_SIZE", 500),
		UploadDir:      getenv("UPLOAD_DIR", "./web/media/posts"),
		MaxUploadBytes: int64(getint("MAX_UPLOAD_MB", 10)) * 1024 * 1024,
		LogPath:        os.Getenv("LOG_PATH"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
