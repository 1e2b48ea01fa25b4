package config

import (
	"os"
	"strconv"
	"time"

	"github.com/aturganbekov/prime-sieve/backend/internal/common/constants"
)

type Config struct {
	HTTPPort           string
	DatabaseURL        string
	UsersFile          string
	HistoryFile        string
	ImageDir           string
	RequestTimeout     time.Duration
	SieveMaxConcurrent int
}

// Load reads the service configuration from the environment. DATABASE_URL
// is optional: when set, credentials and history live in Postgres,
// otherwise in the two JSON files.
func Load() Config {
	return Config{
		HTTPPort:           getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		UsersFile:          getEnv("USERS_FILE", constants.DefaultUsersFile),
		HistoryFile:        getEnv("HISTORY_FILE", constants.DefaultHistoryFile),
		ImageDir:           getEnv("IMAGE_DIR", constants.DefaultImageDir),
		RequestTimeout:     getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		SieveMaxConcurrent: getIntEnv("SIEVE_MAX_CONCURRENT", constants.DefaultSieveMaxConcurrent),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
