package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIKey       string
	TokenFile    string
	LogDir       string
	RedisURL     string
	CacheEntries int
	ChannelTTL   time.Duration
	ListTTL      time.Duration
}

// Load reads envFile when it exists, then the environment. Variables already set
// in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error while loading %s: %w", envFile, err)
		}
	}

	cacheEntries, err := getEnvInt("YTX_CACHE_ENTRIES", 1000)
	if err != nil {
		return nil, err
	}

	channelTTL, err := getEnvDuration("YTX_CHANNEL_TTL", 60*time.Minute)
	if err != nil {
		return nil, err
	}

	listTTL, err := getEnvDuration("YTX_LIST_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	return &Config{
		APIKey:       os.Getenv("YTX_API_KEY"),
		TokenFile:    getEnv("YTX_TOKEN_FILE", "token.json"),
		LogDir:       getEnv("YTX_LOG_DIR", "logs"),
		RedisURL:     os.Getenv("YTX_REDIS_URL"),
		CacheEntries: cacheEntries,
		ChannelTTL:   channelTTL,
		ListTTL:      listTTL,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
