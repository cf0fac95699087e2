package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	envStartYear   = "YOYO_START_YEAR"
	envEndYear     = "YOYO_END_YEAR"
	envSourceURL   = "YOYO_SOURCE_URL"
	envUserAgent   = "YOYO_USER_AGENT"
	envTimeout     = "YOYO_TIMEOUT"
	envMaxRetries  = "YOYO_MAX_RETRIES"
	envConcurrency = "YOYO_CONCURRENCY"
	envDataDir     = "YOYO_DATA_DIR"
	envLogLevel    = "YOYO_LOG_LEVEL"
)

func applyEnv(cfg *Config) {
	cfg.StartYear = intEnvOrDefault(envStartYear, cfg.StartYear)
	cfg.EndYear = intEnvOrDefault(envEndYear, cfg.EndYear)
	cfg.SourceURL = envOrDefault(envSourceURL, cfg.SourceURL)
	cfg.UserAgent = envOrDefault(envUserAgent, cfg.UserAgent)
	cfg.Timeout = envOrDefault(envTimeout, cfg.Timeout)
	cfg.MaxRetries = intEnvOrDefault(envMaxRetries, cfg.MaxRetries)
	cfg.Concurrency = intEnvOrDefault(envConcurrency, cfg.Concurrency)
	cfg.DataDir = envOrDefault(envDataDir, cfg.DataDir)
	cfg.LogLevel = envOrDefault(envLogLevel, cfg.LogLevel)
}

func envOrDefault(key, defaultValue string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val != "" {
		return val
	}
	return defaultValue
}

// intEnvOrDefault ignores values that are not integers; zero is allowed so
// YOYO_MAX_RETRIES=0 disables retries.
func intEnvOrDefault(key string, defaultValue int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return defaultValue
	}
	return val
}
