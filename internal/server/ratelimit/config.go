package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by LoadConfig
const (
	EnvEnabled         = "RATE_LIMIT_ENABLED"
	EnvDefaultLimit    = "RATE_LIMIT_DEFAULT_LIMIT"
	EnvDefaultWindow   = "RATE_LIMIT_DEFAULT_WINDOW"
	EnvCleanupInterval = "RATE_LIMIT_CLEANUP_INTERVAL"
	EnvWhitelist       = "RATE_LIMIT_WHITELIST"
	EnvBlacklist       = "RATE_LIMIT_BLACKLIST"
	EnvAnalyzeLimit    = "RATE_LIMIT_ANALYZE_PER_MINUTE"
	EnvBatchLimit      = "RATE_LIMIT_BATCH_PER_MINUTE"
)

// EndpointConfig is the limit for one route.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends with "/"
	Method string        // HTTP method
	Limit  int           // requests per Window; 0 means unlimited
	Window time.Duration // refill window
	Burst  int           // bucket capacity, defaults to Limit
}

func (c *EndpointConfig) burst() int {
	if c.Burst > 0 {
		return c.Burst
	}
	return c.Limit
}

// key groups requests sharing a bucket: prefix routes share one bucket
func (c *EndpointConfig) key(path string) string {
	if c.Path != "" {
		return c.Path
	}
	return path
}

// LoadConfig builds the limiter configuration from the environment.
func LoadConfig() *Config {
	if !getEnvBool(EnvEnabled, true) {
		return &Config{Enabled: false}
	}

	analyze := getEnvInt(EnvAnalyzeLimit, 60)
	batch := getEnvInt(EnvBatchLimit, 6)

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt(EnvDefaultLimit, 1000),
		DefaultWindow:   getEnvDuration(EnvDefaultWindow, time.Minute),
		CleanupInterval: getEnvDuration(EnvCleanupInterval, 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv(EnvWhitelist)),
		Blacklist:       parseIPList(os.Getenv(EnvBlacklist)),
		EndpointConfigs: endpointConfigs(analyze, batch),
	}
}

// DefaultEndpointConfigs returns the per-route limits with default rates.
func DefaultEndpointConfigs() []EndpointConfig {
	return endpointConfigs(60, 6)
}

func endpointConfigs(analyzePerMinute, batchPerMinute int) []EndpointConfig {
	return []EndpointConfig{
		// batches run up to 50 analyses each
		{Path: "/analyze/batch", Method: "POST", Limit: batchPerMinute, Window: time.Minute, Burst: 2},
		{Path: "/analyze/batch/stream", Method: "POST", Limit: batchPerMinute, Window: time.Minute, Burst: 2},
		{Path: "/analyze", Method: "POST", Limit: analyzePerMinute, Window: time.Minute, Burst: 10},
		// GET /languages and anything else fall back to the default limit
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
