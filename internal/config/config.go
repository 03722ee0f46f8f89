// Package config loads service configuration from environment
// variables. Every setting has a development default so `go run` works
// with no environment at all.
package config

import (
	"os"
	"strings"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr string
}

// RedisConfig holds the optional Redis connection. An empty URL
// disables the snapshot mirror and the stream publisher.
type RedisConfig struct {
	URL      string
	Password string
}

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Redis  RedisConfig

	// Sports restricts aggregation to a subset of registered sport
	// keys; empty means every registered sport
	Sports []string

	// CORSOrigins are the allowed browser origins for the REST routes
	CORSOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: getEnv("SERVER_ADDR", ":8086"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Sports:      splitList(getEnv("SPORTS", "")),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
