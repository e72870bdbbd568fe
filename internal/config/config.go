// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings shared by the server, worker and scheduler.
type Config struct {
	Port             string
	DatabaseURL      string
	JWTSecret        string
	TokenLifetime    time.Duration
	CookieSecure     bool
	CORSOrigins      []string
	YouTubeAPIKey    string
	YouTubeChannelID string
	RedisAddr        string
	CollectSchedule  string
	StatsRate        float64
	StatsBurst       int
}

// Load reads configuration from environment variables with defaults.
// Each variable named in required must be set; binaries pass only what
// they use.
func Load(required ...string) (Config, error) {
	for _, key := range required {
		if env(key, "") == "" {
			return Config{}, fmt.Errorf("%s is required", key)
		}
	}

	cfg := Config{
		Port:             env("PORT", "8080"),
		DatabaseURL:      env("DATABASE_URL", ""),
		JWTSecret:        env("JWT_SECRET", ""),
		CORSOrigins:      splitList(env("CORS_ORIGINS", "")),
		YouTubeAPIKey:    env("YOUTUBE_API_KEY", ""),
		YouTubeChannelID: env("YOUTUBE_CHANNEL_ID", ""),
		RedisAddr:        env("REDIS_ADDR", "127.0.0.1:6379"),
		CollectSchedule:  env("COLLECT_SCHEDULE", "@every 1h"),
	}

	var err error
	if cfg.TokenLifetime, err = time.ParseDuration(env("TOKEN_LIFETIME", "1h")); err != nil || cfg.TokenLifetime <= 0 {
		return cfg, fmt.Errorf("TOKEN_LIFETIME must be a positive duration")
	}
	if cfg.CookieSecure, err = strconv.ParseBool(env("COOKIE_SECURE", "false")); err != nil {
		return cfg, fmt.Errorf("COOKIE_SECURE: %w", err)
	}
	if cfg.StatsRate, err = strconv.ParseFloat(env("STATS_RATE", "1"), 64); err != nil || cfg.StatsRate <= 0 {
		return cfg, fmt.Errorf("STATS_RATE must be a positive number")
	}
	if cfg.StatsBurst, err = strconv.Atoi(env("STATS_BURST", "5")); err != nil || cfg.StatsBurst <= 0 {
		return cfg, fmt.Errorf("STATS_BURST must be a positive integer")
	}

	return cfg, nil
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
