// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for all simulation and server settings.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
)

// =============================================================================
// SIMULATION CONFIGURATION
// =============================================================================

// SimConfig holds the settings that govern how the engine ticks games.
type SimConfig struct {
	TickRate int // Wall-clock ticks per second the engine runs each game at, 60 by default; every tick advances 1/60 s of game time
}

// DefaultSim returns the default simulation configuration.
func DefaultSim() SimConfig {
	return SimConfig{
		TickRate: 60,
	}
}

// SimFromEnv returns simulation configuration with environment variable overrides.
func SimFromEnv() SimConfig {
	cfg := DefaultSim()

	if tr := getEnvInt("TICK_RATE", 0); tr > 0 {
		cfg.TickRate = tr
	}

	return cfg
}

// =============================================================================
// GAME RESOURCE LIMITS
// =============================================================================

// ResourceLimits describes DoS protection and performance limits for the
// multi-game engine. cmd/server reads it only for its startup log line; the
// engine and handlers enforce their own game.MaxConcurrentGames,
// game.MaxTicksPerRun and game.DefaultLimits.MaxPlayByPlay values, which
// these fields do not override.
type ResourceLimits struct {
	MaxConcurrentGames int // Hard cap on games ticking at once
	MaxTicksPerRun     int // Hard cap on ticks a single POST /run may advance
	MaxPlayByPlay      int // Max recent play-by-play events returned per request
}

// DefaultLimits returns the default resource limits.
func DefaultLimits() ResourceLimits {
	return ResourceLimits{
		MaxConcurrentGames: 256,
		MaxTicksPerRun:     7200,
		MaxPlayByPlay:      20,
	}
}

// LimitsFromEnv returns resource limits with environment variable overrides.
func LimitsFromEnv() ResourceLimits {
	cfg := DefaultLimits()

	if mg := getEnvInt("MAX_CONCURRENT_GAMES", 0); mg > 0 {
		cfg.MaxConcurrentGames = mg
	}
	if mt := getEnvInt("MAX_TICKS_PER_RUN", 0); mt > 0 {
		cfg.MaxTicksPerRun = mt
	}
	if mp := getEnvInt("MAX_PLAY_BY_PLAY", 0); mp > 0 {
		cfg.MaxPlayByPlay = mp
	}

	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int
	EventLogDir     string // directory for per-game event-log files; not read by the server, which starts every game's event log with no file sink
	DisableDebug    bool   // skip starting the pprof/metrics debug server
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:         3000,
		EventLogDir:  "",
		DisableDebug: false,
	}
}

// ServerFromEnv returns server configuration with environment variable overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	if dir := os.Getenv("EVENT_LOG_DIR"); dir != "" {
		cfg.EventLogDir = dir
	}
	if os.Getenv("DISABLE_DEBUG_SERVER") == "true" {
		cfg.DisableDebug = true
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Sim    SimConfig
	Server ServerConfig
	Limits ResourceLimits
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Sim:    SimFromEnv(),
		Server: ServerFromEnv(),
		Limits: LimitsFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
