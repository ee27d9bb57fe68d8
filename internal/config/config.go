package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Config holds environment-provided defaults for the CLI flags.
type Config struct {
	Workers   int
	Quality   string
	Format    string
	Privacy   string
	OutputDir string
	LogLevel  string
}

func Load() *Config {
	cfg := &Config{}
	cfg.Workers = getEnvInt("IMGCOMPRESS_WORKERS", runtime.NumCPU())
	cfg.Quality = getEnv("IMGCOMPRESS_QUALITY", "medium")
	cfg.Format = getEnv("IMGCOMPRESS_FORMAT", "jpeg")
	cfg.Privacy = getEnv("IMGCOMPRESS_PRIVACY", "keep_all")
	cfg.OutputDir = getEnv("IMGCOMPRESS_OUTPUT", "compressed")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return cfg
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}
