// Package config builds the service configuration once at startup.
// Components receive the Config by reference; nothing reads the
// environment after Load returns.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Shravanisawant28/PDF/pkg/logging"
)

// Config holds the complete service configuration
type Config struct {
	// Server settings
	Port        string
	CORSOrigins string

	// Static content and generated audio
	StaticDir string
	AudioDir  string
	AudioKeep int // retention bound for generated audio files

	// Extraction settings
	PopplerPath    string // directory containing pdftoppm; empty means $PATH
	TessdataPrefix string // tesseract data directory; empty means engine default
	RasterDPI      int
	MaxUploadSize  int64

	// Per-stage timeouts
	ExtractionTimeout time.Duration
	SynthesisTimeout  time.Duration

	// Speech synthesis endpoint
	TTSEndpoint string

	// Logging
	Logging *logging.LogConfig
}

// Load reads the environment and returns the resolved configuration.
// The audio directory is created if absent.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8000"),
		CORSOrigins:       getEnv("CORS_ORIGINS", "*"),
		StaticDir:         getEnv("STATIC_DIR", "static"),
		AudioDir:          getEnv("AUDIO_DIR", "static/audio"),
		AudioKeep:         getEnvInt("AUDIO_KEEP", 5),
		PopplerPath:       getEnv("POPPLER_PATH", defaultPopplerPath),
		TessdataPrefix:    getEnv("TESSDATA_PREFIX", ""),
		RasterDPI:         getEnvInt("RASTER_DPI", 300),
		MaxUploadSize:     int64(getEnvInt("MAX_UPLOAD_MB", 50)) * 1024 * 1024,
		ExtractionTimeout: getEnvDuration("EXTRACT_TIMEOUT", 2*time.Minute),
		SynthesisTimeout:  getEnvDuration("SYNTHESIS_TIMEOUT", 30*time.Second),
		TTSEndpoint:       getEnv("TTS_ENDPOINT", ""),
		Logging: &logging.LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if cfg.AudioKeep < 1 {
		return nil, fmt.Errorf("AUDIO_KEEP must be at least 1, got %d", cfg.AudioKeep)
	}
	if cfg.RasterDPI < 1 {
		return nil, fmt.Errorf("RASTER_DPI must be positive, got %d", cfg.RasterDPI)
	}

	if err := os.MkdirAll(cfg.AudioDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory %s: %w", cfg.AudioDir, err)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
