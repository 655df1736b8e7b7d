package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	LLM     LLMConfig
	Extract ExtractConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type LLMConfig struct {
	OpenAIKey        string
	AnthropicKey     string
	DefaultProvider  string
	DefaultModel     string
	FallbackProvider string
	MaxRetries       int
}

type ExtractConfig struct {
	TempDir        string
	MaxUploadBytes int64
	RenderDPI      float64
	CanvasWidth    int
	CanvasHeight   int
	Language       string
	Workers        int
	PageTimeout    time.Duration
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxRetries, err := getEnvInt("LLM_MAX_RETRIES", 3)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_MAX_RETRIES: %w", err)
	}

	maxUploadMiB, err := getEnvInt("MAX_UPLOAD_MIB", 50)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MIB: %w", err)
	}

	workers, err := getEnvInt("OCR_WORKERS", 1)
	if err != nil {
		return nil, fmt.Errorf("invalid OCR_WORKERS: %w", err)
	}

	pageTimeoutSec, err := getEnvInt("OCR_PAGE_TIMEOUT_SECONDS", 90)
	if err != nil {
		return nil, fmt.Errorf("invalid OCR_PAGE_TIMEOUT_SECONDS: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		LLM: LLMConfig{
			OpenAIKey:        getEnv("OPENAI_API_KEY", ""),
			AnthropicKey:     getEnv("ANTHROPIC_API_KEY", ""),
			DefaultProvider:  getEnv("LLM_DEFAULT_PROVIDER", "openai"),
			DefaultModel:     getEnv("LLM_DEFAULT_MODEL", "gpt-4o-mini"),
			FallbackProvider: getEnv("LLM_FALLBACK_PROVIDER", ""),
			MaxRetries:       maxRetries,
		},
		Extract: ExtractConfig{
			TempDir:        getEnv("EXTRACT_TEMP_DIR", os.TempDir()),
			MaxUploadBytes: int64(maxUploadMiB) << 20,
			RenderDPI:      300,
			CanvasWidth:    2000,
			CanvasHeight:   2800,
			Language:       getEnv("OCR_LANGUAGE", "eng"),
			Workers:        workers,
			PageTimeout:    time.Duration(pageTimeoutSec) * time.Second,
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
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
	return strconv.Atoi(v)
}
