package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	// LLM settings. The API key is deliberately not required at parse
	// time: a missing or invalid key surfaces as a provider error on the
	// first chat exchange.
	OpenAIAPIKey      string  `env:"OPENAI_API_KEY"`
	OpenAIBaseURL     string  `env:"OPENAI_BASE_URL"`
	OpenAIModel       string  `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	OpenAITemperature float32 `env:"OPENAI_TEMPERATURE" envDefault:"0.7"`

	// Web UI
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Interaction audit log (JSONL). Empty disables recording.
	LogFilePath string `env:"LOG_FILE_PATH"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
