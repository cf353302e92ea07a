package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerConfig configures `chemlab serve`. The tutor API key is optional;
// a key sent with a request takes precedence.
type ServerConfig struct {
	Addr         string        `env:"CHEMLAB_ADDR" envDefault:":8080"`
	TutorBaseURL string        `env:"CHEMLAB_TUTOR_BASE_URL" envDefault:"https://dashscope.aliyuncs.com/compatible-mode/v1"`
	TutorModel   string        `env:"CHEMLAB_TUTOR_MODEL" envDefault:"qwen-turbo"`
	TutorTimeout time.Duration `env:"CHEMLAB_TUTOR_TIMEOUT" envDefault:"15s"`
	TutorAPIKey  string        `env:"CHEMLAB_TUTOR_API_KEY"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string        `env:"LOG_FORMAT" envDefault:"text"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := ParseEnv(&cfg); err != nil {
		return ServerConfig{}, err
	}
	if cfg.TutorTimeout <= 0 {
		return ServerConfig{}, fmt.Errorf("CHEMLAB_TUTOR_TIMEOUT must be positive, got %s", cfg.TutorTimeout)
	}
	return cfg, nil
}
