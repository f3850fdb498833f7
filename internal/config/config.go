package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Host  string `env:"HOST" envDefault:"0.0.0.0"`
	Port  string `env:"PORT" envDefault:"5001"`
	Debug bool   `env:"DEBUG" envDefault:"true"`

	MurfAPIKey    string        `env:"MURF_API_KEY"`
	MurfAPIURL    string        `env:"MURF_API_URL" envDefault:"https://api.murf.ai/v1/speech/generate"`
	MurfAuthURL   string        `env:"MURF_AUTH_URL" envDefault:"https://api.murf.ai/v1/auth/token"`
	MurfVoicesURL string        `env:"MURF_VOICES_URL" envDefault:"https://api.murf.ai/v1/speech/voices"`
	TTSTimeout    time.Duration `env:"TTS_TIMEOUT" envDefault:"30s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
