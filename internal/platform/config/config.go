package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config captures everything the CLI needs to reach the API.
type Config struct {
	APIKey      string        `env:"WORKOS_API_KEY,required,notEmpty"`
	ClientID    string        `env:"WORKOS_CLIENT_ID"`
	APIHostname string        `env:"WORKOS_API_HOSTNAME" envDefault:"api.workos.com"`
	HTTPS       bool          `env:"WORKOS_HTTPS" envDefault:"true"`
	Port        int           `env:"WORKOS_PORT"`
	Timeout     time.Duration `env:"WORKOS_TIMEOUT" envDefault:"30s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// FakeAPIAddr is where serve-fake listens.
	FakeAPIAddr string `env:"FAKE_API_ADDR" envDefault:":8081"`
}

// FromEnv loads an optional .env file from the working directory and then
// parses the process environment. Variables already set win over the file.
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse(env.Options{})
}

// Parse reads Config with explicit env options, e.g. a fixed Environment map in tests.
func Parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("parse config: WORKOS_PORT %d out of range", cfg.Port)
	}
	return cfg, nil
}

// BaseURL assembles scheme, hostname and optional port.
func (c Config) BaseURL() string {
	u := url.URL{Scheme: "https", Host: c.APIHostname}
	if !c.HTTPS {
		u.Scheme = "http"
	}
	if c.Port != 0 {
		u.Host += ":" + strconv.Itoa(c.Port)
	}
	return u.String()
}
