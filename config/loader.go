package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults applied after validation.
const (
	DefaultPort           = 8080
	DefaultReadIntervalMS = 30000
	DefaultTimeoutMS      = 10000
	DefaultMaxPredictions = 6
)

// Load reads and validates the application configuration. When path is empty
// the usual locations are tried in order.
func Load(path string) (AppConfig, error) {
	paths := []string{"config.yml", "./etc/config.yml"}
	if path != "" {
		paths = []string{path}
	}
	var cfg AppConfig
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return cfg, err
	}
	for _, s := range cfg.Stops {
		if err := v.Struct(s); err != nil {
			return cfg, err
		}
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Feed.ReadIntervalMS == 0 {
		cfg.Feed.ReadIntervalMS = DefaultReadIntervalMS
	}
	if cfg.Feed.TimeoutMS == 0 {
		cfg.Feed.TimeoutMS = DefaultTimeoutMS
	}
	if cfg.Board.TimeoutMS == 0 {
		cfg.Board.TimeoutMS = DefaultTimeoutMS
	}
	if cfg.Board.MaxPredictions == 0 {
		cfg.Board.MaxPredictions = DefaultMaxPredictions
	}
}

// FeedTimeout returns the HTTP timeout for the vehicle feed.
func (c AppConfig) FeedTimeout() time.Duration {
	return time.Duration(c.Feed.TimeoutMS) * time.Millisecond
}

// BoardTimeout returns the HTTP timeout for the arrival board.
func (c AppConfig) BoardTimeout() time.Duration {
	return time.Duration(c.Board.TimeoutMS) * time.Millisecond
}

// ReadInterval returns the refresh period for the poller.
func (c AppConfig) ReadInterval() time.Duration {
	return time.Duration(c.Feed.ReadIntervalMS) * time.Millisecond
}

// StopByCode returns the configured preferences for a stop, if any.
func (c AppConfig) StopByCode(code string) (StopConfig, bool) {
	for _, s := range c.Stops {
		if s.Code == code {
			return s, true
		}
	}
	return StopConfig{}, false
}
