package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Annallisboa/QA-app/internal/model"
)

// Providers understood by the model client factory.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds all user-facing configuration for qa-app.
type Config struct {
	Model  ModelConfig  `toml:"model"`
	Server ServerConfig `toml:"server"`
	Map    MapConfig    `toml:"map"`
	Log    LogConfig    `toml:"log"`
}

// ModelConfig selects the hosted chat model. The credential itself is never
// part of the file: APIKeyEnv names the environment variable holding it.
type ModelConfig struct {
	Provider  string   `toml:"provider"`
	Name      string   `toml:"name"`
	Endpoint  string   `toml:"endpoint"`
	APIKeyEnv string   `toml:"api_key_env"`
	Timeout   Duration `toml:"timeout"`
	MaxTokens int64    `toml:"max_tokens"`
}

type ServerConfig struct {
	Host       string   `toml:"host"`
	Port       int      `toml:"port"`
	SessionTTL Duration `toml:"session_ttl"`
}

// MapConfig is the map view shown before any answer places markers, and
// whenever the model's map data is unusable.
type MapConfig struct {
	DefaultCenter [2]float64 `toml:"default_center"`
	DefaultZoom   int        `toml:"default_zoom"`
}

type LogConfig struct {
	Verbose bool `toml:"verbose"`
}

// Duration decodes TOML strings such as "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Model: ModelConfig{
			Provider:  ProviderOpenAI,
			Name:      "gpt-4o",
			Timeout:   Duration{60 * time.Second},
			MaxTokens: 1024,
		},
		Server: ServerConfig{Host: "localhost", Port: 8080, SessionTTL: Duration{30 * time.Minute}},
		Map:    MapConfig{DefaultCenter: [2]float64{48.9, 2.4}, DefaultZoom: 10},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// KeyEnv returns the environment variable the credential is read from.
func (m ModelConfig) KeyEnv() string {
	if m.APIKeyEnv != "" {
		return m.APIKeyEnv
	}
	if m.Provider == ProviderAnthropic {
		return "ANTHROPIC_API_KEY"
	}
	return "OPENAI_API_KEY"
}

// APIKey returns the credential from the environment.
func (m ModelConfig) APIKey() string {
	return os.Getenv(m.KeyEnv())
}

// Validate checks the configuration needed to call the model.
func (c *Config) Validate() error {
	switch c.Model.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("model.provider must be %q or %q, got %q", ProviderOpenAI, ProviderAnthropic, c.Model.Provider)
	}
	if c.Model.Name == "" {
		return fmt.Errorf("model.name is required")
	}
	if c.Model.APIKey() == "" {
		return fmt.Errorf("%s environment variable not set", c.Model.KeyEnv())
	}
	if !c.DefaultMap().Center.Valid() {
		return fmt.Errorf("map.default_center %v is out of range", c.Map.DefaultCenter)
	}
	return nil
}

// DefaultMap is the initial map state for a new session.
func (c *Config) DefaultMap() model.MapState {
	return model.MapState{
		Center:  model.LatLon{Lat: c.Map.DefaultCenter[0], Lon: c.Map.DefaultCenter[1]},
		Zoom:    c.Map.DefaultZoom,
		Markers: []model.Marker{},
	}
}
