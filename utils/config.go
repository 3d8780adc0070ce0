package utils

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Config holds the configuration for a session
type Config struct {
	Name           string  `json:"name"`
	Rows           int     `json:"rows"`
	Cols           int     `json:"cols"`
	TemplatesDir   string  `json:"templates_dir"`
	RulesDir       string  `json:"rules_dir"`
	Rules          string  `json:"rules"`
	UseMemoryPool  bool    `json:"use_memory_pool"`
	NoiseDensity   float64 `json:"noise_density"`
	NoiseSeed      int64   `json:"noise_seed"`
	ClearScreen    bool    `json:"clear_screen"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Name:           "My Game of Life",
		Rows:           25,
		Cols:           50,
		TemplatesDir:   "templates",
		RulesDir:       "rules",
		Rules:          "B3/S23",
		UseMemoryPool:  true,
		NoiseDensity:   0.3,
		NoiseSeed:      0, // 0 picks a seed from the clock
		ClearScreen:    true,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid config in file: %+v", filename)
	}

	return config, nil
}

// Validate checks the fields a game cannot start without
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return errors.Errorf("rows and cols must be positive, got %dx%d", c.Rows, c.Cols)
	}
	if c.NoiseDensity < 0 || c.NoiseDensity > 1 {
		return errors.Errorf("noise_density must be within [0,1], got %v", c.NoiseDensity)
	}
	return nil
}
