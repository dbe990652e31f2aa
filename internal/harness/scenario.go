package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is one deterministic workload run against the container.
type Scenario struct {
	Name string `yaml:"name"`
	// Elements is the starting length of the vector.
	Elements int `yaml:"elements"`
	// Operations is the number of random mutations applied.
	Operations int `yaml:"operations"`
	// InsertPercent and ErasePercent set the operation mix; the remainder
	// splits evenly between PushBack and PopBack.
	InsertPercent int   `yaml:"insert_percent"`
	ErasePercent  int   `yaml:"erase_percent"`
	Seed          int64 `yaml:"seed"`
}

// Config is the scenario file layout.
type Config struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// DefaultConfig is used when no scenario file is given.
func DefaultConfig() *Config {
	return &Config{
		Scenarios: []Scenario{
			{Name: "append-heavy", Elements: 0, Operations: 100_000, InsertPercent: 5, ErasePercent: 5, Seed: 1},
			{Name: "churn", Elements: 10_000, Operations: 50_000, InsertPercent: 25, ErasePercent: 25, Seed: 2},
		},
	}
}

// LoadConfig reads a scenario file.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse scenario file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Scenarios) == 0 {
		return fmt.Errorf("scenario file defines no scenarios")
	}
	for _, s := range c.Scenarios {
		if s.Name == "" {
			return fmt.Errorf("scenario without a name")
		}
		if s.Elements < 0 || s.Operations < 0 {
			return fmt.Errorf("scenario %q: negative element or operation count", s.Name)
		}
		if s.InsertPercent < 0 || s.ErasePercent < 0 || s.InsertPercent+s.ErasePercent > 100 {
			return fmt.Errorf("scenario %q: operation mix out of range", s.Name)
		}
	}
	return nil
}
