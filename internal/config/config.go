// Package config provides configuration loading for the kitcell tooling.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// DefaultDomainPath is where the generation tool writes and the other
// commands read the domain file unless told otherwise.
const DefaultDomainPath = "configs/domain.yaml"

// Config is the root configuration.
type Config struct {
	DomainPath string       `json:"domain_path"          mapstructure:"domain_path"`
	TasksPath  string       `json:"tasks_path,omitempty" mapstructure:"tasks_path"`
	Belief     BeliefLimits `json:"belief"               mapstructure:"belief"`
}

// BeliefLimits bounds how far a raw distribution's mass may drift from 1.0:
// within Tolerance it is accepted, within MaxDrift it is renormalized,
// beyond MaxDrift it is rejected as a recognizer computation error.
type BeliefLimits struct {
	Tolerance float64 `json:"tolerance" mapstructure:"tolerance"`
	MaxDrift  float64 `json:"max_drift" mapstructure:"max_drift"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		DomainPath: DefaultDomainPath,
		Belief:     BeliefLimits{Tolerance: 1e-6, MaxDrift: 1e-3},
	}
}

// Load reads and validates the config file at path. A missing file is not
// an error: the defaults apply.
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("domain_path", DefaultDomainPath)
	v.SetDefault("belief.tolerance", 1e-6)
	v.SetDefault("belief.max_drift", 1e-3)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := ValidateSettings(v.AllSettings()); err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Belief.Tolerance > cfg.Belief.MaxDrift {
		return Config{}, fmt.Errorf("belief.tolerance must not exceed belief.max_drift")
	}
	return cfg, nil
}
