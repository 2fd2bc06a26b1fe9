package bench

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the file form of a run configuration. Command line flags
// override the values read from the file.
type Config struct {
	Label   string            `yaml:"label"`
	Clients []string          `yaml:"clients"`
	Pairs   []string          `yaml:"pairs"`
	Match   string            `yaml:"match"`
	Dir     string            `yaml:"dir"`
	Store   string            `yaml:"store"`
	DB      string            `yaml:"db"`
	Inputs  map[string]string `yaml:"inputs"` // client count -> result file
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(file string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(file)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", file, err)
	}
	return cfg, nil
}

// Validate checks the parts of the configuration used by every mode.
func (cfg Config) Validate() error {
	if cfg.Label == "" {
		return fmt.Errorf("label is required")
	}
	if _, err := ParsePairs(cfg.Pairs); err != nil {
		return err
	}
	if _, err := ParseMatchPolicy(cfg.Match); err != nil {
		return err
	}
	switch cfg.Store {
	case "", StoreFiles, StoreLevelDB:
	default:
		return fmt.Errorf("unknown store %q", cfg.Store)
	}
	return nil
}
