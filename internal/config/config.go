package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API     APIConfig     `yaml:"api"`
	State   StateConfig   `yaml:"state"`
	Logging LoggingConfig `yaml:"logging"`
}

// Duration decodes yaml scalars like "30s"; yaml.v3 has no native
// time.Duration support.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

type APIConfig struct {
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
}

type StateConfig struct {
	// Dir holds the persisted session credential and identity files.
	Dir string `yaml:"dir"`
}

type LoggingConfig struct {
	Development bool `yaml:"development"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	stateDir := ".taskmanager"
	if home, err := os.UserHomeDir(); err == nil {
		stateDir = filepath.Join(home, ".taskmanager")
	}
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:5000/api",
			Timeout: Duration(30 * time.Second),
		},
		State: StateConfig{Dir: stateDir},
	}
}

// Load reads the yaml config at path. A missing file is not an error: the
// defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = Duration(30 * time.Second)
	}
	return cfg, nil
}

// StateFile returns the path of a named file inside the state directory.
func (c *Config) StateFile(name string) string {
	return filepath.Join(c.State.Dir, name)
}
