package settings

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultWaitForMs = 100
	defaultLogLevel  = "info"
)

var validate = validator.New()

// Load reads a YAML configuration file, applies defaults and validates it.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return Parse(raw)
}

// Parse decodes YAML configuration bytes, applies defaults and validates the result.
func Parse(raw []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	cfg.setDefaultConfig()

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags of cfg.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// setDefaultConfig fills in values left empty by the file
func (c *Config) setDefaultConfig() {
	if c.Batcher.WaitForMs == 0 {
		c.Batcher.WaitForMs = defaultWaitForMs
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaultLogLevel
	}
}
