package config

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/apiforge/commandgen/internal/types"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
)

const (
	// DefaultWorkers is the number of services extracted concurrently.
	DefaultWorkers = 10

	// DefaultCommandSuffix is appended to operation names to form
	// command identifiers.
	DefaultCommandSuffix = "Command"
)

// GeneratorConfig controls one generation run.
// InputDir is the root containing <service>/<version>/api.json trees.
// OutputDir receives one folder per service with command documents.
// Workers bounds service-level concurrency.
// CommandSuffix is appended to operation names to form command names.
type GeneratorConfig struct {
	InputDir      string `koanf:"inputDir" yaml:"inputDir"`
	OutputDir     string `koanf:"outputDir" yaml:"outputDir"`
	Workers       int    `koanf:"workers" yaml:"workers"`
	CommandSuffix string `koanf:"commandSuffix" yaml:"commandSuffix"`
}

// Config is the main configuration struct.
// Services, when non-empty, restricts generation to the named services.
type Config struct {
	Generator *GeneratorConfig `koanf:"generator" yaml:"generator"`
	Services  []string         `koanf:"services" yaml:"services"`
	BaseDir   string           `koanf:"-" yaml:"-"`
	mu        sync.Mutex
}

// GetGenerator returns the generator section, never nil.
func (c *Config) GetGenerator() *GeneratorConfig {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.Generator
}

// ServiceEnabled reports whether a service passes the configured filter.
// An empty filter enables everything.
func (c *Config) ServiceEnabled(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.Services) == 0 {
		return true
	}
	for _, svc := range c.Services {
		if svc == name {
			return true
		}
	}
	return false
}

// EnsureConfigValues fills in any unset values from the defaults.
func (c *Config) EnsureConfigValues() {
	defaults := NewDefaultConfig(c.BaseDir)

	c.mu.Lock()
	defer c.mu.Unlock()

	gen := c.Generator
	if gen == nil {
		gen = defaults.Generator
	}

	if gen.InputDir == "" {
		gen.InputDir = defaults.Generator.InputDir
	}
	if gen.OutputDir == "" {
		gen.OutputDir = defaults.Generator.OutputDir
	}
	if gen.Workers <= 0 {
		gen.Workers = defaults.Generator.Workers
	}
	if gen.CommandSuffix == "" {
		gen.CommandSuffix = defaults.Generator.CommandSuffix
	}

	c.Generator = gen
}

// NewDefaultConfig creates a config with default values rooted at baseDir.
func NewDefaultConfig(baseDir string) *Config {
	paths := NewPaths(baseDir)
	return &Config{
		Generator: &GeneratorConfig{
			InputDir:      paths.Input,
			OutputDir:     paths.Output,
			Workers:       DefaultWorkers,
			CommandSuffix: DefaultCommandSuffix,
		},
		BaseDir: baseDir,
	}
}

// transformConfig folds environment variable overrides into the loaded
// values: generator.inputDir is overridden by GENERATOR_INPUT_DIR etc.
func (c *Config) transformConfig(k *koanf.Koanf) *koanf.Koanf {
	transformed := koanf.New(".")
	for key, value := range k.All() {
		envKey := strings.ToUpper(types.ToSnakeCase(key))
		finalValue := value

		if envValue, exists := os.LookupEnv(envKey); exists {
			finalValue = envValue
		}

		_ = transformed.Set(key, finalValue)
	}
	return transformed
}

// MustConfig creates a new config from the YAML file under baseDir.
// A missing or malformed file falls back to the default config.
func MustConfig(baseDir string) *Config {
	paths := NewPaths(baseDir)
	res := NewDefaultConfig(baseDir)

	k := koanf.New(".")
	provider := file.Provider(paths.ConfigFile)
	if err := k.Load(provider, yaml.Parser()); err != nil {
		slog.Error("error loading config. using fallback", "error", err)
		return res
	}

	cfg := res
	transformed := cfg.transformConfig(k)
	if err := transformed.Unmarshal("", cfg); err != nil {
		slog.Error("error loading config. using fallback", "error", err)
		return res
	}
	cfg.EnsureConfigValues()
	cfg.BaseDir = baseDir

	return cfg
}

// NewConfigFromContent creates a new config from YAML file contents.
func NewConfigFromContent(content []byte) (*Config, error) {
	k := koanf.New(".")
	provider := rawbytes.Provider(content)
	if err := k.Load(provider, yaml.Parser()); err != nil {
		return nil, err
	}

	cfg := &Config{}
	transformed := cfg.transformConfig(k)
	if err := transformed.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.EnsureConfigValues()

	return cfg, nil
}
