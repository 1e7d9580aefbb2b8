package config

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FileNames are the config file names searched for, in order.
var FileNames = []string{".jsonkit.yml", ".jsonkit.yaml", "jsonkit.yml", "jsonkit.yaml"}

// Config represents the complete configuration for jsonkit
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Names    NamesConfig    `yaml:"names"`
	Mask     MaskConfig     `yaml:"mask"`
	Limits   LimitsConfig   `yaml:"limits"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// DefaultsConfig holds the option values used when a call leaves them out
type DefaultsConfig struct {
	Indent    int    `yaml:"indent"`
	Separator string `yaml:"separator"`
	Order     string `yaml:"order"`
	Gofmt     bool   `yaml:"gofmt"`
}

// NamesConfig holds the default root type names of the code generators
type NamesConfig struct {
	TypeScript string `yaml:"typescript"`
	Java       string `yaml:"java"`
	Go         string `yaml:"go"`
	Python     string `yaml:"python"`
}

// MaskConfig extends the built-in sensitive key list
type MaskConfig struct {
	// Keywords are matched as case-insensitive substrings of a key.
	Keywords []string `yaml:"keywords"`
	// Patterns are regular expressions matched against a key.
	Patterns []MaskPattern `yaml:"patterns"`
}

// MaskPattern flags keys matching a regular expression as sensitive
type MaskPattern struct {
	Pattern string `yaml:"pattern"`
	Comment string `yaml:"comment,omitempty"`

	regex *regexp.Regexp
}

// LimitsConfig bounds resource use while parsing
type LimitsConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level string `yaml:"level"`
	// Format is "console" or "json".
	Format string `yaml:"format"`
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Indent:    2,
			Separator: ".",
			Order:     "asc",
			Gofmt:     false,
		},
		Names: NamesConfig{
			TypeScript: "MyType",
			Java:       "MyClass",
			Go:         "MyStruct",
			Python:     "MyData",
		},
		Mask: MaskConfig{
			Keywords: []string{},
			Patterns: []MaskPattern{},
		},
		Limits: LimitsConfig{
			MaxDepth: 1000,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from a YAML file on fs. Keys missing from
// the file keep their defaults.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.compilePatterns(); err != nil {
		return nil, fmt.Errorf("failed to compile patterns: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in dir and its parents and
// returns the first path found, or "".
func FindConfigFile(fs afero.Fs, dir string) string {
	currentDir := dir
	for {
		for _, name := range FileNames {
			configPath := filepath.Join(currentDir, name)
			if ok, err := afero.Exists(fs, configPath); err == nil && ok {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks values that would otherwise fail later at call time.
func (c *Config) Validate() error {
	if c.Defaults.Indent < 0 || c.Defaults.Indent > 10 {
		return fmt.Errorf("defaults.indent must be between 0 and 10, got %d", c.Defaults.Indent)
	}
	if c.Defaults.Separator == "" {
		return fmt.Errorf("defaults.separator must not be empty")
	}
	if c.Defaults.Order != "asc" && c.Defaults.Order != "desc" {
		return fmt.Errorf("defaults.order must be asc or desc, got %q", c.Defaults.Order)
	}
	if c.Limits.MaxDepth < 1 {
		return fmt.Errorf("limits.max_depth must be positive, got %d", c.Limits.MaxDepth)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

// compilePatterns compiles all regex patterns in the configuration
func (c *Config) compilePatterns() error {
	for i := range c.Mask.Patterns {
		pattern := &c.Mask.Patterns[i]
		regex, err := regexp.Compile(pattern.Pattern)
		if err != nil {
			return fmt.Errorf("invalid mask pattern '%s': %w", pattern.Pattern, err)
		}
		pattern.regex = regex
	}
	return nil
}

// MatchesKey checks if a key matches this mask pattern
func (mp *MaskPattern) MatchesKey(key string) bool {
	if mp.regex == nil {
		regex, err := regexp.Compile(mp.Pattern)
		if err != nil {
			return false
		}
		mp.regex = regex
	}
	return mp.regex.MatchString(key)
}

// KeyMatchers returns a matcher per valid pattern. Patterns are compiled
// before the matchers are handed out so they can be shared across goroutines.
func (m MaskConfig) KeyMatchers() []func(key string) bool {
	matchers := make([]func(string) bool, 0, len(m.Patterns))
	for i := range m.Patterns {
		p := m.Patterns[i]
		if p.regex == nil {
			regex, err := regexp.Compile(p.Pattern)
			if err != nil {
				continue
			}
			p.regex = regex
		}
		matchers = append(matchers, p.MatchesKey)
	}
	return matchers
}
