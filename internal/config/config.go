package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for swiftyper, as read from
// the settings file and adjusted by command-line flags.
type Config struct {
	RootName    string           `yaml:"root_name"`
	Generation  GenerationConfig `yaml:"generation"`
	Indentation IndentConfig     `yaml:"indentation"`
	Output      OutputConfig     `yaml:"output"`
	Logging     LoggingConfig    `yaml:"logging"`
}

// GenerationConfig mirrors Configuration in the settings file
type GenerationConfig struct {
	Declaration          DeclarationKeyword `yaml:"declaration"`
	TypeUnwrapping       TypeUnwrapping     `yaml:"type_unwrapping"`
	AddKeys              bool               `yaml:"add_keys"`
	AddDefaultValue      bool               `yaml:"add_default_value"`
	AddInitAndDictionary bool               `yaml:"add_init_and_dictionary"`
	PendingType          Marker             `yaml:"pending_type"`
}

// IndentConfig controls the indentation unit
type IndentConfig struct {
	UseTabs bool `yaml:"use_tabs"`
	Width   int  `yaml:"width"`
}

// OutputConfig controls what is written
type OutputConfig struct {
	FileHeader string `yaml:"file_header"`
	// Fragment is one of all, keys, types, properties, init.
	Fragment string `yaml:"fragment"`
}

// LoggingConfig controls diagnostics
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	defaults := DefaultConfiguration()
	indent := DefaultIndent()
	return &Config{
		RootName: "RootType",
		Generation: GenerationConfig{
			Declaration:          defaults.Declaration,
			TypeUnwrapping:       defaults.Unwrapping,
			AddKeys:              defaults.AddKeys,
			AddDefaultValue:      defaults.AddDefaultValue,
			AddInitAndDictionary: defaults.AddInitAndDictionary,
			PendingType:          defaults.PendingType,
		},
		Indentation: IndentConfig{
			UseTabs: indent.UseTabs,
			Width:   indent.Width,
		},
		Output: OutputConfig{
			Fragment: "all",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".swiftyper.yml", ".swiftyper.yaml", "swiftyper.yml", "swiftyper.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks values that the YAML decoder cannot
func (c *Config) Validate() error {
	if !identifierRegex.MatchString(c.RootName) {
		return fmt.Errorf("root name %q is not a valid identifier", c.RootName)
	}
	if !c.Indentation.UseTabs && (c.Indentation.Width < 1 || c.Indentation.Width > 16) {
		return fmt.Errorf("indentation width %d out of range 1-16", c.Indentation.Width)
	}
	return nil
}

// Snapshot returns the immutable generation options
func (c *Config) Snapshot() Configuration {
	return Configuration{
		Declaration:          c.Generation.Declaration,
		Unwrapping:           c.Generation.TypeUnwrapping,
		AddKeys:              c.Generation.AddKeys,
		AddDefaultValue:      c.Generation.AddDefaultValue,
		AddInitAndDictionary: c.Generation.AddInitAndDictionary,
		PendingType:          c.Generation.PendingType,
	}
}

// Indent returns the indentation unit
func (c *Config) Indent() Indent {
	return Indent{UseTabs: c.Indentation.UseTabs, Width: c.Indentation.Width}
}

// Overrides holds command-line values layered over the settings file.
// Zero values leave the file's setting untouched.
type Overrides struct {
	RootName      string
	Declaration   string
	Unwrapping    string
	Fragment      string
	LogLevel      string
	LogFile       string
	NoKeys        bool
	DefaultValues bool
	NoInit        bool
	Tabs          bool
	IndentWidth   int
}

// Apply merges overrides into the config
func (c *Config) Apply(o Overrides) error {
	if o.RootName != "" {
		c.RootName = o.RootName
	}
	if o.Declaration != "" {
		d, err := ParseDeclarationKeyword(o.Declaration)
		if err != nil {
			return err
		}
		c.Generation.Declaration = d
	}
	if o.Unwrapping != "" {
		u, err := ParseTypeUnwrapping(o.Unwrapping)
		if err != nil {
			return err
		}
		c.Generation.TypeUnwrapping = u
	}
	if o.Fragment != "" {
		c.Output.Fragment = o.Fragment
	}
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		c.Logging.File = o.LogFile
	}
	if o.NoKeys {
		c.Generation.AddKeys = false
	}
	if o.DefaultValues {
		c.Generation.AddDefaultValue = true
	}
	if o.NoInit {
		c.Generation.AddInitAndDictionary = false
	}
	if o.Tabs {
		c.Indentation.UseTabs = true
	}
	if o.IndentWidth > 0 {
		c.Indentation.Width = o.IndentWidth
	}
	return c.Validate()
}

// LoadConfigWithCLI loads the settings file (explicit path, or the nearest
// one found upward from the working directory) and applies CLI overrides.
func LoadConfigWithCLI(configPath string, overrides Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath == "" {
		configPath = FindConfigFile()
	}
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if err := cfg.Apply(overrides); err != nil {
		return nil, err
	}
	return cfg, nil
}
