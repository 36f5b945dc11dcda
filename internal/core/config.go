package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jo-hoe/fundusref/internal/backend/commands"
	"github.com/jo-hoe/fundusref/internal/backend/commandstructure"
	"github.com/jo-hoe/fundusref/internal/backend/database"
	"github.com/jo-hoe/fundusref/internal/common"
)

const (
	DefaultPort           = 8080
	DefaultThumbnailWidth = 640
	DefaultMaxUploadBytes = 20 << 20
)

// CommandConfig overrides the parameters of one nominal detector
type CommandConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:",inline"`
}

type Database struct {
	Type             string `yaml:"type" validate:"omitempty,oneof=memory sqlite redis"`
	ConnectionString string `yaml:"connectionString"`
}

type ServiceConfig struct {
	Port           int      `yaml:"port" validate:"min=1,max=65535"`
	Database       Database `yaml:"database"`
	ThumbnailWidth int      `yaml:"thumbnailWidth" validate:"min=16,max=4096"`
	MaxUploadBytes int64    `yaml:"maxUploadBytes" validate:"min=1024"`
	// MaxDecodePixels bounds width*height of an upload before it is decoded
	MaxDecodePixels int             `yaml:"maxDecodePixels" validate:"min=1"`
	Detectors       []CommandConfig `yaml:"detectors"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *ServiceConfig {
	config := &ServiceConfig{}
	config.applyDefaults()
	return config
}

// LoadConfig loads configuration from the specified YAML file
func LoadConfig(configPath string) (*ServiceConfig, error) {
	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	config, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}
	return config, nil
}

// ParseConfig parses, defaults and validates YAML configuration
func ParseConfig(data []byte) (*ServiceConfig, error) {
	var config ServiceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	config.applyDefaults()

	if err := common.ValidateStruct(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if config.Database.Type == database.TypeRedis && config.Database.ConnectionString == "" {
		return nil, fmt.Errorf("redis store requires a connectionString")
	}

	// Validate detector overrides
	if err := validateCommands(config.Detectors); err != nil {
		return nil, fmt.Errorf("invalid detector configuration: %w", err)
	}

	return &config, nil
}

func (c *ServiceConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Database.Type == "" {
		c.Database.Type = database.TypeMemory
	}
	if c.Database.Type == database.TypeSQLite && c.Database.ConnectionString == "" {
		c.Database.ConnectionString = ":memory:"
	}
	if c.ThumbnailWidth == 0 {
		c.ThumbnailWidth = DefaultThumbnailWidth
	}
	if c.MaxUploadBytes == 0 {
		c.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.MaxDecodePixels == 0 {
		c.MaxDecodePixels = commands.DefaultMaxDecodePixels
	}
}

// DetectorOverrides converts the configured overrides for the detector set
func (c *ServiceConfig) DetectorOverrides() []commandstructure.CommandConfig {
	overrides := make([]commandstructure.CommandConfig, 0, len(c.Detectors))
	for _, d := range c.Detectors {
		overrides = append(overrides, commandstructure.CommandConfig{Name: d.Name, Params: d.Params})
	}
	return overrides
}

// validateCommands ensures all detector overrides name a known detector exactly once
func validateCommands(detectors []CommandConfig) error {
	known := map[string]bool{commands.OpticDisc: true}
	for _, def := range commands.DefaultDetectors {
		known[def.Name] = true
	}
	seenNames := make(map[string]bool)

	for i, cmd := range detectors {
		// Validate name is not empty
		if cmd.Name == "" {
			return fmt.Errorf("detector at index %d has empty name", i)
		}
		if !known[cmd.Name] {
			return fmt.Errorf("unknown detector: %s", cmd.Name)
		}

		// Validate name is unique
		if seenNames[cmd.Name] {
			return fmt.Errorf("duplicate detector name: %s", cmd.Name)
		}
		seenNames[cmd.Name] = true
	}

	return nil
}
