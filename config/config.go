package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the main dynacat configuration
type Config struct {
	Name     string        `yaml:"name"`
	Version  string        `yaml:"version,omitempty"`
	Catalog  CatalogConfig `yaml:"catalog"`
	Metadata Metadata      `yaml:"metadata,omitempty"`
}

// CatalogConfig holds catalog-specific configuration
type CatalogConfig struct {
	Type     string          `yaml:"type"`
	DynamoDB *DynamoDBConfig `yaml:"dynamodb,omitempty"`
}

// DynamoDBConfig holds DynamoDB catalog configuration
type DynamoDBConfig struct {
	// Table is the DynamoDB table holding catalog metadata
	Table string `yaml:"table"`
	// Region is the AWS region of the metadata table
	Region string `yaml:"region,omitempty"`
	// Endpoint overrides the DynamoDB endpoint, e.g. for DynamoDB Local
	Endpoint string `yaml:"endpoint,omitempty"`
	// Warehouse is the root path under which table locations are created
	// when a namespace has no location override
	Warehouse string `yaml:"warehouse"`
	// UniqueTableLocations appends a random suffix to every computed
	// default table location
	UniqueTableLocations bool `yaml:"unique_table_locations,omitempty"`
}

// Metadata holds additional project metadata
type Metadata struct {
	CreatedAt   string            `yaml:"created_at,omitempty"`
	Description string            `yaml:"description,omitempty"`
	Tags        []string          `yaml:"tags,omitempty"`
	Properties  map[string]string `yaml:"properties,omitempty"`
}

// WriteConfig writes a configuration to a YAML file
func WriteConfig(path string, cfg *Config) error {
	// Set default version if not specified
	if cfg.Version == "" {
		cfg.Version = "1"
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	defer encoder.Close()

	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// ReadConfig reads a configuration from a YAML file
func ReadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var cfg Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

// FindConfig searches for a .dynacat.yml file in the current directory or parents
func FindConfig() (string, *Config, error) {
	// Start from current directory and walk up
	currentDir, err := os.Getwd()
	if err != nil {
		return "", nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath, err := findConfigFile(currentDir)
	if err != nil {
		return "", nil, err
	}

	cfg, err := ReadConfig(configPath)
	if err != nil {
		return "", nil, err
	}

	return configPath, cfg, nil
}

// findConfigFile searches for .dynacat.yml starting from the given directory
func findConfigFile(startDir string) (string, error) {
	currentDir := startDir

	for {
		configPath := filepath.Join(currentDir, ".dynacat.yml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}

		currentDir = parentDir
	}

	return "", fmt.Errorf("no .dynacat.yml found in current directory or parents")
}
