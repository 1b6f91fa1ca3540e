package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	configFs := afero.NewBasePathFs(afero.NewOsFs(), path)
	configContents, err := afero.ReadFile(configFs, ConfigurationName)
	if err != nil {
		return nil, err
	}

	// Start from the defaults so older files pick up new fields.
	out := defaultConfig()
	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Join(path, ConfigurationName), err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Join(path, ConfigurationName), err)
	}
	out.configFs = configFs
	return out, nil
}

// LoadOrDefault loads the configuration from the directory, falling back to
// the built-in configuration if there is no configuration file.
func LoadOrDefault(path string) (*Configuration, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Initialize writes the default configuration to the directory and loads it.
// An existing configuration file is left untouched.
func Initialize(path string, logger *log.Logger) (*Configuration, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(path, 0700); err != nil {
		return nil, err
	}

	configPath := filepath.Join(path, ConfigurationName)
	switch exists, err := afero.Exists(osFs, configPath); {
	case err != nil:
		return nil, err
	case exists:
		logger.Printf("%s already exists, skipping", configPath)
	default:
		logger.Printf("writing %s", configPath)
		if err := afero.WriteFile(osFs, configPath, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	}

	return Load(path)
}
