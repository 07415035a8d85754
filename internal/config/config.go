package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/strata/pkg/strata"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const ConfigFileName = "strata.yaml"

// ProjectConfig is the content of a strata.yaml file. Pointer fields
// distinguish "not set" from the zero value.
type ProjectConfig struct {
	Include          []string `yaml:"include,omitempty"`
	Exclude          []string `yaml:"exclude,omitempty"`
	MaxListed        *int     `yaml:"max_listed,omitempty"`
	StrictReferences *bool    `yaml:"strict_references,omitempty"`
	LayersFile       string   `yaml:"layers_file,omitempty"`

	path string
}

// Path returns the file the config was loaded from.
func (c *ProjectConfig) Path() string { return c.path }

// LayersPath resolves LayersFile against the directory of the config file.
// Returns "" when no layers file is configured.
func (c *ProjectConfig) LayersPath() string {
	if c.LayersFile == "" {
		return ""
	}
	if filepath.IsAbs(c.LayersFile) || c.path == "" {
		return c.LayersFile
	}
	return filepath.Join(filepath.Dir(c.path), c.LayersFile)
}

// Load reads strata.yaml from the corpus root.
func Load(corpusRoot string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(corpusRoot, ConfigFileName))
}

// LoadFile reads a config file from an explicit path.
// Unknown keys are rejected so that typos do not go unnoticed.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrConfigNotFound)
		}
		return nil, err
	}

	var cfg ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w: %v", path, strata.ErrInvalidConfig, err)
	}
	cfg.path = path
	return &cfg, nil
}
