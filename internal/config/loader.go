package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	// AppName names the per-user configuration directory.
	AppName = "ramandeconv"

	// DefaultConfigFile is the configuration path relative to the working
	// directory.
	DefaultConfigFile = "config/config.yaml"
)

// Dir returns the per-user configuration directory.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// FindConfigFile searches for the configuration file in the following order:
//  1. configPath, if given
//  2. DefaultConfigFile in the working directory
//  3. config.yaml in Dir
//
// It returns the empty string when nothing is found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}
	for _, candidate := range []string{DefaultConfigFile, filepath.Join(Dir(), "config.yaml")} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Load reads a configuration file on top of the defaults. Files ending in
// .toml are decoded as TOML, everything else as YAML. If the file does not
// exist it returns ErrConfigNotFound; callers decide whether to fall back to
// Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, ErrConfigNotFound
	}
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg *Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		cfg, err = DecodeTOML(bytes.NewReader(data))
	} else {
		cfg, err = Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML from r on top of the defaults and validates the result.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DecodeTOML reads TOML from r on top of the defaults and validates the
// result.
func DecodeTOML(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys: %v", undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write encodes cfg as YAML.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
