package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const breakoutFile = "breakout.yaml"

// LoadBreakout loads Breakout configuration.
// Search order: customPath -> ~/.arcade/configs/breakout.yaml -> ./configs/breakout.yaml -> embedded default
//
// Files may be partial: keys they omit keep their default values.
// Only an explicit customPath is allowed to fail; the fallbacks are skipped
// silently when missing or malformed.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BreakoutConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseBreakout(data)
		if err != nil {
			return BreakoutConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(breakoutFile), filepath.Join("configs", breakoutFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseBreakout(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseBreakout(defaultBreakoutYAML)
	if err != nil {
		return DefaultBreakoutConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseBreakout decodes YAML over the defaults and validates the result.
// Unknown keys are rejected so typos do not pass silently.
func parseBreakout(data []byte) (BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return BreakoutConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return BreakoutConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
