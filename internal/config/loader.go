package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "gameloop.yaml"

// Source names where a configuration came from.
const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// Load finds and parses the configuration.
// Search order: customPath -> ~/.gameloop/config.yaml -> ./configs/gameloop.yaml -> embedded default.
// Every file is laid over Default(), so it only needs the keys it changes.
// The returned source is the file path used, or SourceEmbedded/SourceBuiltin.
//
// A customPath that cannot be read or parsed is an error; the other
// locations are skipped when missing or malformed.
func Load(customPath string) (Config, string, error) {
	if customPath != "" {
		cfg, err := parseFile(customPath)
		if err != nil {
			return Default(), "", err
		}
		return cfg, customPath, nil
	}

	for _, path := range searchPaths() {
		if cfg, err := parseFile(path); err == nil {
			return cfg, path, nil
		}
	}

	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), SourceBuiltin, nil
	}
	return cfg, SourceEmbedded, nil
}

// Parse decodes data over Default() and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// searchPaths lists the implicit config locations, highest priority first.
func searchPaths() []string {
	var paths []string
	if p := userConfigPath(); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", fileName))
}

// userConfigPath returns ~/.gameloop/config.yaml, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gameloop", "config.yaml")
}

// Marshal encodes cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
