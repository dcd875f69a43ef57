package config

import (
	"fmt"
	"log/slog"
	"os"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads and validates the configuration at path. It first loads a
// sibling .env file (if present, ignoring its absence), then reads the
// YAML file, expands environment variable references, merges the result
// over Defaults (so unset fields fall back rather than zeroing out), and
// validates the merged configuration.
func Load(path string) (*Config, error) {
	envPath := envSibling(path)
	if err := godotenv.Load(envPath); err != nil {
		slog.Debug("no .env file loaded", "path", envPath, "error", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(ExpandEnv(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	cfg := Defaults()
	if err := mergo.Merge(cfg, parsed, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("config: merging defaults: %w", err)
	}

	if v := os.Getenv("AUDIT_PATH"); v != "" {
		cfg.AuditPath = v
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envSibling(configPath string) string {
	dir := "."
	for i := len(configPath) - 1; i >= 0; i-- {
		if configPath[i] == '/' {
			dir = configPath[:i]
			break
		}
	}
	return dir + "/.env"
}
