package workflow

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a configuration document. Actions without an id get one
// and an empty label falls back to DefaultButtonLabel.
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.ButtonLabel = strings.TrimSpace(cfg.ButtonLabel)
	if cfg.ButtonLabel == "" {
		cfg.ButtonLabel = DefaultButtonLabel
	}
	if cfg.Actions == nil {
		cfg.Actions = []Action{}
	}

	seen := make(map[string]struct{}, len(cfg.Actions))
	for i := range cfg.Actions {
		a := &cfg.Actions[i]
		a.Kind = strings.TrimSpace(a.Kind)
		if a.Kind == "" {
			return nil, fmt.Errorf("action %d: type is required", i+1)
		}
		if a.ID == "" {
			a.ID = NewAction(a.Kind, nil).ID
		}
		if _, dup := seen[a.ID]; dup {
			return nil, fmt.Errorf("action %d: duplicate id %q", i+1, a.ID)
		}
		seen[a.ID] = struct{}{}
		if a.Params == nil {
			a.Params = Params{}
		}
	}
	return &cfg, nil
}

// LoadFile reads a YAML configuration from disk.
func LoadFile(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("workflow path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workflow %s: %w", path, err)
	}
	cfg, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parse workflow %s: %w", path, err)
	}
	return cfg, nil
}

// MarshalYAML encodes a configuration document.
func MarshalYAML(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	return yaml.Marshal(cfg)
}

// SaveFile writes a configuration as YAML.
func SaveFile(path string, cfg *Config) error {
	data, err := MarshalYAML(cfg)
	if err != nil {
		return fmt.Errorf("encode workflow: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write workflow %s: %w", path, err)
	}
	return nil
}
