package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses an AnalysisConfig from YAML bytes and validates it.
// This is used for APIs where config is provided as payload (not via filesystem).
func ParseYAML(data []byte) (*AnalysisConfig, error) {
	var cfg AnalysisConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseYAMLString parses an AnalysisConfig from a YAML string and validates it.
func ParseYAMLString(yamlText string) (*AnalysisConfig, error) {
	return ParseYAML([]byte(yamlText))
}

// ParseJSON parses an AnalysisConfig from JSON bytes and validates it.
func ParseJSON(data []byte) (*AnalysisConfig, error) {
	var cfg AnalysisConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config json: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
