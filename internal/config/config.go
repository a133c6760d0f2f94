package config

import (
	"fmt"
	"os"
	"strings"

	"subclash/internal/render"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
}

type InputConfig struct {
	Prompt     string `yaml:"prompt"`
	Terminator string `yaml:"terminator"` // case-insensitive keyword ending input
}

type OutputConfig struct {
	Format    string `yaml:"format"`     // clash, xray
	GroupName string `yaml:"group_name"` // selector group holding every proxy
	Dedupe    bool   `yaml:"dedupe"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Prompt:     "Paste VMess/VLESS/Trojan links, one per line (empty line or 'done' to finish):",
			Terminator: "done",
		},
		Output: OutputConfig{
			Format:    "clash",
			GroupName: render.DefaultGroupName,
		},
	}
}

// Load overlays the YAML file at path on top of Default. An empty path means
// defaults only; nothing is read from disk.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}

	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	if cfg.Output.Format == "" {
		cfg.Output.Format = "clash"
	}
	if strings.TrimSpace(cfg.Output.GroupName) == "" {
		cfg.Output.GroupName = render.DefaultGroupName
	}

	return cfg, nil
}
