// Package config loads the YAML audit configuration. Everything has a
// default; a missing config file is not an error.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"firewall-auditor/pkg/wellknown"
)

type Report struct {
	OutputDir string   `yaml:"output_dir"`
	Formats   []string `yaml:"formats"` // "html", "csv"
}

type Config struct {
	// SensitivePorts overrides the built-in sensitive port set the
	// permissiveness detector checks.
	SensitivePorts []int  `yaml:"sensitive_ports"`
	Workers        int    `yaml:"workers"`
	Report         Report `yaml:"report"`
}

func Default() Config {
	return Config{
		SensitivePorts: wellknown.SensitivePorts(),
		Workers:        runtime.NumCPU(),
		Report: Report{
			OutputDir: "reports",
			Formats:   []string{"html", "csv"},
		},
	}
}

// Load reads the configuration at path over the defaults. An empty path
// returns the defaults as-is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if len(cfg.SensitivePorts) == 0 {
		cfg.SensitivePorts = wellknown.SensitivePorts()
	}
	for _, port := range cfg.SensitivePorts {
		if port < 0 || port > 65535 {
			return cfg, fmt.Errorf("config %s: sensitive port %d out of range", path, port)
		}
	}
	for _, format := range cfg.Report.Formats {
		switch format {
		case "html", "csv":
		default:
			return cfg, fmt.Errorf("config %s: unknown report format %q", path, format)
		}
	}
	return cfg, nil
}
