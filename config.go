package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config carries the report options that can come from a YAML file.
// Environment variables override the file; explicit flags override both.
type Config struct {
	TargetLocation string `yaml:"target_location"`
	TargetPayor    string `yaml:"target_payor"`
	Keyword        string `yaml:"keyword"`
	RatioLocation  string `yaml:"ratio_location"`
	Sort           string `yaml:"sort"`
	OutDir         string `yaml:"out_dir"`
	DBSchema       string `yaml:"db_schema"`
	DBTag          string `yaml:"db_tag"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("unable to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("unable to parse config file: %w", err)
		}
	}

	envOverride(&cfg.TargetLocation, "DEMOGRAPHICS_REPORT_LOCATION")
	envOverride(&cfg.TargetPayor, "DEMOGRAPHICS_REPORT_PAYOR")
	envOverride(&cfg.Keyword, "DEMOGRAPHICS_REPORT_KEYWORD")
	envOverride(&cfg.RatioLocation, "DEMOGRAPHICS_REPORT_RATIO_LOCATION")
	envOverride(&cfg.Sort, "DEMOGRAPHICS_REPORT_SORT")
	envOverride(&cfg.OutDir, "DEMOGRAPHICS_REPORT_OUT_DIR")
	envOverride(&cfg.DBSchema, "DEMOGRAPHICS_REPORT_DB_SCHEMA")
	envOverride(&cfg.DBTag, "DEMOGRAPHICS_REPORT_DB_TAG")

	return cfg, nil
}

func envOverride(target *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*target = value
	}
}
