package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pimadapter/domain"
	"pimadapter/service"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envConfigPath   = "PIMADAPTER_CONFIG_PATH"
	envAction       = "PIMADAPTER_ACTION"
	envInstanceName = "PIMADAPTER_INSTANCE_NAME"
)

// Action is the single operation one run of the binary performs.
type Action string

const (
	ActionList      Action = "list"
	ActionCreate    Action = "create"
	ActionReconnect Action = "reconnect"
	ActionDelete    Action = "delete"
)

// Config holds the driver configuration loaded by LoadConfig from environment variables and the YAML file.
// Action and InstanceName come from PIMADAPTER_ACTION and PIMADAPTER_INSTANCE_NAME; everything else from YAML.
// Zero durations mean the platform client defaults.
type Config struct {
	Action                 Action
	InstanceName           string
	ProductName            string
	InstanceFilter         string
	PluginClientDir        string
	ReadyPollInterval      time.Duration
	ReadyTimeout           time.Duration
	PlatformConfigOverride string
	ConnectAfterCreate     bool
}

// yamlConfig is the root struct for YAML unmarshalling.
type yamlConfig struct {
	ProductName         string       `yaml:"product_name"`
	InstanceFilter      string       `yaml:"instance_filter"`
	PluginClientDir     string       `yaml:"plugin_client_dir"`
	ReadyPollIntervalMs int          `yaml:"ready_poll_interval_ms"`
	ReadyTimeoutMs      int          `yaml:"ready_timeout_ms"`
	ConnectAfterCreate  *bool        `yaml:"connect_after_create"`
	Platform            yamlPlatform `yaml:"platform"`
}

// yamlPlatform holds the optional override of the platform configuration file path.
type yamlPlatform struct {
	ConfigOverride string `yaml:"config_override"`
}

// loadYAMLConfig reads the YAML file at path and unmarshals it into yamlConfig.
//
// Parameter path — absolute path to the file (LoadConfig converts PIMADAPTER_CONFIG_PATH to absolute via filepath.Abs).
//
// Returns: (*yamlConfig, nil) on successful read and yaml.Unmarshal; (nil, error) on os.ReadFile or yaml.Unmarshal error.
//
// Called only from LoadConfig.
func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig builds the driver config from environment variables and YAML at PIMADAPTER_CONFIG_PATH. Reads PIMADAPTER_ACTION
// (required, list|create|reconnect|delete), PIMADAPTER_CONFIG_PATH (required) and PIMADAPTER_INSTANCE_NAME (optional; empty selects
// the first ready instance). Empty YAML values fall back to domain.DefaultProductName, domain.DefaultInstanceFilter and
// service.DefaultPluginClientDir; connect_after_create defaults to true.
//
// Parameters: none (source — os.Getenv and file at PIMADAPTER_CONFIG_PATH).
//
// Returns: (*Config, nil) on success; (nil, error) on unknown action, missing config path, YAML load/parse error or negative/inconsistent durations.
//
// Called only from main at startup.
func LoadConfig() (*Config, error) {
	action := Action(strings.TrimSpace(os.Getenv(envAction)))
	switch action {
	case ActionList, ActionCreate, ActionReconnect, ActionDelete:
	case "":
		return nil, fmt.Errorf("%s is required", envAction)
	default:
		return nil, fmt.Errorf("%s must be list|create|reconnect|delete, got %q", envAction, action)
	}
	configPath := strings.TrimSpace(os.Getenv(envConfigPath))
	if configPath == "" {
		return nil, fmt.Errorf("%s is required", envConfigPath)
	}
	if !filepath.IsAbs(configPath) {
		abs, absErr := filepath.Abs(configPath)
		if absErr != nil {
			return nil, absErr
		}
		configPath = abs
	}
	raw, err := loadYAMLConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}

	if raw.ReadyPollIntervalMs < 0 {
		return nil, fmt.Errorf("ready_poll_interval_ms must not be negative, got %d", raw.ReadyPollIntervalMs)
	}
	if raw.ReadyTimeoutMs < 0 {
		return nil, fmt.Errorf("ready_timeout_ms must not be negative, got %d", raw.ReadyTimeoutMs)
	}
	if raw.ReadyPollIntervalMs > 0 && raw.ReadyTimeoutMs > 0 && raw.ReadyPollIntervalMs > raw.ReadyTimeoutMs {
		return nil, fmt.Errorf("ready_poll_interval_ms (%d) must not exceed ready_timeout_ms (%d)", raw.ReadyPollIntervalMs, raw.ReadyTimeoutMs)
	}

	cfg := &Config{
		Action:                 action,
		InstanceName:           strings.TrimSpace(os.Getenv(envInstanceName)),
		ProductName:            defaultString(raw.ProductName, domain.DefaultProductName),
		InstanceFilter:         defaultString(raw.InstanceFilter, domain.DefaultInstanceFilter),
		PluginClientDir:        defaultString(raw.PluginClientDir, service.DefaultPluginClientDir),
		ReadyPollInterval:      time.Duration(raw.ReadyPollIntervalMs) * time.Millisecond,
		ReadyTimeout:           time.Duration(raw.ReadyTimeoutMs) * time.Millisecond,
		PlatformConfigOverride: strings.TrimSpace(raw.Platform.ConfigOverride),
		ConnectAfterCreate:     true,
	}
	if raw.ConnectAfterCreate != nil {
		cfg.ConnectAfterCreate = *raw.ConnectAfterCreate
	}
	return cfg, nil
}

// defaultString returns v trimmed, or def when v is blank.
func defaultString(v, def string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return def
}
