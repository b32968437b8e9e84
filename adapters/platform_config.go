package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"pimadapter/helpers"
	"pimadapter/interfaces"

	"github.com/go-kit/log"
)

// PlatformConfigEnv names the environment variable holding the path of the platform configuration file.
const PlatformConfigEnv = "ANSYS_PLATFORM_INSTANCEMANAGEMENT_CONFIG"

// platformConfigVersion is the only configuration file version understood.
const platformConfigVersion = 1

// ErrPlatformConfigNotSet is returned when neither an override path nor PlatformConfigEnv is set.
var ErrPlatformConfigNotSet = errors.New(PlatformConfigEnv + " is not set")

// PlatformConfig is the platform configuration file:
//
//	{"version": 1, "pim": {"uri": "dns:pim.example:50051", "headers": {"x-api-key": "..."}, "tls": false}}
type PlatformConfig struct {
	Version int              `json:"version"`
	PIM     PlatformEndpoint `json:"pim"`
}

// PlatformEndpoint is the "pim" section of PlatformConfig.
type PlatformEndpoint struct {
	URI     string            `json:"uri"`
	Headers map[string]string `json:"headers"`
	TLS     bool              `json:"tls"`
}

// LoadPlatformConfig reads and validates the platform configuration file at path.
//
// Parameter path — JSON file path (non-empty).
//
// Returns: (PlatformConfig, nil); error when the file cannot be read, is not valid JSON, has an unsupported version or no pim.uri.
//
// Called from PlatformConnector.
func LoadPlatformConfig(path string) (PlatformConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PlatformConfig{}, fmt.Errorf("read platform config: %w", err)
	}
	var cfg PlatformConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return PlatformConfig{}, fmt.Errorf("parse platform config %s: %w", path, err)
	}
	if cfg.Version != platformConfigVersion {
		return PlatformConfig{}, fmt.Errorf("platform config %s: unsupported version %d", path, cfg.Version)
	}
	cfg.PIM.URI = strings.TrimSpace(cfg.PIM.URI)
	if cfg.PIM.URI == "" {
		return PlatformConfig{}, fmt.Errorf("platform config %s: pim.uri is required", path)
	}
	return cfg, nil
}

// ResolvePlatformConfigPath returns override when non-empty, otherwise the value of PlatformConfigEnv.
//
// Returns: (path, nil) or ("", ErrPlatformConfigNotSet).
func ResolvePlatformConfigPath(override string) (string, error) {
	if p := strings.TrimSpace(override); p != "" {
		return p, nil
	}
	if p := strings.TrimSpace(os.Getenv(PlatformConfigEnv)); p != "" {
		return p, nil
	}
	return "", ErrPlatformConfigNotSet
}

// PlatformConnector returns the connect function for service.NewPlatformHandle: on each call it resolves the configuration path
// (override first, then PlatformConfigEnv), loads the file and dials the platform manager.
//
// Parameters: override — configuration path taking precedence over the environment (empty to disable); opts — readiness polling;
// logger — passed to the client.
//
// Returns: connect function; it returns (nil, err) when the configuration is missing or invalid or the client cannot be created.
//
// Called from cmd/main.
func PlatformConnector(override string, opts PlatformOptions, logger log.Logger) func(ctx context.Context) (interfaces.PlatformManager, error) {
	logger = helpers.NilPanic(logger, "adapters.platform_config.go: logger is required")
	return func(ctx context.Context) (interfaces.PlatformManager, error) {
		path, err := ResolvePlatformConfigPath(override)
		if err != nil {
			return nil, err
		}
		cfg, err := LoadPlatformConfig(path)
		if err != nil {
			return nil, err
		}
		return DialPlatform(cfg, opts, logger)
	}
}
