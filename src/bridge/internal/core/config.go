package core

import (
	"fmt"
	"os"
	"path/filepath"

	uber_config "go.uber.org/config"
	"go.uber.org/fx"
)

const (
	_envConfigDir   = "BRIDGE_CONFIG_DIR"
	_envEnvironment = "BRIDGE_ENVIRONMENT"
	_defaultDir     = "src/bridge/config"
)

// ConfigModule provides the configuration provider.
var ConfigModule = fx.Options(
	fx.Provide(NewConfig),
)

// ConfigOptions selects where configuration files are loaded from.
// Empty fields fall back to the environment and then to defaults.
type ConfigOptions struct {
	Dir         string
	Environment string
}

// Config wraps the loaded provider.
type Config struct {
	provider uber_config.Provider
}

// Get returns the value at the given dotted path.
func (c Config) Get(path string) uber_config.Value {
	return c.provider.Get(path)
}

// Name implements config.Provider.
func (c Config) Name() string {
	return "config"
}

// NewConfig loads meta.yaml from the config directory and merges every file it lists, followed by
// an optional <environment>.yaml overlay. ${VAR} references are expanded from the process environment.
func NewConfig(opts ConfigOptions) (uber_config.Provider, error) {
	configDir := resolveConfigDir(opts.Dir)

	metaPath := filepath.Join(configDir, "meta.yaml")
	metaProvider, err := uber_config.NewYAML(
		uber_config.File(metaPath),
		uber_config.Expand(os.LookupEnv),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load meta configuration: %w", err)
	}

	var configFiles []string
	if err := metaProvider.Get("files").Populate(&configFiles); err != nil {
		return nil, fmt.Errorf("failed to read files list from meta.yaml: %w", err)
	}

	if env := resolveEnvironment(opts.Environment); env != "" {
		configFiles = append(configFiles, env+".yaml")
	}

	var options []uber_config.YAMLOption
	for _, file := range configFiles {
		fullPath := filepath.Join(configDir, file)
		if _, err := os.Stat(fullPath); err == nil {
			options = append(options, uber_config.File(fullPath))
		}
	}

	if len(options) == 0 {
		return nil, fmt.Errorf("no configuration files found in %s", configDir)
	}
	options = append(options, uber_config.Expand(os.LookupEnv))

	provider, err := uber_config.NewYAML(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return Config{provider: provider}, nil
}

func resolveConfigDir(dir string) string {
	if dir != "" {
		return dir
	}
	if configDir := os.Getenv(_envConfigDir); configDir != "" {
		return configDir
	}
	return _defaultDir
}

func resolveEnvironment(env string) string {
	if env != "" {
		return env
	}
	return os.Getenv(_envEnvironment)
}
