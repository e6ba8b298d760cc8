package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/uber/debug-bridge/src/bridge/internal/core"
	"go.uber.org/config"
)

// Sinks that zap resolves itself rather than opening a file.
var _standardSinks = map[string]bool{
	"stdout": true,
	"stderr": true,
}

// decorateConfigProvider includes any steps that modify the config.Provider before it is used, or use its data for any startup related activities.
func decorateConfigProvider(cfg config.Provider) (config.Provider, error) {
	combined, err := ensureLogFolder(cfg)
	if err != nil {
		return nil, fmt.Errorf("ensuring log folder: %v", err)
	}

	return combined, nil
}

// Ensure that all configured logging output directories exist or create if necessary.
func ensureLogFolder(cfg config.Provider) (config.Provider, error) {
	var c core.LoggingConfig
	if err := cfg.Get("logging").Populate(&c); err != nil {
		return nil, fmt.Errorf("loading logging config: %v", err)
	}

	for _, outputPath := range c.OutputPaths {
		if _standardSinks[outputPath] {
			continue
		}
		dir := filepath.Dir(outputPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating logging directory: %v", err)
		}
	}

	return cfg, nil
}
