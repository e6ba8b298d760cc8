package app

import (
	"fmt"
	"io"

	"github.com/uber/debug-bridge/src/bridge/internal/logfilewriter"
	"github.com/uber/debug-bridge/src/bridge/internal/serverinfofile"
	"go.uber.org/config"
	"go.uber.org/fx"
)

const (
	_configKeyLogpointOutput = "logpointOutput"
	_logpointOutputName      = "debug-bridge-logpoints"
)

// LogpointOutputConfig controls the plain text mirror of logpoint hits.
type LogpointOutputConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

type logpointOutputParams struct {
	fx.In

	Config         config.Provider
	Lifecycle      fx.Lifecycle
	ServerInfoFile serverinfofile.ServerInfoFile
}

type logpointOutputResult struct {
	fx.Out

	Output io.Writer `name:"logpointOutput"`
}

// newLogpointOutput opens the logpoint output file when enabled. A disabled output is a nil writer.
func newLogpointOutput(p logpointOutputParams) (logpointOutputResult, error) {
	var cfg LogpointOutputConfig
	if err := p.Config.Get(_configKeyLogpointOutput).Populate(&cfg); err != nil {
		return logpointOutputResult{}, fmt.Errorf("getting config field %q: %w", _configKeyLogpointOutput, err)
	}
	if !cfg.Enabled {
		return logpointOutputResult{}, nil
	}

	w, err := logfilewriter.SetupOutputWriter(logfilewriter.Params{
		Lifecycle:      p.Lifecycle,
		ServerInfoFile: p.ServerInfoFile,
		Dir:            cfg.Dir,
	}, _logpointOutputName)
	if err != nil {
		return logpointOutputResult{}, fmt.Errorf("setting up logpoint output: %w", err)
	}
	return logpointOutputResult{Output: w}, nil
}
