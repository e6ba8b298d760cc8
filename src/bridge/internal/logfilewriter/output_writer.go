// Package logfilewriter writes human readable output to a file that users can tail while the bridge runs.
package logfilewriter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/uber/debug-bridge/src/bridge/internal/serverinfofile"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const _fmtOutputKey = "output:%s"

// Params define the dependencies for SetupOutputWriter.
type Params struct {
	Lifecycle      fx.Lifecycle
	ServerInfoFile serverinfofile.ServerInfoFile
	// Dir is the parent directory of the output file. Empty means the system temp directory.
	Dir string
}

// SetupOutputWriter creates a writer backed by a fresh file under <Dir>/<name>.
// The file path is stored in the server info file under "output:<name>" and the file is removed on shutdown.
func SetupOutputWriter(p Params, name string) (io.Writer, error) {
	parent := p.Dir
	if parent == "" {
		parent = os.TempDir()
	}
	logsDirPath := filepath.Join(parent, name)
	if err := os.MkdirAll(logsDirPath, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	logFile, err := os.CreateTemp(logsDirPath, "")
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}

	if err := p.ServerInfoFile.UpdateField(fmt.Sprintf(_fmtOutputKey, name), logFile.Name()); err != nil {
		logFile.Close()
		os.Remove(logFile.Name())
		return nil, err
	}

	// Write via a logger for formatting, timestamp, and performance/buffering.
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(logFile),
		zap.InfoLevel,
	)
	outputLogger := zap.New(core).Sugar()

	// Cleanup on shutdown.
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			outputLogger.Sync()
			logFile.Close()
			return os.Remove(logFile.Name())
		},
	})

	return &loggerWriter{logger: outputLogger}, nil
}

type loggerWriter struct {
	logger *zap.SugaredLogger
}

// Write implements the io.Writer interface by sending data to the given logger.
func (o *loggerWriter) Write(p []byte) (n int, err error) {
	// Incoming data may contain multiple lines, including blank ones.
	for _, line := range strings.Split(string(p), "\n") {
		if len(line) > 0 {
			o.logger.Info(line)
		}
	}

	return len(p), nil
}
