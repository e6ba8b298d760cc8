package serverinfofile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func newConfig(t *testing.T, values map[string]interface{}) config.Provider {
	provider, err := config.NewStaticProvider(values)
	require.NoError(t, err)
	return provider
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]interface{}
		wantErr bool
	}{
		{
			name:   "path configured",
			values: map[string]interface{}{_configKeyInfoFile: "/tmp/bridge.json"},
		},
		{
			name:   "path omitted",
			values: map[string]interface{}{},
		},
		{
			name:    "incorrectly formatted entry",
			values:  map[string]interface{}{_configKeyInfoFile: map[string]interface{}{"a": "b"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Params{
				Config:    newConfig(t, tt.values),
				Lifecycle: fxtest.NewLifecycle(t),
				Logger:    zap.NewNop().Sugar(),
			})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateField(t *testing.T) {
	t.Run("multiple successful updates", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "info.json")
		m := module{
			infofile:     path,
			logger:       zap.NewNop().Sugar(),
			fileContents: make(map[string]string),
		}

		steps := []struct {
			key        string
			value      string
			expectJSON string
		}{
			{key: "bridge-address", value: "127.0.0.1:7000", expectJSON: `{"bridge-address":"127.0.0.1:7000"}`},
			{key: "bridge-address", value: "127.0.0.1:7001", expectJSON: `{"bridge-address":"127.0.0.1:7001"}`},
			{key: "pid", value: "42", expectJSON: `{"bridge-address":"127.0.0.1:7001","pid":"42"}`},
		}
		for _, step := range steps {
			require.NoError(t, m.UpdateField(step.key, step.value))
			contents, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.JSONEq(t, step.expectJSON, string(contents))
		}
	})

	t.Run("no path configured", func(t *testing.T) {
		m := module{
			logger:       zap.NewNop().Sugar(),
			fileContents: make(map[string]string),
		}
		assert.NoError(t, m.UpdateField("bridge-address", "127.0.0.1:7000"))
		assert.Empty(t, m.fileContents)
	})

	t.Run("write error", func(t *testing.T) {
		m := module{
			infofile:     filepath.Join(t.TempDir(), "missing", "info.json"),
			logger:       zap.NewNop().Sugar(),
			fileContents: make(map[string]string),
		}
		assert.Error(t, m.UpdateField("bridge-address", "127.0.0.1:7000"))
	})
}

func TestOnStop(t *testing.T) {
	t.Run("file removed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "info.json")
		m := module{
			infofile:     path,
			logger:       zap.NewNop().Sugar(),
			fileContents: make(map[string]string),
		}
		require.NoError(t, m.UpdateField("bridge-address", "127.0.0.1:7000"))

		assert.NoError(t, m.OnStop(context.Background()))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("nothing written", func(t *testing.T) {
		m := module{
			infofile:     filepath.Join(t.TempDir(), "info.json"),
			logger:       zap.NewNop().Sugar(),
			fileContents: make(map[string]string),
		}
		assert.NoError(t, m.OnStop(context.Background()))
	})

	t.Run("file already gone", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "info.json")
		m := module{
			infofile:     path,
			logger:       zap.NewNop().Sugar(),
			fileContents: make(map[string]string),
		}
		require.NoError(t, m.UpdateField("bridge-address", "127.0.0.1:7000"))
		require.NoError(t, os.Remove(path))
		assert.NoError(t, m.OnStop(context.Background()))
	})
}
