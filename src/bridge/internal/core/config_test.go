package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigDir(t *testing.T, files map[string]string) string {
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]string
		env         string
		setupEnv    func(t *testing.T)
		expectError bool
		check       func(t *testing.T, c Config)
	}{
		{
			name: "loads files listed in meta",
			files: map[string]string{
				"meta.yaml": "files:\n  - base.yaml\n  - missing.yaml\n",
				"base.yaml": "service:\n  name: debug-bridge\nlogging:\n  level: info\n",
			},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, "debug-bridge", c.Get("service.name").String())
				assert.True(t, c.Get("logging.level").HasValue())
			},
		},
		{
			name: "environment overlay wins",
			files: map[string]string{
				"meta.yaml":        "files:\n  - base.yaml\n",
				"base.yaml":        "jsonrpc:\n  address: 127.0.0.1:5000\n",
				"development.yaml": "jsonrpc:\n  address: 127.0.0.1:6000\n",
			},
			env: "development",
			check: func(t *testing.T, c Config) {
				assert.Equal(t, "127.0.0.1:6000", c.Get("jsonrpc.address").String())
			},
		},
		{
			name: "expands environment variables",
			files: map[string]string{
				"meta.yaml": "files:\n  - base.yaml\n",
				"base.yaml": "journal:\n  redis:\n    address: ${BRIDGE_TEST_REDIS:localhost:6379}\n",
			},
			setupEnv: func(t *testing.T) {
				t.Setenv("BRIDGE_TEST_REDIS", "redis.internal:6380")
			},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, "redis.internal:6380", c.Get("journal.redis.address").String())
			},
		},
		{
			name: "no listed file exists",
			files: map[string]string{
				"meta.yaml": "files:\n  - base.yaml\n",
			},
			expectError: true,
		},
		{
			name:        "missing meta",
			files:       map[string]string{},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setupEnv != nil {
				tt.setupEnv(t)
			}
			dir := writeConfigDir(t, tt.files)

			provider, err := NewConfig(ConfigOptions{Dir: dir, Environment: tt.env})
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, provider)
				return
			}

			require.NoError(t, err)
			tt.check(t, provider.(Config))
		})
	}
}

func TestResolveConfigDir(t *testing.T) {
	t.Setenv(_envConfigDir, "")
	assert.Equal(t, _defaultDir, resolveConfigDir(""))
	assert.Equal(t, "/explicit", resolveConfigDir("/explicit"))

	t.Setenv(_envConfigDir, "/from/env")
	assert.Equal(t, "/from/env", resolveConfigDir(""))
	assert.Equal(t, "/explicit", resolveConfigDir("/explicit"))
}

func TestResolveEnvironment(t *testing.T) {
	t.Setenv(_envEnvironment, "production")
	assert.Equal(t, "production", resolveEnvironment(""))
	assert.Equal(t, "test", resolveEnvironment("test"))
}
