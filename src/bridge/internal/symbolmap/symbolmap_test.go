package symbolmap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newParams(t *testing.T, path string) (Params, *fxtest.Lifecycle) {
	provider, err := config.NewYAML(config.Source(strings.NewReader("symbolMapping:\n  path: \"" + path + "\"\n")))
	require.NoError(t, err)
	lc := fxtest.NewLifecycle(t)
	return Params{
		Config:    provider,
		Lifecycle: lc,
		Logger:    zap.NewNop().Sugar(),
		Stats:     tally.NewTestScope("testing", nil),
	}, lc
}

func TestIdentity(t *testing.T) {
	assert.Equal(t, "a.b", Identity.Display("a.b"))
}

func TestNewWithoutPath(t *testing.T) {
	p, _ := newParams(t, "")
	s, err := New(p)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "a.a", s.Display("a.a"))
	assert.NoError(t, s.Reload())
}

func TestNewMissingFile(t *testing.T) {
	p, _ := newParams(t, filepath.Join(t.TempDir(), "absent.txt"))
	_, err := New(p)
	assert.Error(t, err)
}

func TestStoreReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.txt")
	require.NoError(t, os.WriteFile(path, []byte("com.example.Main -> a.a:\n"), 0o644))

	p, lc := newParams(t, path)
	s, err := New(p)
	require.NoError(t, err)
	lc.RequireStart()
	defer lc.RequireStop()

	assert.Equal(t, "com.example.Main", s.Display("a.a"))
	assert.Equal(t, "a.b", s.Display("a.b"))

	require.NoError(t, os.WriteFile(path, []byte("com.example.Main -> a.a:\ncom.example.Other -> a.b:\n"), 0o644))
	assert.Eventually(t, func() bool {
		return s.Display("a.b") == "com.example.Other"
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 2, s.Len())
}

func TestStoreKeepsPreviousMappingOnBadReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.txt")
	require.NoError(t, os.WriteFile(path, []byte("com.example.Main -> a.a:\n"), 0o644))

	p, _ := newParams(t, path)
	s, err := New(p)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("garbage\n"), 0o644))
	assert.Error(t, s.Reload())
	assert.Equal(t, "com.example.Main", s.Display("a.a"))

	scope := p.Stats.(tally.TestScope)
	assert.Equal(t, int64(1), scope.Snapshot().Counters()["testing.symbolmap.load_errors+"].Value())
}
