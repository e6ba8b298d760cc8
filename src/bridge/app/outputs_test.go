package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/debug-bridge/src/bridge/internal/serverinfofile/serverinfofilemock"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
)

func TestNewLogpointOutput(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cfg, err := config.NewStaticProvider(map[string]interface{}{})
		require.NoError(t, err)

		result, err := newLogpointOutput(logpointOutputParams{
			Config:         cfg,
			Lifecycle:      fxtest.NewLifecycle(t),
			ServerInfoFile: serverinfofilemock.NewMockServerInfoFile(ctrl),
		})
		require.NoError(t, err)
		assert.Nil(t, result.Output)
	})

	t.Run("enabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		infoFile := serverinfofilemock.NewMockServerInfoFile(ctrl)
		infoFile.EXPECT().UpdateField("output:"+_logpointOutputName, gomock.Any()).Return(nil)

		cfg, err := config.NewStaticProvider(map[string]interface{}{
			_configKeyLogpointOutput: map[string]interface{}{"enabled": true, "dir": t.TempDir()},
		})
		require.NoError(t, err)

		lc := fxtest.NewLifecycle(t)
		result, err := newLogpointOutput(logpointOutputParams{
			Config:         cfg,
			Lifecycle:      lc,
			ServerInfoFile: infoFile,
		})
		require.NoError(t, err)
		require.NotNil(t, result.Output)

		_, err = result.Output.Write([]byte("hit\n"))
		assert.NoError(t, err)
		lc.RequireStart()
		lc.RequireStop()
	})

	t.Run("malformed block", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cfg, err := config.NewStaticProvider(map[string]interface{}{_configKeyLogpointOutput: "yes"})
		require.NoError(t, err)

		_, err = newLogpointOutput(logpointOutputParams{
			Config:         cfg,
			Lifecycle:      fxtest.NewLifecycle(t),
			ServerInfoFile: serverinfofilemock.NewMockServerInfoFile(ctrl),
		})
		assert.Error(t, err)
	})
}
