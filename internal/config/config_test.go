package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingConfigFile(t *testing.T) {
	t.Run("Absent File Is Missing", func(t *testing.T) {
		v := viper.New()
		v.SetConfigType("yaml")
		v.SetConfigFile(filepath.Join(t.TempDir(), "config.yaml"))

		err := v.ReadInConfig()
		require.Error(t, err)
		assert.True(t, missingConfigFile(err))
	})

	t.Run("Malformed File Is Not Missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server:\n  port: [unclosed"), 0o644))

		v := viper.New()
		v.SetConfigType("yaml")
		v.SetConfigFile(path)

		err := v.ReadInConfig()
		require.Error(t, err)
		assert.False(t, missingConfigFile(err))
	})

	t.Run("Valid File Reads Clean", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644))

		v := viper.New()
		v.SetConfigType("yaml")
		v.SetConfigFile(path)

		require.NoError(t, v.ReadInConfig())
		assert.Equal(t, 9090, v.GetInt("server.port"))
	})
}
