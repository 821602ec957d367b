package configutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string `json:"base_url"`
	Workers int    `json:"workers"`
	Retries int    `json:"retries"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")

	defaults := testConfig{BaseUrl: "https://www.vlr.gg", Workers: 8, Retries: 2}

	t.Run("missing", func(t *testing.T) {
		cfg, err := ReadConfig(name, defaults)
		require.True(t, errors.Is(err, os.ErrNotExist))
		require.Equal(t, defaults, cfg)
	})

	require.NoError(t, os.WriteFile(name, []byte(`{
		// trailing commas and comments are fine
		workers: 4,
	}`), 0600))

	t.Run("base", func(t *testing.T) {
		cfg, err := ReadConfig(name, defaults)
		require.NoError(t, err)
		require.Equal(t, testConfig{BaseUrl: "https://www.vlr.gg", Workers: 4, Retries: 2}, cfg)
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.local.json5"), []byte(`{
		base_url: "http://localhost:8080",
	}`), 0600))

	t.Run("local override", func(t *testing.T) {
		cfg, err := ReadConfig(name, defaults)
		require.NoError(t, err)
		require.Equal(t, testConfig{BaseUrl: "http://localhost:8080", Workers: 4, Retries: 2}, cfg)
	})
}

func TestLocalPath(t *testing.T) {
	require.Equal(t, "dir/config.local.json5", localPath("dir/config.json5"))
	require.Equal(t, "config.local", localPath("config"))
}
