package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bvisness/wasm-read/internal/config"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringP("out", "o", "-", "")
	fs.StringP("format", "f", "json", "")
	fs.String("indent", "auto", "")
	fs.Bool("strict-utf8", false, "")
	fs.Int("max-size", 0, "")
	fs.String("log-level", "info", "")
	return fs
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Load("", nil)
		require.NoError(t, err)
		require.Equal(t, &config.Config{
			Out:        "-",
			Format:     "json",
			Indent:     "auto",
			StrictUTF8: false,
			MaxSize:    0,
			LogLevel:   "info",
		}, cfg)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "wasm-read.yaml")
		require.NoError(t, os.WriteFile(path, []byte("format: yaml\nstrict_utf8: true\nmax_size: 1024\n"), 0o644))

		cfg, err := config.Load(path, newFlags())
		require.NoError(t, err)
		require.Equal(t, "yaml", cfg.Format)
		require.True(t, cfg.StrictUTF8)
		require.Equal(t, 1024, cfg.MaxSize)
		require.Equal(t, "-", cfg.Out)
	})

	t.Run("flags override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "wasm-read.yaml")
		require.NoError(t, os.WriteFile(path, []byte("format: yaml\nout: a.json\n"), 0o644))

		fs := newFlags()
		require.NoError(t, fs.Parse([]string{"--format", "json", "--max-size=10"}))
		cfg, err := config.Load(path, fs)
		require.NoError(t, err)
		require.Equal(t, "json", cfg.Format)
		require.Equal(t, 10, cfg.MaxSize)
		require.Equal(t, "a.json", cfg.Out)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("WASM_READ_STRICT_UTF8", "true")
		t.Setenv("WASM_READ_LOG_LEVEL", "debug")
		cfg, err := config.Load("", newFlags())
		require.NoError(t, err)
		require.True(t, cfg.StrictUTF8)
		require.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		require.Error(t, err)
	})

	t.Run("invalid indent", func(t *testing.T) {
		fs := newFlags()
		require.NoError(t, fs.Parse([]string{"--indent", "sometimes"}))
		_, err := config.Load("", fs)
		require.ErrorContains(t, err, "indent")
	})

	t.Run("negative max size", func(t *testing.T) {
		fs := newFlags()
		require.NoError(t, fs.Parse([]string{"--max-size=-1"}))
		_, err := config.Load("", fs)
		require.ErrorContains(t, err, "max_size")
	})
}
