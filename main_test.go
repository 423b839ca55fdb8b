package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bvisness/wasm-read/internal/config"
	"github.com/bvisness/wasm-read/internal/render"
	"github.com/bvisness/wasm-read/wasmread"
	"github.com/stretchr/testify/require"
)

func sampleDoc(t *testing.T) render.Document {
	t.Helper()
	bin, err := os.ReadFile("testdata/sample.wasm")
	require.NoError(t, err)
	m, err := wasmread.Decode(bin)
	require.NoError(t, err)
	return render.FromModule(m)
}

func TestWriteOutput(t *testing.T) {
	t.Run("file is complete when writeOutput returns", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "out.json")
		cfg := &config.Config{Out: out, Indent: "always"}
		require.NoError(t, writeOutput(cfg, sampleDoc(t), render.JSON))

		got, err := os.ReadFile(out)
		require.NoError(t, err)
		want, err := os.ReadFile("testdata/sample.json")
		require.NoError(t, err)
		require.JSONEq(t, string(want), string(got))
	})

	t.Run("write failure is returned after the file is closed", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "out.xml")
		cfg := &config.Config{Out: out, Indent: "never"}
		err := writeOutput(cfg, sampleDoc(t), render.Format("xml"))
		require.ErrorContains(t, err, "could not write output")

		// The file exists and can be replaced by a new one.
		_, err = os.Stat(out)
		require.NoError(t, err)
		require.NoError(t, writeOutput(cfg, sampleDoc(t), render.YAML))
		got, err := os.ReadFile(out)
		require.NoError(t, err)
		require.Contains(t, string(got), "signatures:")
	})

	t.Run("unopenable output", func(t *testing.T) {
		cfg := &config.Config{Out: filepath.Join(t.TempDir(), "missing", "out.json")}
		err := writeOutput(cfg, sampleDoc(t), render.JSON)
		require.ErrorContains(t, err, "could not open output file")
	})
}
