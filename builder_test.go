// File: lixenwraith/conftree/builder_test.go
package conftree

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuilder covers the defaults-file-args assembly pipeline.
func TestBuilder(t *testing.T) {
	base := map[string]any{
		"task":  "walk",
		"ratio": 0.5,
		"net": map[string]any{
			"depth": 4,
			"width": 32,
		},
	}

	t.Run("DefaultsOnly", func(t *testing.T) {
		cfg, err := NewBuilder().
			WithDefaults(base).
			WithArgs([]string{}).
			Build()
		require.NoError(t, err)
		task, err := cfg.Str("task")
		require.NoError(t, err)
		assert.Equal(t, "walk", task)
	})

	t.Run("LaterBlocksOverride", func(t *testing.T) {
		cfg, err := NewBuilder().
			WithDefaults(base).
			WithDefaults(map[string]any{
				"task": "run",
				"net":  map[string]any{"depth": 8},
			}).
			WithArgs([]string{}).
			Build()
		require.NoError(t, err)
		task, _ := cfg.Str("task")
		depth, _ := cfg.Int64("net.depth")
		width, _ := cfg.Int64("net.width")
		assert.Equal(t, "run", task)
		assert.Equal(t, int64(8), depth)
		assert.Equal(t, int64(32), width) // sibling keys survive the merge
	})

	t.Run("FileLayersOverDefaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "overrides.json")
		fileCfg, err := New(map[string]any{"task": "swim", "ratio": 0.9})
		require.NoError(t, err)
		require.NoError(t, fileCfg.Save(path))

		cfg, err := NewBuilder().
			WithDefaults(base).
			WithFile(path).
			WithArgs([]string{}).
			Build()
		require.NoError(t, err)
		task, _ := cfg.Str("task")
		ratio, _ := cfg.Float64("ratio")
		depth, _ := cfg.Int64("net.depth")
		assert.Equal(t, "swim", task)
		assert.Equal(t, 0.9, ratio)
		assert.Equal(t, int64(4), depth)
	})

	t.Run("FileWithUnknownKeyFails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "overrides.json")
		fileCfg, err := New(map[string]any{"surprise": 1})
		require.NoError(t, err)
		require.NoError(t, fileCfg.Save(path))

		_, err = NewBuilder().
			WithDefaults(base).
			WithFile(path).
			WithArgs([]string{}).
			Build()
		assert.ErrorIs(t, err, ErrUnknownKey)
	})

	t.Run("FileBecomesBaselineWithoutDefaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		fileCfg, err := New(map[string]any{"only": "file"})
		require.NoError(t, err)
		require.NoError(t, fileCfg.Save(path))

		cfg, err := NewBuilder().
			WithFile(path).
			WithArgs([]string{}).
			Build()
		require.NoError(t, err)
		only, err := cfg.Str("only")
		require.NoError(t, err)
		assert.Equal(t, "file", only)
	})

	t.Run("ArgsOverrideEverything", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "overrides.json")
		fileCfg, err := New(map[string]any{"task": "swim"})
		require.NoError(t, err)
		require.NoError(t, fileCfg.Save(path))

		cfg, err := NewBuilder().
			WithDefaults(base).
			WithFile(path).
			WithArgs([]string{"--task", "fly", "--net.width=64"}).
			Build()
		require.NoError(t, err)
		task, _ := cfg.Str("task")
		width, _ := cfg.Int64("net.width")
		assert.Equal(t, "fly", task)
		assert.Equal(t, int64(64), width)
	})

	t.Run("StructDefaults", func(t *testing.T) {
		cfg, err := NewBuilder().
			WithStructDefaults("opt", optimizerDefaults{LR: 0.001, Steps: 100}).
			WithArgs([]string{"--opt.steps", "200"}).
			Build()
		require.NoError(t, err)
		steps, err := cfg.Int64("opt.steps")
		require.NoError(t, err)
		assert.Equal(t, int64(200), steps)
	})

	t.Run("StrictArgs", func(t *testing.T) {
		_, err := NewBuilder().
			WithDefaults(base).
			WithArgs([]string{"--bogus", "1"}).
			Build()
		assert.ErrorIs(t, err, ErrUnresolvedArguments)
	})

	t.Run("MustBuildPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewBuilder().
				WithDefaults(map[string]any{"bad key": 1}).
				WithArgs([]string{}).
				MustBuild()
		})
	})
}
