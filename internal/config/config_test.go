package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Default(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, ".algocache", cfg.Cache.Dir)
	assert.Contains(t, cfg.Output.ReservedWords, "int")
	assert.Contains(t, cfg.Output.ReservedWords, "struct")
}

func Test_Load_missingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func Test_Load_decodesNestedSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algoc.toml")
	content := `[output]
reserved_words = ["foo", "bar"]

[cache]
enabled = false
dir = ".mycache"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"foo", "bar"}, cfg.Output.ReservedWords)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, ".mycache", cfg.Cache.Dir)
}

func Test_ReservedSet_isCaseInsensitive(t *testing.T) {
	cfg := Config{Output: Output{ReservedWords: []string{"Foo", "BAR"}}}
	set := cfg.ReservedSet()

	assert.True(t, set["FOO"])
	assert.True(t, set["BAR"])
	assert.False(t, set["BAZ"])
}
