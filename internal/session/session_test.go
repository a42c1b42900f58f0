package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/algoc/internal/config"
)

func writeSource(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func Test_Compile_cleanProgramEmitsC(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "prog.algoc", `Algorithme Exemple
Variables:
x : entier
Instructions:
x <-- 3
FinAlgo
`)

	cfg := config.Default()
	cfg.Cache.Enabled = false
	sess := New(cfg)

	result, err := sess.Compile(path)
	require.NoError(t, err)
	assert.True(t, result.Clean())
	assert.Contains(t, result.Emitted, "int main(void)")
	assert.NotEmpty(t, result.CorrelationID.String())
}

func Test_Compile_diagnosticProgramReportsAndDoesNotEmit(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "prog.algoc", `Algorithme Exemple
Variables:
Instructions:
x <-- 1
FinAlgo
`)

	cfg := config.Default()
	cfg.Cache.Enabled = false
	sess := New(cfg)

	result, err := sess.Compile(path)
	require.NoError(t, err)
	assert.False(t, result.Clean())
	assert.Empty(t, result.Emitted)
	assert.NotEmpty(t, result.Diagnostics)
}

func Test_Compile_missingTrailingNewlineIsPadded(t *testing.T) {
	dir := t.TempDir()
	text := "Algorithme Exemple\nVariables:\nInstructions:\nFinAlgo"
	path := writeSource(t, dir, "prog.algoc", text)

	cfg := config.Default()
	cfg.Cache.Enabled = false
	sess := New(cfg)

	result, err := sess.Compile(path)
	require.NoError(t, err)
	assert.True(t, result.Clean())
}

func Test_Compile_unreadableFileReturnsError(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Enabled = false
	sess := New(cfg)

	_, err := sess.Compile(filepath.Join(t.TempDir(), "nope.algoc"))
	assert.Error(t, err)
}

func Test_Compile_cacheHitSkipsReanalysis(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "prog.algoc", `Algorithme Exemple
Variables:
x : entier
Instructions:
x <-- 3
FinAlgo
`)

	cfg := config.Default()
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = ".algocache"
	sess := New(cfg)

	first, err := sess.Compile(path)
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := sess.Compile(path)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Emitted, second.Emitted)
}

func Test_CompileText_ephemeralFragment(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Enabled = false
	sess := New(cfg)

	result := sess.CompileText("<fragment>", "Algorithme Fragment\nVariables:\nInstructions:\nFinAlgo\n")
	assert.True(t, result.Clean())
	assert.Contains(t, result.Emitted, "int main(void)")
}
