package xbpp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ptodt/xbpp/array"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "logo.h"), OutputPath("out", filepath.Join("in", "logo.bmp"), array.CArray{}))
	assert.Equal(t, filepath.Join("out", "logo.inc"), OutputPath("out", "logo.bmp", array.MASMArray{}))
}

func TestBatch(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "arrays")

	files := []string{
		writeBMP(t, in, "logo.bmp", levels),
		writeBMP(t, in, "2nd-icon.bmp", levels),
		writeBMP(t, in, "splash screen.bmp", levels),
	}

	cfg := DefaultConfig()
	cfg.Preview = true
	c := newConverter(t, cfg)
	require.NoError(t, c.Batch(context.Background(), out, files))

	for name, symbol := range map[string]string{
		"logo":          "logo",
		"2nd-icon":      "_2nd_icon",
		"splash screen": "splash_screen",
	} {
		b, err := os.ReadFile(filepath.Join(out, name+".h"))
		require.NoError(t, err, name)
		assert.Contains(t, string(b), "const unsigned char "+symbol+"[4] = {\n", name)
		assert.FileExists(t, filepath.Join(out, name+".bmp"))
	}
}

func TestBatchExplicitName(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	files := []string{writeBMP(t, in, "a.bmp", levels), writeBMP(t, in, "b.bmp", levels)}

	cfg := DefaultConfig()
	cfg.Format = array.Assembler{Name: "sprite"}
	c := newConverter(t, cfg)
	require.NoError(t, c.Batch(context.Background(), out, files))

	for _, name := range []string{"a.inc", "b.inc"} {
		b, err := os.ReadFile(filepath.Join(out, name))
		require.NoError(t, err)
		assert.Contains(t, string(b), "\nsprite:\n")
	}
}

func TestBatchRaw(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	cfg := DefaultConfig()
	cfg.Format = array.Raw{}
	c := newConverter(t, cfg)

	require.NoError(t, c.Batch(context.Background(), out, []string{writeBMP(t, in, "x.bmp", levels)}))
	assert.FileExists(t, filepath.Join(out, "x.hex"))
}

func TestBatchError(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	bad := filepath.Join(in, "bad.bmp")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0644))

	c := newConverter(t, DefaultConfig())
	err := c.Batch(context.Background(), out, []string{writeBMP(t, in, "good.bmp", levels), bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
	assert.NoFileExists(t, filepath.Join(out, "bad.h"))
}

func TestBatchCancelled(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	files := []string{writeBMP(t, in, "a.bmp", levels), writeBMP(t, in, "b.bmp", levels)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newConverter(t, DefaultConfig())
	require.ErrorIs(t, c.Batch(ctx, out, files), context.Canceled)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBatchDuplicateOutputs(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	out := filepath.Join(t.TempDir(), "arrays")
	files := []string{writeBMP(t, a, "x.bmp", levels), writeBMP(t, b, "x.bmp", levels)}

	c := newConverter(t, DefaultConfig())
	err := c.Batch(context.Background(), out, files)
	require.Error(t, err)
	assert.Contains(t, err.Error(), filepath.Join(out, "x.h"))
	assert.NoDirExists(t, out, "nothing is written")
}

func TestBatchEmpty(t *testing.T) {
	c := newConverter(t, DefaultConfig())
	assert.NoError(t, c.Batch(context.Background(), t.TempDir(), nil))
}
