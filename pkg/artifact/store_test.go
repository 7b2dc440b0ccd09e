package artifact

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	return img
}

func TestSavePNG_WritesDecodableFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "temp")
	s := NewFileStore(dir, WithIDGenerator(func() string { return "fixed" }))

	loc, err := s.SavePNG(sampleImage())
	require.NoError(t, err)

	assert.Equal(t, "fixed", loc.ID)
	assert.Equal(t, filepath.Join(dir, "fixed.png"), loc.Path)

	f, err := os.Open(loc.Path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	_, err = os.Stat(loc.Path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must not survive")
}

func TestSavePNG_UniqueNames(t *testing.T) {
	s := NewFileStore(t.TempDir())

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		loc, err := s.SavePNG(sampleImage())
		require.NoError(t, err)
		assert.False(t, seen[loc.ID], "duplicate id %s", loc.ID)
		seen[loc.ID] = true
	}
}

func TestSavePNG_CollisionIsAnError(t *testing.T) {
	s := NewFileStore(t.TempDir(), WithIDGenerator(func() string { return "same" }))

	_, err := s.SavePNG(sampleImage())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "same.png.tmp"), nil, 0o600))
	_, err = s.SavePNG(sampleImage())

	var serr *StoreError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "create", serr.Op)
}

func TestRemove(t *testing.T) {
	s := NewFileStore(t.TempDir())

	loc, err := s.SavePNG(sampleImage())
	require.NoError(t, err)

	require.NoError(t, s.Remove(loc.Path))
	_, err = os.Stat(loc.Path)
	assert.True(t, os.IsNotExist(err))

	err = s.Remove(loc.Path)
	var serr *StoreError
	require.True(t, errors.As(err, &serr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRemove_RefusesForeignPaths(t *testing.T) {
	s := NewFileStore(t.TempDir())

	outside := filepath.Join(t.TempDir(), "keep.png")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))

	assert.Error(t, s.Remove(outside))
	_, err := os.Stat(outside)
	assert.NoError(t, err)
}
