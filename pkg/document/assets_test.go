package document

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"equeue-slip-bot/internal/pkg/logger"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func newTestRegistry(t *testing.T) (*Registry, string, string) {
	t.Helper()
	root := t.TempDir()
	fonts := filepath.Join(root, "fonts")
	assets := filepath.Join(root, "assets")
	return NewRegistry(fonts, assets, logger.NewNopLogger()), fonts, assets
}

func assertColorNear(t *testing.T, want color.RGBA, got color.Color) {
	t.Helper()
	r, g, b, _ := got.RGBA()
	assert.InDelta(t, float64(want.R), float64(r>>8), 2)
	assert.InDelta(t, float64(want.G), float64(g>>8), 2)
	assert.InDelta(t, float64(want.B), float64(b>>8), 2)
}

func TestRegistry_FallsBackToBuiltInFont(t *testing.T) {
	reg, _, _ := newTestRegistry(t)

	for _, kind := range []FontKind{FontRegular, FontBold, FontTitle} {
		assert.Same(t, basicfont.Face7x13, reg.Font(kind))
	}
}

func TestRegistry_LoadsFontsFromStore(t *testing.T) {
	reg, fonts, _ := newTestRegistry(t)
	require.NoError(t, os.MkdirAll(fonts, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(fonts, "regular.ttf"), goregular.TTF, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(fonts, "bold.ttf"), gobold.TTF, 0o644))

	regular := reg.Font(FontRegular)
	title := reg.Font(FontTitle)

	assert.NotSame(t, basicfont.Face7x13, regular)
	assert.Greater(t, title.Metrics().Height, regular.Metrics().Height)
	assert.NotSame(t, regular, reg.Font(FontRegular), "each call gets its own face")
}

func TestRegistry_CreatesAndPersistsPlaceholderMarks(t *testing.T) {
	reg, _, assets := newTestRegistry(t)

	mark := reg.Mark(MarkRuqsat)
	assert.Equal(t, image.Rect(0, 0, 100, 50), mark.Bounds())
	// Circle centre of the 200x100 placeholder, after halving.
	assertColorNear(t, markSpecs[MarkRuqsat].color, mark.At(25, 25))

	for _, name := range []MarkName{MarkRuqsat, MarkQoldau} {
		_, err := os.Stat(filepath.Join(assets, string(name)))
		assert.NoError(t, err, "placeholder %s must be persisted", name)
	}
}

func TestRegistry_ReusesExistingMarks(t *testing.T) {
	reg, _, assets := newTestRegistry(t)
	require.NoError(t, os.MkdirAll(assets, 0o755))

	red := color.RGBA{R: 220, A: 255}
	dc := gg.NewContext(200, 100)
	dc.SetColor(red)
	dc.Clear()
	path := filepath.Join(assets, string(MarkQoldau))
	require.NoError(t, dc.SavePNG(path))
	before, err := os.Stat(path)
	require.NoError(t, err)

	mark := reg.Mark(MarkQoldau)

	assertColorNear(t, red, mark.At(50, 25))
	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime(), "existing mark must not be overwritten")
}

func TestRegistry_UnreadableMarkUsesSolidBlock(t *testing.T) {
	reg, _, assets := newTestRegistry(t)
	require.NoError(t, os.MkdirAll(assets, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(assets, string(MarkRuqsat)), []byte("not a png"), 0o644))

	mark := reg.Mark(MarkRuqsat)

	assert.Equal(t, image.Rect(0, 0, 100, 50), mark.Bounds())
	assertColorNear(t, markSpecs[MarkRuqsat].color, mark.At(3, 3))
}

func TestRegistry_InitialisesOnceUnderConcurrency(t *testing.T) {
	reg, _, _ := newTestRegistry(t)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = reg.Mark(MarkRuqsat)
			_ = reg.Font(FontBold)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), reg.runs.Load())
}
