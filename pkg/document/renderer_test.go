package document

import (
	"errors"
	"image"
	"image/png"
	"os"
	"strings"
	"testing"
	"time"

	"equeue-slip-bot/internal/entity"
	"equeue-slip-bot/internal/pkg/logger"
	"equeue-slip-bot/pkg/artifact"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.March, 4, 9, 30, 0, 0, time.UTC)

type failingStore struct{}

func (failingStore) SavePNG(image.Image) (artifact.Location, error) {
	return artifact.Location{}, errors.New("disk full")
}

func newTestRenderer(t *testing.T, store ArtifactStore) *Renderer {
	t.Helper()
	reg, _, _ := newTestRegistry(t)
	return NewRenderer(reg, store, logger.NewNopLogger(), WithClock(func() time.Time { return fixedNow }))
}

func TestQRPayload(t *testing.T) {
	form := entity.NewBookingForm(fixedNow)

	assert.Equal(t, "Бронирование A334BECF0368C для 931AFY13 на 04.03.2025 21:00-22:00", QRPayload(form))
}

func TestQRImage(t *testing.T) {
	img, err := qrImage(QRPayload(entity.NewBookingForm(fixedNow)), qrSize)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 400, 400), img.Bounds())

	// Quiet zone is white, the symbol has dark modules.
	r, g, b, _ := img.At(2, 2).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})

	dark := 0
	for y := 0; y < 400; y += 4 {
		for x := 0; x < 400; x += 4 {
			if r, _, _, _ := img.At(x, y).RGBA(); r == 0 {
				dark++
			}
		}
	}
	assert.Greater(t, dark, 100)
}

func TestQRImage_PayloadTooLong(t *testing.T) {
	_, err := qrImage(strings.Repeat("Ж", 4000), qrSize)
	assert.Error(t, err)
}

func TestCompose_IsDeterministic(t *testing.T) {
	r := newTestRenderer(t, artifact.NewFileStore(t.TempDir()))
	form := entity.NewBookingForm(fixedNow)

	first, payload1 := r.Compose(form, fixedNow)
	second, payload2 := r.Compose(form, fixedNow)

	assert.Equal(t, payload1, payload2)
	assert.Equal(t, first.Bounds(), second.Bounds())
	assert.True(t, string(first.Pix) == string(second.Pix), "identical input must give identical pixels")
}

func TestCompose_Layout(t *testing.T) {
	r := newTestRenderer(t, artifact.NewFileStore(t.TempDir()))

	img, _ := r.Compose(entity.NewBookingForm(fixedNow), fixedNow)

	assert.Equal(t, image.Rect(0, 0, 1000, 800), img.Bounds())
	assertColorNear(t, colorWhite, img.At(990, 790))
	assertColorNear(t, colorWhite, img.At(qrX+2, qrY+2))
	assertColorNear(t, colorBadge, img.At(170, 32))
	assertColorNear(t, colorStatus, img.At(945, 247))
	assertColorNear(t, markSpecs[MarkRuqsat].color, img.At(70+25, 600+25))
}

func TestCompose_UnencodableQRStillRenders(t *testing.T) {
	r := newTestRenderer(t, artifact.NewFileStore(t.TempDir()))
	form := entity.NewBookingForm(fixedNow)
	form.BookingNumber = strings.Repeat("Ж", 4000)

	img, payload := r.Compose(form, fixedNow)

	assert.Equal(t, image.Rect(0, 0, 1000, 800), img.Bounds())
	assert.Contains(t, payload, form.BookingNumber)
}

func TestLayoutText(t *testing.T) {
	form := entity.NewBookingForm(fixedNow)
	form.Date = "04.03.2025"
	form.Country = "Кыргызстан"

	items := layoutText(form, fixedNow)

	find := func(x, y float64) string {
		for _, it := range items {
			if it.x == x && it.y == y {
				return it.text
			}
		}
		return ""
	}

	assert.Equal(t, "04.03.2025", find(valueX, 370))
	assert.Equal(t, form.TimeRange, find(valueX, 410))
	assert.Equal(t, QueueType, find(valueX, 450))
	assert.Equal(t, "Кыргызстан", find(valueX, 630))
	assert.Equal(t, Status, find(860, 250))
	assert.Equal(t, "Дата и время распечатки: 04.03.2025 09:30", find(labelX, 170))
}

func TestRender_WritesArtifact(t *testing.T) {
	dir := t.TempDir()
	r := newTestRenderer(t, artifact.NewFileStore(dir))
	form := entity.NewBookingForm(fixedNow)

	art, err := r.Render(form)
	require.NoError(t, err)

	assert.NotEmpty(t, art.ID)
	assert.Equal(t, form, art.Form)
	assert.Equal(t, fixedNow, art.RenderedAt)
	assert.Equal(t, QRPayload(form), art.Payload)

	f, err := os.Open(art.Path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Width)
	assert.Equal(t, 800, cfg.Height)
}

func TestRender_QRDecodesToPayload(t *testing.T) {
	r := newTestRenderer(t, artifact.NewFileStore(t.TempDir()))
	form := entity.NewBookingForm(fixedNow)
	form.Date = "04.03.2025"

	art, err := r.Render(form)
	require.NoError(t, err)

	f, err := os.Open(art.Path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	})
	require.True(t, ok)
	qr := sub.SubImage(image.Rect(qrX, qrY, qrX+qrSize, qrY+qrSize))

	bmp, err := gozxing.NewBinaryBitmapFromImage(qr)
	require.NoError(t, err)
	res, err := qrcode.NewQRCodeReader().Decode(bmp, map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_CHARACTER_SET: "UTF-8",
	})
	require.NoError(t, err)

	assert.Equal(t, "Бронирование A334BECF0368C для 931AFY13 на 04.03.2025 21:00-22:00", res.GetText())
}

func TestRender_TwiceGivesSameImageDifferentArtifact(t *testing.T) {
	dir := t.TempDir()
	r := newTestRenderer(t, artifact.NewFileStore(dir))
	form := entity.NewBookingForm(fixedNow)

	a, err := r.Render(form)
	require.NoError(t, err)
	b, err := r.Render(form)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Payload, b.Payload)

	da, err := os.ReadFile(a.Path)
	require.NoError(t, err)
	db, err := os.ReadFile(b.Path)
	require.NoError(t, err)
	assert.Equal(t, da, db)
}

func TestRender_StoreFailure(t *testing.T) {
	r := newTestRenderer(t, failingStore{})

	_, err := r.Render(entity.NewBookingForm(fixedNow))

	assert.EqualError(t, err, "disk full")
}

func TestRender_DoesNotMutateForm(t *testing.T) {
	r := newTestRenderer(t, artifact.NewFileStore(t.TempDir()))
	form := entity.NewBookingForm(fixedNow)
	snapshot := form

	_, err := r.Render(form)
	require.NoError(t, err)

	assert.Equal(t, snapshot, form)
}
