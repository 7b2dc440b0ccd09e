package document

import (
	"image"
	"time"

	"equeue-slip-bot/internal/entity"
	"equeue-slip-bot/internal/pkg/logger"
	"equeue-slip-bot/pkg/artifact"
	"equeue-slip-bot/pkg/metrics"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

const renderModule = "RENDER"

// ArtifactStore persists a composed slip under a unique name.
type ArtifactStore interface {
	SavePNG(img image.Image) (artifact.Location, error)
}

// Artifact is a rendered slip on disk. The receiver owns deleting Path.
type Artifact struct {
	ID         string
	Path       string
	Payload    string
	Form       entity.BookingForm
	RenderedAt time.Time
}

type Renderer struct {
	assets Assets
	store  ArtifactStore
	logger logger.ILogger
	now    func() time.Time
}

type RendererOption func(*Renderer)

// WithClock pins the capture timestamp. Useful for tests.
func WithClock(now func() time.Time) RendererOption {
	return func(r *Renderer) { r.now = now }
}

func NewRenderer(assets Assets, store ArtifactStore, log logger.ILogger, opts ...RendererOption) *Renderer {
	r := &Renderer{
		assets: assets,
		store:  store,
		logger: log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render composes the slip for form and writes it to the artifact store.
// Only a store failure makes it return an error.
func (r *Renderer) Render(form entity.BookingForm) (Artifact, error) {
	printedAt := r.now()
	img, payload := r.Compose(form, printedAt)

	loc, err := r.store.SavePNG(img)
	if err != nil {
		metrics.IncRender(metrics.ResultError)
		r.logger.Error(renderModule, "Failed to store slip", map[string]interface{}{
			"booking_number": form.BookingNumber,
			"error":          err.Error(),
		})
		return Artifact{}, err
	}

	metrics.IncRender(metrics.ResultOK)
	r.logger.Info(renderModule, "Slip rendered", map[string]interface{}{
		"artifact_id":    loc.ID,
		"booking_number": form.BookingNumber,
		"vehicle_number": form.VehicleNumber,
	})

	return Artifact{
		ID:         loc.ID,
		Path:       loc.Path,
		Payload:    payload,
		Form:       form,
		RenderedAt: printedAt,
	}, nil
}

// Compose draws the slip in memory. The result depends only on form and
// printedAt.
func (r *Renderer) Compose(form entity.BookingForm, printedAt time.Time) (*image.RGBA, string) {
	dc := gg.NewContext(canvasWidth, canvasHeight)
	dc.SetColor(colorWhite)
	dc.Clear()

	payload := QRPayload(form)
	qr, err := qrImage(payload, qrSize)
	if err != nil {
		// Overlong field values can exceed QR capacity; leave the area framed
		// but empty instead of failing the slip.
		r.logger.Warn(renderModule, "QR payload not encodable", map[string]interface{}{
			"payload_bytes": len(payload),
			"error":         err.Error(),
		})
		dc.SetColor(colorBlack)
		dc.DrawRectangle(qrX, qrY, qrSize, qrSize)
		dc.Stroke()
	} else {
		dc.DrawImage(qr, qrX, qrY)
	}

	for _, b := range []box{pageBadge, statusBadge} {
		dc.SetColor(b.fill)
		dc.DrawRectangle(b.x0, b.y0, b.x1-b.x0, b.y1-b.y0)
		dc.Fill()
	}

	for _, m := range marks {
		dc.DrawImage(r.assets.Mark(m.name), m.x, m.y)
	}

	faces := map[FontKind]font.Face{}
	for _, item := range layoutText(form, printedAt) {
		face, ok := faces[item.font]
		if !ok {
			face = r.assets.Font(item.font)
			faces[item.font] = face
		}
		dc.SetFontFace(face)
		dc.SetColor(item.color)
		dc.DrawStringAnchored(item.text, item.x, item.y, 0, 1)
	}

	return toRGBA(dc.Image()), payload
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}
