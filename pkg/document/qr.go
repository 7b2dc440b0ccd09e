package document

import (
	"fmt"
	"image"

	"equeue-slip-bot/internal/entity"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
)

// QRPayload is the text encoded into the slip's QR symbol.
func QRPayload(form entity.BookingForm) string {
	return fmt.Sprintf("Бронирование %s для %s на %s %s",
		form.BookingNumber,
		form.VehicleNumber,
		form.Date,
		form.TimeRange,
	)
}

// qrImage encodes payload at the low recovery level, keeping the standard
// 4-module quiet zone, as a size x size bitmap.
func qrImage(payload string, size int) (image.Image, error) {
	q, err := qrcode.New(payload, qrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	img := q.Image(size)
	if b := img.Bounds(); b.Dx() == size && b.Dy() == size {
		return img, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}
