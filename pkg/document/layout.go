package document

import (
	"image/color"
	"time"

	"equeue-slip-bot/internal/entity"
)

const (
	canvasWidth  = 1000
	canvasHeight = 800

	qrSize = 400
	qrX    = 50
	qrY    = 100

	labelX = 550
	valueX = 850

	// PrintedAtLayout is the capture timestamp format on the slip.
	PrintedAtLayout = "02.01.2006 15:04"

	// QueueType is printed for every booking.
	QueueType = "Выбранное время"
	Status    = "В очереди"
)

var (
	colorBlack  = color.RGBA{A: 255}
	colorWhite  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorGray   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	colorBadge  = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	colorStatus = color.RGBA{R: 130, G: 90, B: 220, A: 255}
)

// box is a filled rectangle given by its corners.
type box struct {
	x0, y0, x1, y1 float64
	fill           color.Color
}

// textItem is a string anchored at its top-left corner.
type textItem struct {
	x, y  float64
	text  string
	font  FontKind
	color color.Color
}

type markItem struct {
	x, y int
	name MarkName
}

var (
	pageBadge   = box{x0: 75, y0: 30, x1: 175, y1: 70, fill: colorBadge}
	statusBadge = box{x0: 850, y0: 245, x1: 950, y1: 265, fill: colorStatus}
)

var marks = []markItem{
	{x: 70, y: 600, name: MarkRuqsat},
	{x: 70, y: 670, name: MarkQoldau},
}

// row is one label/value line of a labelled block.
type row struct {
	y     float64
	label string
	value string
}

func bookingRows(form entity.BookingForm) []row {
	return []row{
		{y: 290, label: "№ бронирования", value: form.BookingNumber},
		{y: 330, label: "Пункт пропуска", value: form.Checkpoint},
		{y: 370, label: "Дата", value: form.Date},
		{y: 410, label: "Ориентировочное время", value: form.TimeRange},
		{y: 450, label: "Тип очереди", value: QueueType},
	}
}

func transportRows(form entity.BookingForm) []row {
	return []row{
		{y: 550, label: "Номерной знак транспорта", value: form.VehicleNumber},
		{y: 590, label: "Номерной знак прицепа", value: form.TrailerNumber},
		{y: 630, label: "Страна регистрации", value: form.Country},
	}
}

// layoutText lists every string on the slip, in drawing order.
func layoutText(form entity.BookingForm, printedAt time.Time) []textItem {
	items := []textItem{
		{x: 95, y: 40, text: "1 of 1", font: FontBold, color: colorBlack},
		{x: labelX, y: 100, text: "ВЫПИСКА ИЗ СИСТЕМЫ", font: FontTitle, color: colorBlack},
		{x: labelX, y: 130, text: "ЭЛЕКТРОННОЙ ОЧЕРЕДИ", font: FontTitle, color: colorBlack},
		{x: labelX, y: 170, text: "Дата и время распечатки: " + printedAt.Format(PrintedAtLayout), font: FontRegular, color: colorBlack},

		{x: labelX, y: 220, text: "БРОНИРОВАНИЕ", font: FontBold, color: colorBlack},
		{x: labelX, y: 250, text: "Статус", font: FontRegular, color: colorGray},
		{x: 860, y: 250, text: Status, font: FontRegular, color: colorWhite},
	}
	items = appendRows(items, bookingRows(form))

	items = append(items, textItem{x: labelX, y: 520, text: "ТРАНСПОРТ", font: FontBold, color: colorBlack})
	items = appendRows(items, transportRows(form))

	items = append(items,
		textItem{x: 50, y: 530, text: "Для подтверждения бронирования предъявите QR для сканирования на пункте пропуска", font: FontRegular, color: colorBlack},
		textItem{x: 180, y: 680, text: "Цифровая платформа для бизнеса", font: FontRegular, color: colorGray},
	)
	return items
}

func appendRows(items []textItem, rows []row) []textItem {
	for _, r := range rows {
		items = append(items,
			textItem{x: labelX, y: r.y, text: r.label, font: FontRegular, color: colorGray},
			textItem{x: valueX, y: r.y, text: r.value, font: FontRegular, color: colorBlack},
		)
	}
	return items
}
