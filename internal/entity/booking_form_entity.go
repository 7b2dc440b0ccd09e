package entity

import (
	"fmt"
	"time"
)

// DateLayout is the canonical DD.MM.YYYY form used for booking dates.
const DateLayout = "02.01.2006"

type FormField string

const (
	FieldDate          FormField = "date"
	FieldTimeRange     FormField = "time_range"
	FieldBookingNumber FormField = "booking_number"
	FieldCheckpoint    FormField = "checkpoint"
	FieldVehicleNumber FormField = "vehicle_number"
	FieldTrailerNumber FormField = "trailer_number"
	FieldCountry       FormField = "country"
)

// FormFields lists every field in menu order.
var FormFields = []FormField{
	FieldDate,
	FieldTimeRange,
	FieldBookingNumber,
	FieldCheckpoint,
	FieldVehicleNumber,
	FieldTrailerNumber,
	FieldCountry,
}

const (
	DefaultTimeRange     = "21:00-22:00"
	DefaultBookingNumber = "A334BECF0368C"
	DefaultCheckpoint    = "Нур Жолы - Хоргос"
	DefaultVehicleNumber = "931AFY13"
	DefaultTrailerNumber = "97AGJ13"
	DefaultCountry       = "Казахстан"
)

// BookingForm holds the seven fields printed on a queue slip.
// Every field always carries a value; use NewBookingForm to get one.
type BookingForm struct {
	Date          string `json:"date"`
	TimeRange     string `json:"time_range"`
	BookingNumber string `json:"booking_number"`
	Checkpoint    string `json:"checkpoint"`
	VehicleNumber string `json:"vehicle_number"`
	TrailerNumber string `json:"trailer_number"`
	Country       string `json:"country"`
}

// NewBookingForm returns the default form, dated on the day of now.
func NewBookingForm(now time.Time) BookingForm {
	return BookingForm{
		Date:          now.Format(DateLayout),
		TimeRange:     DefaultTimeRange,
		BookingNumber: DefaultBookingNumber,
		Checkpoint:    DefaultCheckpoint,
		VehicleNumber: DefaultVehicleNumber,
		TrailerNumber: DefaultTrailerNumber,
		Country:       DefaultCountry,
	}
}

func (f BookingForm) Get(field FormField) string {
	switch field {
	case FieldDate:
		return f.Date
	case FieldTimeRange:
		return f.TimeRange
	case FieldBookingNumber:
		return f.BookingNumber
	case FieldCheckpoint:
		return f.Checkpoint
	case FieldVehicleNumber:
		return f.VehicleNumber
	case FieldTrailerNumber:
		return f.TrailerNumber
	case FieldCountry:
		return f.Country
	}
	return ""
}

// Set stores value into field. Unknown fields are a programming error.
func (f *BookingForm) Set(field FormField, value string) error {
	switch field {
	case FieldDate:
		f.Date = value
	case FieldTimeRange:
		f.TimeRange = value
	case FieldBookingNumber:
		f.BookingNumber = value
	case FieldCheckpoint:
		f.Checkpoint = value
	case FieldVehicleNumber:
		f.VehicleNumber = value
	case FieldTrailerNumber:
		f.TrailerNumber = value
	case FieldCountry:
		f.Country = value
	default:
		return fmt.Errorf("unknown form field %q", field)
	}
	return nil
}
