package dto

import (
	"time"

	"equeue-slip-bot/internal/entity"
)

// CreateSlipRequest renders a slip without a conversation. Fields are
// pointers so an explicit empty string is distinguishable from a missing key.
type CreateSlipRequest struct {
	Date          *string `json:"date" validate:"required,slip_date"`
	TimeRange     *string `json:"time_range" validate:"required,slip_time_range"`
	BookingNumber *string `json:"booking_number" validate:"required"`
	Checkpoint    *string `json:"checkpoint" validate:"required"`
	VehicleNumber *string `json:"vehicle_number" validate:"required"`
	TrailerNumber *string `json:"trailer_number" validate:"required"`
	Country       *string `json:"country" validate:"required"`
}

// ToForm assumes the request passed validation.
func (r CreateSlipRequest) ToForm() entity.BookingForm {
	return entity.BookingForm{
		Date:          deref(r.Date),
		TimeRange:     deref(r.TimeRange),
		BookingNumber: deref(r.BookingNumber),
		Checkpoint:    deref(r.Checkpoint),
		VehicleNumber: deref(r.VehicleNumber),
		TrailerNumber: deref(r.TrailerNumber),
		Country:       deref(r.Country),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ArtifactDeliveredMessage is the bus payload of an ARTIFACT_DELIVERED event.
type ArtifactDeliveredMessage struct {
	ArtifactID string `json:"artifact_id"`
	Path       string `json:"path"`
}

type HealthResponse struct {
	Status         string    `json:"status"`
	ActiveSessions int       `json:"active_sessions"`
	Time           time.Time `json:"time"`
}
