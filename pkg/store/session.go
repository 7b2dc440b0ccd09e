package store

import (
	"strconv"
	"time"

	"equeue-slip-bot/internal/entity"
)

// Session is one user's conversation: where they are in the dialogue
// and the form collected so far.
type Session struct {
	UserID    int64              `json:"user_id"`
	State     string             `json:"state"`
	Form      entity.BookingForm `json:"form"`
	UpdatedAt time.Time          `json:"updated_at"`
}

const (
	StateIdle                  = "IDLE"
	StateChoosingAction        = "CHOOSING_ACTION"
	StateEnteringDate          = "ENTERING_DATE"
	StateEnteringTime          = "ENTERING_TIME"
	StateEnteringBookingNumber = "ENTERING_BOOKING_NUMBER"
	StateEnteringCheckpoint    = "ENTERING_CHECKPOINT"
	StateEnteringVehicleNumber = "ENTERING_VEHICLE_NUMBER"
	StateEnteringTrailerNumber = "ENTERING_TRAILER_NUMBER"
	StateEnteringCountry       = "ENTERING_COUNTRY"
	StateEnded                 = "ENDED"
)

// EnteringStates maps each form field to the state that waits for it.
var EnteringStates = map[entity.FormField]string{
	entity.FieldDate:          StateEnteringDate,
	entity.FieldTimeRange:     StateEnteringTime,
	entity.FieldBookingNumber: StateEnteringBookingNumber,
	entity.FieldCheckpoint:    StateEnteringCheckpoint,
	entity.FieldVehicleNumber: StateEnteringVehicleNumber,
	entity.FieldTrailerNumber: StateEnteringTrailerNumber,
	entity.FieldCountry:       StateEnteringCountry,
}

// FieldForState is the inverse of EnteringStates.
func FieldForState(state string) (entity.FormField, bool) {
	for field, s := range EnteringStates {
		if s == state {
			return field, true
		}
	}
	return "", false
}

// NewSession returns a session that has not seen /start yet.
func NewSession(userID int64) *Session {
	return &Session{
		UserID: userID,
		State:  StateIdle,
	}
}

// Key is the registry key for the session.
func (s *Session) Key() string {
	return SessionKey(s.UserID)
}

func SessionKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// Reset drops collected data and parks the session in state.
func (s *Session) Reset(state string) {
	s.Form = entity.BookingForm{}
	s.State = state
}
