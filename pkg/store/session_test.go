package store

import (
	"testing"
	"time"

	"equeue-slip-bot/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestEnteringStatesRoundTrip(t *testing.T) {
	assert.Len(t, EnteringStates, len(entity.FormFields))

	for _, field := range entity.FormFields {
		state, ok := EnteringStates[field]
		assert.True(t, ok, "no state for %s", field)

		got, ok := FieldForState(state)
		assert.True(t, ok)
		assert.Equal(t, field, got)
	}

	for _, state := range []string{StateIdle, StateChoosingAction, StateEnded, ""} {
		_, ok := FieldForState(state)
		assert.False(t, ok, state)
	}
}

func TestSessionReset(t *testing.T) {
	s := NewSession(100)
	assert.Equal(t, StateIdle, s.State)
	assert.Equal(t, "100", s.Key())

	s.State = StateEnteringCountry
	s.Form = entity.NewBookingForm(time.Now())
	s.Reset(StateEnded)

	assert.Equal(t, StateEnded, s.State)
	assert.Equal(t, entity.BookingForm{}, s.Form)
	assert.Equal(t, int64(100), s.UserID)
}
