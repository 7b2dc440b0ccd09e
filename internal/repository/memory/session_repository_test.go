package memory

import (
	"testing"
	"time"

	"equeue-slip-bot/internal/entity"
	"equeue-slip-bot/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_SaveAndGet(t *testing.T) {
	repo := NewSessionRepository(time.Hour, time.Minute)

	sess := store.NewSession(42)
	sess.State = store.StateChoosingAction
	sess.Form = entity.NewBookingForm(time.Now())
	repo.Save(sess)

	got, ok := repo.Get(42)
	require.True(t, ok)
	assert.Equal(t, store.StateChoosingAction, got.State)
	assert.Equal(t, sess.Form, got.Form)
	assert.Equal(t, 1, repo.Count())
}

func TestSessionRepository_IsolatesCopies(t *testing.T) {
	repo := NewSessionRepository(time.Hour, time.Minute)

	sess := store.NewSession(7)
	repo.Save(sess)
	sess.State = store.StateEnded

	got, ok := repo.Get(7)
	require.True(t, ok)
	assert.Equal(t, store.StateIdle, got.State)

	got.State = store.StateChoosingAction
	again, _ := repo.Get(7)
	assert.Equal(t, store.StateIdle, again.State)
}

func TestSessionRepository_UsersAreIndependent(t *testing.T) {
	repo := NewSessionRepository(0, time.Minute)

	a := store.NewSession(1)
	a.State = store.StateEnteringDate
	b := store.NewSession(2)
	b.State = store.StateEnteringCountry
	repo.Save(a)
	repo.Save(b)

	gotA, _ := repo.Get(1)
	gotB, _ := repo.Get(2)
	assert.Equal(t, store.StateEnteringDate, gotA.State)
	assert.Equal(t, store.StateEnteringCountry, gotB.State)
	assert.Equal(t, 2, repo.Count())
}

func TestSessionRepository_Expires(t *testing.T) {
	repo := NewSessionRepository(20*time.Millisecond, time.Hour)
	repo.Save(store.NewSession(9))

	time.Sleep(40 * time.Millisecond)

	_, ok := repo.Get(9)
	assert.False(t, ok)
}
