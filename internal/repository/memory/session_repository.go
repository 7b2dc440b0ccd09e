package memory

import (
	"equeue-slip-bot/pkg/store"
	"time"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository keeps sessions for ttl after their last save and
// purges expired ones every cleanupInterval. A ttl <= 0 keeps them for the
// process lifetime.
func NewSessionRepository(ttl, cleanupInterval time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	c := cache.New(ttl, cleanupInterval)
	return &SessionRepository{
		cache: c,
	}
}

// Save stores a copy so callers cannot mutate the stored session in place.
func (r *SessionRepository) Save(session *store.Session) {
	cp := *session
	r.cache.Set(session.Key(), &cp, cache.DefaultExpiration)
}

// Get returns a copy of the stored session.
func (r *SessionRepository) Get(userID int64) (*store.Session, bool) {
	if x, found := r.cache.Get(store.SessionKey(userID)); found {
		cp := *x.(*store.Session)
		return &cp, true
	}
	return nil, false
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
