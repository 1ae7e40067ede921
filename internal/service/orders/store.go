package orders

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store hands out delivery-slip sessions by ID and expires idle ones.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	logger   *zap.Logger
}

// NewStore creates an empty session store.
func NewStore(ttl time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		logger:   logger,
	}
}

// Get returns the session for id. An empty or unknown id yields a fresh
// session under a new ID; callers read the ID back off the session.
func (st *Store) Get(id string) *Session {
	if id != "" {
		st.mu.RLock()
		sess, ok := st.sessions[id]
		st.mu.RUnlock()
		if ok {
			return sess
		}
	}

	sess := newSession(uuid.NewString())

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()

	st.logger.Debug("session created", zap.String("session_id", sess.ID))
	return sess
}

// Sweep removes sessions idle for longer than the configured TTL and
// reports how many were dropped.
func (st *Store) Sweep(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, sess := range st.sessions {
		if now.Sub(sess.LastUsed()) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		st.logger.Info("idle sessions swept", zap.Int("count", removed))
	}
	return removed
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// TTL exposes the idle lifetime, used for the session cookie max-age.
func (st *Store) TTL() time.Duration {
	return st.ttl
}
