package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetCreatesAndReturns(t *testing.T) {
	store := NewStore(time.Hour, nil)

	sess := store.Get("")
	require.NotNil(t, sess)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, 1, store.Len())

	again := store.Get(sess.ID)
	assert.Same(t, sess, again)
	assert.Equal(t, 1, store.Len())
}

func TestStoreUnknownIDGetsFreshSession(t *testing.T) {
	store := NewStore(time.Hour, nil)

	sess := store.Get("no-such-session")
	require.NotNil(t, sess)
	assert.NotEqual(t, "no-such-session", sess.ID)
}

func TestStoreSweepExpiresIdleSessions(t *testing.T) {
	store := NewStore(time.Minute, nil)

	store.Get("")
	store.Get("")
	require.Equal(t, 2, store.Len())

	removed := store.Sweep(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 2, removed)
	assert.Zero(t, store.Len())
}

func TestStoreSweepKeepsRecentSessions(t *testing.T) {
	store := NewStore(time.Hour, nil)
	store.Get("")

	removed := store.Sweep(time.Now())
	assert.Zero(t, removed)
	assert.Equal(t, 1, store.Len())
}
