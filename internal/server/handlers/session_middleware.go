package handlers

import (
	"github.com/gin-gonic/gin"

	"cardslip/internal/service/orders"
)

const (
	sessionHeader = "X-Session-ID"
	sessionCookie = "slip_session"
	sessionKey    = "slipSession"
)

// SessionMiddleware resolves the caller's delivery-slip session and
// exposes it to downstream handlers. Missing or unknown IDs get a fresh
// session; the resolved ID always travels back on the response so the
// browser can stick to it.
func SessionMiddleware(store *orders.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(sessionHeader)
		if id == "" {
			if cookie, err := c.Cookie(sessionCookie); err == nil {
				id = cookie
			}
		}

		sess := store.Get(id)
		c.Set(sessionKey, sess)
		c.Header(sessionHeader, sess.ID)
		c.SetCookie(sessionCookie, sess.ID, int(store.TTL().Seconds()), "/", "", false, true)

		c.Next()
	}
}

func sessionFrom(c *gin.Context) *orders.Session {
	return c.MustGet(sessionKey).(*orders.Session)
}
