package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jbritogeral-a11y/loja-api/cart"
	"github.com/jbritogeral-a11y/loja-api/settings"
)

// SessionCookie names the cookie carrying the opaque cart session ID.
const SessionCookie = "cart_session"

// SessionKey is the gin context key the cart handlers read.
const SessionKey = "cart_session_id"

// CartSession issues or refreshes the session cookie and exposes the session
// ID to the handlers downstream. Only well-formed UUIDs are accepted from the
// client; anything else gets a fresh session instead of minting an arbitrary
// store entry.
func CartSession(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = store.NewSessionID()
		}
		maxAge := int(settings.Get().SessionTTL.Seconds())
		c.SetCookie(SessionCookie, id, maxAge, "/", "", false, true)
		c.Set(SessionKey, id)
		c.Next()
	}
}
