package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookieName = "storefront_session"
	sessionCookieAge  = 60 * 60 * 48
	sessionIDKey      = "sessionID"
)

// sessionCookie makes sure every browser carries a session id; cart and
// session state are keyed by it on the server side.
func sessionCookie(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookieName)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookieName, id, sessionCookieAge, "/", "", secure, true)
		}
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
