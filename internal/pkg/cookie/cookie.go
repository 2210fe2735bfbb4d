package cookie

import (
	"github.com/gin-gonic/gin"
)

// The auth collaborator sets this cookie on its own domain; the engine only
// ever reads it as a bearer-token fallback.
const AccessTokenCookieName = "access_token"

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
