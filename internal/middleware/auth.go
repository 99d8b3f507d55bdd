package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/puttputt/internal/auth"
)

// RoundIDKey is the context key holding the authorised round id.
const RoundIDKey = "round_id"

// RoundAuth requires a round token for the round named by the :id path
// parameter. Browsers cannot set headers on a WebSocket upgrade, so the
// token may also arrive as the token query parameter.
func RoundAuth(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		roundID, err := issuer.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if id := c.Param("id"); id != "" && id != roundID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token is for another round"})
			return
		}

		c.Set(RoundIDKey, roundID)
		c.Next()
	}
}
