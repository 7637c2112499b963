package middleware

import (
	"net/http"
	"strings"

	"github.com/Vitolop1/azure-intelligent-support-bot/internal/auth"
	"github.com/Vitolop1/azure-intelligent-support-bot/internal/common"
	"github.com/gin-gonic/gin"
)

const ChannelKey = "channel"

// AuthRequired validates a Bearer token and records the calling channel from
// its subject claim.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			common.Fail(c, http.StatusUnauthorized, 40101, "missing bearer token")
			c.Abort()
			return
		}
		subject, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			common.Fail(c, http.StatusUnauthorized, 40102, "invalid token")
			c.Abort()
			return
		}
		c.Set(ChannelKey, subject)
		c.Next()
	}
}
