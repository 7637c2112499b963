package middleware

import (
	"log"
	"net/http"

	"github.com/Vitolop1/azure-intelligent-support-bot/internal/common"
	"github.com/gin-gonic/gin"
)

// Recovery converts panics into the standard JSON envelope instead of gin's
// default plain-text 500.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic recovered: %v", r)
				common.Fail(c, http.StatusInternalServerError, 50000, "internal error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
