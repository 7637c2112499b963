package httpapi

import (
	"net/http"

	"github.com/Vitolop1/azure-intelligent-support-bot/internal/common"
	"github.com/Vitolop1/azure-intelligent-support-bot/internal/config"
	"github.com/Vitolop1/azure-intelligent-support-bot/internal/dialog"
	"github.com/Vitolop1/azure-intelligent-support-bot/internal/httpapi/handlers"
	"github.com/Vitolop1/azure-intelligent-support-bot/internal/httpapi/middleware"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg config.Config, bot *dialog.Router) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	h := handlers.NewHandler(cfg, bot)

	r.GET("/ping", h.Ping)

	api := r.Group("/")
	if cfg.AuthRequired {
		api.Use(middleware.AuthRequired(cfg.JWTSecret))
	}
	api.POST("/messages", h.PostMessage)
	api.GET("/conversations/:conversation_id/ticket", h.GetTicket)

	return r
}
