package handlers

import (
	"github.com/Vitolop1/azure-intelligent-support-bot/internal/common"
	"github.com/Vitolop1/azure-intelligent-support-bot/internal/config"
	"github.com/Vitolop1/azure-intelligent-support-bot/internal/dialog"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	Cfg config.Config
	Bot *dialog.Router
}

func NewHandler(cfg config.Config, bot *dialog.Router) *Handler {
	return &Handler{Cfg: cfg, Bot: bot}
}

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"pong": true})
}
