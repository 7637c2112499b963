package handlers

import (
	"log"
	"net/http"

	"github.com/Vitolop1/azure-intelligent-support-bot/internal/common"
	"github.com/gin-gonic/gin"
)

type postMessageReq struct {
	ConversationID string `json:"conversation_id"`
	Text           string `json:"text" binding:"required"`
}

// PostMessage is the simple request/response transport: one inbound text,
// one reply. A missing conversation id gets a fresh ULID so the caller can
// keep the conversation going.
func (h *Handler) PostMessage(c *gin.Context) {
	var req postMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json: text is required")
		return
	}

	convID := req.ConversationID
	if convID == "" {
		id, err := common.NewULID()
		if err != nil {
			log.Printf("[PostMessage] NewULID failed err=%v", err)
			common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
			return
		}
		convID = id
	}

	reply := h.Bot.Handle(c.Request.Context(), convID, req.Text)

	common.OK(c, gin.H{
		"conversation_id": convID,
		"reply":           reply,
	})
}

// GetTicket returns the ticket summary for a conversation. Unknown ids yield
// a fresh empty ticket rather than a 404; a session is a convenience cache,
// not a verified principal.
func (h *Handler) GetTicket(c *gin.Context) {
	convID := c.Param("conversation_id")
	if convID == "" {
		common.Fail(c, http.StatusBadRequest, 10002, "conversation_id required")
		return
	}

	common.OK(c, gin.H{
		"conversation_id": convID,
		"ticket":          h.Bot.Ticket(convID),
	})
}
