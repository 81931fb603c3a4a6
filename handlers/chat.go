package handlers

import (
	"net/http"

	"astromitra/services/chat"
	"astromitra/state"
	"astromitra/utils"

	"github.com/gin-gonic/gin"
)

// ChatHandler exposes conversation reads and writes. The live change
// stream belongs to the in-process cache and is not surfaced here.
type ChatHandler struct {
	Service chat.ChatService
	State   *state.Store
}

func NewChatHandler(svc chat.ChatService, store *state.Store) *ChatHandler {
	return &ChatHandler{Service: svc, State: store}
}

// SendHandler handles POST /api/chat/messages.
func (h *ChatHandler) SendHandler(c *gin.Context) {
	uid, ok := uidFrom(c)
	if !ok {
		return
	}
	var req struct {
		ReceiverID string `json:"receiverId" binding:"required"`
		Text       string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid message", err.Error())
		return
	}
	if !h.Service.SendMessage(c.Request.Context(), uid, req.ReceiverID, req.Text) {
		utils.JSONError(c, http.StatusBadGateway, utils.GenericFailureNotice, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Sent"})
}

// ListHandler handles GET /api/chat/messages?with=, oldest first.
func (h *ChatHandler) ListHandler(c *gin.Context) {
	uid, ok := uidFrom(c)
	if !ok {
		return
	}
	other := c.Query("with")
	if other == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing with parameter", "")
		return
	}
	if !h.Service.FetchMessages(c.Request.Context(), uid, other) {
		utils.JSONError(c, http.StatusBadGateway, utils.GenericFailureNotice, "")
		return
	}
	c.JSON(http.StatusOK, h.State.Messages())
}
