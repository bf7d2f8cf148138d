package handlers

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"streamify/internal/chat"
)

type ChatHandler struct {
	chat chat.Client
}

func NewChatHandler(chatClient chat.Client) *ChatHandler {
	return &ChatHandler{chat: chatClient}
}

// Token mints a chat-provider token for the authenticated user.
func (h *ChatHandler) Token(c *gin.Context) {
	userID := userIDFromContext(c)
	if userID == nil {
		c.JSON(nethttp.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	token, err := h.chat.Token(*userID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{"token": token})
}
