package handlers

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// SessionHeader carries the anonymous chat session id.
const SessionHeader = "X-Session-ID"

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type chatRequest struct {
	Message string `json:"message"`
}

// Chat handles POST /api/chat/. Authenticated users keep their history in
// the database; anonymous visitors are keyed by session header or IP.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	reply, err := h.chatService.Reply(c.Request.Context(), chatCaller(c), req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// Reset handles DELETE /api/chat/
func (h *ChatHandler) Reset(c *gin.Context) {
	if err := h.chatService.Reset(c.Request.Context(), chatCaller(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func chatCaller(c *gin.Context) services.ChatCaller {
	if id, ok := middleware.CurrentIdentity(c); ok {
		return services.ChatCaller{UserID: id.UserID}
	}
	session := c.GetHeader(SessionHeader)
	if session == "" {
		session = c.ClientIP()
	}
	return services.ChatCaller{SessionID: session}
}
