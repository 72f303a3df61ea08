package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newChatRouter(id middleware.Identity, chat *mockChatService) *gin.Engine {
	h := NewChatHandler(chat)
	r := gin.New()
	r.POST("/api/chat/", as(id), h.Chat)
	r.DELETE("/api/chat/", as(id), h.Reset)
	return r
}

func TestChatHandler_Caller(t *testing.T) {
	t.Run("authenticated user", func(t *testing.T) {
		chat := new(mockChatService)
		chat.On("Reply", mock.Anything, services.ChatCaller{UserID: buyer.UserID}, "hi").Return("hello", nil)

		w := serve(newChatRouter(buyer, chat), http.MethodPost, "/api/chat/", `{"message":"hi"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"reply":"hello"}`, w.Body.String())
		chat.AssertExpectations(t)
	})

	t.Run("session header", func(t *testing.T) {
		chat := new(mockChatService)
		chat.On("Reply", mock.Anything, services.ChatCaller{SessionID: "abc"}, "hi").Return("hello", nil)

		req := httptest.NewRequest(http.MethodPost, "/api/chat/", strings.NewReader(`{"message":"hi"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(SessionHeader, "abc")
		w := httptest.NewRecorder()
		newChatRouter(middleware.Identity{}, chat).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		chat.AssertExpectations(t)
	})

	t.Run("falls back to client ip", func(t *testing.T) {
		chat := new(mockChatService)
		chat.On("Reply", mock.Anything, services.ChatCaller{SessionID: "192.0.2.1"}, "hi").Return("hello", nil)

		w := serve(newChatRouter(middleware.Identity{}, chat), http.MethodPost, "/api/chat/", `{"message":"hi"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		chat.AssertExpectations(t)
	})
}

func TestChatHandler_Errors(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrEmptyMessage, http.StatusBadRequest},
		{services.ErrChatUnavailable, http.StatusServiceUnavailable},
		{services.ErrChatQuotaExceeded, http.StatusTooManyRequests},
	}
	for _, tc := range cases {
		chat := new(mockChatService)
		chat.On("Reply", mock.Anything, mock.Anything, mock.Anything).Return("", tc.err)

		w := serve(newChatRouter(buyer, chat), http.MethodPost, "/api/chat/", `{"message":""}`)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
	}
}

func TestChatHandler_Reset(t *testing.T) {
	chat := new(mockChatService)
	chat.On("Reset", mock.Anything, services.ChatCaller{SessionID: "abc"}).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/chat/", nil)
	req.Header.Set(SessionHeader, "abc")
	w := httptest.NewRecorder()
	newChatRouter(middleware.Identity{}, chat).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	chat.AssertExpectations(t)
}
