package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"

	"storefront/internal/middleware"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// as injects a caller the way RequireAuth would; a zero UserID leaves the
// request anonymous.
func as(id middleware.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id.UserID != 0 {
			middleware.SetIdentity(c, id)
		}
		c.Next()
	}
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var (
	buyer  = middleware.Identity{UserID: 3, Email: "b@example.com"}
	vendor = middleware.Identity{UserID: 9, Email: "v@example.com", IsStaff: true}
)
