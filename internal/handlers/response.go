package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"storefront/internal/logger"
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{services.ErrEmptyCart, http.StatusBadRequest},
	{services.ErrMissingShippingAddress, http.StatusBadRequest},
	{services.ErrInvalidQuantity, http.StatusBadRequest},
	{services.ErrMissingProduct, http.StatusBadRequest},
	{services.ErrInvalidItemStatus, http.StatusBadRequest},
	{services.ErrInvalidRating, http.StatusBadRequest},
	{services.ErrEmptyComment, http.StatusBadRequest},
	{services.ErrEmptyQuery, http.StatusBadRequest},
	{services.ErrEmptyMessage, http.StatusBadRequest},
	{services.ErrInvalidPrice, http.StatusBadRequest},
	{services.ErrMissingProductName, http.StatusBadRequest},
	{services.ErrShopNameRequired, http.StatusBadRequest},
	{services.ErrOrderItemNotFound, http.StatusNotFound},
	{services.ErrCategoryNotFound, http.StatusNotFound},
	{services.ErrCartItemNotFound, http.StatusNotFound},
	{services.ErrUserNotFound, http.StatusNotFound},
	{services.ErrNotVendor, http.StatusForbidden},
	{services.ErrForbidden, http.StatusForbidden},
	{services.ErrInvalidCredentials, http.StatusUnauthorized},
	{services.ErrItemAlreadyDecided, http.StatusConflict},
	{services.ErrEmailTaken, http.StatusConflict},
	{services.ErrChatQuotaExceeded, http.StatusTooManyRequests},
	{services.ErrChatUnavailable, http.StatusServiceUnavailable},
}

// respondError maps service errors to status codes. Anything unknown is
// logged and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	var notFound *services.ProductNotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product with ID %d not found.", notFound.ProductID)})
		return
	}
	if errors.Is(err, services.ErrEmptyCart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty."})
		return
	}

	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			c.JSON(e.status, gin.H{"error": e.err.Error()})
			return
		}
	}

	logger.FromContext(c.Request.Context()).Error("Request failed", zap.Error(err))
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// respondBindError reports malformed bodies and validator failures.
func respondBindError(c *gin.Context, err error) {
	if details := middleware.ValidationDetails(err); details != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request validation failed", "details": details})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// caller returns the authenticated identity; routes using it sit behind
// RequireAuth.
func caller(c *gin.Context) services.Caller {
	id, _ := middleware.CurrentIdentity(c)
	return services.Caller{UserID: id.UserID, IsStaff: id.IsStaff}
}
