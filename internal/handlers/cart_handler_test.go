package handlers

import (
	"net/http"
	"testing"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCartRouter(id middleware.Identity, cart *mockCartService) *gin.Engine {
	h := NewCartHandler(cart)
	r := gin.New()
	g := r.Group("/api/cart", as(id))
	g.GET("/", h.GetCart)
	g.POST("/add/", h.AddItem)
	g.POST("/bulk-add/", h.BulkAdd)
	g.PATCH("/update/:item_id/", h.UpdateItem)
	g.DELETE("/remove/:item_id/", h.RemoveItem)
	g.DELETE("/clear/", h.Clear)
	return r
}

func TestCartHandler_AddItem(t *testing.T) {
	cart := new(mockCartService)
	cart.On("AddItem", mock.Anything, buyer.UserID, services.CartInput{ProductID: 2, Quantity: 3}).
		Return(&models.CartItem{ID: 1, ProductID: 2, Quantity: 3}, nil)

	r := newCartRouter(buyer, cart)
	w := serve(r, http.MethodPost, "/api/cart/add/", `{"product_id":2,"quantity":3}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	cart.AssertExpectations(t)
}

func TestCartHandler_BulkAdd(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		cart := new(mockCartService)
		r := newCartRouter(buyer, cart)

		w := serve(r, http.MethodPost, "/api/cart/bulk-add/", `{"items":[]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		cart.AssertNotCalled(t, "BulkAdd", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown product", func(t *testing.T) {
		cart := new(mockCartService)
		cart.On("BulkAdd", mock.Anything, buyer.UserID, mock.Anything).
			Return(nil, &services.ProductNotFoundError{ProductID: 77})

		r := newCartRouter(buyer, cart)
		w := serve(r, http.MethodPost, "/api/cart/bulk-add/", `{"items":[{"product_id":77,"quantity":1}]}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCartHandler_RemoveMissing(t *testing.T) {
	cart := new(mockCartService)
	cart.On("RemoveItem", mock.Anything, buyer.UserID, uint(12)).Return(services.ErrCartItemNotFound)

	r := newCartRouter(buyer, cart)
	w := serve(r, http.MethodDelete, "/api/cart/remove/12/", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartHandler_UpdateRejectsZero(t *testing.T) {
	r := newCartRouter(buyer, new(mockCartService))
	w := serve(r, http.MethodPatch, "/api/cart/update/1/", `{"quantity":0}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
