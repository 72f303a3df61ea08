package handlers

import (
	"net/http"

	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartService services.CartService
}

func NewCartHandler(cartService services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type cartItemRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Color     *string `json:"color"`
	Size      *string `json:"size"`
}

func (r cartItemRequest) input() services.CartInput {
	return services.CartInput{ProductID: r.ProductID, Quantity: r.Quantity, Color: r.Color, Size: r.Size}
}

// GetCart handles GET /api/cart/
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Request.Context(), caller(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem handles POST /api/cart/add/
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.cartService.AddItem(c.Request.Context(), caller(c).UserID, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

type bulkAddRequest struct {
	Items []cartItemRequest `json:"items" binding:"required,min=1,dive"`
}

// BulkAdd handles POST /api/cart/bulk-add/
func (h *CartHandler) BulkAdd(c *gin.Context) {
	var req bulkAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	inputs := make([]services.CartInput, 0, len(req.Items))
	for _, item := range req.Items {
		inputs = append(inputs, item.input())
	}

	items, err := h.cartService.BulkAdd(c.Request.Context(), caller(c).UserID, inputs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"items": items})
}

type updateCartRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// UpdateItem handles PATCH /api/cart/update/:item_id/
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, ok := pathID(c, "item_id")
	if !ok {
		return
	}

	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.cartService.UpdateQuantity(c.Request.Context(), caller(c).UserID, itemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// RemoveItem handles DELETE /api/cart/remove/:item_id/
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, ok := pathID(c, "item_id")
	if !ok {
		return
	}

	if err := h.cartService.RemoveItem(c.Request.Context(), caller(c).UserID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear handles DELETE /api/cart/clear/
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartService.Clear(c.Request.Context(), caller(c).UserID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
