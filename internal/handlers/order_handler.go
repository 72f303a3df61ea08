package handlers

import (
	"net/http"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	checkoutService services.CheckoutService
	orderService    services.OrderService
}

func NewOrderHandler(checkoutService services.CheckoutService, orderService services.OrderService) *OrderHandler {
	return &OrderHandler{checkoutService: checkoutService, orderService: orderService}
}

type productRef struct {
	ID uint `json:"id"`
}

type checkoutItemRequest struct {
	ProductID uint        `json:"product_id"`
	Product   *productRef `json:"product"`
	Quantity  int         `json:"quantity" binding:"gt=0"`
	Color     *string     `json:"color"`
	Size      *string     `json:"size"`
}

type checkoutRequest struct {
	ShippingAddress string                `json:"shipping_address"`
	PaymentMethod   string                `json:"payment_method"`
	CartItems       []checkoutItemRequest `json:"cart_items" binding:"dive"`
}

// Checkout handles POST /api/orders/checkout/
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	items := make([]services.LineItem, 0, len(req.CartItems))
	for _, item := range req.CartItems {
		productID := item.ProductID
		if productID == 0 && item.Product != nil {
			productID = item.Product.ID
		}
		items = append(items, services.LineItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			Color:     item.Color,
			Size:      item.Size,
		})
	}

	orderIDs, err := h.checkoutService.Checkout(c.Request.Context(), services.CheckoutRequest{
		BuyerID:         caller(c).UserID,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Items:           items,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Orders created successfully",
		"order_ids": orderIDs,
	})
}

type vendorItemResponse struct {
	ID              uint   `json:"id"`
	OrderID         uint   `json:"order_id"`
	BuyerEmail      string `json:"buyer_email"`
	ShippingAddress string `json:"shipping_address"`
	ProductID       uint   `json:"product_id"`
	ProductName     string `json:"product_name"`
	ProductPrice    string `json:"product_price"`
	Quantity        int    `json:"quantity"`
	Status          string `json:"status"`
}

// VendorItems handles GET /api/orders/vendor-items/
func (h *OrderHandler) VendorItems(c *gin.Context) {
	items, err := h.orderService.GetVendorItems(c.Request.Context(), caller(c))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]vendorItemResponse, 0, len(items))
	for _, item := range items {
		row := vendorItemResponse{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Status:    item.Status,
		}
		if item.Order != nil {
			row.ShippingAddress = item.Order.ShippingAddress
			if item.Order.User != nil {
				row.BuyerEmail = item.Order.User.Email
			}
		}
		if item.Product != nil {
			row.ProductName = item.Product.Name
			row.ProductPrice = item.Product.EffectivePrice().StringFixed(2)
		}
		out = append(out, row)
	}
	c.JSON(http.StatusOK, out)
}

type itemStatusRequest struct {
	Status string `json:"status"`
}

// UpdateItemStatus handles PATCH /api/orders/vendor-items/:id/
func (h *OrderHandler) UpdateItemStatus(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	// Unreadable bodies fall through as an empty status so the vendor
	// check still runs first.
	var req itemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Status = ""
	}

	item, err := h.orderService.UpdateItemStatus(c.Request.Context(), caller(c), itemID, models.OrderItemStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order item " + item.Status + ".",
		"id":      item.ID,
		"status":  item.Status,
	})
}

// MyOrders handles GET /api/orders/
func (h *OrderHandler) MyOrders(c *gin.Context) {
	orders, err := h.orderService.GetBuyerOrders(c.Request.Context(), caller(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// CheckOrdered handles GET /api/orders/check/:product_id/
func (h *OrderHandler) CheckOrdered(c *gin.Context) {
	productID, ok := pathID(c, "product_id")
	if !ok {
		return
	}

	ordered, err := h.orderService.HasOrdered(c.Request.Context(), caller(c).UserID, productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ordered": ordered})
}
