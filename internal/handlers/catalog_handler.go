package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CatalogHandler struct {
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CategoryTree handles GET /api/category/tree/
func (h *CatalogHandler) CategoryTree(c *gin.Context) {
	tree, err := h.catalogService.CategoryTree(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

// CategoryProducts handles GET /api/category/:slug/products/
func (h *CatalogHandler) CategoryProducts(c *gin.Context) {
	q, ok := productQuery(c)
	if !ok {
		return
	}

	page, err := h.catalogService.CategoryProducts(c.Request.Context(), c.Param("slug"), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Search handles GET /api/products/search/?q=
func (h *CatalogHandler) Search(c *gin.Context) {
	q, ok := productQuery(c)
	if !ok {
		return
	}

	page, err := h.catalogService.Search(c.Request.Context(), c.Query("q"), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetProduct handles GET /api/products/:id/
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

type productRequest struct {
	CategoryID    uint                `json:"category_id" binding:"required"`
	BrandID       *uint               `json:"brand_id"`
	SKU           string              `json:"sku" binding:"required"`
	Name          string              `json:"name" binding:"required"`
	Description   string              `json:"description"`
	Price         decimal.Decimal     `json:"price"`
	SalePrice     decimal.NullDecimal `json:"sale_price"`
	StockQuantity int                 `json:"stock_quantity" binding:"gte=0"`
	IsFeatured    bool                `json:"is_featured"`
}

func (r productRequest) input() services.ProductInput {
	return services.ProductInput{
		CategoryID:    r.CategoryID,
		BrandID:       r.BrandID,
		SKU:           r.SKU,
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		SalePrice:     r.SalePrice,
		StockQuantity: r.StockQuantity,
		IsFeatured:    r.IsFeatured,
	}
}

// CreateProduct handles POST /api/products/
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), caller(c), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/products/:id/
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), caller(c), id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/:id/
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), caller(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// productQuery reads brand, min_price, max_price and page. Brands may be
// repeated or comma separated.
func productQuery(c *gin.Context) (services.ProductQuery, bool) {
	var q services.ProductQuery

	for _, raw := range c.QueryArray("brand") {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				q.Brands = append(q.Brands, name)
			}
		}
	}

	var ok bool
	if q.MinPrice, ok = priceParam(c, "min_price"); !ok {
		return q, false
	}
	if q.MaxPrice, ok = priceParam(c, "max_price"); !ok {
		return q, false
	}

	q.Page = 1
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
			return q, false
		}
		q.Page = page
	}
	return q, true
}

func priceParam(c *gin.Context, name string) (*decimal.Decimal, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := decimal.NewFromString(raw)
	if err != nil || v.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return nil, false
	}
	return &v, true
}
