package handlers

import (
	"net/http"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService services.ReviewService
}

func NewReviewHandler(reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type commentRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Content   string `json:"content"`
}

// AddComment handles POST /comment/api/
func (h *ReviewHandler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	comment, err := h.reviewService.AddComment(c.Request.Context(), caller(c).UserID, req.ProductID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

type commentResponse struct {
	models.Comment
	Username string `json:"username"`
}

// ListComments handles GET /comment/api/:product_id
func (h *ReviewHandler) ListComments(c *gin.Context) {
	productID, ok := pathID(c, "product_id")
	if !ok {
		return
	}

	comments, err := h.reviewService.ListComments(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		row := commentResponse{Comment: comment}
		if comment.User != nil {
			row.Username = comment.User.Username
		}
		out = append(out, row)
	}
	c.JSON(http.StatusOK, out)
}

type rateRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Rate      int  `json:"rate"`
}

// Rate handles POST /comment/api/rate
func (h *ReviewHandler) Rate(c *gin.Context) {
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.reviewService.Rate(c.Request.Context(), caller(c).UserID, req.ProductID, req.Rate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListRatings handles GET /comment/api/rate/:product_id
func (h *ReviewHandler) ListRatings(c *gin.Context) {
	productID, ok := pathID(c, "product_id")
	if !ok {
		return
	}

	ratings, err := h.reviewService.ListRatings(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	if ratings == nil {
		ratings = []models.Rating{}
	}
	c.JSON(http.StatusOK, ratings)
}
