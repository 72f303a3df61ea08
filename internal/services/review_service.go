package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RatingResult is the caller's vote together with the product's new aggregate.
type RatingResult struct {
	ProductID     uint            `json:"product_id"`
	Rate          int             `json:"rate"`
	RatingAverage decimal.Decimal `json:"rating_average"`
	RatingCount   int             `json:"rating_count"`
}

type ReviewService interface {
	AddComment(ctx context.Context, userID, productID uint, content string) (*models.Comment, error)
	ListComments(ctx context.Context, productID uint) ([]models.Comment, error)
	Rate(ctx context.Context, userID, productID uint, value int) (*RatingResult, error)
	ListRatings(ctx context.Context, productID uint) ([]models.Rating, error)
}

type reviewService struct {
	tx          repository.Transactor
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

func NewReviewService(tx repository.Transactor, reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) ReviewService {
	return &reviewService{tx: tx, reviewRepo: reviewRepo, productRepo: productRepo}
}

func (s *reviewService) AddComment(ctx context.Context, userID, productID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}
	if err := productExists(ctx, s.productRepo, productID); err != nil {
		return nil, err
	}

	comment := &models.Comment{UserID: userID, ProductID: productID, Content: content}
	if err := s.reviewRepo.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (s *reviewService) ListComments(ctx context.Context, productID uint) ([]models.Comment, error) {
	return s.reviewRepo.GetCommentsByProduct(ctx, productID)
}

// Rate stores the caller's rating and recomputes the product aggregate in
// the same transaction.
func (s *reviewService) Rate(ctx context.Context, userID, productID uint, value int) (*RatingResult, error) {
	if value < models.MinRating || value > models.MaxRating {
		return nil, ErrInvalidRating
	}

	result := &RatingResult{ProductID: productID, Rate: value}
	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		reviews := s.reviewRepo.WithTx(tx)
		products := s.productRepo.WithTx(tx)

		if err := productExists(ctx, products, productID); err != nil {
			return err
		}
		if err := reviews.UpsertRating(ctx, &models.Rating{UserID: userID, ProductID: productID, Value: value}); err != nil {
			return fmt.Errorf("save rating: %w", err)
		}

		summary, err := reviews.SummarizeRatings(ctx, productID)
		if err != nil {
			return fmt.Errorf("summarize ratings: %w", err)
		}
		result.RatingAverage = decimal.NewFromFloat(summary.Average).Round(2)
		result.RatingCount = int(summary.Count)

		return products.UpdateRating(ctx, productID, result.RatingAverage, result.RatingCount)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *reviewService) ListRatings(ctx context.Context, productID uint) ([]models.Rating, error) {
	return s.reviewRepo.GetRatingsByProduct(ctx, productID)
}

func productExists(ctx context.Context, products repository.ProductRepository, id uint) error {
	_, err := products.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ProductNotFoundError{ProductID: id}
	}
	return err
}
