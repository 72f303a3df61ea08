package repository

import (
	"context"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingSummary is the aggregate of all ratings for one product.
type RatingSummary struct {
	Average float64
	Count   int64
}

type ReviewRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByProduct(ctx context.Context, productID uint) ([]models.Comment, error)
	UpsertRating(ctx context.Context, rating *models.Rating) error
	GetRatingsByProduct(ctx context.Context, productID uint) ([]models.Rating, error)
	SummarizeRatings(ctx context.Context, productID uint) (RatingSummary, error)
	WithTx(tx *gorm.DB) ReviewRepository
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) WithTx(tx *gorm.DB) ReviewRepository {
	return &reviewRepository{db: tx}
}

func (r *reviewRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit("User").Create(comment).Error
}

func (r *reviewRepository) GetCommentsByProduct(ctx context.Context, productID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return comments, err
}

// UpsertRating keeps a single rating per (user, product); a repeat vote
// replaces the stored value.
func (r *reviewRepository) UpsertRating(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Omit("User").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(rating).Error
}

func (r *reviewRepository) GetRatingsByProduct(ctx context.Context, productID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&ratings).Error
	return ratings, err
}

func (r *reviewRepository) SummarizeRatings(ctx context.Context, productID uint) (RatingSummary, error) {
	var summary RatingSummary
	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Select("COALESCE(AVG(value), 0) AS average, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&summary).Error
	return summary, err
}
