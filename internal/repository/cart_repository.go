package repository

import (
	"context"

	"storefront/internal/models"

	"gorm.io/gorm"
)

type CartRepository interface {
	GetByUserID(ctx context.Context, userID uint) ([]models.CartItem, error)
	GetByID(ctx context.Context, id, userID uint) (*models.CartItem, error)
	FindLine(ctx context.Context, userID, productID uint, color, size *string) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, id uint, quantity int) error
	Delete(ctx context.Context, id, userID uint) error
	Clear(ctx context.Context, userID uint) error
	WithTx(tx *gorm.DB) CartRepository
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) WithTx(tx *gorm.DB) CartRepository {
	return &cartRepository{db: tx}
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).Preload("Product").Where("user_id = ?", userID).Order("id").Find(&items).Error
	return items, err
}

func (r *cartRepository) GetByID(ctx context.Context, id, userID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindLine returns the cart line with the same product and variant, where a
// nil color or size matches only a NULL column.
func (r *cartRepository) FindLine(ctx context.Context, userID, productID uint, color, size *string) (*models.CartItem, error) {
	query := r.db.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID)
	query = nullableEq(query, "color", color)
	query = nullableEq(query, "size", size)

	var item models.CartItem
	if err := query.First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func nullableEq(db *gorm.DB, column string, value *string) *gorm.DB {
	if value == nil {
		return db.Where(column + " IS NULL")
	}
	return db.Where(column+" = ?", *value)
}

func (r *cartRepository) Create(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Omit("Product").Create(item).Error
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, id uint, quantity int) error {
	return r.db.WithContext(ctx).Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", quantity).Error
}

func (r *cartRepository) Delete(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
