package repository

import (
	"context"

	"storefront/internal/models"

	"gorm.io/gorm"
)

type OrderItemRepository interface {
	CreateBatch(ctx context.Context, items []*models.OrderItem) error
	GetByIDForVendor(ctx context.Context, id, vendorID uint) (*models.OrderItem, error)
	GetByVendorID(ctx context.Context, vendorID uint) ([]*models.OrderItem, error)
	TransitionStatus(ctx context.Context, id uint, from, to models.OrderItemStatus) (bool, error)
	CountNotInStatus(ctx context.Context, orderID uint, status models.OrderItemStatus) (int64, error)
	ExistsForBuyer(ctx context.Context, userID, productID uint) (bool, error)
	WithTx(tx *gorm.DB) OrderItemRepository
}

type orderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) WithTx(tx *gorm.DB) OrderItemRepository {
	return &orderItemRepository{db: tx}
}

func (r *orderItemRepository) CreateBatch(ctx context.Context, items []*models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Order", "Product").Create(&items).Error
}

// GetByIDForVendor scopes the lookup to the vendor, so another vendor's item
// is reported as not found.
func (r *orderItemRepository) GetByIDForVendor(ctx context.Context, id, vendorID uint) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.WithContext(ctx).Where("id = ? AND vendor_id = ?", id, vendorID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderItemRepository) GetByVendorID(ctx context.Context, vendorID uint) ([]*models.OrderItem, error) {
	var items []*models.OrderItem
	err := r.db.WithContext(ctx).
		Preload("Order.User").
		Preload("Product").
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// TransitionStatus writes "to" only while the item is still in "from"; false
// means another request decided the item first.
func (r *orderItemRepository) TransitionStatus(ctx context.Context, id uint, from, to models.OrderItemStatus) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	return result.RowsAffected > 0, result.Error
}

func (r *orderItemRepository) CountNotInStatus(ctx context.Context, orderID uint, status models.OrderItemStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Where("order_id = ? AND status <> ?", orderID, string(status)).
		Count(&count).Error
	return count, err
}

func (r *orderItemRepository) ExistsForBuyer(ctx context.Context, userID, productID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND order_items.product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}
