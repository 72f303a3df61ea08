package repository

import (
	"context"
	"strings"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductFilter narrows product listings. Zero values disable a criterion.
type ProductFilter struct {
	CategoryIDs []uint
	Query       string
	Brands      []string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Page        int
	PageSize    int
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*models.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	ListAll(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	UpdateRating(ctx context.Context, id uint, average decimal.Decimal, count int) error
	WithTx(tx *gorm.DB) ProductRepository
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepository{db: tx}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit("Seller", "Category", "Brand").Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	scope := productFilterScope(filter)

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Model(&models.Product{}).
		Scopes(scope).
		Select("products.*").
		Preload("Brand").
		Preload("Category").
		Order("products.created_at DESC, products.id DESC")
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func productFilterScope(f ProductFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Joins("LEFT JOIN brands ON brands.id = products.brand_id").
			Joins("LEFT JOIN categories ON categories.id = products.category_id")

		if len(f.CategoryIDs) > 0 {
			db = db.Where("products.category_id IN ?", f.CategoryIDs)
		}
		if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
			like := "%" + q + "%"
			db = db.Where("(LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(brands.name) LIKE ? OR LOWER(categories.name) LIKE ?)",
				like, like, like, like)
		}
		if len(f.Brands) > 0 {
			db = db.Where("brands.name IN ?", f.Brands)
		}
		if f.MinPrice != nil {
			db = db.Where("products.price >= ?", *f.MinPrice)
		}
		if f.MaxPrice != nil {
			db = db.Where("products.price <= ?", *f.MaxPrice)
		}
		return db
	}
}

func (r *productRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).Order("name").Find(&products).Error
	return products, err
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit("Seller", "Category", "Brand").Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, id).Error
}

func (r *productRepository) UpdateRating(ctx context.Context, id uint, average decimal.Decimal, count int) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating_average": average,
			"rating_count":   count,
		}).Error
}
