package services

import (
	"fmt"
	"testing"

	"storefront/internal/migrations"
	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(migrations.Models()...))
	return db
}

// store bundles a test database with the repositories built on it.
type store struct {
	db         *gorm.DB
	tx         repository.Transactor
	users      repository.UserRepository
	categories repository.CategoryRepository
	products   repository.ProductRepository
	orders     repository.OrderRepository
	orderItems repository.OrderItemRepository
	carts      repository.CartRepository
	reviews    repository.ReviewRepository
	chats      repository.ChatRepository

	seq int
}

func newStore(t *testing.T) *store {
	db := setupTestDB(t)
	return &store{
		db:         db,
		tx:         repository.NewTransactor(db),
		users:      repository.NewUserRepository(db),
		categories: repository.NewCategoryRepository(db),
		products:   repository.NewProductRepository(db),
		orders:     repository.NewOrderRepository(db),
		orderItems: repository.NewOrderItemRepository(db),
		carts:      repository.NewCartRepository(db),
		reviews:    repository.NewReviewRepository(db),
		chats:      repository.NewChatRepository(db),
	}
}

func (s *store) next() int {
	s.seq++
	return s.seq
}

func (s *store) user(t *testing.T, vendor bool) *models.User {
	n := s.next()
	u := &models.User{
		Email:        fmt.Sprintf("user%d@example.com", n),
		Username:     fmt.Sprintf("user%d", n),
		PasswordHash: "x",
		IsStaff:      vendor,
		IsActive:     true,
	}
	if vendor {
		u.ShopName = fmt.Sprintf("Shop %d", n)
	}
	require.NoError(t, s.db.Create(u).Error)
	return u
}

func (s *store) category(t *testing.T, name string, parent *models.Category) *models.Category {
	c := &models.Category{Name: name, Slug: Slugify(name), IsActive: true}
	if parent != nil {
		c.ParentID = &parent.ID
	}
	require.NoError(t, s.db.Create(c).Error)
	return c
}

// product creates a product; a negative sale price means none.
func (s *store) product(t *testing.T, seller *models.User, category *models.Category, name string, price, sale int64) *models.Product {
	n := s.next()
	p := &models.Product{
		SellerID:   seller.ID,
		CategoryID: category.ID,
		SKU:        fmt.Sprintf("SKU-%d", n),
		Name:       name,
		Slug:       fmt.Sprintf("%s-%d", Slugify(name), n),
		Price:      decimal.NewFromInt(price),
	}
	if sale >= 0 {
		p.SalePrice = decimal.NewNullDecimal(decimal.NewFromInt(sale))
	}
	require.NoError(t, s.db.Create(p).Error)
	return p
}

func (s *store) count(t *testing.T, model interface{}) int64 {
	var n int64
	require.NoError(t, s.db.Model(model).Count(&n).Error)
	return n
}
