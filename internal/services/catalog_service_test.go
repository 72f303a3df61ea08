package services

import (
	"context"
	"testing"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCache struct {
	invalidations int
}

func (c *countingCache) InvalidateCatalogPrompt(context.Context) error {
	c.invalidations++
	return nil
}

func TestCatalogService_CategoryTree(t *testing.T) {
	s := newStore(t)
	electronics := s.category(t, "Electronics", nil)
	phones := s.category(t, "Phones", electronics)
	s.category(t, "Android", phones)
	s.category(t, "Books", nil)
	svc := NewCatalogService(s.categories, s.products, nil)

	tree, err := svc.CategoryTree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 2)

	assert.Equal(t, "Books", tree[0].Name)
	assert.Equal(t, "Electronics", tree[1].Name)
	require.Len(t, tree[1].Children, 1)
	assert.Equal(t, "Phones", tree[1].Children[0].Name)
	require.Len(t, tree[1].Children[0].Children, 1)
	assert.Equal(t, "Android", tree[1].Children[0].Children[0].Name)
}

func TestCatalogService_CategoryProducts(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	vendor := s.user(t, true)
	electronics := s.category(t, "Electronics", nil)
	phones := s.category(t, "Phones", electronics)
	books := s.category(t, "Books", nil)

	for i := 0; i < 3; i++ {
		s.product(t, vendor, electronics, "Cable", 10, -1)
		s.product(t, vendor, phones, "Phone", 500, -1)
	}
	s.product(t, vendor, books, "Atlas", 40, -1)
	svc := NewCatalogService(s.categories, s.products, nil)

	page, err := svc.CategoryProducts(ctx, "electronics", ProductQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(6), page.Count, "descendant categories are included")
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Results, PageSize)

	page, err = svc.CategoryProducts(ctx, "electronics", ProductQuery{Page: 2})
	require.NoError(t, err)
	assert.Len(t, page.Results, 2)

	low := decimal.NewFromInt(100)
	page, err = svc.CategoryProducts(ctx, "electronics", ProductQuery{MinPrice: &low})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Count)

	_, err = svc.CategoryProducts(ctx, "missing", ProductQuery{})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCatalogService_Search(t *testing.T) {
	s := newStore(t)
	vendor := s.user(t, true)
	cat := s.category(t, "Lighting", nil)
	s.product(t, vendor, cat, "Desk Lamp", 100, -1)
	s.product(t, vendor, s.category(t, "Kitchen", nil), "Kettle", 30, -1)
	svc := NewCatalogService(s.categories, s.products, nil)

	page, err := svc.Search(context.Background(), "lighting", ProductQuery{})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Count)
	assert.Equal(t, "Desk Lamp", page.Results[0].Name)

	page, err = svc.Search(context.Background(), "nothing-like-this", ProductQuery{})
	require.NoError(t, err)
	assert.NotNil(t, page.Results)
	assert.Empty(t, page.Results)

	_, err = svc.Search(context.Background(), "  ", ProductQuery{})
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestCatalogService_ProductLifecycle(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	vendor := s.user(t, true)
	rival := s.user(t, true)
	buyer := s.user(t, false)
	cat := s.category(t, "Audio", nil)
	cache := &countingCache{}
	svc := NewCatalogService(s.categories, s.products, cache)

	in := ProductInput{
		CategoryID: cat.ID,
		SKU:        "HP-1",
		Name:       "Head Phones",
		Price:      decimal.NewFromInt(200),
		SalePrice:  decimal.NewNullDecimal(decimal.NewFromInt(150)),
	}

	_, err := svc.CreateProduct(ctx, Caller{UserID: buyer.ID}, in)
	assert.ErrorIs(t, err, ErrNotVendor)

	bad := in
	bad.Price = decimal.Zero
	_, err = svc.CreateProduct(ctx, Caller{UserID: vendor.ID, IsStaff: true}, bad)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	product, err := svc.CreateProduct(ctx, Caller{UserID: vendor.ID, IsStaff: true}, in)
	require.NoError(t, err)
	assert.Equal(t, vendor.ID, product.SellerID)
	assert.Equal(t, "head-phones-hp-1", product.Slug)

	in.Name = "Headphones Pro"
	_, err = svc.UpdateProduct(ctx, Caller{UserID: rival.ID, IsStaff: true}, product.ID, in)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateProduct(ctx, Caller{UserID: vendor.ID, IsStaff: true}, product.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Headphones Pro", updated.Name)

	require.NoError(t, svc.DeleteProduct(ctx, Caller{UserID: vendor.ID, IsStaff: true}, product.ID))
	_, err = svc.GetProduct(ctx, product.ID)
	var notFound *ProductNotFoundError
	assert.ErrorAs(t, err, &notFound)

	assert.Equal(t, 3, cache.invalidations)
	assert.Equal(t, int64(0), s.count(t, &models.Product{}))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "desk-lamp-sku-7", Slugify("  Desk Lamp / SKU-7 "))
	assert.Equal(t, "", Slugify("---"))
}
