package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"storefront/internal/logger"
	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PageSize is the number of products per catalog page.
const PageSize = 4

type ProductQuery struct {
	Brands   []string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Page     int
}

type ProductPage struct {
	Count   int64            `json:"count"`
	Page    int              `json:"page"`
	Results []models.Product `json:"results"`
}

type ProductInput struct {
	CategoryID    uint
	BrandID       *uint
	SKU           string
	Name          string
	Description   string
	Price         decimal.Decimal
	SalePrice     decimal.NullDecimal
	StockQuantity int
	IsFeatured    bool
}

// CatalogCache is notified whenever the product list changes.
type CatalogCache interface {
	InvalidateCatalogPrompt(ctx context.Context) error
}

type CatalogService interface {
	CategoryTree(ctx context.Context) ([]models.Category, error)
	CategoryProducts(ctx context.Context, slug string, q ProductQuery) (*ProductPage, error)
	Search(ctx context.Context, query string, q ProductQuery) (*ProductPage, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, caller Caller, in ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, caller Caller, id uint, in ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, caller Caller, id uint) error
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	cache        CatalogCache
}

func NewCatalogService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository, cache CatalogCache) CatalogService {
	return &catalogService{categoryRepo: categoryRepo, productRepo: productRepo, cache: cache}
}

func (s *catalogService) CategoryTree(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	children := make(map[uint][]models.Category)
	var roots []models.Category
	for _, c := range categories {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	visited := make(map[uint]bool)
	var attach func(nodes []models.Category) []models.Category
	attach = func(nodes []models.Category) []models.Category {
		out := make([]models.Category, 0, len(nodes))
		for _, n := range nodes {
			if visited[n.ID] {
				continue
			}
			visited[n.ID] = true
			n.Children = attach(children[n.ID])
			out = append(out, n)
		}
		return out
	}
	return attach(roots), nil
}

// descendants returns root and every category below it.
func (s *catalogService) descendants(ctx context.Context, root uint) ([]uint, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	children := make(map[uint][]uint)
	for _, c := range categories {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	ids := []uint{root}
	seen := map[uint]bool{root: true}
	for i := 0; i < len(ids); i++ {
		for _, child := range children[ids[i]] {
			if !seen[child] {
				seen[child] = true
				ids = append(ids, child)
			}
		}
	}
	return ids, nil
}

func (s *catalogService) CategoryProducts(ctx context.Context, slug string, q ProductQuery) (*ProductPage, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	ids, err := s.descendants(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, repository.ProductFilter{CategoryIDs: ids}, q)
}

func (s *catalogService) Search(ctx context.Context, query string, q ProductQuery) (*ProductPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	return s.list(ctx, repository.ProductFilter{Query: query}, q)
}

func (s *catalogService) list(ctx context.Context, filter repository.ProductFilter, q ProductQuery) (*ProductPage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	filter.Brands = q.Brands
	filter.MinPrice = q.MinPrice
	filter.MaxPrice = q.MaxPrice
	filter.Page = page
	filter.PageSize = PageSize

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return &ProductPage{Count: total, Page: page, Results: products}, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &ProductNotFoundError{ProductID: id}
	}
	return product, err
}

func (s *catalogService) CreateProduct(ctx context.Context, caller Caller, in ProductInput) (*models.Product, error) {
	if !caller.IsStaff {
		return nil, ErrNotVendor
	}
	if err := s.validateProduct(ctx, in); err != nil {
		return nil, err
	}

	product := &models.Product{SellerID: caller.UserID}
	applyProductInput(product, in)
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.catalogChanged(ctx)
	logger.FromContext(ctx).Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.Uint("seller_id", product.SellerID),
	)
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, caller Caller, id uint, in ProductInput) (*models.Product, error) {
	product, err := s.ownedProduct(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateProduct(ctx, in); err != nil {
		return nil, err
	}

	applyProductInput(product, in)
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}

	s.catalogChanged(ctx)
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, caller Caller, id uint) error {
	if _, err := s.ownedProduct(ctx, caller, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}

	s.catalogChanged(ctx)
	logger.FromContext(ctx).Info("Product deleted", zap.Uint("product_id", id))
	return nil
}

func (s *catalogService) ownedProduct(ctx context.Context, caller Caller, id uint) (*models.Product, error) {
	if !caller.IsStaff {
		return nil, ErrNotVendor
	}
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.SellerID != caller.UserID {
		return nil, ErrForbidden
	}
	return product, nil
}

func (s *catalogService) validateProduct(ctx context.Context, in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrMissingProductName
	}
	if !in.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if in.SalePrice.Valid && in.SalePrice.Decimal.IsNegative() {
		return ErrInvalidPrice
	}
	if _, err := s.categoryRepo.GetByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (s *catalogService) catalogChanged(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCatalogPrompt(ctx); err != nil {
		logger.FromContext(ctx).Warn("Failed to invalidate catalog cache", zap.Error(err))
	}
}

func applyProductInput(p *models.Product, in ProductInput) {
	p.CategoryID = in.CategoryID
	p.BrandID = in.BrandID
	p.SKU = strings.TrimSpace(in.SKU)
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.SalePrice = in.SalePrice
	p.StockQuantity = in.StockQuantity
	p.IsFeatured = in.IsFeatured
	p.Slug = Slugify(p.Name + " " + p.SKU)
}

// Slugify lowercases s and joins its alphanumeric runs with single dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
