package services

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartInput struct {
	ProductID uint
	Quantity  int
	Color     *string
	Size      *string
}

// CartLine is a cart item priced at the product's current effective price.
type CartLine struct {
	models.CartItem
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartView struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type CartService interface {
	GetCart(ctx context.Context, userID uint) (*CartView, error)
	AddItem(ctx context.Context, userID uint, in CartInput) (*models.CartItem, error)
	BulkAdd(ctx context.Context, userID uint, in []CartInput) ([]*models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, userID, itemID uint) error
	Clear(ctx context.Context, userID uint) error
}

type cartService struct {
	tx          repository.Transactor
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(tx repository.Transactor, cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{tx: tx, cartRepo: cartRepo, productRepo: productRepo}
}

func (s *cartService) GetCart(ctx context.Context, userID uint) (*CartView, error) {
	items, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: make([]CartLine, 0, len(items)), Total: decimal.Zero}
	for _, item := range items {
		line := CartLine{CartItem: item, UnitPrice: decimal.Zero, LineTotal: decimal.Zero}
		if item.Product != nil {
			line.UnitPrice = item.Product.EffectivePrice()
			line.LineTotal = LineTotal(item.Product, item.Quantity)
		}
		view.Total = view.Total.Add(line.LineTotal)
		view.Items = append(view.Items, line)
	}
	return view, nil
}

func (s *cartService) AddItem(ctx context.Context, userID uint, in CartInput) (*models.CartItem, error) {
	return addToCart(ctx, s.cartRepo, s.productRepo, userID, in)
}

// BulkAdd adds every line or none of them.
func (s *cartService) BulkAdd(ctx context.Context, userID uint, in []CartInput) ([]*models.CartItem, error) {
	if len(in) == 0 {
		return nil, ErrEmptyCart
	}

	added := make([]*models.CartItem, 0, len(in))
	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		cart := s.cartRepo.WithTx(tx)
		products := s.productRepo.WithTx(tx)
		for _, line := range in {
			item, err := addToCart(ctx, cart, products, userID, line)
			if err != nil {
				return err
			}
			added = append(added, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// addToCart merges into an existing line with the same product, color and
// size, otherwise it creates a new line.
func addToCart(ctx context.Context, cart repository.CartRepository, products repository.ProductRepository, userID uint, in CartInput) (*models.CartItem, error) {
	if in.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if _, err := products.GetByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProductNotFoundError{ProductID: in.ProductID}
		}
		return nil, fmt.Errorf("load product %d: %w", in.ProductID, err)
	}

	existing, err := cart.FindLine(ctx, userID, in.ProductID, in.Color, in.Size)
	switch {
	case err == nil:
		existing.Quantity += in.Quantity
		if err := cart.UpdateQuantity(ctx, existing.ID, existing.Quantity); err != nil {
			return nil, fmt.Errorf("update cart item %d: %w", existing.ID, err)
		}
		return existing, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("find cart line: %w", err)
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Color:     in.Color,
		Size:      in.Size,
	}
	if err := cart.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create cart item: %w", err)
	}
	return item, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.cartRepo.GetByID(ctx, itemID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.UpdateQuantity(ctx, item.ID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uint) error {
	err := s.cartRepo.Delete(ctx, itemID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCartItemNotFound
	}
	return err
}

func (s *cartService) Clear(ctx context.Context, userID uint) error {
	return s.cartRepo.Clear(ctx, userID)
}
