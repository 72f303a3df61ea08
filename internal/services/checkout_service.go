package services

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/logger"
	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LineItem is one submitted cart line. Color and size are accepted but not
// stored on the order.
type LineItem struct {
	ProductID uint
	Quantity  int
	Color     *string
	Size      *string
}

type CheckoutRequest struct {
	BuyerID         uint
	ShippingAddress string
	PaymentMethod   string
	Items           []LineItem
}

type CheckoutService interface {
	// Checkout creates one order per seller and returns the order ids in
	// the order sellers first appear in the request.
	Checkout(ctx context.Context, req CheckoutRequest) ([]uint, error)
}

type checkoutService struct {
	tx            repository.Transactor
	productRepo   repository.ProductRepository
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
}

func NewCheckoutService(
	tx repository.Transactor,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
) CheckoutService {
	return &checkoutService{
		tx:            tx,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
	}
}

type resolvedLine struct {
	product  *models.Product
	quantity int
}

type vendorGroup struct {
	vendorID uint
	lines    []resolvedLine
	total    decimal.Decimal
}

func (s *checkoutService) Checkout(ctx context.Context, req CheckoutRequest) ([]uint, error) {
	if err := validateCheckout(&req); err != nil {
		return nil, err
	}

	lines, err := s.resolve(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	groups := groupBySeller(lines)

	paymentCompleted := req.PaymentMethod != models.PaymentCashOnDelivery
	orderIDs := make([]uint, 0, len(groups))

	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		orders := s.orderRepo.WithTx(tx)
		items := s.orderItemRepo.WithTx(tx)

		for _, g := range groups {
			order := &models.Order{
				UserID:           req.BuyerID,
				VendorID:         g.vendorID,
				ShippingAddress:  req.ShippingAddress,
				TotalPrice:       g.total,
				PaymentMethod:    req.PaymentMethod,
				PaymentCompleted: paymentCompleted,
				Status:           string(models.OrderPending),
			}
			if err := orders.Create(ctx, order); err != nil {
				return fmt.Errorf("create order for vendor %d: %w", g.vendorID, err)
			}

			batch := make([]*models.OrderItem, 0, len(g.lines))
			for _, line := range g.lines {
				batch = append(batch, &models.OrderItem{
					OrderID:   order.ID,
					ProductID: line.product.ID,
					VendorID:  g.vendorID,
					Quantity:  line.quantity,
					Status:    string(models.ItemPending),
				})
			}
			if err := items.CreateBatch(ctx, batch); err != nil {
				return fmt.Errorf("create items for order %d: %w", order.ID, err)
			}

			orderIDs = append(orderIDs, order.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	for i, g := range groups {
		log.Info("Order created",
			zap.Uint("order_id", orderIDs[i]),
			zap.Uint("buyer_id", req.BuyerID),
			zap.Uint("vendor_id", g.vendorID),
			zap.Int("items", len(g.lines)),
			zap.String("total", g.total.StringFixed(2)),
		)
	}
	return orderIDs, nil
}

func validateCheckout(req *CheckoutRequest) error {
	req.ShippingAddress = strings.TrimSpace(req.ShippingAddress)
	if req.ShippingAddress == "" {
		return ErrMissingShippingAddress
	}
	if len(req.Items) == 0 {
		return ErrEmptyCart
	}
	for _, item := range req.Items {
		if item.ProductID == 0 {
			return ErrMissingProduct
		}
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = models.PaymentCashOnDelivery
	}
	return nil
}

// resolve loads every referenced product; the first unknown id in request
// order fails the whole checkout.
func (s *checkoutService) resolve(ctx context.Context, items []LineItem) ([]resolvedLine, error) {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	lines := make([]resolvedLine, 0, len(items))
	for _, item := range items {
		p, ok := products[item.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: item.ProductID}
		}
		lines = append(lines, resolvedLine{product: p, quantity: item.Quantity})
	}
	return lines, nil
}

// groupBySeller keeps sellers in first-seen order so order ids are stable.
func groupBySeller(lines []resolvedLine) []*vendorGroup {
	var groups []*vendorGroup
	index := make(map[uint]*vendorGroup)

	for _, line := range lines {
		g, ok := index[line.product.SellerID]
		if !ok {
			g = &vendorGroup{vendorID: line.product.SellerID, total: decimal.Zero}
			index[line.product.SellerID] = g
			groups = append(groups, g)
		}
		g.lines = append(g.lines, line)
		g.total = g.total.Add(LineTotal(line.product, line.quantity))
	}
	return groups
}
