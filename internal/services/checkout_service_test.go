package services

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCheckout(s *store) CheckoutService {
	return NewCheckoutService(s.tx, s.products, s.orders, s.orderItems)
}

func TestCheckout_GroupsBySellerWithSalePrice(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	buyer := s.user(t, false)
	sellerX := s.user(t, true)
	sellerY := s.user(t, true)
	cat := s.category(t, "Home", nil)
	a := s.product(t, sellerX, cat, "Lamp", 100, 80)
	b := s.product(t, sellerY, cat, "Mug", 50, -1)

	ids, err := newCheckout(s).Checkout(ctx, CheckoutRequest{
		BuyerID:         buyer.ID,
		ShippingAddress: "  12 Nile St, Cairo ",
		Items: []LineItem{
			{ProductID: a.ID, Quantity: 2},
			{ProductID: b.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, ids, 2)

	orders := loadOrders(t, s, ids)

	byVendor := map[uint]models.Order{}
	for _, o := range orders {
		byVendor[o.VendorID] = o
	}

	x := byVendor[sellerX.ID]
	assert.True(t, x.TotalPrice.Equal(decimal.NewFromInt(160)), "got %s", x.TotalPrice)
	assert.Equal(t, "12 Nile St, Cairo", x.ShippingAddress)
	assert.Equal(t, models.PaymentCashOnDelivery, x.PaymentMethod)
	assert.False(t, x.PaymentCompleted)
	assert.Equal(t, string(models.OrderPending), x.Status)
	require.Len(t, x.Items, 1)
	assert.Equal(t, a.ID, x.Items[0].ProductID)
	assert.Equal(t, 2, x.Items[0].Quantity)
	assert.Equal(t, sellerX.ID, x.Items[0].VendorID)
	assert.Equal(t, string(models.ItemPending), x.Items[0].Status)

	y := byVendor[sellerY.ID]
	assert.True(t, y.TotalPrice.Equal(decimal.NewFromInt(50)), "got %s", y.TotalPrice)
	require.Len(t, y.Items, 1)
	assert.Equal(t, sellerY.ID, y.Items[0].VendorID)
}

func TestCheckout_OneOrderPerSeller(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	buyer := s.user(t, false)
	cat := s.category(t, "Misc", nil)

	sellers := []*models.User{s.user(t, true), s.user(t, true), s.user(t, true)}
	var items []LineItem
	for _, seller := range sellers {
		p := s.product(t, seller, cat, "Thing", 10, -1)
		items = append(items, LineItem{ProductID: p.ID, Quantity: 1})
	}
	extra := s.product(t, sellers[0], cat, "Other", 5, -1)
	items = append(items, LineItem{ProductID: extra.ID, Quantity: 3})

	ids, err := newCheckout(s).Checkout(ctx, CheckoutRequest{
		BuyerID:         buyer.ID,
		ShippingAddress: "Somewhere",
		PaymentMethod:   "paymob",
		Items:           items,
	})
	require.NoError(t, err)
	require.Len(t, ids, 3)

	orders := loadOrders(t, s, ids)

	// first-seen seller order is preserved in the returned ids
	first, err := s.orders.GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, sellers[0].ID, first.VendorID)
	assert.True(t, first.TotalPrice.Equal(decimal.NewFromInt(25)))

	for _, o := range orders {
		assert.True(t, o.PaymentCompleted)
		for _, item := range o.Items {
			assert.Equal(t, o.VendorID, item.VendorID)
		}
	}
	assert.Equal(t, int64(4), s.count(t, &models.OrderItem{}))
}

func TestCheckout_IgnoresSalePriceAbovePrice(t *testing.T) {
	s := newStore(t)
	buyer := s.user(t, false)
	seller := s.user(t, true)
	p := s.product(t, seller, s.category(t, "Tools", nil), "Saw", 40, 55)

	ids, err := newCheckout(s).Checkout(context.Background(), CheckoutRequest{
		BuyerID:         buyer.ID,
		ShippingAddress: "Here",
		Items:           []LineItem{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	order, err := s.orders.GetByID(context.Background(), ids[0])
	require.NoError(t, err)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(80)))
}

func TestCheckout_UnknownProduct(t *testing.T) {
	s := newStore(t)
	buyer := s.user(t, false)
	seller := s.user(t, true)
	p := s.product(t, seller, s.category(t, "Toys", nil), "Ball", 10, -1)

	_, err := newCheckout(s).Checkout(context.Background(), CheckoutRequest{
		BuyerID:         buyer.ID,
		ShippingAddress: "Here",
		Items: []LineItem{
			{ProductID: p.ID, Quantity: 1},
			{ProductID: 999, Quantity: 1},
		},
	})

	var notFound *ProductNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, uint(999), notFound.ProductID)
	assert.Equal(t, int64(0), s.count(t, &models.Order{}))
}

func TestCheckout_Validation(t *testing.T) {
	s := newStore(t)
	buyer := s.user(t, false)
	seller := s.user(t, true)
	p := s.product(t, seller, s.category(t, "Books", nil), "Novel", 10, -1)

	tests := []struct {
		name string
		req  CheckoutRequest
		want error
	}{
		{"empty cart", CheckoutRequest{BuyerID: buyer.ID, ShippingAddress: "Here"}, ErrEmptyCart},
		{"blank address", CheckoutRequest{BuyerID: buyer.ID, ShippingAddress: "   ", Items: []LineItem{{ProductID: p.ID, Quantity: 1}}}, ErrMissingShippingAddress},
		{"zero quantity", CheckoutRequest{BuyerID: buyer.ID, ShippingAddress: "Here", Items: []LineItem{{ProductID: p.ID, Quantity: 0}}}, ErrInvalidQuantity},
		{"missing product", CheckoutRequest{BuyerID: buyer.ID, ShippingAddress: "Here", Items: []LineItem{{Quantity: 1}}}, ErrMissingProduct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newCheckout(s).Checkout(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, int64(0), s.count(t, &models.Order{}))
}

func TestCheckout_RollsBackOnFailure(t *testing.T) {
	s := newStore(t)
	buyer := s.user(t, false)
	cat := s.category(t, "Garden", nil)
	a := s.product(t, s.user(t, true), cat, "Hose", 30, -1)
	b := s.product(t, s.user(t, true), cat, "Rake", 20, -1)

	// fail the second seller's item insert after the first order was written
	inserts := 0
	err := s.db.Callback().Create().Before("gorm:create").Register("test:fail_items", func(tx *gorm.DB) {
		if tx.Statement.Table == "order_items" {
			inserts++
			if inserts == 2 {
				_ = tx.AddError(errors.New("disk full"))
			}
		}
	})
	require.NoError(t, err)

	_, err = newCheckout(s).Checkout(context.Background(), CheckoutRequest{
		BuyerID:         buyer.ID,
		ShippingAddress: "Here",
		Items: []LineItem{
			{ProductID: a.ID, Quantity: 1},
			{ProductID: b.ID, Quantity: 1},
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, int64(0), s.count(t, &models.Order{}))
	assert.Equal(t, int64(0), s.count(t, &models.OrderItem{}))
}

func loadOrders(t *testing.T, s *store, ids []uint) []models.Order {
	orders := make([]models.Order, 0, len(ids))
	for _, id := range ids {
		order, err := s.orders.GetByID(context.Background(), id)
		require.NoError(t, err)
		orders = append(orders, *order)
	}
	return orders
}
