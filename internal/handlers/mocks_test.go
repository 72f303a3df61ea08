package handlers

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/stretchr/testify/mock"
)

type mockCheckoutService struct {
	mock.Mock
}

func (m *mockCheckoutService) Checkout(ctx context.Context, req services.CheckoutRequest) ([]uint, error) {
	args := m.Called(ctx, req)
	ids, _ := args.Get(0).([]uint)
	return ids, args.Error(1)
}

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) UpdateItemStatus(ctx context.Context, caller services.Caller, itemID uint, target models.OrderItemStatus) (*models.OrderItem, error) {
	args := m.Called(ctx, caller, itemID, target)
	item, _ := args.Get(0).(*models.OrderItem)
	return item, args.Error(1)
}

func (m *mockOrderService) GetVendorItems(ctx context.Context, caller services.Caller) ([]*models.OrderItem, error) {
	args := m.Called(ctx, caller)
	items, _ := args.Get(0).([]*models.OrderItem)
	return items, args.Error(1)
}

func (m *mockOrderService) GetBuyerOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Error(1)
}

func (m *mockOrderService) HasOrdered(ctx context.Context, userID, productID uint) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

type mockCartService struct {
	mock.Mock
}

func (m *mockCartService) GetCart(ctx context.Context, userID uint) (*services.CartView, error) {
	args := m.Called(ctx, userID)
	view, _ := args.Get(0).(*services.CartView)
	return view, args.Error(1)
}

func (m *mockCartService) AddItem(ctx context.Context, userID uint, in services.CartInput) (*models.CartItem, error) {
	args := m.Called(ctx, userID, in)
	item, _ := args.Get(0).(*models.CartItem)
	return item, args.Error(1)
}

func (m *mockCartService) BulkAdd(ctx context.Context, userID uint, in []services.CartInput) ([]*models.CartItem, error) {
	args := m.Called(ctx, userID, in)
	items, _ := args.Get(0).([]*models.CartItem)
	return items, args.Error(1)
}

func (m *mockCartService) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (*models.CartItem, error) {
	args := m.Called(ctx, userID, itemID, quantity)
	item, _ := args.Get(0).(*models.CartItem)
	return item, args.Error(1)
}

func (m *mockCartService) RemoveItem(ctx context.Context, userID, itemID uint) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func (m *mockCartService) Clear(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

type mockCatalogService struct {
	mock.Mock
}

func (m *mockCatalogService) CategoryTree(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	tree, _ := args.Get(0).([]models.Category)
	return tree, args.Error(1)
}

func (m *mockCatalogService) CategoryProducts(ctx context.Context, slug string, q services.ProductQuery) (*services.ProductPage, error) {
	args := m.Called(ctx, slug, q)
	page, _ := args.Get(0).(*services.ProductPage)
	return page, args.Error(1)
}

func (m *mockCatalogService) Search(ctx context.Context, query string, q services.ProductQuery) (*services.ProductPage, error) {
	args := m.Called(ctx, query, q)
	page, _ := args.Get(0).(*services.ProductPage)
	return page, args.Error(1)
}

func (m *mockCatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *mockCatalogService) CreateProduct(ctx context.Context, caller services.Caller, in services.ProductInput) (*models.Product, error) {
	args := m.Called(ctx, caller, in)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *mockCatalogService) UpdateProduct(ctx context.Context, caller services.Caller, id uint, in services.ProductInput) (*models.Product, error) {
	args := m.Called(ctx, caller, id, in)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *mockCatalogService) DeleteProduct(ctx context.Context, caller services.Caller, id uint) error {
	return m.Called(ctx, caller, id).Error(0)
}

type mockReviewService struct {
	mock.Mock
}

func (m *mockReviewService) AddComment(ctx context.Context, userID, productID uint, content string) (*models.Comment, error) {
	args := m.Called(ctx, userID, productID, content)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *mockReviewService) ListComments(ctx context.Context, productID uint) ([]models.Comment, error) {
	args := m.Called(ctx, productID)
	comments, _ := args.Get(0).([]models.Comment)
	return comments, args.Error(1)
}

func (m *mockReviewService) Rate(ctx context.Context, userID, productID uint, value int) (*services.RatingResult, error) {
	args := m.Called(ctx, userID, productID, value)
	result, _ := args.Get(0).(*services.RatingResult)
	return result, args.Error(1)
}

func (m *mockReviewService) ListRatings(ctx context.Context, productID uint) ([]models.Rating, error) {
	args := m.Called(ctx, productID)
	ratings, _ := args.Get(0).([]models.Rating)
	return ratings, args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Register(ctx context.Context, in services.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, in)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	args := m.Called(ctx, email, password)
	result, _ := args.Get(0).(*services.LoginResult)
	return result, args.Error(1)
}

func (m *mockUserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type mockChatService struct {
	mock.Mock
}

func (m *mockChatService) Reply(ctx context.Context, caller services.ChatCaller, message string) (string, error) {
	args := m.Called(ctx, caller, message)
	return args.String(0), args.Error(1)
}

func (m *mockChatService) Reset(ctx context.Context, caller services.ChatCaller) error {
	return m.Called(ctx, caller).Error(0)
}
