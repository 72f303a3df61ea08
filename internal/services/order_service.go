package services

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/logger"
	"storefront/internal/models"
	"storefront/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService interface {
	// UpdateItemStatus lets the owning vendor accept or reject a pending
	// item; the order becomes processing once every item is accepted.
	UpdateItemStatus(ctx context.Context, caller Caller, itemID uint, target models.OrderItemStatus) (*models.OrderItem, error)
	GetVendorItems(ctx context.Context, caller Caller) ([]*models.OrderItem, error)
	GetBuyerOrders(ctx context.Context, userID uint) ([]models.Order, error)
	HasOrdered(ctx context.Context, userID, productID uint) (bool, error)
}

type orderService struct {
	tx            repository.Transactor
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
}

func NewOrderService(tx repository.Transactor, orderRepo repository.OrderRepository, orderItemRepo repository.OrderItemRepository) OrderService {
	return &orderService{tx: tx, orderRepo: orderRepo, orderItemRepo: orderItemRepo}
}

func (s *orderService) UpdateItemStatus(ctx context.Context, caller Caller, itemID uint, target models.OrderItemStatus) (*models.OrderItem, error) {
	if !caller.IsStaff {
		return nil, ErrNotVendor
	}
	if target != models.ItemAccepted && target != models.ItemRejected {
		return nil, ErrInvalidItemStatus
	}

	var updated *models.OrderItem
	var promoted bool

	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		items := s.orderItemRepo.WithTx(tx)
		orders := s.orderRepo.WithTx(tx)

		item, err := items.GetByIDForVendor(ctx, itemID, caller.UserID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderItemNotFound
		}
		if err != nil {
			return fmt.Errorf("load order item %d: %w", itemID, err)
		}
		if item.Status != string(models.ItemPending) {
			return ErrItemAlreadyDecided
		}

		// Decisions on items of the same order are serialized here.
		if _, err := orders.LockByID(ctx, item.OrderID); err != nil {
			return fmt.Errorf("lock order %d: %w", item.OrderID, err)
		}

		changed, err := items.TransitionStatus(ctx, item.ID, models.ItemPending, target)
		if err != nil {
			return fmt.Errorf("update order item %d: %w", item.ID, err)
		}
		if !changed {
			return ErrItemAlreadyDecided
		}
		item.Status = string(target)

		remaining, err := items.CountNotInStatus(ctx, item.OrderID, models.ItemAccepted)
		if err != nil {
			return fmt.Errorf("check order %d: %w", item.OrderID, err)
		}
		if remaining == 0 {
			promoted, err = orders.TransitionStatus(ctx, item.OrderID, models.OrderPending, models.OrderProcessing)
			if err != nil {
				return fmt.Errorf("promote order %d: %w", item.OrderID, err)
			}
		}

		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("Order item status updated",
		zap.Uint("item_id", updated.ID),
		zap.Uint("order_id", updated.OrderID),
		zap.Uint("vendor_id", caller.UserID),
		zap.String("status", updated.Status),
	)
	if promoted {
		log.Info("Order moved to processing", zap.Uint("order_id", updated.OrderID))
	}
	return updated, nil
}

func (s *orderService) GetVendorItems(ctx context.Context, caller Caller) ([]*models.OrderItem, error) {
	if !caller.IsStaff {
		return nil, ErrNotVendor
	}
	return s.orderItemRepo.GetByVendorID(ctx, caller.UserID)
}

func (s *orderService) GetBuyerOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(ctx, userID)
}

func (s *orderService) HasOrdered(ctx context.Context, userID, productID uint) (bool, error) {
	return s.orderItemRepo.ExistsForBuyer(ctx, userID, productID)
}
