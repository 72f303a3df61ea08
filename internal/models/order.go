package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	UserID           uint            `json:"user_id" gorm:"not null;index"`
	User             *User           `json:"-" gorm:"foreignKey:UserID"`
	VendorID         uint            `json:"vendor_id" gorm:"not null;index"`
	ShippingAddress  string          `json:"shipping_address" gorm:"type:text;not null"`
	TotalPrice       decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	PaymentMethod    string          `json:"payment_method" gorm:"default:'cod'"`
	PaymentCompleted bool            `json:"payment_completed" gorm:"default:false"`
	Status           string          `json:"status" gorm:"default:'pending';index"` // pending, processing, shipped, delivered, cancelled
	Items            []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// PaymentCashOnDelivery is the only method that leaves an order unpaid at checkout.
const PaymentCashOnDelivery = "cod"
