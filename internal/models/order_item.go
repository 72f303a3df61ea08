package models

import "time"

type OrderItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   uint      `json:"order_id" gorm:"not null;index"`
	Order     *Order    `json:"-" gorm:"foreignKey:OrderID"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	VendorID  uint      `json:"vendor_id" gorm:"not null;index"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Status    string    `json:"status" gorm:"default:'pending'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItemStatus represents the status of an order item
type OrderItemStatus string

const (
	ItemPending  OrderItemStatus = "pending"
	ItemAccepted OrderItemStatus = "accepted"
	ItemRejected OrderItemStatus = "rejected"
)
