package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"not null"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;not null"`
	ParentID    *uint      `json:"parent_id" gorm:"index"`
	Description string     `json:"description"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	Children    []Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Brand struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

type Product struct {
	ID            uint                `json:"id" gorm:"primaryKey"`
	SellerID      uint                `json:"seller_id" gorm:"not null;index"`
	Seller        *User               `json:"-" gorm:"foreignKey:SellerID"`
	CategoryID    uint                `json:"category_id" gorm:"not null;index"`
	Category      *Category           `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	BrandID       *uint               `json:"brand_id" gorm:"index"`
	Brand         *Brand              `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	SKU           string              `json:"sku" gorm:"uniqueIndex;not null"`
	Name          string              `json:"name" gorm:"not null"`
	Slug          string              `json:"slug" gorm:"uniqueIndex;not null"`
	Description   string              `json:"description" gorm:"type:text"`
	Price         decimal.Decimal     `json:"price" gorm:"type:decimal(10,2);not null"`
	SalePrice     decimal.NullDecimal `json:"sale_price" gorm:"type:decimal(10,2)"`
	StockQuantity int                 `json:"stock_quantity" gorm:"default:0"`
	IsFeatured    bool                `json:"is_featured" gorm:"default:false;index"`
	RatingAverage decimal.Decimal     `json:"rating_average" gorm:"type:decimal(3,2);default:0"`
	RatingCount   int                 `json:"rating_count" gorm:"default:0"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// EffectivePrice is the unit price actually charged: the sale price when one
// is set and lower than the regular price, otherwise the regular price.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice.Valid && p.SalePrice.Decimal.LessThan(p.Price) {
		return p.SalePrice.Decimal
	}
	return p.Price
}
