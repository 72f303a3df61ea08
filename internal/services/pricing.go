package services

import (
	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

// LineTotal prices quantity units of p at its effective price.
func LineTotal(p *models.Product, quantity int) decimal.Decimal {
	return p.EffectivePrice().Mul(decimal.NewFromInt(int64(quantity)))
}
