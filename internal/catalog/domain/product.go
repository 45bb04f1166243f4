package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID              string
	Name            string
	Brand           string
	Model           string
	SKU             string
	Description     string
	Price           decimal.Decimal
	DiscountedPrice *decimal.Decimal
	StockQuantity   int32
	IsActive        bool
	IsFeatured      bool
	CategoryID      int64
	ImageURL        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EffectivePrice is the price a cart line or order item pays right now:
// the discounted price when one is set, the list price otherwise.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}
	return p.Price
}

func (p Product) InStock() bool {
	return p.StockQuantity > 0
}
