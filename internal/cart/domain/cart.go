package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Cart struct {
	ID        string
	UserID    string
	IsActive  bool
	Items     []CartItem
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Line is a cart item resolved against the live catalog. UnitPrice is the
// product's current effective price, not a snapshot.
type Line struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url,omitempty"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type View struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email,omitempty"`
	Lines     []Line    `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
}

type Summary struct {
	ItemCount   int32           `json:"item_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
