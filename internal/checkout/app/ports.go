package app

import (
	"context"
	"time"

	"github.com/dwikikusuma/fixshop/internal/checkout/domain"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	ProductID string
	Quantity  int32
}

// CartSnapshot is the source cart as seen at checkout time.
type CartSnapshot struct {
	CartID string
	Items  []CartItem
}

type CartReader interface {
	// ActiveCart returns the user's active cart, or a snapshot with no
	// items when the user has none.
	ActiveCart(ctx context.Context, userID string) (CartSnapshot, error)
}

// Product carries exactly what an order line snapshots from the catalog.
// UnitPrice is the effective price (discounted when present) at this moment.
type Product struct {
	ID        string
	Name      string
	SKU       string
	UnitPrice decimal.Decimal
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type OrderStore interface {
	// CreateOrderTx persists the order with its items and deactivates the
	// source cart in one transaction. Either everything lands or nothing
	// does.
	CreateOrderTx(ctx context.Context, order domain.Order, cartID string) (domain.Order, error)
	GetByNumber(ctx context.Context, userID, orderNumber string) (domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	// SetStatus updates status and ship/deliver stamps of an order row.
	SetStatus(ctx context.Context, orderID string, status domain.Status, shippedAt, deliveredAt *time.Time) error
}
