package app

import (
	"context"

	"github.com/dwikikusuma/fixshop/internal/cart/domain"
	"github.com/shopspring/decimal"
)

type CartRepo interface {
	// GetActive returns the single active cart for the user with its items,
	// or ErrNotFound.
	GetActive(ctx context.Context, userID string) (domain.Cart, error)
	// GetOrCreate returns the active cart, creating one when none exists.
	// Concurrent calls for the same user must converge on one cart.
	GetOrCreate(ctx context.Context, userID string) (domain.Cart, error)
	// UpsertItemAdd inserts a (cart, product) item or adds qty to the
	// existing row as a single conditional write.
	UpsertItemAdd(ctx context.Context, cartID, productID string, qty int32) error
	// SetItemQuantity overwrites the quantity of an existing item, or
	// returns ErrNotFound when no such item exists.
	SetItemQuantity(ctx context.Context, cartID, productID string, qty int32) error
	// RemoveItem deletes an item, or returns ErrNotFound.
	RemoveItem(ctx context.Context, cartID, productID string) error
	// ClearItems deletes every item of the cart; the cart stays active.
	ClearItems(ctx context.Context, cartID string) error
	// Deactivate soft-deletes the cart when it exists, is active and belongs
	// to userID. Reports whether a cart was deactivated.
	Deactivate(ctx context.Context, cartID, userID string) (bool, error)
}

// Product is the slice of the catalog the cart view needs. UnitPrice is the
// effective price at read time (discounted price when present).
type Product struct {
	ID        string
	Name      string
	ImageURL  string
	UnitPrice decimal.Decimal
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type User struct {
	ID       string
	Username string
	Email    string
}

type UserReader interface {
	GetUser(ctx context.Context, userID string) (User, error)
}
