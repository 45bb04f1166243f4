package app

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product is the candidate projection the engine ranks and returns. It is
// transient; nothing here is persisted.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Brand         string          `json:"brand,omitempty"`
	Model         string          `json:"model,omitempty"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"image_url,omitempty"`
	CategoryID    int64           `json:"category_id"`
	StockQuantity int32           `json:"-"`
	IsFeatured    bool            `json:"-"`
}

// CatalogReader is the read side the three rules run against. Every query
// returns active, in-stock products only, never any of excludeIDs, ordered
// by featured first then stock descending (ListFeatured by stock only).
type CatalogReader interface {
	SearchToken(ctx context.Context, token string, excludeIDs []string) ([]Product, error)
	ListByCategory(ctx context.Context, categoryID int64, excludeIDs []string) ([]Product, error)
	ListFeatured(ctx context.Context, excludeIDs []string, limit int) ([]Product, error)
	GetMany(ctx context.Context, ids []string) ([]Product, error)
}

type CartReader interface {
	// ActiveProductIDs returns the product ids in the user's active cart,
	// or nil when there is no cart.
	ActiveProductIDs(ctx context.Context, userID string) ([]string, error)
}
