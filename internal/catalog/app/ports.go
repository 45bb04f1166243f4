package app

import (
	"context"

	"github.com/dwikikusuma/fixshop/internal/catalog/domain"
)

type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	GetMany(ctx context.Context, ids []string) ([]domain.Product, error)
	List(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error)

	// Recommendation read side. All three return active, in-stock products
	// only, never any of excludeIDs.
	SearchToken(ctx context.Context, token string, excludeIDs []string) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categoryID int64, excludeIDs []string) ([]domain.Product, error)
	ListFeatured(ctx context.Context, excludeIDs []string, limit int) ([]domain.Product, error)
}
