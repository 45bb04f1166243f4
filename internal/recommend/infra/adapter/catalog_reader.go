package adapter

import (
	"context"

	catalogapp "github.com/dwikikusuma/fixshop/internal/catalog/app"
	catalogdomain "github.com/dwikikusuma/fixshop/internal/catalog/domain"
	recommendapp "github.com/dwikikusuma/fixshop/internal/recommend/app"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) SearchToken(ctx context.Context, token string, excludeIDs []string) ([]recommendapp.Product, error) {
	products, err := r.svc.SearchToken(ctx, token, excludeIDs)
	if err != nil {
		return nil, err
	}
	return toCandidates(products), nil
}

func (r *CatalogServiceReader) ListByCategory(ctx context.Context, categoryID int64, excludeIDs []string) ([]recommendapp.Product, error) {
	products, err := r.svc.ListByCategory(ctx, categoryID, excludeIDs)
	if err != nil {
		return nil, err
	}
	return toCandidates(products), nil
}

func (r *CatalogServiceReader) ListFeatured(ctx context.Context, excludeIDs []string, limit int) ([]recommendapp.Product, error) {
	products, err := r.svc.ListFeatured(ctx, excludeIDs, limit)
	if err != nil {
		return nil, err
	}
	return toCandidates(products), nil
}

func (r *CatalogServiceReader) GetMany(ctx context.Context, ids []string) ([]recommendapp.Product, error) {
	products, err := r.svc.GetProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	return toCandidates(products), nil
}

func toCandidates(products []catalogdomain.Product) []recommendapp.Product {
	out := make([]recommendapp.Product, 0, len(products))
	for _, p := range products {
		out = append(out, recommendapp.Product{
			ID:            p.ID,
			Name:          p.Name,
			Brand:         p.Brand,
			Model:         p.Model,
			Price:         p.EffectivePrice(),
			ImageURL:      p.ImageURL,
			CategoryID:    p.CategoryID,
			StockQuantity: p.StockQuantity,
			IsFeatured:    p.IsFeatured,
		})
	}
	return out
}
