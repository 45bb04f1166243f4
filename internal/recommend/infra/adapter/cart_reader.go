package adapter

import (
	"context"
	"errors"

	cartapp "github.com/dwikikusuma/fixshop/internal/cart/app"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) ActiveProductIDs(ctx context.Context, userID string) ([]string, error) {
	cart, err := r.svc.ActiveCart(ctx, userID)
	if errors.Is(err, cartapp.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	return ids, nil
}
