package adapter

import (
	"context"
	"errors"

	cartapp "github.com/dwikikusuma/fixshop/internal/cart/app"
	checkoutapp "github.com/dwikikusuma/fixshop/internal/checkout/app"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

// ActiveCart maps "no active cart" to an empty snapshot; the checkout engine
// treats both the same way.
func (r *CartServiceReader) ActiveCart(ctx context.Context, userID string) (checkoutapp.CartSnapshot, error) {
	view, err := r.svc.GetActiveCart(ctx, userID)
	if errors.Is(err, cartapp.ErrNotFound) {
		return checkoutapp.CartSnapshot{}, nil
	}
	if err != nil {
		return checkoutapp.CartSnapshot{}, err
	}

	items := make([]checkoutapp.CartItem, 0, len(view.Lines))
	for _, line := range view.Lines {
		items = append(items, checkoutapp.CartItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	return checkoutapp.CartSnapshot{CartID: view.ID, Items: items}, nil
}
