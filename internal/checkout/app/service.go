package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dwikikusuma/fixshop/internal/checkout/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyCart     = errors.New("cart empty or not found")
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrBadTransition = errors.New("status transition not allowed")
)

// Totals carries the caller-supplied monetary extras. The subtotal is always
// computed here from live catalog prices; tax, shipping and discount are
// extension points this engine never calculates.
type Totals struct {
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

type Service struct {
	cart    CartReader
	catalog CatalogReader
	store   OrderStore

	maxConcurrent int
}

func NewService(cart CartReader, catalog CatalogReader, store OrderStore, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Service{
		cart:          cart,
		catalog:       catalog,
		store:         store,
		maxConcurrent: maxConcurrent,
	}
}

// CreateOrderFromCart converts the user's active cart into an order:
// snapshotted line items at current effective prices, Pending status, and
// the source cart deactivated, all inside one store transaction.
func (s *Service) CreateOrderFromCart(
	ctx context.Context,
	userID, orderNumber string,
	totals Totals,
	shipping, billing domain.Address,
) (domain.Order, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return domain.Order{}, fmt.Errorf("%w: order number required", ErrInvalidInput)
	}
	if totals.Tax.IsNegative() || totals.Shipping.IsNegative() || totals.Discount.IsNegative() {
		return domain.Order{}, fmt.Errorf("%w: negative totals", ErrInvalidInput)
	}

	snapshot, err := s.cart.ActiveCart(ctx, userID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(snapshot.Items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	items := make([]domain.OrderItem, len(snapshot.Items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range snapshot.Items {
		idx := idx
		g.Go(func() error {
			it := snapshot.Items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("%w: quantity must be greater than zero: %d", ErrInvalidInput, it.Quantity)
			}

			product, err := s.catalog.GetProduct(gctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", it.ProductID, err)
			}

			qty := decimal.NewFromInt32(it.Quantity)
			items[idx] = domain.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				SKU:         product.SKU,
				Quantity:    it.Quantity,
				UnitPrice:   product.UnitPrice,
				Discount:    decimal.Zero,
				TotalPrice:  product.UnitPrice.Mul(qty),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Order{}, err
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice)
	}

	total := totals.Total
	if total.IsZero() {
		total = subtotal.Add(totals.Tax).Add(totals.Shipping).Sub(totals.Discount)
	}

	order := domain.Order{
		OrderNumber:     orderNumber,
		UserID:          userID,
		Status:          domain.StatusPending,
		Subtotal:        subtotal,
		Tax:             totals.Tax,
		Shipping:        totals.Shipping,
		Discount:        totals.Discount,
		Total:           total,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		Items:           items,
		OrderDate:       time.Now(),
	}

	return s.store.CreateOrderTx(ctx, order, snapshot.CartID)
}

func (s *Service) GetOrder(ctx context.Context, userID, orderNumber string) (domain.Order, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return domain.Order{}, ErrOrderNotFound
	}
	return s.store.GetByNumber(ctx, userID, orderNumber)
}

func (s *Service) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.store.ListByUser(ctx, userID)
}

// UpdateStatus advances an order through its state machine; Shipped and
// Delivered stamp their timestamps.
func (s *Service) UpdateStatus(ctx context.Context, userID, orderNumber string, next domain.Status) (domain.Order, error) {
	if !next.Valid() {
		return domain.Order{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, next)
	}

	order, err := s.store.GetByNumber(ctx, userID, orderNumber)
	if err != nil {
		return domain.Order{}, err
	}

	if !order.Status.CanTransition(next) {
		return domain.Order{}, fmt.Errorf("%w: %s -> %s", ErrBadTransition, order.Status, next)
	}

	shippedAt := order.ShippedAt
	deliveredAt := order.DeliveredAt
	now := time.Now()
	switch next {
	case domain.StatusShipped:
		shippedAt = &now
	case domain.StatusDelivered:
		deliveredAt = &now
	}

	if err := s.store.SetStatus(ctx, order.ID, next, shippedAt, deliveredAt); err != nil {
		return domain.Order{}, err
	}

	return s.store.GetByNumber(ctx, userID, orderNumber)
}
