package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dwikikusuma/fixshop/internal/checkout/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeCart struct {
	snapshot CartSnapshot
	err      error
}

func (f fakeCart) ActiveCart(ctx context.Context, userID string) (CartSnapshot, error) {
	return f.snapshot, f.err
}

type fakeCatalog struct {
	products map[string]Product
}

func (f fakeCatalog) GetProduct(ctx context.Context, id string) (Product, error) {
	p, ok := f.products[id]
	if !ok {
		return Product{}, errors.New("product not found")
	}
	return p, nil
}

// memOrderStore mimics the transactional store: on failure nothing is
// recorded, on success the order and the cart deactivation land together.
type memOrderStore struct {
	mu          sync.Mutex
	orders      map[string]domain.Order
	deactivated []string
	failCreate  error
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{orders: make(map[string]domain.Order)}
}

func (m *memOrderStore) CreateOrderTx(ctx context.Context, order domain.Order, cartID string) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failCreate != nil {
		return domain.Order{}, m.failCreate
	}
	if _, exists := m.orders[order.OrderNumber]; exists {
		return domain.Order{}, ErrInvalidInput
	}

	order.ID = uuid.NewString()
	for i := range order.Items {
		order.Items[i].ID = uuid.NewString()
		order.Items[i].OrderID = order.ID
	}
	m.orders[order.OrderNumber] = order
	m.deactivated = append(m.deactivated, cartID)
	return order, nil
}

func (m *memOrderStore) GetByNumber(ctx context.Context, userID, orderNumber string) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[orderNumber]
	if !ok || order.UserID != userID {
		return domain.Order{}, ErrOrderNotFound
	}
	return order, nil
}

func (m *memOrderStore) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.Order
	for _, order := range m.orders {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (m *memOrderStore) SetStatus(ctx context.Context, orderID string, status domain.Status, shippedAt, deliveredAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for num, order := range m.orders {
		if order.ID == orderID {
			order.Status = status
			order.ShippedAt = shippedAt
			order.DeliveredAt = deliveredAt
			m.orders[num] = order
			return nil
		}
	}
	return ErrOrderNotFound
}

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func testCatalog() fakeCatalog {
	return fakeCatalog{products: map[string]Product{
		"p1": {ID: "p1", Name: "Galaxy S24 Ultra", SKU: "SM-S928", UnitPrice: dec("1199.99")},
		"p2": {ID: "p2", Name: "Fast Charger 45W", SKU: "EP-T4510", UnitPrice: dec("39.90")},
	}}
}

func address() domain.Address {
	return domain.Address{
		Name: "Dwiki K", Line1: "Jl. Sudirman 1", City: "Jakarta",
		PostalCode: "10220", Country: "ID",
	}
}

func TestCreateOrderFromCart(t *testing.T) {
	ctx := context.Background()

	t.Run("no active cart -> empty cart error", func(t *testing.T) {
		svc := NewService(fakeCart{}, testCatalog(), newMemOrderStore(), 0)
		_, err := svc.CreateOrderFromCart(ctx, "u1", "ORD-1", Totals{}, address(), address())
		require.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("cart with no items -> empty cart error", func(t *testing.T) {
		cart := fakeCart{snapshot: CartSnapshot{CartID: "c1"}}
		svc := NewService(cart, testCatalog(), newMemOrderStore(), 0)
		_, err := svc.CreateOrderFromCart(ctx, "u1", "ORD-1", Totals{}, address(), address())
		require.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("missing order number -> invalid", func(t *testing.T) {
		svc := NewService(fakeCart{}, testCatalog(), newMemOrderStore(), 0)
		_, err := svc.CreateOrderFromCart(ctx, "u1", "  ", Totals{}, address(), address())
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("negative shipping -> invalid", func(t *testing.T) {
		svc := NewService(fakeCart{}, testCatalog(), newMemOrderStore(), 0)
		_, err := svc.CreateOrderFromCart(ctx, "u1", "ORD-1", Totals{Shipping: dec("-1")}, address(), address())
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("snapshots items and deactivates cart atomically", func(t *testing.T) {
		cart := fakeCart{snapshot: CartSnapshot{
			CartID: "c1",
			Items: []CartItem{
				{ProductID: "p1", Quantity: 1},
				{ProductID: "p2", Quantity: 3},
			},
		}}
		store := newMemOrderStore()
		svc := NewService(cart, testCatalog(), store, 0)

		order, err := svc.CreateOrderFromCart(ctx, "u1", "ORD-42", Totals{Shipping: dec("9.99")}, address(), address())
		require.NoError(t, err)

		require.Equal(t, domain.StatusPending, order.Status)
		require.Equal(t, "ORD-42", order.OrderNumber)
		require.Len(t, order.Items, 2)

		wantSubtotal := dec("1199.99").Add(dec("39.90").Mul(decimal.NewFromInt(3)))
		require.True(t, order.Subtotal.Equal(wantSubtotal), "subtotal %s != %s", order.Subtotal, wantSubtotal)

		sumLines := decimal.Zero
		for _, item := range order.Items {
			sumLines = sumLines.Add(item.TotalPrice)
		}
		require.True(t, sumLines.Equal(order.Subtotal))

		require.Equal(t, "Galaxy S24 Ultra", order.Items[0].ProductName)
		require.Equal(t, "SM-S928", order.Items[0].SKU)
		require.True(t, order.Items[0].UnitPrice.Equal(dec("1199.99")))

		require.True(t, order.Total.Equal(wantSubtotal.Add(dec("9.99"))))
		require.Equal(t, []string{"c1"}, store.deactivated)
	})

	t.Run("caller-supplied total wins", func(t *testing.T) {
		cart := fakeCart{snapshot: CartSnapshot{
			CartID: "c1",
			Items:  []CartItem{{ProductID: "p2", Quantity: 1}},
		}}
		svc := NewService(cart, testCatalog(), newMemOrderStore(), 0)

		order, err := svc.CreateOrderFromCart(ctx, "u1", "ORD-7", Totals{Total: dec("35.00")}, address(), address())
		require.NoError(t, err)
		require.True(t, order.Total.Equal(dec("35.00")))
	})

	t.Run("store failure -> no order, cart untouched", func(t *testing.T) {
		cart := fakeCart{snapshot: CartSnapshot{
			CartID: "c1",
			Items:  []CartItem{{ProductID: "p1", Quantity: 1}},
		}}
		store := newMemOrderStore()
		store.failCreate = errors.New("connection reset")
		svc := NewService(cart, testCatalog(), store, 0)

		_, err := svc.CreateOrderFromCart(ctx, "u1", "ORD-9", Totals{}, address(), address())
		require.Error(t, err)

		require.Empty(t, store.orders, "rolled-back order must not exist")
		require.Empty(t, store.deactivated, "cart must stay active after rollback")
	})

	t.Run("unknown product -> error, nothing stored", func(t *testing.T) {
		cart := fakeCart{snapshot: CartSnapshot{
			CartID: "c1",
			Items:  []CartItem{{ProductID: "ghost", Quantity: 1}},
		}}
		store := newMemOrderStore()
		svc := NewService(cart, testCatalog(), store, 0)

		_, err := svc.CreateOrderFromCart(ctx, "u1", "ORD-10", Totals{}, address(), address())
		require.Error(t, err)
		require.Empty(t, store.orders)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*Service, *memOrderStore) {
		t.Helper()
		cart := fakeCart{snapshot: CartSnapshot{
			CartID: "c1",
			Items:  []CartItem{{ProductID: "p1", Quantity: 1}},
		}}
		store := newMemOrderStore()
		svc := NewService(cart, testCatalog(), store, 0)
		_, err := svc.CreateOrderFromCart(ctx, "u1", "ORD-1", Totals{}, address(), address())
		require.NoError(t, err)
		return svc, store
	}

	t.Run("pending -> shipped stamps shippedAt", func(t *testing.T) {
		svc, _ := setup(t)
		order, err := svc.UpdateStatus(ctx, "u1", "ORD-1", domain.StatusShipped)
		require.NoError(t, err)
		require.Equal(t, domain.StatusShipped, order.Status)
		require.NotNil(t, order.ShippedAt)
		require.Nil(t, order.DeliveredAt)
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		svc, _ := setup(t)
		_, err := svc.UpdateStatus(ctx, "u1", "ORD-1", domain.StatusDelivered)
		require.NoError(t, err)
		_, err = svc.UpdateStatus(ctx, "u1", "ORD-1", domain.StatusCancelled)
		require.ErrorIs(t, err, ErrBadTransition)
	})

	t.Run("unknown status -> invalid", func(t *testing.T) {
		svc, _ := setup(t)
		_, err := svc.UpdateStatus(ctx, "u1", "ORD-1", domain.Status("Refunded"))
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("other user's order -> not found", func(t *testing.T) {
		svc, _ := setup(t)
		_, err := svc.UpdateStatus(ctx, "intruder", "ORD-1", domain.StatusShipped)
		require.ErrorIs(t, err, ErrOrderNotFound)
	})
}
