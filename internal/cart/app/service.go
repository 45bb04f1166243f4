package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dwikikusuma/fixshop/internal/cart/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrNotFound        = errors.New("cart or cart item not found")
)

// Service owns the active-cart lifecycle: one active cart per user, additive
// item upserts, and live-priced cart views.
type Service struct {
	repo    CartRepo
	catalog CatalogReader
	users   UserReader
	log     *slog.Logger
}

func NewService(repo CartRepo, catalog CatalogReader, users UserReader, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:    repo,
		catalog: catalog,
		users:   users,
		log:     log,
	}
}

// ActiveCart returns the raw active cart without catalog enrichment.
func (s *Service) ActiveCart(ctx context.Context, userID string) (domain.Cart, error) {
	return s.repo.GetActive(ctx, userID)
}

func (s *Service) GetActiveCart(ctx context.Context, userID string) (domain.View, error) {
	cart, err := s.repo.GetActive(ctx, userID)
	if err != nil {
		return domain.View{}, err
	}
	return s.buildView(ctx, cart)
}

func (s *Service) GetOrCreate(ctx context.Context, userID string) (domain.Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Cart{}, ErrInvalidInput
	}
	return s.repo.GetOrCreate(ctx, userID)
}

func (s *Service) AddItem(ctx context.Context, userID, productID string, qty int32) (domain.View, error) {
	if qty <= 0 {
		return domain.View{}, ErrInvalidQuantity
	}
	if strings.TrimSpace(productID) == "" {
		return domain.View{}, ErrInvalidInput
	}

	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.View{}, err
	}

	if err := s.repo.UpsertItemAdd(ctx, cart.ID, productID, qty); err != nil {
		return domain.View{}, err
	}

	return s.refreshedView(ctx, userID)
}

// UpdateItemQuantity sets the quantity of an existing item. A quantity of
// zero or less removes the item instead.
func (s *Service) UpdateItemQuantity(ctx context.Context, userID, productID string, qty int32) (domain.View, error) {
	cart, err := s.repo.GetActive(ctx, userID)
	if err != nil {
		return domain.View{}, err
	}

	if qty <= 0 {
		err = s.repo.RemoveItem(ctx, cart.ID, productID)
	} else {
		err = s.repo.SetItemQuantity(ctx, cart.ID, productID, qty)
	}
	if err != nil {
		return domain.View{}, err
	}

	return s.refreshedView(ctx, userID)
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (domain.View, error) {
	cart, err := s.repo.GetActive(ctx, userID)
	if err != nil {
		return domain.View{}, err
	}

	if err := s.repo.RemoveItem(ctx, cart.ID, productID); err != nil {
		return domain.View{}, err
	}

	return s.refreshedView(ctx, userID)
}

func (s *Service) ClearCart(ctx context.Context, userID string) (domain.View, error) {
	cart, err := s.repo.GetActive(ctx, userID)
	if err != nil {
		return domain.View{}, err
	}

	if err := s.repo.ClearItems(ctx, cart.ID); err != nil {
		return domain.View{}, err
	}

	return s.refreshedView(ctx, userID)
}

// DeactivateCart is an idempotent soft-delete: it reports false, not an
// error, when the cart is missing, already inactive or owned by someone else.
func (s *Service) DeactivateCart(ctx context.Context, cartID, userID string) (bool, error) {
	return s.repo.Deactivate(ctx, cartID, userID)
}

// Summarize returns the active cart's item count and monetary total at
// current catalog prices, or a zero summary when the user has no active cart.
func (s *Service) Summarize(ctx context.Context, userID string) (domain.Summary, error) {
	cart, err := s.repo.GetActive(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return domain.Summary{TotalAmount: decimal.Zero}, nil
	}
	if err != nil {
		return domain.Summary{}, err
	}

	sum := domain.Summary{TotalAmount: decimal.Zero}
	for _, item := range cart.Items {
		p, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			return domain.Summary{}, fmt.Errorf("resolve product %s: %w", item.ProductID, err)
		}
		sum.ItemCount += item.Quantity
		sum.TotalAmount = sum.TotalAmount.Add(p.UnitPrice.Mul(decimal.NewFromInt32(item.Quantity)))
	}

	return sum, nil
}

func (s *Service) refreshedView(ctx context.Context, userID string) (domain.View, error) {
	cart, err := s.repo.GetActive(ctx, userID)
	if err != nil {
		return domain.View{}, err
	}
	return s.buildView(ctx, cart)
}

func (s *Service) buildView(ctx context.Context, cart domain.Cart) (domain.View, error) {
	view := domain.View{
		ID:        cart.ID,
		UserID:    cart.UserID,
		Lines:     make([]domain.Line, 0, len(cart.Items)),
		CreatedAt: cart.CreatedAt,
	}

	for _, item := range cart.Items {
		p, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			return domain.View{}, fmt.Errorf("resolve product %s: %w", item.ProductID, err)
		}
		view.Lines = append(view.Lines, domain.Line{
			ProductID: item.ProductID,
			Name:      p.Name,
			ImageURL:  p.ImageURL,
			Quantity:  item.Quantity,
			UnitPrice: p.UnitPrice,
			LineTotal: p.UnitPrice.Mul(decimal.NewFromInt32(item.Quantity)),
		})
	}

	// User enrichment is best-effort; the cart itself is the answer.
	if s.users != nil {
		u, err := s.users.GetUser(ctx, cart.UserID)
		if err != nil {
			s.log.Warn("cart view user enrichment failed",
				slog.String("user_id", cart.UserID), slog.Any("err", err))
		} else {
			view.Username = u.Username
			view.Email = u.Email
		}
	}

	return view, nil
}
