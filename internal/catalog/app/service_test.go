package app

import (
	"context"
	"testing"

	"github.com/dwikikusuma/fixshop/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

type fakeRepo struct {
	lastLimit int
}

func (f *fakeRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	return p, nil
}
func (f *fakeRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	return domain.Product{}, nil
}
func (f *fakeRepo) GetMany(ctx context.Context, ids []string) ([]domain.Product, error) {
	return nil, nil
}
func (f *fakeRepo) List(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	f.lastLimit = limit
	return nil, "", nil
}
func (f *fakeRepo) SearchToken(ctx context.Context, token string, excludeIDs []string) ([]domain.Product, error) {
	return nil, nil
}
func (f *fakeRepo) ListByCategory(ctx context.Context, categoryID int64, excludeIDs []string) ([]domain.Product, error) {
	return nil, nil
}
func (f *fakeRepo) ListFeatured(ctx context.Context, excludeIDs []string, limit int) ([]domain.Product, error) {
	return nil, nil
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})

	t.Run("empty name -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), domain.Product{
			Name: "   ", SKU: "SKU-1", Price: decimal.NewFromInt(100),
		})
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("zero price -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), domain.Product{
			Name: "USB-C Cable", SKU: "SKU-2",
		})
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative discounted price -> invalid", func(t *testing.T) {
		bad := decimal.NewFromInt(-5)
		_, err := svc.CreateProduct(context.Background(), domain.Product{
			Name: "USB-C Cable", SKU: "SKU-3", Price: decimal.NewFromInt(100), DiscountedPrice: &bad,
		})
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestListProductsClampsLimit(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	if _, _, err := svc.ListProducts(context.Background(), "", 0, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastLimit != 20 {
		t.Fatalf("expected default limit 20, got %d", repo.lastLimit)
	}

	if _, _, err := svc.ListProducts(context.Background(), "", 500, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastLimit != 100 {
		t.Fatalf("expected clamped limit 100, got %d", repo.lastLimit)
	}
}
