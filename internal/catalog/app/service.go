package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dwikikusuma/fixshop/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.SKU = strings.TrimSpace(p.SKU)

	if p.Name == "" || p.SKU == "" || p.Price.LessThanOrEqual(decimal.Zero) {
		return domain.Product{}, ErrInvalidInput
	}
	if p.DiscountedPrice != nil && p.DiscountedPrice.LessThanOrEqual(decimal.Zero) {
		return domain.Product{}, ErrInvalidInput
	}

	return s.repo.Create(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) GetProducts(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.repo.GetMany(ctx, ids)
}

func (s *Service) ListProducts(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, query, limit, cursor)
}

func (s *Service) SearchToken(ctx context.Context, token string, excludeIDs []string) ([]domain.Product, error) {
	if token == "" {
		return nil, nil
	}
	return s.repo.SearchToken(ctx, token, excludeIDs)
}

func (s *Service) ListByCategory(ctx context.Context, categoryID int64, excludeIDs []string) ([]domain.Product, error) {
	return s.repo.ListByCategory(ctx, categoryID, excludeIDs)
}

func (s *Service) ListFeatured(ctx context.Context, excludeIDs []string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		return nil, nil
	}
	return s.repo.ListFeatured(ctx, excludeIDs, limit)
}
