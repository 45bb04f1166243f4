package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dwikikusuma/fixshop/internal/user/domain"
)

var ErrNotFound = errors.New("user not found")

type Service struct {
	repo UserRepo
}

func NewService(repo UserRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetUser(ctx context.Context, id string) (domain.User, error) {
	if strings.TrimSpace(id) == "" {
		return domain.User{}, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}
