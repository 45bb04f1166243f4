package app

import (
	"context"

	"github.com/dwikikusuma/fixshop/internal/user/domain"
)

type UserRepo interface {
	Get(ctx context.Context, id string) (domain.User, error)
}
