package adapter

import (
	"context"

	cartapp "github.com/dwikikusuma/fixshop/internal/cart/app"
	userapp "github.com/dwikikusuma/fixshop/internal/user/app"
)

type UserServiceReader struct {
	svc *userapp.Service
}

func NewUserServiceReader(svc *userapp.Service) *UserServiceReader {
	return &UserServiceReader{svc: svc}
}

func (r *UserServiceReader) GetUser(ctx context.Context, userID string) (cartapp.User, error) {
	u, err := r.svc.GetUser(ctx, userID)
	if err != nil {
		return cartapp.User{}, err
	}

	return cartapp.User{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}, nil
}
