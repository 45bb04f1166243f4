package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/dwikikusuma/fixshop/internal/user/app"
	"github.com/dwikikusuma/fixshop/internal/user/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userModel struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Username  string `gorm:"uniqueIndex;not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userModel) TableName() string { return "users" }

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&userModel{})
}

func (r *UserRepo) Get(ctx context.Context, id string) (domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.User{}, app.ErrNotFound
	}

	var m userModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, app.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}

	return domain.User{ID: m.ID, Username: m.Username, Email: m.Email}, nil
}
