package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/dwikikusuma/fixshop/internal/cart/app"
	"github.com/dwikikusuma/fixshop/internal/cart/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartModel struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	UserID    string `gorm:"type:uuid;not null;index"`
	IsActive  bool   `gorm:"not null;default:true"`
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (cartModel) TableName() string { return "carts" }

type cartItemModel struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	CartID    string `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID string `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	Quantity  int32  `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (cartItemModel) TableName() string { return "cart_items" }

type CartRepo struct {
	db *gorm.DB
}

func NewCartRepo(db *gorm.DB) *CartRepo {
	return &CartRepo{db: db}
}

// Migrate creates the cart tables plus the partial unique index that makes
// "one active cart per user" a database invariant, not just a code path.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&cartModel{}, &cartItemModel{}); err != nil {
		return err
	}
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_carts_user_active ON carts (user_id) WHERE is_active`,
	).Error
}

func (r *CartRepo) GetActive(ctx context.Context, userID string) (domain.Cart, error) {
	var cart cartModel
	err := r.db.WithContext(ctx).
		First(&cart, "user_id = ? AND is_active", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Cart{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Cart{}, err
	}

	var items []cartItemModel
	err = r.db.WithContext(ctx).
		Where("cart_id = ?", cart.ID).
		Order("created_at").
		Find(&items).Error
	if err != nil {
		return domain.Cart{}, err
	}

	return toDomain(cart, items), nil
}

func (r *CartRepo) GetOrCreate(ctx context.Context, userID string) (domain.Cart, error) {
	cart, err := r.GetActive(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, app.ErrNotFound) {
		return domain.Cart{}, err
	}

	createErr := r.db.WithContext(ctx).Create(&cartModel{
		ID:       uuid.NewString(),
		UserID:   userID,
		IsActive: true,
	}).Error
	if createErr == nil {
		return r.GetActive(ctx, userID)
	}

	// Someone else created the cart between our read and write; the partial
	// unique index turns that into a duplicate key, so just re-read.
	if errors.Is(createErr, gorm.ErrDuplicatedKey) {
		return r.GetActive(ctx, userID)
	}

	return domain.Cart{}, createErr
}

func (r *CartRepo) UpsertItemAdd(ctx context.Context, cartID, productID string, qty int32) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_items.quantity + EXCLUDED.quantity"),
				"updated_at": time.Now(),
			}),
		}).
		Create(&cartItemModel{
			ID:        uuid.NewString(),
			CartID:    cartID,
			ProductID: productID,
			Quantity:  qty,
		}).Error
}

func (r *CartRepo) SetItemQuantity(ctx context.Context, cartID, productID string, qty int32) error {
	res := r.db.WithContext(ctx).
		Model(&cartItemModel{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Updates(map[string]interface{}{
			"quantity":   qty,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *CartRepo) RemoveItem(ctx context.Context, cartID, productID string) error {
	res := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&cartItemModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *CartRepo) ClearItems(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&cartItemModel{}).Error
}

func (r *CartRepo) Deactivate(ctx context.Context, cartID, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&cartModel{}).
		Where("id = ? AND user_id = ? AND is_active", cartID, userID).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func toDomain(cart cartModel, items []cartItemModel) domain.Cart {
	out := domain.Cart{
		ID:        cart.ID,
		UserID:    cart.UserID,
		IsActive:  cart.IsActive,
		ExpiresAt: cart.ExpiresAt,
		CreatedAt: cart.CreatedAt,
		UpdatedAt: cart.UpdatedAt,
	}
	for _, item := range items {
		out.Items = append(out.Items, domain.CartItem{
			ID:        item.ID,
			CartID:    item.CartID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		})
	}
	return out
}
