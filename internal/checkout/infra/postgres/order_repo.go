package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dwikikusuma/fixshop/internal/checkout/app"
	"github.com/dwikikusuma/fixshop/internal/checkout/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type orderModel struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	OrderNumber string `gorm:"uniqueIndex;not null"`
	UserID      string `gorm:"type:uuid;not null;index"`
	Status      string `gorm:"not null"`

	Subtotal decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Tax      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Shipping decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Discount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total    decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	ShippingName       string
	ShippingLine1      string
	ShippingLine2      string
	ShippingCity       string
	ShippingState      string
	ShippingPostalCode string
	ShippingCountry    string
	ShippingPhone      string

	BillingName       string
	BillingLine1      string
	BillingLine2      string
	BillingCity       string
	BillingState      string
	BillingPostalCode string
	BillingCountry    string
	BillingPhone      string

	OrderDate   time.Time `gorm:"not null"`
	ShippedAt   *time.Time
	DeliveredAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (orderModel) TableName() string { return "orders" }

type orderItemModel struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	OrderID     string          `gorm:"type:uuid;not null;index"`
	ProductID   string          `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"not null"`
	SKU         string          `gorm:"column:sku;not null"`
	Quantity    int32           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Discount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt   time.Time
}

func (orderItemModel) TableName() string { return "order_items" }

type OrderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&orderModel{}, &orderItemModel{})
}

// CreateOrderTx writes the order row, its items and the source cart's
// deactivation in one transaction. Any failure rolls everything back, so a
// half-created order can never be observed.
func (r *OrderRepo) CreateOrderTx(ctx context.Context, order domain.Order, cartID string) (domain.Order, error) {
	var created domain.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toOrderModel(order)
		m.ID = uuid.NewString()

		if err := tx.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: order number %q already used", app.ErrInvalidInput, order.OrderNumber)
			}
			return fmt.Errorf("failed to create order: %w", err)
		}

		itemModels := make([]orderItemModel, 0, len(order.Items))
		for i, item := range order.Items {
			expected := item.UnitPrice.Mul(decimal.NewFromInt32(item.Quantity))
			if !item.TotalPrice.Equal(expected) {
				return fmt.Errorf("item %d: line total mismatch", i)
			}

			itemModels = append(itemModels, orderItemModel{
				ID:          uuid.NewString(),
				OrderID:     m.ID,
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				SKU:         item.SKU,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Discount:    item.Discount,
				TotalPrice:  item.TotalPrice,
			})
		}

		if err := tx.Create(&itemModels).Error; err != nil {
			return fmt.Errorf("failed to insert order items: %w", err)
		}

		// Deactivating the cart inside the same transaction ties "order
		// exists" and "cart is gone" together.
		res := tx.Table("carts").
			Where("id = ? AND user_id = ? AND is_active", cartID, order.UserID).
			Updates(map[string]interface{}{
				"is_active":  false,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to deactivate cart: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("active cart %s vanished during checkout", cartID)
		}

		created = toOrderDomain(m, itemModels)
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	return created, nil
}

func (r *OrderRepo) GetByNumber(ctx context.Context, userID, orderNumber string) (domain.Order, error) {
	var m orderModel
	err := r.db.WithContext(ctx).
		First(&m, "order_number = ? AND user_id = ?", orderNumber, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Order{}, app.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}

	items, err := r.loadItems(ctx, m.ID)
	if err != nil {
		return domain.Order{}, err
	}

	return toOrderDomain(m, items), nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	var models []orderModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Order, 0, len(models))
	for _, m := range models {
		items, err := r.loadItems(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toOrderDomain(m, items))
	}
	return out, nil
}

func (r *OrderRepo) SetStatus(ctx context.Context, orderID string, status domain.Status, shippedAt, deliveredAt *time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&orderModel{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":       string(status),
			"shipped_at":   shippedAt,
			"delivered_at": deliveredAt,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return app.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepo) loadItems(ctx context.Context, orderID string) ([]orderItemModel, error) {
	var items []orderItemModel
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func toOrderModel(o domain.Order) orderModel {
	return orderModel{
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		Status:      string(o.Status),
		Subtotal:    o.Subtotal,
		Tax:         o.Tax,
		Shipping:    o.Shipping,
		Discount:    o.Discount,
		Total:       o.Total,

		ShippingName:       o.ShippingAddress.Name,
		ShippingLine1:      o.ShippingAddress.Line1,
		ShippingLine2:      o.ShippingAddress.Line2,
		ShippingCity:       o.ShippingAddress.City,
		ShippingState:      o.ShippingAddress.State,
		ShippingPostalCode: o.ShippingAddress.PostalCode,
		ShippingCountry:    o.ShippingAddress.Country,
		ShippingPhone:      o.ShippingAddress.Phone,

		BillingName:       o.BillingAddress.Name,
		BillingLine1:      o.BillingAddress.Line1,
		BillingLine2:      o.BillingAddress.Line2,
		BillingCity:       o.BillingAddress.City,
		BillingState:      o.BillingAddress.State,
		BillingPostalCode: o.BillingAddress.PostalCode,
		BillingCountry:    o.BillingAddress.Country,
		BillingPhone:      o.BillingAddress.Phone,

		OrderDate:   o.OrderDate,
		ShippedAt:   o.ShippedAt,
		DeliveredAt: o.DeliveredAt,
	}
}

func toOrderDomain(m orderModel, items []orderItemModel) domain.Order {
	out := domain.Order{
		ID:          m.ID,
		OrderNumber: m.OrderNumber,
		UserID:      m.UserID,
		Status:      domain.Status(m.Status),
		Subtotal:    m.Subtotal,
		Tax:         m.Tax,
		Shipping:    m.Shipping,
		Discount:    m.Discount,
		Total:       m.Total,
		ShippingAddress: domain.Address{
			Name:       m.ShippingName,
			Line1:      m.ShippingLine1,
			Line2:      m.ShippingLine2,
			City:       m.ShippingCity,
			State:      m.ShippingState,
			PostalCode: m.ShippingPostalCode,
			Country:    m.ShippingCountry,
			Phone:      m.ShippingPhone,
		},
		BillingAddress: domain.Address{
			Name:       m.BillingName,
			Line1:      m.BillingLine1,
			Line2:      m.BillingLine2,
			City:       m.BillingCity,
			State:      m.BillingState,
			PostalCode: m.BillingPostalCode,
			Country:    m.BillingCountry,
			Phone:      m.BillingPhone,
		},
		OrderDate:   m.OrderDate,
		ShippedAt:   m.ShippedAt,
		DeliveredAt: m.DeliveredAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	for _, item := range items {
		out.Items = append(out.Items, domain.OrderItem{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			TotalPrice:  item.TotalPrice,
		})
	}

	return out
}
