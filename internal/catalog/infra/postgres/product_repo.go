package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dwikikusuma/fixshop/internal/catalog/app"
	"github.com/dwikikusuma/fixshop/internal/catalog/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type productModel struct {
	ID              string `gorm:"type:uuid;primaryKey"`
	Name            string `gorm:"not null"`
	Brand           string
	Model           string
	SKU             string `gorm:"column:sku;uniqueIndex;not null"`
	Description     string
	Price           decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	DiscountedPrice *decimal.Decimal `gorm:"type:numeric(12,2)"`
	StockQuantity   int32            `gorm:"not null;default:0"`
	IsActive        bool             `gorm:"not null;default:true"`
	IsFeatured      bool             `gorm:"not null;default:false"`
	CategoryID      int64            `gorm:"index"`
	ImageURL        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (productModel) TableName() string { return "products" }

type ProductRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&productModel{})
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	m := toModel(p)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Product{}, app.ErrInvalidInput
		}
		return domain.Product{}, err
	}

	return toDomain(m), nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Product{}, app.ErrInvalidInput
	}

	var m productModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}

	return toDomain(m), nil
}

func (r *ProductRepo) GetMany(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []productModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}

	return toDomainList(models), nil
}

func (r *ProductRepo) List(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	q := r.db.WithContext(ctx).Model(&productModel{}).Order("id").Limit(limit)

	if query = strings.TrimSpace(query); query != "" {
		pat := "%" + query + "%"
		q = q.Where("name ILIKE ? OR brand ILIKE ? OR model ILIKE ?", pat, pat, pat)
	}
	if cursor = strings.TrimSpace(cursor); cursor != "" {
		if _, err := uuid.Parse(cursor); err != nil {
			return nil, "", app.ErrInvalidInput
		}
		q = q.Where("id > ?", cursor)
	}

	var models []productModel
	if err := q.Find(&models).Error; err != nil {
		return nil, "", err
	}

	out := toDomainList(models)
	nextCursor := ""
	if len(out) == limit {
		nextCursor = out[len(out)-1].ID
	}

	return out, nextCursor, nil
}

// SearchToken matches token as a case-sensitive substring of name, brand or
// model, the way the recommendation rules expect.
func (r *ProductRepo) SearchToken(ctx context.Context, token string, excludeIDs []string) ([]domain.Product, error) {
	pat := "%" + token + "%"

	q := r.availableQuery(ctx, excludeIDs).
		Where("name LIKE ? OR brand LIKE ? OR model LIKE ?", pat, pat, pat).
		Order("is_featured DESC, stock_quantity DESC")

	var models []productModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainList(models), nil
}

func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID int64, excludeIDs []string) ([]domain.Product, error) {
	q := r.availableQuery(ctx, excludeIDs).
		Where("category_id = ?", categoryID).
		Order("is_featured DESC, stock_quantity DESC")

	var models []productModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainList(models), nil
}

func (r *ProductRepo) ListFeatured(ctx context.Context, excludeIDs []string, limit int) ([]domain.Product, error) {
	q := r.availableQuery(ctx, excludeIDs).
		Where("is_featured").
		Order("stock_quantity DESC").
		Limit(limit)

	var models []productModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainList(models), nil
}

func (r *ProductRepo) availableQuery(ctx context.Context, excludeIDs []string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&productModel{}).
		Where("is_active AND stock_quantity > 0")
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	return q
}

func toModel(p domain.Product) productModel {
	return productModel{
		ID:              p.ID,
		Name:            p.Name,
		Brand:           p.Brand,
		Model:           p.Model,
		SKU:             p.SKU,
		Description:     p.Description,
		Price:           p.Price,
		DiscountedPrice: p.DiscountedPrice,
		StockQuantity:   p.StockQuantity,
		IsActive:        p.IsActive,
		IsFeatured:      p.IsFeatured,
		CategoryID:      p.CategoryID,
		ImageURL:        p.ImageURL,
	}
}

func toDomain(m productModel) domain.Product {
	return domain.Product{
		ID:              m.ID,
		Name:            m.Name,
		Brand:           m.Brand,
		Model:           m.Model,
		SKU:             m.SKU,
		Description:     m.Description,
		Price:           m.Price,
		DiscountedPrice: m.DiscountedPrice,
		StockQuantity:   m.StockQuantity,
		IsActive:        m.IsActive,
		IsFeatured:      m.IsFeatured,
		CategoryID:      m.CategoryID,
		ImageURL:        m.ImageURL,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toDomainList(models []productModel) []domain.Product {
	out := make([]domain.Product, 0, len(models))
	for _, m := range models {
		out = append(out, toDomain(m))
	}
	return out
}
