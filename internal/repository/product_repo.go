package repository

import (
	"context"
	"errors"
	"strings"

	"shopflow/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductListFilter struct {
	Category   string
	Search     string // substring match across name/description/category
	InStock    bool
	OnlyActive *bool
}

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetBySKU(ctx context.Context, sku string) (*models.Product, error)
	List(ctx context.Context, f ProductListFilter) ([]models.Product, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	SetStock(ctx context.Context, id uuid.UUID, quantity int) error
	// DecrementStock is a guarded update: it only succeeds when the row still
	// holds at least qty units, so concurrent orders cannot drive stock
	// negative.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	IncrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	ListLowStock(ctx context.Context, threshold int) ([]models.Product, error)
	CountLowStock(ctx context.Context, threshold int) (int64, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) ProductRepo { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).Where("lower(sku) = lower(?)", sku).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) List(ctx context.Context, f ProductListFilter) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})

	if f.OnlyActive != nil {
		q = q.Where("is_active = ?", *f.OnlyActive)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pat := "%" + s + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ? OR category ILIKE ?", pat, pat, pat)
	}
	if f.InStock {
		q = q.Where("stock_quantity > 0")
	}

	var list []models.Product
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *productRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (r *productRepo) SetStock(ctx context.Context, id uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).
		Update("stock_quantity", quantity).Error
}

func (r *productRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE products
SET stock_quantity = stock_quantity - @q,
    updated_at = now()
WHERE id = @pid
  AND stock_quantity >= @q
`, map[string]any{
		"pid": id,
		"q":   qty,
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *productRepo) IncrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE products
SET stock_quantity = stock_quantity + @q,
    updated_at = now()
WHERE id = @pid
`, map[string]any{
		"pid": id,
		"q":   qty,
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *productRepo) ListLowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	var list []models.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND stock_quantity <= ?", true, threshold).
		Order("stock_quantity ASC").
		Find(&list).Error
	return list, err
}

func (r *productRepo) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("is_active = ? AND stock_quantity <= ?", true, threshold).
		Count(&cnt).Error
	return cnt, err
}
