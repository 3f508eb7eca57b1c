package repository

import (
	"context"
	"errors"
	"time"

	"shopflow/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderListFilter struct {
	CustomerID *uuid.UUID
	Status     *models.OrderStatus
}

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	List(ctx context.Context, f OrderListFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.OrderStatus) (int64, error)
	SumTotalAmount(ctx context.Context) (decimal.Decimal, error)

	WithTx(ctx context.Context, fn func(tx *Repository) error) error
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&ord).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) List(ctx context.Context, f OrderListFilter) ([]models.Order, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})

	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var list []models.Order
	err := q.Order("created_at DESC").Preload("Items").Find(&list).Error
	return list, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *orderRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("created_at >= ?", since).
		Count(&cnt).Error
	return cnt, err
}

func (r *orderRepo) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&cnt).Error
	return cnt, err
}

func (r *orderRepo) CountByStatus(ctx context.Context, status models.OrderStatus) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("status = ?", status).
		Count(&cnt).Error
	return cnt, err
}

func (r *orderRepo) SumTotalAmount(ctx context.Context) (decimal.Decimal, error) {
	type aggRow struct {
		Total decimal.Decimal
	}
	var res aggRow
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount),0) AS total").
		Scan(&res).Error
	return res.Total, err
}

func (r *orderRepo) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(buildRepository(tx))
	})
}
