package service

import (
	"context"

	"shopflow/internal/models"
	"shopflow/internal/repository"

	"github.com/shopspring/decimal"
)

type Metrics struct {
	TotalOrders     int64
	TotalRevenue    decimal.Decimal
	PendingOrders   int64
	CompletedOrders int64
	LowStockCount   int64
}

type AnalyticsService struct {
	repo *repository.Repository
}

func NewAnalyticsService(repo *repository.Repository) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// Metrics aggregates the admin dashboard numbers. Read-only.
func (s *AnalyticsService) Metrics(ctx context.Context) (*Metrics, error) {
	if _, err := requireAdmin(ctx, s.repo.Users); err != nil {
		return nil, err
	}

	totalOrders, err := s.repo.Orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalRevenue, err := s.repo.Orders.SumTotalAmount(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.repo.Orders.CountByStatus(ctx, models.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	delivered, err := s.repo.Orders.CountByStatus(ctx, models.OrderStatusDelivered)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.repo.Products.CountLowStock(ctx, defaultLowStockThreshold)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		TotalOrders:     totalOrders,
		TotalRevenue:    totalRevenue,
		PendingOrders:   pending,
		CompletedOrders: delivered,
		LowStockCount:   lowStock,
	}, nil
}
