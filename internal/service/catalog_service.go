package service

import (
	"context"
	"strings"
	"time"

	"shopflow/internal/models"
	"shopflow/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultLowStockThreshold = 10

type ProductInput struct {
	Name          string
	Description   string
	SKU           string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	StockQuantity int
	Category      string
	ImageURL      string
	Rating        decimal.Decimal
}

// ProductPatch mutates only the fields that are present.
type ProductPatch struct {
	Name               *string
	Description        *string
	Price              *decimal.Decimal
	OriginalPrice      *decimal.Decimal
	ClearOriginalPrice bool
	StockQuantity      *int
	Category           *string
	ImageURL           *string
	Rating             *decimal.Decimal
	IsActive           *bool
}

type ProductListFilter struct {
	Category string
	Search   string
	InStock  bool
}

// LowStockProduct is a product annotated with its derived stock flags.
type LowStockProduct struct {
	models.Product
	LowStock   bool `json:"lowStock"`
	OutOfStock bool `json:"outOfStock"`
}

type CatalogService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewCatalogService(repo *repository.Repository) *CatalogService {
	return &CatalogService{
		repo: repo,
		now:  time.Now,
	}
}

// List returns active products matching the filter. Public, no caller needed.
func (s *CatalogService) List(ctx context.Context, f ProductListFilter) ([]models.Product, error) {
	active := true
	return s.repo.Products.List(ctx, repository.ProductListFilter{
		Category:   f.Category,
		Search:     f.Search,
		InStock:    f.InStock,
		OnlyActive: &active,
	})
}

func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *CatalogService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if _, err := requireAdmin(ctx, s.repo.Users); err != nil {
		return nil, err
	}

	sku := strings.TrimSpace(in.SKU)
	if existing, err := s.repo.Products.GetBySKU(ctx, sku); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrSKUAlreadyExists
	}

	p := &models.Product{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		SKU:           sku,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		Category:      in.Category,
		ImageURL:      in.ImageURL,
		Rating:        in.Rating,
		IsActive:      true,
	}
	if in.OriginalPrice != nil {
		p.OriginalPrice = decimal.NewNullDecimal(*in.OriginalPrice)
	}

	if err := s.repo.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, patch ProductPatch) (*models.Product, error) {
	if _, err := requireAdmin(ctx, s.repo.Users); err != nil {
		return nil, err
	}

	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Price != nil {
		fields["price"] = *patch.Price
	}
	if patch.OriginalPrice != nil {
		fields["original_price"] = *patch.OriginalPrice
	} else if patch.ClearOriginalPrice {
		fields["original_price"] = nil
	}
	if patch.StockQuantity != nil {
		if *patch.StockQuantity < 0 {
			return nil, ErrNegativeStock
		}
		fields["stock_quantity"] = *patch.StockQuantity
	}
	if patch.Category != nil {
		fields["category"] = *patch.Category
	}
	if patch.ImageURL != nil {
		fields["image_url"] = *patch.ImageURL
	}
	if patch.Rating != nil {
		fields["rating"] = *patch.Rating
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}

	if len(fields) == 0 {
		return p, nil
	}
	fields["updated_at"] = s.now()

	if err := s.repo.Products.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repo.Products.GetByID(ctx, id)
}

// SetStock sets the absolute stock quantity. Negative values are rejected.
func (s *CatalogService) SetStock(ctx context.Context, id uuid.UUID, quantity int) (*models.Product, error) {
	if _, err := requireAdmin(ctx, s.repo.Users); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, ErrNegativeStock
	}

	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	if err := s.repo.Products.SetStock(ctx, id, quantity); err != nil {
		return nil, err
	}
	return s.repo.Products.GetByID(ctx, id)
}

func (s *CatalogService) LowStock(ctx context.Context, threshold int) ([]LowStockProduct, error) {
	if _, err := requireAdmin(ctx, s.repo.Users); err != nil {
		return nil, err
	}
	if threshold <= 0 {
		threshold = defaultLowStockThreshold
	}

	products, err := s.repo.Products.ListLowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}

	out := make([]LowStockProduct, 0, len(products))
	for _, p := range products {
		out = append(out, LowStockProduct{
			Product:    p,
			LowStock:   p.IsLowStock(threshold),
			OutOfStock: p.IsOutOfStock(),
		})
	}
	return out, nil
}
