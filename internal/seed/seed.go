package seed

import (
	"context"

	"shopflow/internal/models"
	"shopflow/internal/repository"
	"shopflow/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type demoProduct struct {
	name          string
	description   string
	sku           string
	price         string
	originalPrice string
	stock         int
	category      string
	imageURL      string
	rating        string
}

var demoProducts = []demoProduct{
	{
		name:          "Premium Wireless Headphones",
		description:   "High-quality wireless headphones with active noise cancellation and 30-hour battery life.",
		sku:           "HP-001",
		price:         "299.99",
		originalPrice: "399.99",
		stock:         15,
		category:      "Electronics",
		imageURL:      "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=300",
		rating:        "4.8",
	},
	{
		name:        "Professional Laptop Pro",
		description: "High-performance laptop with 16GB RAM, 512GB SSD, and Intel i7 processor for professional work.",
		sku:         "LP-002",
		price:       "1299.99",
		stock:       8,
		category:    "Electronics",
		imageURL:    "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=400&h=300",
		rating:      "4.9",
	},
	{
		name:          "Athletic Running Shoes",
		description:   "Lightweight running shoes with advanced cushioning and breathable mesh upper.",
		sku:           "SH-003",
		price:         "129.99",
		originalPrice: "159.99",
		stock:         3,
		category:      "Sports",
		imageURL:      "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400&h=300",
		rating:        "4.7",
	},
	{
		name:        "Smartphone Pro Max",
		description: "Latest smartphone with advanced camera system, 5G connectivity, and all-day battery life.",
		sku:         "SP-004",
		price:       "899.99",
		stock:       0,
		category:    "Electronics",
		imageURL:    "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=400&h=300",
		rating:      "4.6",
	},
}

// Run inserts the demo users and products. Safe to call repeatedly: existing
// usernames and SKUs are left alone.
func Run(ctx context.Context, repo *repository.Repository, hasher service.PasswordHasher, log *zap.Logger) error {
	if err := seedUser(ctx, repo, hasher, "admin", "admin@example.com", "Admin", "User", "admin123", models.RoleAdmin); err != nil {
		return err
	}
	if err := seedUser(ctx, repo, hasher, "customer", "customer@example.com", "John", "Doe", "customer123", models.RoleCustomer); err != nil {
		return err
	}

	for _, d := range demoProducts {
		existing, err := repo.Products.GetBySKU(ctx, d.sku)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		p := &models.Product{
			Name:          d.name,
			Description:   d.description,
			SKU:           d.sku,
			Price:         decimal.RequireFromString(d.price),
			StockQuantity: d.stock,
			Category:      d.category,
			ImageURL:      d.imageURL,
			Rating:        decimal.RequireFromString(d.rating),
			IsActive:      true,
		}
		if d.originalPrice != "" {
			p.OriginalPrice = decimal.NewNullDecimal(decimal.RequireFromString(d.originalPrice))
		}
		if err := repo.Products.Create(ctx, p); err != nil {
			return err
		}
		log.Info("seeded product", zap.String("sku", d.sku))
	}
	return nil
}

func seedUser(ctx context.Context, repo *repository.Repository, hasher service.PasswordHasher, username, email, first, last, password string, role models.Role) error {
	exists, err := repo.Users.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}
	return repo.Users.Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		FirstName:    first,
		LastName:     last,
		PasswordHash: hash,
		Role:         role,
	})
}
