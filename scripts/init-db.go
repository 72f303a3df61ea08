package main

import (
	"context"
	"fmt"
	"os"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/logger"
	"storefront/internal/migrations"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/services"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type seedProduct struct {
	sku, name, brand, category string
	price                      string
	sale                       string
}

var seedProducts = []seedProduct{
	{"LMP-001", "Desk Lamp", "Acme", "lighting", "450.00", "399.00"},
	{"LMP-002", "Floor Lamp", "Lumen", "lighting", "1200.00", ""},
	{"CHR-001", "Office Chair", "Acme", "furniture", "2500.00", "2750.00"},
	{"TBL-001", "Oak Table", "Lumen", "furniture", "4100.00", ""},
}

func main() {
	cfg := config.Load()
	log := logger.NewForEnvironment(cfg.AppEnv, cfg.LogLevel)
	defer log.Sync()

	ctx := context.Background()

	db, err := database.Initialize(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	// Force recreate all tables
	if err := migrations.Reset(db, log); err != nil {
		log.Fatal("Failed to reset schema", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	productRepo := repository.NewProductRepository(db)

	userService := services.NewUserService(userRepo, auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiration))
	catalogService := services.NewCatalogService(categoryRepo, productRepo, nil)

	vendor, err := userService.Register(ctx, services.RegisterInput{
		Email:    "vendor@example.com",
		Password: "vendor123",
		Username: "vendor",
		IsVendor: true,
		ShopName: "Demo Shop",
	})
	if err != nil {
		log.Fatal("Failed to create vendor", zap.Error(err))
	}

	home := &models.Category{Name: "Home", Slug: "home", IsActive: true}
	if err := categoryRepo.Create(ctx, home); err != nil {
		log.Fatal("Failed to create category", zap.Error(err))
	}
	categories := map[string]uint{"home": home.ID}
	for _, name := range []string{"Lighting", "Furniture"} {
		c := &models.Category{Name: name, Slug: services.Slugify(name), ParentID: &home.ID, IsActive: true}
		if err := categoryRepo.Create(ctx, c); err != nil {
			log.Fatal("Failed to create category", zap.Error(err))
		}
		categories[c.Slug] = c.ID
	}

	brands := map[string]uint{}
	for _, name := range []string{"Acme", "Lumen"} {
		b := &models.Brand{Name: name, Slug: services.Slugify(name)}
		if err := brandRepo.Create(ctx, b); err != nil {
			log.Fatal("Failed to create brand", zap.Error(err))
		}
		brands[name] = b.ID
	}

	caller := services.Caller{UserID: vendor.ID, IsStaff: true}
	for _, p := range seedProducts {
		brandID := brands[p.brand]
		in := services.ProductInput{
			CategoryID:    categories[p.category],
			BrandID:       &brandID,
			SKU:           p.sku,
			Name:          p.name,
			Price:         decimal.RequireFromString(p.price),
			StockQuantity: 25,
		}
		if p.sale != "" {
			in.SalePrice = decimal.NewNullDecimal(decimal.RequireFromString(p.sale))
		}
		if _, err := catalogService.CreateProduct(ctx, caller, in); err != nil {
			log.Fatal("Failed to create product", zap.String("sku", p.sku), zap.Error(err))
		}
	}

	fmt.Fprintln(os.Stdout, "Database initialization completed successfully!")
	fmt.Fprintln(os.Stdout, "Vendor: vendor@example.com / vendor123")
}
