package main

import (
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/techgear-vn/techgear/internal/config"
	"github.com/techgear-vn/techgear/internal/constants"
	"github.com/techgear-vn/techgear/internal/logger"
	"github.com/techgear-vn/techgear/internal/models"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	categories := []models.Category{
		{
			NameJSON: models.JSON(map[string]interface{}{
				"vi": "Điện thoại",
				"en": "Phones",
			}),
			Slug:      "phones",
			SortOrder: 10,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"vi": "Laptop",
				"en": "Laptops",
			}),
			Slug:      "laptops",
			SortOrder: 20,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"vi": "Phụ kiện",
				"en": "Accessories",
			}),
			Slug:      "accessories",
			SortOrder: 30,
		},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"phones", "laptops", "accessories"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}
	phonesID := categoryIDs["phones"]
	laptopsID := categoryIDs["laptops"]
	accessoriesID := categoryIDs["accessories"]

	products := []models.Product{
		{
			NameJSON: models.JSON(map[string]interface{}{
				"vi": "Tai nghe không dây TechGear Buds",
				"en": "TechGear Buds Wireless Earphones",
			}),
			Slug: "techgear-buds",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"vi": "Chống ồn chủ động, pin 24 giờ, đeo thoải mái cả ngày.",
				"en": "Active noise cancellation, 24 hour battery, all-day comfort.",
			}),
			Brand:         "TechGear",
			PriceAmount:   models.NewMoneyFromInt(1000000),
			PriceDiscount: models.NewMoneyFromInt(800000),
			Stock:         5,
			CategoryID:    accessoriesID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800",
			}),
			IsActive:  true,
			SortOrder: 10,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"vi": "Sạc dự phòng 20.000mAh",
				"en": "20,000mAh Power Bank",
			}),
			Slug: "power-bank-20k",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"vi": "Sạc nhanh 22.5W, hai cổng USB-C, màn hình hiển thị phần trăm pin.",
				"en": "22.5W fast charging, dual USB-C ports, battery percentage display.",
			}),
			Brand:       "Anker",
			PriceAmount: models.NewMoneyFromInt(650000),
			Stock:       40,
			CategoryID:  accessoriesID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=800",
			}),
			IsActive:  true,
			SortOrder: 20,
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"vi": "Laptop UltraBook 14",
				"en": "UltraBook 14 Laptop",
			}),
			Slug: "ultrabook-14",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"vi": "Màn hình 14 inch 2.8K, nặng 1.2kg, pin 18 giờ.",
				"en": "14 inch 2.8K display, 1.2kg, 18 hour battery life.",
			}),
			Brand:       "TechGear",
			PriceAmount: models.NewMoneyFromInt(25000000),
			Stock:       8,
			CategoryID:  laptopsID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=800",
			}),
			IsActive:  true,
			SortOrder: 30,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	// A phone sold per color and storage combination. Stock and price
	// live on the variants, the product row itself stays at zero stock.
	phone := models.Product{
		NameJSON: models.JSON(map[string]interface{}{
			"vi": "Điện thoại TechGear One",
			"en": "TechGear One Smartphone",
		}),
		Slug: "techgear-one",
		DescriptionJSON: models.JSON(map[string]interface{}{
			"vi": "Chip flagship, camera 50MP, sạc nhanh 80W.",
			"en": "Flagship chip, 50MP camera, 80W fast charging.",
		}),
		Brand:       "TechGear",
		PriceAmount: models.NewMoneyFromInt(15000000),
		Stock:       0,
		CategoryID:  phonesID,
		Images: models.StringArray([]string{
			"https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=800",
		}),
		IsActive:  true,
		SortOrder: 5,
	}
	var existingPhone models.Product
	if err := models.DB.Where("slug = ?", phone.Slug).First(&existingPhone).Error; err != nil {
		if err := models.DB.Create(&phone).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", phone.Slug, err)
		} else {
			stdLog.Printf("Created product: %s", phone.Slug)
			variants := []models.ProductVariant{
				{
					ProductID:   phone.ID,
					SKU:         "TGONE-BLK-128",
					ColorName:   "Đen",
					ColorCode:   "#1a1a1a",
					StorageSize: "128GB",
					StorageName: "128GB",
					PriceAmount: models.NewMoneyFromInt(15000000),
					Stock:       12,
					IsActive:    true,
					SortOrder:   10,
				},
				{
					ProductID:     phone.ID,
					SKU:           "TGONE-BLK-256",
					ColorName:     "Đen",
					ColorCode:     "#1a1a1a",
					StorageSize:   "256GB",
					StorageName:   "256GB",
					PriceAmount:   models.NewMoneyFromInt(17000000),
					PriceDiscount: models.NewMoneyFromInt(16000000),
					Stock:         6,
					IsActive:      true,
					SortOrder:     20,
				},
				{
					ProductID:   phone.ID,
					SKU:         "TGONE-BLU-128",
					ColorName:   "Xanh dương",
					ColorCode:   "#1e40af",
					StorageSize: "128GB",
					StorageName: "128GB",
					PriceAmount: models.NewMoneyFromInt(15000000),
					Stock:       3,
					IsActive:    true,
					SortOrder:   30,
				},
			}
			for _, variant := range variants {
				if err := models.DB.Create(&variant).Error; err != nil {
					stdLog.Printf("Failed to create variant %s: %v", variant.SKU, err)
				} else {
					stdLog.Printf("Created variant: %s", variant.SKU)
				}
			}
		}
	} else {
		stdLog.Printf("Product already exists: %s", phone.Slug)
	}

	// Coupon scopes carry product IDs as strings, so resolve the phone
	// row first.
	var phoneRow models.Product
	phoneScope := models.StringArray([]string{constants.CouponScopeAll})
	if err := models.DB.Where("slug = ?", "techgear-one").First(&phoneRow).Error; err == nil {
		phoneScope = models.StringArray([]string{strconv.FormatUint(uint64(phoneRow.ID), 10)})
	}

	now := time.Now()
	weekLater := now.AddDate(0, 0, 7)
	coupons := []models.Coupon{
		{
			Code:           "SALE100",
			Discount:       models.NewMoneyFromInt(100000),
			MinOrderAmount: models.NewMoneyFromInt(500000),
			Quantity:       1,
			ProductScope:   models.StringArray([]string{constants.CouponScopeAll}),
			IsActive:       true,
		},
		{
			Code:           "PHONE500",
			Discount:       models.NewMoneyFromInt(500000),
			MinOrderAmount: models.NewMoneyFromInt(10000000),
			Quantity:       50,
			ProductScope:   phoneScope,
			StartsAt:       &now,
			EndsAt:         &weekLater,
			IsActive:       true,
		},
	}
	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", coupon.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&coupon).Error; err != nil {
				stdLog.Printf("Failed to create coupon %s: %v", coupon.Code, err)
			} else {
				stdLog.Printf("Created coupon: %s", coupon.Code)
			}
		} else {
			stdLog.Printf("Coupon already exists: %s", coupon.Code)
		}
	}

	demoEmail := "demo@techgear.vn"
	var existingUser models.User
	if err := models.DB.Where("email = ?", demoEmail).First(&existingUser).Error; err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Fatalf("Failed to hash demo password: %v", err)
		}
		user := models.User{
			Email:        demoEmail,
			PasswordHash: string(hash),
			DisplayName:  "Khách hàng demo",
			Phone:        "0901234567",
			Address:      "123 Lê Lợi, Quận 1, TP.HCM",
			Locale:       "vi",
			Status:       constants.UserStatusActive,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create demo user: %v", err)
		} else {
			stdLog.Printf("Created demo user: %s (password: demo1234)", demoEmail)
		}
	} else {
		stdLog.Printf("Demo user already exists: %s", demoEmail)
	}

	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	stdLog.Println("Seed completed")
}
