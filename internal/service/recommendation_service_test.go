package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/techgear-vn/techgear/internal/constants"
	"github.com/techgear-vn/techgear/internal/models"
	"github.com/techgear-vn/techgear/internal/repository"
)

func setupRecommendationServiceTest(t *testing.T) (*RecommendationService, *repository.GormInteractionRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:recommendation_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.UserInteraction{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	interactionRepo := repository.NewInteractionRepository(db)
	productRepo := repository.NewProductRepository(db)
	return NewRecommendationService(interactionRepo, productRepo, nil), interactionRepo, db
}

func createRecommendationTestProducts(t *testing.T, db *gorm.DB, count int) []models.Product {
	t.Helper()
	category := models.Category{Slug: "rec-category", NameJSON: models.JSON{"vi": "Danh mục"}}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	products := make([]models.Product, 0, count)
	for i := 0; i < count; i++ {
		product := models.Product{
			CategoryID:  category.ID,
			Slug:        fmt.Sprintf("rec-product-%d", i),
			NameJSON:    models.JSON{"vi": "Sản phẩm"},
			PriceAmount: models.NewMoneyFromInt(100000),
			IsActive:    true,
		}
		if err := db.Create(&product).Error; err != nil {
			t.Fatalf("create product failed: %v", err)
		}
		products = append(products, product)
	}
	return products
}

func TestInteractionWeights(t *testing.T) {
	cases := map[string]int{
		constants.InteractionTypeView:     constants.InteractionWeightView,
		constants.InteractionTypeCartAdd:  constants.InteractionWeightCartAdd,
		constants.InteractionTypePurchase: constants.InteractionWeightPurchase,
		"unknown":                         0,
	}
	for interactionType, want := range cases {
		if got := interactionWeight(interactionType); got != want {
			t.Fatalf("weight for %s: want %d, got %d", interactionType, want, got)
		}
	}
}

func TestRecommendRanksBySignalScore(t *testing.T) {
	svc, interactionRepo, db := setupRecommendationServiceTest(t)
	products := createRecommendationTestProducts(t, db, 3)

	// Product 1 carries the heavier signal.
	if err := interactionRepo.AddScore(1, products[1].ID, constants.InteractionTypePurchase, constants.InteractionWeightPurchase); err != nil {
		t.Fatalf("AddScore error: %v", err)
	}
	if err := interactionRepo.AddScore(1, products[0].ID, constants.InteractionTypeView, constants.InteractionWeightView); err != nil {
		t.Fatalf("AddScore error: %v", err)
	}

	recommended, err := svc.Recommend(1, 2)
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	if len(recommended) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recommended))
	}
	if recommended[0].ID != products[1].ID {
		t.Fatalf("expected highest-scored product first, got %d", recommended[0].ID)
	}
}

func TestRecommendFillsWithNewestProducts(t *testing.T) {
	svc, _, db := setupRecommendationServiceTest(t)
	createRecommendationTestProducts(t, db, 4)

	recommended, err := svc.Recommend(42, 3)
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	if len(recommended) != 3 {
		t.Fatalf("expected filler recommendations for cold user, got %d", len(recommended))
	}
}

func TestRecommendSkipsInactiveProducts(t *testing.T) {
	svc, interactionRepo, db := setupRecommendationServiceTest(t)
	products := createRecommendationTestProducts(t, db, 2)

	if err := db.Model(&models.Product{}).Where("id = ?", products[0].ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}
	if err := interactionRepo.AddScore(1, products[0].ID, constants.InteractionTypePurchase, constants.InteractionWeightPurchase); err != nil {
		t.Fatalf("AddScore error: %v", err)
	}

	recommended, err := svc.Recommend(1, 2)
	if err != nil {
		t.Fatalf("Recommend error: %v", err)
	}
	for _, p := range recommended {
		if p.ID == products[0].ID {
			t.Fatalf("inactive product leaked into recommendations")
		}
	}
}

func TestTrackWithoutQueueClientIsNoop(t *testing.T) {
	svc, _, db := setupRecommendationServiceTest(t)
	products := createRecommendationTestProducts(t, db, 1)

	// Disabled queue client must swallow the signal without panicking.
	svc.Track(1, products[0].ID, constants.InteractionTypeView)
	svc.Track(1, products[0].ID, "unknown")
}
