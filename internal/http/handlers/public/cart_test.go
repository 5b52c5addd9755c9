package public

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"github.com/techgear-vn/techgear/internal/constants"
	"github.com/techgear-vn/techgear/internal/models"
	"github.com/techgear-vn/techgear/internal/provider"
	"github.com/techgear-vn/techgear/internal/queue"
	"github.com/techgear-vn/techgear/internal/repository"
	"github.com/techgear-vn/techgear/internal/service"
)

type recordingEnqueuer struct {
	payloads []queue.InteractionTrackPayload
}

func (r *recordingEnqueuer) EnqueueInteractionTrack(payload queue.InteractionTrackPayload, _ ...asynq.Option) error {
	r.payloads = append(r.payloads, payload)
	return nil
}

func setupCartHandlerTest(t *testing.T) (*Handler, *recordingEnqueuer, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:cart_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.User{},
		&models.Cart{},
		&models.CartItem{},
		&models.Coupon{},
		&models.UserInteraction{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	variantRepo := repository.NewVariantRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)

	enqueuer := &recordingEnqueuer{}
	container := &provider.Container{
		CartService:           service.NewCartService(cartRepo, productRepo, variantRepo, couponRepo),
		RecommendationService: service.NewRecommendationService(interactionRepo, productRepo, enqueuer),
	}
	return New(container), enqueuer, db
}

func createCartHandlerTestProduct(t *testing.T, db *gorm.DB, stock int) *models.Product {
	t.Helper()
	category := models.Category{Slug: "handler-category", NameJSON: models.JSON{"vi": "Danh mục"}}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := &models.Product{
		CategoryID:  category.ID,
		Slug:        "handler-product",
		NameJSON:    models.JSON{"vi": "Sản phẩm"},
		PriceAmount: models.NewMoneyFromInt(500000),
		Stock:       stock,
		IsActive:    true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestAddCartItemTracksEngagement(t *testing.T) {
	handler, enqueuer, db := setupCartHandlerTest(t)
	product := createCartHandlerTestProduct(t, db, 5)

	router := gin.New()
	router.POST("/cart/items", func(c *gin.Context) {
		c.Set("user_id", uint(7))
		handler.AddCartItem(c)
	})

	body := fmt.Sprintf(`{"productId": %d, "quantity": 2}`, product.ID)
	req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(enqueuer.payloads) != 1 {
		t.Fatalf("expected one tracked signal, got %d", len(enqueuer.payloads))
	}
	got := enqueuer.payloads[0]
	if got.UserID != 7 || got.ProductID != product.ID {
		t.Fatalf("unexpected signal target: %+v", got)
	}
	if got.Type != constants.InteractionTypeCartAdd || got.Weight != constants.InteractionWeightCartAdd {
		t.Fatalf("unexpected signal type or weight: %+v", got)
	}
}

func TestAddCartItemRejectedAddTracksNothing(t *testing.T) {
	handler, enqueuer, db := setupCartHandlerTest(t)
	product := createCartHandlerTestProduct(t, db, 1)

	router := gin.New()
	router.POST("/cart/items", func(c *gin.Context) {
		c.Set("user_id", uint(7))
		handler.AddCartItem(c)
	})

	body := fmt.Sprintf(`{"productId": %d, "quantity": 3}`, product.ID)
	req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected envelope status 200, got %d", w.Code)
	}
	if len(enqueuer.payloads) != 0 {
		t.Fatalf("expected no tracked signal on rejected add, got %d", len(enqueuer.payloads))
	}
}
