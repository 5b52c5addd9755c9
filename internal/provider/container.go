package provider

import (
	"time"

	"github.com/techgear-vn/techgear/internal/authz"
	"github.com/techgear-vn/techgear/internal/cache"
	"github.com/techgear-vn/techgear/internal/config"
	"github.com/techgear-vn/techgear/internal/logger"
	"github.com/techgear-vn/techgear/internal/models"
	"github.com/techgear-vn/techgear/internal/queue"
	"github.com/techgear-vn/techgear/internal/repository"
	"github.com/techgear-vn/techgear/internal/service"
)

// Container wires repositories and services for the handlers.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo       repository.AdminRepository
	UserRepo        repository.UserRepository
	ProductRepo     repository.ProductRepository
	VariantRepo     repository.VariantRepository
	CategoryRepo    repository.CategoryRepository
	CartRepo        repository.CartRepository
	CouponRepo      repository.CouponRepository
	OrderRepo       repository.OrderRepository
	ReviewRepo      repository.ReviewRepository
	InteractionRepo repository.InteractionRepository

	// Services
	AuthzService          *authz.Service
	CaptchaService        *service.CaptchaService
	ProductService        *service.ProductService
	CategoryService       *service.CategoryService
	CartService           *service.CartService
	OrderService          *service.OrderService
	CouponAdminService    *service.CouponAdminService
	ReviewService         *service.ReviewService
	RecommendationService *service.RecommendationService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.VariantRepo = repository.NewVariantRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.InteractionRepo = repository.NewInteractionRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	productTTL := time.Duration(c.Config.Store.ProductCacheSeconds) * time.Second
	categoryTTL := time.Duration(c.Config.Store.CategoryCacheSeconds) * time.Second

	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.ProductService = service.NewProductService(c.ProductRepo, c.VariantRepo, c.CategoryRepo, productTTL)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, categoryTTL)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.VariantRepo, c.CouponRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.ProductRepo, c.VariantRepo, c.CouponRepo, c.QueueClient)
	c.CouponAdminService = service.NewCouponAdminService(c.CouponRepo)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo, c.UserRepo, c.CaptchaService)
	c.RecommendationService = service.NewRecommendationService(c.InteractionRepo, c.ProductRepo, c.QueueClient)
}
