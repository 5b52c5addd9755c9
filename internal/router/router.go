package router

import (
	"fmt"
	"strings"

	"github.com/techgear-vn/techgear/internal/cache"
	"github.com/techgear-vn/techgear/internal/config"
	adminhandlers "github.com/techgear-vn/techgear/internal/http/handlers/admin"
	publichandlers "github.com/techgear-vn/techgear/internal/http/handlers/public"
	"github.com/techgear-vn/techgear/internal/logger"
	"github.com/techgear-vn/techgear/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP router.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "tg"
	}
	redisClient := cache.Client()
	couponRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:coupon", redisPrefix),
		WindowSeconds: cfg.Security.CouponRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CouponRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.CouponRateLimit.BlockSeconds,
		MessageKey:    "error.coupon_too_many",
	}
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.Security.CheckoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CheckoutRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.CheckoutRateLimit.BlockSeconds,
		MessageKey:    "error.checkout_too_many",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// Storefront, no auth required. Product detail still reads the
		// bearer token when present so views credit the signed-in user.
		public := apiV1.Group("")
		{
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:slug", OptionalUserJWTMiddleware(cfg.UserJWT.SecretKey, c.UserRepo), publicHandler.GetProduct)
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/reviews", publicHandler.ListReviews)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart", publicHandler.AddCartItem)
			user.DELETE("/cart", publicHandler.RemoveCartItem)
			user.PATCH("/cart/quantity", publicHandler.UpdateCartQuantity)
			user.POST("/cart/coupon", RateLimitMiddleware(redisClient, couponRule, KeyByUserID), publicHandler.ApplyCoupon)
			user.POST("/cart/contact", publicHandler.UpdateCartContact)

			user.POST("/orders", RateLimitMiddleware(redisClient, checkoutRule, KeyByUserID), publicHandler.PlaceOrder)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.POST("/orders/:id/cancel", publicHandler.CancelOrder)

			user.GET("/recommendations", publicHandler.Recommendations)
			user.POST("/reviews", publicHandler.CreateReview)
		}

		admin := apiV1.Group("/admin")
		{
			authorized := admin.Use(AdminJWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/products", adminHandler.ListProducts)
				authorized.GET("/products/:id", adminHandler.GetProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)
				authorized.POST("/products/:id/variants", adminHandler.CreateVariant)
				authorized.PUT("/products/:id/variants/:variantId", adminHandler.UpdateVariant)
				authorized.DELETE("/products/:id/variants/:variantId", adminHandler.DeleteVariant)

				authorized.GET("/categories", adminHandler.ListCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)

				authorized.GET("/coupons", adminHandler.ListCoupons)
				authorized.GET("/coupons/:id", adminHandler.GetCoupon)
				authorized.POST("/coupons", adminHandler.CreateCoupon)
				authorized.PUT("/coupons/:id", adminHandler.UpdateCoupon)
				authorized.DELETE("/coupons/:id", adminHandler.DeleteCoupon)

				authorized.GET("/orders", adminHandler.ListOrders)
				authorized.GET("/orders/:id", adminHandler.GetOrder)
				authorized.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)
				authorized.POST("/orders/:id/cancel", adminHandler.CancelOrder)

				authorized.DELETE("/reviews/:id", adminHandler.DeleteReview)
			}
		}
	}

	return r
}
