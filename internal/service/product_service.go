package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/techgear-vn/techgear/internal/cache"
	"github.com/techgear-vn/techgear/internal/logger"
	"github.com/techgear-vn/techgear/internal/models"
	"github.com/techgear-vn/techgear/internal/repository"
)

// ProductService serves the catalog read side and the dashboard CRUD.
// Product detail reads go through the cache when it is enabled.
type ProductService struct {
	productRepo  repository.ProductRepository
	variantRepo  repository.VariantRepository
	categoryRepo repository.CategoryRepository
	cacheTTL     time.Duration
}

// NewProductService creates a product service.
func NewProductService(
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	categoryRepo repository.CategoryRepository,
	cacheTTL time.Duration,
) *ProductService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &ProductService{
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		categoryRepo: categoryRepo,
		cacheTTL:     cacheTTL,
	}
}

// List queries the storefront product list.
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetBySlug fetches one active product for the storefront, cached.
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrProductNotFound
	}

	cacheKey := productCacheKey(slug)
	var cached models.Product
	hit, err := cache.GetJSON(ctx, cacheKey, &cached)
	if err != nil {
		logger.Warnw("product_cache_read_failed", "slug", slug, "error", err)
	}
	if hit {
		return &cached, nil
	}

	product, err := s.productRepo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if err := cache.SetJSON(ctx, cacheKey, product, s.cacheTTL); err != nil {
		logger.Warnw("product_cache_write_failed", "slug", slug, "error", err)
	}
	return product, nil
}

// GetByID fetches one product regardless of listing state.
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create inserts a product from the dashboard.
func (s *ProductService) Create(product *models.Product) error {
	if product == nil || strings.TrimSpace(product.Slug) == "" || len(product.NameJSON) == 0 {
		return ErrInvalidInput
	}
	if product.CategoryID > 0 {
		category, err := s.categoryRepo.GetByID(product.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryNotFound
		}
	}
	count, err := s.productRepo.CountBySlug(product.Slug, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugTaken
	}
	return s.productRepo.Create(product)
}

// Update saves a product from the dashboard and drops its cache entry.
func (s *ProductService) Update(ctx context.Context, product *models.Product) error {
	if product == nil || product.ID == 0 {
		return ErrInvalidInput
	}
	existing, err := s.productRepo.GetByID(product.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}
	if product.Slug != existing.Slug {
		count, err := s.productRepo.CountBySlug(product.Slug, &product.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSlugTaken
		}
	}
	if err := s.productRepo.Update(product); err != nil {
		return err
	}
	s.invalidate(ctx, existing.Slug, product.Slug)
	return nil
}

// Delete removes a product from the dashboard.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, product.Slug)
	return nil
}

// CreateVariant adds a variant to a product.
func (s *ProductService) CreateVariant(ctx context.Context, variant *models.ProductVariant) error {
	if variant == nil || variant.ProductID == 0 || strings.TrimSpace(variant.SKU) == "" {
		return ErrInvalidInput
	}
	product, err := s.productRepo.GetByID(variant.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.variantRepo.Create(variant); err != nil {
		return err
	}
	s.invalidate(ctx, product.Slug)
	return nil
}

// UpdateVariant saves a variant.
func (s *ProductService) UpdateVariant(ctx context.Context, variant *models.ProductVariant) error {
	if variant == nil || variant.ID == 0 {
		return ErrInvalidInput
	}
	existing, err := s.variantRepo.GetByID(variant.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrVariantNotFound
	}
	if err := s.variantRepo.Update(variant); err != nil {
		return err
	}
	s.invalidateProductID(ctx, existing.ProductID)
	return nil
}

// DeleteVariant removes a variant.
func (s *ProductService) DeleteVariant(ctx context.Context, id uint) error {
	existing, err := s.variantRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrVariantNotFound
	}
	if err := s.variantRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateProductID(ctx, existing.ProductID)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, slugs ...string) {
	for _, slug := range slugs {
		if slug == "" {
			continue
		}
		if err := cache.Del(ctx, productCacheKey(slug)); err != nil {
			logger.Warnw("product_cache_del_failed", "slug", slug, "error", err)
		}
	}
}

func (s *ProductService) invalidateProductID(ctx context.Context, productID uint) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil || product == nil {
		return
	}
	s.invalidate(ctx, product.Slug)
}

func productCacheKey(slug string) string {
	return fmt.Sprintf("product:slug:%s", slug)
}
