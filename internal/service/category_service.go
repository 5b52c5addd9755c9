package service

import (
	"context"
	"strings"
	"time"

	"github.com/techgear-vn/techgear/internal/cache"
	"github.com/techgear-vn/techgear/internal/logger"
	"github.com/techgear-vn/techgear/internal/models"
	"github.com/techgear-vn/techgear/internal/repository"
)

const categoryListCacheKey = "category:list"

// CategoryService serves the category listing and the dashboard CRUD.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	cacheTTL     time.Duration
}

// NewCategoryService creates a category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, cacheTTL time.Duration) *CategoryService {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &CategoryService{categoryRepo: categoryRepo, cacheTTL: cacheTTL}
}

// List fetches all categories, cached.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	hit, err := cache.GetJSON(ctx, categoryListCacheKey, &cached)
	if err != nil {
		logger.Warnw("category_cache_read_failed", "error", err)
	}
	if hit {
		return cached, nil
	}

	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, categoryListCacheKey, categories, s.cacheTTL); err != nil {
		logger.Warnw("category_cache_write_failed", "error", err)
	}
	return categories, nil
}

// Get fetches one category.
func (s *CategoryService) Get(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create inserts a category from the dashboard.
func (s *CategoryService) Create(ctx context.Context, category *models.Category) error {
	if category == nil || strings.TrimSpace(category.Slug) == "" || len(category.NameJSON) == 0 {
		return ErrInvalidInput
	}
	count, err := s.categoryRepo.CountBySlug(category.Slug, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugTaken
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Update saves a category from the dashboard.
func (s *CategoryService) Update(ctx context.Context, category *models.Category) error {
	if category == nil || category.ID == 0 {
		return ErrInvalidInput
	}
	existing, err := s.categoryRepo.GetByID(category.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCategoryNotFound
	}
	if category.Slug != existing.Slug {
		count, err := s.categoryRepo.CountBySlug(category.Slug, &category.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrSlugTaken
		}
	}
	if err := s.categoryRepo.Update(category); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes a category from the dashboard.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	existing, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCategoryNotFound
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	if err := cache.Del(ctx, categoryListCacheKey); err != nil {
		logger.Warnw("category_cache_del_failed", "error", err)
	}
}
