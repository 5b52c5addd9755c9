package service

import (
	"strings"

	"github.com/techgear-vn/techgear/internal/constants"
	"github.com/techgear-vn/techgear/internal/models"
	"github.com/techgear-vn/techgear/internal/repository"
)

// CreateReviewInput is the review submission request.
type CreateReviewInput struct {
	UserID    uint
	ProductID uint
	Rating    int
	Content   string
	Captcha   CaptchaVerifyPayload
}

// ReviewSummary aggregates a product's review stats.
type ReviewSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// ReviewService manages product reviews. Submission can be gated by an
// image challenge.
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	captcha     *CaptchaService
}

// NewReviewService creates a review service.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	captcha *CaptchaService,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		captcha:     captcha,
	}
}

// Create validates and stores a review.
func (s *ReviewService) Create(input CreateReviewInput) (*models.Review, error) {
	if input.UserID == 0 || input.ProductID == 0 {
		return nil, ErrInvalidInput
	}
	if input.Rating < constants.ReviewRatingMin || input.Rating > constants.ReviewRatingMax {
		return nil, ErrInvalidRating
	}
	if s.captcha != nil {
		if err := s.captcha.Verify("create_review", input.Captcha); err != nil {
			return nil, err
		}
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	// One review per user per product.
	existing, err := s.reviewRepo.GetByUserAndProduct(input.UserID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrReviewExists
	}

	displayName := ""
	if user, err := s.userRepo.GetByID(input.UserID); err == nil && user != nil {
		displayName = user.DisplayName
	}

	review := &models.Review{
		ProductID:   input.ProductID,
		UserID:      input.UserID,
		Rating:      input.Rating,
		Content:     strings.TrimSpace(input.Content),
		DisplayName: displayName,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListByProduct fetches a product's reviews plus its rating summary.
func (s *ReviewService) ListByProduct(productID uint, page, pageSize int) ([]models.Review, int64, *ReviewSummary, error) {
	if productID == 0 {
		return nil, 0, nil, ErrInvalidInput
	}
	reviews, total, err := s.reviewRepo.List(repository.ReviewListFilter{
		ProductID: productID,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, 0, nil, err
	}
	avg, count, err := s.reviewRepo.AverageRating(productID)
	if err != nil {
		return nil, 0, nil, err
	}
	return reviews, total, &ReviewSummary{Average: avg, Count: count}, nil
}

// Delete removes a review from the dashboard.
func (s *ReviewService) Delete(id uint) error {
	existing, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrReviewNotFound
	}
	return s.reviewRepo.Delete(id)
}
