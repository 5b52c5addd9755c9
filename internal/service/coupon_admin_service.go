package service

import (
	"strings"

	"github.com/techgear-vn/techgear/internal/models"
	"github.com/techgear-vn/techgear/internal/repository"
)

// CouponAdminService is the dashboard CRUD for coupons.
type CouponAdminService struct {
	couponRepo repository.CouponRepository
}

// NewCouponAdminService creates a coupon admin service.
func NewCouponAdminService(couponRepo repository.CouponRepository) *CouponAdminService {
	return &CouponAdminService{couponRepo: couponRepo}
}

// List queries the coupon list.
func (s *CouponAdminService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.couponRepo.List(filter)
}

// Get fetches one coupon.
func (s *CouponAdminService) Get(id uint) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// Create inserts a coupon. Codes are stored uppercase and must be
// unique.
func (s *CouponAdminService) Create(coupon *models.Coupon) error {
	if coupon == nil {
		return ErrInvalidInput
	}
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if coupon.Code == "" || coupon.Quantity < 0 || coupon.Discount.IsNegative() {
		return ErrInvalidInput
	}
	if len(coupon.ProductScope) == 0 {
		return ErrInvalidInput
	}
	existing, err := s.couponRepo.GetByCode(coupon.Code)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrSlugTaken
	}
	return s.couponRepo.Create(coupon)
}

// Update saves a coupon.
func (s *CouponAdminService) Update(coupon *models.Coupon) error {
	if coupon == nil || coupon.ID == 0 {
		return ErrInvalidInput
	}
	existing, err := s.couponRepo.GetByID(coupon.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCouponNotFound
	}
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if coupon.Code != existing.Code {
		clash, err := s.couponRepo.GetByCode(coupon.Code)
		if err != nil {
			return err
		}
		if clash != nil && clash.ID != coupon.ID {
			return ErrSlugTaken
		}
	}
	return s.couponRepo.Update(coupon)
}

// Delete removes a coupon.
func (s *CouponAdminService) Delete(id uint) error {
	existing, err := s.couponRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCouponNotFound
	}
	return s.couponRepo.Delete(id)
}
