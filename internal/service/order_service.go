package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/techgear-vn/techgear/internal/constants"
	"github.com/techgear-vn/techgear/internal/logger"
	"github.com/techgear-vn/techgear/internal/models"
	"github.com/techgear-vn/techgear/internal/queue"
	"github.com/techgear-vn/techgear/internal/repository"
)

// PlaceOrderInput is the checkout request. Contact fields override the
// contact stored on the cart when present.
type PlaceOrderInput struct {
	UserID         uint
	PaymentType    string
	ContactName    string
	ContactPhone   string
	ContactAddress string
	ClientIP       string
}

// OrderService turns carts into orders and walks orders through their
// status lifecycle. Cancellation restores the stock and coupon use the
// order consumed.
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
	couponRepo  repository.CouponRepository
	queueClient *queue.Client
}

// NewOrderService creates an order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	couponRepo repository.CouponRepository,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		variantRepo: variantRepo,
		couponRepo:  couponRepo,
		queueClient: queueClient,
	}
}

// PlaceOrder creates a cash-on-delivery order from the user's cart and
// deletes the cart. Stock stays consumed: the cart already holds it.
func (s *OrderService) PlaceOrder(input PlaceOrderInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}
	paymentType := strings.ToLower(strings.TrimSpace(input.PaymentType))
	if paymentType == "" {
		paymentType = constants.PaymentTypeCOD
	}
	if paymentType != constants.PaymentTypeCOD {
		return nil, ErrPaymentTypeUnsupported
	}

	var order *models.Order
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)
		couponRepo := s.couponRepo.WithTx(tx)

		cart, err := cartRepo.GetByUser(input.UserID)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrCartNotFound
		}
		if len(cart.Items) == 0 {
			return ErrCartEmpty
		}

		contactName := firstNonEmpty(input.ContactName, cart.ContactName)
		contactPhone := firstNonEmpty(input.ContactPhone, cart.ContactPhone)
		contactAddress := firstNonEmpty(input.ContactAddress, cart.ContactAddress)
		if contactName == "" || contactPhone == "" || contactAddress == "" {
			return ErrContactIncomplete
		}

		subtotal := lineSubtotal(cart.Items)
		total := subtractToZero(subtotal, cart.CouponDiscount)

		now := time.Now()
		order = &models.Order{
			OrderNo:        generateOrderNo(),
			UserID:         input.UserID,
			Status:         constants.OrderStatusPending,
			PaymentType:    paymentType,
			OriginalAmount: subtotal,
			DiscountAmount: cart.CouponDiscount,
			TotalAmount:    total,
			CouponCode:     cart.CouponCode,
			ContactName:    contactName,
			ContactPhone:   contactPhone,
			ContactAddress: contactAddress,
			ClientIP:       input.ClientIP,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if cart.HasCoupon() {
			coupon, err := couponRepo.GetByCode(cart.CouponCode)
			if err != nil {
				return err
			}
			if coupon != nil {
				order.CouponID = &coupon.ID
			}
		}

		order.Items = make([]models.OrderItem, 0, len(cart.Items))
		for i := range cart.Items {
			item := &cart.Items[i]
			var nameSnapshot models.JSON
			if item.Product != nil {
				nameSnapshot = item.Product.NameJSON
			}
			order.Items = append(order.Items, models.OrderItem{
				ProductID:       item.ProductID,
				VariantID:       item.VariantID,
				SKU:             item.SKU,
				NameJSON:        nameSnapshot,
				VariantInfoJSON: item.VariantInfoJSON,
				UnitPrice:       item.UnitPrice,
				Quantity:        item.Quantity,
				TotalPrice:      item.LineTotal(),
				CreatedAt:       now,
				UpdatedAt:       now,
			})
		}

		if err := orderRepo.Create(order); err != nil {
			return err
		}
		return cartRepo.Delete(cart.ID)
	})
	if err != nil {
		return nil, err
	}

	s.trackPurchases(order)
	return order, nil
}

// CancelOrder cancels a pending order on behalf of its owner, giving
// back the stock and coupon use it held.
func (s *OrderService) CancelOrder(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return s.cancel(order)
}

// AdminCancelOrder cancels an order from the dashboard. Allowed from
// any status before delivery.
func (s *OrderService) AdminCancelOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.cancel(order)
}

func (s *OrderService) cancel(order *models.Order) (*models.Order, error) {
	switch order.Status {
	case constants.OrderStatusPending, constants.OrderStatusConfirmed, constants.OrderStatusShipping:
	default:
		return nil, ErrOrderStatusTransition
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		variantRepo := s.variantRepo.WithTx(tx)
		couponRepo := s.couponRepo.WithTx(tx)

		affected, err := orderRepo.UpdateStatus(order.ID, order.Status, constants.OrderStatusCancelled)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrOrderStatusTransition
		}

		for i := range order.Items {
			item := &order.Items[i]
			if item.VariantID != nil {
				restored, err := variantRepo.RestoreStock(*item.VariantID, item.Quantity)
				if err != nil {
					return err
				}
				if restored > 0 {
					continue
				}
			}
			if _, err := productRepo.RestoreStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if order.CouponID != nil {
			if _, err := couponRepo.RestoreQuantity(*order.CouponID); err != nil {
				return err
			}
		}

		now := time.Now()
		order.Status = constants.OrderStatusCancelled
		order.CancelledAt = &now
		return tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"cancelled_at": now,
				"updated_at":   now,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// AdvanceStatus moves an order one step through
// pending -> confirmed -> shipping -> delivered.
func (s *OrderService) AdvanceStatus(orderID uint, toStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	fromStatus, ok := allowedPredecessor[toStatus]
	if !ok || order.Status != fromStatus {
		return nil, ErrOrderStatusTransition
	}

	affected, err := s.orderRepo.UpdateStatus(order.ID, fromStatus, toStatus)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrOrderStatusTransition
	}
	order.Status = toStatus

	if toStatus == constants.OrderStatusDelivered {
		now := time.Now()
		order.DeliveredAt = &now
		if err := models.DB.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"delivered_at": now,
				"updated_at":   now,
			}).Error; err != nil {
			return nil, err
		}
	}
	return order, nil
}

// allowedPredecessor maps each forward status to the only status it
// may be entered from.
var allowedPredecessor = map[string]string{
	constants.OrderStatusConfirmed: constants.OrderStatusPending,
	constants.OrderStatusShipping:  constants.OrderStatusConfirmed,
	constants.OrderStatusDelivered: constants.OrderStatusShipping,
}

// ListByUser fetches the user's orders.
func (s *OrderService) ListByUser(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	if userID == 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.orderRepo.List(repository.OrderListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetForUser fetches one order owned by the user.
func (s *OrderService) GetForUser(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// AdminList fetches orders for the dashboard.
func (s *OrderService) AdminList(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// AdminGet fetches one order for the dashboard.
func (s *OrderService) AdminGet(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// trackPurchases enqueues one engagement signal per purchased product.
// Failures only log; checkout already committed.
func (s *OrderService) trackPurchases(order *models.Order) {
	if order == nil || s.queueClient == nil {
		return
	}
	for i := range order.Items {
		item := &order.Items[i]
		err := s.queueClient.EnqueueInteractionTrack(queue.InteractionTrackPayload{
			UserID:    order.UserID,
			ProductID: item.ProductID,
			Type:      constants.InteractionTypePurchase,
			Weight:    constants.InteractionWeightPurchase,
		})
		if err != nil {
			logger.Warnw("interaction_track_enqueue_failed",
				"order_no", order.OrderNo,
				"product_id", item.ProductID,
				"error", err,
			)
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("TG%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
