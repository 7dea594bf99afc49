package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mvalodim/pet_shop/internal/logging"
	"github.com/mvalodim/pet_shop/internal/models"
	"github.com/mvalodim/pet_shop/internal/mykafka"
	"github.com/mvalodim/pet_shop/internal/repo"
	"github.com/mvalodim/pet_shop/internal/transport"
)

// ShippingCost is a flat fee in minor-units, regardless of cart contents.
const ShippingCost int64 = 1500

type OrderService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

const orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newOrderNumber builds ORD-<unixmilli>-<9 alnum>. Collisions are possible
// but not retried; the unique index fails the placement as a whole.
func newOrderNumber() string {
	suffix := make([]byte, 9)
	rand.Read(suffix)
	for i := range suffix {
		suffix[i] = orderNumberAlphabet[int(suffix[i])%len(orderNumberAlphabet)]
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

func (s *OrderService) Create(ctx context.Context, userID string, req transport.CreateOrderRequest) (*transport.CreateOrderResponse, error) {
	method := models.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		return nil, fmt.Errorf("unknown payment method %q: %w", req.PaymentMethod, ErrValidation)
	}
	if req.ShippingAddress == "" {
		return nil, fmt.Errorf("shipping_address required: %w", ErrValidation)
	}

	draft := repo.OrderDraft{
		UserID:          userID,
		OrderNumber:     newOrderNumber(),
		PaymentMethod:   method,
		ShippingCost:    ShippingCost,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Notes:           req.Notes,
		TransactionID:   "TXN-" + uuid.NewString(),
	}

	order, err := s.Repo.PlaceOrder(ctx, draft)
	if errors.Is(err, repo.ErrEmptyCart) {
		return nil, fmt.Errorf("%w: nothing to order", ErrEmptyCart)
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]interface{}{
		"type":         "order_created",
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"total":        order.Total,
	})

	return &transport.CreateOrderResponse{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		Total:         transport.Major(order.Total),
		PaymentMethod: string(order.PaymentMethod),
	}, nil
}

func (s *OrderService) GetByUser(ctx context.Context, userID string) ([]transport.OrderResponse, error) {
	orders, err := s.Repo.ListOrders(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]transport.OrderResponse, len(orders))
	for i := range orders {
		out[i] = transport.OrderFromModel(&orders[i])
	}
	return out, nil
}

// GetByID enforces ownership: a missing order and someone else's order are
// both a plain not-found.
func (s *OrderService) GetByID(ctx context.Context, userID string, orderID uint) (*transport.OrderDetailResponse, error) {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}

	items, err := s.Repo.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	detail := transport.OrderDetailResponse{
		OrderResponse: transport.OrderFromModel(order),
		Items:         make([]transport.OrderItemResponse, len(items)),
	}
	for i := range items {
		detail.Items[i] = transport.OrderItemFromModel(&items[i])
	}

	payment, err := s.Repo.GetPaymentByOrder(ctx, orderID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if payment != nil {
		p := transport.PaymentFromModel(payment)
		detail.Payment = &p
	}

	return &detail, nil
}

func (s *OrderService) GetByNumber(ctx context.Context, userID, orderNumber string) (*transport.OrderDetailResponse, error) {
	order, err := s.Repo.GetOrderByNumber(ctx, orderNumber)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order %s: %w", orderNumber, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %s: %w", orderNumber, ErrNotFound)
	}
	return s.GetByID(ctx, userID, order.ID)
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, req transport.UpdateOrderStatusRequest) (*transport.OrderResponse, error) {
	var status *models.OrderStatus
	var paymentStatus *models.PaymentStatus

	if req.Status != nil {
		v := models.OrderStatus(*req.Status)
		if !v.Valid() {
			return nil, fmt.Errorf("unknown order status %q: %w", *req.Status, ErrValidation)
		}
		status = &v
	}
	if req.PaymentStatus != nil {
		v := models.PaymentStatus(*req.PaymentStatus)
		if !v.Valid() {
			return nil, fmt.Errorf("unknown payment status %q: %w", *req.PaymentStatus, ErrValidation)
		}
		paymentStatus = &v
	}
	if status == nil && paymentStatus == nil {
		return nil, fmt.Errorf("nothing to update: %w", ErrValidation)
	}

	order, err := s.Repo.UpdateOrderStatus(ctx, orderID, status, paymentStatus)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	resp := transport.OrderFromModel(order)
	return &resp, nil
}

func (s *OrderService) publish(ctx context.Context, event map[string]interface{}) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, mykafka.TopicOrderEvents, fmt.Sprint(event["user_id"]), event); err != nil {
		logging.FromContext(ctx).Warn("kafka_publish_failed", "error", err)
	}
}
