package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mvalodim/pet_shop/internal/models"
)

var ErrEmptyCart = errors.New("cart is empty")

// OrderDraft is everything PlaceOrder needs besides the cart itself.
type OrderDraft struct {
	UserID          string
	OrderNumber     string
	PaymentMethod   models.PaymentMethod
	ShippingCost    int64
	ShippingAddress string
	BillingAddress  string
	Notes           string
	TransactionID   string
}

// PlaceOrder turns the user's cart into an order inside a single transaction:
// load cart, snapshot each line at the product's current price (lines whose
// product vanished are skipped), insert the order and its items, clear the
// cart, insert the pending payment. Any failure rolls the whole thing back.
func (r *GormRepo) PlaceOrder(ctx context.Context, draft OrderDraft) (*models.Order, error) {
	var order models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart []models.CartItem
		if err := tx.Where("user_id = ?", draft.UserID).Order("id ASC").Find(&cart).Error; err != nil {
			return err
		}
		if len(cart) == 0 {
			return ErrEmptyCart
		}

		var subtotal int64
		var items []models.OrderItem
		for _, line := range cart {
			var product models.Product
			err := tx.Where("id = ?", line.ProductID).First(&product).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			subtotal += product.Price * int64(line.Quantity)
			items = append(items, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				Price:       product.Price,
			})
		}

		order = models.Order{
			OrderNumber:     draft.OrderNumber,
			UserID:          draft.UserID,
			Status:          models.OrderStatusPending,
			PaymentMethod:   draft.PaymentMethod,
			PaymentStatus:   models.PaymentStatusPending,
			Subtotal:        subtotal,
			ShippingCost:    draft.ShippingCost,
			Discount:        0,
			Total:           subtotal + draft.ShippingCost,
			ShippingAddress: draft.ShippingAddress,
			BillingAddress:  draft.BillingAddress,
			Notes:           draft.Notes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", draft.UserID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		payment := models.Payment{
			OrderID:       order.ID,
			TransactionID: draft.TransactionID,
			Method:        draft.PaymentMethod,
			Amount:        order.Total,
			Status:        models.PaymentStatusPending,
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Where("id = ?", orderID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetOrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetPaymentByOrder(ctx context.Context, orderID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// UpdateOrderStatus rewrites the order's status columns and mirrors a payment
// status change onto the order's payment row in the same transaction.
func (r *GormRepo) UpdateOrderStatus(ctx context.Context, orderID uint, status *models.OrderStatus, paymentStatus *models.PaymentStatus) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", orderID).First(&order).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"updated_at": time.Now().UTC()}
		if status != nil {
			order.Status = *status
			updates["status"] = *status
		}
		if paymentStatus != nil {
			order.PaymentStatus = *paymentStatus
			updates["payment_status"] = *paymentStatus
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", orderID).Updates(updates).Error; err != nil {
			return err
		}

		if paymentStatus != nil {
			if err := tx.Model(&models.Payment{}).Where("order_id = ?", orderID).
				Updates(map[string]interface{}{
					"status":     *paymentStatus,
					"updated_at": time.Now().UTC(),
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
