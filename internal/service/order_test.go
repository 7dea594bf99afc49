package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvalodim/pet_shop/internal/models"
	"github.com/mvalodim/pet_shop/internal/transport"
)

var orderNumberRe = regexp.MustCompile(`^ORD-\d+-[A-Z0-9]{9}$`)

func TestOrderCreate_EmptyCart(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}

	_, err := svc.Create(context.Background(), "user-1", transport.CreateOrderRequest{
		PaymentMethod:   "pix",
		ShippingAddress: "Rua das Flores 10",
	})
	require.ErrorIs(t, err, ErrEmptyCart)

	var count int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOrderCreate_Totals(t *testing.T) {
	r := newTestRepo(t)
	cart := &CartService{Repo: r}
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	p1 := createProduct(t, r, "Premium Dog Food", "premium-dog-food", 2500)
	p2 := createProduct(t, r, "Rubber Bone", "rubber-bone", 1000)

	_, err := cart.AddItem(ctx, "user-1", transport.AddCartItemRequest{ProductID: p1.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = cart.AddItem(ctx, "user-1", transport.AddCartItemRequest{ProductID: p2.ID, Quantity: 1})
	require.NoError(t, err)

	resp, err := svc.Create(ctx, "user-1", transport.CreateOrderRequest{
		PaymentMethod:   "credit_card",
		ShippingAddress: "Rua das Flores 10",
		BillingAddress:  "Rua das Flores 10",
	})
	require.NoError(t, err)

	assert.Regexp(t, orderNumberRe, resp.OrderNumber)
	assert.Equal(t, 75.00, resp.Total)

	order, err := r.GetOrder(ctx, resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), order.Subtotal)
	assert.Equal(t, int64(1500), order.ShippingCost)
	assert.Equal(t, int64(7500), order.Total)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)

	items, err := r.GetOrderItems(ctx, resp.OrderID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Premium Dog Food", items[0].ProductName)
	assert.Equal(t, int64(2500), items[0].Price)

	payment, err := r.GetPaymentByOrder(ctx, resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, int64(7500), payment.Amount)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Regexp(t, `^TXN-`, payment.TransactionID)

	// Placement drains the cart.
	left, err := r.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestOrderCreate_SkipsVanishedProducts(t *testing.T) {
	r := newTestRepo(t)
	cart := &CartService{Repo: r}
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	p1 := createProduct(t, r, "Cat Tree", "cat-tree", 15000)
	p2 := createProduct(t, r, "Scratching Post", "scratching-post", 5000)

	_, err := cart.AddItem(ctx, "user-1", transport.AddCartItemRequest{ProductID: p1.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = cart.AddItem(ctx, "user-1", transport.AddCartItemRequest{ProductID: p2.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, r.DeleteProduct(ctx, p2.ID))

	resp, err := svc.Create(ctx, "user-1", transport.CreateOrderRequest{
		PaymentMethod:   "boleto",
		ShippingAddress: "Av. Central 55",
	})
	require.NoError(t, err)

	order, err := r.GetOrder(ctx, resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), order.Subtotal)

	items, err := r.GetOrderItems(ctx, resp.OrderID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, p1.ID, items[0].ProductID)
}

func TestOrderCreate_Validation(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", transport.CreateOrderRequest{
		PaymentMethod:   "cash",
		ShippingAddress: "Rua das Flores 10",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, "user-1", transport.CreateOrderRequest{
		PaymentMethod: "pix",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrderGetByID_Ownership(t *testing.T) {
	r := newTestRepo(t)
	cart := &CartService{Repo: r}
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	p := createProduct(t, r, "Fish Flakes", "fish-flakes", 700)
	_, err := cart.AddItem(ctx, "user-1", transport.AddCartItemRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	resp, err := svc.Create(ctx, "user-1", transport.CreateOrderRequest{
		PaymentMethod:   "pix",
		ShippingAddress: "Rua das Flores 10",
	})
	require.NoError(t, err)

	detail, err := svc.GetByID(ctx, "user-1", resp.OrderID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	require.NotNil(t, detail.Payment)
	assert.Equal(t, 22.00, detail.Total)

	_, err = svc.GetByID(ctx, "user-2", resp.OrderID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByID(ctx, "user-1", resp.OrderID+999)
	assert.ErrorIs(t, err, ErrNotFound)

	byNumber, err := svc.GetByNumber(ctx, "user-1", resp.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, resp.OrderID, byNumber.ID)

	_, err = svc.GetByNumber(ctx, "user-2", resp.OrderNumber)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByNumber(ctx, "user-1", "ORD-0-AAAAAAAAA")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderUpdateStatus(t *testing.T) {
	r := newTestRepo(t)
	cart := &CartService{Repo: r}
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	p := createProduct(t, r, "Terrarium Heat Lamp", "heat-lamp", 11000)
	_, err := cart.AddItem(ctx, "user-1", transport.AddCartItemRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	resp, err := svc.Create(ctx, "user-1", transport.CreateOrderRequest{
		PaymentMethod:   "credit_card",
		ShippingAddress: "Rua das Flores 10",
	})
	require.NoError(t, err)

	status := "shipped"
	paymentStatus := "completed"
	updated, err := svc.UpdateStatus(ctx, resp.OrderID, transport.UpdateOrderStatusRequest{
		Status:        &status,
		PaymentStatus: &paymentStatus,
	})
	require.NoError(t, err)
	assert.Equal(t, "shipped", updated.Status)
	assert.Equal(t, "completed", updated.PaymentStatus)

	// The payment row mirrors the payment status.
	payment, err := r.GetPaymentByOrder(ctx, resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)

	bad := "teleported"
	_, err = svc.UpdateStatus(ctx, resp.OrderID, transport.UpdateOrderStatusRequest{Status: &bad})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, resp.OrderID, transport.UpdateOrderStatusRequest{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, resp.OrderID+999, transport.UpdateOrderStatusRequest{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)
}
