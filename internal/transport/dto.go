// Package transport defines the typed request/response contracts of the RPC
// surface. Monetary fields are integer minor-units everywhere else in the
// repo; the conversion to decimal major-units happens here and only here.
package transport

import (
	"time"

	"github.com/mvalodim/pet_shop/internal/models"
)

func Major(cents int64) float64 {
	return float64(cents) / 100
}

func majorPtr(cents *int64) *float64 {
	if cents == nil {
		return nil
	}
	v := Major(*cents)
	return &v
}

// ===== products & categories =====

type ProductResponse struct {
	ID              uint      `json:"id"`
	CategoryID      uint      `json:"category_id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	LongDescription string    `json:"long_description"`
	Price           float64   `json:"price"`
	OriginalPrice   *float64  `json:"original_price"`
	Image           string    `json:"image"`
	Images          string    `json:"images"`
	Stock           uint      `json:"stock"`
	SKU             *string   `json:"sku"`
	IsActive        bool      `json:"is_active"`
	Rating          float64   `json:"rating"`
	ReviewCount     uint      `json:"review_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ProductFromModel(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		CategoryID:      p.CategoryID,
		Name:            p.Name,
		Slug:            p.Slug,
		Description:     p.Description,
		LongDescription: p.LongDescription,
		Price:           Major(p.Price),
		OriginalPrice:   majorPtr(p.OriginalPrice),
		Image:           p.Image,
		Images:          p.Images,
		Stock:           p.Stock,
		SKU:             p.SKU,
		IsActive:        p.IsActive,
		Rating:          Major(p.Rating),
		ReviewCount:     p.ReviewCount,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func ProductsFromModels(ps []models.Product) []ProductResponse {
	out := make([]ProductResponse, len(ps))
	for i := range ps {
		out[i] = ProductFromModel(&ps[i])
	}
	return out
}

// Admin catalog management; prices arrive already in minor-units.
type CreateProductRequest struct {
	CategoryID      uint   `json:"category_id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Description     string `json:"description"`
	LongDescription string `json:"long_description"`
	Price           int64  `json:"price"`
	OriginalPrice   *int64 `json:"original_price"`
	Image           string `json:"image"`
	Stock           uint   `json:"stock"`
	SKU             *string `json:"sku"`
}

type UpdateProductRequest struct {
	CategoryID      *uint   `json:"category_id"`
	Name            *string `json:"name"`
	Slug            *string `json:"slug"`
	Description     *string `json:"description"`
	LongDescription *string `json:"long_description"`
	Price           *int64  `json:"price"`
	OriginalPrice   *int64  `json:"original_price"`
	Image           *string `json:"image"`
	Stock           *uint   `json:"stock"`
	IsActive        *bool   `json:"is_active"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Image       string `json:"image"`
}

// ===== cart =====

type AddCartItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity uint `json:"quantity"`
}

// CartItemResponse joins the row with the product as it is now (live join,
// not the purchase-time snapshot); Product is null when it was deleted.
type CartItemResponse struct {
	ID        uint             `json:"id"`
	ProductID uint             `json:"product_id"`
	Quantity  uint             `json:"quantity"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Product   *ProductResponse `json:"product"`
}

// ===== reviews =====

type CreateReviewRequest struct {
	ProductID uint   `json:"product_id"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
}

// ===== orders =====

type CreateOrderRequest struct {
	PaymentMethod   string `json:"payment_method"`
	ShippingAddress string `json:"shipping_address"`
	BillingAddress  string `json:"billing_address"`
	Notes           string `json:"notes"`
}

type CreateOrderResponse struct {
	OrderID       uint    `json:"order_id"`
	OrderNumber   string  `json:"order_number"`
	Total         float64 `json:"total"`
	PaymentMethod string  `json:"payment_method"`
}

type OrderResponse struct {
	ID              uint      `json:"id"`
	OrderNumber     string    `json:"order_number"`
	UserID          string    `json:"user_id"`
	Status          string    `json:"status"`
	PaymentMethod   string    `json:"payment_method"`
	PaymentStatus   string    `json:"payment_status"`
	Subtotal        float64   `json:"subtotal"`
	ShippingCost    float64   `json:"shipping_cost"`
	Discount        float64   `json:"discount"`
	Total           float64   `json:"total"`
	ShippingAddress string    `json:"shipping_address"`
	BillingAddress  string    `json:"billing_address"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func OrderFromModel(o *models.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		Status:          string(o.Status),
		PaymentMethod:   string(o.PaymentMethod),
		PaymentStatus:   string(o.PaymentStatus),
		Subtotal:        Major(o.Subtotal),
		ShippingCost:    Major(o.ShippingCost),
		Discount:        Major(o.Discount),
		Total:           Major(o.Total),
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

type OrderItemResponse struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    uint    `json:"quantity"`
	Price       float64 `json:"price"`
}

func OrderItemFromModel(i *models.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:          i.ID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Quantity:    i.Quantity,
		Price:       Major(i.Price),
	}
}

type PaymentResponse struct {
	ID            uint      `json:"id"`
	OrderID       uint      `json:"order_id"`
	TransactionID string    `json:"transaction_id"`
	Method        string    `json:"method"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func PaymentFromModel(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		TransactionID: p.TransactionID,
		Method:        string(p.Method),
		Amount:        Major(p.Amount),
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
	}
}

type OrderDetailResponse struct {
	OrderResponse
	Items   []OrderItemResponse `json:"items"`
	Payment *PaymentResponse    `json:"payment"`
}

type UpdateOrderStatusRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"payment_status"`
}

// ===== auth =====

type SessionRequest struct {
	Token string `json:"token"`
}
