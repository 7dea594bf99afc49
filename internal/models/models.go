package models

import (
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodPix        PaymentMethod = "pix"
	PaymentMethodBoleto     PaymentMethod = "boleto"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCreditCard || m == PaymentMethodPix || m == PaymentMethodBoleto
}

// User identity comes from the external auth provider, so the ID is the
// provider's subject string rather than an autoincrement.
type User struct {
	ID           string    `gorm:"primaryKey;size:64"       json:"id"`
	Name         string    `json:"name"`
	Email        string    `gorm:"size:320"                 json:"email"`
	LoginMethod  string    `gorm:"size:64"                  json:"login_method"`
	Role         Role      `gorm:"not null;default:user"    json:"role"`
	Phone        string    `gorm:"size:20"                  json:"phone"`
	Address      string    `json:"address"`
	City         string    `gorm:"size:100"                 json:"city"`
	State        string    `gorm:"size:2"                   json:"state"`
	ZipCode      string    `gorm:"size:10"                  json:"zip_code"`
	CreatedAt    time.Time `json:"created_at"`
	LastSignedIn time.Time `json:"last_signed_in"`
}

type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null;size:100"        json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null"     json:"slug"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

// Product monetary columns (Price, OriginalPrice) are integer minor-units;
// Rating is the 0-5 average scaled by 100 (450 = 4.5 stars).
type Product struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID      uint      `gorm:"index;not null"           json:"category_id"`
	Name            string    `gorm:"not null"                 json:"name"`
	Slug            string    `gorm:"uniqueIndex;not null"     json:"slug"`
	Description     string    `json:"description"`
	LongDescription string    `json:"long_description"`
	Price           int64     `gorm:"not null"                 json:"price"`
	OriginalPrice   *int64    `json:"original_price"`
	Image           string    `gorm:"not null"                 json:"image"`
	Images          string    `json:"images"`
	Stock           uint      `gorm:"not null;default:0"       json:"stock"`
	SKU             *string   `gorm:"uniqueIndex;size:100"     json:"sku"`
	IsActive        bool      `gorm:"not null;default:true"    json:"is_active"`
	Rating          int64     `gorm:"default:0"                json:"rating"`
	ReviewCount     uint      `gorm:"default:0"                json:"review_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                      json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_user_product;not null;size:64" json:"user_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_user_product;not null"         json:"product_id"`
	Quantity  uint      `gorm:"not null;default:1;check:quantity>0"           json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Order struct {
	ID              uint          `gorm:"primaryKey;autoIncrement"       json:"id"`
	OrderNumber     string        `gorm:"uniqueIndex;not null;size:50"   json:"order_number"`
	UserID          string        `gorm:"index;not null;size:64"         json:"user_id"`
	Status          OrderStatus   `gorm:"index;not null;default:pending" json:"status"`
	PaymentMethod   PaymentMethod `gorm:"not null"                       json:"payment_method"`
	PaymentStatus   PaymentStatus `gorm:"not null;default:pending"       json:"payment_status"`
	Subtotal        int64         `gorm:"not null"                       json:"subtotal"`
	ShippingCost    int64         `gorm:"not null;default:0"             json:"shipping_cost"`
	Discount        int64         `gorm:"default:0"                      json:"discount"`
	Total           int64         `gorm:"not null"                       json:"total"`
	ShippingAddress string        `json:"shipping_address"`
	BillingAddress  string        `json:"billing_address"`
	Notes           string        `json:"notes"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// OrderItem is a purchase-time snapshot: name and price are copied from the
// product so later edits or deletions never rewrite order history.
type OrderItem struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     uint      `gorm:"index;not null"           json:"order_id"`
	ProductID   uint      `gorm:"not null"                 json:"product_id"`
	ProductName string    `gorm:"not null"                 json:"product_name"`
	Quantity    uint      `gorm:"not null"                 json:"quantity"`
	Price       int64     `gorm:"not null"                 json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

type Review struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID  uint      `gorm:"index;not null"           json:"product_id"`
	UserID     string    `gorm:"index;not null;size:64"   json:"user_id"`
	Rating     int       `gorm:"not null"                 json:"rating"`
	Title      string    `json:"title"`
	Comment    string    `json:"comment"`
	IsVerified bool      `gorm:"default:false"            json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

type Payment struct {
	ID            uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       uint          `gorm:"index;not null"           json:"order_id"`
	TransactionID string        `gorm:"uniqueIndex;size:255"     json:"transaction_id"`
	Method        PaymentMethod `gorm:"not null"                 json:"method"`
	Amount        int64         `gorm:"not null"                 json:"amount"`
	Status        PaymentStatus `gorm:"not null;default:pending" json:"status"`
	PaymentData   string        `json:"payment_data"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
