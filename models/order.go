package models

import (
	"time"

	"github.com/google/uuid"
)

// Order status constants.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Payment status constants.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Order is a customer order with its line items and payment trace.
type Order struct {
	ID             uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string      `gorm:"not null" json:"name"`
	Email          string      `gorm:"not null;index" json:"email"`
	Phone          string      `gorm:"size:20" json:"phone"`
	Address        string      `gorm:"size:500" json:"address"`
	Total          float64     `gorm:"not null" json:"total"`
	Status         string      `gorm:"type:varchar(32);not null;default:'pending'" json:"status"`
	IsPaid         bool        `gorm:"not null;default:false" json:"is_paid"`
	IsCustomized   bool        `gorm:"not null;default:false" json:"is_customized"`
	CustomizedFile string      `gorm:"size:512" json:"customized_file,omitempty"`
	UserID         *uuid.UUID  `gorm:"type:uuid;index" json:"user_id,omitempty"`
	UpdatedBy      *uuid.UUID  `gorm:"type:uuid" json:"updated_by,omitempty"`
	Items          []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payments       []Payment   `gorm:"constraint:OnDelete:CASCADE" json:"payments,omitempty"`
	CreatedAt      time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

// OrderItem is one line of an order. Price is the unit price snapshot
// taken at creation time.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	// CustomizationImages holds the buyer's composed selection as JSON.
	CustomizationImages string    `gorm:"type:jsonb" json:"customization_images,omitempty"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Payment is one payment trace row attached to an order, distinct from
// the order's own is_paid flag.
type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	Order         *Order    `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Amount        float64   `gorm:"not null" json:"amount"`
	Method        string    `gorm:"size:50;not null" json:"method"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TransactionID string    `gorm:"size:100" json:"transaction_id,omitempty"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PreOrder maps a user's composed final product onto a product before
// checkout.
type PreOrder struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	// FinalProduct holds the composed customization selection as JSON.
	FinalProduct string    `gorm:"type:jsonb" json:"final_product,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// OrderItemInput is one submitted line item.
type OrderItemInput struct {
	ProductID           string   `json:"product_id" binding:"required,uuid"`
	Quantity            int      `json:"quantity" binding:"required,min=1"`
	CustomizationImages []string `json:"customization_images"`
	FinalProduct        string   `json:"final_product"`
}

// PaymentInput is the payment trio submitted with an order.
type PaymentInput struct {
	Method        string  `json:"method" binding:"required,max=50"`
	Amount        float64 `json:"amount" binding:"required,gte=0"`
	Status        string  `json:"status" binding:"required,oneof=pending completed failed"`
	TransactionID string  `json:"transaction_id" binding:"omitempty,max=100"`
	Notes         string  `json:"notes"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	Name         string           `json:"name" binding:"required,max=255"`
	Email        string           `json:"email" binding:"required,email"`
	Phone        string           `json:"phone" binding:"required,max=20"`
	Address      string           `json:"address" binding:"required,max=500"`
	Total        float64          `json:"total" binding:"required,gte=0"`
	IsCustomized bool             `json:"is_customized"`
	Items        []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	Payment      PaymentInput     `json:"payment" binding:"required"`
}

// UpdateOrderItemInput upserts a line item by id presence.
type UpdateOrderItemInput struct {
	ID        string `json:"id" binding:"omitempty,uuid"`
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateOrderPaymentInput upserts a payment row by id presence.
type UpdateOrderPaymentInput struct {
	ID            string   `json:"id" binding:"omitempty,uuid"`
	Amount        *float64 `json:"amount" binding:"omitempty,gte=0"`
	Method        string   `json:"method" binding:"omitempty,max=50"`
	Status        string   `json:"status" binding:"omitempty,oneof=pending completed failed"`
	TransactionID string   `json:"transaction_id"`
	Notes         string   `json:"notes"`
}

// UpdateOrderRequest is the admin partial-update payload.
type UpdateOrderRequest struct {
	Name         *string                   `json:"name" binding:"omitempty,max=255"`
	Email        *string                   `json:"email" binding:"omitempty,email"`
	Phone        *string                   `json:"phone" binding:"omitempty,max=20"`
	Address      *string                   `json:"address" binding:"omitempty,max=500"`
	Status       *string                   `json:"status" binding:"omitempty,oneof=pending processing completed cancelled"`
	IsPaid       *bool                     `json:"is_paid"`
	IsCustomized *bool                     `json:"is_customized"`
	Items        []UpdateOrderItemInput    `json:"items" binding:"omitempty,dive"`
	Payments     []UpdateOrderPaymentInput `json:"payments" binding:"omitempty,dive"`
}

// PreOrderRequest is the payload for creating a pre-order.
type PreOrderRequest struct {
	ProductID    string `json:"product_id" binding:"required,uuid"`
	Quantity     int    `json:"quantity" binding:"required,min=1"`
	FinalProduct string `json:"final_product"`
}
