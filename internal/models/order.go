package models

import (
	"time"

	"github.com/google/uuid"
)

// Order lifecycle statuses.
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPendingCOD     = "pending_cod"
	OrderStatusPaid           = "paid"
	OrderStatusPreparing      = "preparing"
	OrderStatusShipped        = "shipped"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
	OrderStatusRefunded       = "refunded"
)

// Aggregate refund statuses derived from an order's refund history.
const (
	RefundStatusNone    = "none"
	RefundStatusPartial = "partial"
	RefundStatusFull    = "full"
)

// Order payment methods.
const (
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCOD          = "cash_on_delivery"
)

// Order is the financial record of a customer purchase. All amounts are
// integer minor currency units (pence).
type Order struct {
	BaseModel
	OrderNumber   string      `gorm:"uniqueIndex" json:"order_number"`
	Status        string      `gorm:"index" json:"status"`
	RefundStatus  string      `json:"refund_status"`
	PlacedAt      time.Time   `json:"placed_at"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `gorm:"index" json:"customer_email"`
	CustomerPhone string      `json:"customer_phone"`
	AddressLine   string      `json:"address_line"`
	City          string      `json:"city"`
	Postcode      string      `json:"postcode"`
	Subtotal      int64       `json:"subtotal"`
	ShippingFee   int64       `json:"shipping_fee"`
	TotalAmount   int64       `json:"total_amount"`
	Currency      string      `json:"currency"`
	PaymentMethod string      `json:"payment_method"`
	Notes         string      `json:"notes"`
	Items         []OrderItem `json:"items,omitempty"`
	Refunds       []Refund    `json:"refunds,omitempty"`
}

// OrderItem is a checkout-time snapshot of a purchased product line.
type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID  `gorm:"type:uuid;index" json:"order_id"`
	ProductID   *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	ProductName string     `json:"product_name"`
	Quantity    int        `json:"quantity"`
	UnitPrice   int64      `json:"unit_price"`
	LineTotal   int64      `json:"line_total"`
}
