package models

import (
	"github.com/google/uuid"
)

// Refund statuses. A refund moves pending -> approved -> processed and
// never transitions backward or gets deleted.
const (
	RefundPending   = "pending"
	RefundApproved  = "approved"
	RefundProcessed = "processed"
)

// Refund methods.
const (
	RefundMethodOriginal = "original"
	RefundMethodManual   = "manual"
	RefundMethodCash     = "cash"
)

// Refund is a request to return money against an order. Amount is in
// integer minor currency units and never exceeds the order total.
type Refund struct {
	BaseModel
	OrderID   uuid.UUID  `gorm:"type:uuid;index" json:"order_id"`
	InvoiceID *uuid.UUID `gorm:"type:uuid" json:"invoice_id,omitempty"`
	Amount    int64      `json:"amount"`
	Reason    string     `json:"reason"`
	Method    string     `json:"method"`
	Status    string     `gorm:"index" json:"status"`
}

// RefundMethodLabel maps a refund method token to its display label.
func RefundMethodLabel(method string) string {
	switch method {
	case RefundMethodOriginal:
		return "Original payment method"
	case RefundMethodManual:
		return "Manual bank transfer"
	case RefundMethodCash:
		return "Cash"
	default:
		return method
	}
}
