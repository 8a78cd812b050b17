package models

import (
	"github.com/google/uuid"
)

// Invoice statuses, derived from the order status at invoicing time.
const (
	InvoiceDraft   = "draft"
	InvoicePending = "pending"
	InvoicePaid    = "paid"
)

// Invoice is a frozen snapshot of an order at the moment of invoicing.
// Later product edits never alter it; the only mutation after creation is
// attaching the rendered PDF URL.
type Invoice struct {
	BaseModel
	Number        string        `gorm:"uniqueIndex" json:"number"`
	OrderID       uuid.UUID     `gorm:"type:uuid;index" json:"order_id"`
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email"`
	AddressLine   string        `json:"address_line"`
	City          string        `json:"city"`
	Postcode      string        `json:"postcode"`
	Subtotal      int64         `json:"subtotal"`
	Tax           int64         `json:"tax"`
	Shipping      int64         `json:"shipping"`
	Total         int64         `json:"total"`
	Currency      string        `json:"currency"`
	PaymentMethod string        `json:"payment_method"`
	Status        string        `json:"status"`
	PDFURL        string        `json:"pdf_url,omitempty"`
	Items         []InvoiceItem `json:"items,omitempty"`
}

// InvoiceItem is a frozen copy of an order line.
type InvoiceItem struct {
	BaseModel
	InvoiceID   uuid.UUID `gorm:"type:uuid;index" json:"invoice_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int64     `json:"unit_price"`
	LineTotal   int64     `json:"line_total"`
}
