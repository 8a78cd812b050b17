package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking statuses.
const (
	BookingRequested = "requested"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Booking is a showroom visit or design consultation request submitted
// through the public site.
type Booking struct {
	BaseModel
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `gorm:"index" json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	PreferredAt   time.Time `json:"preferred_at"`
	Service       string    `json:"service"`
	Message       string    `json:"message"`
	Status        string    `gorm:"index" json:"status"`
}

// QuoteRequest is a bespoke-furniture quote enquiry.
type QuoteRequest struct {
	BaseModel
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `gorm:"index" json:"customer_email"`
	CustomerPhone string     `json:"customer_phone"`
	ProductID     *uuid.UUID `gorm:"type:uuid" json:"product_id"`
	Description   string     `json:"description"`
	BudgetMin     int64      `json:"budget_min"`
	BudgetMax     int64      `json:"budget_max"`
	Handled       bool       `json:"handled"`
}

// ContactRequest is a plain contact-form submission.
type ContactRequest struct {
	BaseModel
	Name    string `json:"name"`
	Email   string `gorm:"index" json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Handled bool   `json:"handled"`
}
