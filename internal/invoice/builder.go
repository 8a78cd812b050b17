package invoice

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/birchwood/internal/apperr"
	"github.com/example/birchwood/internal/models"
	"github.com/example/birchwood/internal/money"
)

// VATPercent is the fixed VAT rate applied to invoice subtotals.
const VATPercent = 20

// numberAttempts bounds regeneration when a same-millisecond invoice
// number collides on the unique index.
const numberAttempts = 3

// Builder assembles invoices from order snapshots.
type Builder struct {
	db *gorm.DB
}

// NewBuilder constructs a Builder.
func NewBuilder(db *gorm.DB) *Builder {
	return &Builder{db: db}
}

// Create snapshots the order into a new invoice: frozen line items,
// subtotal, fixed-rate VAT (half-up integer rounding), shipping (not yet
// modeled, always 0) and grand total. The invoice status is derived from
// the order status at the moment of invoicing.
func (b *Builder) Create(ctx context.Context, orderID uuid.UUID) (*models.Invoice, error) {
	var order models.Order
	if err := b.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("order", orderID.String())
		}
		return nil, err
	}

	items := make([]models.InvoiceItem, 0, len(order.Items))
	var subtotal int64
	for _, line := range order.Items {
		lineTotal := line.LineTotal
		if lineTotal == 0 {
			lineTotal = line.UnitPrice * int64(line.Quantity)
		}
		items = append(items, models.InvoiceItem{
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   lineTotal,
		})
		subtotal += lineTotal
	}

	tax := money.PercentOf(subtotal, VATPercent)
	var shipping int64

	inv := models.Invoice{
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		AddressLine:   order.AddressLine,
		City:          order.City,
		Postcode:      order.Postcode,
		Subtotal:      subtotal,
		Tax:           tax,
		Shipping:      shipping,
		Total:         subtotal + tax + shipping,
		Currency:      order.Currency,
		PaymentMethod: PaymentMethodLabel(order.PaymentMethod),
		Status:        statusFor(order.Status),
		Items:         items,
	}

	var lastErr error
	for attempt := 0; attempt < numberAttempts; attempt++ {
		inv.Number = NewNumber()
		if err := b.db.WithContext(ctx).Create(&inv).Error; err != nil {
			if isDuplicateNumber(err) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return &inv, nil
	}
	return nil, lastErr
}

// Get loads an invoice with its items.
func (b *Builder) Get(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, error) {
	var inv models.Invoice
	if err := b.db.WithContext(ctx).
		Preload("Items").
		First(&inv, "id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("invoice", invoiceID.String())
		}
		return nil, err
	}
	return &inv, nil
}

// GetByNumber loads an invoice by its public number.
func (b *Builder) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	var inv models.Invoice
	if err := b.db.WithContext(ctx).
		Preload("Items").
		First(&inv, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("invoice", number)
		}
		return nil, err
	}
	return &inv, nil
}

// AttachPDF records the rendered PDF URL. The only permitted mutation of an
// invoice after creation.
func (b *Builder) AttachPDF(ctx context.Context, invoiceID uuid.UUID, url string) error {
	result := b.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", invoiceID).
		Update("pdf_url", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NewNotFound("invoice", invoiceID.String())
	}
	return nil
}

// PaymentMethodLabel maps an order payment-method token to the label shown
// on invoices.
func PaymentMethodLabel(method string) string {
	switch method {
	case models.PaymentMethodCard:
		return "Card payment"
	case models.PaymentMethodBankTransfer:
		return "Bank transfer"
	case models.PaymentMethodCOD:
		return "Cash on delivery"
	default:
		return method
	}
}

func statusFor(orderStatus string) string {
	switch orderStatus {
	case models.OrderStatusPaid:
		return models.InvoicePaid
	case models.OrderStatusPendingPayment, models.OrderStatusPendingCOD:
		return models.InvoicePending
	default:
		return models.InvoiceDraft
	}
}

func isDuplicateNumber(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
