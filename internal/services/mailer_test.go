package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/example/birchwood/internal/models"
)

type stubSender struct {
	sent []*gomail.Message
	err  error
}

func (s *stubSender) DialAndSend(m ...*gomail.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, m...)
	return nil
}

func newTestMailer(adminEmail string, sender mailSender) *Mailer {
	return &Mailer{from: "orders@birchwoodfurniture.co.uk", adminEmail: adminEmail, sender: sender}
}

func sampleOrderAndRefund() (*models.Order, *models.Refund) {
	order := &models.Order{
		OrderNumber:   "ORD-123456",
		CustomerName:  "Ellen Marsh",
		CustomerEmail: "ellen@example.com",
		TotalAmount:   50000,
		Currency:      "GBP",
	}
	refund := &models.Refund{
		Amount: 20000,
		Reason: "damaged leg",
		Method: models.RefundMethodOriginal,
		Status: models.RefundPending,
	}
	return order, refund
}

func TestNotifyRefundRequestedSendsCustomerAndAdmin(t *testing.T) {
	sender := &stubSender{}
	mailer := newTestMailer("admin@birchwoodfurniture.co.uk", sender)
	order, refund := sampleOrderAndRefund()

	result := mailer.NotifyRefundRequested(order, refund)
	assert.True(t, result.Success)
	require.Len(t, sender.sent, 2)

	assert.Equal(t, []string{"ellen@example.com"}, sender.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"admin@birchwoodfurniture.co.uk"}, sender.sent[1].GetHeader("To"))
	assert.Contains(t, sender.sent[0].GetHeader("Subject")[0], "ORD-123456")
}

func TestNotifyDegradesWithoutAdminEmail(t *testing.T) {
	sender := &stubSender{}
	mailer := newTestMailer("", sender)
	order, refund := sampleOrderAndRefund()

	// Customer mail still goes out; the admin copy degrades silently.
	result := mailer.NotifyRefundRequested(order, refund)
	assert.True(t, result.Success)
	assert.Len(t, sender.sent, 1)
}

func TestSendToAdminUnconfigured(t *testing.T) {
	mailer := newTestMailer("", &stubSender{})

	result := mailer.sendToAdmin("subject", "<p>x</p>", "x")
	assert.False(t, result.Success)
	assert.Equal(t, "Admin email not configured", result.Error)
}

func TestSendFailureNeverPanics(t *testing.T) {
	sender := &stubSender{err: errors.New("connection refused")}
	mailer := newTestMailer("admin@birchwoodfurniture.co.uk", sender)
	order, refund := sampleOrderAndRefund()

	result := mailer.NotifyRefundProcessed(order, refund)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "connection refused")
}

func TestUnconfiguredSMTPIsInert(t *testing.T) {
	mailer := NewMailer("", 587, "", "", "orders@birchwoodfurniture.co.uk", "admin@birchwoodfurniture.co.uk")
	order, refund := sampleOrderAndRefund()

	result := mailer.NotifyRefundApproved(order, refund)
	assert.False(t, result.Success)
	assert.Equal(t, "SMTP not configured", result.Error)
}

func TestNotifyInvoiceIssuedIncludesPDFLink(t *testing.T) {
	sender := &stubSender{}
	mailer := newTestMailer("", sender)

	inv := &models.Invoice{
		Number:        "BK-2026-000123",
		CustomerName:  "Ellen Marsh",
		CustomerEmail: "ellen@example.com",
		Subtotal:      100000,
		Tax:           20000,
		Total:         120000,
		Currency:      "GBP",
		PDFURL:        "/invoices/BK-2026-000123.pdf",
	}

	result := mailer.NotifyInvoiceIssued(inv)
	assert.True(t, result.Success)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].GetHeader("Subject")[0], "BK-2026-000123")
}
