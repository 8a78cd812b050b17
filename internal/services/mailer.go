package services

import (
	"fmt"
	"log"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/example/birchwood/internal/models"
	"github.com/example/birchwood/internal/money"
)

// SendResult reports the outcome of a notification attempt. Notification
// failures are logged and returned here; they are never surfaced as errors
// to the caller of a financial operation.
type SendResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends transactional emails for refund and invoice lifecycle
// events. An unconfigured SMTP host or admin address degrades to a logged,
// unsuccessful result rather than an error.
type Mailer struct {
	from       string
	adminEmail string
	sender     mailSender
}

// NewMailer constructs a Mailer. With an empty host the mailer is inert:
// every send logs and reports failure without attempting a connection.
func NewMailer(host string, port int, username, password, from, adminEmail string) *Mailer {
	m := &Mailer{from: from, adminEmail: adminEmail}
	if host != "" {
		m.sender = gomail.NewDialer(host, port, username, password)
	}
	return m
}

func (m *Mailer) send(to, subject, htmlBody, textBody string) SendResult {
	if m.sender == nil {
		log.Printf("[Mail] SMTP not configured, dropping %q to %s", subject, to)
		return SendResult{Success: false, Error: "SMTP not configured"}
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	msg.AddAlternative("text/html", htmlBody)

	if err := m.sender.DialAndSend(msg); err != nil {
		log.Printf("[Mail] Failed to send %q to %s: %v", subject, to, err)
		return SendResult{Success: false, Error: err.Error()}
	}
	return SendResult{Success: true}
}

func (m *Mailer) sendToAdmin(subject, htmlBody, textBody string) SendResult {
	if m.adminEmail == "" {
		log.Println("[Mail] Admin email not configured")
		return SendResult{Success: false, Error: "Admin email not configured"}
	}
	return m.send(m.adminEmail, subject, htmlBody, textBody)
}

// NotifyRefundRequested emails the customer and admin that a refund request
// was recorded.
func (m *Mailer) NotifyRefundRequested(order *models.Order, refund *models.Refund) SendResult {
	amount := money.New(refund.Amount, order.Currency)
	subject := fmt.Sprintf("Refund request received for order %s", order.OrderNumber)

	html := refundHTML("We have received your refund request.", order, refund, amount)
	text := refundText("We have received your refund request.", order, refund, amount)
	customer := m.send(order.CustomerEmail, subject, html, text)

	adminSubject := fmt.Sprintf("New refund request: %s (%s)", order.OrderNumber, amount)
	m.sendToAdmin(adminSubject,
		refundHTML("A customer requested a refund.", order, refund, amount),
		refundText("A customer requested a refund.", order, refund, amount))

	return customer
}

// NotifyRefundApproved emails the customer that their refund was approved.
func (m *Mailer) NotifyRefundApproved(order *models.Order, refund *models.Refund) SendResult {
	amount := money.New(refund.Amount, order.Currency)
	subject := fmt.Sprintf("Refund approved for order %s", order.OrderNumber)
	return m.send(order.CustomerEmail, subject,
		refundHTML("Your refund has been approved and will be processed shortly.", order, refund, amount),
		refundText("Your refund has been approved and will be processed shortly.", order, refund, amount))
}

// NotifyRefundProcessed emails the customer and admin that a refund was
// processed.
func (m *Mailer) NotifyRefundProcessed(order *models.Order, refund *models.Refund) SendResult {
	amount := money.New(refund.Amount, order.Currency)
	subject := fmt.Sprintf("Refund processed for order %s", order.OrderNumber)

	intro := fmt.Sprintf("Your refund has been processed via %s. Depending on your bank it can take 3-5 working days to appear.",
		strings.ToLower(models.RefundMethodLabel(refund.Method)))
	customer := m.send(order.CustomerEmail, subject,
		refundHTML(intro, order, refund, amount),
		refundText(intro, order, refund, amount))

	adminSubject := fmt.Sprintf("Refund processed: %s (%s)", order.OrderNumber, amount)
	m.sendToAdmin(adminSubject,
		refundHTML("A refund has been processed.", order, refund, amount),
		refundText("A refund has been processed.", order, refund, amount))

	return customer
}

// NotifyInvoiceIssued emails the customer their invoice, linking the PDF
// when one has been rendered.
func (m *Mailer) NotifyInvoiceIssued(inv *models.Invoice) SendResult {
	total := money.New(inv.Total, inv.Currency)
	subject := fmt.Sprintf("Your invoice %s from Birchwood Furniture", inv.Number)

	var pdfLine string
	if inv.PDFURL != "" {
		pdfLine = fmt.Sprintf("Download your invoice: %s", inv.PDFURL)
	}

	html := fmt.Sprintf(`<h2>Invoice %s</h2>
<p>Dear %s,</p>
<p>Thank you for your order. Your invoice total is <b>%s</b>.</p>
<p>Subtotal: %s<br>VAT: %s<br>Shipping: %s</p>
<p>%s</p>
<p>Birchwood Furniture Ltd</p>`,
		inv.Number, inv.CustomerName, total,
		money.Format(inv.Subtotal), money.Format(inv.Tax), money.Format(inv.Shipping),
		pdfLine)

	text := fmt.Sprintf(`Invoice %s

Dear %s,

Thank you for your order. Your invoice total is %s.
Subtotal: %s
VAT: %s
Shipping: %s
%s

Birchwood Furniture Ltd`,
		inv.Number, inv.CustomerName, total,
		money.Format(inv.Subtotal), money.Format(inv.Tax), money.Format(inv.Shipping),
		pdfLine)

	return m.send(inv.CustomerEmail, subject, html, text)
}

func refundHTML(intro string, order *models.Order, refund *models.Refund, amount money.Money) string {
	return fmt.Sprintf(`<h2>Order %s</h2>
<p>Dear %s,</p>
<p>%s</p>
<p><b>Amount:</b> %s<br><b>Method:</b> %s<br><b>Status:</b> %s</p>
<p>Birchwood Furniture Ltd</p>`,
		order.OrderNumber, order.CustomerName, intro,
		amount, models.RefundMethodLabel(refund.Method), refund.Status)
}

func refundText(intro string, order *models.Order, refund *models.Refund, amount money.Money) string {
	return fmt.Sprintf(`Order %s

Dear %s,

%s

Amount: %s
Method: %s
Status: %s

Birchwood Furniture Ltd`,
		order.OrderNumber, order.CustomerName, intro,
		amount, models.RefundMethodLabel(refund.Method), refund.Status)
}
