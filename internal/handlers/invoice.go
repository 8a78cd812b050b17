package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/birchwood/internal/invoice"
	"github.com/example/birchwood/internal/models"
	"github.com/example/birchwood/internal/services"
)

// InvoiceHandler manages invoice endpoints.
type InvoiceHandler struct {
	db      *gorm.DB
	builder *invoice.Builder
	store   *invoice.Store
	mailer  *services.Mailer
}

// NewInvoiceHandler constructs InvoiceHandler.
func NewInvoiceHandler(db *gorm.DB, builder *invoice.Builder, store *invoice.Store, mailer *services.Mailer) *InvoiceHandler {
	return &InvoiceHandler{db: db, builder: builder, store: store, mailer: mailer}
}

type createInvoiceRequest struct {
	OrderID string `json:"order_id"`
}

// CreateInvoice builds an invoice snapshot for an order, renders its PDF
// and emails the customer. The invoice commit stands even if rendering or
// email fails; rendering can be retried via RenderInvoice.
func (h *InvoiceHandler) CreateInvoice(c *fiber.Ctx) error {
	var req createInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	inv, err := h.builder.Create(c.Context(), orderID)
	if err != nil {
		return err
	}

	if renderErr := h.renderAndAttach(c, inv); renderErr != nil {
		log.Printf("[Invoice] PDF render for %s failed, invoice kept without pdf_url: %v", inv.Number, renderErr)
	}

	go func(snapshot models.Invoice) {
		if result := h.mailer.NotifyInvoiceIssued(&snapshot); !result.Success {
			log.Printf("[Invoice] notification for %s failed: %s", snapshot.Number, result.Error)
		}
	}(*inv)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": inv})
}

// GetInvoice returns a single invoice with its items.
func (h *InvoiceHandler) GetInvoice(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	inv, err := h.builder.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": inv})
}

// ListInvoices returns invoices newest-first.
func (h *InvoiceHandler) ListInvoices(c *fiber.Ctx) error {
	var invoices []models.Invoice
	if err := h.db.WithContext(c.Context()).
		Order("created_at desc").
		Find(&invoices).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": invoices})
}

// RenderInvoice (re)generates the PDF for an existing invoice. Used to
// retry after a failed render at creation time.
func (h *InvoiceHandler) RenderInvoice(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	inv, err := h.builder.Get(c.Context(), id)
	if err != nil {
		return err
	}

	if err := h.renderAndAttach(c, inv); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": inv})
}

// DownloadInvoice serves a stored invoice PDF; the public URL convention is
// /invoices/{number}.pdf.
func (h *InvoiceHandler) DownloadInvoice(c *fiber.Ctx) error {
	number := strings.TrimSuffix(c.Params("file"), ".pdf")

	inv, err := h.builder.GetByNumber(c.Context(), number)
	if err != nil {
		return err
	}

	if !h.store.Exists(inv.Number) {
		return fiber.NewError(fiber.StatusNotFound, "invoice PDF not rendered yet")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.SendFile(h.store.Path(inv.Number))
}

func (h *InvoiceHandler) renderAndAttach(c *fiber.Ctx, inv *models.Invoice) error {
	data, err := invoice.RenderPDF(inv)
	if err != nil {
		return err
	}

	if _, err := h.store.Save(data, inv.Number); err != nil {
		return err
	}

	url := invoice.PublicURL(inv.Number)
	if err := h.builder.AttachPDF(c.Context(), inv.ID, url); err != nil {
		return err
	}
	inv.PDFURL = url
	return nil
}
