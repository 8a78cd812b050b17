package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/birchwood/internal/models"
	"github.com/example/birchwood/internal/refund"
	"github.com/example/birchwood/internal/services"
	"github.com/example/birchwood/internal/utils"
)

// RefundHandler manages admin refund endpoints.
type RefundHandler struct {
	db      *gorm.DB
	refunds *refund.Service
	mailer  *services.Mailer
}

// NewRefundHandler constructs RefundHandler.
func NewRefundHandler(db *gorm.DB, refunds *refund.Service, mailer *services.Mailer) *RefundHandler {
	return &RefundHandler{db: db, refunds: refunds, mailer: mailer}
}

type createRefundRequest struct {
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
	Reason  string `json:"reason"`
	Method  string `json:"method"`
}

// CreateRefund records a new pending refund for an order.
func (h *RefundHandler) CreateRefund(c *fiber.Ctx) error {
	var req createRefundRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	created, err := h.refunds.Create(c.Context(), refund.CreateParams{
		OrderID: orderID,
		Amount:  req.Amount,
		Reason:  req.Reason,
		Method:  req.Method,
	})
	if err != nil {
		return err
	}

	// Commit first, notify best-effort after.
	go h.notify(created, h.mailer.NotifyRefundRequested)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": created})
}

// ApproveRefund moves a pending refund to approved.
func (h *RefundHandler) ApproveRefund(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	approved, err := h.refunds.Approve(c.Context(), id)
	if err != nil {
		return err
	}

	go h.notify(approved, h.mailer.NotifyRefundApproved)

	return c.JSON(fiber.Map{"success": true, "data": approved})
}

// ProcessRefund moves an approved refund to processed.
func (h *RefundHandler) ProcessRefund(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	processed, err := h.refunds.Process(c.Context(), id)
	if err != nil {
		return err
	}

	go h.notify(processed, h.mailer.NotifyRefundProcessed)

	return c.JSON(fiber.Map{"success": true, "data": processed})
}

// ListRefunds returns all refunds newest-first.
func (h *RefundHandler) ListRefunds(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	refunds, total, err := h.refunds.List(c.Context(), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    refunds,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// ListOrderRefunds returns an order's refunds newest-first.
func (h *RefundHandler) ListOrderRefunds(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	refunds, err := h.refunds.ListByOrder(c.Context(), orderID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": refunds})
}

func (h *RefundHandler) notify(r *models.Refund, send func(*models.Order, *models.Refund) services.SendResult) {
	var order models.Order
	if err := h.db.First(&order, "id = ?", r.OrderID).Error; err != nil {
		log.Printf("[Refund] notification skipped, order %s load failed: %v", r.OrderID, err)
		return
	}

	if result := send(&order, r); !result.Success {
		log.Printf("[Refund] notification for refund %s failed: %s", r.ID, result.Error)
	}
}
