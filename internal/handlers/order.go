package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/birchwood/internal/models"
	"github.com/example/birchwood/internal/utils"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	db *gorm.DB
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{db: db}
}

type orderItemRequest struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	LineTotal   int64  `json:"line_total"`
}

type createOrderRequest struct {
	CustomerName  string             `json:"customer_name"`
	CustomerEmail string             `json:"customer_email"`
	CustomerPhone string             `json:"customer_phone"`
	AddressLine   string             `json:"address_line"`
	City          string             `json:"city"`
	Postcode      string             `json:"postcode"`
	PaymentMethod string             `json:"payment_method"`
	Currency      string             `json:"currency"`
	Items         []orderItemRequest `json:"items"`
	ShippingFee   int64              `json:"shipping_fee"`
	Notes         string             `json:"notes"`
}

// CreateOrder places a new order. Amounts are integer minor currency units;
// line totals are recomputed server-side from unit price and quantity when
// absent.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.CustomerEmail == "" {
		return fiber.NewError(fiber.StatusBadRequest, "customer_email is required")
	}
	if len(req.Items) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "order must contain at least one item")
	}

	order := models.Order{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		AddressLine:   req.AddressLine,
		City:          req.City,
		Postcode:      req.Postcode,
		PaymentMethod: req.PaymentMethod,
		Currency:      req.Currency,
		ShippingFee:   req.ShippingFee,
		Notes:         req.Notes,
		Status:        initialStatus(req.PaymentMethod),
		RefundStatus:  models.RefundStatusNone,
		PlacedAt:      time.Now(),
	}

	if order.Currency == "" {
		order.Currency = "GBP"
	}

	var subtotal int64
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "item quantity must be positive")
		}

		lineTotal := line.LineTotal
		if lineTotal == 0 {
			lineTotal = line.UnitPrice * int64(line.Quantity)
		}

		item := models.OrderItem{
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   lineTotal,
		}

		if line.ProductID != "" {
			if id, err := uuid.Parse(line.ProductID); err == nil {
				item.ProductID = &id
			}
		}

		subtotal += lineTotal
		order.Items = append(order.Items, item)
	}

	order.Subtotal = subtotal
	order.TotalAmount = subtotal + order.ShippingFee
	order.OrderNumber = generateOrderNumber()

	if err := h.db.Create(&order).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":           order.ID,
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"placed_at":    order.PlacedAt,
			"total":        order.TotalAmount,
			"currency":     order.Currency,
		},
	})
}

// ListOrders returns orders for the admin dashboard, optionally filtered by
// status or refund status.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if refundStatus := c.Query("refund_status"); refundStatus != "" {
		query = query.Where("refund_status = ?", refundStatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").
		Order("placed_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetOrder returns a single order with its items and refunds.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items").Preload("Refunds").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus moves an order through its lifecycle. Refund status is
// owned by the refund pipeline and is not writable here.
func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if !validOrderStatus(req.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown order status")
	}

	result := h.db.Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", req.Status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "order not found")
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"id": id, "status": req.Status}})
}

func initialStatus(paymentMethod string) string {
	if paymentMethod == models.PaymentMethodCOD {
		return models.OrderStatusPendingCOD
	}
	return models.OrderStatusPendingPayment
}

func validOrderStatus(status string) bool {
	switch status {
	case models.OrderStatusPendingPayment, models.OrderStatusPendingCOD,
		models.OrderStatusPaid, models.OrderStatusPreparing,
		models.OrderStatusShipped, models.OrderStatusDelivered,
		models.OrderStatusCancelled, models.OrderStatusRefunded:
		return true
	}
	return false
}

func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%d", time.Now().UnixNano()%1_000_000_000)
}
