package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/birchwood/internal/models"
)

// AdminHandler manages admin-only dashboard endpoints.
type AdminHandler struct {
	db *gorm.DB
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// DashboardStats returns aggregate statistics for the admin dashboard.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var statusCounts []statusCount
	if err := h.db.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return err
	}

	ordersByStatus := make(map[string]int64)
	for _, sc := range statusCounts {
		ordersByStatus[sc.Status] = sc.Count
	}

	// Revenue over non-cancelled orders, in minor currency units.
	var totalRevenue int64
	if err := h.db.Model(&models.Order{}).
		Where("status != ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	// Only approved and processed refunds are committed money.
	var refundedAmount int64
	if err := h.db.Model(&models.Refund{}).
		Where("status IN ?", []string{models.RefundApproved, models.RefundProcessed}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&refundedAmount).Error; err != nil {
		return err
	}

	var pendingRefunds int64
	if err := h.db.Model(&models.Refund{}).
		Where("status = ?", models.RefundPending).
		Count(&pendingRefunds).Error; err != nil {
		return err
	}

	var openBookings int64
	if err := h.db.Model(&models.Booking{}).
		Where("status = ?", models.BookingRequested).
		Count(&openBookings).Error; err != nil {
		return err
	}

	var unhandledContacts int64
	if err := h.db.Model(&models.ContactRequest{}).
		Where("handled = ?", false).
		Count(&unhandledContacts).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_orders":       totalOrders,
			"orders_by_status":   ordersByStatus,
			"total_revenue":      totalRevenue,
			"refunded_amount":    refundedAmount,
			"pending_refunds":    pendingRefunds,
			"open_bookings":      openBookings,
			"unhandled_contacts": unhandledContacts,
		},
	})
}
