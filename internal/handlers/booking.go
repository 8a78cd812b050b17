package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/birchwood/internal/models"
	"github.com/example/birchwood/internal/utils"
)

// BookingHandler manages public form submissions (bookings, quote requests,
// contact messages) and their admin views.
type BookingHandler struct {
	db *gorm.DB
}

// NewBookingHandler constructs BookingHandler.
func NewBookingHandler(db *gorm.DB) *BookingHandler {
	return &BookingHandler{db: db}
}

type createBookingRequest struct {
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	PreferredAt   time.Time `json:"preferred_at"`
	Service       string    `json:"service"`
	Message       string    `json:"message"`
}

// CreateBooking records a showroom or consultation booking request.
func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var req createBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.CustomerEmail == "" {
		return fiber.NewError(fiber.StatusBadRequest, "customer_email is required")
	}

	booking := models.Booking{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		PreferredAt:   req.PreferredAt,
		Service:       req.Service,
		Message:       req.Message,
		Status:        models.BookingRequested,
	}

	if err := h.db.Create(&booking).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": booking})
}

// ListBookings returns bookings for the admin dashboard.
func (h *BookingHandler) ListBookings(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Booking{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var bookings []models.Booking
	if err := query.Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&bookings).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    bookings,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

type updateBookingRequest struct {
	Status string `json:"status"`
}

// UpdateBooking moves a booking through its lifecycle.
func (h *BookingHandler) UpdateBooking(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch req.Status {
	case models.BookingRequested, models.BookingConfirmed, models.BookingCompleted, models.BookingCancelled:
	default:
		return fiber.NewError(fiber.StatusBadRequest, "unknown booking status")
	}

	result := h.db.Model(&models.Booking{}).Where("id = ?", id).Update("status", req.Status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "booking not found")
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"id": id, "status": req.Status}})
}

// CreateQuoteRequest records a bespoke-furniture quote enquiry.
func (h *BookingHandler) CreateQuoteRequest(c *fiber.Ctx) error {
	var quote models.QuoteRequest
	if err := c.BodyParser(&quote); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if quote.CustomerEmail == "" {
		return fiber.NewError(fiber.StatusBadRequest, "customer_email is required")
	}
	quote.Handled = false

	if err := h.db.Create(&quote).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": quote})
}

// CreateContactRequest records a contact-form message.
func (h *BookingHandler) CreateContactRequest(c *fiber.Ctx) error {
	var contact models.ContactRequest
	if err := c.BodyParser(&contact); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if contact.Email == "" || contact.Message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and message are required")
	}
	contact.Handled = false

	if err := h.db.Create(&contact).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": contact})
}

// ListQuoteRequests returns quote enquiries newest-first.
func (h *BookingHandler) ListQuoteRequests(c *fiber.Ctx) error {
	var quotes []models.QuoteRequest
	if err := h.db.Order("created_at desc").Find(&quotes).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": quotes})
}

// ListContactRequests returns contact messages newest-first.
func (h *BookingHandler) ListContactRequests(c *fiber.Ctx) error {
	var contacts []models.ContactRequest
	if err := h.db.Order("created_at desc").Find(&contacts).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": contacts})
}

// MarkHandled flags a quote or contact request as dealt with.
func (h *BookingHandler) MarkHandled(model interface{}) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid id")
		}

		result := h.db.Model(model).Where("id = ?", id).Update("handled", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "record not found")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
