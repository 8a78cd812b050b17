package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/birchwood/internal/config"
	"github.com/example/birchwood/internal/handlers"
	"github.com/example/birchwood/internal/invoice"
	"github.com/example/birchwood/internal/middleware"
	"github.com/example/birchwood/internal/models"
	"github.com/example/birchwood/internal/refund"
	"github.com/example/birchwood/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	mailer := services.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom, cfg.AdminEmail)
	refundService := refund.NewService(db)
	invoiceBuilder := invoice.NewBuilder(db)
	invoiceStore := invoice.NewStore(cfg.InvoiceDir)

	authHandler := handlers.NewAuthHandler(db, cfg)
	productHandler := handlers.NewProductHandler(db)
	orderHandler := handlers.NewOrderHandler(db)
	refundHandler := handlers.NewRefundHandler(db, refundService, mailer)
	invoiceHandler := handlers.NewInvoiceHandler(db, invoiceBuilder, invoiceStore, mailer)
	bookingHandler := handlers.NewBookingHandler(db)
	adminHandler := handlers.NewAdminHandler(db)

	api := app.Group("/api")

	// Auth
	api.Post("/auth/login", authHandler.Login)

	// Public catalog
	api.Get("/products", productHandler.ListProducts)
	api.Get("/products/:slug", productHandler.GetProduct)
	api.Get("/categories", productHandler.ListCategories)

	// Public checkout and forms, rate-limited per client IP.
	formLimit := middleware.FormRateLimit(cfg.RateLimitMax, cfg.RateLimitWindow)
	api.Post("/orders", formLimit, orderHandler.CreateOrder)
	api.Post("/bookings", formLimit, bookingHandler.CreateBooking)
	api.Post("/quotes", formLimit, bookingHandler.CreateQuoteRequest)
	api.Post("/contact", formLimit, bookingHandler.CreateContactRequest)

	// Public invoice PDF download: /invoices/{number}.pdf
	app.Get("/invoices/:file", invoiceHandler.DownloadInvoice)

	// Admin routes
	admin := api.Group("/admin", middleware.AdminAuth(cfg, db))

	admin.Get("/stats", adminHandler.DashboardStats)

	admin.Get("/orders", orderHandler.ListOrders)
	admin.Get("/orders/:id", orderHandler.GetOrder)
	admin.Put("/orders/:id/status", orderHandler.UpdateOrderStatus)
	admin.Get("/orders/:id/refunds", refundHandler.ListOrderRefunds)

	admin.Post("/refunds", refundHandler.CreateRefund)
	admin.Get("/refunds", refundHandler.ListRefunds)
	admin.Post("/refunds/:id/approve", refundHandler.ApproveRefund)
	admin.Post("/refunds/:id/process", refundHandler.ProcessRefund)

	admin.Post("/invoices", invoiceHandler.CreateInvoice)
	admin.Get("/invoices", invoiceHandler.ListInvoices)
	admin.Get("/invoices/:id", invoiceHandler.GetInvoice)
	admin.Post("/invoices/:id/render", invoiceHandler.RenderInvoice)

	admin.Post("/products", productHandler.CreateProduct)
	admin.Put("/products/:id", productHandler.UpdateProduct)
	admin.Delete("/products/:id", productHandler.DeleteProduct)
	admin.Post("/categories", productHandler.CreateCategory)

	admin.Get("/bookings", bookingHandler.ListBookings)
	admin.Put("/bookings/:id", bookingHandler.UpdateBooking)
	admin.Get("/quotes", bookingHandler.ListQuoteRequests)
	admin.Put("/quotes/:id/handled", bookingHandler.MarkHandled(&models.QuoteRequest{}))
	admin.Get("/contact", bookingHandler.ListContactRequests)
	admin.Put("/contact/:id/handled", bookingHandler.MarkHandled(&models.ContactRequest{}))
}
