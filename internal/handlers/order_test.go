package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/birchwood/internal/database"
	"github.com/example/birchwood/internal/models"
)

func setupHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection so every session sees the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func TestGetOrderNotFound(t *testing.T) {
	db := setupHandlerDB(t)
	h := NewOrderHandler(db)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/orders/:id", h.GetOrder)

	resp, err := app.Test(httptest.NewRequest("GET", "/orders/"+uuid.NewString(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
}

func TestGetOrderReturnsItemsAndRefunds(t *testing.T) {
	db := setupHandlerDB(t)
	h := NewOrderHandler(db)

	order := models.Order{
		OrderNumber:   "ORD-100200300",
		Status:        models.OrderStatusPaid,
		RefundStatus:  models.RefundStatusNone,
		PlacedAt:      time.Now(),
		CustomerName:  "Ellen Marsh",
		CustomerEmail: "ellen@example.com",
		TotalAmount:   50000,
		Currency:      "GBP",
		PaymentMethod: models.PaymentMethodCard,
		Items: []models.OrderItem{
			{ProductName: "Oak dining table", Quantity: 1, UnitPrice: 50000, LineTotal: 50000},
		},
	}
	require.NoError(t, db.Create(&order).Error)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/orders/:id", h.GetOrder)

	resp, err := app.Test(httptest.NewRequest("GET", "/orders/"+order.ID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			OrderNumber string             `json:"order_number"`
			Items       []models.OrderItem `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "ORD-100200300", body.Data.OrderNumber)
	require.Len(t, body.Data.Items, 1)
	assert.Equal(t, "Oak dining table", body.Data.Items[0].ProductName)
}

func TestGetProductNotFound(t *testing.T) {
	db := setupHandlerDB(t)
	h := NewProductHandler(db)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/products/:slug", h.GetProduct)

	resp, err := app.Test(httptest.NewRequest("GET", "/products/no-such-slug", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
