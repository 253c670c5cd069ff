package repositories

import (
	"lunashop/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// written once and never updated.
type OrderRepository interface {
	// Create persists the order and its items as a single atomic unit: a
	// partially written order must never be observable. On any failure the
	// whole write is rolled back.
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id string) (*models.Order, error)
	// ListByUser returns the user's orders, newest first.
	ListByUser(userID string) ([]models.Order, error)
	// GetItems returns the order's items with product names joined in for
	// display. An item whose product was deleted keeps an empty name.
	GetItems(orderID string) ([]models.OrderItem, error)
}
