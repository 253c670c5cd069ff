package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lunashop/internal/models"
	"lunashop/internal/repositories"
)

// OrderService is the order ledger: it durably records placed orders and
// their line items and exposes per-user order history.
type OrderService struct {
	orderRepo repositories.OrderRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// PlaceOrder records an immutable order from the given line snapshot. The
// total is computed here from the lines, never taken from the caller. The
// order row and its item rows are written atomically; on failure nothing is
// persisted and a PersistenceError is returned.
func (s *OrderService) PlaceOrder(userID string, lines []models.OrderItem, status string) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	total := decimal.Zero
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("product %s: quantity must be at least 1: %w", line.ProductID, ErrInvalidLineItem)
		}
		if line.Price.IsNegative() {
			return nil, fmt.Errorf("product %s: unit price must not be negative: %w", line.ProductID, ErrInvalidLineItem)
		}
		total = total.Add(line.Subtotal())
	}

	order := &models.Order{
		ID:          uuid.New().String(),
		UserID:      userID,
		TotalAmount: total,
		Status:      status,
		CreatedAt:   time.Now(),
	}
	if err := s.orderRepo.Create(order, lines); err != nil {
		return nil, &PersistenceError{Op: "place order", Err: err}
	}
	return order, nil
}

// GetOrder retrieves a single order by its ID.
func (s *OrderService) GetOrder(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// ListOrdersForUser returns the user's orders, newest first.
func (s *OrderService) ListOrdersForUser(userID string) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userID)
}

// GetOrderItems returns the order's items with product names for display.
func (s *OrderService) GetOrderItems(orderID string) ([]models.OrderItem, error) {
	return s.orderRepo.GetItems(orderID)
}
