package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"lunashop/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	items  map[string][]models.OrderItem
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
		items:  make(map[string][]models.OrderItem),
	}
}

// Create stores the order and its items together.
func (r *MockOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	stored := make([]models.OrderItem, len(items))
	for i, item := range items {
		item.OrderID = order.ID
		stored[i] = item
	}
	r.orders[order.ID] = *order
	r.items[order.ID] = stored
	return nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return &order, nil
}

// ListByUser returns the user's orders, newest first.
func (r *MockOrderRepository) ListByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

// GetItems returns the items stored for the order.
func (r *MockOrderRepository) GetItems(orderID string) ([]models.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.items[orderID]
	out := make([]models.OrderItem, len(items))
	copy(out, items)
	return out, nil
}
