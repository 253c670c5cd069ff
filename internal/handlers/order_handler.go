package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"lunashop/internal/models"
	"lunashop/internal/repositories"
	"lunashop/internal/services"
)

// OrderHandler handles HTTP requests for order history. Its routes must be
// registered behind the auth middleware.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/orders", h.HandleListOrders)
	router.Get("/orders/:id", h.HandleGetOrder)
}

// OrderWithItems is an order with its line items nested for display.
type OrderWithItems struct {
	models.Order
	Items []models.OrderItem `json:"items"`
}

// HandleListOrders returns the authenticated user's orders, newest first,
// each with its items.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Login required",
		})
	}

	orders, err := h.service.ListOrdersForUser(userID)
	if err != nil {
		logrus.Errorf("Error listing orders for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
		})
	}

	out := make([]OrderWithItems, 0, len(orders))
	for _, order := range orders {
		items, err := h.service.GetOrderItems(order.ID)
		if err != nil {
			logrus.Errorf("Error getting items for order %s: %v", order.ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not retrieve orders",
			})
		}
		out = append(out, OrderWithItems{Order: order, Items: items})
	}
	return c.JSON(out)
}

// HandleGetOrder returns one of the authenticated user's orders with its
// items. Another user's order is indistinguishable from a missing one.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Login required",
		})
	}

	orderID := c.Params("id")
	order, err := h.service.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		logrus.Errorf("Error getting order %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
		})
	}
	if order.UserID != userID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Order not found",
		})
	}

	items, err := h.service.GetOrderItems(orderID)
	if err != nil {
		logrus.Errorf("Error getting items for order %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
		})
	}
	return c.JSON(OrderWithItems{Order: *order, Items: items})
}
