package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"lunashop/internal/middleware"
	"lunashop/internal/services"
)

// CheckoutHandler handles order placement from the session cart.
type CheckoutHandler struct {
	service *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
	}
}

// RegisterRoutes registers the checkout route with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)
}

// HandleCheckout validates the submitted payment input and places the order.
// On any failure the cart is left intact so the user may retry.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	var payment services.PaymentRequest
	if err := c.BodyParser(&payment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	sess := middleware.SessionFromCtx(c)
	result, err := h.service.Checkout(c.Context(), sess, payment)
	if err != nil {
		var paymentErr *services.PaymentInputError
		var persistErr *services.PersistenceError
		switch {
		case errors.Is(err, services.ErrUnauthenticated):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Please login to checkout",
			})
		case errors.Is(err, services.ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cart is empty",
			})
		case errors.As(err, &paymentErr):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "Invalid payment input",
				"field":   paymentErr.Field,
				"error":   paymentErr.Reason,
			})
		case errors.As(err, &persistErr):
			logrus.Errorf("Checkout persistence failure: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not place order, please try again",
			})
		default:
			logrus.Errorf("Checkout failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not place order",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}
