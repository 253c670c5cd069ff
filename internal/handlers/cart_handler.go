package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"lunashop/internal/middleware"
	"lunashop/internal/repositories"
	"lunashop/internal/services"
)

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/cart", h.HandleViewCart)
	router.Post("/cart/items/:productId", h.HandleAddItem)
	router.Delete("/cart/items/:productId", h.HandleRemoveItem)
	router.Delete("/cart", h.HandleClearCart)
}

// HandleViewCart returns the cart priced against the current catalog.
func (h *CartHandler) HandleViewCart(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	snapshot, err := h.service.Snapshot(sess.Cart)
	if err != nil {
		logrus.Errorf("Error pricing cart for session %s: %v", sess.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
		})
	}
	return c.JSON(snapshot)
}

// HandleAddItem appends one unit of the product to the cart. Requires a
// logged-in user.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if !sess.Authenticated() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Please login first",
		})
	}

	productID := c.Params("productId")
	if err := h.service.Add(c.Context(), sess, productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		logrus.Errorf("Error adding product %s to cart: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add to cart",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Added to cart",
		"units":   len(sess.Cart),
	})
}

// HandleRemoveItem removes all units of the product from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	productID := c.Params("productId")
	if err := h.service.Remove(c.Context(), sess, productID); err != nil {
		logrus.Errorf("Error removing product %s from cart: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove from cart",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Removed from cart",
		"units":   len(sess.Cart),
	})
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if err := h.service.Clear(c.Context(), sess); err != nil {
		logrus.Errorf("Error clearing cart for session %s: %v", sess.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear cart",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
	})
}
