package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"lunashop/internal/repositories"
	"lunashop/internal/services"
)

// CatalogHandler handles HTTP requests for browsing products and categories.
type CatalogHandler struct {
	service  *services.CatalogService
	pageSize int
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService, pageSize int) *CatalogHandler {
	if pageSize < 1 {
		pageSize = services.DefaultPageSize
	}
	return &CatalogHandler{
		service:  service,
		pageSize: pageSize,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleListProducts)
	router.Get("/products/:id", h.HandleGetProduct)
	router.Get("/categories", h.HandleListCategories)
	router.Get("/categories/:id/products", h.HandleListByCategory)
}

// HandleListProducts lists one page of products, optionally filtered by the
// `q` search query.
func (h *CatalogHandler) HandleListProducts(c *fiber.Ctx) error {
	search := c.Query("q")
	page := c.QueryInt("page", 1)

	result, err := h.service.ListProducts(search, page, h.pageSize)
	if err != nil {
		logrus.Errorf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}
	return c.JSON(result)
}

// HandleGetProduct retrieves a single product by its ID.
func (h *CatalogHandler) HandleGetProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProduct(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		logrus.Errorf("Error getting product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
		})
	}
	return c.JSON(product)
}

// HandleListCategories lists all categories.
func (h *CatalogHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		logrus.Errorf("Error listing categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve categories",
		})
	}
	return c.JSON(categories)
}

// HandleListByCategory lists one page of a category's products.
func (h *CatalogHandler) HandleListByCategory(c *fiber.Ctx) error {
	categoryID := c.Params("id")
	page := c.QueryInt("page", 1)

	result, err := h.service.ListProductsByCategory(categoryID, page, h.pageSize)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Category not found",
			})
		}
		logrus.Errorf("Error listing products for category %s: %v", categoryID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}
	return c.JSON(result)
}
