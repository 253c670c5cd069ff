package repositories

import (
	"lunashop/internal/models"
)

// ProductFilter narrows a product listing. Search matches case-insensitively
// against name or description as a substring; CategoryID restricts to one
// category. Zero values mean no filtering.
type ProductFilter struct {
	Search     string
	CategoryID string
}

// ProductRepository defines read access to the catalog (products and
// categories) plus the create operations used for seeding. The catalog is
// static reference data; there are no update or delete operations.
type ProductRepository interface {
	// List returns one page of matching products (newest first) and the
	// total match count. Pages are 1-indexed; a page beyond the last one
	// yields an empty slice, not an error.
	List(filter ProductFilter, page, pageSize int) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
	// GetByIDs returns the distinct products matching any of the given ids.
	// Ids with no matching product are silently omitted.
	GetByIDs(ids []string) ([]models.Product, error)
	Create(product *models.Product) error

	ListCategories() ([]models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
	CreateCategory(category *models.Category) error
}
