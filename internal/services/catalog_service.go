package services

import (
	"lunashop/internal/models"
	"lunashop/internal/repositories"
)

// DefaultPageSize is the catalog page size used when the caller passes none.
const DefaultPageSize = 8

// ProductPage is one page of a product listing.
type ProductPage struct {
	Items      []models.Product `json:"items"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// CatalogService handles read-only business logic over products and
// categories.
type CatalogService struct {
	repo repositories.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// ListProducts returns one page of products, optionally narrowed by a
// case-insensitive substring search over name and description. Pages are
// 1-indexed; a page past the end returns an empty item list. An empty
// catalog still reports one (empty) page.
func (s *CatalogService) ListProducts(search string, page, pageSize int) (*ProductPage, error) {
	return s.list(repositories.ProductFilter{Search: search}, page, pageSize)
}

// ListProductsByCategory returns one page of the category's products. An
// unknown category yields repositories.ErrNotFound.
func (s *CatalogService) ListProductsByCategory(categoryID string, page, pageSize int) (*ProductPage, error) {
	if _, err := s.repo.GetCategoryByID(categoryID); err != nil {
		return nil, err
	}
	return s.list(repositories.ProductFilter{CategoryID: categoryID}, page, pageSize)
}

func (s *CatalogService) list(filter repositories.ProductFilter, page, pageSize int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	items, total, err := s.repo.List(filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}
	return &ProductPage{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// GetProduct retrieves a single product by its ID.
func (s *CatalogService) GetProduct(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetProductsByIDs retrieves the distinct products matching the given ids;
// ids no longer in the catalog are silently omitted.
func (s *CatalogService) GetProductsByIDs(ids []string) ([]models.Product, error) {
	return s.repo.GetByIDs(ids)
}

// ListCategories retrieves all categories.
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.repo.ListCategories()
}
