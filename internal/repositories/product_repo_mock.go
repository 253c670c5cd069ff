package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"lunashop/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// Listing order is newest first (reverse insertion order), matching the GORM
// implementation.
type MockProductRepository struct {
	products   map[string]models.Product
	order      []string // product ids in insertion order
	categories map[string]models.Category
	mu         sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products:   make(map[string]models.Product),
		categories: make(map[string]models.Category),
	}
}

func matchesFilter(p models.Product, filter ProductFilter) bool {
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	if filter.CategoryID != "" {
		if p.CategoryID == nil || *p.CategoryID != filter.CategoryID {
			return false
		}
	}
	return true
}

// List returns one page of matching products, newest first.
func (r *MockProductRepository) List(filter ProductFilter, page, pageSize int) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Product, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		p, ok := r.products[r.order[i]]
		if ok && matchesFilter(p, filter) {
			matched = append(matched, p)
		}
	}

	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return []models.Product{}, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// GetByIDs returns the distinct products matching any of the given ids.
func (r *MockProductRepository) GetByIDs(ids []string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool, len(ids))
	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := r.products[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	r.order = append(r.order, product.ID)
	return nil
}

// Delete removes a product, used to simulate catalog entries disappearing.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

// ListCategories returns all categories ordered by name.
func (r *MockProductRepository) ListCategories() ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// GetCategoryByID returns a category by its ID.
func (r *MockProductRepository) GetCategoryByID(id string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	return &category, nil
}

// CreateCategory adds a new category.
func (r *MockProductRepository) CreateCategory(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	r.categories[category.ID] = *category
	return nil
}
