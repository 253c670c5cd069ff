package services_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunashop/internal/models"
	"lunashop/internal/repositories"
	"lunashop/internal/services"
)

func seedCatalogProduct(t *testing.T, repo repositories.ProductRepository, name, description, price string) models.Product {
	t.Helper()
	p := models.Product{
		Name:        name,
		Description: description,
		Price:       decimal.RequireFromString(price),
	}
	require.NoError(t, repo.Create(&p))
	return p
}

func TestCatalogService_SearchMatchesNameAndDescription(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo)

	seedCatalogProduct(t, repo, "Blue Mug", "Ceramic mug", "10.00")
	seedCatalogProduct(t, repo, "Red Plate", "Stoneware plate", "5.00")

	for _, search := range []string{"mug", "MUG"} {
		page, err := service.ListProducts(search, 1, 8)
		assert.NoError(t, err)
		assert.EqualValues(t, 1, page.TotalCount)
		if assert.Len(t, page.Items, 1) {
			assert.Equal(t, "Blue Mug", page.Items[0].Name)
		}
	}
}

func TestCatalogService_PaginationBoundaries(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo)

	for i := 0; i < 5; i++ {
		seedCatalogProduct(t, repo, fmt.Sprintf("Product %d", i), "", "1.00")
	}

	page, err := service.ListProducts("", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 2)

	// Requesting totalPages+1 yields zero items, not an error.
	page, err = service.ListProducts("", 4, 2)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 5, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
}

func TestCatalogService_EmptyCatalogHasOnePage(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo)

	page, err := service.ListProducts("", 1, 8)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 0, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
}

func TestCatalogService_PageAndSizeAreClamped(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo)

	seedCatalogProduct(t, repo, "Blue Mug", "", "10.00")

	page, err := service.ListProducts("", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, services.DefaultPageSize, page.PageSize)
	assert.Len(t, page.Items, 1)
}

func TestCatalogService_ListProductsByCategory(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo)

	kitchen := models.Category{Name: "Kitchen"}
	require.NoError(t, repo.CreateCategory(&kitchen))

	mug := models.Product{Name: "Blue Mug", Price: decimal.RequireFromString("10.00"), CategoryID: &kitchen.ID}
	require.NoError(t, repo.Create(&mug))
	seedCatalogProduct(t, repo, "Wireless Mouse", "", "25.00")

	page, err := service.ListProductsByCategory(kitchen.ID, 1, 8)
	require.NoError(t, err)
	if assert.Len(t, page.Items, 1) {
		assert.Equal(t, "Blue Mug", page.Items[0].Name)
	}

	_, err = service.ListProductsByCategory("missing-category", 1, 8)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCatalogService_GetProduct(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewCatalogService(repo)

	mug := seedCatalogProduct(t, repo, "Blue Mug", "", "10.00")

	got, err := service.GetProduct(mug.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blue Mug", got.Name)

	_, err = service.GetProduct("missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
