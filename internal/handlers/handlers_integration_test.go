package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lunashop/internal/handlers"
	"lunashop/internal/middleware"
	"lunashop/internal/models"
	"lunashop/internal/repositories"
	"lunashop/internal/services"
	"lunashop/internal/session"
)

type testApp struct {
	app      *fiber.App
	products repositories.ProductRepository
}

// newTestApp wires the full HTTP surface against a fresh in-memory SQLite
// database and an in-memory session store, mirroring the production setup
// minus the message broker.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))

	sessionStore := session.NewMemoryStore()
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	authService := services.NewAuthService(userRepo, "test_jwt_secret")
	catalogService := services.NewCatalogService(productRepo)
	cartService := services.NewCartService(sessionStore, productRepo)
	orderService := services.NewOrderService(orderRepo)
	checkoutService := services.NewCheckoutService(cartService, orderService, nil)

	app := fiber.New()
	app.Use(middleware.SessionLoader(sessionStore))

	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService, sessionStore).RegisterRoutes(apiV1)
	handlers.NewCatalogHandler(catalogService, 8).RegisterRoutes(apiV1)
	handlers.NewCartHandler(cartService).RegisterRoutes(apiV1)
	handlers.NewCheckoutHandler(checkoutService).RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	handlers.NewOrderHandler(orderService).RegisterRoutes(protected)

	return &testApp{app: app, products: productRepo}
}

func (ta *testApp) seedProduct(t *testing.T, name, price string) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: decimal.RequireFromString(price)}
	require.NoError(t, ta.products.Create(&p))
	return p
}

// request performs one request against the app. A non-empty sessionID is sent
// as the session cookie; a non-nil body is marshalled as JSON.
func (ta *testApp) request(t *testing.T, method, path, sessionID string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: sessionID})
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerAndLogin creates a user and logs them in, returning the session id
// bound to the login and the issued JWT.
func (ta *testApp) registerAndLogin(t *testing.T, email string) (sessionID, token string) {
	t.Helper()

	resp := ta.request(t, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"username": "testuser",
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = ta.request(t, fiber.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookie {
			sessionID = cookie.Value
		}
	}
	require.NotEmpty(t, sessionID, "login response must set the session cookie")

	var loginBody struct {
		Token string `json:"token"`
	}
	decodeJSON(t, resp, &loginBody)
	require.NotEmpty(t, loginBody.Token)
	return sessionID, loginBody.Token
}

func TestStorefrontFlow(t *testing.T) {
	ta := newTestApp(t)
	mug := ta.seedProduct(t, "Blue Mug", "10.00")
	plate := ta.seedProduct(t, "Red Plate", "5.00")

	sessionID, _ := ta.registerAndLogin(t, "shopper@example.com")

	// Two mugs and a plate.
	for _, id := range []string{mug.ID, mug.ID, plate.ID} {
		resp := ta.request(t, fiber.MethodPost, "/api/v1/cart/items/"+id, sessionID, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp := ta.request(t, fiber.MethodGet, "/api/v1/cart", sessionID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var snapshot services.CartSnapshot
	decodeJSON(t, resp, &snapshot)
	require.Len(t, snapshot.Lines, 2)
	assert.True(t, snapshot.GrandTotal.Equal(decimal.RequireFromString("25.00")),
		"grand total %s", snapshot.GrandTotal)

	resp = ta.request(t, fiber.MethodPost, "/api/v1/checkout", sessionID, fiber.Map{
		"payment_method": "cod",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var result services.CheckoutResult
	decodeJSON(t, resp, &result)
	assert.True(t, result.TotalAmount.Equal(decimal.RequireFromString("25.00")),
		"total %s", result.TotalAmount)
	assert.Equal(t, "Cash on Delivery", result.PaymentInfo)

	// The cart was consumed by the checkout.
	resp = ta.request(t, fiber.MethodGet, "/api/v1/cart", sessionID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &snapshot)
	assert.Empty(t, snapshot.Lines)

	resp = ta.request(t, fiber.MethodGet, "/api/v1/orders", sessionID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var orders []handlers.OrderWithItems
	decodeJSON(t, resp, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, result.OrderID, orders[0].ID)
	assert.Equal(t, "Placed - COD", orders[0].Status)
	require.Len(t, orders[0].Items, 2)
	assert.Equal(t, "Blue Mug", orders[0].Items[0].ProductName)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)

	resp = ta.request(t, fiber.MethodGet, "/api/v1/orders/"+result.OrderID, sessionID, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCartRequiresLogin(t *testing.T) {
	ta := newTestApp(t)
	mug := ta.seedProduct(t, "Blue Mug", "10.00")

	resp := ta.request(t, fiber.MethodPost, "/api/v1/cart/items/"+mug.ID, "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	var body struct {
		Message string `json:"message"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "Please login first", body.Message)
}

func TestCheckoutRejectsBadPaymentInput(t *testing.T) {
	ta := newTestApp(t)
	mug := ta.seedProduct(t, "Blue Mug", "10.00")

	sessionID, _ := ta.registerAndLogin(t, "shopper@example.com")
	resp := ta.request(t, fiber.MethodPost, "/api/v1/cart/items/"+mug.ID, sessionID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// UPI id without the separator.
	resp = ta.request(t, fiber.MethodPost, "/api/v1/checkout", sessionID, fiber.Map{
		"payment_method": "upi",
		"upi_id":         "nouserid",
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	var body struct {
		Field string `json:"field"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "upi_id", body.Field)

	// Card number far too short.
	resp = ta.request(t, fiber.MethodPost, "/api/v1/checkout", sessionID, fiber.Map{
		"payment_method": "card",
		"card_no":        "4111",
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	decodeJSON(t, resp, &body)
	assert.Equal(t, "card_no", body.Field)

	// Both rejections left the cart intact and the ledger empty.
	resp = ta.request(t, fiber.MethodGet, "/api/v1/cart", sessionID, nil)
	var snapshot services.CartSnapshot
	decodeJSON(t, resp, &snapshot)
	assert.Len(t, snapshot.Lines, 1)

	resp = ta.request(t, fiber.MethodGet, "/api/v1/orders", sessionID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var orders []handlers.OrderWithItems
	decodeJSON(t, resp, &orders)
	assert.Empty(t, orders)
}

func TestCheckoutEmptyCart(t *testing.T) {
	ta := newTestApp(t)

	sessionID, _ := ta.registerAndLogin(t, "shopper@example.com")
	resp := ta.request(t, fiber.MethodPost, "/api/v1/checkout", sessionID, fiber.Map{
		"payment_method": "cod",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestOrdersRequireAuth(t *testing.T) {
	ta := newTestApp(t)

	resp := ta.request(t, fiber.MethodGet, "/api/v1/orders", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestOrdersAcceptBearerToken(t *testing.T) {
	ta := newTestApp(t)
	_, token := ta.registerAndLogin(t, "shopper@example.com")

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOrderOwnership(t *testing.T) {
	ta := newTestApp(t)
	mug := ta.seedProduct(t, "Blue Mug", "10.00")

	aliceSession, _ := ta.registerAndLogin(t, "alice@example.com")
	resp := ta.request(t, fiber.MethodPost, "/api/v1/cart/items/"+mug.ID, aliceSession, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = ta.request(t, fiber.MethodPost, "/api/v1/checkout", aliceSession, fiber.Map{
		"payment_method": "cod",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var result services.CheckoutResult
	decodeJSON(t, resp, &result)

	// Another user cannot tell this order apart from a missing one.
	bobSession, _ := ta.registerAndLogin(t, "bob@example.com")
	resp = ta.request(t, fiber.MethodGet, "/api/v1/orders/"+result.OrderID, bobSession, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = ta.request(t, fiber.MethodGet, "/api/v1/orders", bobSession, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var orders []handlers.OrderWithItems
	decodeJSON(t, resp, &orders)
	assert.Empty(t, orders)
}

func TestCatalogEndpoints(t *testing.T) {
	ta := newTestApp(t)
	ta.seedProduct(t, "Blue Mug", "10.00")
	ta.seedProduct(t, "Red Plate", "5.00")

	resp := ta.request(t, fiber.MethodGet, "/api/v1/products?q=mug", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var page services.ProductPage
	decodeJSON(t, resp, &page)
	assert.EqualValues(t, 1, page.TotalCount)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Blue Mug", page.Items[0].Name)

	resp = ta.request(t, fiber.MethodGet, "/api/v1/products/"+page.Items[0].ID, "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = ta.request(t, fiber.MethodGet, "/api/v1/products/missing-id", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = ta.request(t, fiber.MethodGet, "/api/v1/categories", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDuplicateRegistration(t *testing.T) {
	ta := newTestApp(t)
	ta.registerAndLogin(t, "shopper@example.com")

	resp := ta.request(t, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"username": "otheruser",
		"email":    "shopper@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestLogoutDiscardsCart(t *testing.T) {
	ta := newTestApp(t)
	mug := ta.seedProduct(t, "Blue Mug", "10.00")

	sessionID, _ := ta.registerAndLogin(t, "shopper@example.com")
	resp := ta.request(t, fiber.MethodPost, "/api/v1/cart/items/"+mug.ID, sessionID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = ta.request(t, fiber.MethodPost, "/api/v1/auth/logout", sessionID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The old session id now resolves to a fresh anonymous session.
	resp = ta.request(t, fiber.MethodGet, "/api/v1/cart", sessionID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var snapshot services.CartSnapshot
	decodeJSON(t, resp, &snapshot)
	assert.Empty(t, snapshot.Lines)
}
