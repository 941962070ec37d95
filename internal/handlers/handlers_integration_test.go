package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Udaypole/Market-System/internal/handlers"
	"github.com/Udaypole/Market-System/internal/middleware"
	"github.com/Udaypole/Market-System/internal/models"
	"github.com/Udaypole/Market-System/internal/repositories"
	"github.com/Udaypole/Market-System/internal/services"
)

// envelope mirrors models.APIResponse for decoding test responses.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

type productPage struct {
	Success    bool                         `json:"success"`
	Data       []models.ProductWithCategory `json:"data"`
	Pagination models.Pagination            `json:"pagination"`
}

// setupApp wires the full HTTP stack against seeded in-memory repositories,
// the same way main does minus the listener and the message queue.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	userRepo := repositories.NewMemoryUserRepository()
	categoryRepo := repositories.NewMemoryCategoryRepository()
	productRepo := repositories.NewMemoryProductRepository()
	require.NoError(t, repositories.Seed(userRepo, categoryRepo, productRepo))

	zlog := zap.NewNop()
	authService := services.NewAuthService(userRepo, "integration-test-secret", zlog)
	productService := services.NewProductService(productRepo, categoryRepo, nil, zlog)
	categoryService := services.NewCategoryService(categoryRepo, productRepo, nil, zlog)
	searchService := services.NewSearchService(productRepo, categoryRepo)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	authRequired := middleware.AuthRequired(authService)
	adminRequired := middleware.AdminRequired()

	handlers.NewAuthHandler(authService, zlog).RegisterRoutes(apiV1, authRequired)
	handlers.NewProductHandler(productService, zlog).RegisterRoutes(apiV1, authRequired, adminRequired)
	handlers.NewCategoryHandler(categoryService, zlog).RegisterRoutes(apiV1, authRequired, adminRequired)
	handlers.NewSearchHandler(searchService, zlog).RegisterRoutes(apiV1)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any, token string) *http.Response {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func loginToken(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	resp := doRequest(t, app, http.MethodPost, "/api/v1/auth/login", fiber.Map{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env envelope
	decodeBody(t, resp, &env)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestRegisterAndProfile(t *testing.T) {
	app := setupApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/v1/auth/register", fiber.Map{
		"email":     "alice@example.com",
		"password":  "password123",
		"firstName": "Alice",
		"lastName":  "Walker",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var env envelope
	decodeBody(t, resp, &env)
	assert.True(t, env.Success)

	var data struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, models.RoleUser, data.User.Role)
	require.NotEmpty(t, data.Token)

	// The issued token works against the profile route.
	resp = doRequest(t, app, http.MethodGet, "/api/v1/auth/me", nil, data.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	decodeBody(t, resp, &env)
	var me models.User
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "alice@example.com", me.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/v1/auth/register", fiber.Map{
		"email":     "john@example.com", // seeded
		"password":  "password123",
		"firstName": "John",
		"lastName":  "Again",
	}, "")

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var env envelope
	decodeBody(t, resp, &env)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestRegisterValidation(t *testing.T) {
	app := setupApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/v1/auth/register", fiber.Map{
		"email":     "not-an-email",
		"password":  "123", // too short
		"firstName": "X",
		"lastName":  "Y",
	}, "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	app := setupApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/v1/auth/login", fiber.Map{
		"email":    "john@example.com",
		"password": "wrong-password",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProfileRequiresToken(t *testing.T) {
	app := setupApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/auth/me", nil, "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProductListingPagination(t *testing.T) {
	app := setupApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/products", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page productPage
	decodeBody(t, resp, &page)

	assert.True(t, page.Success)
	assert.Len(t, page.Data, 10) // default limit
	assert.Equal(t, 20, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	require.NotNil(t, page.Data[0].Category)
	assert.NotEmpty(t, page.Data[0].Category.Slug)

	// A page beyond the collection is empty, not an error.
	resp = doRequest(t, app, http.MethodGet, "/api/v1/products?page=3", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &page)
	assert.Empty(t, page.Data)
	assert.Equal(t, 20, page.Pagination.Total)
}

func TestProductListingFilters(t *testing.T) {
	app := setupApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/products?search=wireless", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page productPage
	decodeBody(t, resp, &page)
	assert.Equal(t, 2, page.Pagination.Total)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/products?minPrice=100", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &page)
	assert.Equal(t, 3, page.Pagination.Total)
	for _, p := range page.Data {
		assert.GreaterOrEqual(t, p.Price, 100.0)
	}

	resp = doRequest(t, app, http.MethodGet, "/api/v1/products?minPrice=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/products?status=archived", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProductDetailNotFound(t *testing.T) {
	app := setupApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/products/9999", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductMutationsRequireAdmin(t *testing.T) {
	app := setupApp(t)

	body := fiber.Map{
		"name":        "USB-C Hub",
		"description": "7-in-1 USB-C hub with HDMI output",
		"price":       59.99,
		"categoryId":  "1",
		"inventory":   10,
		"sku":         "UCH-001",
	}

	resp := doRequest(t, app, http.MethodPost, "/api/v1/products", body, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	userToken := loginToken(t, app, "john@example.com", "user123")
	resp = doRequest(t, app, http.MethodPost, "/api/v1/products", body, userToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminToken := loginToken(t, app, "admin@marketplace.com", "admin123")
	resp = doRequest(t, app, http.MethodPost, "/api/v1/products", body, adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var env envelope
	decodeBody(t, resp, &env)
	var created models.Product
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.StatusActive, created.Status)
}

func TestProductCreateConflictsAndValidation(t *testing.T) {
	app := setupApp(t)
	adminToken := loginToken(t, app, "admin@marketplace.com", "admin123")

	// Seeded SKU.
	resp := doRequest(t, app, http.MethodPost, "/api/v1/products", fiber.Map{
		"name":        "Another Headphones",
		"description": "Duplicate SKU attempt",
		"price":       10.0,
		"categoryId":  "1",
		"inventory":   1,
		"sku":         "WBH-001",
	}, adminToken)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Unknown category.
	resp = doRequest(t, app, http.MethodPost, "/api/v1/products", fiber.Map{
		"name":        "Orphan Product",
		"description": "No such category",
		"price":       10.0,
		"categoryId":  "999",
		"inventory":   1,
		"sku":         "ORP-001",
	}, adminToken)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Missing required fields.
	resp = doRequest(t, app, http.MethodPost, "/api/v1/products", fiber.Map{
		"name": "Incomplete",
	}, adminToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateIgnoresClientSuppliedID(t *testing.T) {
	app := setupApp(t)
	adminToken := loginToken(t, app, "admin@marketplace.com", "admin123")

	// "1" is the id of a seeded product; the server must assign its own.
	resp := doRequest(t, app, http.MethodPost, "/api/v1/products", fiber.Map{
		"id":          "1",
		"name":        "Impostor Headphones",
		"description": "Arrives with a taken id",
		"price":       9.99,
		"categoryId":  "1",
		"inventory":   1,
		"sku":         "IMP-001",
	}, adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var env envelope
	decodeBody(t, resp, &env)
	var created models.Product
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEqual(t, "1", created.ID)

	// The seeded product keeps its identity.
	resp = doRequest(t, app, http.MethodGet, "/api/v1/products/1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &env)
	var existing models.Product
	require.NoError(t, json.Unmarshal(env.Data, &existing))
	assert.Equal(t, "Wireless Bluetooth Headphones", existing.Name)

	// Same for categories.
	resp = doRequest(t, app, http.MethodPost, "/api/v1/categories", fiber.Map{
		"id":          "1",
		"name":        "Outdoors",
		"description": "Camping and hiking gear",
		"slug":        "outdoors",
	}, adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	decodeBody(t, resp, &env)
	var category models.Category
	require.NoError(t, json.Unmarshal(env.Data, &category))
	assert.NotEqual(t, "1", category.ID)
}

func TestProductUpdateAndDelete(t *testing.T) {
	app := setupApp(t)
	adminToken := loginToken(t, app, "admin@marketplace.com", "admin123")

	resp := doRequest(t, app, http.MethodPut, "/api/v1/products/1", fiber.Map{
		"price":     179.99,
		"inventory": 42,
	}, adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env envelope
	decodeBody(t, resp, &env)
	var updated models.Product
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, 179.99, updated.Price)
	assert.Equal(t, 42, updated.Inventory)
	assert.Equal(t, "Wireless Bluetooth Headphones", updated.Name) // untouched

	resp = doRequest(t, app, http.MethodDelete, "/api/v1/products/1", nil, adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/products/1", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, http.MethodDelete, "/api/v1/products/1", nil, adminToken)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCategoryListingAndDetail(t *testing.T) {
	app := setupApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/categories", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env envelope
	decodeBody(t, resp, &env)
	var categories []models.CategoryWithCount
	require.NoError(t, json.Unmarshal(env.Data, &categories))
	require.Len(t, categories, 5)

	total := 0
	for _, c := range categories {
		total += c.ProductCount
	}
	assert.Equal(t, 20, total)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/categories/1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &env)
	var detail models.CategoryDetail
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "electronics", detail.Slug)
	assert.Equal(t, 6, detail.ProductCount)
	assert.Len(t, detail.Products, 5) // preview cap

	resp = doRequest(t, app, http.MethodGet, "/api/v1/categories/999", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCategoryCreateAndDelete(t *testing.T) {
	app := setupApp(t)
	adminToken := loginToken(t, app, "admin@marketplace.com", "admin123")

	// Slug already seeded.
	resp := doRequest(t, app, http.MethodPost, "/api/v1/categories", fiber.Map{
		"name":        "Electronics Again",
		"description": "Duplicate slug attempt",
		"slug":        "electronics",
	}, adminToken)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Slug format is validated.
	resp = doRequest(t, app, http.MethodPost, "/api/v1/categories", fiber.Map{
		"name":        "Bad Slug",
		"description": "Uppercase slug",
		"slug":        "Not A Slug",
	}, adminToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/categories", fiber.Map{
		"name":        "Toys",
		"description": "Toys and games",
		"slug":        "toys",
	}, adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var env envelope
	decodeBody(t, resp, &env)
	var created models.Category
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.ID)

	// A category with products cannot be deleted; the fresh empty one can.
	resp = doRequest(t, app, http.MethodDelete, "/api/v1/categories/1", nil, adminToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodDelete, "/api/v1/categories/"+created.ID, nil, adminToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSearchEndpoint(t *testing.T) {
	app := setupApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/search?query=programming&sortBy=price&sortOrder=desc", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page productPage
	decodeBody(t, resp, &page)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "React Programming Book", page.Data[0].Name)
	assert.Equal(t, "JavaScript Programming Guide", page.Data[1].Name)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/search", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/search?query=book&sortBy=rating", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/search?query=book&sortOrder=sideways", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchSuggestionsEndpoint(t *testing.T) {
	app := setupApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/search/suggestions?q=wireless", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env envelope
	decodeBody(t, resp, &env)
	var suggestions models.SearchSuggestions
	require.NoError(t, json.Unmarshal(env.Data, &suggestions))
	assert.Len(t, suggestions.Products, 2)
	assert.Empty(t, suggestions.Categories)

	// Queries under two characters return empty lists.
	resp = doRequest(t, app, http.MethodGet, "/api/v1/search/suggestions?q=w", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &env)
	require.NoError(t, json.Unmarshal(env.Data, &suggestions))
	assert.Empty(t, suggestions.Products)
	assert.Empty(t, suggestions.Categories)
}
