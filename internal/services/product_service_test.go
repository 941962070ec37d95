package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Udaypole/Market-System/internal/catalog"
	"github.com/Udaypole/Market-System/internal/models"
	"github.com/Udaypole/Market-System/internal/repositories"
	"github.com/Udaypole/Market-System/internal/services"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(filter catalog.Filter) ([]models.Product, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySKU(sku string) (*models.Product, error) {
	args := m.Called(sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductRepository) CountByCategory(categoryID string) (int, error) {
	args := m.Called(categoryID)
	return args.Int(0), args.Error(1)
}

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetAll() ([]models.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(id string) (*models.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func newProductService(products *MockProductRepository, categories *MockCategoryRepository) *services.ProductService {
	return services.NewProductService(products, categories, nil, zap.NewNop())
}

func TestProductServiceList(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := newProductService(mockProducts, mockCategories)

	stored := make([]models.Product, 12)
	for i := range stored {
		stored[i] = models.Product{ID: string(rune('a' + i)), Name: "Item", CategoryID: "1"}
	}
	mockProducts.On("GetAll", catalog.Filter{CategoryID: "1"}).Return(stored, nil)
	mockCategories.On("GetByID", "1").Return(&models.Category{ID: "1", Name: "Electronics", Slug: "electronics"}, nil)

	items, pagination, err := service.List(catalog.Filter{CategoryID: "1"}, 2, 10)
	require.NoError(t, err)

	assert.Len(t, items, 2)
	assert.Equal(t, 12, pagination.Total)
	assert.Equal(t, 2, pagination.TotalPages)
	require.NotNil(t, items[0].Category)
	assert.Equal(t, "electronics", items[0].Category.Slug)
}

func TestProductServiceListDanglingCategory(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := newProductService(mockProducts, mockCategories)

	stored := []models.Product{{ID: "1", Name: "Orphan", CategoryID: "gone"}}
	mockProducts.On("GetAll", catalog.Filter{}).Return(stored, nil)
	mockCategories.On("GetByID", "gone").Return(nil, repositories.ErrNotFound)

	items, _, err := service.List(catalog.Filter{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Category)
}

func TestProductServiceGetNotFound(t *testing.T) {
	mockProducts := new(MockProductRepository)
	service := newProductService(mockProducts, new(MockCategoryRepository))

	mockProducts.On("GetByID", "404").Return(nil, repositories.ErrNotFound)

	_, err := service.Get("404")
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestProductServiceCreate(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := newProductService(mockProducts, mockCategories)

	mockCategories.On("GetByID", "1").Return(&models.Category{ID: "1"}, nil)
	mockProducts.On("GetBySKU", "NEW-001").Return(nil, repositories.ErrNotFound)
	mockProducts.On("Create", mock.AnythingOfType("*models.Product")).Return(nil)

	product := &models.Product{Name: "Widget", Price: 9.99, CategoryID: "1", SKU: "NEW-001"}
	err := service.Create(product)
	require.NoError(t, err)

	assert.Equal(t, models.StatusActive, product.Status) // defaulted
	assert.NotNil(t, product.Images)
	mockProducts.AssertExpectations(t)
}

func TestProductServiceCreateMissingCategory(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := newProductService(mockProducts, mockCategories)

	mockCategories.On("GetByID", "99").Return(nil, repositories.ErrNotFound)

	err := service.Create(&models.Product{Name: "Widget", CategoryID: "99", SKU: "NEW-001"})

	assert.ErrorIs(t, err, services.ErrCategoryNotFound)
	mockProducts.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductServiceCreateSKUConflict(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := newProductService(mockProducts, mockCategories)

	mockCategories.On("GetByID", "1").Return(&models.Category{ID: "1"}, nil)
	mockProducts.On("GetBySKU", "DUP-001").Return(&models.Product{ID: "5", SKU: "DUP-001"}, nil)

	err := service.Create(&models.Product{Name: "Widget", CategoryID: "1", SKU: "DUP-001"})

	assert.ErrorIs(t, err, services.ErrSKUTaken)
	mockProducts.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductServiceUpdateMergesFields(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := newProductService(mockProducts, mockCategories)

	stored := &models.Product{
		ID: "1", Name: "Old Name", Description: "Old description",
		Price: 10, CategoryID: "1", SKU: "SKU-001", Inventory: 5, Status: models.StatusActive,
	}
	mockProducts.On("GetByID", "1").Return(stored, nil)
	mockProducts.On("Update", mock.AnythingOfType("*models.Product")).Return(nil)

	updated, err := service.Update("1", models.ProductUpdate{
		Name:  strPtr("New Name"),
		Price: floatPtr(12.5),
	})
	require.NoError(t, err)

	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, 12.5, updated.Price)
	assert.Equal(t, "Old description", updated.Description) // untouched
	assert.Equal(t, "SKU-001", updated.SKU)
}

func TestProductServiceUpdateCategoryChecked(t *testing.T) {
	mockProducts := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := newProductService(mockProducts, mockCategories)

	stored := &models.Product{ID: "1", CategoryID: "1", SKU: "SKU-001"}
	mockProducts.On("GetByID", "1").Return(stored, nil)
	mockCategories.On("GetByID", "99").Return(nil, repositories.ErrNotFound)

	_, err := service.Update("1", models.ProductUpdate{CategoryID: strPtr("99")})

	assert.ErrorIs(t, err, services.ErrCategoryNotFound)
	mockProducts.AssertNotCalled(t, "Update", mock.Anything)
}

func TestProductServiceUpdateSKUConflict(t *testing.T) {
	mockProducts := new(MockProductRepository)
	service := newProductService(mockProducts, new(MockCategoryRepository))

	stored := &models.Product{ID: "1", CategoryID: "1", SKU: "SKU-001"}
	mockProducts.On("GetByID", "1").Return(stored, nil)
	mockProducts.On("GetBySKU", "SKU-002").Return(&models.Product{ID: "2", SKU: "SKU-002"}, nil)

	_, err := service.Update("1", models.ProductUpdate{SKU: strPtr("SKU-002")})

	assert.ErrorIs(t, err, services.ErrSKUTaken)
}

func TestProductServiceDelete(t *testing.T) {
	mockProducts := new(MockProductRepository)
	service := newProductService(mockProducts, new(MockCategoryRepository))

	mockProducts.On("Delete", "1").Return(nil).Once()
	assert.NoError(t, service.Delete("1"))

	mockProducts.On("Delete", "404").Return(repositories.ErrNotFound).Once()
	assert.ErrorIs(t, service.Delete("404"), services.ErrProductNotFound)
}
