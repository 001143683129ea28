package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Ad-Abhishek/product-api/internal/models"
	"github.com/Ad-Abhishek/product-api/internal/repositories"
	"github.com/Ad-Abhishek/product-api/internal/services"
	"github.com/Ad-Abhishek/product-api/pkg/rabbitmq"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	args := m.Called(id)
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

func (m *MockProductRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProductEvent(event rabbitmq.ProductEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func productEventWith(action string, productID uint) interface{} {
	return mock.MatchedBy(func(event rabbitmq.ProductEvent) bool {
		return event.Action == action && event.ProductID == productID && event.EventID != ""
	})
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: 1, Name: "Product A", Price: 10.0, Stock: 100},
		{ID: 2, Name: "Product B", Price: 20.0, Color: "blue", Stock: 50},
	}

	mockRepo.On("GetAll").Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProduct := &models.Product{ID: 1, Name: "Product A", Price: 10.0, Stock: 100}

	// Test successful retrieval
	mockRepo.On("GetByID", uint(1)).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("GetByID", uint(99)).Return(nil, fmt.Errorf("product 99: %w", repositories.ErrProductNotFound)).Once()
	product, err = service.GetProductByID(99)
	assert.Error(t, err)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)

	newProduct := &models.Product{Name: "New Product", Price: 50.0, Stock: 20}

	// Test successful creation publishes a created event with the assigned ID
	mockRepo.On("Create", newProduct).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Product).ID = 7
	}).Return(nil).Once()
	mockPublisher.On("PublishProductEvent", productEventWith("product.created", 7)).Return(nil).Once()

	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), newProduct.ID)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)

	// Test creation failure publishes nothing
	failing := &models.Product{Name: "Broken", Price: 1.0, Stock: 1}
	mockRepo.On("Create", failing).Return(fmt.Errorf("database error")).Once()
	err = service.CreateProduct(failing)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertNumberOfCalls(t, "PublishProductEvent", 1)
}

func TestProductService_CreateProduct_PublisherFailureIsNotFatal(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)

	newProduct := &models.Product{Name: "New Product", Price: 50.0, Stock: 20}
	mockRepo.On("Create", newProduct).Return(nil).Once()
	mockPublisher.On("PublishProductEvent", mock.AnythingOfType("rabbitmq.ProductEvent")).Return(fmt.Errorf("broker down")).Once()

	// A broker failure must not fail the create itself.
	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)

	price := 12.0
	stock := 95
	req := models.ProductRequest{Name: "Product A Updated", Price: &price, Color: "green", Stock: &stock}

	// Test successful update
	mockRepo.On("Update", mock.AnythingOfType("*models.Product")).Return(nil).Once()
	mockPublisher.On("PublishProductEvent", productEventWith("product.updated", 1)).Return(nil).Once()

	updated, err := service.UpdateProduct(1, req)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), updated.ID)
	assert.Equal(t, "Product A Updated", updated.Name)
	assert.Equal(t, 12.0, updated.Price)
	assert.Equal(t, "green", updated.Color)
	assert.Equal(t, 95, updated.Stock)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)

	// Test update failure (product not found in repo)
	mockRepo.On("Update", mock.AnythingOfType("*models.Product")).Return(fmt.Errorf("product 99: %w", repositories.ErrProductNotFound)).Once()
	updated, err = service.UpdateProduct(99, req)
	assert.Error(t, err)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)

	existing := &models.Product{ID: 1, Name: "Product A", Price: 10.0, Stock: 100}

	// Test successful deletion publishes a deleted event
	mockRepo.On("GetByID", uint(1)).Return(existing, nil).Once()
	mockRepo.On("Delete", uint(1)).Return(nil).Once()
	mockPublisher.On("PublishProductEvent", productEventWith("product.deleted", 1)).Return(nil).Once()

	err := service.DeleteProduct(1)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)

	// Test deletion failure (product not found)
	mockRepo.On("GetByID", uint(99)).Return(nil, fmt.Errorf("product 99: %w", repositories.ErrProductNotFound)).Once()
	err = service.DeleteProduct(99)
	assert.Error(t, err)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}
