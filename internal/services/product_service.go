package services

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Ad-Abhishek/product-api/internal/models"
	"github.com/Ad-Abhishek/product-api/internal/repositories"
	"github.com/Ad-Abhishek/product-api/pkg/rabbitmq"
)

// EventPublisher publishes product change events to a message broker.
// *rabbitmq.Client satisfies it.
type EventPublisher interface {
	PublishProductEvent(event rabbitmq.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case event publication is skipped.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct persists a new product. The store assigns the ID, which is
// written back into the struct before the created event goes out.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.publishEvent("product.created", product)
	return nil
}

// UpdateProduct replaces the mutable fields of the product with the given
// ID and returns the updated record.
func (s *ProductService) UpdateProduct(id uint, req models.ProductRequest) (*models.Product, error) {
	product := req.ToProduct()
	product.ID = id
	if err := s.repo.Update(&product); err != nil {
		return nil, err
	}
	s.publishEvent("product.updated", &product)
	return &product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publishEvent("product.deleted", product)
	return nil
}

// publishEvent emits a product change event. Publication is best-effort:
// a broker failure is logged and never fails the request that caused it.
func (s *ProductService) publishEvent(action string, product *models.Product) {
	if s.publisher == nil {
		return
	}

	event := rabbitmq.ProductEvent{
		EventID:    uuid.New().String(),
		Action:     action,
		ProductID:  product.ID,
		Name:       product.Name,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.PublishProductEvent(event); err != nil {
		log.Printf("Warning: Failed to publish %s event for product %d: %v", action, product.ID, err)
	}
}
