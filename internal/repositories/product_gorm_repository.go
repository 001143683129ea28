package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Ad-Abhishek/product-api/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	// Non-nil so an empty table serializes as [] rather than null.
	products := make([]models.Product, 0)
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product. The database assigns the ID, which GORM
// writes back into the struct.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an existing product. The record is
// loaded first so creation timestamps survive and absence is reported as
// ErrProductNotFound rather than an accidental insert.
func (r *GORMProductRepository) Update(product *models.Product) error {
	var existing models.Product
	if err := r.db.First(&existing, product.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %d: %w", product.ID, ErrProductNotFound)
		}
		return fmt.Errorf("failed to load product %d for update: %w", product.ID, err)
	}

	existing.Name = product.Name
	existing.Price = product.Price
	existing.Color = product.Color
	existing.Stock = product.Stock

	if err := r.db.Save(&existing).Error; err != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}

	*product = existing
	return nil
}

// Delete removes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, ErrProductNotFound)
	}
	return nil
}
