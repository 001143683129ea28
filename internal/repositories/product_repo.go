package repositories

import (
	"errors"

	"github.com/Ad-Abhishek/product-api/internal/models"
)

// ErrProductNotFound is returned when no product exists for a given ID.
// Callers discriminate it with errors.Is to answer 404 instead of 500.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}
