package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a product in the catalog. The ID is assigned by the
// persistence layer on creation and never changes afterwards.
type Product struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100)"`
	Price     float64        `json:"price"`
	Color     string         `json:"color" gorm:"type:varchar(50)"`
	Stock     int            `json:"stock"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// ProductRequest is the request body for creating or updating a product.
// Price and Stock are pointers so that a missing field can be told apart
// from an explicit zero (price 0 is valid, an absent price is not).
type ProductRequest struct {
	Name  string   `json:"name" validate:"required,max=100"`
	Price *float64 `json:"price" validate:"required,gte=0"`
	Color string   `json:"color" validate:"omitempty,max=50"`
	Stock *int     `json:"stock" validate:"required,gte=0"`
}

// ToProduct converts a validated request into a Product entity.
// The caller is responsible for setting the ID on updates.
func (r ProductRequest) ToProduct() Product {
	return Product{
		Name:  r.Name,
		Price: *r.Price,
		Color: r.Color,
		Stock: *r.Stock,
	}
}
