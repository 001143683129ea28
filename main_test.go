package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ad-Abhishek/product-api/internal/models"
	"github.com/Ad-Abhishek/product-api/internal/repositories"
)

func TestNewProductRepositoryMemory(t *testing.T) {
	repo, err := newProductRepository("memory", "")
	assert.NoError(t, err)
	assert.IsType(t, &repositories.MockProductRepository{}, repo)
}

func TestNewProductRepositorySQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "products_test.db")

	repo, err := newProductRepository("sqlite", dsn)
	assert.NoError(t, err)
	assert.IsType(t, &repositories.GORMProductRepository{}, repo)

	// Migration ran: the repository is usable immediately.
	product := models.Product{Name: "Chair", Price: 49.99, Stock: 10}
	assert.NoError(t, repo.Create(&product))
	assert.NotZero(t, product.ID)
}

func TestOpenDatabaseSQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "products_test.db")

	db, err := openDatabase("sqlite", dsn)
	assert.NoError(t, err)
	assert.NotNil(t, db)

	assert.NoError(t, db.AutoMigrate(&models.Product{}))
}

func TestOpenDatabaseUnsupportedDriver(t *testing.T) {
	db, err := openDatabase("mongodb", "mongodb://localhost")
	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}
