// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/javajoker/ecommerce-api/internal/config"
	"github.com/javajoker/ecommerce-api/internal/database"
	"github.com/javajoker/ecommerce-api/internal/models"
)

// NewDB returns a migrated in-memory SQLite database. A single connection
// keeps every query on the same in-memory schema, so code under test must use
// the transaction handle for all writes inside a transaction.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(sqlite.Open(":memory:"), config.DatabaseConfig{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	t.Cleanup(func() { database.Close(db) })
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()

	user := &models.User{Username: username, Email: email}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateProduct(t *testing.T, db *gorm.DB, name, supplier, category string, price string) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Quantity: 10,
		Supplier: supplier,
		Category: category,
		Image:    "http://localhost:8080/media/products/" + name + ".png",
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func CreateShipping(t *testing.T, db *gorm.DB, userID uint) *models.Shipping {
	t.Helper()

	shipping := &models.Shipping{
		UserID:     userID,
		Name:       "Home",
		Address:    "1 Main Street",
		City:       "Lyon",
		Country:    "FR",
		PostalCode: "69001",
		Phone:      "0600000000",
	}
	require.NoError(t, db.Create(shipping).Error)
	return shipping
}

func Count(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
