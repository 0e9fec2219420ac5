// internal/database/connection.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/javajoker/ecommerce-api/internal/config"
	"github.com/javajoker/ecommerce-api/internal/models"
)

// Initialize opens the configured postgres database. DB_DRIVER=pq routes the
// connection through lib/pq instead of the dialector's default pgx driver.
func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "pq":
		connector, err := pq.NewConnector(cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to build pq connector: %w", err)
		}
		dialector = postgres.New(postgres.Config{Conn: sql.OpenDB(connector)})
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	return Connect(dialector, cfg)
}

// Connect opens gorm on top of any dialector and applies pool settings.
func Connect(dialector gorm.Dialector, cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(cfg.LogLevel, cfg.SlowThreshold()),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithField("dialect", db.Dialector.Name()).Info("Database connection established")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed")
	}
}

// AllModels lists every table owned by the service, in creation order.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.UserProfile{},
		&models.Product{},
		&models.Favorite{},
		&models.Cart{},
		&models.History{},
		&models.Review{},
		&models.Poster{},
		&models.Shipping{},
		&models.Order{},
		&models.OrderItem{},
		&models.Otp{},
		&models.Notification{},
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := backfillSearchText(db); err != nil {
		return fmt.Errorf("failed to backfill product search text: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed")
	return nil
}

// backfillSearchText fills search_text for products written before the
// column existed.
func backfillSearchText(db *gorm.DB) error {
	var products []models.Product
	return db.Where("search_text IS NULL OR search_text = ''").
		FindInBatches(&products, 200, func(tx *gorm.DB, batch int) error {
			for i := range products {
				text := models.ProductSearchText(products[i].Name, products[i].Supplier, products[i].Category)
				if err := tx.Model(&products[i]).UpdateColumn("search_text", text).Error; err != nil {
					return err
				}
			}
			return nil
		}).Error
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Case-insensitive lookups on login
		"CREATE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email))",

		// Listing order
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders (user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_histories_user_viewed ON histories (user_id, viewed_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_reviews_product_created ON reviews (product_id, created_at DESC)",
	}

	// Trigram indexes back the substring search and only exist on postgres.
	if db.Dialector.Name() == "postgres" {
		indexes = append(indexes,
			"CREATE EXTENSION IF NOT EXISTS pg_trgm",
			"CREATE INDEX IF NOT EXISTS idx_products_search_trgm ON products USING GIN (search_text gin_trgm_ops)",
		)
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			// Keep going; a missing index only costs speed.
			logrus.WithError(err).WithField("statement", index).Warn("Failed to create index")
		}
	}

	return nil
}

// WithTransaction runs fn inside a transaction bound to ctx. Returning an
// error or panicking rolls everything back.
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
