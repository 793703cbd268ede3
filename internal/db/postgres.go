package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	config "github.com/Ramy-Emad2022/ecommerce-backend/configs"
	"github.com/Ramy-Emad2022/ecommerce-backend/internal/models"
)

// Open connects to Postgres and runs migrations. The returned handle is
// owned by the caller; there is no package-level connection.
func Open(cfg config.DBConfig) (*gorm.DB, error) {

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		cfg.Host,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.Port,
		cfg.TimeZone,
	)

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	if err := Migrate(gdb); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}

	return gdb, nil
}

// Migrate creates or updates the schema for every model. Tests call it
// directly against an in-memory SQLite handle.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
}

// Close releases the underlying connection pool.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
