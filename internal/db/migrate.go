package db

import (
	"fmt"

	"github.com/casepix/casepix-backend/internal/app/model"
	appLogger "github.com/casepix/casepix-backend/pkg/logger"
	"gorm.io/gorm"
)

// Migrate runs schema migrations for all application models.
func Migrate(db *gorm.DB) error {
	appLogger.Info("Running database migrations")

	err := db.AutoMigrate(
		&model.User{},
		&model.MobileBrand{},
		&model.MobileModel{},
		&model.CompatibleGroup{},
		&model.Category{},
		&model.Product{},
		&model.ProductVariant{},
		&model.CaseContent{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	appLogger.Info("Database migrations completed successfully")
	return nil
}
