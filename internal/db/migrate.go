package db

import (
	"github.com/mkim/storehub-backend/internal/app/model"
	"github.com/mkim/storehub-backend/pkg/logger"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate() error {
	return MigrateDB(DB)
}

// MigrateDB runs migrations against the given connection.
func MigrateDB(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	// Register the explicit join model before AutoMigrate so item_tags is
	// created from model.ItemTag rather than a generated table.
	if err := db.SetupJoinTable(&model.Item{}, "Tags", &model.ItemTag{}); err != nil {
		logger.Error("Failed to set up item_tags join table", err)
		return err
	}
	if err := db.SetupJoinTable(&model.Tag{}, "Items", &model.ItemTag{}); err != nil {
		logger.Error("Failed to set up item_tags join table", err)
		return err
	}

	models := []interface{}{
		&model.User{},
		&model.Store{},
		&model.Item{},
		&model.Tag{},
		&model.ItemTag{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
