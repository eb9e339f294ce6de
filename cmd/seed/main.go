package main

import (
	"errors"

	"github.com/mkim/storehub-backend/config"
	"github.com/mkim/storehub-backend/internal/app/model"
	"github.com/mkim/storehub-backend/internal/db"
	"github.com/mkim/storehub-backend/pkg/logger"
	"github.com/mkim/storehub-backend/pkg/util"
	"gorm.io/gorm"
)

// Seeds the admin account from ADMIN_USERNAME/ADMIN_PASSWORD and a small
// sample catalog. Safe to run repeatedly; existing rows are left alone.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err, nil)
	}

	logger.Initialize(logger.Config{Level: "info", Format: "console"})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err, nil)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err, nil)
	}

	conn := db.GetDB()

	if err := seedAdmin(conn, cfg); err != nil {
		logger.Fatal("Failed to seed admin user", err, nil)
	}
	if err := seedCatalog(conn); err != nil {
		logger.Fatal("Failed to seed sample catalog", err, nil)
	}

	logger.Info("Seeding complete", nil)
}

func seedAdmin(conn *gorm.DB, cfg *config.Config) error {
	if cfg.Admin.Password == "" {
		return errors.New("ADMIN_PASSWORD must be set to seed the admin user")
	}

	var existing model.User
	err := conn.Where("username = ?", cfg.Admin.Username).First(&existing).Error
	if err == nil {
		logger.Info("Admin user already exists, skipping", map[string]interface{}{
			"username": cfg.Admin.Username,
		})
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := util.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &model.User{
		Username:     cfg.Admin.Username,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := conn.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("Admin user created", map[string]interface{}{
		"user_id":  admin.ID,
		"username": admin.Username,
	})
	return nil
}

func seedCatalog(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&model.Store{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Stores already present, skipping catalog seed", map[string]interface{}{
			"count": count,
		})
		return nil
	}

	store := &model.Store{Name: "Downtown Market"}
	if err := conn.Create(store).Error; err != nil {
		return err
	}

	tags := []model.Tag{
		{Name: "organic", StoreID: store.ID},
		{Name: "sale", StoreID: store.ID},
	}
	if err := conn.Create(&tags).Error; err != nil {
		return err
	}

	items := []model.Item{
		{Name: "Coffee Beans", Description: "Single origin, whole bean", Price: 14.50, StoreID: store.ID},
		{Name: "Green Tea", Description: "Loose leaf", Price: 9.00, StoreID: store.ID},
	}
	if err := conn.Create(&items).Error; err != nil {
		return err
	}

	if err := conn.Model(&items[0]).Association("Tags").Append(&tags[0]); err != nil {
		return err
	}

	logger.Info("Sample catalog created", map[string]interface{}{
		"store_id": store.ID,
		"items":    len(items),
		"tags":     len(tags),
	})
	return nil
}
