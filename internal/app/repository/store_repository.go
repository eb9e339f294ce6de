package repository

import (
	"github.com/mkim/storehub-backend/internal/app/model"
	"github.com/mkim/storehub-backend/pkg/logger"
	"gorm.io/gorm"
)

type StoreRepository interface {
	Create(store *model.Store) error
	FindAll() ([]model.Store, error)
	FindByID(id uint) (*model.Store, error)
	Delete(id uint) error
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(store *model.Store) error {
	if err := r.db.Create(store).Error; err != nil {
		logger.Error("Failed to create store in database", err, map[string]interface{}{
			"name": store.Name,
		})
		return err
	}

	logger.Debug("Store created in database", map[string]interface{}{
		"store_id": store.ID,
		"name":     store.Name,
	})
	return nil
}

func (r *storeRepository) FindAll() ([]model.Store, error) {
	var stores []model.Store
	if err := r.db.Preload("Items").Preload("Tags").Order("id ASC").Find(&stores).Error; err != nil {
		logger.Error("Failed to list stores from database", err)
		return nil, err
	}
	return stores, nil
}

func (r *storeRepository) FindByID(id uint) (*model.Store, error) {
	var store model.Store
	err := r.db.Preload("Items").Preload("Tags").First(&store, id).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// Delete removes the store and everything it owns in one transaction:
// join rows for its items, the items, the tags, then the store itself.
// Done explicitly rather than relying on FK cascading so the behavior is
// identical on Postgres and the sqlite test database.
func (r *storeRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var itemIDs []uint
		if err := tx.Model(&model.Item{}).Where("store_id = ?", id).Pluck("id", &itemIDs).Error; err != nil {
			return err
		}

		if len(itemIDs) > 0 {
			if err := tx.Where("item_id IN ?", itemIDs).Delete(&model.ItemTag{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("store_id = ?", id).Delete(&model.Item{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", id).Delete(&model.Tag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Store{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete store from database", err, map[string]interface{}{
			"store_id": id,
		})
		return err
	}

	logger.Debug("Store deleted from database", map[string]interface{}{
		"store_id": id,
	})
	return nil
}
