package repository

import (
	"github.com/mkim/storehub-backend/internal/app/model"
	"github.com/mkim/storehub-backend/pkg/logger"
	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(item *model.Item) error
	FindAll() ([]model.Item, error)
	FindByID(id uint) (*model.Item, error)
	Save(item *model.Item) error
	Delete(id uint) error
	AppendTag(item *model.Item, tag *model.Tag) error
	RemoveTag(item *model.Item, tag *model.Tag) error
	HasTag(itemID, tagID uint) (bool, error)
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(item *model.Item) error {
	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create item in database", err, map[string]interface{}{
			"name":     item.Name,
			"store_id": item.StoreID,
		})
		return err
	}

	logger.Debug("Item created in database", map[string]interface{}{
		"item_id":  item.ID,
		"name":     item.Name,
		"store_id": item.StoreID,
	})
	return nil
}

func (r *itemRepository) FindAll() ([]model.Item, error) {
	var items []model.Item
	if err := r.db.Preload("Store").Preload("Tags").Order("id ASC").Find(&items).Error; err != nil {
		logger.Error("Failed to list items from database", err)
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) FindByID(id uint) (*model.Item, error) {
	var item model.Item
	err := r.db.Preload("Store").Preload("Tags").First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Save writes all fields of the item, inserting it when the primary key does
// not exist yet. Backs the upsert semantics of PUT /item/:id.
func (r *itemRepository) Save(item *model.Item) error {
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to save item in database", err, map[string]interface{}{
			"item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *itemRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&model.ItemTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Item{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete item from database", err, map[string]interface{}{
			"item_id": id,
		})
		return err
	}

	logger.Debug("Item deleted from database", map[string]interface{}{
		"item_id": id,
	})
	return nil
}

func (r *itemRepository) AppendTag(item *model.Item, tag *model.Tag) error {
	if err := r.db.Model(item).Association("Tags").Append(tag); err != nil {
		logger.Error("Failed to link tag to item", err, map[string]interface{}{
			"item_id": item.ID,
			"tag_id":  tag.ID,
		})
		return err
	}
	return nil
}

func (r *itemRepository) RemoveTag(item *model.Item, tag *model.Tag) error {
	if err := r.db.Model(item).Association("Tags").Delete(tag); err != nil {
		logger.Error("Failed to unlink tag from item", err, map[string]interface{}{
			"item_id": item.ID,
			"tag_id":  tag.ID,
		})
		return err
	}
	return nil
}

func (r *itemRepository) HasTag(itemID, tagID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.ItemTag{}).
		Where("item_id = ? AND tag_id = ?", itemID, tagID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
