package repository

import (
	"github.com/mkim/storehub-backend/internal/app/model"
	"github.com/mkim/storehub-backend/pkg/logger"
	"gorm.io/gorm"
)

type TagRepository interface {
	Create(tag *model.Tag) error
	FindByID(id uint) (*model.Tag, error)
	FindByStoreID(storeID uint) ([]model.Tag, error)
	Delete(id uint) error
	LinkedItemCount(tagID uint) (int64, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(tag *model.Tag) error {
	if err := r.db.Create(tag).Error; err != nil {
		logger.Error("Failed to create tag in database", err, map[string]interface{}{
			"name":     tag.Name,
			"store_id": tag.StoreID,
		})
		return err
	}

	logger.Debug("Tag created in database", map[string]interface{}{
		"tag_id":   tag.ID,
		"name":     tag.Name,
		"store_id": tag.StoreID,
	})
	return nil
}

func (r *tagRepository) FindByID(id uint) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.Preload("Store").Preload("Items").First(&tag, id).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByStoreID(storeID uint) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.Where("store_id = ?", storeID).Order("name ASC").Find(&tags).Error
	if err != nil {
		logger.Error("Failed to list tags for store from database", err, map[string]interface{}{
			"store_id": storeID,
		})
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Tag{}, id).Error; err != nil {
		logger.Error("Failed to delete tag from database", err, map[string]interface{}{
			"tag_id": id,
		})
		return err
	}
	return nil
}

func (r *tagRepository) LinkedItemCount(tagID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ItemTag{}).Where("tag_id = ?", tagID).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
