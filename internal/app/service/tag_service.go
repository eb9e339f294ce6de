package service

import (
	"errors"

	"github.com/mkim/storehub-backend/internal/app/model"
	"github.com/mkim/storehub-backend/internal/app/repository"
	"github.com/mkim/storehub-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrTagNotFound = errors.New("tag not found")
	ErrTagLinked   = errors.New("tag is linked to an item and cannot be deleted")
)

type TagService interface {
	ListStoreTags(storeID uint) ([]model.Tag, error)
	CreateTag(storeID uint, name string) (*model.Tag, error)
	GetTag(id uint) (*model.Tag, error)
	DeleteTag(id uint) error
}

type tagService struct {
	tagRepo   repository.TagRepository
	storeRepo repository.StoreRepository
}

func NewTagService(tagRepo repository.TagRepository, storeRepo repository.StoreRepository) TagService {
	return &tagService{
		tagRepo:   tagRepo,
		storeRepo: storeRepo,
	}
}

func (s *tagService) ListStoreTags(storeID uint) ([]model.Tag, error) {
	if _, err := s.storeRepo.FindByID(storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return s.tagRepo.FindByStoreID(storeID)
}

func (s *tagService) CreateTag(storeID uint, name string) (*model.Tag, error) {
	if _, err := s.storeRepo.FindByID(storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Tag creation references missing store", map[string]interface{}{
				"store_id": storeID,
			})
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	tag := &model.Tag{
		Name:    name,
		StoreID: storeID,
	}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, err
	}

	logger.Info("Tag created", map[string]interface{}{
		"tag_id":   tag.ID,
		"name":     tag.Name,
		"store_id": tag.StoreID,
	})
	return tag, nil
}

func (s *tagService) GetTag(id uint) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		logger.Error("Failed to fetch tag", err, map[string]interface{}{
			"tag_id": id,
		})
		return nil, err
	}
	return tag, nil
}

// DeleteTag refuses to delete a tag while any item still references it.
func (s *tagService) DeleteTag(id uint) error {
	if _, err := s.GetTag(id); err != nil {
		return err
	}

	linked, err := s.tagRepo.LinkedItemCount(id)
	if err != nil {
		return err
	}
	if linked > 0 {
		logger.Warn("Refusing to delete tag with linked items", map[string]interface{}{
			"tag_id":       id,
			"linked_items": linked,
		})
		return ErrTagLinked
	}

	if err := s.tagRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Tag deleted", map[string]interface{}{
		"tag_id": id,
	})
	return nil
}
