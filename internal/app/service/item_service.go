package service

import (
	"errors"

	"github.com/mkim/storehub-backend/internal/app/model"
	"github.com/mkim/storehub-backend/internal/app/repository"
	"github.com/mkim/storehub-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound  = errors.New("item not found")
	ErrStoreRequired = errors.New("store id is required to create an item")
	ErrTagNotLinked  = errors.New("tag is not linked to the item")
)

type ItemService interface {
	ListItems() ([]model.Item, error)
	GetItem(id uint) (*model.Item, error)
	CreateItem(name, description string, price float64, storeID uint) (*model.Item, error)
	// UpsertItem updates the named fields when the item exists, otherwise
	// creates the item under the given id. The bool reports creation.
	UpsertItem(id uint, name, description string, price float64, storeID uint) (*model.Item, bool, error)
	DeleteItem(id uint) error
	LinkTag(itemID, tagID uint) (*model.Tag, error)
	UnlinkTag(itemID, tagID uint) error
}

type itemService struct {
	itemRepo  repository.ItemRepository
	storeRepo repository.StoreRepository
	tagRepo   repository.TagRepository
}

func NewItemService(
	itemRepo repository.ItemRepository,
	storeRepo repository.StoreRepository,
	tagRepo repository.TagRepository,
) ItemService {
	return &itemService{
		itemRepo:  itemRepo,
		storeRepo: storeRepo,
		tagRepo:   tagRepo,
	}
}

func (s *itemService) ListItems() ([]model.Item, error) {
	return s.itemRepo.FindAll()
}

func (s *itemService) GetItem(id uint) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		logger.Error("Failed to fetch item", err, map[string]interface{}{
			"item_id": id,
		})
		return nil, err
	}
	return item, nil
}

func (s *itemService) CreateItem(name, description string, price float64, storeID uint) (*model.Item, error) {
	if err := s.requireStore(storeID); err != nil {
		return nil, err
	}

	item := &model.Item{
		Name:        name,
		Description: description,
		Price:       price,
		StoreID:     storeID,
	}
	if err := s.itemRepo.Create(item); err != nil {
		return nil, err
	}

	logger.Info("Item created", map[string]interface{}{
		"item_id":  item.ID,
		"name":     item.Name,
		"store_id": item.StoreID,
	})
	return s.itemRepo.FindByID(item.ID)
}

func (s *itemService) UpsertItem(id uint, name, description string, price float64, storeID uint) (*model.Item, bool, error) {
	existing, err := s.itemRepo.FindByID(id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to fetch item for upsert", err, map[string]interface{}{
			"item_id": id,
		})
		return nil, false, err
	}

	if existing != nil {
		existing.Name = name
		existing.Price = price
		if description != "" {
			existing.Description = description
		}
		if err := s.itemRepo.Save(existing); err != nil {
			return nil, false, err
		}

		logger.Info("Item updated", map[string]interface{}{
			"item_id": existing.ID,
		})
		item, err := s.itemRepo.FindByID(existing.ID)
		return item, false, err
	}

	// Absent row: create it under the requested id.
	if storeID == 0 {
		return nil, false, ErrStoreRequired
	}
	if err := s.requireStore(storeID); err != nil {
		return nil, false, err
	}

	item := &model.Item{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		StoreID:     storeID,
	}
	if err := s.itemRepo.Save(item); err != nil {
		return nil, false, err
	}

	logger.Info("Item created via upsert", map[string]interface{}{
		"item_id":  item.ID,
		"store_id": item.StoreID,
	})
	created, err := s.itemRepo.FindByID(item.ID)
	return created, true, err
}

func (s *itemService) DeleteItem(id uint) error {
	if _, err := s.GetItem(id); err != nil {
		return err
	}

	if err := s.itemRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Item deleted", map[string]interface{}{
		"item_id": id,
	})
	return nil
}

func (s *itemService) LinkTag(itemID, tagID uint) (*model.Tag, error) {
	item, err := s.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	tag, err := s.tagRepo.FindByID(tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}

	if err := s.itemRepo.AppendTag(item, tag); err != nil {
		return nil, err
	}

	logger.Info("Tag linked to item", map[string]interface{}{
		"item_id": itemID,
		"tag_id":  tagID,
	})
	return s.tagRepo.FindByID(tagID)
}

func (s *itemService) UnlinkTag(itemID, tagID uint) error {
	item, err := s.GetItem(itemID)
	if err != nil {
		return err
	}

	tag, err := s.tagRepo.FindByID(tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return err
	}

	linked, err := s.itemRepo.HasTag(itemID, tagID)
	if err != nil {
		return err
	}
	if !linked {
		return ErrTagNotLinked
	}

	if err := s.itemRepo.RemoveTag(item, tag); err != nil {
		return err
	}

	logger.Info("Tag unlinked from item", map[string]interface{}{
		"item_id": itemID,
		"tag_id":  tagID,
	})
	return nil
}

func (s *itemService) requireStore(storeID uint) error {
	if _, err := s.storeRepo.FindByID(storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Item operation references missing store", map[string]interface{}{
				"store_id": storeID,
			})
			return ErrStoreNotFound
		}
		return err
	}
	return nil
}
