package service

import (
	"errors"

	"github.com/mkim/storehub-backend/internal/app/model"
	"github.com/mkim/storehub-backend/internal/app/repository"
	"github.com/mkim/storehub-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrStoreNotFound = errors.New("store not found")

type StoreService interface {
	ListStores() ([]model.Store, error)
	GetStore(id uint) (*model.Store, error)
	CreateStore(name string) (*model.Store, error)
	DeleteStore(id uint) error
}

type storeService struct {
	storeRepo repository.StoreRepository
}

func NewStoreService(storeRepo repository.StoreRepository) StoreService {
	return &storeService{storeRepo: storeRepo}
}

func (s *storeService) ListStores() ([]model.Store, error) {
	return s.storeRepo.FindAll()
}

func (s *storeService) GetStore(id uint) (*model.Store, error) {
	store, err := s.storeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		logger.Error("Failed to fetch store", err, map[string]interface{}{
			"store_id": id,
		})
		return nil, err
	}
	return store, nil
}

func (s *storeService) CreateStore(name string) (*model.Store, error) {
	store := &model.Store{Name: name}
	if err := s.storeRepo.Create(store); err != nil {
		return nil, err
	}

	logger.Info("Store created", map[string]interface{}{
		"store_id": store.ID,
		"name":     store.Name,
	})
	return store, nil
}

func (s *storeService) DeleteStore(id uint) error {
	if _, err := s.storeRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStoreNotFound
		}
		return err
	}

	if err := s.storeRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Store deleted with its items and tags", map[string]interface{}{
		"store_id": id,
	})
	return nil
}
