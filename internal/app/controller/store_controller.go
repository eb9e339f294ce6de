package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkim/storehub-backend/internal/app/model"
	"github.com/mkim/storehub-backend/internal/app/service"
	apperrors "github.com/mkim/storehub-backend/internal/errors"
	"github.com/mkim/storehub-backend/internal/middleware"
)

type StoreController struct {
	storeService service.StoreService
}

func NewStoreController(storeService service.StoreService) *StoreController {
	return &StoreController{storeService: storeService}
}

type CreateStoreRequest struct {
	Name string `json:"name" binding:"required"`
}

func storeResponse(store *model.Store) gin.H {
	items := make([]gin.H, 0, len(store.Items))
	for i := range store.Items {
		items = append(items, plainItem(&store.Items[i]))
	}
	tags := make([]gin.H, 0, len(store.Tags))
	for i := range store.Tags {
		tags = append(tags, plainTag(&store.Tags[i]))
	}
	return gin.H{
		"id":    store.ID,
		"name":  store.Name,
		"items": items,
		"tags":  tags,
	}
}

func plainStore(store *model.Store) gin.H {
	return gin.H{
		"id":   store.ID,
		"name": store.Name,
	}
}

// ListStores handles GET /store
func (ctrl *StoreController) ListStores(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stores, err := ctrl.storeService.ListStores()
	if err != nil {
		log.Error("Failed to list stores", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list stores")
		return
	}

	responses := make([]gin.H, 0, len(stores))
	for i := range stores {
		responses = append(responses, storeResponse(&stores[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"stores": responses,
		"count":  len(responses),
	})
}

// GetStore handles GET /store/:id
func (ctrl *StoreController) GetStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	store, err := ctrl.storeService.GetStore(id)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
			return
		}
		log.Error("Failed to get store", err, map[string]interface{}{
			"store_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get store")
		return
	}

	c.JSON(http.StatusOK, gin.H{"store": storeResponse(store)})
}

// CreateStore handles POST /store
func (ctrl *StoreController) CreateStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateStoreRequest
	if !bindJSON(c, &req) {
		return
	}

	store, err := ctrl.storeService.CreateStore(req.Name)
	if err != nil {
		log.Error("Failed to create store", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create store")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Store created",
		"store":   storeResponse(store),
	})
}

// DeleteStore handles DELETE /store/:id, cascading to items and tags
func (ctrl *StoreController) DeleteStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.storeService.DeleteStore(id); err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
			return
		}
		log.Error("Failed to delete store", err, map[string]interface{}{
			"store_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete store")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Store deleted"})
}
