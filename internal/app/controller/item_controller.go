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

type ItemController struct {
	itemService service.ItemService
}

func NewItemController(itemService service.ItemService) *ItemController {
	return &ItemController{itemService: itemService}
}

type CreateItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	StoreID     uint     `json:"store_id" binding:"required"`
}

// UpsertItemRequest allows store_id to be absent for pure updates; it is
// required only when the target item does not exist yet.
type UpsertItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	StoreID     uint     `json:"store_id"`
}

func itemResponse(item *model.Item) gin.H {
	resp := gin.H{
		"id":          item.ID,
		"name":        item.Name,
		"description": item.Description,
		"price":       item.Price,
		"store_id":    item.StoreID,
	}
	if item.Store != nil {
		resp["store"] = plainStore(item.Store)
	}
	tags := make([]gin.H, 0, len(item.Tags))
	for i := range item.Tags {
		tags = append(tags, plainTag(&item.Tags[i]))
	}
	resp["tags"] = tags
	return resp
}

func plainItem(item *model.Item) gin.H {
	return gin.H{
		"id":          item.ID,
		"name":        item.Name,
		"description": item.Description,
		"price":       item.Price,
		"store_id":    item.StoreID,
	}
}

// ListItems handles GET /item
func (ctrl *ItemController) ListItems(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	items, err := ctrl.itemService.ListItems()
	if err != nil {
		log.Error("Failed to list items", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list items")
		return
	}

	responses := make([]gin.H, 0, len(items))
	for i := range items {
		responses = append(responses, itemResponse(&items[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"items": responses,
		"count": len(responses),
	})
}

// GetItem handles GET /item/:id
func (ctrl *ItemController) GetItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := ctrl.itemService.GetItem(id)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			apperrors.NotFound(c, apperrors.ItemNotFound, "Item not found")
			return
		}
		log.Error("Failed to get item", err, map[string]interface{}{
			"item_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": itemResponse(item)})
}

// CreateItem handles POST /item (admin, fresh token)
func (ctrl *ItemController) CreateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := ctrl.itemService.CreateItem(req.Name, req.Description, *req.Price, req.StoreID)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
			return
		}
		log.Error("Failed to create item", err, map[string]interface{}{
			"name":     req.Name,
			"store_id": req.StoreID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create item")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item created",
		"item":    itemResponse(item),
	})
}

// UpsertItem handles PUT /item/:id (admin). Updates the item when it exists,
// creates it under the given id otherwise.
func (ctrl *ItemController) UpsertItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpsertItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, created, err := ctrl.itemService.UpsertItem(id, req.Name, req.Description, *req.Price, req.StoreID)
	if err != nil {
		if errors.Is(err, service.ErrStoreRequired) {
			apperrors.BadRequest(c, apperrors.ValidationRequired, "store_id is required when creating an item")
			return
		}
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
			return
		}
		log.Error("Failed to upsert item", err, map[string]interface{}{
			"item_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "upsert item")
		return
	}

	status := http.StatusOK
	message := "Item updated"
	if created {
		status = http.StatusCreated
		message = "Item created"
	}
	c.JSON(status, gin.H{
		"message": message,
		"item":    itemResponse(item),
	})
}

// DeleteItem handles DELETE /item/:id (admin)
func (ctrl *ItemController) DeleteItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.itemService.DeleteItem(id); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			apperrors.NotFound(c, apperrors.ItemNotFound, "Item not found")
			return
		}
		log.Error("Failed to delete item", err, map[string]interface{}{
			"item_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// LinkTag handles POST /item/:id/tag/:tag_id
func (ctrl *ItemController) LinkTag(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tagID, ok := parseIDParam(c, "tag_id")
	if !ok {
		return
	}

	tag, err := ctrl.itemService.LinkTag(itemID, tagID)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			apperrors.NotFound(c, apperrors.ItemNotFound, "Item not found")
			return
		}
		if errors.Is(err, service.ErrTagNotFound) {
			apperrors.NotFound(c, apperrors.TagNotFound, "Tag not found")
			return
		}
		log.Error("Failed to link tag to item", err, map[string]interface{}{
			"item_id": itemID,
			"tag_id":  tagID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "link tag")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tag linked to item",
		"tag":     tagResponse(tag),
	})
}

// UnlinkTag handles DELETE /item/:id/tag/:tag_id
func (ctrl *ItemController) UnlinkTag(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tagID, ok := parseIDParam(c, "tag_id")
	if !ok {
		return
	}

	if err := ctrl.itemService.UnlinkTag(itemID, tagID); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			apperrors.NotFound(c, apperrors.ItemNotFound, "Item not found")
			return
		}
		if errors.Is(err, service.ErrTagNotFound) {
			apperrors.NotFound(c, apperrors.TagNotFound, "Tag not found")
			return
		}
		if errors.Is(err, service.ErrTagNotLinked) {
			apperrors.BadRequest(c, apperrors.TagNotLinked, "Tag is not linked to this item")
			return
		}
		log.Error("Failed to unlink tag from item", err, map[string]interface{}{
			"item_id": itemID,
			"tag_id":  tagID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "unlink tag")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag removed from item"})
}
