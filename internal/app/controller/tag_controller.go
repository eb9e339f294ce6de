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

type TagController struct {
	tagService service.TagService
}

func NewTagController(tagService service.TagService) *TagController {
	return &TagController{tagService: tagService}
}

type CreateTagRequest struct {
	Name string `json:"name" binding:"required"`
}

func tagResponse(tag *model.Tag) gin.H {
	resp := gin.H{
		"id":       tag.ID,
		"name":     tag.Name,
		"store_id": tag.StoreID,
	}
	if tag.Store != nil {
		resp["store"] = plainStore(tag.Store)
	}
	if tag.Items != nil {
		items := make([]gin.H, 0, len(tag.Items))
		for i := range tag.Items {
			items = append(items, plainItem(&tag.Items[i]))
		}
		resp["items"] = items
	}
	return resp
}

func plainTag(tag *model.Tag) gin.H {
	return gin.H{
		"id":   tag.ID,
		"name": tag.Name,
	}
}

// ListStoreTags handles GET /store/:id/tag
func (ctrl *TagController) ListStoreTags(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tags, err := ctrl.tagService.ListStoreTags(storeID)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
			return
		}
		log.Error("Failed to list store tags", err, map[string]interface{}{
			"store_id": storeID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list tags")
		return
	}

	responses := make([]gin.H, 0, len(tags))
	for i := range tags {
		responses = append(responses, tagResponse(&tags[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"tags":  responses,
		"count": len(responses),
	})
}

// CreateTag handles POST /store/:id/tag
func (ctrl *TagController) CreateTag(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	storeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CreateTagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := ctrl.tagService.CreateTag(storeID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
			return
		}
		log.Error("Failed to create tag", err, map[string]interface{}{
			"store_id": storeID,
			"name":     req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create tag")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tag created",
		"tag":     tagResponse(tag),
	})
}

// GetTag handles GET /tag/:id
func (ctrl *TagController) GetTag(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tag, err := ctrl.tagService.GetTag(id)
	if err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			apperrors.NotFound(c, apperrors.TagNotFound, "Tag not found")
			return
		}
		log.Error("Failed to get tag", err, map[string]interface{}{
			"tag_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get tag")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tag": tagResponse(tag)})
}

// DeleteTag handles DELETE /tag/:id. Accepted (202) when the tag had no
// linked items; refused with TAG_LINKED_TO_ITEM otherwise.
func (ctrl *TagController) DeleteTag(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.tagService.DeleteTag(id); err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			apperrors.NotFound(c, apperrors.TagNotFound, "Tag not found")
			return
		}
		if errors.Is(err, service.ErrTagLinked) {
			apperrors.BadRequest(c, apperrors.TagLinkedToItem, "Tag is linked to an item and cannot be deleted")
			return
		}
		log.Error("Failed to delete tag", err, map[string]interface{}{
			"tag_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete tag")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Tag deleted"})
}
