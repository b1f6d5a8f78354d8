package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hammad535/task-manager/internal/dates"
	"github.com/hammad535/task-manager/internal/model"
	"github.com/hammad535/task-manager/internal/repository"
	"github.com/hammad535/task-manager/internal/timeline"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SubItemHandler struct {
	subItemRepo repository.SubItemRepositoryInterface
	itemRepo    repository.ItemRepositoryInterface
	activity    ActivityLogger
}

func NewSubItemHandler(
	subItemRepo repository.SubItemRepositoryInterface,
	itemRepo repository.ItemRepositoryInterface,
	activityLogger ActivityLogger,
) *SubItemHandler {
	return &SubItemHandler{
		subItemRepo: subItemRepo,
		itemRepo:    itemRepo,
		activity:    activityLogger,
	}
}

type CreateSubItemRequest struct {
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description"`
	ParentItemID  string  `json:"parent_item_id" binding:"required,uuid"`
	Status        string  `json:"status"`
	Priority      string  `json:"priority"`
	TimelineStart *string `json:"timeline_start"`
	TimelineEnd   *string `json:"timeline_end"`
}

type UpdateSubItemRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Status        *string `json:"status"`
	Priority      *string `json:"priority"`
	TimelineStart *string `json:"timeline_start"`
	TimelineEnd   *string `json:"timeline_end"`
}

type SubItemResponse struct {
	ID            string           `json:"id"`
	ParentItemID  string           `json:"parent_item_id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Status        string           `json:"status"`
	Priority      string           `json:"priority"`
	TimelineStart *model.LocalDate `json:"timeline_start"`
	TimelineEnd   *model.LocalDate `json:"timeline_end"`
}

func subItemResponse(subItem *model.SubItem) SubItemResponse {
	return SubItemResponse{
		ID:            subItem.ID.String(),
		ParentItemID:  subItem.ParentItemID.String(),
		Title:         subItem.Title,
		Description:   subItem.Description,
		Status:        subItem.Status,
		Priority:      subItem.Priority,
		TimelineStart: subItem.TimelineStart,
		TimelineEnd:   subItem.TimelineEnd,
	}
}

func subItemResponses(subItems []model.SubItem) []SubItemResponse {
	response := make([]SubItemResponse, len(subItems))
	for i := range subItems {
		response[i] = subItemResponse(&subItems[i])
	}
	return response
}

// GetByItem returns the sub-items of one parent item
func (h *SubItemHandler) GetByItem(c *gin.Context) {
	itemID, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	subItems, err := h.subItemRepo.GetByParentID(c.Request.Context(), itemID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to retrieve sub-items")
		return
	}

	ok(c, subItemResponses(subItems))
}

func (h *SubItemHandler) GetByID(c *gin.Context) {
	subItemID, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	subItem, err := h.subItemRepo.GetByID(c.Request.Context(), subItemID)
	if err != nil {
		if errors.Is(err, repository.ErrSubItemNotFound) {
			fail(c, http.StatusNotFound, "Sub-item not found")
		} else {
			fail(c, http.StatusInternalServerError, "Failed to retrieve sub-item")
		}
		return
	}

	ok(c, subItemResponse(subItem))
}

func (h *SubItemHandler) Create(c *gin.Context) {
	userID, okUser := currentUserID(c)
	if !okUser {
		return
	}

	var req CreateSubItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Title and parent_item_id are required")
		return
	}

	parentID, err := uuid.Parse(req.ParentItemID)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid parent item ID format")
		return
	}

	if _, err := h.itemRepo.GetByID(c.Request.Context(), parentID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			fail(c, http.StatusNotFound, "Parent item not found")
		} else {
			fail(c, http.StatusInternalServerError, "Failed to retrieve parent item")
		}
		return
	}

	status := req.Status
	if status == "" {
		status = model.StatusToDo
	}
	if !model.ValidStatus(status) {
		fail(c, http.StatusBadRequest, "Invalid status")
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		fail(c, http.StatusBadRequest, "Invalid priority")
		return
	}

	tl, err := timeline.Validate(req.TimelineStart, req.TimelineEnd, dates.Today())
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	subItem := &model.SubItem{
		ParentItemID:  parentID,
		Title:         req.Title,
		Description:   req.Description,
		Status:        status,
		Priority:      priority,
		TimelineStart: nullableDate(tl.Start),
		TimelineEnd:   nullableDate(tl.End),
	}

	if err := h.subItemRepo.Create(c.Request.Context(), subItem); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create sub-item")
		return
	}

	h.activity.Log(c.Request.Context(), parentID, userID, "subitem_created",
		fmt.Sprintf("Sub-item %q was created", subItem.Title))

	created(c, subItemResponse(subItem))
}

func (h *SubItemHandler) Update(c *gin.Context) {
	userID, okUser := currentUserID(c)
	if !okUser {
		return
	}

	subItemID, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	var req UpdateSubItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request")
		return
	}

	if req.Status != nil && !model.ValidStatus(*req.Status) {
		fail(c, http.StatusBadRequest, "Invalid status")
		return
	}
	if req.Priority != nil && !model.ValidPriority(*req.Priority) {
		fail(c, http.StatusBadRequest, "Invalid priority")
		return
	}

	tl, err := timeline.Validate(req.TimelineStart, req.TimelineEnd, dates.Today())
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	current, err := h.subItemRepo.GetByID(c.Request.Context(), subItemID)
	if err != nil {
		if errors.Is(err, repository.ErrSubItemNotFound) {
			fail(c, http.StatusNotFound, "Sub-item not found")
		} else {
			fail(c, http.StatusInternalServerError, "Failed to retrieve sub-item")
		}
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if tl.Start != nil {
		updates["timeline_start"] = dateColumn(*tl.Start)
	}
	if tl.End != nil {
		updates["timeline_end"] = dateColumn(*tl.End)
	}

	if len(updates) > 0 {
		if err := h.subItemRepo.Update(c.Request.Context(), subItemID, updates); err != nil {
			fail(c, http.StatusInternalServerError, "Failed to update sub-item")
			return
		}
	}

	h.activity.Log(c.Request.Context(), current.ParentItemID, userID, "subitem_updated",
		fmt.Sprintf("Sub-item %q was updated", current.Title))

	updated, err := h.subItemRepo.GetByID(c.Request.Context(), subItemID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to retrieve sub-item")
		return
	}
	ok(c, subItemResponse(updated))
}

func (h *SubItemHandler) Delete(c *gin.Context) {
	userID, okUser := currentUserID(c)
	if !okUser {
		return
	}

	subItemID, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	current, err := h.subItemRepo.GetByID(c.Request.Context(), subItemID)
	if err != nil {
		if errors.Is(err, repository.ErrSubItemNotFound) {
			fail(c, http.StatusNotFound, "Sub-item not found")
		} else {
			fail(c, http.StatusInternalServerError, "Failed to retrieve sub-item")
		}
		return
	}

	if err := h.subItemRepo.Delete(c.Request.Context(), subItemID); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to delete sub-item")
		return
	}

	h.activity.Log(c.Request.Context(), current.ParentItemID, userID, "subitem_deleted",
		fmt.Sprintf("Sub-item %q was deleted", current.Title))

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Sub-item deleted successfully"})
}
