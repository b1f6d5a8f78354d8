package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hammad535/task-manager/internal/dates"
	"github.com/hammad535/task-manager/internal/model"
	"github.com/hammad535/task-manager/internal/repository"
	"github.com/hammad535/task-manager/internal/timeline"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ActivityLogger records audit entries alongside item mutations.
// Satisfied by *activity.Logger.
type ActivityLogger interface {
	Log(ctx context.Context, itemID, userID uuid.UUID, action, description string)
}

type ItemHandler struct {
	itemRepo      repository.ItemRepositoryInterface
	groupRepo     *repository.GroupRepository
	boardRepo     *repository.BoardRepository
	subItemRepo   repository.SubItemRepositoryInterface
	activityRepo  *repository.ActivityRepository
	recurringRepo *repository.RecurringRepository
	activity      ActivityLogger
}

func NewItemHandler(
	itemRepo repository.ItemRepositoryInterface,
	groupRepo *repository.GroupRepository,
	boardRepo *repository.BoardRepository,
	subItemRepo repository.SubItemRepositoryInterface,
	activityRepo *repository.ActivityRepository,
	recurringRepo *repository.RecurringRepository,
	activityLogger ActivityLogger,
) *ItemHandler {
	return &ItemHandler{
		itemRepo:      itemRepo,
		groupRepo:     groupRepo,
		boardRepo:     boardRepo,
		subItemRepo:   subItemRepo,
		activityRepo:  activityRepo,
		recurringRepo: recurringRepo,
		activity:      activityLogger,
	}
}

type CreateItemRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	GroupID       string   `json:"group_id" binding:"required,uuid"`
	BoardID       string   `json:"board_id" binding:"required,uuid"`
	Status        string   `json:"status"`
	Priority      string   `json:"priority"`
	TimelineStart *string  `json:"timeline_start"`
	TimelineEnd   *string  `json:"timeline_end"`
	AssigneeIDs   []string `json:"assignee_ids"`
	Recurring     *string  `json:"recurring"`
}

type UpdateItemRequest struct {
	Title         *string   `json:"title"`
	Description   *string   `json:"description"`
	Status        *string   `json:"status"`
	Priority      *string   `json:"priority"`
	TimelineStart *string   `json:"timeline_start"`
	TimelineEnd   *string   `json:"timeline_end"`
	AssigneeIDs   *[]string `json:"assignee_ids"`
}

// TimelinePatchRequest accepts the three body shapes the front-end
// sends: {date}, {timeline: {startDate, endDate}} and the legacy
// {timeline_start, timeline_end}.
type TimelinePatchRequest struct {
	Date     *string `json:"date"`
	Timeline *struct {
		StartDate *string `json:"startDate"`
		EndDate   *string `json:"endDate"`
	} `json:"timeline"`
	TimelineStart *string `json:"timeline_start"`
	TimelineEnd   *string `json:"timeline_end"`
}

type ItemResponse struct {
	ID            string                `json:"id"`
	GroupID       string                `json:"group_id"`
	BoardID       string                `json:"board_id"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Status        string                `json:"status"`
	Priority      string                `json:"priority"`
	TimelineStart *model.LocalDate      `json:"timeline_start"`
	TimelineEnd   *model.LocalDate      `json:"timeline_end"`
	AssigneeIDs   []string              `json:"assignee_ids"`
	AssigneeNames []string              `json:"assignee_names"`
	CreatedAt     string                `json:"created_at"`
	SubItems      []SubItemResponse     `json:"sub_items,omitempty"`
	ActivityLogs  []ActivityLogResponse `json:"activity_logs,omitempty"`
}

type ActivityLogResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	Action      string `json:"action"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

func itemResponse(item *model.Item) ItemResponse {
	assigneeIDs := make([]string, len(item.Assignees))
	assigneeNames := make([]string, len(item.Assignees))
	for i, user := range item.Assignees {
		assigneeIDs[i] = user.ID.String()
		assigneeNames[i] = user.Name
	}

	return ItemResponse{
		ID:            item.ID.String(),
		GroupID:       item.GroupID.String(),
		BoardID:       item.BoardID.String(),
		Title:         item.Title,
		Description:   item.Description,
		Status:        item.Status,
		Priority:      item.Priority,
		TimelineStart: item.TimelineStart,
		TimelineEnd:   item.TimelineEnd,
		AssigneeIDs:   assigneeIDs,
		AssigneeNames: assigneeNames,
		CreatedAt:     item.CreatedAt.Format(time.RFC3339),
	}
}

// List returns items, optionally filtered by board and/or group
func (h *ItemHandler) List(c *gin.Context) {
	var boardID, groupID *uuid.UUID

	if raw := c.Query("board_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			fail(c, http.StatusBadRequest, "Invalid board ID format")
			return
		}
		boardID = &id
	}
	if raw := c.Query("group_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			fail(c, http.StatusBadRequest, "Invalid group ID format")
			return
		}
		groupID = &id
	}

	items, err := h.itemRepo.List(c.Request.Context(), boardID, groupID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to retrieve items")
		return
	}

	response := make([]ItemResponse, len(items))
	for i := range items {
		response[i] = itemResponse(&items[i])
	}
	ok(c, response)
}

// GetByID returns one item with its audit trail and sub-items
func (h *ItemHandler) GetByID(c *gin.Context) {
	itemID, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	item, err := h.itemRepo.GetByID(c.Request.Context(), itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			fail(c, http.StatusNotFound, "Item not found")
		} else {
			fail(c, http.StatusInternalServerError, "Failed to retrieve item")
		}
		return
	}

	logs, err := h.activityRepo.ListByItem(c.Request.Context(), itemID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to retrieve activity logs")
		return
	}

	subItems, err := h.subItemRepo.GetByParentID(c.Request.Context(), itemID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to retrieve sub-items")
		return
	}

	response := itemResponse(item)
	response.SubItems = subItemResponses(subItems)
	response.ActivityLogs = make([]ActivityLogResponse, len(logs))
	for i, entry := range logs {
		response.ActivityLogs[i] = ActivityLogResponse{
			ID:          entry.ID.String(),
			UserID:      entry.UserID.String(),
			UserName:    entry.User.Name,
			Action:      entry.Action,
			Description: entry.Description,
			Timestamp:   entry.Timestamp.Format(time.RFC3339),
		}
	}

	ok(c, response)
}

func (h *ItemHandler) Create(c *gin.Context) {
	userID, okUser := currentUserID(c)
	if !okUser {
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Title, group_id, and board_id are required")
		return
	}

	groupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid group ID format")
		return
	}
	boardID, err := uuid.Parse(req.BoardID)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid board ID format")
		return
	}

	if _, err := h.groupRepo.GetByID(c.Request.Context(), groupID); err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			fail(c, http.StatusNotFound, "Group not found")
		} else {
			fail(c, http.StatusInternalServerError, "Failed to retrieve group")
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

	if req.Recurring != nil && !model.ValidFrequency(*req.Recurring) {
		fail(c, http.StatusBadRequest, "Invalid recurring frequency")
		return
	}

	assigneeIDs, err := parseUUIDs(req.AssigneeIDs)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid assignee ID format")
		return
	}

	item := &model.Item{
		GroupID:       groupID,
		BoardID:       boardID,
		Title:         req.Title,
		Description:   req.Description,
		Status:        status,
		Priority:      priority,
		TimelineStart: nullableDate(tl.Start),
		TimelineEnd:   nullableDate(tl.End),
	}

	if err := h.itemRepo.Create(c.Request.Context(), item, assigneeIDs); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create item")
		return
	}

	if req.Recurring != nil {
		rule := &model.RecurringRule{
			ItemID:          item.ID,
			Frequency:       *req.Recurring,
			NextTriggerDate: model.LocalDate(dates.AddPeriod(dates.Today(), *req.Recurring)),
		}
		if err := h.recurringRepo.Create(c.Request.Context(), rule); err != nil {
			fail(c, http.StatusInternalServerError, "Failed to create recurring rule")
			return
		}
	}

	h.activity.Log(c.Request.Context(), item.ID, userID, "created",
		fmt.Sprintf("Item %q was created", item.Title))

	createdItem, err := h.itemRepo.GetByID(c.Request.Context(), item.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to retrieve item")
		return
	}
	created(c, itemResponse(createdItem))
}

func (h *ItemHandler) Update(c *gin.Context) {
	userID, okUser := currentUserID(c)
	if !okUser {
		return
	}

	itemID, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	var req UpdateItemRequest
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

	// Only the date fields present in the request are validated; a
	// stored deadline that has since slipped into the past is not this
	// request's problem.
	tl, err := timeline.Validate(req.TimelineStart, req.TimelineEnd, dates.Today())
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	current, err := h.itemRepo.GetByID(c.Request.Context(), itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			fail(c, http.StatusNotFound, "Item not found")
		} else {
			fail(c, http.StatusInternalServerError, "Failed to retrieve item")
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

	var assigneeIDs *[]uuid.UUID
	if req.AssigneeIDs != nil {
		parsed, err := parseUUIDs(*req.AssigneeIDs)
		if err != nil {
			fail(c, http.StatusBadRequest, "Invalid assignee ID format")
			return
		}
		assigneeIDs = &parsed
	}

	if err := h.itemRepo.Update(c.Request.Context(), itemID, updates, assigneeIDs); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			fail(c, http.StatusNotFound, "Item not found")
		} else {
			fail(c, http.StatusInternalServerError, "Failed to update item")
		}
		return
	}

	if req.Status != nil && *req.Status != current.Status {
		h.activity.Log(c.Request.Context(), itemID, userID, "status_changed",
			fmt.Sprintf("Status changed from %q to %q", current.Status, *req.Status))
	} else if len(updates) > 0 {
		h.activity.Log(c.Request.Context(), itemID, userID, "updated", "Item was updated")
	}

	updated, err := h.itemRepo.GetByID(c.Request.Context(), itemID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to retrieve item")
		return
	}
	ok(c, itemResponse(updated))
}

// UpdateTimeline patches only the item's dates
func (h *ItemHandler) UpdateTimeline(c *gin.Context) {
	userID, okUser := currentUserID(c)
	if !okUser {
		return
	}

	itemID, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	var req TimelinePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request")
		return
	}

	var start, end *string
	switch {
	case req.Timeline != nil:
		start = req.Timeline.StartDate
		end = req.Timeline.EndDate
	case req.Date != nil:
		start = req.Date
	default:
		start = req.TimelineStart
		end = req.TimelineEnd
	}

	if start == nil && end == nil {
		fail(c, http.StatusBadRequest,
			"Provide {date} or {timeline: {startDate, endDate}} or {timeline_start, timeline_end}")
		return
	}

	tl, err := timeline.Validate(start, end, dates.Today())
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.itemRepo.GetByID(c.Request.Context(), itemID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			fail(c, http.StatusNotFound, "Item not found")
		} else {
			fail(c, http.StatusInternalServerError, "Failed to retrieve item")
		}
		return
	}

	updates := map[string]interface{}{}
	if tl.Start != nil && *tl.Start != "" {
		updates["timeline_start"] = *tl.Start
	}
	if tl.End != nil && *tl.End != "" {
		updates["timeline_end"] = *tl.End
	}

	if len(updates) > 0 {
		if err := h.itemRepo.Update(c.Request.Context(), itemID, updates, nil); err != nil {
			fail(c, http.StatusInternalServerError, "Failed to update timeline")
			return
		}
	}

	h.activity.Log(c.Request.Context(), itemID, userID, "timeline_updated", "Timeline was updated")

	updated, err := h.itemRepo.GetByID(c.Request.Context(), itemID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to retrieve item")
		return
	}
	ok(c, itemResponse(updated))
}

func (h *ItemHandler) Delete(c *gin.Context) {
	itemID, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	if err := h.itemRepo.Delete(c.Request.Context(), itemID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			fail(c, http.StatusNotFound, "Item not found")
		} else {
			fail(c, http.StatusInternalServerError, "Failed to delete item")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item deleted successfully"})
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// nullableDate turns a normalized date into the pointer the model
// stores: empty means no date.
func nullableDate(s *string) *model.LocalDate {
	if s == nil || *s == "" {
		return nil
	}
	d := model.LocalDate(*s)
	return &d
}

// dateColumn turns a normalized date into the value to write: empty
// clears the column.
func dateColumn(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
