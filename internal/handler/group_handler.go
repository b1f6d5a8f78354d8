package handler

import (
	"errors"
	"net/http"

	"github.com/hammad535/task-manager/internal/model"
	"github.com/hammad535/task-manager/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GroupHandler struct {
	groupRepo *repository.GroupRepository
	boardRepo *repository.BoardRepository
}

func NewGroupHandler(groupRepo *repository.GroupRepository, boardRepo *repository.BoardRepository) *GroupHandler {
	return &GroupHandler{groupRepo: groupRepo, boardRepo: boardRepo}
}

type CreateGroupRequest struct {
	Name    string `json:"name" binding:"required"`
	BoardID string `json:"board_id" binding:"required,uuid"`
}

type RenameGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

func groupResponse(group *model.Group) GroupResponse {
	return GroupResponse{
		ID:      group.ID.String(),
		BoardID: group.BoardID.String(),
		Name:    group.Name,
		Items:   []ItemResponse{},
	}
}

// GetByBoard returns the groups of one board
func (h *GroupHandler) GetByBoard(c *gin.Context) {
	boardID, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	groups, err := h.groupRepo.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to retrieve groups")
		return
	}

	response := make([]GroupResponse, len(groups))
	for i := range groups {
		response[i] = groupResponse(&groups[i])
	}
	ok(c, response)
}

func (h *GroupHandler) Create(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Group name and board_id are required")
		return
	}

	boardID, err := uuid.Parse(req.BoardID)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid board ID format")
		return
	}

	if _, err := h.boardRepo.GetByID(c.Request.Context(), boardID); err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			fail(c, http.StatusNotFound, "Board not found")
		} else {
			fail(c, http.StatusInternalServerError, "Failed to retrieve board")
		}
		return
	}

	group := &model.Group{
		Name:    req.Name,
		BoardID: boardID,
	}

	if err := h.groupRepo.Create(c.Request.Context(), group); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create group")
		return
	}

	created(c, groupResponse(group))
}

func (h *GroupHandler) Update(c *gin.Context) {
	groupID, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	var req RenameGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Group name is required")
		return
	}

	if err := h.groupRepo.Rename(c.Request.Context(), groupID, req.Name); err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			fail(c, http.StatusNotFound, "Group not found")
		} else {
			fail(c, http.StatusInternalServerError, "Failed to update group")
		}
		return
	}

	group, err := h.groupRepo.GetByID(c.Request.Context(), groupID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to retrieve group")
		return
	}
	ok(c, groupResponse(group))
}

func (h *GroupHandler) Delete(c *gin.Context) {
	groupID, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	if err := h.groupRepo.Delete(c.Request.Context(), groupID); err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			fail(c, http.StatusNotFound, "Group not found")
		} else {
			fail(c, http.StatusInternalServerError, "Failed to delete group")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Group deleted successfully"})
}
