package handler

import (
	"errors"
	"net/http"

	"github.com/hammad535/task-manager/internal/model"
	"github.com/hammad535/task-manager/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TeamHandler struct {
	teamRepo *repository.TeamRepository
	itemRepo repository.ItemRepositoryInterface
	activity ActivityLogger
}

func NewTeamHandler(
	teamRepo *repository.TeamRepository,
	itemRepo repository.ItemRepositoryInterface,
	activityLogger ActivityLogger,
) *TeamHandler {
	return &TeamHandler{
		teamRepo: teamRepo,
		itemRepo: itemRepo,
		activity: activityLogger,
	}
}

type CreateTeamRequest struct {
	Name      string   `json:"name" binding:"required"`
	MemberIDs []string `json:"member_ids"`
}

type UpdateTeamRequest struct {
	Name      *string   `json:"name"`
	MemberIDs *[]string `json:"member_ids"`
}

type AssignTeamRequest struct {
	TeamID string `json:"team_id" binding:"required,uuid"`
}

type TeamResponse struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Members []UserResponse `json:"members"`
}

func teamResponse(team *model.Team) TeamResponse {
	members := make([]UserResponse, len(team.Members))
	for i, user := range team.Members {
		members[i] = UserResponse{
			ID:    user.ID.String(),
			Name:  user.Name,
			Email: user.Email,
		}
	}
	return TeamResponse{
		ID:      team.ID.String(),
		Name:    team.Name,
		Members: members,
	}
}

func (h *TeamHandler) GetAll(c *gin.Context) {
	teams, err := h.teamRepo.GetAll(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to retrieve teams")
		return
	}

	response := make([]TeamResponse, len(teams))
	for i := range teams {
		response[i] = teamResponse(&teams[i])
	}
	ok(c, response)
}

func (h *TeamHandler) GetByID(c *gin.Context) {
	teamID, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	team, err := h.teamRepo.GetByID(c.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			fail(c, http.StatusNotFound, "Team not found")
		} else {
			fail(c, http.StatusInternalServerError, "Failed to retrieve team")
		}
		return
	}

	ok(c, teamResponse(team))
}

func (h *TeamHandler) Create(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Team name is required")
		return
	}

	memberIDs, err := parseUUIDs(req.MemberIDs)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid member ID format")
		return
	}

	team := &model.Team{Name: req.Name}
	if err := h.teamRepo.Create(c.Request.Context(), team, memberIDs); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create team")
		return
	}

	createdTeam, err := h.teamRepo.GetByID(c.Request.Context(), team.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to retrieve team")
		return
	}
	created(c, teamResponse(createdTeam))
}

func (h *TeamHandler) Update(c *gin.Context) {
	teamID, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request")
		return
	}

	var memberIDs *[]uuid.UUID
	if req.MemberIDs != nil {
		parsed, err := parseUUIDs(*req.MemberIDs)
		if err != nil {
			fail(c, http.StatusBadRequest, "Invalid member ID format")
			return
		}
		memberIDs = &parsed
	}

	if err := h.teamRepo.Update(c.Request.Context(), teamID, req.Name, memberIDs); err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			fail(c, http.StatusNotFound, "Team not found")
		} else {
			fail(c, http.StatusInternalServerError, "Failed to update team")
		}
		return
	}

	team, err := h.teamRepo.GetByID(c.Request.Context(), teamID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to retrieve team")
		return
	}
	ok(c, teamResponse(team))
}

func (h *TeamHandler) Delete(c *gin.Context) {
	teamID, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	if err := h.teamRepo.Delete(c.Request.Context(), teamID); err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			fail(c, http.StatusNotFound, "Team not found")
		} else {
			fail(c, http.StatusInternalServerError, "Failed to delete team")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Team deleted successfully"})
}

// AssignToItem replaces an item's assignees with the team's members
func (h *TeamHandler) AssignToItem(c *gin.Context) {
	userID, okUser := currentUserID(c)
	if !okUser {
		return
	}

	itemID, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	var req AssignTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "team_id is required")
		return
	}
	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid team ID format")
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

	if err := h.teamRepo.AssignToItem(c.Request.Context(), itemID, teamID); err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			fail(c, http.StatusNotFound, "Team not found")
		} else {
			fail(c, http.StatusInternalServerError, "Failed to assign team")
		}
		return
	}

	h.activity.Log(c.Request.Context(), itemID, userID, "team_assigned", "Team was assigned to item")

	item, err := h.itemRepo.GetByID(c.Request.Context(), itemID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to retrieve item")
		return
	}
	ok(c, itemResponse(item))
}
