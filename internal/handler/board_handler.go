package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/hammad535/task-manager/internal/model"
	"github.com/hammad535/task-manager/internal/repository"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boardRepo   *repository.BoardRepository
	groupRepo   *repository.GroupRepository
	itemRepo    *repository.ItemRepository
	subItemRepo *repository.SubItemRepository
}

func NewBoardHandler(
	boardRepo *repository.BoardRepository,
	groupRepo *repository.GroupRepository,
	itemRepo *repository.ItemRepository,
	subItemRepo *repository.SubItemRepository,
) *BoardHandler {
	return &BoardHandler{
		boardRepo:   boardRepo,
		groupRepo:   groupRepo,
		itemRepo:    itemRepo,
		subItemRepo: subItemRepo,
	}
}

type CreateBoardRequest struct {
	Name string `json:"name" binding:"required"`
}

type BoardResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	CreatedBy string          `json:"created_by"`
	CreatedAt string          `json:"created_at"`
	Groups    []GroupResponse `json:"groups,omitempty"`
}

type GroupResponse struct {
	ID      string         `json:"id"`
	BoardID string         `json:"board_id"`
	Name    string         `json:"name"`
	Items   []ItemResponse `json:"items"`
}

func boardResponse(board *model.Board) BoardResponse {
	return BoardResponse{
		ID:        board.ID.String(),
		Name:      board.Name,
		CreatedBy: board.CreatedBy.String(),
		CreatedAt: board.CreatedAt.Format(time.RFC3339),
	}
}

// GetAll returns every board with its groups, items (including
// assignees) and sub-items nested, the shape the board view renders
// from directly.
func (h *BoardHandler) GetAll(c *gin.Context) {
	boards, err := h.boardRepo.GetAll(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to retrieve boards")
		return
	}

	response := make([]BoardResponse, 0, len(boards))
	for i := range boards {
		board, err := h.expandBoard(c, &boards[i])
		if err != nil {
			fail(c, http.StatusInternalServerError, "Failed to retrieve board contents")
			return
		}
		response = append(response, board)
	}

	ok(c, response)
}

func (h *BoardHandler) GetByID(c *gin.Context) {
	boardID, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			fail(c, http.StatusNotFound, "Board not found")
		} else {
			fail(c, http.StatusInternalServerError, "Failed to retrieve board")
		}
		return
	}

	response, err := h.expandBoard(c, board)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to retrieve board contents")
		return
	}

	ok(c, response)
}

func (h *BoardHandler) Create(c *gin.Context) {
	userID, okUser := currentUserID(c)
	if !okUser {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Board name is required")
		return
	}

	board := &model.Board{
		Name:      req.Name,
		CreatedBy: userID,
	}

	if err := h.boardRepo.Create(c.Request.Context(), board); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create board")
		return
	}

	created(c, boardResponse(board))
}

func (h *BoardHandler) Delete(c *gin.Context) {
	boardID, okID := parseIDParam(c, "id")
	if !okID {
		return
	}

	if err := h.boardRepo.Delete(c.Request.Context(), boardID); err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			fail(c, http.StatusNotFound, "Board not found")
		} else {
			fail(c, http.StatusInternalServerError, "Failed to delete board")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Board deleted successfully"})
}

func (h *BoardHandler) expandBoard(c *gin.Context, board *model.Board) (BoardResponse, error) {
	response := boardResponse(board)

	groups, err := h.groupRepo.GetByBoardID(c.Request.Context(), board.ID)
	if err != nil {
		return BoardResponse{}, err
	}

	response.Groups = make([]GroupResponse, 0, len(groups))
	for _, group := range groups {
		items, err := h.itemRepo.GetByGroupID(c.Request.Context(), group.ID)
		if err != nil {
			return BoardResponse{}, err
		}

		itemResponses := make([]ItemResponse, 0, len(items))
		for i := range items {
			subItems, err := h.subItemRepo.GetByParentID(c.Request.Context(), items[i].ID)
			if err != nil {
				return BoardResponse{}, err
			}
			resp := itemResponse(&items[i])
			resp.SubItems = subItemResponses(subItems)
			itemResponses = append(itemResponses, resp)
		}

		response.Groups = append(response.Groups, GroupResponse{
			ID:      group.ID.String(),
			BoardID: group.BoardID.String(),
			Name:    group.Name,
			Items:   itemResponses,
		})
	}

	return response, nil
}
