package handler

import (
	"net/http"

	"github.com/hammad535/task-manager/internal/repository"

	"github.com/gin-gonic/gin"
)

type MyWorkHandler struct {
	itemRepo repository.ItemRepositoryInterface
}

func NewMyWorkHandler(itemRepo repository.ItemRepositoryInterface) *MyWorkHandler {
	return &MyWorkHandler{itemRepo: itemRepo}
}

// Get returns the authenticated user's assigned items, optionally
// narrowed by ?filter=this_week or ?filter=upcoming
func (h *MyWorkHandler) Get(c *gin.Context) {
	userID, okUser := currentUserID(c)
	if !okUser {
		return
	}

	filter := c.Query("filter")
	switch filter {
	case "", repository.FilterThisWeek, repository.FilterUpcoming:
	default:
		fail(c, http.StatusBadRequest, "Invalid filter, expected this_week or upcoming")
		return
	}

	items, err := h.itemRepo.MyWork(c.Request.Context(), userID, filter)
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
