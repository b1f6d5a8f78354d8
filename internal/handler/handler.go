// Package handler contains the HTTP layer. Resource endpoints respond
// with a {"success": ..., "data"/"error": ...} envelope; auth endpoints
// return the token payload directly.
package handler

import (
	"net/http"

	"github.com/hammad535/task-manager/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID extracts the acting user from the request context (set
// by the auth middleware). The bool is false when the request is not
// authenticated, in which case a response has already been written.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authenticated"})
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Invalid user ID format"})
		return uuid.Nil, false
	}
	return userID, true
}

// parseIDParam parses a :id-style URL parameter as a UUID
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid ID format"})
		return uuid.Nil, false
	}
	return id, true
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}
