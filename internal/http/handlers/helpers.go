package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Quangqueee/hanoi-residences/internal/http/middleware"
)

var errUserNotInContext = errors.New("user not found in request context")

// currentUserID extracts the authenticated user ID from the context.
func currentUserID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return uuid.Nil, errUserNotInContext
	}

	userID, ok := raw.(uuid.UUID)
	if !ok {
		return uuid.Nil, errUserNotInContext
	}

	return userID, nil
}

// currentUserRole extracts the authenticated user's role.
func currentUserRole(c *gin.Context) (string, error) {
	raw, exists := c.Get(middleware.ContextRoleKey)
	if !exists {
		return "", errUserNotInContext
	}

	role, ok := raw.(string)
	if !ok {
		return "", errUserNotInContext
	}

	return role, nil
}
