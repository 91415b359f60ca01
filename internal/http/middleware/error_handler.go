package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Quangqueee/hanoi-residences/internal/logger"
	"github.com/Quangqueee/hanoi-residences/internal/pkg/apperror"
	"github.com/Quangqueee/hanoi-residences/internal/repository"
)

// ErrorHandler turns errors attached to the context into JSON
// responses, masking internal details from the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		if len(c.Errors) > 0 {
			err := c.Errors.Last()

			statusCode := http.StatusInternalServerError
			message := "internal server error"

			if logger.Log != nil {
				logger.Log.WithFields(logrus.Fields{
					"error":  err.Error(),
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				}).Error("Request error")
			}

			var appErr *apperror.AppError

			switch {
			case errors.As(err.Err, &appErr):
				statusCode = appErr.HTTPStatus
				message = appErr.Message
			case errors.Is(err.Err, repository.ErrListingNotFound):
				statusCode = http.StatusNotFound
				message = "listing not found"
			case errors.Is(err.Err, repository.ErrUserNotFound):
				statusCode = http.StatusNotFound
				message = "user not found"
			case errors.Is(err.Err, repository.ErrFavoriteNotFound):
				statusCode = http.StatusNotFound
				message = "favorite not found"
			case errors.Is(err.Err, repository.ErrDuplicateListing):
				statusCode = http.StatusConflict
				message = "a listing with this source code already exists"
			default:
				errStr := err.Error()
				if errStr != "" && !containsInternalKeywords(errStr) {
					message = errStr
					if contains(errStr, "invalid") || contains(errStr, "malformed") || contains(errStr, "must") {
						statusCode = http.StatusBadRequest
					} else if contains(errStr, "not allowed") || contains(errStr, "access") {
						statusCode = http.StatusForbidden
					}
				}
			}

			c.JSON(statusCode, gin.H{"error": message})
		}
	}
}

func containsInternalKeywords(s string) bool {
	keywords := []string{
		"sql:",
		"database",
		"connection",
		"timeout",
		"internal",
		"panic",
		"runtime",
	}

	for _, keyword := range keywords {
		if contains(s, keyword) {
			return true
		}
	}
	return false
}

func contains(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
