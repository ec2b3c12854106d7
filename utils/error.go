package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := GetLogger()
				logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Success: false,
					Error:   "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response for a typed service error.
func JSONError(c *gin.Context, err error) {
	logger := GetLogger()
	status := HTTPStatus(err)
	msg := err.Error()
	var appErr *AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))
		msg = "Internal server error"
	} else {
		logger.Warn("Request rejected", zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, ErrorResponse{Success: false, Error: msg})
}
