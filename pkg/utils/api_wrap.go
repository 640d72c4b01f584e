package utils

import (
	"errors"
	"github.com/gin-gonic/gin"
	"log"
	"net/http"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	traceID := c.GetString("trace_id")
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	traceID := c.GetString("trace_id")
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID,
	})
}

// RespondBlocked reports a validation verdict that refused the operation.
// The verdict travels in Data so clients can inspect every rule failure.
func RespondBlocked(c *gin.Context, verdict interface{}, message string) {
	traceID := c.GetString("trace_id")
	c.JSON(http.StatusUnprocessableEntity, APIResponse{
		Status:  "blocked",
		Code:    http.StatusUnprocessableEntity,
		Message: message,
		TraceID: traceID,
		Data:    verdict,
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrItineraryNotFound):
		RespondError(c, http.StatusNotFound, "Itinerary not found")
	case errors.Is(err, ErrSegmentNotFound):
		RespondError(c, http.StatusNotFound, "Segment not found")
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "Designer session not found or expired")
	case errors.Is(err, ErrPlaceNotFound):
		RespondError(c, http.StatusNotFound, "Place not found")
	case errors.Is(err, ErrEmailAlreadyUsed):
		RespondError(c, http.StatusConflict, "Email already in use")
	case errors.Is(err, ErrPlaceAlreadyExists):
		RespondError(c, http.StatusConflict, "Place code already registered")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	case errors.Is(err, ErrVersionConflict):
		RespondError(c, http.StatusConflict, "Itinerary was modified concurrently, reload and retry")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
