package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps service sentinel errors onto HTTP status codes.
// Read paths return 404 for missing memberships so that trip existence is
// never leaked to non-members.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrTripNotFound),
		errors.Is(err, ErrDayNotFound),
		errors.Is(err, ErrActivityNotFound),
		errors.Is(err, ErrImageNotFound),
		errors.Is(err, ErrParticipantNotFound),
		errors.Is(err, ErrFriendshipNotFound),
		errors.Is(err, ErrFriendRequestNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrAlreadyMember),
		errors.Is(err, ErrFriendRequestExists):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrSelfFriendRequest),
		errors.Is(err, ErrCannotRemoveSelf),
		errors.Is(err, ErrCannotDemoteSelf),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
