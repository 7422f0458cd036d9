package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// ConflictResponse identifies the slot that could not be booked.
type ConflictResponse struct {
	Error     string `json:"error"`
	CourtID   string `json:"court_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Error sends a JSON error response.
// Domain errors map to their status; AppError carries its own code.
// Anything else is logged and rendered as a generic 500.
func Error(c *gin.Context, err error) {
	var (
		validationErr *apperror.ValidationError
		conflictErr   *apperror.ConflictError
		notFoundErr   *apperror.NotFoundError
		appErr        *apperror.AppError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationErr.Message, Field: validationErr.Field})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, ConflictResponse{
			Error:     conflictErr.Error(),
			CourtID:   conflictErr.CourtID,
			Date:      conflictErr.Date,
			StartTime: conflictErr.StartTime,
			EndTime:   conflictErr.EndTime,
		})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: notFoundErr.Error()})
	case errors.As(err, &appErr):
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
	default:
		log.Ctx(c.Request.Context()).Error().Err(err).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "something went wrong, please try again"})
	}
}
