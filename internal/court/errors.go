package court

import (
	"net/http"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
)

var (
	ErrInactive     = apperror.New(http.StatusUnprocessableEntity, "court is not available for booking")
	ErrInvalidSport = apperror.NewValidation("sport", "must be one of futsal, badminton, basketball, volleyball")
)
