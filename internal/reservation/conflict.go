package reservation

import (
	"context"
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation-backend/internal/timeslot"
)

// ConflictChecker answers whether a proposed booking would overlap an occupying reservation.
//
// The answer is advisory: between the check and the insert another booking may
// commit. The store's exclusion constraint is what finally rejects that race, and
// the repository reports it with the same ConflictError.
type ConflictChecker struct {
	repo Repository
}

func NewConflictChecker(repo Repository) *ConflictChecker {
	return &ConflictChecker{repo: repo}
}

// HasConflict reports whether a PENDING or CONFIRMED reservation on the same
// court and date overlaps iv. Touching intervals do not conflict.
func (c *ConflictChecker) HasConflict(ctx context.Context, courtID string, date time.Time, iv timeslot.Interval) (bool, error) {
	return c.repo.HasOverlap(ctx, courtID, date, iv)
}

// Check returns a ConflictError when the slot is taken.
func (c *ConflictChecker) Check(ctx context.Context, courtID string, date time.Time, iv timeslot.Interval) error {
	conflict, err := c.HasConflict(ctx, courtID, date, iv)
	if err != nil {
		return err
	}
	if conflict {
		return conflictFor(courtID, date, iv)
	}
	return nil
}

func conflictFor(courtID string, date time.Time, iv timeslot.Interval) *apperror.ConflictError {
	return &apperror.ConflictError{
		CourtID:   courtID,
		Date:      timeslot.FormatDate(date),
		StartTime: iv.Start.String(),
		EndTime:   iv.End.String(),
	}
}
