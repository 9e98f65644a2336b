package daynight

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// TimeScheduleRepo owns the time schedules and every schedule logged under them.
type TimeScheduleRepo interface {
	// ListTimeSchedules returns Day, Dawn and Night in id order.
	ListTimeSchedules(context.Context) ([]TimeSchedule, error)
	// FindTimeSchedule returns ErrNotFound for an unknown id.
	FindTimeSchedule(ctx context.Context, id int) (TimeSchedule, error)
	// CreateSchedule returns ErrNotFound without consuming an id when
	// timeScheduleID is unknown.
	CreateSchedule(ctx context.Context, timeScheduleID int, t time.Time, title string) (Schedule, error)
}
