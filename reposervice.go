package daynight

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Repository is the contract front ends depend on.
type Repository interface {
	GetAllTimeSchedules(context.Context) ([]TimeSchedule, error)
	GetTimeScheduleByID(ctx context.Context, id int) (TimeSchedule, error)
	CreateSchedule(ctx context.Context, ts TimeSchedule, t time.Time, title string) error
}

type RepositoryOptions struct {
	// Strict makes CreateSchedule report ErrNotFound for an unknown time
	// schedule instead of silently doing nothing.
	Strict bool
}

// reposervice
type reposervice struct {
	repo   TimeScheduleRepo
	l      Logger
	strict bool
}

var _ Repository = (*reposervice)(nil)

func NewRepository(repo TimeScheduleRepo, logger Logger, opts RepositoryOptions) Repository {
	return &reposervice{
		repo:   repo,
		l:      logger,
		strict: opts.Strict,
	}
}

func (s *reposervice) GetAllTimeSchedules(ctx context.Context) ([]TimeSchedule, error) {
	return s.repo.ListTimeSchedules(ctx)
}

func (s *reposervice) GetTimeScheduleByID(ctx context.Context, id int) (TimeSchedule, error) {
	return s.repo.FindTimeSchedule(ctx, id)
}

func (s *reposervice) CreateSchedule(ctx context.Context, ts TimeSchedule, t time.Time, title string) error {
	created, err := s.repo.CreateSchedule(ctx, ts.ID, t, title)
	if err != nil {
		if errors.Is(err, ErrNotFound) && !s.strict {
			s.l.Warn("dropped schedule for unknown time schedule", "timeScheduleID", ts.ID, "title", title)
			return nil
		}
		return fmt.Errorf("create schedule in time schedule %d: %w", ts.ID, err)
	}

	s.l.Debug("created schedule", "timeScheduleID", ts.ID, "schedule", created)
	return nil
}
