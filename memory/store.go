// Package memory implements daynight.TimeScheduleRepo in process memory.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/teteukt/daynight"
)

// Store keeps the three time schedules behind a single lock. Reads hand out
// copies, so callers may modify what they get back.
type Store struct {
	mu            sync.RWMutex
	nextID        int
	timeSchedules []daynight.TimeSchedule
}

var _ daynight.TimeScheduleRepo = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		timeSchedules: daynight.DefaultTimeSchedules(),
	}
}

func (s *Store) ListTimeSchedules(_ context.Context) ([]daynight.TimeSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]daynight.TimeSchedule, 0, len(s.timeSchedules))
	for _, ts := range s.timeSchedules {
		res = append(res, snapshot(ts))
	}
	return res, nil
}

func (s *Store) FindTimeSchedule(_ context.Context, id int) (daynight.TimeSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return daynight.TimeSchedule{}, fmt.Errorf("time schedule %d: %w", id, daynight.ErrNotFound)
	}
	return snapshot(s.timeSchedules[i]), nil
}

func (s *Store) CreateSchedule(_ context.Context, timeScheduleID int, t time.Time, title string) (daynight.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(timeScheduleID)
	if i < 0 {
		return daynight.Schedule{}, fmt.Errorf("time schedule %d: %w", timeScheduleID, daynight.ErrNotFound)
	}

	created := daynight.Schedule{
		ID:    s.nextID,
		Time:  t,
		Title: title,
	}
	s.nextID++

	s.timeSchedules[i].Schedules = append(s.timeSchedules[i].Schedules, created)

	return created, nil
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.timeSchedules, func(ts daynight.TimeSchedule) bool {
		return ts.ID == id
	})
}

func snapshot(ts daynight.TimeSchedule) daynight.TimeSchedule {
	schedules := make([]daynight.Schedule, len(ts.Schedules))
	copy(schedules, ts.Schedules)
	ts.Schedules = schedules
	return ts
}
