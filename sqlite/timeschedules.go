package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"

	"github.com/teteukt/daynight"
)

const (
	SelectAllTimeSchedules = "SELECT id, name FROM time_schedules"
	SelectAllSchedules     = "SELECT id, time_schedule_id, time_sec, time_nsec, title FROM schedules"
)

type scheduleEntity struct {
	ID             int
	TimeScheduleID int
	TimeSec        int64
	TimeNsec       int64
	Title          string
}

type transactor interface {
	WithinTransaction(context.Context, func(context.Context) error) error
}

// timeScheduleRepo
type timeScheduleRepo struct {
	tx       transactor
	dbGetter txStdLib.DBGetter
	l        daynight.Logger
}

var _ daynight.TimeScheduleRepo = (*timeScheduleRepo)(nil)

func NewTimeScheduleRepo(tx transactor, dbGetter txStdLib.DBGetter, logger daynight.Logger) daynight.TimeScheduleRepo {
	return &timeScheduleRepo{
		tx:       tx,
		dbGetter: dbGetter,
		l:        logger,
	}
}

func (r *timeScheduleRepo) ListTimeSchedules(ctx context.Context) ([]daynight.TimeSchedule, error) {
	var res []daynight.TimeSchedule
	err := r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		timeSchedules, err := r.getAllTimeSchedules(ctx)
		if err != nil {
			return err
		}

		ids := make([]any, 0, len(timeSchedules))
		for _, ts := range timeSchedules {
			ids = append(ids, ts.ID)
		}
		if err := r.attachSchedules(ctx, timeSchedules, ids); err != nil {
			return err
		}
		res = timeSchedules
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *timeScheduleRepo) FindTimeSchedule(ctx context.Context, id int) (daynight.TimeSchedule, error) {
	var res daynight.TimeSchedule
	err := r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		ts, err := r.getTimeSchedule(ctx, id)
		if err != nil {
			return err
		}
		res = ts
		return nil
	})
	return res, err
}

func (r *timeScheduleRepo) CreateSchedule(ctx context.Context, timeScheduleID int, t time.Time, title string) (daynight.Schedule, error) {
	var created daynight.Schedule
	err := r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		db := r.dbGetter(ctx)

		var exists bool
		if err := db.QueryRowContext(
			ctx,
			"SELECT EXISTS(SELECT 1 FROM time_schedules WHERE id=?)", timeScheduleID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("time schedule %d: %w", timeScheduleID, daynight.ErrNotFound)
		}

		var nextID int
		if err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), -1) + 1 FROM schedules").Scan(&nextID); err != nil {
			return err
		}

		e := scheduleEntity{
			ID:             nextID,
			TimeScheduleID: timeScheduleID,
			TimeSec:        t.Unix(),
			TimeNsec:       int64(t.Nanosecond()),
			Title:          title,
		}
		args := []any{e.ID, e.TimeScheduleID, e.TimeSec, e.TimeNsec, e.Title}
		query := "INSERT INTO schedules (id, time_schedule_id, time_sec, time_nsec, title) VALUES " + generateParameters(len(args))
		r.l.Debug("creating schedule", "query", query, "args", args)
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return err
		}

		created = daynight.Schedule{
			ID:    e.ID,
			Time:  t,
			Title: e.Title,
		}
		return nil
	})
	if err != nil {
		return daynight.Schedule{}, err
	}
	return created, nil
}

func (r *timeScheduleRepo) getAllTimeSchedules(ctx context.Context) ([]daynight.TimeSchedule, error) {
	rows, err := r.dbGetter(ctx).QueryContext(ctx, SelectAllTimeSchedules+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var timeSchedules []daynight.TimeSchedule
	for rows.Next() {
		ts, err := extractTimeSchedule(rows)
		if err != nil {
			return nil, err
		}
		timeSchedules = append(timeSchedules, ts)
	}
	return timeSchedules, rows.Err()
}

func (r *timeScheduleRepo) getTimeSchedule(ctx context.Context, id int) (daynight.TimeSchedule, error) {
	row := r.dbGetter(ctx).QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE id=?", SelectAllTimeSchedules), id,
	)
	ts, err := extractTimeSchedule(row)
	if err != nil {
		return daynight.TimeSchedule{}, fmt.Errorf("time schedule %d: %w", id, err)
	}

	res := []daynight.TimeSchedule{ts}
	if err := r.attachSchedules(ctx, res, []any{id}); err != nil {
		return daynight.TimeSchedule{}, err
	}
	return res[0], nil
}

// attachSchedules fills in the Schedules of each element of timeSchedules,
// whose ids are given in ids.
func (r *timeScheduleRepo) attachSchedules(ctx context.Context, timeSchedules []daynight.TimeSchedule, ids []any) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf("%s WHERE time_schedule_id IN %s ORDER BY id", SelectAllSchedules, generateParameters(len(ids)))
	r.l.Debug("getting schedules", "query", query, "ids", ids)
	rows, err := r.dbGetter(ctx).QueryContext(ctx, query, ids...)
	if err != nil {
		return err
	}
	defer rows.Close() //nolint:errcheck

	byTimeSchedule := make(map[int][]daynight.Schedule, len(ids))
	for rows.Next() {
		var e scheduleEntity
		if err := rows.Scan(&e.ID, &e.TimeScheduleID, &e.TimeSec, &e.TimeNsec, &e.Title); err != nil {
			return err
		}
		byTimeSchedule[e.TimeScheduleID] = append(byTimeSchedule[e.TimeScheduleID], mapToSchedule(e))
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range timeSchedules {
		schedules := byTimeSchedule[timeSchedules[i].ID]
		if schedules == nil {
			schedules = []daynight.Schedule{}
		}
		timeSchedules[i].Schedules = schedules
	}
	return nil
}

func extractTimeSchedule(s scannable) (daynight.TimeSchedule, error) {
	var ts daynight.TimeSchedule
	if err := s.Scan(&ts.ID, &ts.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return daynight.TimeSchedule{}, daynight.ErrNotFound
		}
		return daynight.TimeSchedule{}, err
	}
	return ts, nil
}

func mapToSchedule(e scheduleEntity) daynight.Schedule {
	return daynight.Schedule{
		ID:    e.ID,
		Time:  time.Unix(e.TimeSec, e.TimeNsec).UTC(),
		Title: e.Title,
	}
}
