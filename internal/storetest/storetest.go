// Package storetest holds behavior every daynight.TimeScheduleRepo must share.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/teteukt/daynight"
)

var (
	t1 = time.Date(2024, 5, 1, 7, 30, 0, 0, time.UTC)
	t2 = time.Date(2024, 5, 1, 5, 15, 0, 0, time.UTC)
)

// Run exercises repo implementations built by newRepo. Each subtest gets a
// fresh repo.
func Run(t *testing.T, newRepo func(t *testing.T) daynight.TimeScheduleRepo) {
	t.Run("FixedTimeSchedules", func(t *testing.T) { testFixedTimeSchedules(t, newRepo(t)) })
	t.Run("FindUnknown", func(t *testing.T) { testFindUnknown(t, newRepo(t)) })
	t.Run("IDsAreGlobalAndSequential", func(t *testing.T) { testIDsAreGlobalAndSequential(t, newRepo(t)) })
	t.Run("AppendOnly", func(t *testing.T) { testAppendOnly(t, newRepo(t)) })
	t.Run("IsolatedTimeSchedules", func(t *testing.T) { testIsolatedTimeSchedules(t, newRepo(t)) })
	t.Run("UnknownTimeScheduleIsNoOp", func(t *testing.T) { testUnknownTimeScheduleIsNoOp(t, newRepo(t)) })
	t.Run("WakeUpMeditate", func(t *testing.T) { testWakeUpMeditate(t, newRepo(t)) })
	t.Run("SnapshotsAreIsolated", func(t *testing.T) { testSnapshotsAreIsolated(t, newRepo(t)) })
	t.Run("ExtremeTimes", func(t *testing.T) { testExtremeTimes(t, newRepo(t)) })
	t.Run("ConcurrentCreates", func(t *testing.T) { testConcurrentCreates(t, newRepo(t)) })
}

func testFixedTimeSchedules(t *testing.T, repo daynight.TimeScheduleRepo) {
	ctx := context.Background()
	mustCreate(t, repo, daynight.NightID, t1, "Sleep")

	got, err := repo.ListTimeSchedules(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Day", "Dawn", "Night"}
	if len(got) != len(want) {
		t.Fatalf("expected %d time schedules, got %d", len(want), len(got))
	}
	for i, name := range want {
		if got[i].ID != i {
			t.Errorf("expected time schedule %d to have ID=%d, got %d", i, i, got[i].ID)
		}
		if got[i].Name != name {
			t.Errorf("expected time schedule %d to be named %s, got %s", i, name, got[i].Name)
		}
	}
}

func testFindUnknown(t *testing.T, repo daynight.TimeScheduleRepo) {
	for _, id := range []int{-1, 3, 99} {
		_, err := repo.FindTimeSchedule(context.Background(), id)
		if !errors.Is(err, daynight.ErrNotFound) {
			t.Errorf("FindTimeSchedule(%d): expected ErrNotFound, got %v", id, err)
		}
	}

	ts, err := repo.FindTimeSchedule(context.Background(), daynight.DawnID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.Name != "Dawn" {
		t.Errorf("expected Dawn, got %s", ts.Name)
	}
}

func testIDsAreGlobalAndSequential(t *testing.T, repo daynight.TimeScheduleRepo) {
	targets := []int{daynight.DayID, daynight.NightID, daynight.DawnID, daynight.DayID, daynight.NightID}
	for i, target := range targets {
		s := mustCreate(t, repo, target, t1, "entry")
		if s.ID != i {
			t.Errorf("create #%d: expected ID=%d, got %d", i, i, s.ID)
		}
	}
}

func testAppendOnly(t *testing.T, repo daynight.TimeScheduleRepo) {
	ctx := context.Background()
	mustCreate(t, repo, daynight.DayID, t1, "first")
	mustCreate(t, repo, daynight.DayID, t2, "second")
	before := mustFind(t, repo, daynight.DayID)

	mustCreate(t, repo, daynight.DayID, t1, "x")

	after, err := repo.FindTimeSchedule(ctx, daynight.DayID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(after.Schedules) != len(before.Schedules)+1 {
		t.Fatalf("expected %d schedules, got %d", len(before.Schedules)+1, len(after.Schedules))
	}
	for i, s := range before.Schedules {
		assertSchedule(t, after.Schedules[i], s.ID, s.Time, s.Title)
	}
	assertSchedule(t, after.Schedules[len(after.Schedules)-1], 2, t1, "x")
}

func testIsolatedTimeSchedules(t *testing.T, repo daynight.TimeScheduleRepo) {
	mustCreate(t, repo, daynight.DayID, t1, "day")
	mustCreate(t, repo, daynight.NightID, t2, "night")
	day := mustFind(t, repo, daynight.DayID)
	night := mustFind(t, repo, daynight.NightID)

	mustCreate(t, repo, daynight.DawnID, t1, "dawn")

	if got := mustFind(t, repo, daynight.DayID); len(got.Schedules) != len(day.Schedules) {
		t.Errorf("expected Day to keep %d schedules, got %d", len(day.Schedules), len(got.Schedules))
	}
	if got := mustFind(t, repo, daynight.NightID); len(got.Schedules) != len(night.Schedules) {
		t.Errorf("expected Night to keep %d schedules, got %d", len(night.Schedules), len(got.Schedules))
	}
}

func testUnknownTimeScheduleIsNoOp(t *testing.T, repo daynight.TimeScheduleRepo) {
	ctx := context.Background()
	mustCreate(t, repo, daynight.DayID, t1, "before")

	_, err := repo.CreateSchedule(ctx, 99, t1, "x")
	if !errors.Is(err, daynight.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	all, err := repo.ListTimeSchedules(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	total := 0
	for _, ts := range all {
		total += len(ts.Schedules)
	}
	if total != 1 {
		t.Errorf("expected 1 schedule overall, got %d", total)
	}

	next := mustCreate(t, repo, daynight.DawnID, t2, "after")
	if next.ID != 1 {
		t.Errorf("expected failed create to leave the counter alone, got ID=%d", next.ID)
	}
}

func testWakeUpMeditate(t *testing.T, repo daynight.TimeScheduleRepo) {
	mustCreate(t, repo, daynight.DayID, t1, "Wake up")
	mustCreate(t, repo, daynight.DawnID, t2, "Meditate")

	day := mustFind(t, repo, daynight.DayID)
	if len(day.Schedules) != 1 {
		t.Fatalf("expected 1 Day schedule, got %d", len(day.Schedules))
	}
	assertSchedule(t, day.Schedules[0], 0, t1, "Wake up")

	dawn := mustFind(t, repo, daynight.DawnID)
	if len(dawn.Schedules) != 1 {
		t.Fatalf("expected 1 Dawn schedule, got %d", len(dawn.Schedules))
	}
	assertSchedule(t, dawn.Schedules[0], 1, t2, "Meditate")

	if night := mustFind(t, repo, daynight.NightID); len(night.Schedules) != 0 {
		t.Errorf("expected Night to be empty, got %d schedules", len(night.Schedules))
	}
}

func testSnapshotsAreIsolated(t *testing.T, repo daynight.TimeScheduleRepo) {
	ctx := context.Background()
	mustCreate(t, repo, daynight.DayID, t1, "kept")

	all, err := repo.ListTimeSchedules(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	all[0].Name = "Renamed"
	all[0].Schedules[0].Title = "mutated"
	_ = append(all[0].Schedules, daynight.Schedule{ID: 42, Title: "leaked"})

	found := mustFind(t, repo, daynight.DayID)
	found.Schedules[0].Title = "mutated again"

	mustCreate(t, repo, daynight.DayID, t2, "next")

	day := mustFind(t, repo, daynight.DayID)
	if day.Name != "Day" {
		t.Errorf("expected name Day, got %s", day.Name)
	}
	if len(day.Schedules) != 2 {
		t.Fatalf("expected 2 schedules, got %d", len(day.Schedules))
	}
	assertSchedule(t, day.Schedules[0], 0, t1, "kept")
	assertSchedule(t, day.Schedules[1], 1, t2, "next")
}

// Times are stored as given, whatever their range.
func testExtremeTimes(t *testing.T, repo daynight.TimeScheduleRepo) {
	ctx := context.Background()
	times := []time.Time{
		{},
		time.Date(-1, 12, 31, 23, 59, 59, 999999999, time.UTC),
		time.Date(2262, 4, 12, 0, 0, 0, 0, time.UTC),
		time.Date(10000, 1, 1, 0, 0, 0, 1, time.UTC),
	}
	for i, at := range times {
		mustCreate(t, repo, daynight.DayID, at, "edge")
		if _, err := repo.ListTimeSchedules(ctx); err != nil {
			t.Fatalf("list after storing %s: %v", at, err)
		}
		day := mustFind(t, repo, daynight.DayID)
		if len(day.Schedules) != i+1 {
			t.Fatalf("expected %d schedules, got %d", i+1, len(day.Schedules))
		}
		assertSchedule(t, day.Schedules[i], i, at, "edge")
	}
}

func testConcurrentCreates(t *testing.T, repo daynight.TimeScheduleRepo) {
	const workers, perWorker = 8, 25
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 2*workers*perWorker)
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				if _, err := repo.CreateSchedule(ctx, w%3, t1, "concurrent"); err != nil {
					errs <- err
				}
				if _, err := repo.ListTimeSchedules(ctx); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("unexpected error: %v", err)
	}

	all, err := repo.ListTimeSchedules(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := make(map[int]bool)
	for _, ts := range all {
		last := -1
		for _, s := range ts.Schedules {
			if seen[s.ID] {
				t.Errorf("duplicate schedule ID %d", s.ID)
			}
			seen[s.ID] = true
			if s.ID <= last {
				t.Errorf("time schedule %d: IDs out of creation order: %d after %d", ts.ID, s.ID, last)
			}
			last = s.ID
		}
	}
	for id := range workers * perWorker {
		if !seen[id] {
			t.Errorf("missing schedule ID %d", id)
		}
	}
}

func mustCreate(t *testing.T, repo daynight.TimeScheduleRepo, id int, at time.Time, title string) daynight.Schedule {
	t.Helper()
	s, err := repo.CreateSchedule(context.Background(), id, at, title)
	if err != nil {
		t.Fatalf("CreateSchedule(%d, %q): %v", id, title, err)
	}
	return s
}

func mustFind(t *testing.T, repo daynight.TimeScheduleRepo, id int) daynight.TimeSchedule {
	t.Helper()
	ts, err := repo.FindTimeSchedule(context.Background(), id)
	if err != nil {
		t.Fatalf("FindTimeSchedule(%d): %v", id, err)
	}
	return ts
}

func assertSchedule(t *testing.T, got daynight.Schedule, id int, at time.Time, title string) {
	t.Helper()
	if got.ID != id {
		t.Errorf("expected ID=%d, got %d", id, got.ID)
	}
	if !got.Time.Equal(at) {
		t.Errorf("expected time %s, got %s", at, got.Time)
	}
	if got.Title != title {
		t.Errorf("expected title %q, got %q", title, got.Title)
	}
}
