package main

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/teteukt/daynight"
	"github.com/teteukt/daynight/charmlog"
	"github.com/teteukt/daynight/memory"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type failingCreateRepo struct {
	*memory.Store
	err error
}

func (r failingCreateRepo) CreateSchedule(context.Context, int, time.Time, string) (daynight.Schedule, error) {
	return daynight.Schedule{}, r.err
}

func newTestModel(t *testing.T) model {
	t.Helper()
	return newTestModelWithRepo(t, memory.NewStore())
}

func newTestModelWithRepo(t *testing.T, store daynight.TimeScheduleRepo) model {
	t.Helper()
	logger := charmlog.NewLogger(charmlog.Options{Writer: io.Discard})
	m := model{
		l:          logger,
		repo:       daynight.NewRepository(store, logger, daynight.RepositoryOptions{}),
		now:        func() time.Time { return fixedNow },
		timeFormat: "15:04",
		cmdTimeout: time.Second,
		userinput:  textinput.New(),
		vp:         viewport.New(80, 0),
		h:          40,
	}
	m, _ = update(t, m, m.fetchTimeSchedules())
	return m
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

// submit types input and presses enter, then runs the resulting command.
func submit(t *testing.T, m model, input string) model {
	t.Helper()
	m.userinput.SetValue(input)
	m, cmd := m.updateParent(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		m, _ = update(t, m, cmd())
	}
	return m
}

func TestModel_LoadsTimeSchedules(t *testing.T) {
	m := newTestModel(t)

	if len(m.timeSchedules) != 3 {
		t.Fatalf("expected 3 time schedules, got %d", len(m.timeSchedules))
	}
	view := m.renderTimeSchedules()
	for _, name := range []string{"Day", "Dawn", "Night"} {
		if !strings.Contains(view, name) {
			t.Errorf("expected view to contain %s, got %q", name, view)
		}
	}
}

func TestModel_CreatesSchedule(t *testing.T) {
	m := newTestModel(t)

	m = submit(t, m, "/d 0730 Wake up")
	m = submit(t, m, "/w Meditate")

	if len(m.loading) != 0 {
		t.Errorf("expected no create in flight, got %v", m.loading)
	}
	day := m.timeSchedules[daynight.DayID]
	if len(day.Schedules) != 1 || day.Schedules[0].Title != "Wake up" {
		t.Fatalf("expected Day to hold [Wake up], got %+v", day.Schedules)
	}
	if got := day.Schedules[0].Time; got.Hour() != 7 || got.Minute() != 30 {
		t.Errorf("expected 07:30, got %s", got)
	}
	dawn := m.timeSchedules[daynight.DawnID]
	if len(dawn.Schedules) != 1 || dawn.Schedules[0].ID != 1 {
		t.Fatalf("expected Dawn to hold schedule 1, got %+v", dawn.Schedules)
	}
	if !strings.Contains(m.renderTimeSchedules(), "[07:30] Wake up") {
		t.Errorf("expected rendered entry, got %q", m.renderTimeSchedules())
	}
}

func TestModel_MarksLoadingUntilCreated(t *testing.T) {
	m := newTestModel(t)

	m.userinput.SetValue("/n Sleep")
	m, cmd := m.updateParent(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.isLoading(daynight.NightID) {
		t.Fatal("expected Night to be loading")
	}

	m.userinput.SetValue("/n Again")
	m, second := m.updateParent(tea.KeyMsg{Type: tea.KeyEnter})
	if second != nil {
		t.Error("expected no second create while the first is in flight")
	}

	m, _ = update(t, m, cmd())
	if m.isLoading(daynight.NightID) {
		t.Error("expected loading to clear after create")
	}
	if n := len(m.timeSchedules[daynight.NightID].Schedules); n != 1 {
		t.Errorf("expected 1 Night schedule, got %d", n)
	}
}

func TestModel_FailedCreateClearsLoading(t *testing.T) {
	m := newTestModelWithRepo(t, failingCreateRepo{Store: memory.NewStore(), err: errors.New("disk full")})

	m = submit(t, m, "/d Wake")

	if m.isLoading(daynight.DayID) {
		t.Fatal("expected loading to clear after a failed create")
	}
	if len(m.alerts) != 1 || !strings.Contains(m.alerts[0], "disk full") {
		t.Errorf("expected the error as an alert, got %v", m.alerts)
	}

	m.userinput.SetValue("/d Retry")
	m, cmd := m.updateParent(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected a retry to start a create, got alerts %v", m.alerts)
	}
	if !m.isLoading(daynight.DayID) {
		t.Error("expected Day to be loading during the retry")
	}
}

func TestModel_BadInputAlerts(t *testing.T) {
	m := newTestModel(t)

	m = submit(t, m, "hello")

	if len(m.alerts) != 1 || !strings.Contains(m.alerts[0], "usage") {
		t.Errorf("expected a usage alert, got %v", m.alerts)
	}
}

func TestModel_Help(t *testing.T) {
	m := newTestModel(t)

	m = submit(t, m, "/h")

	if len(m.alerts) != 1 || !strings.Contains(m.alerts[0], "COMMANDS") {
		t.Errorf("expected help alert, got %v", m.alerts)
	}
}

func TestRenderTimeSchedule(t *testing.T) {
	ts := daynight.TimeSchedule{
		ID:   daynight.NightID,
		Name: "Night",
		Schedules: []daynight.Schedule{
			{ID: 4, Time: time.Date(2024, 5, 1, 22, 15, 0, 0, time.UTC), Title: "Read"},
		},
	}

	out := renderTimeSchedule(ts, "15:04", true)

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Night …") || !strings.HasSuffix(lines[0], string(tailDown)) {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != "[22:15] Read" {
		t.Errorf("unexpected entry %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], string(tailUp)) {
		t.Errorf("unexpected footer %q", lines[2])
	}
}
