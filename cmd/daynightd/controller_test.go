package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/teteukt/daynight"
	"github.com/teteukt/daynight/charmlog"
	"github.com/teteukt/daynight/memory"
)

var fixedNow = time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, strict bool) *httptest.Server {
	t.Helper()
	logger := charmlog.NewLogger(charmlog.Options{Writer: io.Discard})
	c := &controller{
		repo: daynight.NewRepository(memory.NewStore(), logger, daynight.RepositoryOptions{Strict: strict}),
		l:    logger,
		now:  func() time.Time { return fixedNow },
	}
	srv := httptest.NewServer(c.routes())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	res, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = res.Body.Close()
	return res
}

func getTimeSchedule(t *testing.T, url string) (daynight.TimeSchedule, int) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer res.Body.Close() //nolint:errcheck
	if res.StatusCode != http.StatusOK {
		return daynight.TimeSchedule{}, res.StatusCode
	}
	var ts daynight.TimeSchedule
	if err := json.NewDecoder(res.Body).Decode(&ts); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return ts, res.StatusCode
}

func TestController_GetAllTimeSchedules(t *testing.T) {
	srv := newTestServer(t, false)

	res, err := http.Get(srv.URL + "/timeschedules")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer res.Body.Close() //nolint:errcheck

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}
	var all []daynight.TimeSchedule
	if err := json.NewDecoder(res.Body).Decode(&all); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Day" || all[1].Name != "Dawn" || all[2].Name != "Night" {
		t.Errorf("expected Day, Dawn, Night, got %+v", all)
	}
}

func TestController_CreateSchedule(t *testing.T) {
	srv := newTestServer(t, false)

	res := post(t, srv.URL+"/timeschedules/0/schedules", `{"time":"2024-05-01T07:30:00Z","title":"Wake up"}`)
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.StatusCode)
	}
	res = post(t, srv.URL+"/timeschedules/1/schedules", "")
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.StatusCode)
	}

	day, _ := getTimeSchedule(t, srv.URL+"/timeschedules/0")
	if len(day.Schedules) != 1 {
		t.Fatalf("expected 1 Day schedule, got %d", len(day.Schedules))
	}
	want := time.Date(2024, 5, 1, 7, 30, 0, 0, time.UTC)
	if s := day.Schedules[0]; s.ID != 0 || s.Title != "Wake up" || !s.Time.Equal(want) {
		t.Errorf("unexpected schedule %+v", s)
	}

	dawn, _ := getTimeSchedule(t, srv.URL+"/timeschedules/1")
	if len(dawn.Schedules) != 1 {
		t.Fatalf("expected 1 Dawn schedule, got %d", len(dawn.Schedules))
	}
	if s := dawn.Schedules[0]; s.ID != 1 || s.Title != daynight.DefaultScheduleTitle || !s.Time.Equal(fixedNow) {
		t.Errorf("expected defaults to be applied, got %+v", s)
	}
}

func TestController_StatusCodes(t *testing.T) {
	lenient := newTestServer(t, false)
	strict := newTestServer(t, true)

	tests := []struct {
		name   string
		do     func(t *testing.T) int
		status int
	}{
		{"unknown time schedule", func(t *testing.T) int {
			_, code := getTimeSchedule(t, lenient.URL+"/timeschedules/9")
			return code
		}, http.StatusNotFound},
		{"non-integer id", func(t *testing.T) int {
			_, code := getTimeSchedule(t, lenient.URL+"/timeschedules/day")
			return code
		}, http.StatusBadRequest},
		{"bad json", func(t *testing.T) int {
			return post(t, lenient.URL+"/timeschedules/0/schedules", "{").StatusCode
		}, http.StatusBadRequest},
		{"lenient create on unknown", func(t *testing.T) int {
			return post(t, lenient.URL+"/timeschedules/9/schedules", `{"title":"x"}`).StatusCode
		}, http.StatusNoContent},
		{"strict create on unknown", func(t *testing.T) int {
			return post(t, strict.URL+"/timeschedules/9/schedules", `{"title":"x"}`).StatusCode
		}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.do(t); got != tt.status {
				t.Errorf("expected %d, got %d", tt.status, got)
			}
		})
	}
}

func TestController_CreateScheduleChunkedEmptyBody(t *testing.T) {
	logger := charmlog.NewLogger(charmlog.Options{Writer: io.Discard})
	c := &controller{
		repo: daynight.NewRepository(memory.NewStore(), logger, daynight.RepositoryOptions{}),
		l:    logger,
		now:  func() time.Time { return fixedNow },
	}
	h := c.routes()

	req := httptest.NewRequest(http.MethodPost, "/timeschedules/2/schedules", io.NopCloser(strings.NewReader("")))
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/timeschedules/2", nil))
	var night daynight.TimeSchedule
	if err := json.NewDecoder(rec.Body).Decode(&night); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(night.Schedules) != 1 || night.Schedules[0].Title != daynight.DefaultScheduleTitle || !night.Schedules[0].Time.Equal(fixedNow) {
		t.Errorf("expected one default Night schedule, got %+v", night.Schedules)
	}
}
