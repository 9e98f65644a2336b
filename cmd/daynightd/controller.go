package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/teteukt/daynight"
)

type controller struct {
	repo daynight.Repository
	l    daynight.Logger
	now  func() time.Time
}

type createScheduleRequest struct {
	Time  *time.Time `json:"time"`
	Title *string    `json:"title"`
}

func (c *controller) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /timeschedules", c.GetAllTimeSchedules)
	mux.HandleFunc("GET /timeschedules/{id}", c.GetTimeSchedule)
	mux.HandleFunc("POST /timeschedules/{id}/schedules", c.CreateSchedule)
	return mux
}

func (c *controller) GetAllTimeSchedules(w http.ResponseWriter, r *http.Request) {
	timeSchedules, err := c.repo.GetAllTimeSchedules(r.Context())
	if err != nil {
		c.fail(w, fmt.Errorf("failed to get time schedules: %w", err))
		return
	}
	c.writeJSON(w, timeSchedules)
}

func (c *controller) GetTimeSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid id %q", r.PathValue("id")), http.StatusBadRequest)
		return
	}

	ts, err := c.repo.GetTimeScheduleByID(r.Context(), id)
	if err != nil {
		c.fail(w, err)
		return
	}
	c.writeJSON(w, ts)
}

func (c *controller) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid id %q", r.PathValue("id")), http.StatusBadRequest)
		return
	}

	// an empty body means defaults for both fields
	var req createScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	at := c.now()
	if req.Time != nil {
		at = *req.Time
	}
	title := daynight.DefaultScheduleTitle
	if req.Title != nil {
		title = *req.Title
	}

	// the repository only reads the id of the time schedule
	if err := c.repo.CreateSchedule(r.Context(), daynight.TimeSchedule{ID: id}, at, title); err != nil {
		c.fail(w, err)
		return
	}
	c.l.Debug("created schedule", "timeScheduleID", id, "title", title)
	w.WriteHeader(http.StatusNoContent)
}

func (c *controller) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, daynight.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	c.l.Error("request failed", "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func (c *controller) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode response: %v", err), http.StatusInternalServerError)
	}
}
