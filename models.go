package daynight

import (
	"time"
)

// TimeSchedule is one of the three fixed buckets schedules are logged under.
type TimeSchedule struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Schedules []Schedule `json:"schedules"`
}

// Schedule is a titled moment logged under a TimeSchedule. IDs are unique
// across all time schedules.
type Schedule struct {
	ID    int       `json:"id"`
	Time  time.Time `json:"time"`
	Title string    `json:"title"`
}

// IDs of the fixed time schedules.
const (
	DayID = iota
	DawnID
	NightID
)

// DefaultScheduleTitle is used when a schedule is created without a title.
const DefaultScheduleTitle = "Schedule"

// DefaultTimeSchedules returns the three empty time schedules every store starts with.
func DefaultTimeSchedules() []TimeSchedule {
	return []TimeSchedule{
		{ID: DayID, Name: "Day", Schedules: []Schedule{}},
		{ID: DawnID, Name: "Dawn", Schedules: []Schedule{}},
		{ID: NightID, Name: "Night", Schedules: []Schedule{}},
	}
}

// AtHourMinute returns day with its clock set to hour:minute.
func AtHourMinute(day time.Time, hour, minute int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, day.Location())
}
