package main

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/teteukt/daynight"
)

var timeRe = regexp.MustCompile(`^(?:[01]\d|2[0-3])[0-5]\d$`)

var commandTimeSchedules = map[string]int{
	"/d": daynight.DayID,
	"/w": daynight.DawnID,
	"/n": daynight.NightID,
}

var errUsage = errors.New("usage: /d|/w|/n [HHMM] [title]")

type entryRequest struct {
	timeScheduleID int
	at             time.Time
	title          string
}

// parseEntry reads "/d 0730 Wake up" style input. The time defaults to now
// and the title to daynight.DefaultScheduleTitle.
func parseEntry(input string, now time.Time) (entryRequest, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return entryRequest{}, errUsage
	}
	id, ok := commandTimeSchedules[fields[0]]
	if !ok {
		return entryRequest{}, errUsage
	}

	req := entryRequest{
		timeScheduleID: id,
		at:             now,
		title:          daynight.DefaultScheduleTitle,
	}
	rest := fields[1:]
	if len(rest) > 0 && timeRe.MatchString(rest[0]) {
		hour, _ := strconv.Atoi(rest[0][:2])
		minute, _ := strconv.Atoi(rest[0][2:])
		req.at = daynight.AtHourMinute(now, hour, minute)
		rest = rest[1:]
	}
	if len(rest) > 0 {
		req.title = strings.Join(rest, " ")
	}
	return req, nil
}
