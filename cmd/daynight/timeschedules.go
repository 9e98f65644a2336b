package main

import (
	"fmt"
	"strings"

	"github.com/teteukt/daynight"
)

const minLineWidth = 20

// renderTimeSchedule draws a header line, one line per schedule and a closing
// line, all as wide as the longest entry.
func renderTimeSchedule(ts daynight.TimeSchedule, timeFormat string, loading bool) string {
	entries := make([]string, 0, len(ts.Schedules))
	width := len(ts.Name)
	for _, s := range ts.Schedules {
		e := formatForDisplay(s, timeFormat)
		width = max(width, len([]rune(e)))
		entries = append(entries, e)
	}
	l := max(minLineWidth, width+4)

	header := ts.Name
	if loading {
		header += " …"
	}
	lines := []string{
		fmt.Sprintf("%s %s%c", header, line(l-len([]rune(header))), tailDown),
	}
	if len(entries) == 0 {
		lines = append(lines, faintStyle.Render("(nothing yet)"))
	}
	lines = append(lines, entries...)
	lines = append(lines, fmt.Sprintf("%s%c", line(l+1), tailUp))

	return strings.Join(lines, "\n")
}
