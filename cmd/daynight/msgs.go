package main

import (
	"fmt"

	"github.com/teteukt/daynight"
)

type TimeSchedulesMsg struct {
	timeSchedules []daynight.TimeSchedule
}

// ScheduleCreatedMsg ends a create for timeScheduleID, successful or not.
type ScheduleCreatedMsg struct {
	timeScheduleID int
	timeSchedules  []daynight.TimeSchedule
	err            error
}

type ErrorMsg struct {
	err error
}

func errorMsg(format string, args ...any) ErrorMsg {
	return ErrorMsg{
		err: fmt.Errorf(format, args...),
	}
}
