package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/teteukt/daynight"
)

const logo = `
	█▀▄ ▄▀█ █▄█   █▄ █ █ █▀▀ █ █ ▀█▀
	█▄▀ █▀█  █    █ ▀█ █ █▄█ █▀█  █ `

const commandHelp = `COMMANDS:
  /d [HHMM] [title]: log a Day schedule
  /w [HHMM] [title]: log a Dawn schedule
  /n [HHMM] [title]: log a Night schedule

  HHMM sets the time on today's date, otherwise now is used.
  /h: show this help
`

type model struct {
	// children
	vp        viewport.Model
	userinput textinput.Model

	// supplied
	l    daynight.Logger
	repo daynight.Repository
	now  func() time.Time

	// state
	timeSchedules []daynight.TimeSchedule
	loading       []int // time schedule ids with a create in flight
	alerts        []string
	quitting      bool
	h             int

	// configuration
	cmdTimeout time.Duration
	timeFormat string
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.fetchTimeSchedules, textinput.Blink)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var tiCmd, vpCmd, cmd tea.Cmd

	m, cmd = m.updateParent(msg)

	m.userinput, tiCmd = m.userinput.Update(msg)
	switch msg.(type) {
	case tea.KeyMsg:
		// vp updates on KeyMsg cause the view to flicker
	default:
		m.vp, vpCmd = m.vp.Update(msg)
	}

	return m, tea.Batch(tiCmd, vpCmd, cmd)
}

func (m model) updateParent(msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrorMsg:
		m.l.Error("command failed", "error", msg.err)
		m.addAlert(msg.err.Error(), colorRed)
		m.refresh()
		return m, nil
	case tea.WindowSizeMsg:
		m.h = msg.Height
		m.userinput.Width = msg.Width
		m.vp.Width = msg.Width
		m.refresh()
		return m, nil
	case TimeSchedulesMsg:
		m.timeSchedules = msg.timeSchedules
		m.refresh()
		return m, nil
	case ScheduleCreatedMsg:
		m.loading = slices.DeleteFunc(slices.Clone(m.loading), func(id int) bool {
			return id == msg.timeScheduleID
		})
		if msg.err != nil {
			m.l.Error("command failed", "error", msg.err)
			m.addAlert(msg.err.Error(), colorRed)
		}
		if msg.timeSchedules != nil {
			m.timeSchedules = msg.timeSchedules
		}
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			input := strings.TrimSpace(m.userinput.Value())
			m.userinput.Reset()
			if input == "" {
				return m, nil
			}

			var cmd tea.Cmd
			m.alerts = nil
			m, cmd = m.handleInput(input)
			m.refresh()
			return m, cmd
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) handleInput(input string) (model, tea.Cmd) {
	if input == "/h" {
		m.addAlert(commandHelp, colorYellow)
		return m, nil
	}

	req, err := parseEntry(input, m.now())
	if err != nil {
		m.addAlert(err.Error(), colorYellow)
		return m, nil
	}
	if m.isLoading(req.timeScheduleID) {
		m.addAlert("still saving the previous schedule", colorYellow)
		return m, nil
	}

	m.loading = append(slices.Clone(m.loading), req.timeScheduleID)
	return m, m.createSchedule(req)
}

func (m model) fetchTimeSchedules() tea.Msg {
	timeout, cancel := m.newTimeout()
	defer cancel()

	timeSchedules, err := m.repo.GetAllTimeSchedules(timeout)
	if err != nil {
		return errorMsg("load time schedules: %w", err)
	}
	return TimeSchedulesMsg{
		timeSchedules: timeSchedules,
	}
}

// createSchedule looks the time schedule up before creating so that an
// unknown id only clears the loading state. Every outcome ends in a
// ScheduleCreatedMsg.
func (m model) createSchedule(req entryRequest) tea.Cmd {
	return func() tea.Msg {
		timeout, cancel := m.newTimeout()
		defer cancel()

		done := ScheduleCreatedMsg{timeScheduleID: req.timeScheduleID}
		ts, err := m.repo.GetTimeScheduleByID(timeout, req.timeScheduleID)
		if errors.Is(err, daynight.ErrNotFound) {
			return done
		}
		if err != nil {
			done.err = fmt.Errorf("find time schedule %d: %w", req.timeScheduleID, err)
			return done
		}

		if err := m.repo.CreateSchedule(timeout, ts, req.at, req.title); err != nil {
			done.err = fmt.Errorf("create schedule: %w", err)
			return done
		}
		m.l.Info("logged schedule", "timeSchedule", ts.Name, "title", req.title, "at", req.at)

		done.timeSchedules, err = m.repo.GetAllTimeSchedules(timeout)
		if err != nil {
			done.err = fmt.Errorf("load time schedules: %w", err)
		}
		return done
	}
}

func (m model) isLoading(timeScheduleID int) bool {
	return slices.Contains(m.loading, timeScheduleID)
}

func (m model) View() string {
	return lipgloss.JoinVertical(0, m.vp.View(), m.renderFooter())
}

func (m model) renderTimeSchedules() string {
	blocks := make([]string, 0, len(m.timeSchedules))
	for _, ts := range m.timeSchedules {
		blocks = append(blocks, renderTimeSchedule(ts, m.timeFormat, m.isLoading(ts.ID)))
	}
	return strings.Join(blocks, "\n\n")
}

func (m model) renderFooter() string {
	if m.quitting {
		return ""
	}

	var footer strings.Builder
	footer.WriteRune('\n')
	footer.WriteString(m.userinput.View())
	footer.WriteString("\n\n")

	if len(m.alerts) > 0 {
		footer.WriteString(strings.Join(m.alerts, "\n"))
		footer.WriteString("\n\n")
	} else {
		footer.WriteString(faintStyle.Render("(/h for help, ctrl+c to quit)"))
		footer.WriteRune('\n')
	}

	return footer.String()
}

func (m model) newTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.cmdTimeout)
}

func (m *model) addAlert(alert string, c color) {
	m.alerts = append(m.alerts, colorize(c, alert))
}

// refresh redraws the viewport content and fits it above the footer.
func (m *model) refresh() {
	content := m.renderTimeSchedules()
	m.vp.SetContent(content)
	footerHeight := lipgloss.Height(m.renderFooter())
	m.vp.Height = max(0, min(lipgloss.Height(content), m.h-footerHeight))
	m.vp.GotoBottom()
}
