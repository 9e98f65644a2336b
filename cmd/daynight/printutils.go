package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/teteukt/daynight"
)

type color = string

const (
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
	dash        = '─'
	tailDown    = '┐'
	tailUp      = '┘'
)

var faintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(false)

func line(length int) string {
	var sb strings.Builder
	for range length {
		sb.WriteRune(dash)
	}
	return sb.String()
}

func colorize(c color, s string) string {
	return c + s + colorReset
}

func formatForDisplay(s daynight.Schedule, format string) string {
	return fmt.Sprintf("[%s] %s", s.Time.Format(format), s.Title)
}
