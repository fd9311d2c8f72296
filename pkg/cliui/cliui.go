// Package cliui provides reusable terminal UI helpers (status markers,
// styled key/value output, JSON pretty-printing) for restful CLI commands.
package cliui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	SuccessMark = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("✓")
	FailMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")

	KeyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	ValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	EventStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	StatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Mark returns a ✓ for nil errors or ✗ for non-nil errors.
func Mark(err error) string {
	if err != nil {
		return FailMark
	}
	return SuccessMark
}

// FormatDuration formats a duration for display (e.g. "12ms" or "3.2s").
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// IndentJSON re-indents serialized JSON for terminal display. Input that is
// not valid JSON is returned unchanged.
func IndentJSON(data []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}
	return buf.String()
}

// EventHeader renders a styled "event:" line for streamed SSE output. The
// type falls back to the SSE default "message" when empty.
func EventHeader(eventType, id string) string {
	if eventType == "" {
		eventType = "message"
	}
	header := EventStyle.Render(eventType)
	if id != "" {
		header += DimStyle.Render(fmt.Sprintf(" (id %s)", id))
	}
	return header
}
