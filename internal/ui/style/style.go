// Package style holds the colour palette and icons shared by the logger and
// the status report.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/vigil/internal/core/domain"
)

// Palette.
var (
	Slate  = lipgloss.Color("#667085")
	Sky    = lipgloss.Color("#0EA5E9")
	Green  = lipgloss.Color("#22A06B")
	Amber  = lipgloss.Color("#F59E0B")
	Red    = lipgloss.Color("#D93025")
	Violet = lipgloss.Color("#8B5CF6")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
	Circle  = "○"
)

// StatusColor returns the colour used to render s.
func StatusColor(s domain.Status) lipgloss.Color {
	switch s {
	case domain.StatusHealthy:
		return Green
	case domain.StatusDegraded:
		return Amber
	case domain.StatusUnhealthy:
		return Red
	case domain.StatusUnconfigured:
		return Violet
	default:
		return Slate
	}
}

// StatusStyle returns the heading style for s, bound to r so the colour
// profile of the destination applies.
func StatusStyle(r *lipgloss.Renderer, s domain.Status) lipgloss.Style {
	return r.NewStyle().Bold(true).Foreground(StatusColor(s))
}

// StatusIcon returns the icon used to render s.
func StatusIcon(s domain.Status) string {
	switch s {
	case domain.StatusHealthy:
		return Check
	case domain.StatusDegraded:
		return Tilde
	case domain.StatusUnhealthy:
		return Cross
	case domain.StatusUnconfigured:
		return Warning
	default:
		return Circle
	}
}
