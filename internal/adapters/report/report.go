// Package report renders the health state of every source for operators.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/ui/output"
	"go.trai.ch/vigil/internal/ui/style"
	"go.trai.ch/zerr"
)

const (
	width = 80

	// LastErrorWidth caps the last error shown per source.
	LastErrorWidth = 100
)

// Renderer writes status reports.
type Renderer struct {
	out    *termenv.Output
	styles *lipgloss.Renderer
}

// New creates a Renderer writing to w with the detected colour profile.
func New(w io.Writer) *Renderer {
	return NewWithOutput(output.New(w))
}

// NewWithOutput creates a Renderer on an explicit termenv output.
func NewWithOutput(out *termenv.Output) *Renderer {
	styles := lipgloss.NewRenderer(out)
	styles.SetOutput(out)
	styles.SetColorProfile(out.Profile)
	return &Renderer{out: out, styles: styles}
}

// Render writes the text report: sources grouped by status in report order,
// each group sorted by name, followed by a summary line.
func (r *Renderer) Render(records map[string]domain.SourceHealth) error {
	var sb strings.Builder

	rule := strings.Repeat("=", width)
	sb.WriteString(rule + "\n")
	sb.WriteString(r.bold("Source Health Report") + "\n")
	sb.WriteString(rule + "\n\n")

	if len(records) == 0 {
		sb.WriteString("No data sources registered for health monitoring.\n")
		return r.write(sb.String())
	}

	groups := make(map[domain.Status][]domain.SourceHealth)
	for name, h := range records {
		h.Name = name
		groups[h.Status] = append(groups[h.Status], h)
	}

	for _, status := range domain.Statuses {
		group := groups[status]
		if len(group) == 0 {
			continue
		}
		slices.SortFunc(group, func(a, b domain.SourceHealth) int {
			return strings.Compare(a.Name, b.Name)
		})

		heading := style.StatusIcon(status) + " " + strings.ToUpper(string(status))
		sb.WriteString(r.colour(heading, status) + "\n")
		sb.WriteString(strings.Repeat("-", width) + "\n")
		for _, h := range group {
			sb.WriteString(line(h) + "\n")
			if h.LastError != nil && *h.LastError != "" {
				sb.WriteString("    Last Error: " + clip(*h.LastError, LastErrorWidth) + "\n")
			}
		}
		sb.WriteString("\n")
	}

	total := len(records)
	sb.WriteString(rule + "\n")
	fmt.Fprintf(&sb, "SUMMARY: %d/%d healthy, %d/%d degraded, %d/%d unhealthy\n",
		len(groups[domain.StatusHealthy]), total,
		len(groups[domain.StatusDegraded]), total,
		len(groups[domain.StatusUnhealthy]), total,
	)
	sb.WriteString(rule + "\n")

	return r.write(sb.String())
}

// RenderJSON writes records as an indented JSON document keyed by name.
func (r *Renderer) RenderJSON(records map[string]domain.SourceHealth) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to encode status report")
	}
	return r.write(string(data) + "\n")
}

func (r *Renderer) write(s string) error {
	if _, err := io.WriteString(r.out, s); err != nil {
		return zerr.Wrap(err, "failed to write status report")
	}
	return nil
}

func (r *Renderer) bold(s string) string {
	return r.out.String(s).Bold().String()
}

func (r *Renderer) colour(s string, status domain.Status) string {
	return style.StatusStyle(r.styles, status).Render(s)
}

func line(h domain.SourceHealth) string {
	return fmt.Sprintf("  %-20s | Requests: %4d | Success: %4d | Failures: %4d | Error Rate: %5.1f%% | Avg: %6.3fs",
		h.Name, h.TotalRequests, h.SuccessCount, h.FailureCount, h.ErrorRate, h.AvgResponseTime)
}

// clip shortens s to at most n runes.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
