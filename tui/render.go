package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AijingLI-KCLLP/find-path-ratp/models"
)

const DEFAULT_ACCENT = "99"

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(DEFAULT_ACCENT)).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	badgeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color(DEFAULT_ACCENT)).Bold(true).Padding(0, 1)
)

// SetAccent recolours headings and line badges.
func SetAccent(color string) {
	if color == "" {
		color = DEFAULT_ACCENT
	}
	accentStyle = accentStyle.Foreground(lipgloss.Color(color))
	badgeStyle = badgeStyle.Background(lipgloss.Color(color))
}

// FormatMinutes rounds to whole minutes, never showing 0 for a real trip.
func FormatMinutes(minutes float64) string {
	m := int(math.Round(minutes))
	if m == 0 && minutes > 0 {
		return "< 1 min"
	}
	return fmt.Sprintf("%d min", m)
}

func RenderItinerary(it *models.Itinerary) string {
	var b strings.Builder

	transfers := fmt.Sprintf("%d transfers", it.Transfers)
	if it.Transfers == 1 {
		transfers = "1 transfer"
	}
	b.WriteString(accentStyle.Render(fmt.Sprintf("%s → %s", it.From, it.To)))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %s · %s", FormatMinutes(it.Minutes), transfers)))
	b.WriteString("\n")

	if len(it.Segments) == 0 {
		b.WriteString(mutedStyle.Render("  Already there."))
		b.WriteString("\n")
		return b.String()
	}

	for _, seg := range it.Segments {
		b.WriteString("\n")
		b.WriteString(badgeStyle.Render("Line " + seg.Line))
		b.WriteString(fmt.Sprintf(" %s → %s ", seg.Stations[0], seg.Stations[len(seg.Stations)-1]))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("(%d stops)", len(seg.Stations)-1)))
		b.WriteString("\n")
		for _, name := range seg.Stations {
			b.WriteString("  • " + name + "\n")
		}
	}

	if points := it.TransferPoints(); len(points) > 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Change at: " + strings.Join(points, ", ")))
		b.WriteString("\n")
	}
	return b.String()
}

func RenderStations(list []models.Station) string {
	if len(list) == 0 {
		return errorStyle.Render("No station matches.") + "\n"
	}
	var b strings.Builder
	for _, st := range list {
		b.WriteString(fmt.Sprintf("%4d  %-32s %s\n", st.ID, st.Name, mutedStyle.Render(strings.Join(st.Lines, " "))))
	}
	return b.String()
}

func RenderLines(lines []models.LineSummary) string {
	var b strings.Builder
	for _, l := range lines {
		branches := ""
		if l.Branches > 1 {
			branches = fmt.Sprintf(", %d branches", l.Branches)
		}
		b.WriteString(fmt.Sprintf("%s %s\n", badgeStyle.Render(fmt.Sprintf("%-4s", l.Label)), mutedStyle.Render(fmt.Sprintf("%d stations%s", l.Stops, branches))))
	}
	return b.String()
}

// RenderError formats err for the terminal.
func RenderError(err error) string {
	return errorStyle.Render("✗ "+err.Error()) + "\n"
}
