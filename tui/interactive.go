package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/AijingLI-KCLLP/find-path-ratp/models"
)

// Planner is the part of the routing service the interactive loop needs.
type Planner interface {
	PlanByName(ctx context.Context, from, to string) (*models.Itinerary, error)
	Stations(query string, limit int) []models.Station
}

// GetTheme builds the huh theme around the accent colour.
func GetTheme(accent string) *huh.Theme {
	if accent == "" {
		accent = DEFAULT_ACCENT
	}
	t := huh.ThemeCharm()
	p := lipgloss.Color(accent)

	t.Focused.Title = t.Focused.Title.Foreground(p).Bold(true)
	t.Focused.Base = t.Focused.Base.Border(lipgloss.RoundedBorder()).BorderForeground(p).Padding(0, 1)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(p)
	t.Blurred.Base = t.Blurred.Base.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	return t
}

// RunInteractive asks for a departure and an arrival, prints the itinerary and
// repeats until the user declines or aborts.
func RunInteractive(ctx context.Context, planner Planner, accent string) error {
	SetAccent(accent)
	theme := GetTheme(accent)

	all := planner.Stations("", 0)
	names := make([]string, len(all))
	for i, st := range all {
		names[i] = st.Name
	}

	for {
		var from, to string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Departure station").
					Suggestions(names).
					Validate(notBlank).
					Value(&from),
				huh.NewInput().
					Title("Arrival station").
					Suggestions(names).
					Validate(notBlank).
					Value(&to),
			),
		).WithTheme(theme)

		if err := form.RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		var (
			itinerary *models.Itinerary
			planErr   error
		)
		_ = spinner.New().
			Title(fmt.Sprintf("Searching %s → %s...", from, to)).
			Action(func() {
				itinerary, planErr = planner.PlanByName(ctx, from, to)
			}).
			Run()

		fmt.Println()
		if planErr != nil {
			fmt.Print(RenderError(planErr))
		}
		if itinerary != nil {
			fmt.Print(RenderItinerary(itinerary))
		}
		fmt.Println()

		again := true
		confirm := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Plan another route?").
					Affirmative("Yes").
					Negative("No").
					Value(&again),
			),
		).WithTheme(theme)
		if err := confirm.RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if !again {
			return nil
		}
	}
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a station name is required")
	}
	return nil
}
