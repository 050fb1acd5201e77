package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mini-bluebikes/stationflow/internal/metrics"
	"github.com/mini-bluebikes/stationflow/internal/present"
	"github.com/mini-bluebikes/stationflow/internal/session"
	"github.com/mini-bluebikes/stationflow/internal/static/lanes"
	"github.com/mini-bluebikes/stationflow/internal/traffic"
)

// Explorer is the interactive time filter: a prompt stands in for the
// map's slider and every answer recomputes the session snapshot.
type Explorer struct {
	Session   *session.Session
	Projector *present.Projector
	Lanes     []lanes.Summary
	TopN      int
	Out       io.Writer
}

// ParseFilter turns prompt input into a filter value: blank means any
// time, otherwise HH:MM.
func ParseFilter(input string) (int, error) {
	if strings.TrimSpace(input) == "" {
		return traffic.NoFilter, nil
	}
	return present.ParseClock(input)
}

func validateFilter(input string) error {
	_, err := ParseFilter(input)
	return err
}

// Show renders the current snapshot of the session.
func (e *Explorer) Show() {
	snap := e.Session.Snapshot()
	markers := present.Markers(snap.Stations, snap.MaxTotalTraffic, snap.Filtered(), e.Projector)

	fmt.Fprintln(e.Out)
	RenderStations(e.Out, snap, RankMarkers(markers, e.TopN))
	RenderLegend(e.Out)
	RenderSummary(e.Out, metrics.Summarize(snap.Stations, 0))
}

// Run shows the lane layers, then loops on the time prompt until the
// user declines another pick or aborts.
func (e *Explorer) Run() error {
	RenderLanes(e.Out, e.Lanes)
	e.Show()

	for {
		input := ""
		if e.Session.Filter() != traffic.NoFilter {
			input = fmt.Sprintf("%02d:%02d", e.Session.Filter()/60, e.Session.Filter()%60)
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Filter by time of day").
					Description("HH:MM in 24-hour time, blank for any time").
					Placeholder("17:30").
					Value(&input).
					Validate(validateFilter),
			),
		).WithTheme(Theme())

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		minute, err := ParseFilter(input)
		if err != nil {
			return err
		}
		if _, err := e.Session.SetFilter(minute); err != nil {
			return fmt.Errorf("apply filter: %w", err)
		}
		e.Show()

		again := true
		confirm := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Pick another time?").
					Affirmative("Yes").
					Negative("Done").
					Value(&again),
			),
		).WithTheme(Theme())

		if err := confirm.Run(); err != nil {
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
