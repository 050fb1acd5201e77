package tui

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mini-bluebikes/stationflow/internal/metrics"
	"github.com/mini-bluebikes/stationflow/internal/present"
	"github.com/mini-bluebikes/stationflow/internal/session"
	"github.com/mini-bluebikes/stationflow/internal/static/lanes"
)

// Widest bar in the hourly profile
const profileBarWidth = 30

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// RankMarkers orders markers by total traffic, busiest first, with ties
// broken by station id. topN > 0 keeps only the first topN.
func RankMarkers(markers []present.Marker, topN int) []present.Marker {
	ranked := make([]present.Marker, len(markers))
	copy(ranked, markers)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Station, ranked[j].Station
		if a.TotalTraffic != b.TotalTraffic {
			return a.TotalTraffic > b.TotalTraffic
		}
		return a.ID < b.ID
	})

	if topN > 0 && topN < len(ranked) {
		ranked = ranked[:topN]
	}
	return ranked
}

// FlowLabel names the flow bucket of a marker.
func FlowLabel(m present.Marker) string {
	switch {
	case m.Station.TotalTraffic == 0:
		return "idle"
	case m.FlowBucket >= 1:
		return "departures"
	case m.FlowBucket >= 0.5:
		return "balanced"
	default:
		return "arrivals"
	}
}

// WindowLabel describes the time filter of a snapshot.
func WindowLabel(filter int) string {
	if filter < 0 {
		return present.AnyTimeLabel
	}
	return fmt.Sprintf("%s (±60 min)", present.FormatMinute(filter))
}

// RenderStations writes the snapshot header and one row per marker.
func RenderStations(w io.Writer, snap *session.Snapshot, markers []present.Marker) {
	fmt.Fprintln(w, accentStyle.Render("Station traffic "+WindowLabel(snap.Filter)))
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d departures, %d arrivals, busiest station %d trips",
		snap.DepartureCount, snap.ArrivalCount, snap.MaxTotalTraffic)))

	if len(markers) == 0 {
		fmt.Fprintln(w, errorStyle.Render("No stations to show."))
		return
	}

	t := newTable("", "ID", "Name", "Departures", "Arrivals", "Total", "Radius", "Flow")
	for _, m := range markers {
		t.Row(
			swatch(m.Color),
			m.Station.ID,
			m.Station.Name,
			strconv.Itoa(m.Station.Departures),
			strconv.Itoa(m.Station.Arrivals),
			strconv.Itoa(m.Station.TotalTraffic),
			strconv.FormatFloat(m.Radius, 'f', 1, 64),
			FlowLabel(m),
		)
	}
	fmt.Fprintln(w, t.Render())
}

// RenderLegend writes the flow color key.
func RenderLegend(w io.Writer) {
	fmt.Fprintf(w, "%s more departures  %s balanced  %s more arrivals\n",
		swatch(present.FlowColor(1)),
		swatch(present.FlowColor(0.5)),
		swatch(present.FlowColor(0)),
	)
}

// RenderSummary writes traffic statistics and hotspots.
func RenderSummary(w io.Writer, s metrics.Summary) {
	fmt.Fprintf(w, "%d of %d stations active, %d trips counted, mean %.1f (sd %.1f)\n",
		s.Active, s.Stations, s.TotalTraffic, s.Mean, s.StdDev)

	if len(s.Hotspots) == 0 {
		return
	}

	names := make([]string, 0, len(s.Hotspots))
	for _, h := range s.Hotspots {
		label := h.Station.ID
		if h.Station.Name != "" {
			label = h.Station.Name
		}
		names = append(names, fmt.Sprintf("%s (z=%.1f)", label, h.ZScore))
	}
	fmt.Fprintln(w, errorStyle.Render("Hotspots: ")+strings.Join(names, ", "))
}

// RenderLanes writes one row per loaded bike lane layer.
func RenderLanes(w io.Writer, summaries []lanes.Summary) {
	fmt.Fprintln(w, accentStyle.Render("Bike lane layers"))

	if len(summaries) == 0 {
		fmt.Fprintln(w, errorStyle.Render("No bike lane layers loaded."))
		return
	}

	t := newTable("", "Layer", "Features", "Lines", "Length (km)", "Skipped")
	for _, s := range summaries {
		t.Row(
			swatch(s.Layer.Paint.Color),
			s.Layer.ID,
			strconv.Itoa(s.Features),
			strconv.Itoa(s.LineFeatures),
			strconv.FormatFloat(s.LengthKM(), 'f', 1, 64),
			strconv.Itoa(s.SkippedShapes),
		)
	}
	fmt.Fprintln(w, t.Render())
}

// RenderProfile writes the 24-hour traffic profile with one bar per hour.
func RenderProfile(w io.Writer, profile []metrics.HourStat) {
	peak := metrics.PeakHour(profile)
	fmt.Fprintln(w, accentStyle.Render("Trips by hour of day"))
	if peak.Total() == 0 {
		fmt.Fprintln(w, errorStyle.Render("No trips loaded."))
		return
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("Peak hour %s with %d trips", present.FormatMinute(peak.Hour*60), peak.Total())))

	scale := func(n int) int {
		return n * profileBarWidth / peak.Total()
	}

	t := newTable("Hour", "Departures", "Arrivals", "")
	for _, h := range profile {
		bar := departuresStyle.Render(strings.Repeat("█", scale(h.Departures))) +
			arrivalsStyle.Render(strings.Repeat("█", scale(h.Arrivals)))
		t.Row(
			present.FormatMinute(h.Hour*60),
			strconv.Itoa(h.Departures),
			strconv.Itoa(h.Arrivals),
			bar,
		)
	}
	fmt.Fprintln(w, t.Render())
}
