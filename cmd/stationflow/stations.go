package main

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mini-bluebikes/stationflow/internal/metrics"
	"github.com/mini-bluebikes/stationflow/internal/present"
	"github.com/mini-bluebikes/stationflow/internal/session"
	"github.com/mini-bluebikes/stationflow/internal/traffic"
	"github.com/mini-bluebikes/stationflow/internal/tui"
)

// stationsReport is the JSON form of the stations command
type stationsReport struct {
	SnapshotID      uuid.UUID        `json:"snapshotId"`
	ComputedAt      time.Time        `json:"computedAt"`
	Filter          int              `json:"filter"`
	TimeLabel       string           `json:"timeLabel"`
	MaxTotalTraffic int              `json:"maxTotalTraffic"`
	DepartureCount  int              `json:"departureCount"`
	ArrivalCount    int              `json:"arrivalCount"`
	Bounds          *present.Bounds  `json:"bounds,omitempty"`
	Markers         []present.Marker `json:"markers"`
	Summary         metrics.Summary  `json:"summary"`
}

type stationsOptions struct {
	minute int
	clock  string
	format string
	top    int
	bbox   string
	inView bool
}

func newStationsCmd(a *app) *cobra.Command {
	opts := &stationsOptions{}

	cmd := &cobra.Command{
		Use:   "stations",
		Short: "Show per-station departures and arrivals",
		Long: `Counts departures and arrivals for every station, either over the
whole day or within 60 minutes either side of --minute / --time.
Marker radius and flow color are computed the way the map draws them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(opts.format); err != nil {
				return err
			}

			minute := a.cfg.DefaultMinute
			if cmd.Flags().Changed("minute") {
				minute = opts.minute
			}
			if opts.clock != "" {
				m, err := present.ParseClock(opts.clock)
				if err != nil {
					return err
				}
				minute = m
			}

			top := a.cfg.TopStations
			if cmd.Flags().Changed("top") {
				top = opts.top
			}

			var bounds *present.Bounds
			if opts.bbox != "" {
				b, err := present.ParseBounds(opts.bbox)
				if err != nil {
					return err
				}
				bounds = &b
			} else if opts.inView {
				b := a.projector().Bounds()
				bounds = &b
			}

			sess, err := a.loadSession(cmd.Context(), opts.format == formatTable)
			if err != nil {
				return err
			}
			snap, err := sess.SetFilter(minute)
			if err != nil {
				return err
			}

			report := buildStationsReport(snap, a.projector(), bounds, top)
			out := cmd.OutOrStdout()
			if opts.format == formatJSON {
				return writeJSON(out, report)
			}

			tui.RenderStations(out, snap, report.Markers)
			tui.RenderLegend(out)
			tui.RenderSummary(out, report.Summary)
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.minute, "minute", "m", traffic.NoFilter, "minute of day 0-1439 to center the window on, -1 for any time")
	cmd.Flags().StringVarP(&opts.clock, "time", "t", "", "time of day HH:MM to center the window on")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatTable, "output format: table or json")
	cmd.Flags().IntVarP(&opts.top, "top", "n", 0, "show only the N busiest stations, 0 for all")
	cmd.Flags().StringVar(&opts.bbox, "bbox", "", "only stations inside minLon,minLat,maxLon,maxLat")
	cmd.Flags().BoolVar(&opts.inView, "in-view", false, "only stations inside the configured map view")
	cmd.MarkFlagsMutuallyExclusive("minute", "time")
	cmd.MarkFlagsMutuallyExclusive("bbox", "in-view")

	return cmd
}

// buildStationsReport keeps the stations inside bounds (all when nil),
// turns them into markers and ranks them. The radius scale still spans
// every station of the snapshot.
func buildStationsReport(snap *session.Snapshot, proj *present.Projector, bounds *present.Bounds, top int) stationsReport {
	stations := snap.Stations
	if bounds != nil {
		stations = present.NewViewport(snap.Stations).Filter(snap.Stations, *bounds)
	}

	markers := present.Markers(stations, snap.MaxTotalTraffic, snap.Filtered(), proj)

	return stationsReport{
		SnapshotID:      snap.SnapshotID,
		ComputedAt:      snap.ComputedAt,
		Filter:          snap.Filter,
		TimeLabel:       tui.WindowLabel(snap.Filter),
		MaxTotalTraffic: snap.MaxTotalTraffic,
		DepartureCount:  snap.DepartureCount,
		ArrivalCount:    snap.ArrivalCount,
		Bounds:          bounds,
		Markers:         tui.RankMarkers(markers, top),
		Summary:         metrics.Summarize(stations, top),
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
