package main

import (
	"github.com/spf13/cobra"

	"github.com/mini-bluebikes/stationflow/internal/metrics"
	"github.com/mini-bluebikes/stationflow/internal/tui"
)

type profileReport struct {
	Hours []metrics.HourStat `json:"hours"`
	Peak  metrics.HourStat   `json:"peak"`
}

func newProfileCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show trips per hour of day across all stations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			sess, err := a.loadSession(cmd.Context(), format == formatTable)
			if err != nil {
				return err
			}

			hours := metrics.HourlyProfile(sess.Index())
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), profileReport{Hours: hours, Peak: metrics.PeakHour(hours)})
			}
			tui.RenderProfile(cmd.OutOrStdout(), hours)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table or json")
	return cmd
}
