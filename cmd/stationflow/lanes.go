package main

import (
	"github.com/spf13/cobra"

	"github.com/mini-bluebikes/stationflow/internal/tui"
)

func newLanesCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "lanes",
		Short: "Summarize the Boston and Cambridge bike lane layers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			summaries, err := a.loadLanes(cmd.Context(), format == formatTable)
			if err != nil {
				return err
			}

			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), summaries)
			}
			tui.RenderLanes(cmd.OutOrStdout(), summaries)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table or json")
	return cmd
}
