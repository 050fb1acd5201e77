package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/mini-bluebikes/stationflow/internal/traffic"
	"github.com/mini-bluebikes/stationflow/internal/tui"
)

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Pick times of day interactively and watch station traffic change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			summaries, err := a.loadLanes(ctx, true)
			if err != nil {
				log.Printf("Warning: %v", err)
			}

			sess, err := a.loadSession(ctx, true)
			if err != nil {
				// The lane layers are still worth showing without traffic
				tui.RenderLanes(out, summaries)
				return err
			}

			if a.cfg.DefaultMinute != traffic.NoFilter {
				if _, err := sess.SetFilter(a.cfg.DefaultMinute); err != nil {
					return err
				}
			}

			explorer := &tui.Explorer{
				Session:   sess,
				Projector: a.projector(),
				Lanes:     summaries,
				TopN:      a.cfg.TopStations,
				Out:       out,
			}
			return explorer.Run()
		},
	}
}
