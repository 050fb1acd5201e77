package main

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/spf13/cobra"

	"github.com/mini-bluebikes/stationflow/internal/config"
	"github.com/mini-bluebikes/stationflow/internal/models"
	"github.com/mini-bluebikes/stationflow/internal/present"
	"github.com/mini-bluebikes/stationflow/internal/session"
	"github.com/mini-bluebikes/stationflow/internal/static/bluebikes"
	"github.com/mini-bluebikes/stationflow/internal/static/lanes"
	"github.com/mini-bluebikes/stationflow/internal/tui"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// app carries state shared by every subcommand
type app struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "stationflow",
		Short: "Bluebikes station traffic by time of day",
		Long: `stationflow loads the Bluebikes station list and a month of trips,
counts departures and arrivals per station, and filters them to a
two-hour window around any minute of the day.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (overrides environment)")

	root.AddCommand(
		newStationsCmd(a),
		newLanesCmd(a),
		newProfileCmd(a),
		newInteractiveCmd(a),
	)

	return root
}

func checkFormat(format string) error {
	if format != formatTable && format != formatJSON {
		return fmt.Errorf("unknown format %q: use %s or %s", format, formatTable, formatJSON)
	}
	return nil
}

func (a *app) client() *bluebikes.Client {
	return bluebikes.NewClient(a.cfg.HTTPTimeout())
}

func (a *app) projector() *present.Projector {
	return &present.Projector{
		CenterLon: a.cfg.Map.CenterLon,
		CenterLat: a.cfg.Map.CenterLat,
		Zoom:      a.cfg.Map.Zoom,
		Width:     float64(a.cfg.Map.Width),
		Height:    float64(a.cfg.Map.Height),
	}
}

// loadSession fetches stations and trips concurrently and builds a
// session. Either fetch failing fails the whole load.
func (a *app) loadSession(ctx context.Context, spin bool) (*session.Session, error) {
	client := a.client()

	var (
		wg          sync.WaitGroup
		stations    []models.Station
		trips       []models.Trip
		stationsErr error
		tripsErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		stations, stationsErr = client.FetchStations(ctx, a.cfg.StationsURL)
	}()
	go func() {
		defer wg.Done()
		trips, tripsErr = client.FetchTrips(ctx, a.cfg.TripsURL)
	}()

	if err := tui.Spin(spin, "Loading Bluebikes stations and trips...", wg.Wait); err != nil {
		log.Printf("Warning: spinner stopped: %v", err)
	}
	// The spinner may stop early; the results are only safe once both fetches return
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if stationsErr != nil {
		return nil, fmt.Errorf("load stations: %w", stationsErr)
	}
	if tripsErr != nil {
		return nil, fmt.Errorf("load trips: %w", tripsErr)
	}

	return session.New(stations, trips)
}

func (a *app) loadLanes(ctx context.Context, spin bool) ([]lanes.Summary, error) {
	layers := lanes.DefaultLayers(a.cfg.BostonLanesURL, a.cfg.CambridgeLanesURL)

	var summaries []lanes.Summary
	var err error
	done := make(chan struct{})
	go func() {
		defer close(done)
		summaries, err = lanes.Load(ctx, a.client(), layers)
	}()

	if spinErr := tui.Spin(spin, "Loading bike lane layers...", func() { <-done }); spinErr != nil {
		log.Printf("Warning: spinner stopped: %v", spinErr)
	}
	<-done

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return summaries, err
}
