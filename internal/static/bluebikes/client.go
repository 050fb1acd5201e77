package bluebikes

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mini-bluebikes/stationflow/internal/models"
)

// Client loads station and trip data from http(s) URLs or local files
type Client struct {
	client *http.Client
}

// NewClient creates a client. A zero timeout means requests never time
// out on their own; cancel the context instead.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Open returns a reader for source. The caller must close it.
func (c *Client) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	if source == "" {
		return nil, fmt.Errorf("empty source")
	}

	if !isRemote(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", source, err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", source, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%s returned status %d", source, resp.StatusCode)
	}

	return resp.Body, nil
}

// FetchStations loads and normalizes the station list
func (c *Client) FetchStations(ctx context.Context, source string) ([]models.Station, error) {
	rc, err := c.Open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	stations, err := ParseStations(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stations from %s: %w", source, err)
	}

	log.Printf("Stations: loaded %d stations from %s", len(stations), source)
	return stations, nil
}

// FetchTrips loads the trip CSV
func (c *Client) FetchTrips(ctx context.Context, source string) ([]models.Trip, error) {
	rc, err := c.Open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	trips, err := ParseTrips(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse trips from %s: %w", source, err)
	}

	log.Printf("Trips: loaded %d trips from %s", len(trips), source)
	return trips, nil
}
