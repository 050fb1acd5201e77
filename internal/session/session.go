package session

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mini-bluebikes/stationflow/internal/models"
	"github.com/mini-bluebikes/stationflow/internal/traffic"
)

// Snapshot is the result of one aggregation run for one filter value.
type Snapshot struct {
	SnapshotID      uuid.UUID        `json:"snapshotId"`
	ComputedAt      time.Time        `json:"computedAt"`
	Filter          int              `json:"filter"`
	Stations        []models.Station `json:"stations"`
	MaxTotalTraffic int              `json:"maxTotalTraffic"`
	DepartureCount  int              `json:"departureCount"`
	ArrivalCount    int              `json:"arrivalCount"`
}

// Filtered reports whether the snapshot was computed for a time window.
func (s *Snapshot) Filtered() bool {
	return s.Filter != traffic.NoFilter
}

// Session owns the loaded data and the current time filter.
// Stations, trips and the index never change after New; the filter and
// the latest snapshot are replaced together under the write lock.
type Session struct {
	ID uuid.UUID

	stations []models.Station
	index    *traffic.Index

	mu       sync.RWMutex
	filter   int
	snapshot *Snapshot

	// now is overridden in tests
	now func() time.Time
}

// New builds the time index and computes the initial unfiltered snapshot.
func New(stations []models.Station, trips []models.Trip) (*Session, error) {
	s := &Session{
		ID:       uuid.New(),
		stations: stations,
		index:    traffic.Build(trips),
		filter:   traffic.NoFilter,
		now:      time.Now,
	}

	snap, err := s.compute(traffic.NoFilter)
	if err != nil {
		return nil, err
	}
	s.snapshot = snap

	log.Printf("Session %s: %d stations, %d trips indexed", s.ID, len(stations), s.index.Len())
	return s, nil
}

// SetFilter validates minute, recomputes the station traffic from scratch
// and makes the result the current snapshot. On error the previous filter
// and snapshot stay in place.
func (s *Session) SetFilter(minute int) (*Snapshot, error) {
	snap, err := s.compute(minute)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.filter = minute
	s.snapshot = snap
	s.mu.Unlock()

	return snap, nil
}

func (s *Session) compute(minute int) (*Snapshot, error) {
	departures, arrivals, err := traffic.Select(s.index, minute)
	if err != nil {
		return nil, fmt.Errorf("select trips for minute %d: %w", minute, err)
	}

	enriched := traffic.Aggregate(s.stations, departures, arrivals)

	return &Snapshot{
		SnapshotID:      uuid.New(),
		ComputedAt:      s.now(),
		Filter:          minute,
		Stations:        enriched,
		MaxTotalTraffic: traffic.MaxTotalTraffic(enriched),
		DepartureCount:  len(departures),
		ArrivalCount:    len(arrivals),
	}, nil
}

// Filter returns the current filter value.
func (s *Session) Filter() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Snapshot returns the latest snapshot. Callers must treat it as read-only.
func (s *Session) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Index returns the immutable time bucket index.
func (s *Session) Index() *traffic.Index {
	return s.index
}

// Stations returns the stations as loaded, without traffic.
func (s *Session) Stations() []models.Station {
	return s.stations
}
