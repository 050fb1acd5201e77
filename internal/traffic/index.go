package traffic

import (
	"time"

	"github.com/mini-bluebikes/stationflow/internal/models"
)

const (
	// MinutesPerDay is the number of per-minute buckets on each side of the index
	MinutesPerDay = 1440

	// NoFilter is the filter value meaning "use every trip"
	NoFilter = -1
)

// Index partitions a trip set into per-minute buckets, one array for
// departures (keyed by start minute) and one for arrivals (keyed by end
// minute). Buckets hold positions into the trip slice, so every trip is
// referenced exactly twice.
//
// An Index is read-only once built and safe to share between goroutines.
type Index struct {
	trips      []models.Trip
	departures [MinutesPerDay][]int
	arrivals   [MinutesPerDay][]int
}

// Build creates the index in a single pass over trips. Trips keep their
// insertion order inside each bucket. A trip with a zero timestamp
// lands in bucket 0 rather than failing the build.
func Build(trips []models.Trip) *Index {
	idx := &Index{trips: trips}

	for i, trip := range trips {
		startMinute := MinutesSinceMidnight(trip.StartedAt)
		endMinute := MinutesSinceMidnight(trip.EndedAt)

		idx.departures[startMinute] = append(idx.departures[startMinute], i)
		idx.arrivals[endMinute] = append(idx.arrivals[endMinute], i)
	}

	return idx
}

// MinutesSinceMidnight returns the wall-clock minute of day of t in [0, 1439].
// The zero time maps to 0.
func MinutesSinceMidnight(t time.Time) int {
	if t.IsZero() {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

// Trips returns the full trip set the index was built from.
// Callers must not modify the returned slice.
func (idx *Index) Trips() []models.Trip {
	return idx.trips
}

// Len returns the number of indexed trips.
func (idx *Index) Len() int {
	return len(idx.trips)
}

// DeparturesAt returns the trips that started in the given minute of day.
func (idx *Index) DeparturesAt(minute int) []models.Trip {
	if minute < 0 || minute >= MinutesPerDay {
		return nil
	}
	return idx.collect(idx.departures[minute])
}

// ArrivalsAt returns the trips that ended in the given minute of day.
func (idx *Index) ArrivalsAt(minute int) []models.Trip {
	if minute < 0 || minute >= MinutesPerDay {
		return nil
	}
	return idx.collect(idx.arrivals[minute])
}

// BucketSizes returns the number of departures and arrivals in a minute.
func (idx *Index) BucketSizes(minute int) (departures, arrivals int) {
	if minute < 0 || minute >= MinutesPerDay {
		return 0, 0
	}
	return len(idx.departures[minute]), len(idx.arrivals[minute])
}

func (idx *Index) collect(positions []int) []models.Trip {
	out := make([]models.Trip, 0, len(positions))
	for _, p := range positions {
		out = append(out, idx.trips[p])
	}
	return out
}
