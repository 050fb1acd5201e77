package traffic

import (
	"errors"
	"fmt"

	"github.com/mini-bluebikes/stationflow/internal/models"
)

// WindowRadius is the half-width of the time window in minutes.
// The window covers 2*WindowRadius+1 minutes, both ends inclusive.
const WindowRadius = 60

// ErrInvalidFilter is returned for filter values outside [-1, 1439].
var ErrInvalidFilter = errors.New("filter must be -1 or a minute of day in [0, 1439]")

// ValidateFilter reports whether minute is an acceptable filter value.
func ValidateFilter(minute int) error {
	if minute < NoFilter || minute >= MinutesPerDay {
		return fmt.Errorf("%w: got %d", ErrInvalidFilter, minute)
	}
	return nil
}

// WindowMinutes returns the minutes of the circular window centred on
// center. When the window crosses midnight the tail segment (up to 1439)
// comes first, then the head segment from 0.
func WindowMinutes(center int) []int {
	start := (center - WindowRadius + MinutesPerDay) % MinutesPerDay
	end := (center + WindowRadius) % MinutesPerDay

	minutes := make([]int, 0, 2*WindowRadius+1)
	if start > end {
		for m := start; m < MinutesPerDay; m++ {
			minutes = append(minutes, m)
		}
		for m := 0; m <= end; m++ {
			minutes = append(minutes, m)
		}
		return minutes
	}

	for m := start; m <= end; m++ {
		minutes = append(minutes, m)
	}
	return minutes
}

// Select returns the trips counted as departures and as arrivals for the
// given filter. NoFilter returns the full trip set on both sides. Any
// other value applies the ±WindowRadius circular window independently to
// the start-minute and end-minute buckets, so the two results can hold
// different trips.
func Select(idx *Index, center int) (departures, arrivals []models.Trip, err error) {
	if err := ValidateFilter(center); err != nil {
		return nil, nil, err
	}

	if center == NoFilter {
		return idx.Trips(), idx.Trips(), nil
	}

	for _, m := range WindowMinutes(center) {
		departures = append(departures, idx.DeparturesAt(m)...)
		arrivals = append(arrivals, idx.ArrivalsAt(m)...)
	}

	return departures, arrivals, nil
}
