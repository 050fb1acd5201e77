package models

import (
	"errors"
)

// Station is a Bluebikes docking location in canonical form.
// Field aliases from the upstream JSON are resolved at ingestion, so
// everything past the loader only sees this shape.
type Station struct {
	// Primary identifier (short_name / Number / station_id upstream)
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`

	// Position. HasPosition is false when either coordinate was missing
	// or malformed; Longitude/Latitude are then left at 0,0.
	Longitude   float64 `json:"longitude"`
	Latitude    float64 `json:"latitude"`
	HasPosition bool    `json:"hasPosition"`

	// Derived traffic for the active time window, recomputed on every
	// filter change
	Arrivals     int `json:"arrivals"`
	Departures   int `json:"departures"`
	TotalTraffic int `json:"totalTraffic"`
}

// Validate checks the identity and position fields of a station.
// Traffic fields are not checked; they are owned by the aggregator.
func (s *Station) Validate() error {
	if s.ID == "" {
		return errors.New("station id is required")
	}
	return s.ValidatePosition()
}

// ValidatePosition checks the coordinates of a station that claims a
// position. Stations without one always pass.
func (s *Station) ValidatePosition() error {
	if !s.HasPosition {
		return nil
	}

	// Latitude must be in valid range [-90, 90]
	if s.Latitude < -90 || s.Latitude > 90 {
		return errors.New("latitude out of range: must be between -90 and 90")
	}

	// Longitude must be in valid range [-180, 180]
	if s.Longitude < -180 || s.Longitude > 180 {
		return errors.New("longitude out of range: must be between -180 and 180")
	}

	return nil
}

// ResetTraffic zeroes the derived traffic fields.
func (s *Station) ResetTraffic() {
	s.Arrivals = 0
	s.Departures = 0
	s.TotalTraffic = 0
}
