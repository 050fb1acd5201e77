package models

import "time"

// Trip is one rental between a start and an end station.
// Trips are immutable once loaded.
type Trip struct {
	StartStationID string    `json:"startStationId"`
	EndStationID   string    `json:"endStationId"`
	StartedAt      time.Time `json:"startedAt"` // zero when the CSV value did not parse
	EndedAt        time.Time `json:"endedAt"`

	// Optional columns, empty when the source does not carry them
	RideID       string `json:"rideId,omitempty"`
	RideableType string `json:"rideableType,omitempty"`
	MemberCasual string `json:"memberCasual,omitempty"`
}
