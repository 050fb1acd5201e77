package traffic

import (
	"github.com/mini-bluebikes/stationflow/internal/models"
)

// Aggregate counts departures (by start station) and arrivals (by end
// station) and returns a copy of stations with the traffic fields set.
// Every input station appears in the output, in the same order, with
// zero counts when no trip touches it. The inputs are not modified, so
// repeated calls with the same inputs give the same result.
func Aggregate(stations []models.Station, departureTrips, arrivalTrips []models.Trip) []models.Station {
	departures := make(map[string]int)
	for _, trip := range departureTrips {
		departures[trip.StartStationID]++
	}

	arrivals := make(map[string]int)
	for _, trip := range arrivalTrips {
		arrivals[trip.EndStationID]++
	}

	enriched := make([]models.Station, len(stations))
	for i, station := range stations {
		station.ResetTraffic()

		// An unidentified station never matches trips with blank ids
		if station.ID != "" {
			station.Departures = departures[station.ID]
			station.Arrivals = arrivals[station.ID]
		}
		station.TotalTraffic = station.Arrivals + station.Departures

		enriched[i] = station
	}

	return enriched
}

// MaxTotalTraffic returns the largest TotalTraffic across stations, or 0.
func MaxTotalTraffic(stations []models.Station) int {
	maxTotal := 0
	for _, s := range stations {
		if s.TotalTraffic > maxTotal {
			maxTotal = s.TotalTraffic
		}
	}
	return maxTotal
}
