package metrics

import (
	"sort"

	"github.com/mini-bluebikes/stationflow/internal/models"
	"github.com/mini-bluebikes/stationflow/internal/traffic"
)

// HotspotZScore is the z-score above which a station counts as a hotspot
const HotspotZScore = 2.0

// Hotspot is a station whose traffic stands well above the network mean
type Hotspot struct {
	Station models.Station `json:"station"`
	ZScore  float64        `json:"zScore"`
}

// Summary describes the distribution of station traffic in one snapshot
type Summary struct {
	Stations     int              `json:"stations"`
	Active       int              `json:"active"`
	TotalTraffic int              `json:"totalTraffic"`
	Mean         float64          `json:"mean"`
	StdDev       float64          `json:"stdDev"`
	Busiest      []models.Station `json:"busiest"`
	Hotspots     []Hotspot        `json:"hotspots"`
}

// Summarize computes traffic statistics over enriched stations and keeps
// the topN busiest (ties broken by station id).
func Summarize(stations []models.Station, topN int) Summary {
	var w Welford
	summary := Summary{Stations: len(stations)}

	for _, s := range stations {
		w.Update(float64(s.TotalTraffic))
		summary.TotalTraffic += s.TotalTraffic
		if s.TotalTraffic > 0 {
			summary.Active++
		}
	}
	summary.Mean = w.Mean()
	summary.StdDev = w.StdDev()

	ranked := make([]models.Station, len(stations))
	copy(ranked, stations)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].TotalTraffic != ranked[j].TotalTraffic {
			return ranked[i].TotalTraffic > ranked[j].TotalTraffic
		}
		return ranked[i].ID < ranked[j].ID
	})

	if topN > len(ranked) {
		topN = len(ranked)
	}
	if topN > 0 {
		summary.Busiest = ranked[:topN]
	}

	for _, s := range ranked {
		z := w.ZScore(float64(s.TotalTraffic))
		if z < HotspotZScore {
			break
		}
		summary.Hotspots = append(summary.Hotspots, Hotspot{Station: s, ZScore: z})
	}

	return summary
}

// HourStat counts trips starting and ending in one hour of the day
type HourStat struct {
	Hour       int `json:"hour"`
	Departures int `json:"departures"`
	Arrivals   int `json:"arrivals"`
}

// Total returns departures + arrivals
func (h HourStat) Total() int {
	return h.Departures + h.Arrivals
}

// HourlyProfile folds the per-minute buckets of idx into 24 hours.
func HourlyProfile(idx *traffic.Index) []HourStat {
	profile := make([]HourStat, 24)
	for h := range profile {
		profile[h].Hour = h
	}

	for m := 0; m < traffic.MinutesPerDay; m++ {
		departures, arrivals := idx.BucketSizes(m)
		profile[m/60].Departures += departures
		profile[m/60].Arrivals += arrivals
	}

	return profile
}

// PeakHour returns the hour with the most traffic; the earliest wins ties.
func PeakHour(profile []HourStat) HourStat {
	var peak HourStat
	for i, h := range profile {
		if i == 0 || h.Total() > peak.Total() {
			peak = h
		}
	}
	return peak
}
