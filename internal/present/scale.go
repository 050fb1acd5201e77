package present

import (
	"fmt"
	"math"

	"github.com/mini-bluebikes/stationflow/internal/models"
)

// Marker radius ranges in pixels. Filtered views start at a non-zero
// minimum so quiet stations stay visible.
var (
	UnfilteredRadiusRange = [2]float64{0, 25}
	FilteredRadiusRange   = [2]float64{3, 50}
)

// Marker colors for the two ends of the flow scale
const (
	DeparturesColor = "#4682B4" // steelblue
	ArrivalsColor   = "#FF8C00" // darkorange
)

// RadiusScale is a square-root scale from [0, maxTotal] onto a pixel range.
type RadiusScale struct {
	maxTotal float64
	lo, hi   float64
}

// NewRadiusScale builds the scale for a snapshot. filtered selects the
// time-window range instead of the all-day one.
func NewRadiusScale(maxTotal int, filtered bool) RadiusScale {
	r := UnfilteredRadiusRange
	if filtered {
		r = FilteredRadiusRange
	}
	return RadiusScale{maxTotal: float64(maxTotal), lo: r[0], hi: r[1]}
}

// Radius maps a station total onto the pixel range. With an empty
// domain (maxTotal == 0) every radius is 0.
func (s RadiusScale) Radius(total int) float64 {
	if s.maxTotal <= 0 {
		return 0
	}
	if total < 0 {
		total = 0
	}
	return s.lo + (s.hi-s.lo)*math.Sqrt(float64(total))/math.Sqrt(s.maxTotal)
}

// DepartureRatio is departures / totalTraffic, 0 for an idle station.
func DepartureRatio(s models.Station) float64 {
	if s.TotalTraffic == 0 {
		return 0
	}
	return float64(s.Departures) / float64(s.TotalTraffic)
}

// FlowBucket quantizes a ratio in [0, 1] into one of 0, 0.5 or 1 using
// three equal-width bins. Values outside the domain are clamped.
func FlowBucket(ratio float64) float64 {
	buckets := [3]float64{0, 0.5, 1}

	i := int(math.Floor(ratio * 3))
	if i < 0 || math.IsNaN(ratio) {
		i = 0
	}
	if i > 2 {
		i = 2
	}
	return buckets[i]
}

// FlowColor mixes the departures and arrivals colors by bucket:
// 1 is all departures, 0 all arrivals.
func FlowColor(bucket float64) string {
	dr, dg, db := hexRGB(DeparturesColor)
	ar, ag, ab := hexRGB(ArrivalsColor)

	mix := func(d, a int) int {
		return int(math.Round(float64(d)*bucket + float64(a)*(1-bucket)))
	}
	return fmt.Sprintf("#%02X%02X%02X", mix(dr, ar), mix(dg, ag), mix(db, ab))
}

func hexRGB(hex string) (r, g, b int) {
	fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	return r, g, b
}

// Marker is everything a renderer needs to draw one station.
type Marker struct {
	Station        models.Station `json:"station"`
	Radius         float64        `json:"radius"`
	DepartureRatio float64        `json:"departureRatio"`
	FlowBucket     float64        `json:"flowBucket"`
	Color          string         `json:"color"`
	X              float64        `json:"x"`
	Y              float64        `json:"y"`
	Projected      bool           `json:"projected"`
}

// Markers builds markers for a set of enriched stations. proj may be
// nil, in which case screen coordinates are left at the sentinel.
func Markers(stations []models.Station, maxTotal int, filtered bool, proj *Projector) []Marker {
	scale := NewRadiusScale(maxTotal, filtered)

	markers := make([]Marker, 0, len(stations))
	for _, s := range stations {
		ratio := DepartureRatio(s)
		bucket := FlowBucket(ratio)

		m := Marker{
			Station:        s,
			Radius:         scale.Radius(s.TotalTraffic),
			DepartureRatio: ratio,
			FlowBucket:     bucket,
			Color:          FlowColor(bucket),
		}
		if proj != nil {
			m.X, m.Y, m.Projected = proj.Project(s)
		}
		markers = append(markers, m)
	}
	return markers
}
