package present

import (
	"sort"

	"github.com/tidwall/rtree"

	"github.com/mini-bluebikes/stationflow/internal/models"
)

// Viewport is an R-tree over station positions. It stores positions in
// the station slice it was built from; since aggregation keeps station
// order, the same Viewport serves every snapshot of a session.
type Viewport struct {
	tree  rtree.RTree
	count int
}

// NewViewport indexes every station that has a valid position.
func NewViewport(stations []models.Station) *Viewport {
	v := &Viewport{count: len(stations)}

	// Points: min and max are the same [lon, lat]
	for i, s := range stations {
		if !s.HasPosition {
			continue
		}
		pt := [2]float64{s.Longitude, s.Latitude}
		v.tree.Insert(pt, pt, i)
	}

	return v
}

// Len returns the number of indexed stations.
func (v *Viewport) Len() int {
	return v.tree.Len()
}

// Within returns the slice positions of stations inside b, ascending.
func (v *Viewport) Within(b Bounds) []int {
	var positions []int
	v.tree.Search(
		[2]float64{min(b.MinLon, b.MaxLon), min(b.MinLat, b.MaxLat)},
		[2]float64{max(b.MinLon, b.MaxLon), max(b.MinLat, b.MaxLat)},
		func(_, _ [2]float64, data interface{}) bool {
			if i, ok := data.(int); ok {
				positions = append(positions, i)
			}
			return true
		},
	)

	sort.Ints(positions)
	return positions
}

// Filter returns the stations inside b. stations must be the slice the
// viewport was built from, or an aggregation of it.
func (v *Viewport) Filter(stations []models.Station, b Bounds) []models.Station {
	if len(stations) != v.count {
		return nil
	}

	positions := v.Within(b)
	out := make([]models.Station, 0, len(positions))
	for _, i := range positions {
		out = append(out, stations[i])
	}
	return out
}
