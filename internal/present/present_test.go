package present

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mini-bluebikes/stationflow/internal/models"
)

func TestRadiusScaleEmptyDomain(t *testing.T) {
	for _, filtered := range []bool{false, true} {
		scale := NewRadiusScale(0, filtered)
		for _, total := range []int{0, 1, 10} {
			r := scale.Radius(total)
			assert.False(t, math.IsNaN(r))
			assert.Zero(t, r, "filtered=%v total=%d", filtered, total)
		}
	}
}

func TestRadiusScale(t *testing.T) {
	tests := []struct {
		name     string
		filtered bool
		total    int
		expected float64
	}{
		{"unfiltered zero", false, 0, 0},
		{"unfiltered quarter", false, 25, 12.5},
		{"unfiltered max", false, 100, 25},
		{"filtered zero keeps minimum", true, 0, 3},
		{"filtered quarter", true, 25, 26.5},
		{"filtered max", true, 100, 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			scale := NewRadiusScale(100, tc.filtered)
			assert.InDelta(t, tc.expected, scale.Radius(tc.total), 1e-9)
		})
	}
}

func TestDepartureRatio(t *testing.T) {
	assert.Zero(t, DepartureRatio(models.Station{}))
	assert.Equal(t, 0.25, DepartureRatio(models.Station{Departures: 1, Arrivals: 3, TotalTraffic: 4}))
	assert.Equal(t, 1.0, DepartureRatio(models.Station{Departures: 2, TotalTraffic: 2}))
}

func TestFlowBucket(t *testing.T) {
	tests := []struct {
		ratio    float64
		expected float64
	}{
		{-0.1, 0},
		{0, 0},
		{0.2, 0},
		{0.34, 0.5},
		{0.5, 0.5},
		{0.66, 0.5},
		{0.67, 1},
		{1, 1},
		{1.2, 1},
		{math.NaN(), 0},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, FlowBucket(tc.ratio), "ratio %v", tc.ratio)
	}
}

func TestFlowColor(t *testing.T) {
	assert.Equal(t, DeparturesColor, FlowColor(1))
	assert.Equal(t, ArrivalsColor, FlowColor(0))
	assert.Equal(t, "#A3875A", FlowColor(0.5))
}

func TestMarkers(t *testing.T) {
	stations := []models.Station{
		{ID: "busy", Departures: 90, Arrivals: 10, TotalTraffic: 100, Longitude: -71.09415, Latitude: 42.36027, HasPosition: true},
		{ID: "idle", HasPosition: false},
	}
	proj := &Projector{CenterLon: -71.09415, CenterLat: 42.36027, Zoom: 12, Width: 800, Height: 600}

	markers := Markers(stations, 100, false, proj)
	require.Len(t, markers, 2)

	assert.Equal(t, 25.0, markers[0].Radius)
	assert.Equal(t, 1.0, markers[0].FlowBucket)
	assert.Equal(t, DeparturesColor, markers[0].Color)
	assert.True(t, markers[0].Projected)
	assert.InDelta(t, 400, markers[0].X, 1e-6)
	assert.InDelta(t, 300, markers[0].Y, 1e-6)

	assert.Zero(t, markers[1].Radius)
	assert.False(t, markers[1].Projected)
	assert.Zero(t, markers[1].X)
	assert.Zero(t, markers[1].Y)

	// No projector leaves coordinates at the sentinel
	for _, m := range Markers(stations, 100, true, nil) {
		assert.False(t, m.Projected)
	}
}

func TestProjectorDirections(t *testing.T) {
	proj := &Projector{CenterLon: -71.09, CenterLat: 42.36, Zoom: 12, Width: 800, Height: 600}

	x, y, ok := proj.Project(models.Station{ID: "ne", Longitude: -71.05, Latitude: 42.40, HasPosition: true})
	require.True(t, ok)
	assert.Greater(t, x, 400.0, "east is right of centre")
	assert.Less(t, y, 300.0, "north is above centre")

	x, y, ok = proj.Project(models.Station{ID: "nan", Longitude: math.NaN(), Latitude: 42, HasPosition: true})
	assert.False(t, ok)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestProjectorPolesStayFinite(t *testing.T) {
	proj := &Projector{CenterLon: -71.09, CenterLat: 42.36, Zoom: 12, Width: 800, Height: 600}

	for _, lat := range []float64{-90, 90, -95, 95} {
		x, y, ok := proj.Project(models.Station{ID: "pole", Longitude: -71.0, Latitude: lat, HasPosition: true})
		require.True(t, ok, "lat %v", lat)
		assert.False(t, math.IsInf(y, 0) || math.IsNaN(y), "lat %v gave y=%v", lat, y)
		assert.False(t, math.IsInf(x, 0) || math.IsNaN(x), "lat %v gave x=%v", lat, x)
	}

	_, southPole, _ := proj.Project(models.Station{Longitude: -71.0, Latitude: -90, HasPosition: true})
	_, edge, _ := proj.Project(models.Station{Longitude: -71.0, Latitude: -maxMercatorLat, HasPosition: true})
	assert.Equal(t, edge, southPole, "latitudes past the Mercator limit are clamped")

	x, y, ok := proj.Project(models.Station{ID: "inf", Longitude: math.Inf(1), Latitude: 42, HasPosition: true})
	assert.False(t, ok)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestProjectorBounds(t *testing.T) {
	proj := &Projector{CenterLon: -71.09415, CenterLat: 42.36027, Zoom: 12, Width: 800, Height: 600}
	b := proj.Bounds()

	assert.True(t, b.Contains(-71.09415, 42.36027))
	assert.Less(t, b.MinLon, b.MaxLon)
	assert.Less(t, b.MinLat, b.MaxLat)

	// Corners of the bounds project back onto the view edges
	x, y, ok := proj.Project(models.Station{Longitude: b.MinLon, Latitude: b.MaxLat, HasPosition: true})
	require.True(t, ok)
	assert.InDelta(t, 0, x, 1e-6)
	assert.InDelta(t, 0, y, 1e-6)
}

func TestViewport(t *testing.T) {
	stations := []models.Station{
		{ID: "kendall", Longitude: -71.0865, Latitude: 42.3625, HasPosition: true},
		{ID: "no-position"},
		{ID: "harvard", Longitude: -71.1189, Latitude: 42.3736, HasPosition: true},
		{ID: "airport", Longitude: -71.0096, Latitude: 42.3656, HasPosition: true},
	}

	vp := NewViewport(stations)
	assert.Equal(t, 3, vp.Len())

	cambridge := Bounds{MinLon: -71.13, MinLat: 42.35, MaxLon: -71.08, MaxLat: 42.38}
	assert.Equal(t, []int{0, 2}, vp.Within(cambridge))

	// Swapped corners are normalised
	swapped := Bounds{MinLon: -71.08, MinLat: 42.38, MaxLon: -71.13, MaxLat: 42.35}
	assert.Equal(t, []int{0, 2}, vp.Within(swapped))

	enriched := make([]models.Station, len(stations))
	copy(enriched, stations)
	enriched[2].TotalTraffic = 9

	inView := vp.Filter(enriched, cambridge)
	require.Len(t, inView, 2)
	assert.Equal(t, "harvard", inView[1].ID)
	assert.Equal(t, 9, inView[1].TotalTraffic)

	assert.Nil(t, vp.Filter(enriched[:1], cambridge), "mismatched slice is rejected")
}

func TestFormatMinute(t *testing.T) {
	tests := []struct {
		minute   int
		expected string
	}{
		{-1, AnyTimeLabel},
		{0, "12:00 AM"},
		{5, "12:05 AM"},
		{719, "11:59 AM"},
		{720, "12:00 PM"},
		{905, "3:05 PM"},
		{1439, "11:59 PM"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, FormatMinute(tc.minute), "minute %d", tc.minute)
	}
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("08:30")
	require.NoError(t, err)
	assert.Equal(t, 510, m)

	m, err = ParseClock(" 23:59 ")
	require.NoError(t, err)
	assert.Equal(t, 1439, m)

	for _, bad := range []string{"", "8", "24:00", "12:60", "ab:cd", "1:2:3"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseBounds(t *testing.T) {
	b, err := ParseBounds("-71.12, 42.37,-71.08,42.35")
	require.NoError(t, err)
	assert.Equal(t, Bounds{MinLon: -71.12, MinLat: 42.35, MaxLon: -71.08, MaxLat: 42.37}, b)
	assert.True(t, b.Contains(-71.1, 42.36))

	for _, bad := range []string{"", "1,2,3", "a,b,c,d", "1,2,3,4,5"} {
		_, err := ParseBounds(bad)
		assert.Error(t, err, bad)
	}
}
