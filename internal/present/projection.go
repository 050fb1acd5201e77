package present

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/mini-bluebikes/stationflow/internal/models"
)

// tileSize is the pixel size of a zoom-0 world, matching the map library.
const tileSize = 512

// maxMercatorLat is the latitude where a square Web Mercator world ends.
const maxMercatorLat = 85.051129

// Projector turns station coordinates into screen pixels for a map view
// using spherical Web Mercator.
type Projector struct {
	CenterLon float64
	CenterLat float64
	Zoom      float64
	Width     float64
	Height    float64
}

func worldSize(zoom float64) float64 {
	return tileSize * math.Pow(2, zoom)
}

func mercatorX(lon, ws float64) float64 {
	return (lon + 180) / 360 * ws
}

func mercatorY(lat, ws float64) float64 {
	lat = math.Max(-maxMercatorLat, math.Min(maxMercatorLat, lat))
	phi := lat * math.Pi / 180
	return (1 - math.Log(math.Tan(math.Pi/4+phi/2))/math.Pi) / 2 * ws
}

// Project returns the pixel position of s relative to the top-left of the
// view. Stations without a usable position get the sentinel (0, 0) and
// ok == false instead of NaN.
func (p *Projector) Project(s models.Station) (x, y float64, ok bool) {
	if !s.HasPosition || math.IsNaN(s.Longitude) || math.IsNaN(s.Latitude) {
		log.Printf("Warning: invalid coordinates for station %q", s.ID)
		return 0, 0, false
	}

	ws := worldSize(p.Zoom)
	x = mercatorX(s.Longitude, ws) - mercatorX(p.CenterLon, ws) + p.Width/2
	y = mercatorY(s.Latitude, ws) - mercatorY(p.CenterLat, ws) + p.Height/2
	if !finite(x) || !finite(y) {
		log.Printf("Warning: station %q does not project onto the map", s.ID)
		return 0, 0, false
	}
	return x, y, true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Bounds is a lon/lat rectangle.
type Bounds struct {
	MinLon float64 `json:"minLon"`
	MinLat float64 `json:"minLat"`
	MaxLon float64 `json:"maxLon"`
	MaxLat float64 `json:"maxLat"`
}

// Contains reports whether the point lies inside b, edges included.
func (b Bounds) Contains(lon, lat float64) bool {
	return lon >= b.MinLon && lon <= b.MaxLon && lat >= b.MinLat && lat <= b.MaxLat
}

// Bounds returns the lon/lat rectangle currently visible in the view.
func (p *Projector) Bounds() Bounds {
	ws := worldSize(p.Zoom)
	cx := mercatorX(p.CenterLon, ws)
	cy := mercatorY(p.CenterLat, ws)

	unprojectLon := func(x float64) float64 {
		return x/ws*360 - 180
	}
	unprojectLat := func(y float64) float64 {
		n := math.Pi * (1 - 2*y/ws)
		return math.Atan(math.Sinh(n)) * 180 / math.Pi
	}

	return Bounds{
		MinLon: unprojectLon(cx - p.Width/2),
		MaxLon: unprojectLon(cx + p.Width/2),
		MinLat: unprojectLat(cy + p.Height/2),
		MaxLat: unprojectLat(cy - p.Height/2),
	}
}

// ParseBounds reads "minLon,minLat,maxLon,maxLat".
func ParseBounds(s string) (Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Bounds{}, fmt.Errorf("invalid bounds %q: expected minLon,minLat,maxLon,maxLat", s)
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Bounds{}, fmt.Errorf("invalid bounds %q: %w", s, err)
		}
		v[i] = f
	}

	return Bounds{
		MinLon: min(v[0], v[2]),
		MinLat: min(v[1], v[3]),
		MaxLon: max(v[0], v[2]),
		MaxLat: max(v[1], v[3]),
	}, nil
}
