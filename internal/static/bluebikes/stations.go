package bluebikes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/mini-bluebikes/stationflow/internal/models"
)

// Field aliases observed across versions of the station feed, in
// priority order. The first usable value wins.
var (
	idAliases   = []string{"short_name", "Number", "station_id"}
	nameAliases = []string{"NAME", "name"}
	lonAliases  = []string{"Long", "longitude", "lon"}
	latAliases  = []string{"Lat", "latitude", "lat"}
)

// ErrNoStations is returned when the document has no data.stations array
var ErrNoStations = errors.New("document has no data.stations array")

// stationsDocument is the envelope of the station JSON
type stationsDocument struct {
	Data struct {
		Stations []map[string]interface{} `json:"stations"`
	} `json:"data"`
}

// ParseStations decodes a station document and normalizes every entry
// into the canonical Station shape. Entries with a missing identifier or
// unusable coordinates are kept (they get zero traffic and no position);
// duplicate identifiers keep the first entry.
func ParseStations(r io.Reader) ([]models.Station, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc stationsDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode station JSON: %w", err)
	}
	if doc.Data.Stations == nil {
		return nil, ErrNoStations
	}

	seen := make(map[string]bool, len(doc.Data.Stations))
	stations := make([]models.Station, 0, len(doc.Data.Stations))

	for i, raw := range doc.Data.Stations {
		s := NormalizeStation(raw)

		if s.ID != "" && seen[s.ID] {
			log.Printf("Warning: duplicate station id %q, keeping first entry", s.ID)
			continue
		}

		if s.ID == "" {
			log.Printf("Warning: station #%d has no identifier", i)
		}
		if err := s.ValidatePosition(); err != nil {
			// Out-of-range coordinates are treated like missing ones
			log.Printf("Warning: station #%d %q: %v", i, s.ID, err)
			s.Longitude, s.Latitude, s.HasPosition = 0, 0, false
		} else if !s.HasPosition {
			log.Printf("Warning: invalid coordinates for station %q", s.ID)
		}

		seen[s.ID] = true
		stations = append(stations, s)
	}

	return stations, nil
}

// NormalizeStation resolves field aliases of a single raw entry.
func NormalizeStation(raw map[string]interface{}) models.Station {
	s := models.Station{
		ID:   firstString(raw, idAliases),
		Name: firstString(raw, nameAliases),
	}

	lon, lonOK := firstCoordinate(raw, lonAliases)
	lat, latOK := firstCoordinate(raw, latAliases)
	if lonOK && latOK {
		s.Longitude = lon
		s.Latitude = lat
		s.HasPosition = true
	}

	return s
}

func firstString(raw map[string]interface{}, keys []string) string {
	for _, k := range keys {
		if v := stringValue(raw[k]); v != "" {
			return v
		}
	}
	return ""
}

// firstCoordinate returns the first alias holding a finite, non-zero number.
// Zero is treated as missing: no station of this network sits on the
// equator or the prime meridian.
func firstCoordinate(raw map[string]interface{}, keys []string) (float64, bool) {
	for _, k := range keys {
		f, ok := floatValue(raw[k])
		if ok && f != 0 {
			return f, true
		}
	}
	return 0, false
}

func stringValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func floatValue(v interface{}) (float64, bool) {
	var f float64
	var err error

	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	case float64:
		f = t
	default:
		return 0, false
	}

	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
