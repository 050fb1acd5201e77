package bluebikes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stationsJSON = `{
  "data": {
    "stations": [
      {"Number": "A32000", "NAME": "Fan Pier", "Lat": 42.353391, "Long": -71.044571},
      {"short_name": "M32006", "name": "MIT at Mass Ave", "latitude": "42.3581", "longitude": "-71.093198"},
      {"station_id": "f8349b11", "lat": 42.3625, "lon": -71.0865},
      {"short_name": "B1", "lat": "not-a-number", "lon": -71.1},
      {"NAME": "Nameless"},
      {"Number": "A32000", "Lat": 1, "Long": 1}
    ]
  }
}`

const tripsCSV = `ride_id,rideable_type,started_at,ended_at,start_station_name,start_station_id,end_station_name,end_station_id,member_casual
r1,classic_bike,2024-03-01 00:05:10.123,2024-03-01 00:10:02,Fan Pier,A32000,MIT at Mass Ave,M32006,member
r2,electric_bike,2024-03-01T23:50:00Z,2024-03-02T00:20:00Z,MIT at Mass Ave,M32006,Fan Pier,A32000,casual
r3,classic_bike,garbage,,Fan Pier,A32000,Fan Pier,A32000,member
`

func TestParseStationsAliases(t *testing.T) {
	stations, err := ParseStations(strings.NewReader(stationsJSON))
	require.NoError(t, err)
	require.Len(t, stations, 5, "duplicate A32000 is dropped")

	assert.Equal(t, "A32000", stations[0].ID)
	assert.Equal(t, "Fan Pier", stations[0].Name)
	assert.InDelta(t, -71.044571, stations[0].Longitude, 1e-9)
	assert.InDelta(t, 42.353391, stations[0].Latitude, 1e-9)
	assert.True(t, stations[0].HasPosition)

	assert.Equal(t, "M32006", stations[1].ID)
	assert.Equal(t, "MIT at Mass Ave", stations[1].Name)
	assert.InDelta(t, -71.093198, stations[1].Longitude, 1e-9, "numeric strings are accepted")
	assert.True(t, stations[1].HasPosition)

	assert.Equal(t, "f8349b11", stations[2].ID)
	assert.True(t, stations[2].HasPosition)

	// Malformed coordinate: kept, no position, no NaN
	assert.Equal(t, "B1", stations[3].ID)
	assert.False(t, stations[3].HasPosition)
	assert.Zero(t, stations[3].Longitude)
	assert.Zero(t, stations[3].Latitude)

	// Missing identifier: kept with an empty id
	assert.Equal(t, "", stations[4].ID)
	assert.Equal(t, "Nameless", stations[4].Name)
	assert.False(t, stations[4].HasPosition)
}

func TestNormalizeStationPriority(t *testing.T) {
	s := NormalizeStation(map[string]interface{}{
		"short_name": "S1",
		"Number":     "N1",
		"station_id": "uuid",
		"Long":       "0",
		"longitude":  -71.2,
		"Lat":        42.1,
	})

	assert.Equal(t, "S1", s.ID)
	assert.Equal(t, -71.2, s.Longitude, "zero falls through to the next alias")
	assert.Equal(t, 42.1, s.Latitude)
	assert.True(t, s.HasPosition)
}

func TestParseStationsErrors(t *testing.T) {
	_, err := ParseStations(strings.NewReader(`{"data": {}}`))
	assert.True(t, errors.Is(err, ErrNoStations))

	_, err = ParseStations(strings.NewReader(`{not json`))
	assert.Error(t, err)

	stations, err := ParseStations(strings.NewReader(`{"data": {"stations": []}}`))
	require.NoError(t, err)
	assert.Empty(t, stations)
}

func TestParseTrips(t *testing.T) {
	trips, err := ParseTrips(strings.NewReader(tripsCSV))
	require.NoError(t, err)
	require.Len(t, trips, 3)

	assert.Equal(t, "A32000", trips[0].StartStationID)
	assert.Equal(t, "M32006", trips[0].EndStationID)
	assert.Equal(t, 0, trips[0].StartedAt.Hour())
	assert.Equal(t, 5, trips[0].StartedAt.Minute())
	assert.Equal(t, 10, trips[0].EndedAt.Minute())
	assert.Equal(t, "r1", trips[0].RideID)
	assert.Equal(t, "classic_bike", trips[0].RideableType)
	assert.Equal(t, "member", trips[0].MemberCasual)

	assert.Equal(t, 23, trips[1].StartedAt.Hour())
	assert.Equal(t, 50, trips[1].StartedAt.Minute())

	assert.True(t, trips[2].StartedAt.IsZero())
	assert.True(t, trips[2].EndedAt.IsZero())
}

func TestParseTripsMinimalColumnsAndBOM(t *testing.T) {
	csv := "\ufeffstart_station_id,end_station_id,started_at,ended_at\nA,B,2024-03-01 12:00:00,2024-03-01 12:30:00\n"

	trips, err := ParseTrips(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "A", trips[0].StartStationID)
	assert.Equal(t, "", trips[0].RideID)
}

func TestParseTripsMissingColumn(t *testing.T) {
	_, err := ParseTrips(strings.NewReader("start_station_id,started_at,ended_at\nA,x,y\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "end_station_id")
}

func TestParseTripsEmpty(t *testing.T) {
	trips, err := ParseTrips(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestClientFetchHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stations.json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(stationsJSON))
		case "/trips.csv":
			w.Header().Set("Content-Type", "text/csv")
			w.Write([]byte(tripsCSV))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	ctx := context.Background()

	stations, err := client.FetchStations(ctx, srv.URL+"/stations.json")
	require.NoError(t, err)
	assert.Len(t, stations, 5)

	trips, err := client.FetchTrips(ctx, srv.URL+"/trips.csv")
	require.NoError(t, err)
	assert.Len(t, trips, 3)

	_, err = client.FetchStations(ctx, srv.URL+"/missing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestClientFetchLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trips.csv")
	require.NoError(t, os.WriteFile(path, []byte(tripsCSV), 0644))

	client := NewClient(0)
	trips, err := client.FetchTrips(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, trips, 3)

	_, err = client.FetchTrips(context.Background(), filepath.Join(dir, "nope.csv"))
	assert.Error(t, err)

	_, err = client.Open(context.Background(), "")
	assert.Error(t, err)
}

func TestClientCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(stationsJSON))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(0).FetchStations(ctx, srv.URL)
	assert.Error(t, err)
}

func TestParseStationsOutOfRange(t *testing.T) {
	doc := `{"data": {"stations": [{"short_name": "X", "Lat": 142.3, "Long": -71.1}]}}`

	stations, err := ParseStations(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, stations, 1)

	assert.False(t, stations[0].HasPosition)
	assert.Zero(t, stations[0].Latitude)
	assert.NoError(t, stations[0].Validate())
}

func TestParseStationsOutOfRangeWithoutID(t *testing.T) {
	doc := `{"data": {"stations": [{"Lat": 95, "Long": -71.0}, {"NAME": "South", "lat": -91, "lon": -71.1}]}}`

	stations, err := ParseStations(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, stations, 2)

	for _, s := range stations {
		assert.Empty(t, s.ID)
		assert.False(t, s.HasPosition)
		assert.Zero(t, s.Latitude)
		assert.Zero(t, s.Longitude)
		assert.NoError(t, s.ValidatePosition())
	}
}
