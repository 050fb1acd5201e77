package bluebikes

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/mini-bluebikes/stationflow/internal/models"
)

// ErrMissingColumn is returned when the trip CSV lacks a required column
var ErrMissingColumn = errors.New("trip CSV is missing a required column")

var requiredTripColumns = []string{"start_station_id", "end_station_id", "started_at", "ended_at"}

// timestampLayouts are tried in order when parsing started_at / ended_at
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
}

// ParseTrips reads a trip CSV with a header row. Rows that cannot be read
// are skipped; timestamps that cannot be parsed are left zero.
func ParseTrips(r io.Reader) ([]models.Trip, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []models.Trip{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idx := makeIndex(header)
	for _, col := range requiredTripColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	trips := []models.Trip{}
	skipped := 0
	badTimes := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		startedAt, okStart := parseTimestamp(getField(record, idx, "started_at"))
		endedAt, okEnd := parseTimestamp(getField(record, idx, "ended_at"))
		if !okStart || !okEnd {
			badTimes++
		}

		trips = append(trips, models.Trip{
			StartStationID: getField(record, idx, "start_station_id"),
			EndStationID:   getField(record, idx, "end_station_id"),
			StartedAt:      startedAt,
			EndedAt:        endedAt,
			RideID:         getField(record, idx, "ride_id"),
			RideableType:   getField(record, idx, "rideable_type"),
			MemberCasual:   getField(record, idx, "member_casual"),
		})
	}

	if skipped > 0 {
		log.Printf("Warning: skipped %d unreadable trip rows", skipped)
	}
	if badTimes > 0 {
		log.Printf("Warning: %d trips have unparseable timestamps (counted at minute 0)", badTimes)
	}

	return trips, nil
}

// parseTimestamp returns the zero time and false when no layout matches
func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func makeIndex(header []string) map[string]int {
	idx := make(map[string]int)
	for i, h := range header {
		// Strip a UTF-8 BOM on the first column
		idx[strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")] = i
	}
	return idx
}

func getField(record []string, idx map[string]int, field string) string {
	if i, ok := idx[field]; ok && i < len(record) {
		return strings.TrimSpace(record[i])
	}
	return ""
}
