package lanes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
)

// Paint is the line style shared by every bike lane layer
type Paint struct {
	Color   string  `json:"line-color"`
	Width   float64 `json:"line-width"`
	Opacity float64 `json:"line-opacity"`
}

// DefaultPaint is bright green, thick and mostly opaque so lanes stand
// out against the street style
var DefaultPaint = Paint{
	Color:   "#32D400",
	Width:   5,
	Opacity: 0.6,
}

// Layer is one static GeoJSON line layer of the map
type Layer struct {
	ID        string `json:"id"`
	SourceURL string `json:"source"`
	Paint     Paint  `json:"paint"`
}

// DefaultLayers returns the Boston and Cambridge lane layers
func DefaultLayers(bostonURL, cambridgeURL string) []Layer {
	return []Layer{
		{ID: "bike-lanes-boston", SourceURL: bostonURL, Paint: DefaultPaint},
		{ID: "bike-lanes-cambridge", SourceURL: cambridgeURL, Paint: DefaultPaint},
	}
}

// Opener returns a reader for a URL or a local path
type Opener interface {
	Open(ctx context.Context, source string) (io.ReadCloser, error)
}

// Summary describes the line features of one layer
type Summary struct {
	Layer         Layer   `json:"layer"`
	Features      int     `json:"features"`
	LineFeatures  int     `json:"lineFeatures"`
	LengthMeters  float64 `json:"lengthMeters"`
	SkippedShapes int     `json:"skippedShapes"`
}

// LengthKM returns the total lane length in kilometers
func (s Summary) LengthKM() float64 {
	return s.LengthMeters / 1000
}

type featureCollection struct {
	Features []struct {
		Geometry *struct {
			Type        string          `json:"type"`
			Coordinates json.RawMessage `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Summarize parses a GeoJSON FeatureCollection and measures its
// LineString and MultiLineString features. Other geometry types are
// counted as skipped.
func Summarize(layer Layer, r io.Reader) (Summary, error) {
	summary := Summary{Layer: layer}

	var fc featureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return summary, fmt.Errorf("failed to decode GeoJSON: %w", err)
	}

	summary.Features = len(fc.Features)
	for _, f := range fc.Features {
		if f.Geometry == nil {
			summary.SkippedShapes++
			continue
		}

		switch f.Geometry.Type {
		case "LineString":
			var line [][2]float64
			if err := json.Unmarshal(f.Geometry.Coordinates, &line); err != nil {
				summary.SkippedShapes++
				continue
			}
			summary.LineFeatures++
			summary.LengthMeters += LineLength(line)
		case "MultiLineString":
			var lines [][][2]float64
			if err := json.Unmarshal(f.Geometry.Coordinates, &lines); err != nil {
				summary.SkippedShapes++
				continue
			}
			summary.LineFeatures++
			for _, line := range lines {
				summary.LengthMeters += LineLength(line)
			}
		default:
			summary.SkippedShapes++
		}
	}

	return summary, nil
}

// Load fetches and summarizes every layer. A layer that fails to load is
// logged and left out; the error is returned only when all layers fail.
func Load(ctx context.Context, opener Opener, layers []Layer) ([]Summary, error) {
	summaries := make([]Summary, 0, len(layers))
	var lastErr error

	for _, layer := range layers {
		summary, err := loadLayer(ctx, opener, layer)
		if err != nil {
			log.Printf("Lanes: failed to load %s: %v", layer.ID, err)
			lastErr = err
			continue
		}

		log.Printf("Lanes: %s has %d line features (%.1f km)", layer.ID, summary.LineFeatures, summary.LengthKM())
		summaries = append(summaries, summary)
	}

	if len(summaries) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return summaries, nil
}

func loadLayer(ctx context.Context, opener Opener, layer Layer) (Summary, error) {
	rc, err := opener.Open(ctx, layer.SourceURL)
	if err != nil {
		return Summary{Layer: layer}, err
	}
	defer rc.Close()

	return Summarize(layer, rc)
}
