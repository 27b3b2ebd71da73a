package scene

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/example/repaint/internal/geometry"
)

// GeometryRecord is the portable form of a region used by the copy/paste
// escape hatch.
type GeometryRecord struct {
	ID       string         `json:"id"`
	Points   string         `json:"points"`
	LabelPos geometry.Point `json:"labelPos"`
}

// ExportGeometry serialises regions as an indented JSON array of
// {id, points, labelPos} with two-decimal coordinates.
func ExportGeometry(regions []Region) ([]byte, error) {
	records := make([]GeometryRecord, len(regions))
	for i, r := range regions {
		records[i] = GeometryRecord{
			ID:       r.ID,
			Points:   geometry.SerializeVertices(r.Vertices),
			LabelPos: geometry.Point{X: round2(r.LabelAnchor.X), Y: round2(r.LabelAnchor.Y)},
		}
	}
	return json.MarshalIndent(records, "", "  ")
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// ImportGeometry parses the output of ExportGeometry.
func ImportGeometry(data []byte) ([]Region, error) {
	var records []GeometryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode geometry: %w", err)
	}
	regions := make([]Region, len(records))
	for i, rec := range records {
		regions[i] = Region{ID: rec.ID, Vertices: geometry.ParseVertices(rec.Points), LabelAnchor: rec.LabelPos}
	}
	return regions, nil
}

// Apply copies vertices and anchors from regions into the model. Ids the
// model does not know, or cannot edit, are returned as skipped. Every
// applicable record is checked before any is written, so an error leaves
// the model unchanged.
func (m *Model) Apply(regions []Region) (skipped []string, err error) {
	var accepted []Region
	for _, r := range regions {
		if !m.IsEditable(r.ID) {
			skipped = append(skipped, r.ID)
			continue
		}
		if len(r.Vertices) < 3 {
			return nil, fmt.Errorf("%w: region %q got %d", ErrTooFewVertices, r.ID, len(r.Vertices))
		}
		accepted = append(accepted, r)
	}
	for _, r := range accepted {
		if err := m.SetRegion(r.ID, r.Vertices, r.LabelAnchor); err != nil {
			return skipped, err
		}
	}
	return skipped, nil
}
