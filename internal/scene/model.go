package scene

import (
	"errors"
	"fmt"

	"github.com/example/repaint/internal/geometry"
)

// DefaultExcluded is the region id left untouched by painting and editing
// when a definition does not name its own.
const DefaultExcluded = "floor"

var (
	// ErrUnknownRegion is returned for ids not present in the model.
	ErrUnknownRegion = errors.New("unknown region")
	// ErrNotEditable is returned when editing an excluded region.
	ErrNotEditable = errors.New("region is not editable")
	// ErrTooFewVertices is returned when a polygon would drop below 3 points.
	ErrTooFewVertices = errors.New("polygon needs at least 3 vertices")
)

// Model is the editable, session-local copy of an ImageDefinition.
type Model struct {
	def      ImageDefinition
	regions  []Region
	index    map[string]int
	excluded map[string]bool
}

// Option configures a Model.
type Option func(*Model)

// WithExcluded overrides the excluded region ids.
func WithExcluded(ids ...string) Option {
	return func(m *Model) {
		m.excluded = make(map[string]bool, len(ids))
		for _, id := range ids {
			m.excluded[id] = true
		}
	}
}

// NewModel deep copies def so edits never reach the template.
func NewModel(def ImageDefinition, opts ...Option) *Model {
	m := &Model{
		def:     cloneDefinition(def),
		regions: make([]Region, len(def.Regions)),
		index:   make(map[string]int, len(def.Regions)),
	}
	for i, r := range def.Regions {
		m.regions[i] = r.Clone()
		m.index[r.ID] = i
	}
	excluded := def.Excluded
	if len(excluded) == 0 {
		excluded = []string{DefaultExcluded}
	}
	WithExcluded(excluded...)(m)
	for _, o := range opts {
		o(m)
	}
	return m
}

func cloneDefinition(def ImageDefinition) ImageDefinition {
	out := def
	out.Regions = make([]Region, len(def.Regions))
	for i, r := range def.Regions {
		out.Regions[i] = r.Clone()
	}
	out.Excluded = append([]string(nil), def.Excluded...)
	return out
}

// Definition returns a copy of the template the model was built from.
func (m *Model) Definition() ImageDefinition { return cloneDefinition(m.def) }

// Size returns the image coordinate space.
func (m *Model) Size() (width, height float64) { return m.def.Width, m.def.Height }

// Regions returns a deep copy of every region in definition order.
func (m *Model) Regions() []Region {
	out := make([]Region, len(m.regions))
	for i, r := range m.regions {
		out[i] = r.Clone()
	}
	return out
}

// Paintable returns copies of the non-excluded regions in definition order.
func (m *Model) Paintable() []Region {
	out := make([]Region, 0, len(m.regions))
	for _, r := range m.regions {
		if !m.excluded[r.ID] {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Region returns a copy of the region with id.
func (m *Model) Region(id string) (Region, bool) {
	i, ok := m.index[id]
	if !ok {
		return Region{}, false
	}
	return m.regions[i].Clone(), true
}

// IsExcluded reports whether id is a designated non-paintable region.
func (m *Model) IsExcluded(id string) bool { return m.excluded[id] }

// IsPaintable reports whether id exists and may receive a colour.
func (m *Model) IsPaintable(id string) bool {
	_, ok := m.index[id]
	return ok && !m.excluded[id]
}

// IsEditable reports whether id exists and its vertices may be moved.
func (m *Model) IsEditable(id string) bool { return m.IsPaintable(id) }

// VertexCount returns the number of vertices of region id, or -1.
func (m *Model) VertexCount(id string) int {
	i, ok := m.index[id]
	if !ok {
		return -1
	}
	return len(m.regions[i].Vertices)
}

// SetVertices replaces the vertices of an editable region. When
// recomputeAnchor is set the label anchor becomes the new centroid.
func (m *Model) SetVertices(id string, vertices []geometry.Point, recomputeAnchor bool) error {
	i, ok := m.index[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRegion, id)
	}
	if m.excluded[id] {
		return fmt.Errorf("%w: %q", ErrNotEditable, id)
	}
	if len(vertices) < 3 {
		return fmt.Errorf("%w: region %q got %d", ErrTooFewVertices, id, len(vertices))
	}
	m.regions[i].Vertices = geometry.Clone(vertices)
	if recomputeAnchor {
		m.regions[i].LabelAnchor = geometry.Centroid(vertices)
	}
	return nil
}

// SetRegion replaces both vertices and label anchor of an editable region.
func (m *Model) SetRegion(id string, vertices []geometry.Point, anchor geometry.Point) error {
	if err := m.SetVertices(id, vertices, false); err != nil {
		return err
	}
	m.regions[m.index[id]].LabelAnchor = anchor
	return nil
}

// RecomputeAnchors sets every label anchor to its region centroid.
func (m *Model) RecomputeAnchors() {
	for i := range m.regions {
		m.regions[i].LabelAnchor = geometry.Centroid(m.regions[i].Vertices)
	}
}

// RegionAt returns the topmost paintable region containing p (image space).
// Later regions are drawn above earlier ones.
func (m *Model) RegionAt(p geometry.Point) (string, bool) {
	for i := len(m.regions) - 1; i >= 0; i-- {
		r := m.regions[i]
		if m.excluded[r.ID] {
			continue
		}
		if geometry.Contains(r.Vertices, p) {
			return r.ID, true
		}
	}
	return "", false
}

// VertexAt returns the nearest editable vertex within radius of p, searching
// the topmost regions first.
func (m *Model) VertexAt(p geometry.Point, radius float64) (string, int, bool) {
	for i := len(m.regions) - 1; i >= 0; i-- {
		r := m.regions[i]
		if m.excluded[r.ID] {
			continue
		}
		best, bestDist := -1, radius
		for vi, v := range r.Vertices {
			if d := geometry.Distance(v, p); d <= bestDist {
				best, bestDist = vi, d
			}
		}
		if best >= 0 {
			return r.ID, best, true
		}
	}
	return "", 0, false
}
