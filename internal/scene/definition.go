// Package scene models a photograph partitioned into named polygonal
// regions and the session-local editable copy of that partition.
package scene

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/repaint/internal/geometry"
	"gopkg.in/yaml.v3"
)

// Region is a named paintable polygon over the base image.
type Region struct {
	ID          string
	Vertices    []geometry.Point
	LabelAnchor geometry.Point
}

// Clone returns a deep copy of r.
func (r Region) Clone() Region {
	r.Vertices = geometry.Clone(r.Vertices)
	return r
}

// ImageDefinition is the immutable template an editable Model is built from.
type ImageDefinition struct {
	ID         string
	Name       string
	DisplayURL string
	Width      float64
	Height     float64
	Regions    []Region
	// Excluded lists region ids that are never painted or edited. Empty
	// means the default "floor".
	Excluded []string
}

// ViewBox formats the coordinate space as "0 0 width height".
func (d ImageDefinition) ViewBox() string {
	return fmt.Sprintf("0 0 %s %s", strconv.FormatFloat(d.Width, 'f', -1, 64), strconv.FormatFloat(d.Height, 'f', -1, 64))
}

// ParseViewBox reads "minX minY width height" and returns width and height.
func ParseViewBox(s string) (width, height float64, err error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) != 4 {
		return 0, 0, fmt.Errorf("viewBox %q: want 4 numbers", s)
	}
	vals := make([]float64, 4)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("viewBox %q: %w", s, err)
		}
		vals[i] = v
	}
	if vals[2] <= 0 || vals[3] <= 0 {
		return 0, 0, fmt.Errorf("viewBox %q: non-positive size", s)
	}
	return vals[2], vals[3], nil
}

type definitionsFile struct {
	Images []imageYAML `yaml:"images"`
}

type imageYAML struct {
	ID       string     `yaml:"id"`
	Name     string     `yaml:"name"`
	URL      string     `yaml:"url"`
	ViewBox  string     `yaml:"viewBox"`
	Excluded []string   `yaml:"excluded,omitempty"`
	Areas    []areaYAML `yaml:"areas"`
}

type areaYAML struct {
	ID       string          `yaml:"id"`
	Points   string          `yaml:"points"`
	LabelPos *geometry.Point `yaml:"labelPos,omitempty"`
}

// LoadDefinitions reads image definitions from YAML. Areas without a
// labelPos get their centroid.
func LoadDefinitions(r io.Reader) ([]ImageDefinition, error) {
	var f definitionsFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode image definitions: %w", err)
	}
	defs := make([]ImageDefinition, 0, len(f.Images))
	seen := map[string]bool{}
	for _, img := range f.Images {
		if seen[img.ID] {
			return nil, fmt.Errorf("duplicate image id %q", img.ID)
		}
		seen[img.ID] = true
		w, h, err := ParseViewBox(img.ViewBox)
		if err != nil {
			return nil, fmt.Errorf("image %q: %w", img.ID, err)
		}
		def := ImageDefinition{
			ID:         img.ID,
			Name:       img.Name,
			DisplayURL: img.URL,
			Width:      w,
			Height:     h,
			Excluded:   img.Excluded,
		}
		regionSeen := map[string]bool{}
		for _, a := range img.Areas {
			if regionSeen[a.ID] {
				return nil, fmt.Errorf("image %q: duplicate region id %q", img.ID, a.ID)
			}
			regionSeen[a.ID] = true
			verts := geometry.ParseVertices(a.Points)
			if len(verts) < 3 {
				return nil, fmt.Errorf("image %q region %q: need at least 3 vertices, got %d", img.ID, a.ID, len(verts))
			}
			anchor := geometry.Centroid(verts)
			if a.LabelPos != nil {
				anchor = *a.LabelPos
			}
			def.Regions = append(def.Regions, Region{ID: a.ID, Vertices: verts, LabelAnchor: anchor})
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Find returns the definition with id.
func Find(defs []ImageDefinition, id string) (ImageDefinition, bool) {
	for _, d := range defs {
		if d.ID == id {
			return d, true
		}
	}
	return ImageDefinition{}, false
}
