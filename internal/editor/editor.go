// Package editor is the pointer-driven state machine that reshapes regions
// (vertex and whole-region drags) and assigns colours by click or by
// dropping a palette entry.
package editor

import (
	"log/slog"

	"github.com/example/repaint/internal/geometry"
	"github.com/example/repaint/internal/scene"
)

// DefaultHandleRadius is the vertex grab radius in screen pixels.
const DefaultHandleRadius = 8

// Assigner receives colour assignments. *session.Session implements it.
type Assigner interface {
	AssignActive(regionID string) bool
	Assign(regionID, color string) bool
}

// State is the editor's drag state.
type State int

const (
	Idle State = iota
	DraggingVertex
	DraggingRegion
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case DraggingVertex:
		return "dragging-vertex"
	case DraggingRegion:
		return "dragging-region"
	}
	return "unknown"
}

// Drag is the live drag, one of *VertexDrag or *RegionDrag. Nil means idle.
type Drag interface {
	isDrag()
}

// VertexDrag moves one vertex of a region.
type VertexDrag struct {
	RegionID string
	Index    int
	Start    geometry.Point
}

// RegionDrag translates a whole region. Original is the vertex list at
// pointer-down; every move is applied to it, never to the live list.
type RegionDrag struct {
	RegionID string
	Start    geometry.Point
	Original []geometry.Point
}

func (*VertexDrag) isDrag() {}
func (*RegionDrag) isDrag() {}

// Editor drives a scene.Model from pointer events in screen space.
type Editor struct {
	model        *scene.Model
	assigner     Assigner
	transform    scene.Transform
	handleRadius float64
	logger       *slog.Logger

	editMode bool
	drag     Drag
	hovered  string
}

// Option configures an Editor.
type Option func(*Editor)

// WithHandleRadius sets the vertex grab radius in screen pixels.
func WithHandleRadius(r float64) Option {
	return func(e *Editor) { e.handleRadius = r }
}

// WithTransform sets the initial screen transform.
func WithTransform(t scene.Transform) Option {
	return func(e *Editor) { e.transform = t }
}

// WithLogger sets the logger for ignored invariant violations.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) { e.logger = l }
}

// New returns an idle editor in view mode.
func New(model *scene.Model, assigner Assigner, opts ...Option) *Editor {
	e := &Editor{
		model:        model,
		assigner:     assigner,
		transform:    scene.Identity(),
		handleRadius: DefaultHandleRadius,
		logger:       slog.Default(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// SetModel swaps the scene being edited and ends any drag.
func (e *Editor) SetModel(m *scene.Model) {
	e.model = m
	e.drag = nil
	e.hovered = ""
}

// Model returns the scene being edited.
func (e *Editor) Model() *scene.Model { return e.model }

// SetTransform replaces the image to screen transform.
func (e *Editor) SetTransform(t scene.Transform) { e.transform = t }

// Transform returns the image to screen transform.
func (e *Editor) Transform() scene.Transform { return e.transform }

// SetEditMode toggles edit mode. Leaving edit mode ends any live drag.
func (e *Editor) SetEditMode(on bool) {
	e.editMode = on
	if !on {
		e.drag = nil
	}
}

// EditMode reports whether edit mode is on.
func (e *Editor) EditMode() bool { return e.editMode }

// Drag returns the live drag or nil.
func (e *Editor) Drag() Drag { return e.drag }

// State reports the drag state.
func (e *Editor) State() State {
	switch e.drag.(type) {
	case *VertexDrag:
		return DraggingVertex
	case *RegionDrag:
		return DraggingRegion
	}
	return Idle
}

// Hovered returns the region highlighted by a palette drag, or "".
func (e *Editor) Hovered() string { return e.hovered }

func (e *Editor) canStart(regionID string) bool {
	if !e.editMode || e.drag != nil || e.model == nil {
		return false
	}
	return e.model.IsEditable(regionID)
}

// PressVertex starts dragging vertex index of regionID.
func (e *Editor) PressVertex(regionID string, index int, screen geometry.Point) bool {
	if !e.canStart(regionID) {
		return false
	}
	if n := e.model.VertexCount(regionID); index < 0 || index >= n {
		e.logger.Warn("vertex index out of range", "region", regionID, "index", index, "vertices", n)
		return false
	}
	e.drag = &VertexDrag{RegionID: regionID, Index: index, Start: e.transform.ToImage(screen)}
	return true
}

// PressRegion starts dragging the whole of regionID.
func (e *Editor) PressRegion(regionID string, screen geometry.Point) bool {
	if !e.canStart(regionID) {
		return false
	}
	r, _ := e.model.Region(regionID)
	e.drag = &RegionDrag{RegionID: regionID, Start: e.transform.ToImage(screen), Original: r.Vertices}
	return true
}

// PointerDown hit tests vertex handles, then region fills, and starts the
// matching drag. It does nothing outside edit mode.
func (e *Editor) PointerDown(screen geometry.Point) bool {
	if !e.editMode || e.drag != nil || e.model == nil {
		return false
	}
	p := e.transform.ToImage(screen)
	if id, idx, ok := e.model.VertexAt(p, e.transform.ImageDistance(e.handleRadius)); ok {
		return e.PressVertex(id, idx, screen)
	}
	if id, ok := e.model.RegionAt(p); ok {
		return e.PressRegion(id, screen)
	}
	return false
}

// PointerMove updates the live drag. It reports whether geometry changed.
func (e *Editor) PointerMove(screen geometry.Point) bool {
	if e.drag == nil || e.model == nil {
		return false
	}
	p := e.transform.ToImage(screen)
	switch d := e.drag.(type) {
	case *VertexDrag:
		r, ok := e.model.Region(d.RegionID)
		if !ok || d.Index >= len(r.Vertices) {
			e.logger.Warn("vertex drag lost its target", "region", d.RegionID, "index", d.Index)
			return false
		}
		return e.commit(d.RegionID, geometry.SetVertex(r.Vertices, d.Index, p))
	case *RegionDrag:
		delta := p.Sub(d.Start)
		return e.commit(d.RegionID, geometry.Translate(d.Original, delta.X, delta.Y))
	}
	return false
}

func (e *Editor) commit(regionID string, vertices []geometry.Point) bool {
	if err := e.model.SetVertices(regionID, vertices, true); err != nil {
		e.logger.Warn("ignored geometry update", "region", regionID, "error", err)
		return false
	}
	return true
}

// PointerUp ends any live drag wherever the pointer is.
func (e *Editor) PointerUp() bool {
	if e.drag == nil {
		return false
	}
	e.drag = nil
	return true
}

// Click assigns the active colour to the topmost paintable region under
// screen. It is suppressed in edit mode.
func (e *Editor) Click(screen geometry.Point) (string, bool) {
	if e.editMode || e.model == nil {
		return "", false
	}
	id, ok := e.model.RegionAt(e.transform.ToImage(screen))
	if !ok {
		return "", false
	}
	return id, e.ClickRegion(id)
}

// ClickRegion assigns the active colour to regionID in view mode.
func (e *Editor) ClickRegion(regionID string) bool {
	if e.editMode || e.assigner == nil {
		return false
	}
	return e.assigner.AssignActive(regionID)
}

// DragEnter marks regionID as the palette drop target.
func (e *Editor) DragEnter(regionID string) {
	e.hovered = regionID
}

// DragLeave clears the hover mark if it belongs to regionID.
func (e *Editor) DragLeave(regionID string) {
	if e.hovered == regionID {
		e.hovered = ""
	}
}

// DragOver moves the hover mark to the region under screen.
func (e *Editor) DragOver(screen geometry.Point) string {
	id := ""
	if e.model != nil {
		id, _ = e.model.RegionAt(e.transform.ToImage(screen))
	}
	if id != e.hovered {
		e.DragLeave(e.hovered)
		if id != "" {
			e.DragEnter(id)
		}
	}
	return e.hovered
}

// Drop assigns color to regionID regardless of edit mode or active colour.
func (e *Editor) Drop(regionID, color string) bool {
	e.hovered = ""
	if e.assigner == nil {
		return false
	}
	return e.assigner.Assign(regionID, color)
}

// DropAt drops color on the region under screen.
func (e *Editor) DropAt(screen geometry.Point, color string) (string, bool) {
	if e.model == nil {
		e.hovered = ""
		return "", false
	}
	id, ok := e.model.RegionAt(e.transform.ToImage(screen))
	if !ok {
		e.hovered = ""
		return "", false
	}
	return id, e.Drop(id, color)
}
