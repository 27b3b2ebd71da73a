package editor

import (
	"testing"

	"github.com/example/repaint/internal/geometry"
	"github.com/example/repaint/internal/scene"
)

type recorder struct {
	active   string
	assigned map[string]string
}

func (r *recorder) AssignActive(id string) bool { return r.Assign(id, r.active) }

func (r *recorder) Assign(id, color string) bool {
	if color == "" {
		return false
	}
	if r.assigned == nil {
		r.assigned = map[string]string{}
	}
	r.assigned[id] = color
	return true
}

func newTestEditor(t *testing.T) (*Editor, *scene.Model, *recorder) {
	t.Helper()
	def := scene.ImageDefinition{
		ID: "room", Width: 200, Height: 100,
		Regions: []scene.Region{
			{ID: "left", Vertices: geometry.ParseVertices("0,0 10,0 10,10 0,10")},
			{ID: "right", Vertices: geometry.ParseVertices("100,0 110,0 110,10 100,10")},
			{ID: "floor", Vertices: geometry.ParseVertices("0,50 200,50 200,100 0,100")},
		},
	}
	m := scene.NewModel(def)
	rec := &recorder{active: "#ff0000"}
	return New(m, rec, WithHandleRadius(3)), m, rec
}

func region(t *testing.T, m *scene.Model, id string) scene.Region {
	t.Helper()
	r, ok := m.Region(id)
	if !ok {
		t.Fatalf("region %q missing", id)
	}
	return r
}

func TestDragsRequireEditMode(t *testing.T) {
	e, _, _ := newTestEditor(t)
	if e.PointerDown(geometry.Pt(5, 5)) || e.PressVertex("left", 0, geometry.Pt(0, 0)) {
		t.Fatalf("drag started in view mode")
	}
	if e.State() != Idle {
		t.Fatalf("state = %v", e.State())
	}
}

func TestVertexDragIsolation(t *testing.T) {
	e, m, _ := newTestEditor(t)
	e.SetEditMode(true)
	before := region(t, m, "right")
	if !e.PointerDown(geometry.Pt(10, 10)) {
		t.Fatalf("vertex not grabbed")
	}
	d, ok := e.Drag().(*VertexDrag)
	if !ok || d.RegionID != "left" || d.Index != 2 {
		t.Fatalf("drag = %#v", e.Drag())
	}
	if !e.PointerMove(geometry.Pt(15, 15)) {
		t.Fatalf("move ignored")
	}
	got := region(t, m, "left")
	want := geometry.ParseVertices("0,0 10,0 15,15 0,10")
	for i := range want {
		if got.Vertices[i] != want[i] {
			t.Fatalf("vertices = %v, want %v", got.Vertices, want)
		}
	}
	if got.LabelAnchor != geometry.Centroid(want) {
		t.Fatalf("anchor = %+v, want centroid %+v", got.LabelAnchor, geometry.Centroid(want))
	}
	after := region(t, m, "right")
	for i := range before.Vertices {
		if before.Vertices[i] != after.Vertices[i] {
			t.Fatalf("sibling region changed")
		}
	}
	if !e.PointerUp() || e.State() != Idle {
		t.Fatalf("pointer up did not end drag")
	}
}

func TestRegionDragSnapshot(t *testing.T) {
	twice, m1, _ := newTestEditor(t)
	twice.SetEditMode(true)
	drag := func(e *Editor, from, to geometry.Point) {
		if !e.PointerDown(from) {
			t.Fatalf("region not grabbed at %+v", from)
		}
		if e.State() != DraggingRegion {
			t.Fatalf("state = %v", e.State())
		}
		e.PointerMove(from.Add(geometry.Pt(1, 1)))
		e.PointerMove(to)
		e.PointerUp()
	}
	drag(twice, geometry.Pt(5, 5), geometry.Pt(8, 9))
	drag(twice, geometry.Pt(8, 9), geometry.Pt(10, 12))

	once, m2, _ := newTestEditor(t)
	once.SetEditMode(true)
	drag(once, geometry.Pt(5, 5), geometry.Pt(10, 12))

	a, b := region(t, m1, "left"), region(t, m2, "left")
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatalf("two drags %v != one drag %v", a.Vertices, b.Vertices)
		}
	}
	if a.LabelAnchor != geometry.Pt(10, 12) {
		t.Fatalf("anchor = %+v", a.LabelAnchor)
	}
}

func TestTransformApplied(t *testing.T) {
	e, m, _ := newTestEditor(t)
	e.SetTransform(scene.Transform{ScaleX: 2, ScaleY: 2, Offset: geometry.Pt(100, 100)})
	e.SetEditMode(true)
	if !e.PointerDown(geometry.Pt(110, 110)) || e.State() != DraggingRegion {
		t.Fatalf("expected region drag, state %v", e.State())
	}
	e.PointerMove(geometry.Pt(120, 130))
	e.PointerUp()
	r := region(t, m, "left")
	if r.Vertices[0] != geometry.Pt(5, 10) {
		t.Fatalf("vertex = %+v, want (5,10)", r.Vertices[0])
	}
}

func TestExcludedRegionNotDraggable(t *testing.T) {
	e, _, _ := newTestEditor(t)
	e.SetEditMode(true)
	if e.PointerDown(geometry.Pt(150, 75)) || e.PressRegion("floor", geometry.Pt(150, 75)) {
		t.Fatalf("floor must not be draggable")
	}
	if e.PressVertex("left", 9, geometry.Pt(0, 0)) {
		t.Fatalf("out of range vertex accepted")
	}
}

func TestSecondPressIgnoredWhileDragging(t *testing.T) {
	e, _, _ := newTestEditor(t)
	e.SetEditMode(true)
	e.PressRegion("left", geometry.Pt(5, 5))
	if e.PressVertex("right", 0, geometry.Pt(100, 0)) {
		t.Fatalf("second drag started")
	}
	if d, ok := e.Drag().(*RegionDrag); !ok || d.RegionID != "left" {
		t.Fatalf("drag = %#v", e.Drag())
	}
	e.SetEditMode(false)
	if e.State() != Idle {
		t.Fatalf("leaving edit mode must end drag")
	}
}

func TestClickSuppressedInEditMode(t *testing.T) {
	e, _, rec := newTestEditor(t)
	if id, ok := e.Click(geometry.Pt(105, 5)); !ok || id != "right" {
		t.Fatalf("Click = %q %v", id, ok)
	}
	if _, ok := e.Click(geometry.Pt(50, 75)); ok {
		t.Fatalf("click on floor assigned")
	}
	e.SetEditMode(true)
	if _, ok := e.Click(geometry.Pt(5, 5)); ok {
		t.Fatalf("click assigned in edit mode")
	}
	if len(rec.assigned) != 1 || rec.assigned["right"] != "#ff0000" {
		t.Fatalf("assigned = %v", rec.assigned)
	}
}

func TestDropIgnoresModeAndActive(t *testing.T) {
	e, _, rec := newTestEditor(t)
	rec.active = ""
	e.SetEditMode(true)
	if got := e.DragOver(geometry.Pt(5, 5)); got != "left" {
		t.Fatalf("hovered = %q", got)
	}
	if got := e.DragOver(geometry.Pt(105, 5)); got != "right" {
		t.Fatalf("hovered = %q", got)
	}
	if id, ok := e.DropAt(geometry.Pt(105, 5), "#00ff00"); !ok || id != "right" {
		t.Fatalf("DropAt = %q %v", id, ok)
	}
	if e.Hovered() != "" {
		t.Fatalf("hover not cleared on drop")
	}
	if rec.assigned["right"] != "#00ff00" {
		t.Fatalf("assigned = %v", rec.assigned)
	}
	e.DragEnter("left")
	e.DragLeave("right")
	if e.Hovered() != "left" {
		t.Fatalf("leave of another region cleared hover")
	}
	e.DragLeave("left")
	if e.Hovered() != "" {
		t.Fatalf("hover not cleared")
	}
}
