package appstate

import (
	"errors"
	"fmt"
	"image"

	"github.com/example/repaint/internal/geometry"
	"github.com/example/repaint/internal/render"
	"github.com/example/repaint/internal/scene"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

const (
	actionEdit    = "edit"
	actionExport  = "export"
	actionCopy    = "copy"
	actionCopyImg = "copy-image"
	actionPaste   = "paste"
	actionAnchors = "anchors"
	actionQuit    = "quit"
)

// shortcut is a clickable entry in the bottom bar.
type shortcut struct {
	label  string
	action string
	rect   image.Rectangle
	run    func()
}

func layoutShortcuts(width, height int, editMode bool, trigger func(string)) []shortcut {
	edit := "E:edit"
	if editMode {
		edit = "E:done"
	}
	entries := []struct{ label, action string }{
		{edit, actionEdit},
		{"^S:export", actionExport},
		{"^C:copy", actionCopy},
		{"^V:paste", actionPaste},
		{"R:anchors", actionAnchors},
		{"Q:quit", actionQuit},
	}
	var out []shortcut
	x := toolbarWidth + 4
	y := height - bottomHeight
	for _, e := range entries {
		w := textWidth(e.label) + 12
		if x+w > width {
			break
		}
		action := e.action
		out = append(out, shortcut{
			label:  e.label,
			action: action,
			rect:   image.Rect(x, y+2, x+w, height-2),
			run:    func() { trigger(action) },
		})
		x += w + 4
	}
	return out
}

func (a *AppState) shortcutAt(p image.Point) int {
	for i, s := range a.shortcuts {
		if p.In(s.rect) {
			return i
		}
	}
	return -1
}

// handleMouse applies one pointer event and reports whether a repaint is
// needed.
func (a *AppState) handleMouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	sp := scenePoint(p.X, p.Y)
	switch e.Direction {
	case mouse.DirPress:
		return a.pointerPress(e.Button, p)
	case mouse.DirRelease:
		return a.pointerRelease(e.Button, p)
	case mouse.DirNone:
		changed := false
		if hs := a.shortcutAt(p); hs != a.hoverShortcut {
			a.hoverShortcut = hs
			changed = true
		}
		if hs := a.lay.swatchAt(p); hs != a.hoverSwatch && a.pressSwatch < 0 {
			a.hoverSwatch = hs
			changed = true
		}
		if a.pressSwatch >= 0 {
			if !a.swatchDragging && dist(p, a.pressPoint) > clickSlop {
				a.swatchDragging = true
			}
			if a.swatchDragging {
				a.editor.DragOver(sp)
				return true
			}
		}
		if a.pressInImage && a.editor.PointerMove(sp) {
			return true
		}
		return changed
	}
	return false
}

func (a *AppState) pointerPress(b mouse.Button, p image.Point) bool {
	a.pressPoint = p
	if i := a.lay.swatchAt(p); i >= 0 {
		if b == mouse.ButtonRight {
			a.removeSwatch(i)
			return true
		}
		if b == mouse.ButtonLeft {
			a.pressSwatch = i
			a.swatchDragging = false
		}
		return false
	}
	if b == mouse.ButtonRight && p.In(a.lay.image) && !a.editor.EditMode() {
		return a.clearRegion(scenePoint(p.X, p.Y))
	}
	if b != mouse.ButtonLeft {
		return false
	}
	if i := a.shortcutAt(p); i >= 0 {
		a.shortcuts[i].run()
		return true
	}
	if p.In(a.lay.image) {
		a.pressInImage = true
		return a.editor.PointerDown(scenePoint(p.X, p.Y))
	}
	return false
}

// clearRegion removes the colour from the region under the pointer.
func (a *AppState) clearRegion(screen geometry.Point) bool {
	m := a.editor.Model()
	if m == nil {
		return false
	}
	id, ok := m.RegionAt(a.editor.Transform().ToImage(screen))
	if !ok || !a.Session.Unassign(id) {
		return false
	}
	a.setMessage(id + " cleared")
	return true
}

func (a *AppState) pointerRelease(b mouse.Button, p image.Point) bool {
	if b != mouse.ButtonLeft {
		return false
	}
	sp := scenePoint(p.X, p.Y)
	if a.pressSwatch >= 0 {
		i := a.pressSwatch
		dragging := a.swatchDragging
		a.pressSwatch = -1
		a.swatchDragging = false
		entries := a.Session.Palette().Entries()
		if i >= len(entries) {
			return true
		}
		if dragging {
			if id, ok := a.editor.DropAt(sp, entries[i].Display()); ok {
				a.setMessage(fmt.Sprintf("%s painted %s", id, entries[i].ID))
			}
			return true
		}
		if a.lay.swatchAt(p) == i {
			if err := a.Session.SelectColor(entries[i].ID); err != nil {
				a.setMessage(err.Error())
			}
		}
		return true
	}
	if !a.pressInImage {
		return false
	}
	a.pressInImage = false
	if a.editor.PointerUp() {
		return true
	}
	if dist(p, a.pressPoint) > clickSlop {
		return false
	}
	_, ok := a.editor.Click(sp)
	return ok
}

func (a *AppState) removeSwatch(i int) {
	entries := a.Session.Palette().Entries()
	if i >= len(entries) {
		return
	}
	if err := a.Session.RemovePaletteEntry(entries[i].ID); err != nil {
		a.setMessage(err.Error())
		return
	}
	a.hoverSwatch = -1
	a.relayout()
}

func dist(p, q image.Point) int {
	d := p.Sub(q)
	return max(abs(d.X), abs(d.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// handleKey applies one key press and reports whether a repaint is needed.
func (a *AppState) handleKey(e key.Event) bool {
	if e.Direction == key.DirRelease {
		return false
	}
	ctrl := e.Modifiers&key.ModControl != 0
	shift := e.Modifiers&key.ModShift != 0
	switch {
	case ctrl && e.Code == key.CodeS:
		a.trigger(actionExport)
	case ctrl && shift && e.Code == key.CodeC:
		a.trigger(actionCopyImg)
	case ctrl && e.Code == key.CodeC:
		a.trigger(actionCopy)
	case ctrl && e.Code == key.CodeV:
		a.trigger(actionPaste)
	case ctrl:
		return false
	case e.Code == key.CodeE:
		a.trigger(actionEdit)
	case e.Code == key.CodeR:
		a.trigger(actionAnchors)
	case e.Code == key.CodeQ, e.Code == key.CodeEscape:
		a.trigger(actionQuit)
	case e.Code >= key.Code1 && e.Code <= key.Code9:
		entries := a.Session.Palette().Entries()
		i := int(e.Code - key.Code1)
		if i >= len(entries) {
			return false
		}
		if err := a.Session.SelectColor(entries[i].ID); err != nil {
			a.setMessage(err.Error())
		}
	default:
		return false
	}
	return true
}

// trigger runs a named action from the keyboard or the bottom bar.
func (a *AppState) trigger(action string) {
	switch action {
	case actionEdit:
		on := !a.editor.EditMode()
		a.editor.SetEditMode(on)
		a.pressInImage = false
		a.relayout()
		if on {
			a.setMessage("Edit mode: drag vertices or regions")
		} else {
			a.setMessage("View mode")
		}
	case actionExport:
		a.exportImage()
	case actionCopy:
		a.copyGeometry()
	case actionCopyImg:
		a.copyImage()
	case actionPaste:
		a.pasteGeometry()
	case actionAnchors:
		if m := a.Session.Model(); m != nil {
			m.RecomputeAnchors()
			a.setMessage("Label anchors recomputed")
		}
	case actionQuit:
		a.quit = true
	}
}

// composite renders the export image at the base photo's resolution.
func (a *AppState) composite() (*image.RGBA, error) {
	m := a.Session.Model()
	if m == nil {
		return nil, errors.New("no image selected")
	}
	opts := a.Export
	opts.Width, opts.Height = m.Size()
	return render.Composite(a.Base, m.Paintable(), a.Session.Assignments(), opts)
}

func (a *AppState) exportImage() {
	img, err := a.composite()
	if err != nil {
		a.setMessage("Export failed: " + err.Error())
		return
	}
	path, err := render.Export(a.ExportDir, img, a.now())
	if err != nil {
		a.setMessage("Export failed: " + err.Error())
		return
	}
	a.setMessage("Saved " + path)
	a.Notifier.Export(path)
}

// errViewMode is shown when a geometry action is used outside edit mode.
var errViewMode = errors.New("press E to enter edit mode first")

func (a *AppState) copyGeometry() {
	m := a.Session.Model()
	if m == nil {
		return
	}
	if !a.editor.EditMode() {
		a.setMessage("Copy failed: " + errViewMode.Error())
		return
	}
	data, err := scene.ExportGeometry(m.Regions())
	if err != nil {
		a.setMessage("Copy failed: " + err.Error())
		return
	}
	if err := a.clip.writeText(string(data)); err != nil {
		a.setMessage("Copy failed: " + err.Error())
		return
	}
	a.setMessage("Geometry copied")
	a.Notifier.Copy("geometry", nil)
}

func (a *AppState) copyImage() {
	img, err := a.composite()
	if err != nil {
		a.setMessage("Copy failed: " + err.Error())
		return
	}
	if err := a.clip.writeImage(img); err != nil {
		a.setMessage("Copy failed: " + err.Error())
		return
	}
	a.setMessage("Image copied")
	a.Notifier.Copy("image", img)
}

func (a *AppState) pasteGeometry() {
	m := a.Session.Model()
	if m == nil {
		return
	}
	if !a.editor.EditMode() {
		a.setMessage("Paste failed: " + errViewMode.Error())
		return
	}
	text, err := a.clip.readText()
	if err != nil {
		a.setMessage("Paste failed: " + err.Error())
		return
	}
	regions, err := scene.ImportGeometry([]byte(text))
	if err != nil {
		a.setMessage("Paste failed: " + err.Error())
		return
	}
	skipped, err := m.Apply(regions)
	if err != nil {
		a.setMessage("Paste failed: " + err.Error())
		return
	}
	if len(skipped) > 0 {
		a.setMessage(fmt.Sprintf("Geometry applied, skipped %v", skipped))
		return
	}
	a.setMessage("Geometry applied")
}
