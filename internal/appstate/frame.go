package appstate

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"github.com/example/repaint/internal/colorspace"
	"github.com/example/repaint/internal/editor"
	"github.com/example/repaint/internal/geometry"
	"github.com/example/repaint/internal/render"
	"github.com/example/repaint/internal/scene"
	"golang.org/x/exp/shiny/screen"
)

const handleSize = 4

func (a *AppState) drawFrame(s screen.Screen, w screen.Window) {
	b, err := s.NewBuffer(image.Pt(a.width, a.height))
	if err != nil {
		slog.Error("new buffer", "error", err)
		return
	}
	defer b.Release()
	a.renderFrame(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// renderFrame paints the whole window into dst.
func (a *AppState) renderFrame(dst *image.RGBA) {
	t := a.Theme
	fillRect(dst, dst.Bounds(), t.Background)
	m := a.Session.Model()
	if m != nil && !a.lay.image.Empty() {
		a.drawScene(dst, m)
	}
	a.drawToolbar(dst)
	a.drawBottomBar(dst)
}

func (a *AppState) previewBase() *image.RGBA {
	r := a.lay.image
	if a.scaledBase != nil && a.scaledBaseFor == r {
		return a.scaledBase
	}
	if a.Base != nil {
		a.scaledBase = render.Scale(a.Base, r.Dx(), r.Dy())
	} else {
		a.scaledBase = render.Blank(r.Dx(), r.Dy(), image.NewUniform(color.RGBA{245, 245, 245, 255}))
	}
	a.scaledBaseFor = r
	return a.scaledBase
}

func (a *AppState) drawScene(dst *image.RGBA, m *scene.Model) {
	t := a.Theme
	r := a.lay.image
	base := a.previewBase()
	opts := a.Export
	opts.Blend = a.Preview
	opts.Width, opts.Height = m.Size()
	assignments := a.Session.Assignments()
	img, err := render.Composite(base, m.Paintable(), assignments, opts)
	if err != nil {
		img = base
	}
	draw.Draw(dst, r, img, image.Point{}, draw.Src)

	tr := a.lay.transform
	hovered := a.editor.Hovered()
	for _, reg := range m.Paintable() {
		pts := toScreen(tr, reg.Vertices)
		col, thick := t.RegionOutline, 1
		if reg.ID == hovered {
			col, thick = t.RegionHover, 3
		}
		drawPolygon(dst, pts, col, thick)
		if _, ok := assignments[reg.ID]; !ok && !a.editor.EditMode() {
			c := tr.ToScreen(reg.LabelAnchor)
			if !c.IsNaN() {
				drawPlus(dst, int(c.X), int(c.Y), 10, t.Glyph)
			}
		}
	}
	if a.editor.EditMode() {
		a.drawHandles(dst, m)
	}
}

func (a *AppState) drawHandles(dst *image.RGBA, m *scene.Model) {
	t := a.Theme
	tr := a.lay.transform
	activeRegion, activeIndex := "", -1
	switch d := a.editor.Drag().(type) {
	case *editor.VertexDrag:
		activeRegion, activeIndex = d.RegionID, d.Index
	case *editor.RegionDrag:
		activeRegion = d.RegionID
	}
	for _, reg := range m.Paintable() {
		for i, v := range toScreen(tr, reg.Vertices) {
			if v.IsNaN() {
				continue
			}
			col := t.Handle
			if reg.ID == activeRegion && (activeIndex < 0 || activeIndex == i) {
				col = t.HandleActive
			}
			drawFilledCircle(dst, int(v.X), int(v.Y), handleSize, col)
		}
	}
}

func toScreen(tr scene.Transform, pts []geometry.Point) []geometry.Point {
	out := make([]geometry.Point, len(pts))
	for i, p := range pts {
		out[i] = tr.ToScreen(p)
	}
	return out
}

func (a *AppState) drawToolbar(dst *image.RGBA) {
	t := a.Theme
	fillRect(dst, image.Rect(0, 0, a.width, titleHeight), t.ToolbarBackground)
	fillRect(dst, image.Rect(0, titleHeight, toolbarWidth, a.height-bottomHeight), t.ToolbarBackground)
	title := a.Title
	if m := a.Session.Model(); m != nil {
		title += " - " + m.Definition().Name
	}
	if a.editor.EditMode() {
		title += " [edit]"
	}
	drawText(dst, 8, 17, title, t.Foreground)

	entries := a.Session.Palette().Entries()
	active := a.Session.ActiveID()
	for i, r := range a.lay.swatches {
		if i >= len(entries) {
			break
		}
		c, ok := colorspace.ParseHex(entries[i].Display())
		if !ok {
			continue
		}
		fillRect(dst, r, c)
		border, thick := t.SwatchBorder, 1
		if entries[i].ID == active {
			border, thick = t.SwatchActive, 3
		} else if i == a.hoverSwatch {
			thick = 2
		}
		drawRect(dst, r, border, thick)
		if i < 9 {
			drawText(dst, r.Min.X+3, r.Min.Y+13, string(rune('1'+i)), contrastText(c))
		}
	}
}

func (a *AppState) drawBottomBar(dst *image.RGBA) {
	t := a.Theme
	bar := image.Rect(0, a.height-bottomHeight, a.width, a.height)
	fillRect(dst, bar, t.ToolbarBackground)
	for i, s := range a.shortcuts {
		if i == a.hoverShortcut {
			fillRect(dst, s.rect, t.SwatchBorder)
			drawText(dst, s.rect.Min.X+6, s.rect.Max.Y-6, s.label, contrastText(t.SwatchBorder))
			continue
		}
		drawRect(dst, s.rect, t.SwatchBorder, 1)
		drawText(dst, s.rect.Min.X+6, s.rect.Max.Y-6, s.label, t.Foreground)
	}
	if a.messageVisible() {
		w := textWidth(a.message) + 16
		x := a.width - w - 8
		if len(a.shortcuts) > 0 {
			x = max(x, a.shortcuts[len(a.shortcuts)-1].rect.Max.X+8)
		}
		box := image.Rect(x, bar.Min.Y-22, x+w, bar.Min.Y-2)
		fillRect(dst, box, t.Foreground)
		drawText(dst, box.Min.X+8, box.Max.Y-6, a.message, contrastText(t.Foreground))
	}
}
