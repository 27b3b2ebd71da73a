package appstate

import (
	"image"

	"github.com/example/repaint/internal/geometry"
	"github.com/example/repaint/internal/scene"
)

const (
	titleHeight  = 24
	bottomHeight = 24
	toolbarWidth = 48
	swatchSize   = 32
	swatchGap    = 8
)

// layout is the screen geometry of one frame.
type layout struct {
	width, height int
	image         image.Rectangle
	transform     scene.Transform
	swatches      []image.Rectangle
}

// computeLayout fits an imgW x imgH coordinate space into the window,
// keeping its aspect ratio, and stacks up to n palette swatches in the
// toolbar.
func computeLayout(width, height int, imgW, imgH float64, n int) layout {
	l := layout{width: width, height: height}
	availW := width - toolbarWidth
	availH := height - titleHeight - bottomHeight
	if availW > 0 && availH > 0 && imgW > 0 && imgH > 0 {
		t := scene.FitTransform(imgW, imgH, float64(availW), float64(availH), scenePoint(toolbarWidth, titleHeight), true)
		w := int(imgW * t.ScaleX)
		h := int(imgH * t.ScaleY)
		if w > 0 && h > 0 {
			l.image = image.Rect(toolbarWidth, titleHeight, toolbarWidth+w, titleHeight+h)
			l.transform = scene.Transform{
				ScaleX: float64(w) / imgW,
				ScaleY: float64(h) / imgH,
				Offset: scenePoint(toolbarWidth, titleHeight),
			}
		}
	}
	x := (toolbarWidth - swatchSize) / 2
	for i := 0; i < n; i++ {
		y := titleHeight + swatchGap + i*(swatchSize+swatchGap)
		if y+swatchSize > height-bottomHeight {
			break
		}
		l.swatches = append(l.swatches, image.Rect(x, y, x+swatchSize, y+swatchSize))
	}
	return l
}

func (l layout) swatchAt(p image.Point) int {
	for i, r := range l.swatches {
		if p.In(r) {
			return i
		}
	}
	return -1
}

func scenePoint(x, y int) geometry.Point { return geometry.Pt(float64(x), float64(y)) }
