package scene

import "github.com/example/repaint/internal/geometry"

// Transform maps image pixel space to screen space: screen = image*scale +
// offset. The axes scale independently so a stretched preview still maps
// back exactly.
type Transform struct {
	ScaleX, ScaleY float64
	Offset         geometry.Point
}

// Identity returns the transform where screen and image coincide.
func Identity() Transform { return Transform{ScaleX: 1, ScaleY: 1} }

// FitTransform scales an image of imgW x imgH into a view of viewW x viewH
// placed at origin. With keepAspect the smaller factor is used on both axes.
func FitTransform(imgW, imgH, viewW, viewH float64, origin geometry.Point, keepAspect bool) Transform {
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return Transform{ScaleX: 1, ScaleY: 1, Offset: origin}
	}
	sx, sy := viewW/imgW, viewH/imgH
	if keepAspect {
		if sx < sy {
			sy = sx
		} else {
			sx = sy
		}
	}
	return Transform{ScaleX: sx, ScaleY: sy, Offset: origin}
}

func (t Transform) scales() (float64, float64) {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}

// ToImage converts a screen position to image space.
func (t Transform) ToImage(screen geometry.Point) geometry.Point {
	sx, sy := t.scales()
	return geometry.Point{X: (screen.X - t.Offset.X) / sx, Y: (screen.Y - t.Offset.Y) / sy}
}

// ToScreen converts an image position to screen space.
func (t Transform) ToScreen(img geometry.Point) geometry.Point {
	sx, sy := t.scales()
	return geometry.Point{X: img.X*sx + t.Offset.X, Y: img.Y*sy + t.Offset.Y}
}

// ImageDistance converts a screen-space length to image space using the
// larger axis scale, so a handle radius never shrinks below its screen size.
func (t Transform) ImageDistance(screen float64) float64 {
	sx, sy := t.scales()
	s := sx
	if sy > s {
		s = sy
	}
	return screen / s
}
