package appstate

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/example/repaint/internal/geometry"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			if p := image.Pt(x+dx, y+dy); p.In(img.Bounds()) {
				img.Set(p.X, p.Y, col)
			}
		}
	}
}

// drawLine is Bresenham with a square brush of the given thickness.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// drawPolygon outlines a closed polygon given in screen coordinates.
// Polygons with NaN coordinates are skipped.
func drawPolygon(img *image.RGBA, pts []geometry.Point, col color.Color, thick int) {
	if len(pts) < 2 {
		return
	}
	for _, p := range pts {
		if p.IsNaN() {
			return
		}
	}
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		drawLine(img, int(math.Round(a.X)), int(math.Round(a.Y)), int(math.Round(b.X)), int(math.Round(b.Y)), col, thick)
	}
}

func drawFilledCircle(img *image.RGBA, cx, cy, r int, col color.Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			if p := image.Pt(cx+dx, cy+dy); p.In(img.Bounds()) {
				img.Set(p.X, p.Y, col)
			}
		}
	}
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	drawLine(img, rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Min.Y, col, thick)
	drawLine(img, rect.Max.X-1, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1, col, thick)
	drawLine(img, rect.Max.X-1, rect.Max.Y-1, rect.Min.X, rect.Max.Y-1, col, thick)
	drawLine(img, rect.Min.X, rect.Max.Y-1, rect.Min.X, rect.Min.Y, col, thick)
}

// drawPlus marks an unpainted region at its label anchor.
func drawPlus(img *image.RGBA, cx, cy, size int, col color.Color) {
	drawFilledCircle(img, cx, cy, size, color.RGBA{0, 0, 0, 90})
	arm := size * 2 / 3
	drawLine(img, cx-arm, cy, cx+arm, cy, col, 3)
	drawLine(img, cx, cy-arm, cx, cy+arm, col, 3)
}

func fillRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	draw.Draw(dst, r, &image.Uniform{col}, image.Point{}, draw.Src)
}

func drawText(dst *image.RGBA, x, y int, s string, col color.Color) int {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13, Dot: fixed.P(x, y)}
	d.DrawString(s)
	return d.MeasureString(s).Ceil()
}

func textWidth(s string) int {
	return (&font.Drawer{Face: basicfont.Face7x13}).MeasureString(s).Ceil()
}

// contrastText picks black or white for text drawn over col.
func contrastText(col color.RGBA) color.Color {
	brightness := 0.299*float64(col.R) + 0.587*float64(col.G) + 0.114*float64(col.B)
	if brightness < 128 {
		return color.White
	}
	return color.Black
}
