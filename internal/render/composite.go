// Package render rasterises coloured regions over the base photograph and
// writes the result as PNG.
package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/example/repaint/internal/colorspace"
	"github.com/example/repaint/internal/geometry"
	"github.com/example/repaint/internal/scene"
	"golang.org/x/image/vector"
)

// DefaultAlpha is the opacity of region fills.
const DefaultAlpha = 0.40

// ErrBaseUnavailable is returned when the base photo cannot be drawn.
var ErrBaseUnavailable = errors.New("base image unavailable")

// Options controls compositing.
type Options struct {
	Alpha float64
	Blend BlendMode
	// Excluded region ids are never filled.
	Excluded []string
	// Width and Height give the coordinate space of the region vertices.
	// Zero means the base image's pixel size.
	Width, Height float64
}

// DefaultOptions returns a flat 40% fill that skips the floor.
func DefaultOptions() Options {
	return Options{Alpha: DefaultAlpha, Blend: BlendNormal, Excluded: []string{scene.DefaultExcluded}}
}

// Composite draws base at its natural resolution and fills every assigned,
// non-excluded region with its colour.
func Composite(base image.Image, regions []scene.Region, assignments map[string]string, opts Options) (*image.RGBA, error) {
	if base == nil || base.Bounds().Empty() {
		return nil, ErrBaseUnavailable
	}
	bounds := base.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), base, bounds.Min, draw.Src)

	sx, sy := 1.0, 1.0
	if opts.Width > 0 && opts.Height > 0 {
		sx, sy = float64(w)/opts.Width, float64(h)/opts.Height
	}
	alpha := opts.Alpha
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	excluded := make(map[string]bool, len(opts.Excluded))
	for _, id := range opts.Excluded {
		excluded[id] = true
	}

	for _, r := range regions {
		if excluded[r.ID] {
			continue
		}
		hex, ok := assignments[r.ID]
		if !ok {
			continue
		}
		paint, ok := colorspace.ParseHex(hex)
		if !ok {
			continue
		}
		mask := regionMask(r.Vertices, w, h, sx, sy)
		if mask == nil {
			continue
		}
		fill(dst, mask, paint, alpha, opts.Blend)
	}
	return dst, nil
}

// regionMask rasterises a closed polygon. Polygons with NaN coordinates or
// fewer than 3 vertices produce no mask.
func regionMask(points []geometry.Point, w, h int, sx, sy float64) *image.Alpha {
	if len(points) < 3 {
		return nil
	}
	for _, p := range points {
		if p.IsNaN() {
			return nil
		}
	}
	z := vector.NewRasterizer(w, h)
	z.MoveTo(float32(points[0].X*sx), float32(points[0].Y*sy))
	for _, p := range points[1:] {
		z.LineTo(float32(p.X*sx), float32(p.Y*sy))
	}
	z.ClosePath()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

func fill(dst *image.RGBA, mask *image.Alpha, paint color.RGBA, alpha float64, mode BlendMode) {
	if mode == BlendNormal {
		src := image.NewUniform(color.NRGBA{R: paint.R, G: paint.G, B: paint.B, A: uint8(alpha*255 + 0.5)})
		draw.DrawMask(dst, dst.Bounds(), src, image.Point{}, mask, image.Point{}, draw.Over)
		return
	}
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m := mask.AlphaAt(x, y).A
			if m == 0 {
				continue
			}
			k := alpha * float64(m) / 255
			i := dst.PixOffset(x, y)
			px := dst.Pix[i : i+3 : i+3]
			for c, p := range [3]uint8{paint.R, paint.G, paint.B} {
				blended := blendChannel(mode, px[c], p)
				px[c] = uint8(float64(px[c])*(1-k) + float64(blended)*k + 0.5)
			}
		}
	}
}
