// Package geometry implements the polygon operations behind region editing:
// vertex list parsing, centroids, translation and hit testing.
package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// degenerateArea is the absolute signed area below which a polygon is treated
// as collinear and its centroid falls back to the vertex mean.
const degenerateArea = 1e-6

// Point is a position in image pixel space.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// IsNaN reports whether either coordinate is NaN.
func (p Point) IsNaN() bool { return math.IsNaN(p.X) || math.IsNaN(p.Y) }

// ParseVertices splits "x1,y1 x2,y2 ..." into points. Tokens that do not
// parse become NaN coordinates rather than errors.
func ParseVertices(raw string) []Point {
	fields := strings.Fields(raw)
	points := make([]Point, 0, len(fields))
	for _, f := range fields {
		xs, ys, _ := strings.Cut(f, ",")
		points = append(points, Point{X: parseCoord(xs), Y: parseCoord(ys)})
	}
	return points
}

func parseCoord(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// SerializeVertices is the inverse of ParseVertices, writing every
// coordinate with two decimals.
func SerializeVertices(points []Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

// SignedArea returns the shoelace area of the closed polygon. Positive for
// counter-clockwise winding in a y-up frame.
func SignedArea(points []Point) float64 {
	var sum float64
	n := len(points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return sum / 2
}

// Mean returns the arithmetic mean of the points.
func Mean(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Point{X: sx / n, Y: sy / n}
}

// Centroid returns the area centroid of the polygon. Zero-area polygons
// use the vertex mean instead.
func Centroid(points []Point) Point {
	n := len(points)
	if n == 0 {
		return Point{}
	}
	area := SignedArea(points)
	if math.Abs(area) < degenerateArea {
		return Mean(points)
	}
	var cx, cy float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := points[i].X*points[j].Y - points[j].X*points[i].Y
		cx += (points[i].X + points[j].X) * cross
		cy += (points[i].Y + points[j].Y) * cross
	}
	return Point{X: cx / (6 * area), Y: cy / (6 * area)}
}

// Translate returns a copy of points shifted by (dx, dy).
func Translate(points []Point, dx, dy float64) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}

// SetVertex returns a copy of points with the vertex at index replaced. An
// index outside [0, len) leaves the input untouched and returns it as is.
func SetVertex(points []Point, index int, p Point) []Point {
	if index < 0 || index >= len(points) {
		return points
	}
	out := Clone(points)
	out[index] = p
	return out
}

// Clone returns an independent copy of points.
func Clone(points []Point) []Point {
	if points == nil {
		return nil
	}
	out := make([]Point, len(points))
	copy(out, points)
	return out
}

// Contains tests whether p lies inside the polygon using ray casting.
func Contains(points []Point, p Point) bool {
	n := len(points)
	if n < 3 {
		return false
	}
	inside := false
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := points[i], points[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

// Bounds returns the axis aligned bounding box of the points.
func Bounds(points []Point) (min, max Point) {
	if len(points) == 0 {
		return Point{}, Point{}
	}
	min, max = points[0], points[0]
	for _, p := range points[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}
