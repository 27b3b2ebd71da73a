// Package colorspace converts catalog colours from CIE L*a*b* into the
// display colours used by the preview and the exported image.
package colorspace

import (
	"fmt"
	"image/color"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// D65 reference white.
const (
	whiteX = 0.95047
	whiteY = 1.00000
	whiteZ = 1.08883
)

var hexShape = regexp.MustCompile(`^#?([a-fA-F\d]{2})([a-fA-F\d]{2})([a-fA-F\d]{2})$`)

// ToDisplayColor converts an L*a*b* coordinate to a lower-case "#rrggbb"
// string. Out-of-gamut values are clamped per channel.
func ToDisplayColor(l, a, b float64) string {
	y := (l + 16) / 116
	x := a/500 + y
	z := y - b/200

	x = whiteX * labInverse(x)
	y = whiteY * labInverse(y)
	z = whiteZ * labInverse(z)

	r := x*3.2406 + y*-1.5372 + z*-0.4986
	g := x*-0.9689 + y*1.8758 + z*0.0415
	bl := x*0.0557 + y*-0.2040 + z*1.0570

	return "#" + channelHex(gammaEncode(r)) + channelHex(gammaEncode(g)) + channelHex(gammaEncode(bl))
}

func labInverse(t float64) float64 {
	if cube := t * t * t; cube > 0.008856 {
		return cube
	}
	return (t - 16.0/116.0) / 7.787
}

func gammaEncode(c float64) float64 {
	if c > 0.0031308 {
		return 1.055*math.Pow(c, 1/2.4) - 0.055
	}
	return 12.92 * c
}

func channelHex(c float64) string {
	c = math.Max(0, math.Min(1, c))
	return fmt.Sprintf("%02x", int(math.Round(c*255)))
}

// WithAlpha re-encodes a "#rrggbb" colour as "rgba(r, g, b, alpha)".
// Anything that is not a six digit hex colour is returned unchanged.
func WithAlpha(hex string, alpha float64) string {
	c, ok := ParseHex(hex)
	if !ok {
		return hex
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(alpha, 'f', -1, 64))
}

// ParseHex decodes "#rrggbb" (leading '#' optional, any case) into an opaque
// RGBA colour.
func ParseHex(hex string) (color.RGBA, bool) {
	m := hexShape.FindStringSubmatch(strings.TrimSpace(hex))
	if m == nil {
		return color.RGBA{}, false
	}
	c, err := colorful.Hex("#" + strings.ToLower(m[1]+m[2]+m[3]))
	if err != nil {
		return color.RGBA{}, false
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, true
}

// ToHex formats an RGBA colour as "#rrggbb", dropping alpha.
func ToHex(c color.RGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}
