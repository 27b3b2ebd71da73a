package render

import (
	"fmt"
	"strings"
)

// BlendMode selects how a region colour combines with the photo beneath.
type BlendMode int

const (
	// BlendNormal is a flat alpha fill. Exports use it by default.
	BlendNormal BlendMode = iota
	// BlendMultiply darkens the photo by the colour, keeping its shading.
	BlendMultiply
	// BlendOverlay multiplies shadows and screens highlights.
	BlendOverlay
)

func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "normal"
	case BlendMultiply:
		return "multiply"
	case BlendOverlay:
		return "overlay"
	}
	return fmt.Sprintf("BlendMode(%d)", int(b))
}

// ParseBlendMode accepts the names produced by String.
func ParseBlendMode(s string) (BlendMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "flat":
		return BlendNormal, nil
	case "multiply":
		return BlendMultiply, nil
	case "overlay":
		return BlendOverlay, nil
	}
	return BlendNormal, fmt.Errorf("unknown blend mode %q", s)
}

func blendChannel(mode BlendMode, base, paint uint8) uint8 {
	b, p := uint32(base), uint32(paint)
	switch mode {
	case BlendMultiply:
		return uint8((b*p + 127) / 255)
	case BlendOverlay:
		if b < 128 {
			return uint8((2*b*p + 127) / 255)
		}
		return uint8(255 - (2*(255-b)*(255-p)+127)/255)
	}
	return paint
}
