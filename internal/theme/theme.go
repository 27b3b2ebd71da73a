package theme

import (
	"image/color"
)

// Theme defines the colours of the editor window.
type Theme struct {
	Name string

	// Window
	Background color.RGBA // behind the photo when it does not fill the window
	Foreground color.RGBA // status line text

	// Palette toolbar
	ToolbarBackground color.RGBA
	SwatchBorder      color.RGBA
	SwatchActive      color.RGBA // ring around the active colour

	// Regions
	RegionOutline color.RGBA
	RegionHover   color.RGBA // drop target while dragging a swatch
	Glyph         color.RGBA // "+" on unpainted regions

	// Edit mode
	Handle       color.RGBA
	HandleActive color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:              "Default",
		Background:        color.RGBA{220, 220, 220, 255},
		Foreground:        color.RGBA{0, 0, 0, 255},
		ToolbarBackground: color.RGBA{240, 240, 240, 255},
		SwatchBorder:      color.RGBA{80, 80, 80, 255},
		SwatchActive:      color.RGBA{0, 120, 215, 255},
		RegionOutline:     color.RGBA{255, 255, 255, 200},
		RegionHover:       color.RGBA{255, 215, 0, 255},
		Glyph:             color.RGBA{255, 255, 255, 230},
		Handle:            color.RGBA{255, 255, 255, 255},
		HandleActive:      color.RGBA{255, 80, 0, 255},
	}
}
