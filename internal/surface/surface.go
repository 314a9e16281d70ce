// Package surface provides the 2D raster target the waveform and scene
// renderers draw onto.
package surface

import "image/color"

// Surface is a raster that accepts clear and line primitives in device
// pixels with the origin at the top-left corner.
type Surface interface {
	Size() (width, height int)
	Clear(c color.Color)
	Line(x0, y0, x1, y1, width float64, c color.Color)
}
