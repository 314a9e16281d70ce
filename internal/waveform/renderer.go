// Package waveform draws an audio waveform with a playback cursor and maps
// between pointer position and playback time.
package waveform

import (
	"image/color"

	"github.com/mathematicalguy/audio-antenna-Simulator/internal/surface"
)

// GridSpacing is the distance in device pixels between backdrop grid lines.
const GridSpacing = 20

// HiddenCursor is a cursor position left of any surface, for static plots.
const HiddenCursor = -4 * cursorWidth

var (
	// Background is the colour the surface is cleared to before drawing.
	Background  color.Color = color.RGBA{0, 0, 0, 0}
	GridColor   color.Color = color.RGBA{0xee, 0xee, 0xee, 0xff}
	WaveColor   color.Color = color.RGBA{0x21, 0x96, 0xf3, 0xff}
	CursorColor color.Color = color.RGBA{0xff, 0x40, 0x81, 0xff}
)

const (
	gridWidth   = 1
	waveWidth   = 2
	cursorWidth = 2
)

// Vertex is one polyline point in device pixels.
type Vertex struct {
	X, Y float64
}

// Vertices maps samples onto a width x height raster: sample i lands at
// x = i*width/len(samples) and y = height/2*(1+sample), so 0 is the middle
// row, +1 the last row and -1 the first row.
func Vertices(samples []float64, width, height int) []Vertex {
	if len(samples) == 0 {
		return nil
	}
	step := float64(width) / float64(len(samples))
	mid := float64(height) / 2
	out := make([]Vertex, len(samples))
	for i, s := range samples {
		out[i] = Vertex{X: float64(i) * step, Y: mid * (1 + s)}
	}
	return out
}

// Render clears s and draws the grid, the sample polyline and a vertical
// cursor at cursorX. Nothing is drawn when samples is empty.
func Render(s surface.Surface, samples []float64, cursorX float64) {
	if s == nil || len(samples) == 0 {
		return
	}
	width, height := s.Size()
	s.Clear(Background)
	drawGrid(s, width, height)

	verts := Vertices(samples, width, height)
	for i := 1; i < len(verts); i++ {
		a, b := verts[i-1], verts[i]
		s.Line(a.X, a.Y, b.X, b.Y, waveWidth, WaveColor)
	}
	if len(verts) == 1 {
		v := verts[0]
		s.Line(v.X, v.Y, v.X, v.Y, waveWidth, WaveColor)
	}

	s.Line(cursorX, 0, cursorX, float64(height), cursorWidth, CursorColor)
}

func drawGrid(s surface.Surface, width, height int) {
	w, h := float64(width), float64(height)
	for y := 0; y < height; y += GridSpacing {
		s.Line(0, float64(y), w, float64(y), gridWidth, GridColor)
	}
	for x := 0; x < width; x += GridSpacing {
		s.Line(float64(x), 0, float64(x), h, gridWidth, GridColor)
	}
}
