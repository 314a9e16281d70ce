package scene

import (
	"image/color"

	"github.com/mathematicalguy/audio-antenna-Simulator/internal/field"
	"github.com/mathematicalguy/audio-antenna-Simulator/internal/surface"
)

var (
	// Background is the clear colour behind the 3D view.
	Background   color.Color = color.RGBA{0, 0, 0, 255}
	AntennaColor color.Color = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
	BaseColor    color.Color = color.RGBA{0xb3, 0xb3, 0xb3, 0xff}
)

// DefaultGlyphScale converts field magnitude into world-space glyph length.
const DefaultGlyphScale = 0.25

// Scene is the antenna plus the field glyphs as seen through a camera.
type Scene struct {
	Camera     Camera
	Antenna    *field.Antenna
	GlyphScale float64
}

// New returns a scene with the iso camera and an antenna of length.
func New(length float64) *Scene {
	return &Scene{
		Camera:     IsoCamera(),
		Antenna:    field.NewAntenna(length),
		GlyphScale: DefaultGlyphScale,
	}
}

// SetAntennaLength rebuilds the antenna wireframe when the length changes.
func (sc *Scene) SetAntennaLength(length float64) {
	if sc.Antenna != nil && sc.Antenna.Length == length {
		return
	}
	sc.Antenna = field.NewAntenna(length)
}

// Draw clears s and renders the antenna and one glyph per lattice point.
// Glyph colour is the field magnitude relative to the largest magnitude
// reachable at amplitude.
func (sc *Scene) Draw(s surface.Surface, points []field.Point, vectors []field.Vector, amplitude float64) {
	width, height := s.Size()
	s.Clear(Background)
	pr := sc.Camera.Projector(width, height)

	if sc.Antenna != nil {
		for _, seg := range sc.Antenna.Segments {
			clr := AntennaColor
			if seg.A.Z < 0 || seg.B.Z < 0 {
				clr = BaseColor
			}
			drawSegment(s, pr, seg.A, seg.B, 1, clr)
		}
	}

	maxMag := field.MaxMagnitude(amplitude)
	n := len(points)
	if len(vectors) < n {
		n = len(vectors)
	}
	for i := 0; i < n; i++ {
		v := vectors[i]
		t := 0.0
		if maxMag > 0 {
			t = v.Norm() / maxMag
		}
		p := points[i]
		drawSegment(s, pr, p, p.Add(v, sc.GlyphScale), 1, Ramp(t))
	}
}

func drawSegment(s surface.Surface, pr Projector, a, b field.Point, width float64, clr color.Color) {
	x0, y0, _, ok0 := pr.Project(a)
	x1, y1, _, ok1 := pr.Project(b)
	if !ok0 || !ok1 {
		return
	}
	s.Line(x0, y0, x1, y1, width, clr)
}
