package field

import "math"

const (
	antennaRadius     = 0.05
	antennaResolution = 16
)

// Segment is a straight edge of the antenna wireframe.
type Segment struct {
	A, B Point
}

// Antenna is a wireframe of a monopole: a vertical body, a wider base and a
// small sphere at the top.
type Antenna struct {
	Length   float64
	Segments []Segment
}

// NewAntenna builds the wireframe for an element of the given length with
// its base at the origin.
func NewAntenna(length float64) *Antenna {
	a := &Antenna{Length: length}
	a.Segments = append(a.Segments, cylinder(0, length, antennaRadius)...)
	a.Segments = append(a.Segments, cylinder(-length/20, length/10, antennaRadius*3)...)
	a.Segments = append(a.Segments, sphere(Point{Z: length}, antennaRadius*1.5)...)
	return a
}

// cylinder returns rings at both ends and vertical edges between them.
func cylinder(zBottom, height, radius float64) []Segment {
	segs := make([]Segment, 0, antennaResolution*3)
	zTop := zBottom + height
	for i := 0; i < antennaResolution; i++ {
		a0 := float64(i) / antennaResolution * 2 * math.Pi
		a1 := float64(i+1) / antennaResolution * 2 * math.Pi
		x0, y0 := radius*math.Cos(a0), radius*math.Sin(a0)
		x1, y1 := radius*math.Cos(a1), radius*math.Sin(a1)
		segs = append(segs,
			Segment{Point{x0, y0, zBottom}, Point{x1, y1, zBottom}},
			Segment{Point{x0, y0, zTop}, Point{x1, y1, zTop}},
			Segment{Point{x0, y0, zBottom}, Point{x0, y0, zTop}},
		)
	}
	return segs
}

// sphere returns three great circles around center.
func sphere(center Point, radius float64) []Segment {
	segs := make([]Segment, 0, antennaResolution*3)
	for i := 0; i < antennaResolution; i++ {
		a0 := float64(i) / antennaResolution * 2 * math.Pi
		a1 := float64(i+1) / antennaResolution * 2 * math.Pi
		c0, s0 := radius*math.Cos(a0), radius*math.Sin(a0)
		c1, s1 := radius*math.Cos(a1), radius*math.Sin(a1)
		segs = append(segs,
			Segment{center.Add(Vector{X: c0, Y: s0}, 1), center.Add(Vector{X: c1, Y: s1}, 1)},
			Segment{center.Add(Vector{X: c0, Z: s0}, 1), center.Add(Vector{X: c1, Z: s1}, 1)},
			Segment{center.Add(Vector{Y: c0, Z: s0}, 1), center.Add(Vector{Y: c1, Z: s1}, 1)},
		)
	}
	return segs
}
