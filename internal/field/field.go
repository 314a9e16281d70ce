package field

import "math"

// minDistance floors the attenuation distance so points near the origin do
// not blow up.
const minDistance = 0.5

// Vector is the direction and magnitude of the field at one Point.
type Vector struct {
	X, Y, Z float64
}

// Norm returns the magnitude of v.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// ComputeFieldAt evaluates the field at p. The x/y components follow
// sin(phase) and z follows cos(phase), which makes the glyphs appear to
// rotate as time advances.
func ComputeFieldAt(p Point, time, frequency, amplitude float64) Vector {
	d := p.Norm()
	phase := 2 * math.Pi * (frequency*time - d)
	mag := amplitude / math.Max(minDistance, d)
	s, c := math.Sincos(phase)
	return Vector{
		X: p.X * mag * s,
		Y: p.Y * mag * s,
		Z: p.Z * mag * c,
	}
}

// MaxMagnitude is the largest |ComputeFieldAt| can get for the given
// amplitude: the |p| factor cancels the 1/|p| attenuation beyond the floor
// and is smaller than it inside. Glyph colours are normalized against it.
func MaxMagnitude(amplitude float64) float64 {
	return math.Abs(amplitude)
}
