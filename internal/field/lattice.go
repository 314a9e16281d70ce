// Package field samples a simplified oscillating dipole field over a fixed
// spherical lattice around the antenna.
package field

import "math"

// Default lattice dimensions used by the viewer and the frame renderer.
const (
	DefaultRadialSteps  = 10
	DefaultAzimuthSteps = 30
	DefaultPolarSteps   = 15
	DefaultMaxRadius    = 3.0
)

// Point is a fixed sample position in 3D space.
type Point struct {
	X, Y, Z float64
}

// Norm returns the distance of p from the origin.
func (p Point) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Add returns p offset by v scaled by s.
func (p Point) Add(v Vector, s float64) Point {
	return Point{X: p.X + v.X*s, Y: p.Y + v.Y*s, Z: p.Z + v.Z*s}
}

// GenerateLattice builds radialSteps*azimuthSteps*polarSteps points on
// concentric spherical shells. Shells start one step out from the origin, so
// the innermost shell sits at maxRadius/radialSteps and the outermost at
// maxRadius. Any non-positive step count yields an empty lattice.
func GenerateLattice(radialSteps, azimuthSteps, polarSteps int, maxRadius float64) []Point {
	if radialSteps <= 0 || azimuthSteps <= 0 || polarSteps <= 0 {
		return nil
	}
	points := make([]Point, 0, radialSteps*azimuthSteps*polarSteps)
	for r := 1; r <= radialSteps; r++ {
		radius := float64(r) / float64(radialSteps) * maxRadius
		for a := 0; a < azimuthSteps; a++ {
			azimuth := float64(a) / float64(azimuthSteps) * 2 * math.Pi
			sinAz, cosAz := math.Sincos(azimuth)
			for p := 0; p < polarSteps; p++ {
				polar := float64(p) / float64(polarSteps) * math.Pi
				sinPol, cosPol := math.Sincos(polar)
				points = append(points, Point{
					X: radius * sinPol * cosAz,
					Y: radius * sinPol * sinAz,
					Z: radius * cosPol,
				})
			}
		}
	}
	return points
}

// DefaultLattice returns the lattice shown by the viewer.
func DefaultLattice() []Point {
	return GenerateLattice(DefaultRadialSteps, DefaultAzimuthSteps, DefaultPolarSteps, DefaultMaxRadius)
}
