// Package scene projects the antenna and the field glyphs onto a 2D surface.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/mathematicalguy/audio-antenna-Simulator/internal/field"
)

const (
	nearPlane     = 0.05
	farPlane      = 1000.0
	minElevation  = -math.Pi/2 + 0.01
	maxElevation  = math.Pi/2 - 0.01
	minDistance   = 1.0
	maxDistance   = 40.0
	defaultFOVDeg = 30.0
)

// Camera is an orbiting perspective camera looking at a focal point with +Z
// up.
type Camera struct {
	Focal     field.Point
	Distance  float64
	Azimuth   float64
	Elevation float64
	FOV       float64 // vertical, radians
}

// IsoCamera returns the default view from (5, 5, 5) towards the origin.
func IsoCamera() Camera {
	d := math.Sqrt(75)
	return Camera{
		Distance:  d,
		Azimuth:   math.Pi / 4,
		Elevation: math.Asin(5 / d),
		FOV:       defaultFOVDeg * math.Pi / 180,
	}
}

// Position returns the eye position in world space.
func (c Camera) Position() field.Point {
	ce := math.Cos(c.Elevation)
	return field.Point{
		X: c.Focal.X + c.Distance*ce*math.Cos(c.Azimuth),
		Y: c.Focal.Y + c.Distance*ce*math.Sin(c.Azimuth),
		Z: c.Focal.Z + c.Distance*math.Sin(c.Elevation),
	}
}

// Orbit rotates the camera around the focal point.
func (c *Camera) Orbit(dAzimuth, dElevation float64) {
	c.Azimuth = math.Mod(c.Azimuth+dAzimuth, 2*math.Pi)
	c.Elevation = math.Max(minElevation, math.Min(maxElevation, c.Elevation+dElevation))
}

// Zoom scales the viewing distance by factor.
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.Distance = math.Max(minDistance, math.Min(maxDistance, c.Distance*factor))
}

func vec(p field.Point) mgl64.Vec3 { return mgl64.Vec3{p.X, p.Y, p.Z} }

// Projector maps world points to pixels for a fixed camera and viewport.
type Projector struct {
	view, proj    mgl64.Mat4
	width, height float64
}

// Projector prepares the view and projection matrices for a width x height
// viewport.
func (c Camera) Projector(width, height int) Projector {
	fov := c.FOV
	if fov <= 0 {
		fov = defaultFOVDeg * math.Pi / 180
	}
	aspect := 1.0
	if height > 0 {
		aspect = float64(width) / float64(height)
	}
	return Projector{
		view:   mgl64.LookAtV(vec(c.Position()), vec(c.Focal), mgl64.Vec3{0, 0, 1}),
		proj:   mgl64.Perspective(fov, aspect, nearPlane, farPlane),
		width:  float64(width),
		height: float64(height),
	}
}

// Project returns the pixel position and view depth of p. ok is false for
// points behind the near plane.
func (pr Projector) Project(p field.Point) (x, y, depth float64, ok bool) {
	eye := pr.view.Mul4x1(vec(p).Vec4(1))
	depth = -eye.Z()
	if depth < nearPlane {
		return 0, 0, depth, false
	}
	clip := pr.proj.Mul4x1(eye)
	x = (clip.X()/clip.W() + 1) / 2 * pr.width
	y = (1 - clip.Y()/clip.W()) / 2 * pr.height
	return x, y, depth, true
}
