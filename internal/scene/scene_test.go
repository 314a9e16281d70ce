package scene

import (
	"image/color"
	"math"
	"testing"

	"github.com/mathematicalguy/audio-antenna-Simulator/internal/field"
	"github.com/mathematicalguy/audio-antenna-Simulator/internal/surface"
)

func TestIsoCameraPosition(t *testing.T) {
	p := IsoCamera().Position()
	if math.Abs(p.X-5) > 1e-9 || math.Abs(p.Y-5) > 1e-9 || math.Abs(p.Z-5) > 1e-9 {
		t.Fatalf("iso camera at %+v, want (5,5,5)", p)
	}
}

func TestProjectFocalPointToCentre(t *testing.T) {
	pr := IsoCamera().Projector(800, 400)
	x, y, depth, ok := pr.Project(field.Point{})
	if !ok {
		t.Fatal("origin should be visible")
	}
	if math.Abs(x-400) > 1e-9 || math.Abs(y-200) > 1e-9 {
		t.Fatalf("origin projected to (%v, %v), want centre", x, y)
	}
	if math.Abs(depth-math.Sqrt(75)) > 1e-9 {
		t.Fatalf("depth = %v", depth)
	}
	// +Z is up on screen
	_, yUp, _, _ := pr.Project(field.Point{Z: 1})
	if yUp >= y {
		t.Fatalf("point above origin projected lower (%v >= %v)", yUp, y)
	}
}

func TestProjectHorizontalOffset(t *testing.T) {
	pr := IsoCamera().Projector(800, 400)
	// (-1, 1, 0) is along the camera's right axis for the iso view.
	x, y, _, ok := pr.Project(field.Point{X: -1, Y: 1})
	if !ok {
		t.Fatal("point should be visible")
	}
	if x <= 400 || math.Abs(y-200) > 1e-9 {
		t.Fatalf("right-axis point projected to (%v, %v)", x, y)
	}
	// pinhole: offset = |p| / depth * (h/2) / tan(fov/2)
	want := 400 + math.Sqrt2/math.Sqrt(75)*200/math.Tan(IsoCamera().FOV/2)
	if math.Abs(x-want) > 1e-6 {
		t.Fatalf("x = %v, want %v", x, want)
	}
}

func TestProjectBehindCamera(t *testing.T) {
	pr := IsoCamera().Projector(100, 100)
	if _, _, _, ok := pr.Project(field.Point{X: 20, Y: 20, Z: 20}); ok {
		t.Fatal("point behind the camera reported visible")
	}
}

func TestOrbitClampsElevation(t *testing.T) {
	c := IsoCamera()
	c.Orbit(0, 10)
	if c.Elevation >= math.Pi/2 {
		t.Fatalf("elevation %v not clamped", c.Elevation)
	}
	c.Zoom(1000)
	if c.Distance != maxDistance {
		t.Fatalf("distance %v not clamped", c.Distance)
	}
}

func TestRampEnds(t *testing.T) {
	if c := Ramp(0); c.B != 255 || c.R != 0 {
		t.Fatalf("weak colour = %v, want blue", c)
	}
	if c := Ramp(1); c.R != 255 || c.B != 0 || c.G != 0 {
		t.Fatalf("strong colour = %v, want red", c)
	}
	if Ramp(-1) != Ramp(0) || Ramp(7) != Ramp(1) {
		t.Fatal("ramp input not clamped")
	}
}

func TestDrawRendersGlyphsAndAntenna(t *testing.T) {
	sc := New(1)
	pts := field.GenerateLattice(3, 6, 4, 3)
	sampler := field.NewSampler(pts, nil)
	if err := sampler.Update(0.25, 1, 1); err != nil {
		t.Fatal(err)
	}
	im := surface.NewImage(200, 100)
	sc.Draw(im, sampler.Points(), sampler.Vectors(), 1)
	bg := color.RGBAModel.Convert(Background).(color.RGBA)
	lit := 0
	for i := 0; i < len(im.RGBA.Pix); i += 4 {
		if im.RGBA.Pix[i] != bg.R || im.RGBA.Pix[i+1] != bg.G || im.RGBA.Pix[i+2] != bg.B {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("scene drew nothing")
	}
	near := false
	for y := 46; y <= 54 && !near; y++ {
		for x := 96; x <= 104; x++ {
			if im.RGBA.RGBAAt(x, y) != bg {
				near = true
				break
			}
		}
	}
	if !near {
		t.Fatal("antenna not drawn around the image centre")
	}
}

func TestSetAntennaLength(t *testing.T) {
	sc := New(1)
	first := sc.Antenna
	sc.SetAntennaLength(1)
	if sc.Antenna != first {
		t.Fatal("unchanged length rebuilt the antenna")
	}
	sc.SetAntennaLength(1.5)
	if sc.Antenna.Length != 1.5 {
		t.Fatalf("antenna length = %v", sc.Antenna.Length)
	}
}
