package field

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateLatticeCountAndRadius(t *testing.T) {
	cases := []struct{ r, a, p int }{
		{1, 1, 1}, {2, 3, 4}, {10, 30, 15}, {5, 1, 7},
	}
	for _, c := range cases {
		const maxRadius = 3.0
		pts := GenerateLattice(c.r, c.a, c.p, maxRadius)
		if len(pts) != c.r*c.a*c.p {
			t.Fatalf("lattice %v: got %d points, want %d", c, len(pts), c.r*c.a*c.p)
		}
		for i, p := range pts {
			if d := p.Norm(); d > maxRadius+1e-9 {
				t.Fatalf("lattice %v: point %d at distance %f beyond %f", c, i, d, maxRadius)
			}
		}
	}
}

func TestGenerateLatticeShellsAndOrdering(t *testing.T) {
	pts := GenerateLattice(2, 4, 2, 2.0)
	// first point: r=1 -> radius 1, azimuth 0, polar 0 -> straight up
	if p := pts[0]; math.Abs(p.Z-1) > 1e-12 || math.Abs(p.X) > 1e-12 || math.Abs(p.Y) > 1e-12 {
		t.Fatalf("first point = %+v, want (0,0,1)", p)
	}
	// polar is the innermost loop: second point has polar pi/2, azimuth 0
	if p := pts[1]; math.Abs(p.X-1) > 1e-12 || math.Abs(p.Z) > 1e-12 {
		t.Fatalf("second point = %+v, want (1,0,0)", p)
	}
	last := pts[len(pts)-1]
	if math.Abs(last.Norm()-2.0) > 1e-12 {
		t.Fatalf("outer shell radius = %f, want 2", last.Norm())
	}
}

func TestGenerateLatticeEmpty(t *testing.T) {
	if pts := GenerateLattice(0, 3, 3, 1); len(pts) != 0 {
		t.Fatalf("expected empty lattice, got %d points", len(pts))
	}
	if pts := GenerateLattice(3, -1, 3, 1); len(pts) != 0 {
		t.Fatalf("expected empty lattice, got %d points", len(pts))
	}
}

func TestComputeFieldAtBounded(t *testing.T) {
	pts := append(DefaultLattice(), Point{}, Point{X: 0.1}, Point{Z: 0.49}, Point{X: 0.3, Y: 0.3, Z: 0.3})
	for _, amp := range []float64{0, 0.1, 1, 3} {
		for _, tm := range []float64{0, 0.125, 0.37, 2.5} {
			for _, p := range pts {
				v := ComputeFieldAt(p, tm, 1.3, amp)
				m := v.Norm()
				if m > 2*amp+1e-9 {
					t.Fatalf("magnitude %f exceeds 2*amplitude %f at %+v", m, 2*amp, p)
				}
				if m > MaxMagnitude(amp)+1e-9 {
					t.Fatalf("magnitude %f exceeds MaxMagnitude %f at %+v", m, MaxMagnitude(amp), p)
				}
			}
		}
	}
}

func TestComputeFieldAtFormula(t *testing.T) {
	p := Point{X: 1, Y: 2, Z: 2} // |p| = 3
	v := ComputeFieldAt(p, 0.5, 2, 1.5)
	phase := 2 * math.Pi * (2*0.5 - 3)
	mag := 1.5 / 3
	want := Vector{X: mag * math.Sin(phase), Y: 2 * mag * math.Sin(phase), Z: 2 * mag * math.Cos(phase)}
	if math.Abs(v.X-want.X) > 1e-12 || math.Abs(v.Y-want.Y) > 1e-12 || math.Abs(v.Z-want.Z) > 1e-12 {
		t.Fatalf("got %+v, want %+v", v, want)
	}
}

func TestComputeFieldAtOriginIsFinite(t *testing.T) {
	v := ComputeFieldAt(Point{}, 1, 1, 1)
	if v != (Vector{}) {
		t.Fatalf("origin vector = %+v, want zero", v)
	}
}

func TestSamplerUpdateMatchesPointwise(t *testing.T) {
	pts := DefaultLattice()
	s := NewSampler(pts, &CPUEvaluator{Workers: 4})
	if err := s.Update(0.7, 1.1, 0.8); err != nil {
		t.Fatal(err)
	}
	if s.Len() != len(pts) || len(s.Vectors()) != len(pts) {
		t.Fatalf("sampler size mismatch: %d vectors for %d points", len(s.Vectors()), len(pts))
	}
	first := &s.Vectors()[0]
	for i, p := range pts {
		if want := ComputeFieldAt(p, 0.7, 1.1, 0.8); s.Vectors()[i] != want {
			t.Fatalf("vector %d = %+v, want %+v", i, s.Vectors()[i], want)
		}
	}
	// a second tick must overwrite the same backing array
	if err := s.Update(1.4, 1.1, 0.8); err != nil {
		t.Fatal(err)
	}
	if &s.Vectors()[0] != first {
		t.Fatal("Update reallocated the vector slice")
	}
	if want := ComputeFieldAt(pts[len(pts)-1], 1.4, 1.1, 0.8); s.Vectors()[len(pts)-1] != want {
		t.Fatal("second update did not replace vectors")
	}
}

type failingEvaluator struct{}

func (failingEvaluator) Evaluate([]Point, []Vector, float64, float64, float64) error {
	return errTest
}

var errTest = errors.New("device lost")

func TestSamplerFallsBackToCPU(t *testing.T) {
	pts := GenerateLattice(2, 2, 2, 1)
	s := NewSampler(pts, failingEvaluator{})
	if err := s.Update(0.3, 1, 1); !errors.Is(err, errTest) {
		t.Fatalf("expected evaluator error, got %v", err)
	}
	if want := ComputeFieldAt(pts[3], 0.3, 1, 1); s.Vectors()[3] != want {
		t.Fatal("fallback did not fill vectors")
	}
}

func TestSliderSetSnapsAndClamps(t *testing.T) {
	p := DefaultParams()
	p.Frequency.Set(7)
	if math.Abs(p.Frequency.Value-5) > 1e-9 {
		t.Fatalf("frequency = %f, want clamp to 5", p.Frequency.Value)
	}
	p.MinCurrent.SetFraction(0.5)
	if math.Abs(p.MinCurrent.Value-0.25) > 1e-9 {
		t.Fatalf("min current = %f, want 0.25", p.MinCurrent.Value)
	}
	p.Length.Set(1.04)
	if math.Abs(p.Length.Value-1.0) > 1e-9 {
		t.Fatalf("length = %f, want snap to 1.0", p.Length.Value)
	}
	p.Length.Nudge(-100)
	if math.Abs(p.Length.Value-p.Length.Min) > 1e-9 {
		t.Fatalf("length = %f, want min", p.Length.Value)
	}
}

func TestParamsAmplitude(t *testing.T) {
	p := DefaultParams()
	if a := p.Amplitude(0); math.Abs(a-0.1) > 1e-12 {
		t.Fatalf("silent amplitude = %f, want min current", a)
	}
	if a := p.Amplitude(2); math.Abs(a-1.0) > 1e-12 {
		t.Fatalf("loud amplitude = %f, want max current", a)
	}
}

func TestAntennaSpansLength(t *testing.T) {
	a := NewAntenna(1.5)
	if len(a.Segments) == 0 {
		t.Fatal("antenna has no segments")
	}
	top := math.Inf(-1)
	for _, s := range a.Segments {
		top = math.Max(top, math.Max(s.A.Z, s.B.Z))
	}
	if top < 1.5 {
		t.Fatalf("antenna top at %f, want at least 1.5", top)
	}
}
