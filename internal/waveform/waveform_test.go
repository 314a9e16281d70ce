package waveform

import (
	"image/color"
	"math"
	"strings"
	"testing"
)

type line struct {
	x0, y0, x1, y1, width float64
	c                     color.Color
}

type recorder struct {
	w, h   int
	clears int
	lines  []line
}

func (r *recorder) Size() (int, int)    { return r.w, r.h }
func (r *recorder) Clear(_ color.Color) { r.clears++ }
func (r *recorder) Line(x0, y0, x1, y1, width float64, c color.Color) {
	r.lines = append(r.lines, line{x0, y0, x1, y1, width, c})
}

func (r *recorder) linesOf(c color.Color) []line {
	var out []line
	for _, l := range r.lines {
		if l.c == c {
			out = append(out, l)
		}
	}
	return out
}

func TestVerticesSignConvention(t *testing.T) {
	verts := Vertices([]float64{0, 1, -1, 0}, 400, 200)
	want := []Vertex{{0, 100}, {100, 200}, {200, 0}, {300, 100}}
	if len(verts) != len(want) {
		t.Fatalf("got %d vertices, want %d", len(verts), len(want))
	}
	for i := range want {
		if verts[i] != want[i] {
			t.Fatalf("vertex %d = %+v, want %+v", i, verts[i], want[i])
		}
	}
}

func TestRenderDrawsPolylineGridAndCursor(t *testing.T) {
	r := &recorder{w: 400, h: 200}
	Render(r, []float64{0, 1, -1, 0}, 150)
	if r.clears != 1 {
		t.Fatalf("clears = %d, want 1", r.clears)
	}
	if got := len(r.linesOf(GridColor)); got != 200/GridSpacing+400/GridSpacing {
		t.Fatalf("grid lines = %d, want %d", got, 200/GridSpacing+400/GridSpacing)
	}
	wave := r.linesOf(WaveColor)
	if len(wave) != 3 {
		t.Fatalf("polyline segments = %d, want 3", len(wave))
	}
	if wave[0].x1 != 100 || wave[0].y1 != 200 || wave[1].x1 != 200 || wave[1].y1 != 0 {
		t.Fatalf("unexpected polyline %+v", wave)
	}
	cursor := r.linesOf(CursorColor)
	if len(cursor) != 1 || cursor[0].x0 != 150 || cursor[0].x1 != 150 || cursor[0].y1 != 200 {
		t.Fatalf("unexpected cursor %+v", cursor)
	}
	// cursor is drawn last so it stays on top of the waveform
	if last := r.lines[len(r.lines)-1]; last.c != CursorColor {
		t.Fatal("cursor not drawn last")
	}
}

func TestRenderEmptyIsNoop(t *testing.T) {
	r := &recorder{w: 100, h: 50}
	Render(r, nil, 10)
	Render(r, []float64{}, 10)
	if r.clears != 0 || len(r.lines) != 0 {
		t.Fatalf("expected no drawing, got %d clears and %d lines", r.clears, len(r.lines))
	}
	Render(nil, []float64{1}, 0)
}

func TestPixelToTimeEndpoints(t *testing.T) {
	for _, w := range []float64{1, 37, 400, 1920} {
		for _, d := range []float64{0.5, 3, 120} {
			if got := PixelToTime(0, w, d); got != 0 {
				t.Fatalf("PixelToTime(0, %v, %v) = %v", w, d, got)
			}
			if got := PixelToTime(w, w, d); math.Abs(got-d) > 1e-12 {
				t.Fatalf("PixelToTime(%v, %v, %v) = %v", w, w, d, got)
			}
		}
	}
}

func TestPixelToTimeClamps(t *testing.T) {
	if got := PixelToTime(-20, 100, 4); got != 0 {
		t.Fatalf("negative pixel = %v, want 0", got)
	}
	if got := PixelToTime(250, 100, 4); got != 4 {
		t.Fatalf("pixel past width = %v, want 4", got)
	}
	if got := PixelToTime(10, 0, 4); got != 0 {
		t.Fatalf("zero width = %v, want 0", got)
	}
}

func TestTimePixelRoundTrip(t *testing.T) {
	const w, d = 733.0, 12.5
	for x := 0.0; x <= w; x += 3.7 {
		back := TimeToPixel(PixelToTime(x, w, d), w, d)
		if math.Abs(back-x) > 1e-9 {
			t.Fatalf("round trip of %v gave %v", x, back)
		}
	}
}

func TestFormatTime(t *testing.T) {
	cases := map[float64]string{0: "0:00", 5.9: "0:05", 65: "1:05", 600: "10:00", -3: "0:00"}
	for in, want := range cases {
		if got := FormatTime(in); got != want {
			t.Fatalf("FormatTime(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestASCII(t *testing.T) {
	if ASCII(nil, 10, 5, "") != "" {
		t.Fatal("empty samples should produce empty plot")
	}
	out := ASCII([]float64{0, 1, -1, 0.5}, 20, 4, "Audio Waveform")
	if !strings.Contains(out, "Audio Waveform") {
		t.Fatalf("caption missing from plot:\n%s", out)
	}
}
