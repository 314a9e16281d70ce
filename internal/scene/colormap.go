package scene

import (
	"image/color"
	"math"
)

// Hue range of the glyph colour ramp: blue for weak, red for strong.
const (
	hueLow  = 2.0 / 3
	hueHigh = 0.0
)

// Ramp maps t in [0, 1] onto the blue-to-red hue ramp at full saturation
// and value.
func Ramp(t float64) color.RGBA {
	if math.IsNaN(t) || t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	h := hueLow + (hueHigh-hueLow)*t
	return hsvToRGB(h, 1, 1)
}

func hsvToRGB(h, s, v float64) color.RGBA {
	h = math.Mod(h, 1) * 6
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	var r, g, b float64
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return color.RGBA{uint8(math.Round(r * 255)), uint8(math.Round(g * 255)), uint8(math.Round(b * 255)), 255}
}
