package field

import "math"

// Slider is a bounded, stepped control value.
type Slider struct {
	Label string
	Min   float64
	Max   float64
	Step  float64
	Value float64
}

// Set clamps v into [Min, Max] and snaps it to the nearest step above Min.
func (s *Slider) Set(v float64) {
	if v < s.Min {
		v = s.Min
	} else if v > s.Max {
		v = s.Max
	}
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
		if v > s.Max {
			v = s.Max
		}
	}
	s.Value = v
}

// SetFraction maps a slider position in [0, 1] onto the value range.
func (s *Slider) SetFraction(f float64) {
	s.Set(s.Min + f*(s.Max-s.Min))
}

// Fraction reports where Value sits within the range.
func (s *Slider) Fraction() float64 {
	if s.Max <= s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// Nudge moves the value by n steps.
func (s *Slider) Nudge(n int) {
	s.Set(s.Value + float64(n)*s.Step)
}

// Params holds the user-adjustable simulation controls.
type Params struct {
	Length     Slider
	Frequency  Slider
	MaxCurrent Slider
	MinCurrent Slider
}

// DefaultParams returns the controls at their initial positions.
func DefaultParams() Params {
	return Params{
		Length:     Slider{Label: "Antenna Length (m)", Min: 0.2, Max: 2.0, Step: 0.1, Value: 1.0},
		Frequency:  Slider{Label: "Frequency (Hz)", Min: 0.1, Max: 5.0, Step: 0.1, Value: 1.0},
		MaxCurrent: Slider{Label: "Max Current (A)", Min: 0.5, Max: 3.0, Step: 0.1, Value: 1.0},
		MinCurrent: Slider{Label: "Min Current (A)", Min: 0.0, Max: 0.5, Step: 0.05, Value: 0.1},
	}
}

// Sliders returns the controls in display order.
func (p *Params) Sliders() []*Slider {
	return []*Slider{&p.Length, &p.Frequency, &p.MaxCurrent, &p.MinCurrent}
}

// Amplitude maps an audio envelope in [0, 1] onto the current range.
func (p *Params) Amplitude(envelope float64) float64 {
	if envelope < 0 {
		envelope = 0
	} else if envelope > 1 {
		envelope = 1
	}
	lo, hi := p.MinCurrent.Value, p.MaxCurrent.Value
	return lo + (hi-lo)*envelope
}
