package waveform

import "github.com/guptarohit/asciigraph"

// ASCII plots samples for a terminal, resampled to at most width columns.
func ASCII(samples []float64, width, height int, caption string) string {
	if len(samples) == 0 {
		return ""
	}
	opts := []asciigraph.Option{asciigraph.Height(height)}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	if caption != "" {
		opts = append(opts, asciigraph.Caption(caption))
	}
	return asciigraph.Plot(samples, opts...)
}
