// Package audio decodes uploaded audio into normalized mono sample buffers
// and derives the values the visualizations are driven by.
package audio

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrUnsupportedFormat is returned for file types other than WAV and MP3.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrNoAudio is returned when a file decodes to zero samples.
	ErrNoAudio = errors.New("audio has no samples")
)

// Buffer is a decoded mono recording with samples normalized to [-1, 1].
// It is treated as immutable once built.
type Buffer struct {
	Samples    []float64
	SampleRate int
	Duration   float64
}

// NewBuffer wraps samples recorded at sampleRate.
func NewBuffer(samples []float64, sampleRate int) *Buffer {
	b := &Buffer{Samples: samples, SampleRate: sampleRate}
	if sampleRate > 0 {
		b.Duration = float64(len(samples)) / float64(sampleRate)
	}
	return b
}

// Normalize scales samples in place so the largest magnitude becomes 1.
// All-zero input is left untouched.
func Normalize(samples []float64) []float64 {
	peak := Peak(samples)
	if peak == 0 {
		return samples
	}
	floats.Scale(1/peak, samples)
	return samples
}

// Downsample reduces samples to at most n points. Each bucket contributes the
// value with the largest magnitude so transients survive the reduction.
func Downsample(samples []float64, n int) []float64 {
	if n <= 0 || len(samples) <= n {
		out := make([]float64, len(samples))
		copy(out, samples)
		return out
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		lo := i * len(samples) / n
		hi := (i + 1) * len(samples) / n
		best := samples[lo]
		for _, v := range samples[lo:hi] {
			if math.Abs(v) > math.Abs(best) {
				best = v
			}
		}
		out[i] = best
	}
	return out
}

// Envelope returns the peak magnitude of the samples within window seconds
// centred on t. It is the audio level that drives the field amplitude.
func Envelope(samples []float64, sampleRate int, t, window float64) float64 {
	if len(samples) == 0 || sampleRate <= 0 {
		return 0
	}
	half := int(window * float64(sampleRate) / 2)
	if half < 1 {
		half = 1
	}
	center := int(t * float64(sampleRate))
	lo, hi := center-half, center+half
	if lo < 0 {
		lo = 0
	}
	if hi > len(samples) {
		hi = len(samples)
	}
	if lo >= hi {
		return 0
	}
	peak := 0.0
	for _, v := range samples[lo:hi] {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return math.Min(peak, 1)
}

// Chunks splits samples into n equal consecutive chunks, dropping the
// remainder. It returns nil when there are fewer samples than chunks.
func Chunks(samples []float64, n int) [][]float64 {
	if n <= 0 {
		return nil
	}
	size := len(samples) / n
	if size == 0 {
		return nil
	}
	out := make([][]float64, n)
	for i := range out {
		out[i] = samples[i*size : (i+1)*size]
	}
	return out
}

// Peak returns the largest magnitude in samples.
func Peak(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	return floats.Norm(samples, math.Inf(1))
}
