package audio

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// Spectrum is the magnitude spectrum of a recording over the positive
// frequencies.
type Spectrum struct {
	Frequencies []float64
	Magnitudes  []float64
}

// MaxSpectrumWindow caps the FFT length. It is a power of two so long
// recordings take the radix-2 path.
const MaxSpectrumWindow = 1 << 16

// ComputeSpectrum runs a real FFT over samples and keeps the first half of
// the bins. Recordings longer than MaxSpectrumWindow are analysed over the
// window centred on their loudest sample.
func ComputeSpectrum(samples []float64, sampleRate int) Spectrum {
	if len(samples) == 0 || sampleRate <= 0 {
		return Spectrum{}
	}
	samples = spectrumWindow(samples)
	n := len(samples)
	bins := fft.FFTReal(samples)
	half := n / 2
	if half == 0 {
		half = 1
	}
	s := Spectrum{
		Frequencies: make([]float64, half),
		Magnitudes:  make([]float64, half),
	}
	if half > 1 {
		floats.Span(s.Frequencies, 0, float64(half-1)*float64(sampleRate)/float64(n))
	}
	for i := 0; i < half; i++ {
		s.Magnitudes[i] = cmplx.Abs(bins[i])
	}
	return s
}

// PeakFrequency returns the frequency of the strongest non-DC bin.
func (s Spectrum) PeakFrequency() float64 {
	best, bestMag := 0.0, -1.0
	for i := 1; i < len(s.Magnitudes); i++ {
		if s.Magnitudes[i] > bestMag {
			best, bestMag = s.Frequencies[i], s.Magnitudes[i]
		}
	}
	return best
}

func spectrumWindow(samples []float64) []float64 {
	if len(samples) <= MaxSpectrumWindow {
		return samples
	}
	loudest, peak := 0, -1.0
	for i, v := range samples {
		if a := math.Abs(v); a > peak {
			loudest, peak = i, a
		}
	}
	lo := loudest - MaxSpectrumWindow/2
	if lo < 0 {
		lo = 0
	}
	if hi := len(samples) - MaxSpectrumWindow; lo > hi {
		lo = hi
	}
	return samples[lo : lo+MaxSpectrumWindow]
}
