package waveform

import (
	"fmt"
	"math"
)

// PixelToTime converts a horizontal pixel offset into a playback time,
// clamped to [0, duration].
func PixelToTime(pixelX, surfaceWidth, duration float64) float64 {
	if surfaceWidth <= 0 || duration <= 0 {
		return 0
	}
	t := pixelX / surfaceWidth * duration
	return math.Max(0, math.Min(t, duration))
}

// TimeToPixel is the inverse of PixelToTime.
func TimeToPixel(time, surfaceWidth, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	t := math.Max(0, math.Min(time, duration))
	return t / duration * surfaceWidth
}

// FormatTime renders seconds as m:ss.
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	minutes := int(seconds / 60)
	rest := int(math.Mod(seconds, 60))
	return fmt.Sprintf("%d:%02d", minutes, rest)
}
