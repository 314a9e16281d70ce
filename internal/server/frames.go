package server

import (
	"errors"

	"github.com/mathematicalguy/audio-antenna-Simulator/internal/audio"
	"github.com/mathematicalguy/audio-antenna-Simulator/internal/field"
	"github.com/mathematicalguy/audio-antenna-Simulator/internal/scene"
	"github.com/mathematicalguy/audio-antenna-Simulator/internal/surface"
	"github.com/mathematicalguy/audio-antenna-Simulator/internal/waveform"
)

// FrameOptions controls server side frame rendering.
type FrameOptions struct {
	Count  int
	Width  int
	Height int
	Params field.Params
}

// RenderFrames evaluates the field once per audio chunk and returns each
// rendered frame as a base64 PNG. Chunk i is shown at the middle of its time
// span with an amplitude taken from the chunk's peak level.
func RenderFrames(buf *audio.Buffer, opts FrameOptions) ([]string, error) {
	if opts.Count <= 0 {
		opts.Count = DefaultFrameCount
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = DefaultFrameWidth, DefaultFrameHeight
	}
	if opts.Params == (field.Params{}) {
		opts.Params = field.DefaultParams()
	}
	chunks := audio.Chunks(buf.Samples, opts.Count)
	if chunks == nil {
		return nil, errors.New("audio too short for the requested frame count")
	}

	sampler := field.NewSampler(field.DefaultLattice(), nil)
	sc := scene.New(opts.Params.Length.Value)
	im := surface.NewImage(opts.Width, opts.Height)
	span := buf.Duration / float64(len(chunks))
	frames := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		t := (float64(i) + 0.5) * span
		amp := opts.Params.Amplitude(audio.Peak(chunk))
		if err := sampler.Update(t, opts.Params.Frequency.Value, amp); err != nil {
			return nil, err
		}
		sc.Draw(im, sampler.Points(), sampler.Vectors(), amp)
		frame, err := im.Base64PNG()
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

// RenderPlot draws the whole recording with the waveform renderer and returns
// it as a base64 PNG.
func RenderPlot(buf *audio.Buffer, width, height int) (string, error) {
	im := surface.NewImage(width, height)
	waveform.Render(im, audio.Downsample(buf.Samples, width), waveform.HiddenCursor)
	return im.Base64PNG()
}
