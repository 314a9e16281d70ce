package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/mathematicalguy/audio-antenna-Simulator/internal/audio"
	"github.com/mathematicalguy/audio-antenna-Simulator/internal/client"
	"github.com/mathematicalguy/audio-antenna-Simulator/internal/field"
	"github.com/mathematicalguy/audio-antenna-Simulator/internal/playback"
	"github.com/mathematicalguy/audio-antenna-Simulator/internal/waveform"
)

// runHeadless uploads the -file path, prints the waveform to the terminal,
// writes any returned frames and then plays the field back in real time,
// logging its level once a second.
func runHeadless() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := newClient()
	res, err := c.Upload(ctx, *fileFlag)
	if err != nil {
		return err
	}
	caption := fmt.Sprintf("%s  %s  %d points", res.Filename, waveform.FormatTime(res.Duration), len(res.AudioData))
	fmt.Println(waveform.ASCII(res.AudioData, asciiWidth, asciiHeight, caption))

	if res.Kind() == client.KindFrames {
		if err := writeFrames(res); err != nil {
			return err
		}
	}
	if res.Duration <= 0 || len(res.AudioData) == 0 {
		return nil
	}
	return playHeadless(ctx, res)
}

func writeFrames(res *client.Response) error {
	dir, err := homedir.Expand(*outDirFlag)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	for i, s := range res.VisualizationFrames {
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return fmt.Errorf("%w: frame %d: %v", client.ErrMalformedResponse, i, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("frame_%03d.png", i))
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if res.AudioPlot != "" {
		raw, err := base64.StdEncoding.DecodeString(res.AudioPlot)
		if err != nil {
			return fmt.Errorf("%w: audio plot: %v", client.ErrMalformedResponse, err)
		}
		if err := os.WriteFile(filepath.Join(dir, "waveform.png"), raw, 0o644); err != nil {
			return fmt.Errorf("writing waveform plot: %w", err)
		}
	}
	log.Printf("Wrote %d frames to %s", len(res.VisualizationFrames), dir)
	return nil
}

// playHeadless runs the transport once through the audio on a timer and
// evaluates the field at each tick.
func playHeadless(ctx context.Context, res *client.Response) error {
	params := field.DefaultParams()
	sampler := field.NewSampler(field.GenerateLattice(*radialStepsFlag, *azimuthStepsFlag, *polarStepsFlag, field.DefaultMaxRadius), nil)
	rate := int(float64(len(res.AudioData))/res.Duration + 0.5)
	if rate < 1 {
		rate = 1
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(res.Duration*float64(time.Second)))
	defer cancel()
	var lastLog time.Time
	tr := playback.New(res.Duration,
		playback.WithFPS(defaultTPS),
		playback.OnTime(func(t float64) {
			amp := params.Amplitude(audio.Envelope(res.AudioData, rate, t, envelopeWindow))
			if err := sampler.Update(t, params.Frequency.Value, amp); err != nil {
				log.Printf("Field update error: %v", err)
			}
			if time.Since(lastLog) < headlessLogEvery {
				return
			}
			lastLog = time.Now()
			peak := 0.0
			for _, v := range sampler.Vectors() {
				peak = max(peak, v.Norm())
			}
			log.Printf("%s  amplitude %.2f A  peak |E| %.3f", waveform.FormatTime(t), amp, peak)
		}),
	)
	h := tr.Play()
	defer h.Cancel()
	playback.RunTimer(ctx, tr)
	return nil
}
