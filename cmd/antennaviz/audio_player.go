package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/mitchellh/go-homedir"
)

// localAudio plays an uploaded file through the speakers and keeps the mono
// samples around so the field envelope can use the full resolution signal.
type localAudio struct {
	player  *audio.Player
	samples []float64
}

// loadLocalAudio decodes the WAV or MP3 at path at the context's sample rate.
func loadLocalAudio(ctx *audio.Context, path string) (*localAudio, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var stream io.Reader
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(raw))
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(raw))
	default:
		return nil, fmt.Errorf("no local decoder for %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("reading decoded %q: %w", path, err)
	}
	samples := decodeStereoI16ToMono(pcm)
	if len(samples) == 0 {
		return nil, fmt.Errorf("%q has no usable samples", path)
	}

	player := ctx.NewPlayerFromBytes(pcm)
	player.SetBufferSize(audioBufferDuration)
	return &localAudio{player: player, samples: samples}, nil
}

func decodeStereoI16ToMono(pcm []byte) []float64 {
	frameCount := len(pcm) / 4
	if frameCount == 0 {
		return nil
	}
	samples := make([]float64, frameCount)
	for i := 0; i < frameCount; i++ {
		offset := i * 4
		left := int16(binary.LittleEndian.Uint16(pcm[offset : offset+2]))
		right := int16(binary.LittleEndian.Uint16(pcm[offset+2 : offset+4]))
		samples[i] = (float64(left) + float64(right)) * (0.5 / 32768.0)
	}
	return samples
}

func (a *localAudio) setPlaying(playing bool) {
	if playing {
		a.player.Play()
	} else {
		a.player.Pause()
	}
}

// seek moves playback to t seconds. Small drift against the cursor is
// tolerated.
func (a *localAudio) seek(t float64) {
	if err := a.player.SetPosition(time.Duration(t * float64(time.Second))); err != nil {
		log.Printf("Audio seek failed: %v", err)
	}
}

func (a *localAudio) Close() error {
	return a.player.Close()
}
