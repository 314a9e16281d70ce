package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// mp3Channels is fixed by go-mp3, which always produces 16-bit stereo.
const mp3Channels = 2

// WAV format tags for integer PCM.
const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// SupportedExtensions lists the accepted upload types without the dot.
var SupportedExtensions = []string{"wav", "mp3"}

// Supported reports whether ext (with or without a leading dot) is an
// accepted audio type.
func Supported(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Decode reads a WAV or MP3 stream, mixes it down to mono and normalizes it.
func Decode(r io.Reader, ext string) (*Buffer, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading audio: %w", err)
	}
	var (
		samples    []float64
		sampleRate int
	)
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "wav":
		samples, sampleRate, err = decodeWAV(raw)
	case "mp3":
		samples, sampleRate, err = decodeMP3(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrNoAudio
	}
	return NewBuffer(Normalize(samples), sampleRate), nil
}

func decodeWAV(raw []byte) ([]float64, int, error) {
	dec := wav.NewDecoder(bytes.NewReader(raw))
	if !dec.IsValidFile() {
		return nil, 0, errors.New("invalid WAV file")
	}
	if f := dec.WavAudioFormat; f != wavFormatPCM && f != wavFormatExtensible {
		return nil, 0, fmt.Errorf("%w: WAV format tag %d is not integer PCM", ErrUnsupportedFormat, f)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decoding wav: %w", err)
	}
	if buf == nil || buf.Format == nil {
		return nil, 0, errors.New("wav has no format chunk")
	}
	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(dec.BitDepth)
	}
	if bitDepth == 0 {
		return nil, 0, errors.New("unknown bit depth for WAV file")
	}
	return mixDownInts(buf, bitDepth), buf.Format.SampleRate, nil
}

// mixDownInts averages interleaved integer frames into mono floats in
// [-1, 1] for the source bit depth. 8-bit WAV samples are unsigned and
// centred on 128.
func mixDownInts(buf *goaudio.IntBuffer, bitDepth int) []float64 {
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	scale := math.Pow(2, float64(bitDepth-1))
	offset := 0
	if bitDepth == 8 {
		offset = 128
	}
	frames := len(buf.Data) / channels
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0
		for ch := 0; ch < channels; ch++ {
			sum += buf.Data[i*channels+ch] - offset
		}
		out[i] = float64(sum) / float64(channels) / scale
	}
	return out
}

func decodeMP3(raw []byte) ([]float64, int, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(raw))
	if err != nil {
		return nil, 0, fmt.Errorf("decoding mp3: %w", err)
	}
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, 0, fmt.Errorf("reading decoded mp3: %w", err)
	}
	return mixDownPCM16(pcm, mp3Channels), dec.SampleRate(), nil
}

// mixDownPCM16 converts interleaved little-endian int16 frames to mono.
func mixDownPCM16(pcm []byte, channels int) []float64 {
	frameBytes := 2 * channels
	frames := len(pcm) / frameBytes
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			off := i*frameBytes + ch*2
			sum += float64(int16(binary.LittleEndian.Uint16(pcm[off : off+2])))
		}
		out[i] = sum / float64(channels) / 32768.0
	}
	return out
}
