// Package server implements the upload endpoint that decodes audio and
// returns samples or pre-rendered field frames, plus a websocket feed of live
// field vectors.
package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// Defaults for the upload server.
const (
	DefaultAddr           = ":5000"
	DefaultUploadDir      = "uploads"
	DefaultMaxUploadBytes = 16 << 20
	DefaultFrameCount     = 30
	DefaultFrameWidth     = 800
	DefaultFrameHeight    = 400
	DefaultPlotWidth      = 1000
	DefaultPlotHeight     = 400
	DefaultWaveformPoints = 2000
	DefaultStreamFPS      = 30
	initialWaveformPoints = 100
)

// Config holds the server settings. Zero fields are replaced by defaults in
// Resolve.
type Config struct {
	Addr           string
	UploadDir      string
	MaxUploadBytes int64
	FrameCount     int
	FrameWidth     int
	FrameHeight    int
	PlotWidth      int
	PlotHeight     int
	WaveformPoints int
	StreamFPS      int
	// AlwaysFrames renders visualization frames even when the client did
	// not ask for them.
	AlwaysFrames bool
}

// DefaultConfig returns a config populated with the defaults.
func DefaultConfig() Config {
	return Config{
		Addr:           DefaultAddr,
		UploadDir:      DefaultUploadDir,
		MaxUploadBytes: DefaultMaxUploadBytes,
		FrameCount:     DefaultFrameCount,
		FrameWidth:     DefaultFrameWidth,
		FrameHeight:    DefaultFrameHeight,
		PlotWidth:      DefaultPlotWidth,
		PlotHeight:     DefaultPlotHeight,
		WaveformPoints: DefaultWaveformPoints,
		StreamFPS:      DefaultStreamFPS,
	}
}

// Resolve fills unset fields, expands ~ in the upload directory and makes
// sure the directory exists.
func (c *Config) Resolve() error {
	d := DefaultConfig()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.UploadDir == "" {
		c.UploadDir = d.UploadDir
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = d.MaxUploadBytes
	}
	if c.FrameCount <= 0 {
		c.FrameCount = d.FrameCount
	}
	if c.FrameWidth <= 0 || c.FrameHeight <= 0 {
		c.FrameWidth, c.FrameHeight = d.FrameWidth, d.FrameHeight
	}
	if c.PlotWidth <= 0 || c.PlotHeight <= 0 {
		c.PlotWidth, c.PlotHeight = d.PlotWidth, d.PlotHeight
	}
	if c.WaveformPoints <= 0 {
		c.WaveformPoints = d.WaveformPoints
	}
	if c.StreamFPS <= 0 {
		c.StreamFPS = d.StreamFPS
	}
	dir, err := homedir.Expand(c.UploadDir)
	if err != nil {
		return fmt.Errorf("expanding upload dir %q: %w", c.UploadDir, err)
	}
	dir, err = filepath.Abs(os.ExpandEnv(dir))
	if err != nil {
		return fmt.Errorf("resolving upload dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating upload dir: %w", err)
	}
	c.UploadDir = dir
	return nil
}
