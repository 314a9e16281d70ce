package main

import "time"

// Window layout, timing and audio constants for the viewer. The 3D view
// fills the top of the window, the waveform strip sits under it and a one
// line status bar closes the bottom.
const (
	screenWidth         = 1000
	sceneHeight         = 520
	waveformHeight      = 160
	statusHeight        = 20
	screenHeight        = sceneHeight + waveformHeight + statusHeight
	windowScale         = 1
	defaultTPS          = 60
	envelopeWindow      = 0.05 // seconds
	orbitStep           = 0.02 // radians per tick
	zoomStep            = 1.05
	autoOrbitMinFrames  = 30
	autoOrbitMaxFrames  = 120
	hoverMarkerWidth    = 1
	uploadTimeout       = 2 * time.Minute
	pgoRecordDuration   = 15 * time.Second
	audioSampleRate     = 48000
	audioBufferDuration = 80 * time.Millisecond
	asciiWidth          = 72
	asciiHeight         = 12
	headlessLogEvery    = time.Second
)
