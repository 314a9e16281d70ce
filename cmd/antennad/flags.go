package main

import (
	"flag"

	"github.com/mathematicalguy/audio-antenna-Simulator/internal/server"
)

// Command-line flags for the upload server.
var (
	// addrFlag is the listen address.
	addrFlag = flag.String("addr", server.DefaultAddr, "HTTP listen address")

	// uploadDirFlag is where uploads are staged while they are processed.
	uploadDirFlag = flag.String("upload-dir", server.DefaultUploadDir, "directory for staged uploads (~ is expanded)")

	// maxUploadMBFlag caps the request body size.
	maxUploadMBFlag = flag.Int64("max-upload-mb", server.DefaultMaxUploadBytes>>20, "largest accepted upload in MiB")

	// framesFlag and the frame size flags control server-side rendering.
	framesFlag      = flag.Int("frames", server.DefaultFrameCount, "visualization frames rendered per upload")
	frameWidthFlag  = flag.Int("frame-width", server.DefaultFrameWidth, "width of rendered frames")
	frameHeightFlag = flag.Int("frame-height", server.DefaultFrameHeight, "height of rendered frames")

	alwaysFramesFlag = flag.Bool("always-frames", false, "render frames even when the client does not ask for them")

	waveformPointsFlag = flag.Int("waveform-points", server.DefaultWaveformPoints, "samples returned in audioData")

	// streamFPSFlag sets the websocket field stream rate.
	streamFPSFlag = flag.Int("stream-fps", server.DefaultStreamFPS, "field stream updates per second")
)
