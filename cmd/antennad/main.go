package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/mathematicalguy/audio-antenna-Simulator/internal/server"
)

func main() {
	flag.Parse()

	cfg := server.Config{
		Addr:           *addrFlag,
		UploadDir:      *uploadDirFlag,
		MaxUploadBytes: *maxUploadMBFlag << 20,
		FrameCount:     *framesFlag,
		FrameWidth:     *frameWidthFlag,
		FrameHeight:    *frameHeightFlag,
		PlotWidth:      server.DefaultPlotWidth,
		PlotHeight:     server.DefaultPlotHeight,
		WaveformPoints: *waveformPointsFlag,
		StreamFPS:      *streamFPSFlag,
		AlwaysFrames:   *alwaysFramesFlag,
	}
	if err := cfg.Resolve(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg).Start(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
