package main

import (
	"flag"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flag.Parse()
	runtime.GOMAXPROCS(runtime.NumCPU())

	if *headlessFlag {
		if err := runHeadless(); err != nil {
			log.Fatalf("Headless run failed: %v", err)
		}
		return
	}

	g := newGame()
	defer g.close()

	if *recordDefaultPGO {
		stop, err := startDefaultPGORecording("default.pgo")
		if err != nil {
			log.Fatalf("PGO recording failed: %v", err)
		}
		g.enableAutoOrbit(pgoRecordDuration)
		time.AfterFunc(pgoRecordDuration, func() {
			stop()
			log.Printf("Wrote default.pgo")
			os.Exit(0)
		})
	}
	if *fileFlag != "" {
		g.beginUpload()
	}

	ebiten.SetWindowSize(screenWidth*windowScale, screenHeight*windowScale)
	ebiten.SetWindowTitle("Antenna Field Visualizer")
	ebiten.SetTPS(defaultTPS)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("Game exited: %v", err)
	}
}
