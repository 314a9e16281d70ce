package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	audiobuf "github.com/mathematicalguy/audio-antenna-Simulator/internal/audio"
	"github.com/mathematicalguy/audio-antenna-Simulator/internal/client"
	"github.com/mathematicalguy/audio-antenna-Simulator/internal/field"
	"github.com/mathematicalguy/audio-antenna-Simulator/internal/playback"
	"github.com/mathematicalguy/audio-antenna-Simulator/internal/scene"
)

// Game holds the field, the playback transport, the uploaded waveform and
// everything drawn around them.
type Game struct {
	params   field.Params
	selected int

	sampler   *field.Sampler
	evaluator field.Evaluator
	scene     *scene.Scene
	amplitude float64
	idleTime  float64

	transport *playback.Transport
	waveform  []float64
	duration  float64
	frames    []*ebiten.Image
	hoverX    float64

	sceneSurf    *imageSurface
	waveformSurf *imageSurface

	uploader *uploader
	status   string

	audioCtx *audio.Context
	audio    *localAudio

	lastFieldDuration time.Duration
	lastFieldErr      error

	autoOrbit           bool
	autoOrbitDeadline   time.Time
	autoOrbitRand       *rand.Rand
	autoOrbitDirAz      float64
	autoOrbitDirEl      float64
	autoOrbitFrameCount int
}

// newGame constructs a Game with the lattice from the command line and an
// idle transport.
func newGame() *Game {
	g := &Game{
		params:        field.DefaultParams(),
		hoverX:        -1,
		sceneSurf:     newImageSurface(screenWidth, sceneHeight),
		waveformSurf:  newImageSurface(screenWidth, waveformHeight),
		uploader:      newUploader(newClient()),
		autoOrbitRand: rand.New(rand.NewSource(time.Now().UnixNano() + 2)),
	}
	points := field.GenerateLattice(*radialStepsFlag, *azimuthStepsFlag, *polarStepsFlag, field.DefaultMaxRadius)
	if *openCLFlag {
		if ev, err := field.NewOpenCLEvaluator(len(points)); err != nil {
			log.Printf("OpenCL unavailable, using CPU: %v", err)
		} else {
			log.Printf("OpenCL field evaluator enabled (device: %s)", ev.DeviceName())
			g.evaluator = ev
		}
	}
	g.sampler = field.NewSampler(points, g.evaluator)
	g.scene = scene.New(g.params.Length.Value)
	g.transport = playback.New(0,
		playback.WithFPS(defaultTPS),
		playback.OnTime(g.onTime),
		playback.OnPlaying(g.onPlaying),
	)
	if *enableAudioFlag {
		g.audioCtx = audio.NewContext(audioSampleRate)
	}
	g.status = "Press U to upload, Space to play"
	g.updateField(0, 1)
	log.Printf("Field lattice: %d points", g.sampler.Len())
	return g
}

func newClient() *client.Client {
	c := client.New(*serverFlag)
	c.Frames = *framesFlag
	return c
}

// Update polls uploads, applies input and advances the transport by one
// host frame.
func (g *Game) Update() error {
	if res, ok := g.uploader.poll(); ok {
		g.applyUpload(res)
	}
	g.handleControls()
	g.scene.SetAntennaLength(g.params.Length.Value)

	if g.duration > 0 {
		g.transport.Tick(time.Second / defaultTPS)
	} else {
		// Nothing loaded: keep the field animating at full current.
		g.idleTime += 1.0 / defaultTPS
		g.updateField(g.idleTime, 1)
	}
	return nil
}

// onTime is the transport observer. It fires on every tick and seek.
func (g *Game) onTime(t float64) {
	g.updateField(t, g.envelope(t))
}

func (g *Game) onPlaying(playing bool) {
	if g.audio != nil {
		g.audio.setPlaying(playing)
	}
}

func (g *Game) envelope(t float64) float64 {
	if g.audio != nil {
		return audiobuf.Envelope(g.audio.samples, audioSampleRate, t, envelopeWindow)
	}
	if g.duration <= 0 || len(g.waveform) == 0 {
		return 0
	}
	rate := int(float64(len(g.waveform))/g.duration + 0.5)
	if rate < 1 {
		rate = 1
	}
	return audiobuf.Envelope(g.waveform, rate, t, envelopeWindow)
}

func (g *Game) updateField(t, envelope float64) {
	g.amplitude = g.params.Amplitude(envelope)
	start := time.Now()
	err := g.sampler.Update(t, g.params.Frequency.Value, g.amplitude)
	g.lastFieldDuration = time.Since(start)
	if err != nil && g.lastFieldErr == nil {
		log.Printf("Field evaluator failed, using CPU results: %v", err)
	}
	g.lastFieldErr = err
}

// loadLocalAudio replaces the speaker output with the file at path when
// audio is enabled.
func (g *Game) loadLocalAudio(path string) {
	if g.audioCtx == nil {
		return
	}
	if g.audio != nil {
		g.audio.Close()
		g.audio = nil
	}
	a, err := loadLocalAudio(g.audioCtx, path)
	if err != nil {
		log.Printf("Local audio playback disabled: %v", err)
		return
	}
	g.audio = a
}

func (g *Game) setStatus(s string) {
	g.status = s
}

// seek moves the cursor and the speaker output together.
func (g *Game) seek(t float64) {
	g.transport.Seek(t)
	if g.audio != nil {
		g.audio.seek(g.transport.Time())
	}
}

func (g *Game) close() {
	if g.audio != nil {
		g.audio.Close()
	}
	if c, ok := g.evaluator.(interface{ Close() }); ok {
		c.Close()
	}
}
