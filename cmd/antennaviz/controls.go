package main

import (
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mathematicalguy/audio-antenna-Simulator/internal/waveform"
)

var sliderKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// handleControls applies keyboard and mouse input for this tick.
func (g *Game) handleControls() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && g.duration > 0 {
		g.transport.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		g.beginUpload()
	}
	g.handleSliderKeys()
	g.handleMouse()

	dAz, dEl := g.orbitVector()
	if dAz != 0 || dEl != 0 {
		g.scene.Camera.Orbit(dAz, dEl)
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		g.scene.Camera.Zoom(1 / zoomStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		g.scene.Camera.Zoom(zoomStep)
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.scene.Camera.Zoom(math.Pow(zoomStep, -wy))
	}
}

// handleSliderKeys selects a control with 1-4 and steps it with Left/Right.
func (g *Game) handleSliderKeys() {
	for i, k := range sliderKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.selected = i
		}
	}
	sliders := g.params.Sliders()
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		sliders[g.selected].Nudge(-1)
		g.refreshField()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		sliders[g.selected].Nudge(1)
		g.refreshField()
	}
}

// refreshField re-evaluates the field at the current cursor after a control
// change so paused views update too.
func (g *Game) refreshField() {
	if g.duration > 0 {
		g.onTime(g.transport.Time())
		return
	}
	g.updateField(g.idleTime, 1)
}

// handleMouse tracks the hover marker and seeks on clicks in the waveform
// strip.
func (g *Game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	if my < sceneHeight || my >= sceneHeight+waveformHeight || mx < 0 || mx >= screenWidth {
		g.hoverX = -1
		return
	}
	g.hoverX = float64(mx)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && g.duration > 0 {
		g.seek(waveform.PixelToTime(float64(mx), screenWidth, g.duration))
	}
}

// enableAutoOrbit schedules scripted camera movement for a limited duration.
func (g *Game) enableAutoOrbit(duration time.Duration) {
	g.autoOrbit = true
	g.autoOrbitDeadline = time.Now().Add(duration)
	g.autoOrbitFrameCount = 0
}

// orbitVector selects either manual or automatic camera motion.
func (g *Game) orbitVector() (float64, float64) {
	if g.autoOrbit {
		if time.Now().After(g.autoOrbitDeadline) {
			g.autoOrbit = false
			return 0, 0
		}
		return g.autoOrbitVector()
	}
	return manualOrbitVector()
}

// manualOrbitVector returns WASD camera orbit scaled by orbitStep.
func manualOrbitVector() (float64, float64) {
	dAz, dEl := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		dAz -= orbitStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		dAz += orbitStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		dEl += orbitStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		dEl -= orbitStep
	}
	return dAz, dEl
}

func (g *Game) autoOrbitVector() (float64, float64) {
	if g.autoOrbitFrameCount <= 0 {
		g.randomizeAutoOrbitDirection()
	}
	g.autoOrbitFrameCount--
	return g.autoOrbitDirAz * orbitStep, g.autoOrbitDirEl * orbitStep
}

func (g *Game) randomizeAutoOrbitDirection() {
	if g.autoOrbitRand == nil {
		g.autoOrbitRand = rand.New(rand.NewSource(time.Now().UnixNano() + 5))
	}
	angle := g.autoOrbitRand.Float64() * 2 * math.Pi
	g.autoOrbitDirAz = math.Cos(angle)
	g.autoOrbitDirEl = math.Sin(angle)
	g.autoOrbitFrameCount = autoOrbitMinFrames + g.autoOrbitRand.Intn(autoOrbitMaxFrames-autoOrbitMinFrames)
}
