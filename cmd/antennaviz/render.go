package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/mathematicalguy/audio-antenna-Simulator/internal/waveform"
)

var (
	waveformBackdrop = color.RGBA{255, 255, 255, 255}
	statusBackdrop   = color.RGBA{32, 32, 32, 255}
	hoverColor       = color.RGBA{96, 96, 96, 160}
	sliderTrack      = color.RGBA{70, 70, 70, 255}
	sliderFill       = color.RGBA{0x21, 0x96, 0xf3, 255}
)

const sliderPanelX = screenWidth - 260

// Draw renders the 3D view, the waveform strip and the status bar.
func (g *Game) Draw(screen *ebiten.Image) {
	g.drawScene(screen)
	g.drawSliders(screen)
	g.drawWaveform(screen)
	g.drawStatus(screen)

	if *debugFlag {
		evaluator := "cpu"
		if g.evaluator != nil {
			evaluator = "opencl"
		}
		debugMsg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nField: %d points (%s), %.2f ms\nAmplitude: %.2f A",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.sampler.Len(), evaluator,
			g.lastFieldDuration.Seconds()*1000, g.amplitude)
		ebitenutil.DebugPrint(screen, debugMsg)
	}
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return screenWidth, screenHeight }

func (g *Game) drawScene(screen *ebiten.Image) {
	if frame := g.currentFrame(); frame != nil {
		screen.SubImage(sceneRect()).(*ebiten.Image).Fill(color.Black)
		b := frame.Bounds()
		scale := min(float64(screenWidth)/float64(b.Dx()), float64(sceneHeight)/float64(b.Dy()))
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate((screenWidth-float64(b.Dx())*scale)/2, (sceneHeight-float64(b.Dy())*scale)/2)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(frame, op)
		return
	}
	g.scene.Draw(g.sceneSurf, g.sampler.Points(), g.sampler.Vectors(), g.amplitude)
	screen.DrawImage(g.sceneSurf.img, nil)
}

// currentFrame picks the server-rendered frame for the cursor time.
func (g *Game) currentFrame() *ebiten.Image {
	n := len(g.frames)
	if n == 0 || g.duration <= 0 {
		return nil
	}
	i := int(g.transport.Time() / g.duration * float64(n))
	if i >= n {
		i = n - 1
	} else if i < 0 {
		i = 0
	}
	return g.frames[i]
}

func (g *Game) drawSliders(screen *ebiten.Image) {
	for i, s := range g.params.Sliders() {
		y := 8 + i*36
		marker := " "
		if i == g.selected {
			marker = ">"
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s%d %s: %.2f", marker, i+1, s.Label, s.Value), sliderPanelX, y)
		vector.DrawFilledRect(screen, sliderPanelX+12, float32(y+18), 220, 4, sliderTrack, false)
		vector.DrawFilledRect(screen, sliderPanelX+12, float32(y+18), float32(220*s.Fraction()), 4, sliderFill, false)
	}
}

func (g *Game) drawWaveform(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, sceneHeight, screenWidth, waveformHeight, waveformBackdrop, false)
	cursorX := float64(waveform.HiddenCursor)
	if g.duration > 0 {
		cursorX = waveform.TimeToPixel(g.transport.Time(), screenWidth, g.duration)
	}
	waveform.Render(g.waveformSurf, g.waveform, cursorX)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, sceneHeight)
	screen.DrawImage(g.waveformSurf.img, op)

	if g.hoverX >= 0 {
		x := float32(g.hoverX)
		vector.StrokeLine(screen, x, sceneHeight, x, sceneHeight+waveformHeight, hoverMarkerWidth, hoverColor, false)
		if g.duration > 0 {
			label := waveform.FormatTime(waveform.PixelToTime(g.hoverX, screenWidth, g.duration))
			ebitenutil.DebugPrintAt(screen, label, int(g.hoverX)+4, sceneHeight+2)
		}
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	top := sceneHeight + waveformHeight
	vector.DrawFilledRect(screen, 0, float32(top), screenWidth, statusHeight, statusBackdrop, false)
	state := "paused"
	if g.transport.Playing() {
		state = "playing"
	}
	line := fmt.Sprintf("%s / %s  %s  |  %s",
		waveform.FormatTime(g.transport.Time()), waveform.FormatTime(g.duration), state, g.status)
	ebitenutil.DebugPrintAt(screen, line, 4, top+2)
}

func sceneRect() image.Rectangle {
	return image.Rect(0, 0, screenWidth, sceneHeight)
}
