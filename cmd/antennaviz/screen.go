package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// imageSurface draws onto an offscreen ebiten image with antialiased vector
// strokes.
type imageSurface struct {
	img *ebiten.Image
}

func newImageSurface(width, height int) *imageSurface {
	return &imageSurface{img: ebiten.NewImage(width, height)}
}

func (s *imageSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *imageSurface) Clear(c color.Color) {
	if _, _, _, a := c.RGBA(); a == 0 {
		s.img.Clear()
		return
	}
	s.img.Fill(c)
}

func (s *imageSurface) Line(x0, y0, x1, y1, width float64, c color.Color) {
	if x0 == x1 && y0 == y1 {
		vector.DrawFilledCircle(s.img, float32(x0), float32(y0), float32(width/2), c, true)
		return
	}
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}
