package surface

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
)

// Image is a Surface backed by an *image.RGBA.
type Image struct {
	RGBA *image.RGBA
}

// NewImage allocates a transparent width x height surface.
func NewImage(width, height int) *Image {
	return &Image{RGBA: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Size implements Surface.
func (im *Image) Size() (int, int) {
	b := im.RGBA.Bounds()
	return b.Dx(), b.Dy()
}

// Clear implements Surface.
func (im *Image) Clear(c color.Color) {
	draw.Draw(im.RGBA, im.RGBA.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Line implements Surface. Wider strokes are drawn as parallel lines offset
// along the minor axis.
func (im *Image) Line(x0, y0, x1, y1, width float64, c color.Color) {
	ix0, iy0 := int(math.Round(x0)), int(math.Round(y0))
	ix1, iy1 := int(math.Round(x1)), int(math.Round(y1))
	n := int(math.Round(width))
	if n < 1 {
		n = 1
	}
	steep := abs(iy1-iy0) > abs(ix1-ix0)
	for k := -(n - 1) / 2; k <= n/2; k++ {
		if steep {
			im.bresenham(ix0+k, iy0, ix1+k, iy1, c)
		} else {
			im.bresenham(ix0, iy0+k, ix1, iy1+k, c)
		}
	}
}

// bresenham plots a line segment using Bresenham's integer algorithm.
func (im *Image) bresenham(x0, y0, x1, y1 int, c color.Color) {
	b := im.RGBA.Bounds()
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		if image.Pt(x0, y0).In(b) {
			im.RGBA.Set(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// EncodePNG writes the surface as a PNG image.
func (im *Image) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, im.RGBA); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// Base64PNG returns the surface as a base64 (standard encoding) PNG string.
func (im *Image) Base64PNG() (string, error) {
	var buf bytes.Buffer
	if err := im.EncodePNG(&buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeBase64PNG parses a base64 PNG payload such as a visualization frame.
func DecodeBase64PNG(s string) (image.Image, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 frame: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding png frame: %w", err)
	}
	return img, nil
}
