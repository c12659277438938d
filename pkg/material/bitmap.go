package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// ErrBitmapSize is returned when pixel data does not match the dimensions
var ErrBitmapSize = errors.New("bitmap data does not match dimensions")

// BitmapTexture samples an 8-bit RGBA image with nearest-neighbour lookup.
// V=0 is the bottom row of the image.
type BitmapTexture struct {
	core.Object
	Width  int
	Height int
	Pixels []uint8 // Row-major RGBA: Pixels[(y*Width + x)*4]
	alpha  bool
}

// NewBitmapTexture creates a bitmap texture from RGBA bytes
func NewBitmapTexture(width, height int, pixels []uint8) (*BitmapTexture, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("%w: %dx%d with %d bytes", ErrBitmapSize, width, height, len(pixels))
	}
	alpha := false
	for i := 3; i < len(pixels); i += 4 {
		if pixels[i] < 255 {
			alpha = true
			break
		}
	}
	return &BitmapTexture{Width: width, Height: height, Pixels: pixels, alpha: alpha}, nil
}

// Value returns the texel under uv; coordinates wrap
func (t *BitmapTexture) Value(uv core.TextureCoordinate, _ core.Vec3) core.RGBA {
	x := wrap(int(float64(t.Width)*uv.U), t.Width)
	y := wrap(int(float64(t.Height)*(1-uv.V)), t.Height)
	i := (y*t.Width + x) * 4
	return core.NewRGBA(
		float64(t.Pixels[i])/255,
		float64(t.Pixels[i+1])/255,
		float64(t.Pixels[i+2])/255,
		float64(t.Pixels[i+3])/255,
	)
}

func (t *BitmapTexture) HasAlpha() bool {
	return t.alpha
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
