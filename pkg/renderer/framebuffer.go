package renderer

import (
	"image"
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// untouched marks a pixel no result has reached yet
const untouched = -1

// Framebuffer merges results into a running per-pixel average. A pixel's
// first own result also paints every pixel of its tile that has no samples
// of its own yet, so coarse tiles give an immediate preview. Painted pixels
// keep a sample count of zero and are replaced by their own first result.
// A framebuffer is owned by a single aggregating goroutine.
type Framebuffer struct {
	Width  int
	Height int
	colors []core.Vec3
	counts []int
	pixels []uint8 // row-major RGBA, gamma 2

	results int
	samples int64
}

// NewFramebuffer creates a black, untouched framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	f := &Framebuffer{
		Width:  width,
		Height: height,
		colors: make([]core.Vec3, width*height),
		counts: make([]int, width*height),
		pixels: make([]uint8, width*height*4),
	}
	for i := range f.counts {
		f.counts[i] = untouched
		f.pixels[i*4+3] = 255
	}
	return f
}

// Apply folds one result into the framebuffer. Folding m samples of color
// C2 into n samples averaging C1 gives (n·C1 + m·C2) / (n + m).
func (f *Framebuffer) Apply(r Result) {
	if r.X < 0 || r.X >= f.Width || r.Y < 0 || r.Y >= f.Height || r.Samples <= 0 {
		return
	}
	f.results++
	f.samples += int64(r.Samples)

	i := r.Y*f.Width + r.X
	n := f.counts[i]
	if n <= 0 {
		for y := r.Y; y < min(r.Y+r.Size, f.Height); y++ {
			for x := r.X; x < min(r.X+r.Size, f.Width); x++ {
				j := y*f.Width + x
				if f.counts[j] <= 0 {
					f.counts[j] = 0
					f.set(j, r.Color)
				}
			}
		}
		f.counts[i] = r.Samples
		f.set(i, r.Color)
		return
	}

	w := float64(r.Samples) / float64(n+r.Samples)
	f.counts[i] = n + r.Samples
	f.set(i, f.colors[i].Lerp(r.Color, w))
}

func (f *Framebuffer) set(i int, c core.Vec3) {
	f.colors[i] = c
	f.pixels[i*4] = toByte(c.X)
	f.pixels[i*4+1] = toByte(c.Y)
	f.pixels[i*4+2] = toByte(c.Z)
	f.pixels[i*4+3] = 255
}

// toByte applies gamma 2 and quantizes to 8 bits
func toByte(c float64) uint8 {
	if !(c > 0) {
		return 0
	}
	return uint8(math.Min(255, math.Round(math.Sqrt(c)*255)))
}

// Color returns the linear average at (x, y)
func (f *Framebuffer) Color(x, y int) core.Vec3 {
	return f.colors[y*f.Width+x]
}

// SampleCount returns the samples accumulated at (x, y); -1 if untouched
func (f *Framebuffer) SampleCount(x, y int) int {
	return f.counts[y*f.Width+x]
}

// Pixels returns the RGBA bytes. The slice is reused; callers that keep it
// across Apply calls must copy it.
func (f *Framebuffer) Pixels() []uint8 {
	return f.pixels
}

// Snapshot copies the current image
func (f *Framebuffer) Snapshot() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	copy(img.Pix, f.pixels)
	return img
}

// Results returns the number of applied results
func (f *Framebuffer) Results() int {
	return f.results
}

// Progress returns the fraction of the expected samples accumulated, given
// samplesPerPixel expected per pixel over the whole run
func (f *Framebuffer) Progress(samplesPerPixel int) float64 {
	if samplesPerPixel <= 0 {
		return 1
	}
	expected := float64(f.Width) * float64(f.Height) * float64(samplesPerPixel)
	return math.Min(1, float64(f.samples)/expected)
}
