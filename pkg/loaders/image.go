package loaders

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// ErrUnsupportedFormat is returned when saving to an unknown file extension
var ErrUnsupportedFormat = errors.New("unsupported image format")

// LoadImage decodes a PNG, JPEG, BMP or TIFF file into RGBA. Images whose
// larger side exceeds maxSize are scaled down to fit; maxSize <= 0 keeps
// the original resolution.
func LoadImage(filename string, maxSize int) (*image.RGBA, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// format detection uses the decoders registered by the imports above
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}
	return toRGBA(img, maxSize), nil
}

func toRGBA(img image.Image, maxSize int) *image.RGBA {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if maxSize > 0 && (width > maxSize || height > maxSize) {
		if width >= height {
			height = max(1, height*maxSize/width)
			width = maxSize
		} else {
			width = max(1, width*maxSize/height)
			height = maxSize
		}
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
		return dst
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

// LoadTexture loads an image file as a bitmap texture
func LoadTexture(filename string, maxSize int) (*material.BitmapTexture, error) {
	img, err := LoadImage(filename, maxSize)
	if err != nil {
		return nil, err
	}
	return material.NewBitmapTexture(img.Rect.Dx(), img.Rect.Dy(), img.Pix)
}

// SaveImage encodes img to filename, choosing the format from the
// extension (.png, .jpg/.jpeg, .bmp, .tif/.tiff)
func SaveImage(filename string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(filename))
	var encode func(*os.File) error
	switch ext {
	case ".png":
		encode = func(f *os.File) error { return png.Encode(f, img) }
	case ".jpg", ".jpeg":
		encode = func(f *os.File) error { return jpeg.Encode(f, img, &jpeg.Options{Quality: 95}) }
	case ".bmp":
		encode = func(f *os.File) error { return bmp.Encode(f, img) }
	case ".tif", ".tiff":
		encode = func(f *os.File) error { return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate}) }
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if err := encode(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	return file.Close()
}

// IndexedFilename inserts a zero padded index before the extension, so
// repeated saves of one render do not overwrite each other
func IndexedFilename(filename string, index int) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("%s_%03d%s", strings.TrimSuffix(filename, ext), index, ext)
}
