package renderer

import (
	"sync"
)

// previewTileSize is the tile size above which every tile of a level is
// emitted, not only the ones an earlier, coarser level left out
const previewTileSize = 128

// Tile is a square region of the image whose top-left pixel (X, Y) is
// rendered. The result stands in for the whole tile until finer tiles
// arrive. Y counts rows from the top of the image.
type Tile struct {
	X, Y int
	Size int
}

// ViewportIterator yields the tiles of one progressive pass. Next is safe
// for concurrent use; CreateNew returns an independent iterator that
// restarts the same sequence.
type ViewportIterator interface {
	Next() (Tile, bool)
	CreateNew() ViewportIterator
}

// IteratorExp2 visits the image coarse to fine. It starts with a single
// tile covering the image and halves the tile size each level, emitting
// only the tiles whose index is odd on some axis, since the even ones
// share their top-left pixel with a tile of the previous level. Within a
// level columns are visited from the center outwards and rows from the
// middle, so the preview sharpens where the eye looks first.
type IteratorExp2 struct {
	mu      sync.Mutex
	width   int
	height  int
	size    int
	tx, ty  int
	started bool
}

// NewIteratorExp2 creates an iterator for a width x height image
func NewIteratorExp2(width, height int) *IteratorExp2 {
	size := 1
	for size*2 <= max(width, height) {
		size *= 2
	}
	if width <= 0 || height <= 0 {
		size = 0
	}
	return &IteratorExp2{width: width, height: height, size: size}
}

// CreateNew returns a fresh iterator over the same image
func (it *IteratorExp2) CreateNew() ViewportIterator {
	return NewIteratorExp2(it.width, it.height)
}

// Next returns the next tile, or false once the finest level is done
func (it *IteratorExp2) Next() (Tile, bool) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if !it.started {
		it.started = true
		return Tile{X: 0, Y: 0, Size: it.size}, it.size > 0
	}

	for it.size > 0 {
		nx := (it.width-1)/it.size + 1
		ny := (it.height-1)/it.size + 1
		if it.ty >= ny {
			it.size /= 2
			it.tx, it.ty = 0, 0
			continue
		}

		x := centerOut(it.tx, nx)
		y := middleOut(it.ty, ny)
		it.tx++
		if it.tx >= nx {
			it.tx = 0
			it.ty++
		}

		if it.size > previewTileSize || x%2 == 1 || y%2 == 1 {
			return Tile{X: x * it.size, Y: y * it.size, Size: it.size}, true
		}
	}
	return Tile{}, false
}

// centerOut maps 0..n-1 to indices alternating left and right of the
// middle, starting just left of it
func centerOut(i, n int) int {
	m := (n - 1) / 2
	if i%2 == 0 {
		return m - i/2
	}
	return m + 1 + i/2
}

// middleOut maps 0..n-1 to indices alternating below and above the
// middle, starting at it
func middleOut(i, n int) int {
	m := n / 2
	if i%2 == 0 {
		return m + i/2
	}
	return m - 1 - i/2
}
