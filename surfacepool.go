package lumen

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// surfacePool manages reusable offscreen ebiten.Images keyed by exact
// dimensions. Shadow maps are allocated at the display size, so rounding up
// would leave the composite misaligned.
type surfacePool struct {
	buckets map[uint64][]*ebiten.Image
}

// poolKey packs width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// Acquire returns a cleared offscreen image of exactly (w, h) pixels.
func (p *surfacePool) Acquire(w, h int) *ebiten.Image {
	key := poolKey(w, h)
	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			stack[len(stack)-1] = nil
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}
	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, w, h),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Release returns an image to the pool. The image is cleared on the next
// Acquire, not here.
func (p *surfacePool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())
	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
}

// Len returns the number of idle images held for (w, h).
func (p *surfacePool) Len(w, h int) int {
	return len(p.buckets[poolKey(w, h)])
}
