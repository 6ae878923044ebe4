package lumen

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- White pixel singleton (no sync.Once; rendering is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Untextured triangles sample it and take their color from the vertices.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// EbitenSurface wraps an ebiten.Image as a drawing target.
type EbitenSurface struct {
	img    *ebiten.Image
	pooled bool
}

// NewEbitenSurface wraps img. The surface does not own img; releasing it
// through a renderer leaves img untouched.
func NewEbitenSurface(img *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{img: img}
}

// Size returns the image dimensions.
func (s *EbitenSurface) Size() (w, h int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the underlying ebiten image.
func (s *EbitenSurface) Image() *ebiten.Image { return s.img }

// EbitenBitmap wraps an ebiten.Image for drawing with sprites.
type EbitenBitmap struct {
	img *ebiten.Image
}

// NewBitmapFromImage wraps an ebiten image.
func NewBitmapFromImage(img *ebiten.Image) *EbitenBitmap {
	return &EbitenBitmap{img: img}
}

// Size returns the image dimensions.
func (b *EbitenBitmap) Size() (w, h int) {
	r := b.img.Bounds()
	return r.Dx(), r.Dy()
}

// Image returns the underlying ebiten image.
func (b *EbitenBitmap) Image() *ebiten.Image { return b.img }

// EbitenRenderer draws through ebiten. Shapes and light fans are submitted
// as triangles sampling a white pixel with premultiplied vertex colors.
type EbitenRenderer struct {
	target *EbitenSurface
	screen EbitenSurface
	blend  BlendMode
	pool   surfacePool

	// CircleSegments caps the number of triangles per filled circle.
	CircleSegments int

	vertices []ebiten.Vertex
	indices  []uint16
	triOpts  ebiten.DrawTrianglesOptions
	imgOpts  ebiten.DrawImageOptions
}

// NewEbitenRenderer creates a renderer with no target. Call Begin with the
// screen image at the start of every frame.
func NewEbitenRenderer() *EbitenRenderer {
	return &EbitenRenderer{
		CircleSegments: 48,
		vertices:       make([]ebiten.Vertex, 0, 64),
		indices:        make([]uint16, 0, 96),
		triOpts: ebiten.DrawTrianglesOptions{
			ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		},
	}
}

// Begin targets screen for the frame and resets the blend mode to normal.
func (r *EbitenRenderer) Begin(screen *ebiten.Image) {
	r.screen.img = screen
	r.target = &r.screen
	r.blend = BlendNormal
}

// Screen returns the surface Begin targeted.
func (r *EbitenRenderer) Screen() *EbitenSurface { return &r.screen }

// NewSurface acquires a cleared offscreen surface from the pool.
func (r *EbitenRenderer) NewSurface(w, h int) (Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", w, h)
	}
	return &EbitenSurface{img: r.pool.Acquire(w, h), pooled: true}, nil
}

// ReleaseSurface returns a pooled surface for reuse. Surfaces wrapping
// caller-owned images are ignored.
func (r *EbitenRenderer) ReleaseSurface(s Surface) {
	es, ok := s.(*EbitenSurface)
	if !ok || !es.pooled || es.img == nil {
		return
	}
	r.pool.Release(es.img)
	es.img = nil
}

// Target returns the current target.
func (r *EbitenRenderer) Target() Surface {
	if r.target == nil {
		return nil
	}
	return r.target
}

// SetTarget redirects drawing. Surfaces not created by an EbitenRenderer
// are ignored.
func (r *EbitenRenderer) SetTarget(s Surface) {
	if es, ok := s.(*EbitenSurface); ok {
		r.target = es
	}
}

// Clear replaces the contents of s with c.
func (r *EbitenRenderer) Clear(s Surface, c Color) {
	es, ok := s.(*EbitenSurface)
	if !ok || es.img == nil {
		return
	}
	if c.A <= 0 {
		es.img.Clear()
		return
	}
	es.img.Fill(c)
}

// BlendMode returns the active blend mode.
func (r *EbitenRenderer) BlendMode() BlendMode { return r.blend }

// SetBlendMode changes the blend mode for subsequent draws.
func (r *EbitenRenderer) SetBlendMode(m BlendMode) { r.blend = m }

// FillRect draws a solid rectangle as two triangles.
func (r *EbitenRenderer) FillRect(rect Rect, c Color) {
	if r.target == nil {
		return
	}
	cr, cg, cb, ca := c.Premultiplied()
	x0, y0 := float32(rect.X), float32(rect.Y)
	x1, y1 := float32(rect.X+rect.Width), float32(rect.Y+rect.Height)

	r.vertices = append(r.vertices[:0],
		solidVertex(x0, y0, cr, cg, cb, ca),
		solidVertex(x1, y0, cr, cg, cb, ca),
		solidVertex(x1, y1, cr, cg, cb, ca),
		solidVertex(x0, y1, cr, cg, cb, ca),
	)
	r.indices = append(r.indices[:0], 0, 1, 2, 0, 2, 3)
	r.flushTriangles()
}

// FillCircle draws a solid circle as a triangle fan.
func (r *EbitenRenderer) FillCircle(center Vector2D, radius float64, c Color) {
	if r.target == nil || radius <= 0 {
		return
	}
	segs := int(math.Ceil(radius))
	segs = max(12, min(segs, r.CircleSegments))

	cr, cg, cb, ca := c.Premultiplied()
	r.vertices = append(r.vertices[:0], solidVertex(float32(center.X), float32(center.Y), cr, cg, cb, ca))
	for i := range segs {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(segs))
		r.vertices = append(r.vertices, solidVertex(
			float32(center.X+radius*cos), float32(center.Y+radius*sin), cr, cg, cb, ca))
	}
	r.indices = r.indices[:0]
	for i := range segs {
		a := uint16(i + 1)
		b := uint16((i+1)%segs + 1)
		r.indices = append(r.indices, 0, a, b)
	}
	r.flushTriangles()
}

// DrawGradientTriangle draws one triangle with interpolated vertex colors.
func (r *EbitenRenderer) DrawGradientTriangle(v [3]GradientVertex) {
	if r.target == nil {
		return
	}
	r.vertices = r.vertices[:0]
	for _, gv := range v {
		cr, cg, cb, ca := gv.Color.Premultiplied()
		r.vertices = append(r.vertices, solidVertex(
			float32(gv.Position.X), float32(gv.Position.Y), cr, cg, cb, ca))
	}
	r.indices = append(r.indices[:0], 0, 1, 2)
	r.flushTriangles()
}

// DrawBitmap draws a region of an EbitenBitmap.
func (r *EbitenRenderer) DrawBitmap(b Bitmap, src Rect, dst Vector2D, rotation, alpha float64, silhouette bool) {
	eb, ok := b.(*EbitenBitmap)
	if !ok || eb.img == nil || r.target == nil {
		return
	}
	sub := eb.img.SubImage(image.Rect(
		int(src.X), int(src.Y),
		int(src.X+src.Width), int(src.Y+src.Height),
	)).(*ebiten.Image)

	op := &r.imgOpts
	op.GeoM.Reset()
	op.ColorScale.Reset()
	hw, hh := src.Width/2, src.Height/2
	op.GeoM.Translate(-hw, -hh)
	if rotation != 0 {
		op.GeoM.Rotate(rotation)
	}
	op.GeoM.Translate(dst.X+hw, dst.Y+hh)
	if silhouette {
		op.ColorScale.Scale(0, 0, 0, float32(clamp01(alpha)))
	} else {
		op.ColorScale.ScaleAlpha(float32(clamp01(alpha)))
	}
	op.Blend = r.blend.EbitenBlend()
	r.target.img.DrawImage(sub, op)
}

// CompositeShadow multiplies the shadow map over dst. Call it once per
// frame, after Scene.Draw.
func (r *EbitenRenderer) CompositeShadow(dst *ebiten.Image, shadow Surface) {
	es, ok := shadow.(*EbitenSurface)
	if !ok || es.img == nil || dst == nil {
		return
	}
	op := &r.imgOpts
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.Blend = BlendMultiply.EbitenBlend()
	dst.DrawImage(es.img, op)
}

func (r *EbitenRenderer) flushTriangles() {
	r.triOpts.Blend = r.blend.EbitenBlend()
	r.target.img.DrawTriangles(r.vertices, r.indices, ensureWhitePixel(), &r.triOpts)
}

func solidVertex(x, y, r, g, b, a float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX: x, DstY: y,
		SrcX: 0.5, SrcY: 0.5,
		ColorR: r, ColorG: g, ColorB: b, ColorA: a,
	}
}
