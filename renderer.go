package lumen

// Surface is an offscreen or on-screen drawing target owned by a Renderer.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (w, h int)
}

// Bitmap is an image that can be drawn with DrawBitmap.
type Bitmap interface {
	Size() (w, h int)
}

// GradientVertex is one corner of a gradient-shaded triangle.
type GradientVertex struct {
	Position Vector2D
	Color    Color
}

// Renderer is the drawing backend this package composes frames with. All
// calls draw onto the current target and use the current blend mode, except
// Clear, which names its surface explicitly so clearing never retargets.
//
// A Renderer is not safe for concurrent use; a frame is drawn by one
// goroutine from start to finish.
type Renderer interface {
	// NewSurface allocates a w x h surface cleared to transparent black.
	NewSurface(w, h int) (Surface, error)
	// ReleaseSurface returns a surface to the backend. The surface must not be
	// used afterwards.
	ReleaseSurface(s Surface)

	// Target returns the surface drawing currently goes to.
	Target() Surface
	// SetTarget redirects drawing to s.
	SetTarget(s Surface)
	// Clear fills s with c, replacing its contents.
	Clear(s Surface, c Color)

	// BlendMode returns the active blend mode.
	BlendMode() BlendMode
	// SetBlendMode changes the blend mode for subsequent draws.
	SetBlendMode(m BlendMode)

	// FillRect draws a filled axis-aligned rectangle.
	FillRect(r Rect, c Color)
	// FillCircle draws a filled circle.
	FillCircle(center Vector2D, radius float64, c Color)
	// DrawGradientTriangle draws one triangle with per-vertex colors.
	DrawGradientTriangle(v [3]GradientVertex)
	// DrawBitmap draws the src region of b with its top-left at dst, rotated
	// by rotation radians around the region center, with a uniform alpha.
	// When silhouette is set the bitmap is drawn solid black, keeping only
	// its alpha channel.
	DrawBitmap(b Bitmap, src Rect, dst Vector2D, rotation, alpha float64, silhouette bool)
}

// withBlend runs fn under mode and then restores whatever blend mode was
// active before.
func withBlend(r Renderer, mode BlendMode, fn func()) {
	prev := r.BlendMode()
	r.SetBlendMode(mode)
	fn()
	r.SetBlendMode(prev)
}
