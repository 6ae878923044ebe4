package lumen

// Sprite draws a region of a bitmap at a position. Sprites are displayed by
// layers but owned by the caller.
type Sprite struct {
	Bitmap Bitmap
	// Region is the source rectangle within Bitmap. A zero Region draws the
	// whole bitmap.
	Region Rect
	// Position is the top-left corner of the drawn region.
	Position Vector2D
	// Rotation in radians around the region center.
	Rotation float64
	// Alpha in [0, 1]. NewSprite sets it to 1.
	Alpha float64
	// Visible sprites are drawn and cast shadows; invisible ones do neither.
	Visible bool
}

// NewSprite creates a visible, opaque sprite showing the whole bitmap.
func NewSprite(b Bitmap, pos Vector2D) *Sprite {
	return &Sprite{Bitmap: b, Position: pos, Alpha: 1, Visible: true}
}

// source returns the region to draw, defaulting to the full bitmap.
func (s *Sprite) source() Rect {
	if s.Region.Width > 0 && s.Region.Height > 0 {
		return s.Region
	}
	if s.Bitmap == nil {
		return Rect{}
	}
	w, h := s.Bitmap.Size()
	return Rect{Width: float64(w), Height: float64(h)}
}

// Draw renders the sprite with its own alpha.
func (s *Sprite) Draw(r Renderer) {
	if !s.Visible || s.Bitmap == nil {
		return
	}
	r.DrawBitmap(s.Bitmap, s.source(), s.Position, s.Rotation, clamp01(s.Alpha), false)
}

// DrawTinted renders the sprite's silhouette at a uniform alpha. Used when
// the sprite casts a shadow into the shadow map.
func (s *Sprite) DrawTinted(r Renderer, alpha uint8) {
	if !s.Visible || s.Bitmap == nil {
		return
	}
	r.DrawBitmap(s.Bitmap, s.source(), s.Position, s.Rotation, AlphaByte(alpha), true)
}

// AnimatedSprite cycles through frame regions of one bitmap at a fixed rate.
type AnimatedSprite struct {
	Sprite
	// Frames are the source regions, shown in order.
	Frames []Rect
	// FrameDuration is how long each frame is shown, in seconds.
	FrameDuration float64
	// Loop restarts the animation after the last frame; otherwise it holds
	// the last frame.
	Loop bool

	frame   int
	elapsed float64
}

// NewAnimatedSprite creates a looping animation over frames.
func NewAnimatedSprite(b Bitmap, pos Vector2D, frames []Rect, frameDuration float64) *AnimatedSprite {
	return &AnimatedSprite{
		Sprite:        Sprite{Bitmap: b, Position: pos, Alpha: 1, Visible: true},
		Frames:        frames,
		FrameDuration: frameDuration,
		Loop:          true,
	}
}

// Frame returns the index of the frame currently shown.
func (a *AnimatedSprite) Frame() int { return a.frame }

// Finished reports whether a non-looping animation has reached its last frame.
func (a *AnimatedSprite) Finished() bool {
	return !a.Loop && len(a.Frames) > 0 && a.frame == len(a.Frames)-1
}

// Reset rewinds to the first frame.
func (a *AnimatedSprite) Reset() {
	a.frame = 0
	a.elapsed = 0
}

// Update advances the animation by dt seconds.
func (a *AnimatedSprite) Update(dt float64) {
	n := len(a.Frames)
	if n == 0 || a.FrameDuration <= 0 {
		return
	}
	a.elapsed += dt
	for a.elapsed >= a.FrameDuration {
		a.elapsed -= a.FrameDuration
		if a.frame < n-1 {
			a.frame++
		} else if a.Loop {
			a.frame = 0
		} else {
			a.elapsed = 0
			break
		}
	}
}

func (a *AnimatedSprite) syncRegion() {
	if a.frame < len(a.Frames) {
		a.Region = a.Frames[a.frame]
	}
}

// Draw renders the current frame.
func (a *AnimatedSprite) Draw(r Renderer) {
	a.syncRegion()
	a.Sprite.Draw(r)
}

// DrawTinted renders the current frame's silhouette at alpha.
func (a *AnimatedSprite) DrawTinted(r Renderer, alpha uint8) {
	a.syncRegion()
	a.Sprite.DrawTinted(r, alpha)
}
