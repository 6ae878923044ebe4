package lumen

// BoundedObject is a positioned, drawable shape. The starting position is
// fixed when the object is built; the current position moves freely.
type BoundedObject interface {
	Kind() ShapeKind

	Position() Vector2D
	StartingPosition() Vector2D
	X() float64
	Y() float64
	SetX(x float64)
	SetY(y float64)
	SetPosition(p Vector2D)

	// CenterOffset returns the half-extents of the shape: the offset from its
	// bounding box's top-left corner to its center.
	CenterOffset() Vector2D
	// Center returns the shape's center in screen space.
	Center() Vector2D
	// Bounds returns the axis-aligned bounding box.
	Bounds() Rect

	// Color returns the object's fill color and whether one is set.
	Color() (Color, bool)
	SetColor(c Color)
	ClearColor()

	// Draw renders the filled shape in its color (white when unset).
	Draw(r Renderer)
	// DrawForLightBlocking renders a black silhouette at the given alpha,
	// ignoring the object's own color.
	DrawForLightBlocking(r Renderer, alpha uint8)
}

// objectBase holds the state shared by every shape.
type objectBase struct {
	pos      Vector2D
	start    Vector2D
	color    Color
	hasColor bool
}

func (o *objectBase) Position() Vector2D { return o.pos }
func (o *objectBase) StartingPosition() Vector2D { return o.start }
func (o *objectBase) X() float64 { return o.pos.X }
func (o *objectBase) Y() float64 { return o.pos.Y }

func (o *objectBase) Color() (Color, bool) { return o.color, o.hasColor }

func (o *objectBase) SetColor(c Color) {
	o.color = c
	o.hasColor = true
}

func (o *objectBase) ClearColor() {
	o.color = Color{}
	o.hasColor = false
}

func (o *objectBase) fill() Color {
	if o.hasColor {
		return o.color
	}
	return ColorWhite
}

// ObjectOption configures a shape at construction.
type ObjectOption func(*objectBase)

// WithColor gives the object its own fill color.
func WithColor(c Color) ObjectOption {
	return func(o *objectBase) {
		o.SetColor(c)
	}
}

func newObjectBase(pos Vector2D, opts []ObjectOption) objectBase {
	o := objectBase{pos: pos, start: pos}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// --- Rectangle ---

// RectangleObject is an axis-aligned box whose position is its top-left
// corner. Its four corners are cached and recomputed by every mutator.
type RectangleObject struct {
	objectBase
	width, height float64

	topLeft, topRight, bottomLeft, bottomRight Vector2D
}

// NewRectangle creates a rectangle at (x, y) with the given size.
func NewRectangle(x, y, width, height float64, opts ...ObjectOption) *RectangleObject {
	r := &RectangleObject{
		objectBase: newObjectBase(Vec(x, y), opts),
		width:      width,
		height:     height,
	}
	r.updateCorners()
	return r
}

// updateCorners recomputes the cached corners from position and size.
func (r *RectangleObject) updateCorners() {
	x, y := r.pos.X, r.pos.Y
	r.topLeft = Vector2D{x, y}
	r.topRight = Vector2D{x + r.width, y}
	r.bottomLeft = Vector2D{x, y + r.height}
	r.bottomRight = Vector2D{x + r.width, y + r.height}
}

// Kind returns ShapeRectangle.
func (r *RectangleObject) Kind() ShapeKind { return ShapeRectangle }

// SetX moves the rectangle horizontally.
func (r *RectangleObject) SetX(x float64) {
	r.pos.X = x
	r.updateCorners()
}

// SetY moves the rectangle vertically.
func (r *RectangleObject) SetY(y float64) {
	r.pos.Y = y
	r.updateCorners()
}

// SetPosition moves the rectangle's top-left corner to p.
func (r *RectangleObject) SetPosition(p Vector2D) {
	r.pos = p
	r.updateCorners()
}

// Width returns the rectangle width.
func (r *RectangleObject) Width() float64 { return r.width }

// Height returns the rectangle height.
func (r *RectangleObject) Height() float64 { return r.height }

// SetWidth resizes the rectangle horizontally.
func (r *RectangleObject) SetWidth(w float64) {
	r.width = w
	r.updateCorners()
}

// SetHeight resizes the rectangle vertically.
func (r *RectangleObject) SetHeight(h float64) {
	r.height = h
	r.updateCorners()
}

// SetSize resizes the rectangle.
func (r *RectangleObject) SetSize(w, h float64) {
	r.width = w
	r.height = h
	r.updateCorners()
}

func (r *RectangleObject) TopLeftCorner() Vector2D { return r.topLeft }
func (r *RectangleObject) TopRightCorner() Vector2D { return r.topRight }
func (r *RectangleObject) BottomLeftCorner() Vector2D { return r.bottomLeft }
func (r *RectangleObject) BottomRightCorner() Vector2D { return r.bottomRight }

// CenterOffset returns (width/2, height/2).
func (r *RectangleObject) CenterOffset() Vector2D {
	return Vector2D{r.width / 2, r.height / 2}
}

// Center returns the rectangle's center point.
func (r *RectangleObject) Center() Vector2D {
	return r.pos.Add(r.CenterOffset())
}

// Bounds returns the rectangle itself.
func (r *RectangleObject) Bounds() Rect {
	return Rect{X: r.pos.X, Y: r.pos.Y, Width: r.width, Height: r.height}
}

// Draw fills the rectangle.
func (r *RectangleObject) Draw(rd Renderer) {
	rd.FillRect(r.Bounds(), r.fill())
}

// DrawForLightBlocking fills the rectangle in black at alpha.
func (r *RectangleObject) DrawForLightBlocking(rd Renderer, alpha uint8) {
	rd.FillRect(r.Bounds(), ColorBlack.WithAlpha(AlphaByte(alpha)))
}

// --- Circle ---

// CircleObject is a disc whose position is its center.
type CircleObject struct {
	objectBase
	radius float64
}

// NewCircle creates a circle centered at (x, y).
func NewCircle(x, y, radius float64, opts ...ObjectOption) *CircleObject {
	return &CircleObject{
		objectBase: newObjectBase(Vec(x, y), opts),
		radius:     radius,
	}
}

// Kind returns ShapeCircle.
func (c *CircleObject) Kind() ShapeKind { return ShapeCircle }

func (c *CircleObject) SetX(x float64) { c.pos.X = x }
func (c *CircleObject) SetY(y float64) { c.pos.Y = y }
func (c *CircleObject) SetPosition(p Vector2D) { c.pos = p }

// Radius returns the circle radius.
func (c *CircleObject) Radius() float64 { return c.radius }

// SetRadius changes the circle radius.
func (c *CircleObject) SetRadius(r float64) { c.radius = r }

// CenterOffset returns (radius, radius).
func (c *CircleObject) CenterOffset() Vector2D {
	return Vector2D{c.radius, c.radius}
}

// Center returns the circle's position.
func (c *CircleObject) Center() Vector2D { return c.pos }

// Bounds returns the square enclosing the circle.
func (c *CircleObject) Bounds() Rect {
	return Rect{
		X:      c.pos.X - c.radius,
		Y:      c.pos.Y - c.radius,
		Width:  c.radius * 2,
		Height: c.radius * 2,
	}
}

// Draw fills the circle.
func (c *CircleObject) Draw(rd Renderer) {
	rd.FillCircle(c.pos, c.radius, c.fill())
}

// DrawForLightBlocking fills the circle in black at alpha.
func (c *CircleObject) DrawForLightBlocking(rd Renderer, alpha uint8) {
	rd.FillCircle(c.pos, c.radius, ColorBlack.WithAlpha(AlphaByte(alpha)))
}
