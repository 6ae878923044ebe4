package lumen

import (
	"errors"
	"fmt"
)

// fakeSurface is a named in-memory surface.
type fakeSurface struct {
	name string
	w, h int
}

func (s *fakeSurface) Size() (int, int) { return s.w, s.h }

func (s *fakeSurface) String() string { return s.name }

// fakeBitmap is a bitmap of a fixed size.
type fakeBitmap struct{ w, h int }

func (b fakeBitmap) Size() (int, int) { return b.w, b.h }

// call is one recorded Renderer call.
type call struct {
	op      string
	target  Surface
	blend   BlendMode
	surface Surface // SetTarget, Clear, NewSurface, ReleaseSurface
	color   Color   // Clear, FillRect, FillCircle
	rect    Rect
	center  Vector2D
	radius  float64
	tri     [3]GradientVertex
	alpha   float64
	silhou  bool
}

// recorder is a Renderer that records every call in order.
type recorder struct {
	main    *fakeSurface
	target  Surface
	blend   BlendMode
	calls   []call
	surfErr error
	created int
}

func newRecorder() *recorder {
	main := &fakeSurface{name: "main", w: 800, h: 600}
	return &recorder{main: main, target: main}
}

func (r *recorder) record(c call) {
	c.target = r.target
	c.blend = r.blend
	r.calls = append(r.calls, c)
}

func (r *recorder) NewSurface(w, h int) (Surface, error) {
	if r.surfErr != nil {
		return nil, r.surfErr
	}
	r.created++
	s := &fakeSurface{name: fmt.Sprintf("surface%d", r.created), w: w, h: h}
	r.record(call{op: "NewSurface", surface: s})
	return s, nil
}

func (r *recorder) ReleaseSurface(s Surface) {
	r.record(call{op: "ReleaseSurface", surface: s})
}

func (r *recorder) Target() Surface { return r.target }

func (r *recorder) SetTarget(s Surface) {
	r.record(call{op: "SetTarget", surface: s})
	r.target = s
}

func (r *recorder) Clear(s Surface, c Color) {
	r.record(call{op: "Clear", surface: s, color: c})
}

func (r *recorder) BlendMode() BlendMode { return r.blend }

func (r *recorder) SetBlendMode(m BlendMode) {
	r.blend = m
	r.record(call{op: "SetBlendMode"})
}

func (r *recorder) FillRect(rect Rect, c Color) {
	r.record(call{op: "FillRect", rect: rect, color: c})
}

func (r *recorder) FillCircle(center Vector2D, radius float64, c Color) {
	r.record(call{op: "FillCircle", center: center, radius: radius, color: c})
}

func (r *recorder) DrawGradientTriangle(v [3]GradientVertex) {
	r.record(call{op: "DrawGradientTriangle", tri: v})
}

func (r *recorder) DrawBitmap(_ Bitmap, src Rect, dst Vector2D, _, alpha float64, silhouette bool) {
	r.record(call{op: "DrawBitmap", rect: src, center: dst, alpha: alpha, silhou: silhouette})
}

// filter returns the recorded calls with the given op, in order.
func (r *recorder) filter(op string) []call {
	var out []call
	for _, c := range r.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

// blendSequence returns the distinct consecutive blend modes set with
// SetBlendMode, ignoring restores to BlendNormal.
func (r *recorder) blendSequence() []BlendMode {
	var out []BlendMode
	for _, c := range r.calls {
		if c.op == "SetBlendMode" && c.blend != BlendNormal {
			out = append(out, c.blend)
		}
	}
	return out
}

func (r *recorder) reset() {
	r.calls = r.calls[:0]
}

var errNoGPU = errors.New("no gpu")
