package lumen

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Rect.Contains ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

// --- Rect.Overlaps ---

func TestRectOverlaps(t *testing.T) {
	base := Rect{10, 10, 100, 100}
	tests := []struct {
		name   string
		other  Rect
		expect bool
	}{
		{"overlapping", Rect{50, 50, 100, 100}, true},
		{"fully contained", Rect{20, 20, 10, 10}, true},
		{"containing", Rect{0, 0, 200, 200}, true},
		{"adjacent right", Rect{110, 10, 50, 50}, false},
		{"adjacent bottom", Rect{10, 110, 50, 50}, false},
		{"adjacent left", Rect{-50, 10, 60, 50}, false},
		{"adjacent top", Rect{10, -50, 50, 60}, false},
		{"disjoint", Rect{200, 200, 5, 5}, false},
		{"same rect", Rect{10, 10, 100, 100}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base.Overlaps(tt.other)
			if got != tt.expect {
				t.Errorf("Rect%v.Overlaps(Rect%v) = %v, want %v", base, tt.other, got, tt.expect)
			}
		})
	}
}

func TestRectIsFinite(t *testing.T) {
	if !(Rect{1, 2, 3, 4}).IsFinite() {
		t.Error("finite rect reported non-finite")
	}
	if (Rect{1, math.NaN(), 3, 4}).IsFinite() {
		t.Error("NaN rect reported finite")
	}
}

// --- BlendMode.EbitenBlend ---

func TestBlendModeEbitenBlend(t *testing.T) {
	if got := BlendNormal.EbitenBlend(); got != ebiten.BlendSourceOver {
		t.Errorf("BlendNormal = %v", got)
	}
	if got := BlendAdd.EbitenBlend(); got != ebiten.BlendLighter {
		t.Errorf("BlendAdd = %v", got)
	}

	sub := BlendSubtract.EbitenBlend()
	if sub.BlendOperationRGB != ebiten.BlendOperationReverseSubtract ||
		sub.BlendOperationAlpha != ebiten.BlendOperationReverseSubtract {
		t.Errorf("BlendSubtract must compute destination minus source: %+v", sub)
	}
	if sub.BlendFactorSourceAlpha != ebiten.BlendFactorOne || sub.BlendFactorDestinationAlpha != ebiten.BlendFactorOne {
		t.Errorf("BlendSubtract factors = %+v, want One/One", sub)
	}

	if BlendMultiply.EbitenBlend() == (ebiten.Blend{}) {
		t.Error("BlendMultiply returned zero blend")
	}
}

// --- Enum constant values (catch accidental iota drift) ---

func TestEnumValues(t *testing.T) {
	if BlendNormal != 0 || BlendAdd != 1 || BlendSubtract != 2 || BlendMultiply != 3 {
		t.Error("BlendMode iota drift")
	}
	if ShapeRectangle != 0 || ShapeCircle != 1 {
		t.Error("ShapeKind iota drift")
	}
	if ExpiryAdvisory != 0 || ExpiryRemove != 1 {
		t.Error("ExpiryPolicy iota drift")
	}
	for _, m := range []BlendMode{BlendNormal, BlendAdd, BlendSubtract, BlendMultiply} {
		if m.String() == "unknown" {
			t.Errorf("BlendMode %d has no name", m)
		}
	}
}

// --- Color ---

func TestColorPremultiplied(t *testing.T) {
	r, g, b, a := Color{R: 1, G: 0.5, B: 2, A: 0.5}.Premultiplied()
	if r != 0.5 || g != 0.25 || b != 0.5 || a != 0.5 {
		t.Errorf("Premultiplied = %v %v %v %v", r, g, b, a)
	}
	_, _, _, ca := ColorWhite.RGBA()
	if ca != 0xffff {
		t.Errorf("white alpha = %#x, want 0xffff", ca)
	}
	assertNear(t, "AlphaByte(255)", AlphaByte(255), 1)
	assertNear(t, "AlphaByte(0)", AlphaByte(0), 0)
}

func BenchmarkRectOverlaps(b *testing.B) {
	a := Rect{0, 0, 10, 10}
	o := Rect{5, 5, 10, 10}
	for i := 0; i < b.N; i++ {
		_ = a.Overlaps(o)
	}
}
