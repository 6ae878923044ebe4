package lumen

import "testing"

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-light", "after-light"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueuePush(t *testing.T) {
	var q screenshotQueue
	q.Push("a")
	q.Push("b")
	if q.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", q.Pending())
	}
	if q.labels[0] != "a" || q.labels[1] != "b" {
		t.Errorf("queue = %v, want [a b]", q.labels)
	}
}

func TestScreenshotFlushEmptyIsNoOp(t *testing.T) {
	var q screenshotQueue
	if paths := q.Flush(nil, nil); paths != nil {
		t.Errorf("paths = %v, want nil", paths)
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half alpha
		10, 20, 30, 255, // opaque
		0, 0, 0, 0,      // transparent
	}
	img := unpremultiply(pixels, 3, 1)

	want := []byte{
		255, 127, 0, 128,
		10, 20, 30, 255,
		0, 0, 0, 0,
	}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Errorf("Pix[%d] = %d, want %d", i, img.Pix[i], want[i])
		}
	}
}
