package lumen

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// screenshotQueue collects labels requested during a frame and writes the
// composed frame once per label at the end of Draw.
type screenshotQueue struct {
	dir    string
	labels []string
	now    func() time.Time
}

// Push queues a labeled capture for the end of the current frame.
func (q *screenshotQueue) Push(label string) {
	q.labels = append(q.labels, label)
}

// Pending reports the number of queued captures.
func (q *screenshotQueue) Pending() int { return len(q.labels) }

// Flush writes every queued capture of screen as a PNG file and empties the
// queue. It returns the written paths.
func (q *screenshotQueue) Flush(screen *ebiten.Image, logger *slog.Logger) []string {
	if len(q.labels) == 0 {
		return nil
	}
	defer func() { q.labels = q.labels[:0] }()

	if err := os.MkdirAll(q.dir, 0o755); err != nil {
		logger.Error("screenshot: mkdir", "dir", q.dir, "err", err)
		return nil
	}

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, w, h)

	now := time.Now
	if q.now != nil {
		now = q.now
	}
	stamp := now().Format("20060102_150405")

	paths := make([]string, 0, len(q.labels))
	for _, label := range q.labels {
		path := filepath.Join(q.dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			logger.Error("screenshot", "err", err)
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

// unpremultiply converts premultiplied RGBA pixels to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
