package lumen

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// FrameStats describes one update+draw cycle.
type FrameStats struct {
	Frame            uint64  `csv:"frame"`
	DeltaTime        float64 `csv:"dt"`
	FPS              float64 `csv:"fps"`
	Layers           int     `csv:"layers"`
	Particles        int     `csv:"particles"`
	ExpiredParticles int     `csv:"expired_particles"`
	RemovedParticles int     `csv:"removed_particles"`
	Lights           int     `csv:"lights"`
	LightTriangles   int     `csv:"light_triangles"`
	Silhouettes      int     `csv:"silhouettes"`
	UpdateMicros     int64   `csv:"update_us"`
	DrawMicros       int64   `csv:"draw_us"`
}

// Metrics receives per-frame statistics. It is handed to Scene.Tick (or
// called by the game loop after Draw) instead of living in global counters.
type Metrics interface {
	RecordFrame(stats FrameStats)
}

// MetricsFunc adapts a function to the Metrics interface.
type MetricsFunc func(stats FrameStats)

// RecordFrame calls f(stats).
func (f MetricsFunc) RecordFrame(stats FrameStats) { f(stats) }

// FPSCounter averages frame rate over a rolling window of frame deltas.
type FPSCounter struct {
	samples []float64
	next    int
	filled  int
	sum     float64
}

// NewFPSCounter creates a counter over window frames. A window below 1 uses 60.
func NewFPSCounter(window int) *FPSCounter {
	if window < 1 {
		window = 60
	}
	return &FPSCounter{samples: make([]float64, window)}
}

// Tick records a frame of dt seconds and returns the current average FPS.
func (c *FPSCounter) Tick(dt float64) float64 {
	if c.filled == len(c.samples) {
		c.sum -= c.samples[c.next]
	} else {
		c.filled++
	}
	c.samples[c.next] = dt
	c.sum += dt
	c.next = (c.next + 1) % len(c.samples)
	return c.FPS()
}

// FPS returns the average frames per second over the window, or 0 before
// any time has elapsed.
func (c *FPSCounter) FPS() float64 {
	if c.sum <= 0 {
		return 0
	}
	return float64(c.filled) / c.sum
}

// CSVMetrics writes one CSV row per recorded frame. The header is written
// with the first row. Rows are buffered and flushed every FlushEvery frames.
type CSVMetrics struct {
	w             io.Writer
	closer        io.Closer
	pending       []FrameStats
	headerWritten bool
	err           error

	// FlushEvery is the number of frames buffered between writes. Zero
	// flushes every frame.
	FlushEvery int
}

// NewCSVMetrics writes to w.
func NewCSVMetrics(w io.Writer) *CSVMetrics {
	return &CSVMetrics{w: w, FlushEvery: 60}
}

// CreateCSVMetrics creates (or truncates) the file at path.
func CreateCSVMetrics(path string) (*CSVMetrics, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating metrics csv: %w", err)
	}
	m := NewCSVMetrics(f)
	m.closer = f
	return m, nil
}

// RecordFrame buffers stats and flushes once FlushEvery frames are pending.
// After a write error, frames are dropped and the error is kept for Flush
// and Close.
func (m *CSVMetrics) RecordFrame(stats FrameStats) {
	if m.err != nil {
		return
	}
	m.pending = append(m.pending, stats)
	if len(m.pending) >= m.FlushEvery {
		m.err = m.Flush()
	}
}

// Flush writes buffered rows.
func (m *CSVMetrics) Flush() error {
	if m.err != nil {
		m.pending = m.pending[:0]
		return m.err
	}
	if len(m.pending) == 0 {
		return nil
	}
	var err error
	if !m.headerWritten {
		err = gocsv.Marshal(m.pending, m.w)
		m.headerWritten = true
	} else {
		err = gocsv.MarshalWithoutHeaders(m.pending, m.w)
	}
	m.pending = m.pending[:0]
	if err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file if CSVMetrics opened it.
func (m *CSVMetrics) Close() error {
	err := m.Flush()
	if m.closer != nil {
		if cerr := m.closer.Close(); err == nil {
			err = cerr
		}
		m.closer = nil
	}
	return err
}
