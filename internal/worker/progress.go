package worker

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const barWidth = 30

// Progress tracks and renders batch progress on a single terminal line.
type Progress struct {
	startTime time.Time
	output    io.Writer
	total     int
	completed int
	failed    int
	mu        sync.RWMutex
	enabled   bool
}

// NewProgress creates a tracker for total tasks. Output goes to stderr
// only when enabled.
func NewProgress(total int, enabled bool) *Progress {
	return &Progress{
		total:     total,
		startTime: time.Now(),
		output:    os.Stderr,
		enabled:   enabled,
	}
}

// Update records the latest counters.
func (p *Progress) Update(completed, total, failed int) {
	p.mu.Lock()
	p.completed, p.total, p.failed = completed, total, failed
	p.mu.Unlock()

	if p.enabled {
		p.Print()
	}
}

// Callback returns a ProgressFunc suitable for Config.OnProgress.
func (p *Progress) Callback() ProgressFunc {
	return p.Update
}

func (p *Progress) snapshot() (completed, total, failed int, elapsed time.Duration) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.completed, p.total, p.failed, time.Since(p.startTime)
}

// Print writes the current progress line.
func (p *Progress) Print() {
	completed, total, failed, elapsed := p.snapshot()

	var rate float64
	var eta time.Duration
	if completed > 0 && elapsed > 0 {
		rate = float64(completed) / elapsed.Seconds()
		eta = time.Duration(float64(total-completed)/rate) * time.Second
	}

	filled := 0
	if total > 0 {
		filled = min(completed*barWidth/total, barWidth)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\r[%s%s] %d/%d textures",
		strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled), completed, total)
	if failed > 0 {
		fmt.Fprintf(&b, " (%d failed)", failed)
	}
	fmt.Fprintf(&b, " - %.1f textures/sec", rate)
	switch {
	case completed >= total:
		fmt.Fprintf(&b, " - Done in %s", formatDuration(elapsed))
	case eta > 0:
		fmt.Fprintf(&b, " - ETA: %s", formatDuration(eta))
	}
	// Trailing spaces clear leftovers of a longer previous line.
	b.WriteString("          ")

	fmt.Fprint(p.output, b.String())
}

// Done prints the final line and a newline.
func (p *Progress) Done() {
	if p.enabled {
		p.Print()
		fmt.Fprintln(p.output)
	}
}

// Summary describes the finished batch.
func (p *Progress) Summary() string {
	completed, total, failed, elapsed := p.snapshot()

	var rate float64
	if elapsed.Seconds() > 0 {
		rate = float64(completed) / elapsed.Seconds()
	}
	return fmt.Sprintf("Generated %d/%d textures (%d failed) in %s (%.1f textures/sec)",
		completed-failed, total, failed, formatDuration(elapsed), rate)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
