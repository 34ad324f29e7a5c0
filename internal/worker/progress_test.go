package worker

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

// bar extracts the filled and empty cell counts of the last printed line.
func bar(t *testing.T, out string) (filled, empty int) {
	t.Helper()
	line := out[strings.LastIndex(out, "\r")+1:]
	open, end := strings.Index(line, "["), strings.Index(line, "]")
	if open < 0 || end < open {
		t.Fatalf("no bar in %q", line)
	}
	cells := line[open+1 : end]
	return strings.Count(cells, "█"), strings.Count(cells, "░")
}

func TestProgressBarFill(t *testing.T) {
	tests := []struct {
		name             string
		completed, total int
		wantFilled       int
	}{
		{name: "empty", completed: 0, total: 5, wantFilled: 0},
		{name: "half", completed: 5, total: 10, wantFilled: barWidth / 2},
		{name: "rounds down", completed: 1, total: 7, wantFilled: barWidth / 7},
		{name: "full", completed: 4, total: 4, wantFilled: barWidth},
		{name: "overshoot capped", completed: 9, total: 4, wantFilled: barWidth},
		{name: "zero total", completed: 0, total: 0, wantFilled: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := NewProgress(tt.total, true)
			p.output = &buf
			p.Update(tt.completed, tt.total, 0)

			filled, empty := bar(t, buf.String())
			if filled != tt.wantFilled {
				t.Errorf("filled = %d, want %d", filled, tt.wantFilled)
			}
			if filled+empty != barWidth {
				t.Errorf("bar has %d cells, want %d", filled+empty, barWidth)
			}
		})
	}
}

func TestProgressLine(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(4, true)
	p.output = &buf
	p.startTime = time.Now().Add(-8 * time.Second)

	p.Update(2, 4, 1)
	line := buf.String()
	for _, want := range []string{"2/4 textures", "(1 failed)", "textures/sec", "ETA:"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q lacks %q", line, want)
		}
	}

	buf.Reset()
	p.Update(4, 4, 1)
	p.Done()
	out := buf.String()
	if !strings.Contains(out, "Done in 8s") {
		t.Errorf("finished line %q lacks elapsed time", out)
	}
	if strings.Contains(out, "ETA:") {
		t.Errorf("finished line %q still shows an ETA", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("Done should end the line")
	}
}

func TestProgressZeroTotalDone(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(0, true)
	p.output = &buf
	p.Done()

	out := buf.String()
	if !strings.Contains(out, "0/0 textures") || !strings.Contains(out, "Done in") {
		t.Errorf("empty batch line %q", out)
	}
	if !strings.Contains(p.Summary(), "Generated 0/0 textures (0 failed)") {
		t.Errorf("summary %q", p.Summary())
	}
}

func TestProgressSnapshot(t *testing.T) {
	p := NewProgress(6, false)
	p.startTime = time.Now().Add(-2 * time.Second)
	p.Callback()(3, 6, 2)

	completed, total, failed, elapsed := p.snapshot()
	if completed != 3 || total != 6 || failed != 2 {
		t.Errorf("snapshot = %d/%d (%d failed)", completed, total, failed)
	}
	if elapsed < 2*time.Second {
		t.Errorf("elapsed %v shorter than the simulated start", elapsed)
	}
	if got := p.Summary(); !strings.Contains(got, "Generated 1/6 textures (2 failed)") {
		t.Errorf("summary %q should count only successes", got)
	}
}

func TestProgressDisabledIsSilent(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(3, false)
	p.output = &buf
	p.Update(1, 3, 0)
	p.Done()
	if buf.Len() != 0 {
		t.Errorf("disabled progress wrote %q", buf.String())
	}
}

func TestProgressTracksPool(t *testing.T) {
	tasks := make([]Task, 12)
	for i := range tasks {
		tasks[i] = Task{Name: "t", Generator: &mockGenerator{fail: i%4 == 0}, Width: 2, Height: 2}
	}

	p := NewProgress(len(tasks), false)
	New(Config{Workers: 4, OnProgress: p.Callback()}).Run(context.Background(), tasks)

	completed, total, failed, _ := p.snapshot()
	if completed != 12 || total != 12 || failed != 3 {
		t.Errorf("after run: %d/%d (%d failed), want 12/12 (3 failed)", completed, total, failed)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{0, "0s"},
		{42 * time.Second, "42s"},
		{61 * time.Second, "1m1s"},
		{59*time.Minute + 59*time.Second, "59m59s"},
		{3*time.Hour + 7*time.Minute, "3h7m"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.duration); got != tt.want {
			t.Errorf("formatDuration(%v) = %s, want %s", tt.duration, got, tt.want)
		}
	}
}
