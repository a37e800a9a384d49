package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ProgressBar renders the simulated response counter on a terminal line.
// The counter advances on a fixed step, so the ETA is computed from the
// step rather than from the observed rate.
type ProgressBar struct {
	total       int
	current     int
	step        time.Duration
	startTime   time.Time
	output      io.Writer
	enabled     bool
	description string
	width       int
	now         func() time.Time
}

// NewProgressBar creates a progress bar for total responses that advance
// once per step.
func NewProgressBar(total int, step time.Duration, description string) *ProgressBar {
	return &ProgressBar{
		total:       total,
		step:        step,
		startTime:   time.Now(),
		output:      os.Stderr, // stdout carries the final message
		enabled:     true,
		description: description,
		width:       40,
		now:         time.Now,
	}
}

// SetOutput redirects rendering.
func (p *ProgressBar) SetOutput(w io.Writer) {
	p.output = w
}

// Disable disables the progress bar
func (p *ProgressBar) Disable() {
	p.enabled = false
}

// Set sets the current count and redraws.
func (p *ProgressBar) Set(n int) {
	p.current = n
	p.render()
}

// Percent is the share of the total reached, clamped to [0,100].
func (p *ProgressBar) Percent() float64 {
	if p.total <= 0 {
		return 0
	}
	percent := float64(p.current) / float64(p.total) * 100
	if percent > 100 {
		return 100
	}
	if percent < 0 {
		return 0
	}
	return percent
}

// ETA is the simulated time left until the counter reaches the total.
func (p *ProgressBar) ETA() time.Duration {
	remaining := p.total - p.current
	if remaining <= 0 {
		return 0
	}
	return time.Duration(remaining) * p.step
}

// Line returns the current bar without writing it.
func (p *ProgressBar) Line() string {
	percent := p.Percent()
	filled := int(float64(p.width) * percent / 100)
	if filled > p.width {
		filled = p.width
	}

	var bar strings.Builder
	bar.WriteString(strings.Repeat("=", filled))
	if filled < p.width {
		bar.WriteByte('>')
		bar.WriteString(strings.Repeat("-", p.width-filled-1))
	}

	elapsed := p.now().Sub(p.startTime)
	var output string
	if p.description != "" {
		output = fmt.Sprintf("%s [%s] %d/%d (%.1f%%) | Elapsed: %s", p.description, bar.String(), p.current, p.total, percent, formatDuration(elapsed))
	} else {
		output = fmt.Sprintf("[%s] %d/%d (%.1f%%) | Elapsed: %s", bar.String(), p.current, p.total, percent, formatDuration(elapsed))
	}
	if eta := p.ETA(); eta > 0 {
		output += fmt.Sprintf(" | ETA: %s", formatDuration(eta))
	}
	return output
}

func (p *ProgressBar) render() {
	if !p.enabled {
		return
	}
	fmt.Fprint(p.output, "\r"+p.Line())
}

// Finish draws the final count and ends the line.
func (p *ProgressBar) Finish(final int) {
	if !p.enabled {
		return
	}
	p.current = final
	p.render()
	fmt.Fprint(p.output, "\n")
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", minutes, seconds)
}
