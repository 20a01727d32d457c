package uploadclient

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const (
	meterBarWidth     = 32
	meterRenderPeriod = 120 * time.Millisecond
)

// meter считает прогресс и рисует ASCII-индикатор со скоростью и оценкой
// оставшегося времени. Оценки чисто информационные: при нулевом времени или
// нулевой скорости они деградируют до прочерка, а не до деления на ноль.
type meter struct {
	out    io.Writer
	prefix string
	total  int64

	mu         sync.Mutex
	done       int64
	startedAt  time.Time
	lastRender time.Time
	lastWidth  int
	finished   bool
}

// newMeter возвращает счётчик; с nil-выводом все методы — no-op.
func newMeter(out io.Writer, prefix string, total int64) *meter {
	if out == nil {
		return nil
	}
	return &meter{
		out:       out,
		prefix:    prefix,
		total:     total,
		startedAt: time.Now(),
	}
}

func (m *meter) Add(n int64) {
	if m == nil || n < 0 {
		return
	}
	m.mu.Lock()
	m.done += n
	m.mu.Unlock()
	m.render(false, "")
}

func (m *meter) Finish() {
	if m == nil {
		return
	}
	m.complete(" done")
}

func (m *meter) Fail(err error) {
	if m == nil {
		return
	}
	m.complete(fmt.Sprintf(" failed: %v", err))
}

func (m *meter) complete(suffix string) {
	m.mu.Lock()
	if m.finished {
		m.mu.Unlock()
		return
	}
	m.finished = true
	line := m.lineLocked()
	pad := padding(m.lastWidth, len(line)+len(suffix))
	m.mu.Unlock()

	fmt.Fprintf(m.out, "\r%s%s%s\n", line, suffix, pad)
}

func (m *meter) render(force bool, suffix string) {
	m.mu.Lock()
	if m.finished {
		m.mu.Unlock()
		return
	}
	now := time.Now()
	if !force && now.Sub(m.lastRender) < meterRenderPeriod {
		m.mu.Unlock()
		return
	}
	line := m.lineLocked()
	pad := padding(m.lastWidth, len(line)+len(suffix))
	m.lastWidth = len(line) + len(suffix)
	m.lastRender = now
	m.mu.Unlock()

	fmt.Fprintf(m.out, "\r%s%s%s", line, suffix, pad)
}

func (m *meter) lineLocked() string {
	var b strings.Builder
	b.WriteString(m.prefix)
	b.WriteByte(' ')

	if m.total > 0 {
		ratio := float64(m.done) / float64(m.total)
		if ratio > 1 {
			ratio = 1
		}
		filled := int(ratio * meterBarWidth)
		b.WriteByte('[')
		b.WriteString(strings.Repeat("=", filled))
		b.WriteString(strings.Repeat(" ", meterBarWidth-filled))
		b.WriteString("] ")
		fmt.Fprintf(&b, "%3d%% ", int(ratio*100+0.5))
	}

	b.WriteString(humanBytes(m.done))
	if m.total > 0 {
		b.WriteByte('/')
		b.WriteString(humanBytes(m.total))
	}

	rate, eta := m.estimateLocked()
	if rate > 0 {
		fmt.Fprintf(&b, " %s/s", humanBytes(int64(rate)))
	}
	if eta > 0 {
		fmt.Fprintf(&b, " ETA %s", eta.Round(time.Second))
	}

	return b.String()
}

// estimateLocked возвращает мгновенную скорость и оценку остатка.
// Ноль в любом знаменателе даёт нулевые оценки, не NaN и не Inf.
func (m *meter) estimateLocked() (rate float64, eta time.Duration) {
	elapsed := time.Since(m.startedAt).Seconds()
	if elapsed <= 0 || m.done <= 0 {
		return 0, 0
	}

	rate = float64(m.done) / elapsed
	remaining := m.total - m.done
	if rate <= 0 || remaining <= 0 {
		return rate, 0
	}

	return rate, time.Duration(float64(remaining) / rate * float64(time.Second))
}

func padding(prev, cur int) string {
	if prev <= cur {
		return ""
	}
	return strings.Repeat(" ", prev-cur)
}

func humanBytes(v int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB", "PB"}
	value := float64(v)
	unit := 0
	for value >= 1024 && unit < len(units)-1 {
		value /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", v, units[unit])
	}
	return fmt.Sprintf("%.1f %s", value, units[unit])
}
