package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/compactsheet/pkg/distribute"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times a layout run and reports what it produced.
type progress struct {
	logger     *log.Logger
	start      time.Time
	blocks     int
	splits     int
	overflowed int
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// record captures the block, split and overflow counts of d.
func (p *progress) record(d distribute.Distribution) {
	p.blocks = d.BlockCount()
	p.splits = d.Splits
	p.overflowed = len(d.Overflowed)
}

// done logs msg with the recorded counts and the elapsed time.
// Example output: "Distributed 3 units blocks=4 splits=1 (2ms)"
func (p *progress) done(msg string) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	kv := []any{"blocks", p.blocks, "splits", p.splits}
	if p.overflowed > 0 {
		kv = append(kv, "overflowed", p.overflowed)
	}
	p.logger.Info(fmt.Sprintf("%s (%s)", msg, elapsed), kv...)
}

// loggerKey is the context key for the command logger.
type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
