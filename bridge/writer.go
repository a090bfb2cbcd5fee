package bridge

import (
	"io"
	"log/slog"
	"sync"
)

// WriterBridge reports lifecycle signals and the confirmed value as newline delimited JSON
// messages. It backs standalone runs where the host reads the widget's stdout.
type WriterBridge struct {
	mu     sync.Mutex
	w      io.Writer
	logger *slog.Logger
	ready  bool
}

// NewWriterBridge returns a bridge writing to w.
func NewWriterBridge(w io.Writer, logger *slog.Logger) *WriterBridge {
	return &WriterBridge{w: w, logger: logger}
}

// Ready writes componentReady. Subsequent calls are ignored.
func (b *WriterBridge) Ready() {
	b.mu.Lock()
	if b.ready {
		b.mu.Unlock()
		return
	}
	b.ready = true
	b.mu.Unlock()
	b.write(EncodeReady())
}

func (b *WriterBridge) SetFrameHeight(height int) { b.write(EncodeFrameHeight(height)) }

func (b *WriterBridge) SetComponentValue(v Value) {
	msg, err := EncodeComponentValue(v)
	if err != nil {
		if b.logger != nil {
			b.logger.Error("component value encode failed", "error", err)
		}
		return
	}
	b.write(msg)
}

func (b *WriterBridge) write(msg []byte) {
	if b == nil || b.w == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.w.Write(append(msg, '\n')); err != nil && b.logger != nil {
		b.logger.Error("bridge write failed", "error", err)
	}
}

var _ Bridge = (*WriterBridge)(nil)
