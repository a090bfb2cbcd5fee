package bridge

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
)

const (
	writeWait     = 5 * time.Second
	rendersBuffer = 8
	sendQueueSize = 32
)

// ErrSendQueueFull is returned when the host connection is not draining outbound messages.
var ErrSendQueueFull = errors.New("bridge: send queue full")

// hostConn is one attached host. Outbound messages go through send and are written by a
// dedicated goroutine so UI-thread callers never block on the socket.
type hostConn struct {
	ws   *websocket.Conn
	send chan []byte
	done chan struct{}
}

func newHostConn(ws *websocket.Conn) *hostConn {
	return &hostConn{ws: ws, send: make(chan []byte, sendQueueSize), done: make(chan struct{})}
}

// WSBridge attaches the widget to a host over a websocket. The host sends render messages
// carrying Args; widget signals are written back as JSON messages. Only one host connection
// is active at a time; a new connection replaces the old one.
type WSBridge struct {
	ID       uuid.UUID
	logger   *slog.Logger
	upgrader websocket.Upgrader
	renders  chan Args

	mtx    sync.Mutex
	host   *hostConn
	ready  bool
	height int
}

// NewWSBridge creates a bridge with a fresh instance id.
func NewWSBridge(logger *slog.Logger) *WSBridge {
	return &WSBridge{
		ID:      uuid.New(),
		logger:  logger,
		renders: make(chan Args, rendersBuffer),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Renders delivers host arguments in arrival order. Consumers drain it on the UI thread.
func (b *WSBridge) Renders() <-chan Args { return b.renders }

// Handler upgrades the request and serves the host connection until it closes.
func (b *WSBridge) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if b.logger != nil {
			b.logger.Error("websocket upgrade failed", "error", err)
		}
		return
	}
	hc := newHostConn(conn)
	go b.writeLoop(hc)

	b.mtx.Lock()
	if b.host != nil {
		_ = b.host.ws.Close()
	}
	b.host = hc
	// Late hosts still need the lifecycle state the widget already announced.
	if b.ready {
		_ = b.enqueueLocked(EncodeReady())
		if b.height > 0 {
			_ = b.enqueueLocked(EncodeFrameHeight(b.height))
		}
	}
	b.mtx.Unlock()
	if b.logger != nil {
		b.logger.Info("host connected", "instance", b.ID.String(), "remote", r.RemoteAddr)
	}
	b.readLoop(hc)
}

func (b *WSBridge) readLoop(hc *hostConn) {
	defer func() {
		if rec := recover(); rec != nil && b.logger != nil {
			b.logger.Error("bridge read panic", "error", rec, "stack", string(debug.Stack()))
		}
		b.mtx.Lock()
		if b.host == hc {
			b.host = nil
		}
		b.mtx.Unlock()
		close(hc.done)
		_ = hc.ws.Close()
	}()
	for {
		_, data, err := hc.ws.ReadMessage()
		if err != nil {
			if b.logger != nil && websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				b.logger.Warn("host connection closed", "error", err)
			}
			return
		}
		switch typ := gjson.GetBytes(data, "type").String(); typ {
		case TypeRender:
			args, err := ParseArgs([]byte(gjson.GetBytes(data, "args").Raw))
			if err != nil {
				if b.logger != nil {
					b.logger.Warn("render args rejected", "error", err)
				}
				continue
			}
			b.pushRender(args)
		default:
			if b.logger != nil {
				b.logger.Debug("ignoring host message", "type", typ)
			}
		}
	}
}

// writeLoop drains hc.send until the connection's read side ends. A failed write closes
// the socket, which in turn ends the read loop.
func (b *WSBridge) writeLoop(hc *hostConn) {
	for {
		select {
		case msg := <-hc.send:
			_ = hc.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := hc.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				b.logSend(err, gjson.GetBytes(msg, "type").String())
				_ = hc.ws.Close()
				return
			}
		case <-hc.done:
			return
		}
	}
}

// pushRender queues args, dropping the oldest pending render when the consumer lags.
func (b *WSBridge) pushRender(args Args) {
	for {
		select {
		case b.renders <- args:
			return
		default:
		}
		select {
		case <-b.renders:
		default:
		}
	}
}

func (b *WSBridge) Ready() {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	if b.ready {
		return
	}
	b.ready = true
	b.logSend(b.enqueueLocked(EncodeReady()), TypeComponentReady)
}

func (b *WSBridge) SetFrameHeight(height int) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	b.height = height
	b.logSend(b.enqueueLocked(EncodeFrameHeight(height)), TypeSetFrameHeight)
}

func (b *WSBridge) SetComponentValue(v Value) {
	msg, err := EncodeComponentValue(v)
	if err != nil {
		if b.logger != nil {
			b.logger.Error("component value encode failed", "error", err)
		}
		return
	}
	b.mtx.Lock()
	defer b.mtx.Unlock()
	err = b.enqueueLocked(msg)
	if err != nil && b.logger != nil {
		b.logger.Warn("confirmed value dropped", "error", err)
	}
}

// enqueueLocked hands msg to the active host's writer without blocking.
func (b *WSBridge) enqueueLocked(msg []byte) error {
	if b.host == nil {
		return ErrNoConnection
	}
	select {
	case b.host.send <- msg:
		return nil
	default:
		return ErrSendQueueFull
	}
}

func (b *WSBridge) logSend(err error, typ string) {
	if err == nil || b.logger == nil {
		return
	}
	if errors.Is(err, ErrNoConnection) {
		b.logger.Debug("no host attached", "type", typ)
		return
	}
	b.logger.Error("bridge send failed", "type", typ, "error", err)
}

// ListenAndServe serves the bridge at /ws on addr until ctx is cancelled.
func (b *WSBridge) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", b.Handler)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if b.logger != nil {
		b.logger.Info("bridge listening", "addr", addr, "instance", b.ID.String())
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close drops the active host connection, if any.
func (b *WSBridge) Close() {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	if b.host != nil {
		_ = b.host.ws.Close()
		b.host = nil
	}
}

var _ Bridge = (*WSBridge)(nil)
