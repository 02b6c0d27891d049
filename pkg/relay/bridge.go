package relay

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// PairingHeader carries the relay pairing token on the extension's
// WebSocket handshake.
const PairingHeader = "X-Cpqscope-Relay-Token"

// DefaultSendTimeout bounds how long one Send waits for the extension, so a
// vanished privileged side cannot stall callers forever. 30s is generous for
// a single REST call while still guaranteeing resolution.
const DefaultSendTimeout = 30 * time.Second

// Bridge accepts one companion-extension connection over WebSocket and
// forwards proxy requests to it. Each request is correlated to its reply by
// id; a disconnect or timeout fails the affected sends instead of hanging
// them.
type Bridge struct {
	mu      sync.Mutex
	writeMu sync.Mutex // serializes writes to conn

	conn    *websocket.Conn
	pending map[string]chan Result
	timeout time.Duration
	secret  []byte

	upgrader websocket.Upgrader
}

// NewBridge builds a Bridge verifying pairing tokens against secret.
// A zero timeout selects DefaultSendTimeout.
func NewBridge(secret []byte, timeout time.Duration) *Bridge {
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	return &Bridge{
		pending: make(map[string]chan Result),
		timeout: timeout,
		secret:  secret,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// Extensions connect with a chrome-extension:// origin;
				// direct local tools send none.
				return origin == "" || strings.HasPrefix(origin, "chrome-extension://")
			},
		},
	}
}

// Connected reports whether an extension is attached.
func (b *Bridge) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conn != nil
}

// WaitConnected blocks until an extension attaches or ctx expires.
func (b *Bridge) WaitConnected(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		if b.Connected() {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("no browser extension connected: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// Send forwards one request to the connected extension and resolves exactly
// once: with the extension's reply, a timeout failure, or a disconnect
// failure.
func (b *Bridge) Send(ctx context.Context, req Request) Result {
	b.mu.Lock()
	conn := b.conn
	b.mu.Unlock()
	if conn == nil {
		return Fail("browser extension not connected; open the org in your browser with the cpqscope extension enabled")
	}

	id := uuid.NewString()
	ch := make(chan Result, 1)
	b.mu.Lock()
	b.pending[id] = ch
	b.mu.Unlock()

	b.writeMu.Lock()
	err := conn.WriteJSON(envelope{Type: MessageType, ID: id, Payload: req})
	b.writeMu.Unlock()
	if err != nil {
		b.drop(id)
		return Fail("relay write failed: " + err.Error())
	}

	timer := time.NewTimer(b.timeout)
	defer timer.Stop()
	select {
	case res := <-ch:
		return res
	case <-timer.C:
		b.drop(id)
		return Fail(fmt.Sprintf("relay request timed out after %s", b.timeout))
	case <-ctx.Done():
		b.drop(id)
		return Fail("relay request canceled: " + ctx.Err().Error())
	}
}

func (b *Bridge) drop(id string) {
	b.mu.Lock()
	delete(b.pending, id)
	b.mu.Unlock()
}

// ServeHTTP upgrades the extension's WebSocket connection and pumps replies
// until it disconnects. Only one extension may be attached at a time.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if len(b.secret) > 0 {
		if err := VerifyPairingToken(r.Header.Get(PairingHeader), b.secret); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
	}

	b.mu.Lock()
	if b.conn != nil {
		b.mu.Unlock()
		http.Error(w, "extension already connected", http.StatusConflict)
		return
	}
	b.mu.Unlock()

	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	b.mu.Lock()
	b.conn = conn
	b.mu.Unlock()

	for {
		var rep reply
		if err := conn.ReadJSON(&rep); err != nil {
			break
		}
		b.mu.Lock()
		ch := b.pending[rep.ID]
		delete(b.pending, rep.ID)
		b.mu.Unlock()
		if ch == nil {
			continue // late reply to a timed-out request
		}
		if rep.Success {
			ch <- Result{Success: true, Data: rep.Data}
		} else {
			ch <- Fail(rep.Error)
		}
	}

	// Disconnect: fail everything still in flight so no caller hangs.
	b.mu.Lock()
	b.conn = nil
	pending := b.pending
	b.pending = make(map[string]chan Result)
	b.mu.Unlock()
	conn.Close()
	for _, ch := range pending {
		ch <- Fail("browser extension disconnected before responding")
	}
}
