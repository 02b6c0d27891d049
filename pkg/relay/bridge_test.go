package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("bridge-test-secret")

func dialBridge(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	token, err := MintPairingToken(testSecret, time.Minute)
	require.NoError(t, err)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	header := http.Header{PairingHeader: []string{token}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	return conn
}

func TestBridgeRoundTrip(t *testing.T) {
	b := NewBridge(testSecret, time.Second)
	srv := httptest.NewServer(b)
	defer srv.Close()

	conn := dialBridge(t, srv)
	defer conn.Close()

	// Fake extension: answer every envelope with a 200.
	go func() {
		for {
			var env envelope
			if err := conn.ReadJSON(&env); err != nil {
				return
			}
			data, _ := json.Marshal(Response{Status: 200, Body: `{"records":[]}`})
			_ = conn.WriteJSON(reply{ID: env.ID, Success: true, Data: data})
		}
	}()

	require.NoError(t, b.WaitConnected(context.Background()))
	res := b.Send(context.Background(), Request{URL: "https://acme.my.salesforce.com/services/data", Method: "GET"})
	require.True(t, res.Success, res.Error)

	var resp Response
	require.NoError(t, json.Unmarshal(res.Data, &resp))
	assert.Equal(t, 200, resp.Status)
}

func TestBridgeDisconnectResolvesPending(t *testing.T) {
	b := NewBridge(testSecret, 10*time.Second)
	srv := httptest.NewServer(b)
	defer srv.Close()

	conn := dialBridge(t, srv)
	require.NoError(t, b.WaitConnected(context.Background()))

	done := make(chan Result, 1)
	go func() {
		done <- b.Send(context.Background(), Request{URL: "https://acme.my.salesforce.com/x", Method: "GET"})
	}()

	// Read the envelope so the send is in flight, then vanish without
	// replying.
	var env envelope
	require.NoError(t, conn.ReadJSON(&env))
	conn.Close()

	select {
	case res := <-done:
		assert.False(t, res.Success)
		assert.Contains(t, res.Error, "disconnected")
	case <-time.After(5 * time.Second):
		t.Fatal("send never resolved after disconnect")
	}
	assert.False(t, b.Connected())
}

func TestBridgeSendTimeout(t *testing.T) {
	b := NewBridge(testSecret, 100*time.Millisecond)
	srv := httptest.NewServer(b)
	defer srv.Close()

	conn := dialBridge(t, srv)
	defer conn.Close()
	require.NoError(t, b.WaitConnected(context.Background()))

	res := b.Send(context.Background(), Request{URL: "https://acme.my.salesforce.com/x", Method: "GET"})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "timed out")
}

func TestBridgeNotConnected(t *testing.T) {
	b := NewBridge(testSecret, time.Second)
	res := b.Send(context.Background(), Request{URL: "https://acme.my.salesforce.com/x", Method: "GET"})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "not connected")
}

func TestBridgeRejectsBadPairingToken(t *testing.T) {
	b := NewBridge(testSecret, time.Second)
	srv := httptest.NewServer(b)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	header := http.Header{PairingHeader: []string{"garbage"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	assert.Error(t, err)
	if resp != nil {
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestBridgeRejectsSecondConnection(t *testing.T) {
	b := NewBridge(testSecret, time.Second)
	srv := httptest.NewServer(b)
	defer srv.Close()

	conn := dialBridge(t, srv)
	defer conn.Close()
	require.NoError(t, b.WaitConnected(context.Background()))

	token, err := MintPairingToken(testSecret, time.Minute)
	require.NoError(t, err)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	header := http.Header{PairingHeader: []string{token}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	assert.Error(t, err)
	if resp != nil {
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	}
}

func TestPairingTokenExpiry(t *testing.T) {
	token, err := MintPairingToken(testSecret, -time.Minute)
	require.NoError(t, err)
	assert.Error(t, VerifyPairingToken(token, testSecret))

	token, err = MintPairingToken(testSecret, time.Minute)
	require.NoError(t, err)
	assert.NoError(t, VerifyPairingToken(token, testSecret))
	assert.Error(t, VerifyPairingToken(token, []byte("wrong")))
	assert.Error(t, VerifyPairingToken("", testSecret))
}
