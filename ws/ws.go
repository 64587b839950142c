// Package ws streams order lifecycle events for accounts whose prepared
// payloads have been signed and submitted elsewhere. It covers the
// orderUpdates, userFills, and user event channels.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"path"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/corvan/hl-prepare/rest"
)

// ErrClientClosed is delivered on subscription error channels when the
// client shuts down before the subscription is cancelled.
var ErrClientClosed = errors.New("websocket client closed")

// Client maintains one venue websocket connection and routes incoming
// frames to channel subscribers.
type Client struct {
	baseURL               string
	conn                  *websocket.Conn
	wsReady               bool
	subscriptionIDCounter int64
	pendingSends          []pendingSend
	activeSubscriptions   map[string][]*channelSubscription
	stopChan              chan struct{}
	closeOnce             sync.Once
	wg                    sync.WaitGroup
	mu                    sync.RWMutex
}

// pendingSend is a subscribe frame held back until the server confirms
// the connection with its handshake line.
type pendingSend struct {
	sub SubscriptionType
	id  int64
}

// channelSubscription is one registered subscriber for an identifier.
// done mirrors the subscription context so routing never blocks on a
// cancelled subscriber.
type channelSubscription struct {
	internalChan any
	done         <-chan struct{}
	id           int64
}

// New creates a websocket client for the given REST base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:             baseURL,
		activeSubscriptions: make(map[string][]*channelSubscription),
		stopChan:            make(chan struct{}),
	}
}

// NewFromRest creates a websocket client targeting the same venue as an
// existing REST transport, so the feed always follows the network the
// payloads were prepared for.
func NewFromRest(client rest.ClientInterface) *Client {
	return New(client.BaseUrl())
}

// Start dials the venue websocket and launches the read and ping loops.
func (m *Client) Start(ctx context.Context) error {
	u, err := url.Parse(m.baseURL)
	if err != nil {
		return fmt.Errorf("parse base URL %q: %w", m.baseURL, err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	// make sure we append "/ws" correctly, without double slashes
	u.Path = path.Join(u.Path, "ws")

	conn, _, err := websocket.Dial(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect to websocket: %w", err)
	}

	m.mu.Lock()
	m.conn = conn
	m.mu.Unlock()

	m.wg.Add(2)
	go m.readLoop()
	go m.pingLoop()

	return nil
}

// Close tears down the connection and stops the loops. Active
// subscriptions receive ErrClientClosed on their error channels.
func (m *Client) Close() {
	m.closeOnce.Do(func() {
		close(m.stopChan)

		m.mu.Lock()
		conn := m.conn
		m.mu.Unlock()

		if conn != nil {
			conn.Close(websocket.StatusNormalClosure, "closing")
		}

		m.wg.Wait()
	})
}

// closed reports whether Close has begun.
func (m *Client) closed() bool {
	select {
	case <-m.stopChan:
		return true
	default:
		return false
	}
}

// readLoop handles incoming frames until the connection goes away.
func (m *Client) readLoop() {
	defer m.wg.Done()

	m.mu.RLock()
	conn := m.conn
	m.mu.RUnlock()

	for {
		_, data, err := conn.Read(context.Background())
		if err != nil {
			if m.closed() ||
				websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				return
			}
			log.Printf("websocket read error: %v", err)
			return
		}

		if string(data) == "Websocket connection established." {
			log.Println("websocket connection established")
			m.flushPendingSends()
			continue
		}

		m.handleMessage(data)
	}
}

// flushPendingSends marks the connection ready and sends every subscribe
// frame queued before the server handshake line.
func (m *Client) flushPendingSends() {
	m.mu.Lock()
	m.wsReady = true
	pending := m.pendingSends
	m.pendingSends = nil
	conn := m.conn
	m.mu.Unlock()

	for _, p := range pending {
		sendSubscribeFrame(conn, p.sub)
	}
}

// pingLoop sends periodic pings to keep the connection alive.
func (m *Client) pingLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(50 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			m.mu.RLock()
			conn := m.conn
			m.mu.RUnlock()

			if conn == nil {
				return
			}

			msg := map[string]string{"method": "ping"}
			data, _ := json.Marshal(msg)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := conn.Write(ctx, websocket.MessageText, data)
			cancel()

			if err != nil {
				if !m.closed() {
					log.Printf("websocket ping error: %v", err)
				}
				return
			}
		}
	}
}
