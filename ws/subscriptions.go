package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/ethereum/go-ethereum/common"
)

// Subscription is a handle on one active subscription. Unsubscribe stops
// delivery; Err yields the terminal error once the subscription ends.
type Subscription interface {
	Unsubscribe()
	Err() <-chan error
}

type subscription struct {
	cancel  context.CancelFunc
	errChan chan error
}

func (s *subscription) Unsubscribe()      { s.cancel() }
func (s *subscription) Err() <-chan error { return s.errChan }

// ===== Type-safe subscription methods =====

// SubscribeOrderUpdates subscribes to order lifecycle updates for a user
func (m *Client) SubscribeOrderUpdates(
	ctx context.Context,
	user common.Address,
	ch chan<- OrderUpdatesMessage,
) (Subscription, error) {
	return newWSSubscription(ctx, m, OrderUpdatesSubscription{User: user}, ch)
}

// SubscribeUserFills subscribes to fills for a user
func (m *Client) SubscribeUserFills(
	ctx context.Context,
	user common.Address,
	ch chan<- UserFillsMessage,
) (Subscription, error) {
	return newWSSubscription(ctx, m, UserFillsSubscription{User: user}, ch)
}

// SubscribeUserEvents subscribes to account events for a user
func (m *Client) SubscribeUserEvents(
	ctx context.Context,
	user common.Address,
	ch chan<- UserEventsMessage,
) (Subscription, error) {
	return newWSSubscription(ctx, m, UserEventsSubscription{User: user}, ch)
}

// newWSSubscription registers a subscription, wires its lifetime to ctx,
// and returns the handle. It centralizes error-channel and cleanup logic.
func newWSSubscription[T any](
	ctx context.Context,
	m *Client,
	sub SubscriptionType,
	ch chan<- T,
) (Subscription, error) {
	// Derived context that represents the lifetime of this subscription.
	subCtx, cancel := context.WithCancel(ctx)

	errChan := make(chan error, 1)
	id := m.nextSubscriptionID()

	// Register with the remote WS + internal maps.
	if err := subscribe(m, sub, ch, subCtx.Done(), id); err != nil {
		cancel()
		close(errChan)
		return nil, err
	}

	s := &subscription{
		cancel:  cancel,
		errChan: errChan,
	}

	// Single owner of errChan and of the unsubscribe cleanup.
	go func() {
		var err error
		select {
		case <-subCtx.Done():
			err = subCtx.Err()
		case <-m.stopChan:
			err = ErrClientClosed
		}
		cancel()

		// Best-effort send of the terminal error; non-blocking.
		select {
		case errChan <- err:
		default:
		}

		close(errChan)

		// Remove from client's subscription map.
		m.unsubscribeInternal(sub, id)
	}()

	return s, nil
}

// nextSubscriptionID increments and returns a unique subscription ID.
func (m *Client) nextSubscriptionID() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscriptionIDCounter++
	return m.subscriptionIDCounter
}

// subscribe registers the subscriber and sends the subscribe frame, or
// queues the frame when the server handshake has not arrived yet.
func subscribe[T any](
	m *Client,
	sub SubscriptionType,
	subscriberChan chan<- T,
	done <-chan struct{},
	id int64,
) error {
	identifier := sub.identifier()
	internalChan := make(chan T)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed() {
		return ErrClientClosed
	}

	// The venue multiplexes these channels once per connection; a second
	// subscription would silently shadow the first.
	if identifier == "userEvents" || identifier == "orderUpdates" {
		if len(m.activeSubscriptions[identifier]) != 0 {
			return fmt.Errorf(
				"cannot subscribe to %s multiple times",
				identifier,
			)
		}
	}

	m.activeSubscriptions[identifier] = append(
		m.activeSubscriptions[identifier],
		&channelSubscription{
			internalChan: internalChan,
			done:         done,
			id:           id,
		},
	)

	// Forward from the internal channel to the subscriber channel until
	// the subscription ends.
	go deliveryLoop(internalChan, subscriberChan, done)

	if !m.wsReady {
		m.pendingSends = append(m.pendingSends, pendingSend{sub: sub, id: id})
		return nil
	}

	sendSubscribeFrame(m.conn, sub)
	return nil
}

func sendSubscribeFrame(conn *websocket.Conn, sub SubscriptionType) {
	data, _ := json.Marshal(map[string]any{
		"method":       "subscribe",
		"subscription": sub.subscriptionPayload(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn.Write(ctx, websocket.MessageText, data)
}

func deliveryLoop[T any](
	internalChan chan T,
	subscriberChan chan<- T,
	done <-chan struct{},
) {
	for {
		select {
		case msg := <-internalChan:
			select {
			case subscriberChan <- msg:
			case <-done:
				return
			}
		case <-done:
			return
		}
	}
}

// unsubscribeInternal removes one subscriber. The last subscriber for an
// identifier also unsubscribes from the server, unless the subscribe
// frame was still queued and the server never saw it.
func (m *Client) unsubscribeInternal(
	sub SubscriptionType,
	subscriptionID int64,
) bool {
	identifier := sub.identifier()

	m.mu.Lock()

	removed := false
	remaining := make([]*channelSubscription, 0)
	for _, s := range m.activeSubscriptions[identifier] {
		if s.id == subscriptionID {
			removed = true
		} else {
			remaining = append(remaining, s)
		}
	}
	m.activeSubscriptions[identifier] = remaining

	wasPending := false
	pending := make([]pendingSend, 0, len(m.pendingSends))
	for _, p := range m.pendingSends {
		if p.id == subscriptionID {
			wasPending = true
		} else {
			pending = append(pending, p)
		}
	}
	m.pendingSends = pending

	conn := m.conn
	sendFrame := removed && len(remaining) == 0 && !wasPending &&
		m.wsReady && conn != nil
	m.mu.Unlock()

	if sendFrame {
		data, _ := json.Marshal(map[string]any{
			"method":       "unsubscribe",
			"subscription": sub.subscriptionPayload(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := conn.Write(ctx, websocket.MessageText, data)
		if err != nil && !closedConnError(err) {
			log.Printf("error sending unsubscribe message: %v", err)
		}
	}

	return removed
}

// closedConnError reports write errors that only mean the connection is
// already gone.
func closedConnError(err error) bool {
	return strings.Contains(err.Error(), "use of closed network connection") ||
		websocket.CloseStatus(err) == websocket.StatusNormalClosure
}
