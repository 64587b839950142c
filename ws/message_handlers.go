package ws

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// frame is the envelope every venue message arrives in.
type frame struct {
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
}

// handleMessage routes one incoming frame to its subscribers.
func (m *Client) handleMessage(data []byte) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		log.Printf("failed to unmarshal ws message: %v", err)
		return
	}

	if f.Channel == "" {
		log.Println("websocket message missing channel field")
		return
	}

	switch f.Channel {
	case "pong":
		log.Println("websocket received pong")
	case "subscriptionResponse":
		// Don't care about these
	case "orderUpdates":
		m.handleOrderUpdates(f.Data)
	case "userFills":
		m.handleUserFills(f.Data)
	case "user":
		m.handleUserEvents(f.Data)
	default:
		log.Printf("websocket unknown channel: %s", f.Channel)
	}
}

func (m *Client) handleOrderUpdates(data json.RawMessage) {
	if len(data) == 0 {
		return
	}

	var msg OrderUpdatesMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("failed to unmarshal orderUpdates message: %v", err)
		return
	}

	if len(msg) == 0 {
		return
	}

	routeMessage(m, "orderUpdates", msg)
}

func (m *Client) handleUserFills(data json.RawMessage) {
	if len(data) == 0 {
		return
	}

	var msg UserFillsMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("failed to unmarshal userFills message: %v", err)
		return
	}

	identifier := fmt.Sprintf("userFills:%s", strings.ToLower(msg.User.Hex()))
	routeMessage(m, identifier, msg)
}

func (m *Client) handleUserEvents(data json.RawMessage) {
	if len(data) == 0 {
		return
	}

	var msg UserEventsMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("failed to unmarshal userEvents message: %v", err)
		return
	}

	routeMessage(m, "userEvents", msg)
}

// routeMessage routes a message to all subscriptions registered for that
// identifier.
func routeMessage[T any](m *Client, identifier string, msg T) {
	m.mu.RLock()
	subscriptions := m.activeSubscriptions[identifier]
	m.mu.RUnlock()

	if len(subscriptions) == 0 {
		log.Printf(
			"websocket message from unexpected subscription: %s",
			identifier,
		)
		return
	}

	for _, sub := range subscriptions {
		ch, ok := sub.internalChan.(chan T)
		if !ok {
			panic(
				fmt.Sprintf(
					"subscription internal channel has wrong type for %s (id: %d)",
					identifier,
					sub.id,
				),
			)
		}

		select {
		case ch <- msg:
		case <-sub.done:
		}
	}
}
