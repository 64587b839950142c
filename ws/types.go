package ws

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/corvan/hl-prepare/types"
)

// ===== Subscription Types =====

// SubscriptionType describes a venue subscription: the channel its frames
// arrive on, the routing identifier, and the subscribe payload.
type SubscriptionType interface {
	channelName() string
	identifier() string
	subscriptionPayload() any
}

// OrderUpdatesSubscription subscribes to order lifecycle updates for a user
type OrderUpdatesSubscription struct {
	User common.Address
}

func (s OrderUpdatesSubscription) channelName() string { return "orderUpdates" }
func (s OrderUpdatesSubscription) identifier() string  { return "orderUpdates" }
func (s OrderUpdatesSubscription) subscriptionPayload() any {
	return map[string]any{"type": "orderUpdates", "user": s.User}
}

// UserFillsSubscription subscribes to fills for a user
type UserFillsSubscription struct {
	User common.Address
}

func (s UserFillsSubscription) channelName() string { return "userFills" }
func (s UserFillsSubscription) identifier() string {
	return fmt.Sprintf("userFills:%s", strings.ToLower(s.User.Hex()))
}
func (s UserFillsSubscription) subscriptionPayload() any {
	return map[string]any{"type": "userFills", "user": s.User}
}

// UserEventsSubscription subscribes to account events for a user. The
// venue delivers these frames on the "user" channel.
type UserEventsSubscription struct {
	User common.Address
}

func (s UserEventsSubscription) channelName() string { return "user" }
func (s UserEventsSubscription) identifier() string  { return "userEvents" }
func (s UserEventsSubscription) subscriptionPayload() any {
	return map[string]any{"type": "userEvents", "user": s.User}
}

// ===== Message Types =====

// BasicOrder is the order body inside an order update.
type BasicOrder struct {
	Coin      string            `json:"coin"`
	Side      string            `json:"side"` // "A" or "B"
	LimitPx   types.FloatString `json:"limitPx"`
	Sz        types.FloatString `json:"sz"`
	Oid       int64             `json:"oid"`
	Timestamp int64             `json:"timestamp"`
	OrigSz    types.FloatString `json:"origSz"`
	Cloid     *types.Cloid      `json:"cloid,omitempty"`
}

// OrderUpdate is one order lifecycle transition.
type OrderUpdate struct {
	Order           BasicOrder `json:"order"`
	Status          string     `json:"status"`
	StatusTimestamp int64      `json:"statusTimestamp"`
}

// OrderUpdatesMessage contains a batch of order updates
type OrderUpdatesMessage []OrderUpdate

// Fill represents a user fill/trade execution
type Fill struct {
	Coin          string            `json:"coin"`
	Px            types.FloatString `json:"px"`
	Sz            types.FloatString `json:"sz"`
	Side          string            `json:"side"`
	Time          int64             `json:"time"`
	StartPosition types.FloatString `json:"startPosition"`
	Dir           string            `json:"dir"`
	ClosedPnl     types.FloatString `json:"closedPnl"`
	Hash          string            `json:"hash"`
	Oid           int64             `json:"oid"`
	Crossed       bool              `json:"crossed"`
	Fee           types.FloatString `json:"fee"`
	Tid           int64             `json:"tid"`
	FeeToken      string            `json:"feeToken"`
	Cloid         *types.Cloid      `json:"cloid,omitempty"`
}

// UserFillsMessage contains user fill data
type UserFillsMessage struct {
	User       common.Address `json:"user"`
	IsSnapshot bool           `json:"isSnapshot"`
	Fills      []Fill         `json:"fills"`
}

// Funding is a funding payment applied to a position.
type Funding struct {
	Time        int64             `json:"time"`
	Coin        string            `json:"coin"`
	Usdc        types.FloatString `json:"usdc"`
	Szi         types.FloatString `json:"szi"`
	FundingRate types.FloatString `json:"fundingRate"`
}

// Liquidation describes a forced close of a user position.
type Liquidation struct {
	Lid                    int64             `json:"lid"`
	Liquidator             common.Address    `json:"liquidator"`
	LiquidatedUser         common.Address    `json:"liquidated_user"`
	LiquidatedNtlPos       types.FloatString `json:"liquidated_ntl_pos"`
	LiquidatedAccountValue types.FloatString `json:"liquidated_account_value"`
}

// NonUserCancel is a venue-initiated order cancel.
type NonUserCancel struct {
	Coin string `json:"coin"`
	Oid  int64  `json:"oid"`
}

// UserEventsMessage is one account event. Exactly one field is set.
type UserEventsMessage struct {
	Fills          []Fill          `json:"fills,omitempty"`
	Funding        *Funding        `json:"funding,omitempty"`
	Liquidation    *Liquidation    `json:"liquidation,omitempty"`
	NonUserCancels []NonUserCancel `json:"nonUserCancel,omitempty"`
}
