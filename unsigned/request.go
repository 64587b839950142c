package unsigned

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/samber/mo"

	"github.com/corvan/hl-prepare/internal/utils"
	"github.com/corvan/hl-prepare/types"
)

// ============================================================================
// Interfaces
// ============================================================================

// signingScheme identifies which signing domain covers an action.
type signingScheme int

const (
	// schemeAgent actions are hashed with msgpack into a connection id and
	// wrapped in the agent envelope. An agent key may sign them.
	schemeAgent signingScheme = iota
	// schemeUserSigned actions are typed-data structs in their own right and
	// must be signed by the account owner key.
	schemeUserSigned
)

// action is an interface for all action types that can be prepared for
// signing. Every variant declares the signing domain that covers it, so a
// new action kind cannot be added without deciding its domain.
type action interface {
	getType() string
	signingScheme() signingScheme
}

// userSignedAction is an action whose own fields form the typed-data message.
type userSignedAction interface {
	action
	primaryType() string
	typedDataTypes() []apitypes.Type
	typedDataMessage() apitypes.TypedDataMessage
}

// request is an interface for all request types that can be converted to an
// action.
type request interface {
	toAction(b *Builder, opts ...any) (action, error)
}

// ============================================================================
// Order Types
// ============================================================================

type OrderType struct {
	Limit   *LimitOrder
	Trigger *TriggerOrder
}

type LimitOrder struct {
	Tif string `json:"tif" msgpack:"tif"`
}

type TriggerOrder struct {
	IsMarket  bool
	TriggerPx float64
	TpSl      string
}

type orderTypeWire struct {
	Limit   *LimitOrder       `json:"limit,omitempty" msgpack:"limit,omitempty"`
	Trigger *triggerOrderWire `json:"trigger,omitempty" msgpack:"trigger,omitempty"`
}

type triggerOrderWire struct {
	IsMarket  bool   `json:"isMarket" msgpack:"isMarket"`
	TriggerPx string `json:"triggerPx" msgpack:"triggerPx"`
	TpSl      string `json:"tpsl" msgpack:"tpsl"`
}

func (o OrderType) toWire() (orderTypeWire, error) {
	wire := orderTypeWire{}
	if o.Limit != nil {
		wire.Limit = o.Limit
	}
	if o.Trigger != nil {
		triggerPx, err := utils.FloatToWire(o.Trigger.TriggerPx)
		if err != nil {
			return orderTypeWire{}, fmt.Errorf("failed to convert trigger price: %w", err)
		}
		wire.Trigger = &triggerOrderWire{
			IsMarket:  o.Trigger.IsMarket,
			TriggerPx: triggerPx,
			TpSl:      o.Trigger.TpSl,
		}
	}
	return wire, nil
}

type BuilderInfo struct {
	// Public address of the builder
	PublicAddress common.Address
	// Amount of the fee in tenths of basis points.
	// eg. 10 means 1 basis point
	FeeAmount int64
}

// builderWire is the hashed form of BuilderInfo. The address travels as a
// lowercase hex string, never as raw bytes.
type builderWire struct {
	B string `json:"b" msgpack:"b"`
	F int64  `json:"f" msgpack:"f"`
}

func (b BuilderInfo) toWire() builderWire {
	return builderWire{
		B: strings.ToLower(b.PublicAddress.Hex()),
		F: b.FeeAmount,
	}
}

// ============================================================================
// Order Request
// ============================================================================

type OrderRequest struct {
	coin       string
	isBuy      bool
	size       float64
	limitPx    float64
	orderType  OrderType
	reduceOnly bool
	cloid      mo.Option[types.Cloid]
}

type orderRequestConfig struct {
	reduceOnly   bool
	cloid        mo.Option[types.Cloid]
	limitOrder   *LimitOrder
	triggerOrder *TriggerOrder
}

type orderRequestOption func(*orderRequestConfig)

// NewOrderRequest creates an order request. One of WithLimitOrder or
// WithTriggerOrder must be provided.
func NewOrderRequest(coin string, isBuy bool, size float64, limitPx float64, opts ...orderRequestOption) OrderRequest {
	cfg := orderRequestConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	orderType := OrderType{}
	if cfg.limitOrder != nil {
		orderType.Limit = cfg.limitOrder
	}
	if cfg.triggerOrder != nil {
		orderType.Trigger = cfg.triggerOrder
	}
	if orderType.Limit == nil && orderType.Trigger == nil {
		panic("Failed to create OrderRequest. OrderType must be set")
	}

	return OrderRequest{
		coin:       coin,
		isBuy:      isBuy,
		size:       size,
		limitPx:    limitPx,
		orderType:  orderType,
		reduceOnly: cfg.reduceOnly,
		cloid:      cfg.cloid,
	}
}

// WithReduceOnly sets whether the order may only reduce an existing position.
func WithReduceOnly(reduceOnly bool) orderRequestOption {
	return func(cfg *orderRequestConfig) {
		cfg.reduceOnly = reduceOnly
	}
}

// WithCloid attaches a client order ID to the order.
func WithCloid(cloid types.Cloid) orderRequestOption {
	return func(cfg *orderRequestConfig) {
		cfg.cloid = mo.Some(cloid)
	}
}

// WithLimitOrder makes the order a limit order.
func WithLimitOrder(limit LimitOrder) orderRequestOption {
	return func(cfg *orderRequestConfig) {
		cfg.limitOrder = &limit
	}
}

// WithTriggerOrder makes the order a trigger order.
func WithTriggerOrder(trigger TriggerOrder) orderRequestOption {
	return func(cfg *orderRequestConfig) {
		cfg.triggerOrder = &trigger
	}
}

// orderWire is the wire format of an order as the venue hashes it. Field
// order matters: it fixes the msgpack map order.
type orderWire struct {
	A int64         `json:"a" msgpack:"a"`
	B bool          `json:"b" msgpack:"b"`
	P string        `json:"p" msgpack:"p"`
	S string        `json:"s" msgpack:"s"`
	R bool          `json:"r" msgpack:"r"`
	T orderTypeWire `json:"t" msgpack:"t"`
	C *types.Cloid  `json:"c,omitempty" msgpack:"c,omitempty"`
}

// toOrderWire converts an OrderRequest to an orderWire
func (o OrderRequest) toOrderWire(assetId int64) (orderWire, error) {
	size, err := utils.FloatToWire(o.size)
	if err != nil {
		return orderWire{}, fmt.Errorf("failed to convert size: %w", err)
	}
	limitPx, err := utils.FloatToWire(o.limitPx)
	if err != nil {
		return orderWire{}, fmt.Errorf("failed to convert limit price: %w", err)
	}
	orderType, err := o.orderType.toWire()
	if err != nil {
		return orderWire{}, fmt.Errorf("failed to convert order type: %w", err)
	}

	return orderWire{
		A: assetId,
		B: o.isBuy,
		P: limitPx,
		S: size,
		R: o.reduceOnly,
		T: orderType,
		C: o.cloid.ToPointer(),
	}, nil
}

type orderAction struct {
	Type     string        `json:"type" msgpack:"type"`
	Orders   []orderWire   `json:"orders" msgpack:"orders"`
	Grouping OrderGrouping `json:"grouping" msgpack:"grouping"`
	Builder  *builderWire  `json:"builder,omitempty" msgpack:"builder,omitempty"`
}

func (a orderAction) getType() string {
	return a.Type
}

func (a orderAction) signingScheme() signingScheme {
	return schemeAgent
}

type OrderGrouping string

const (
	OrderGroupingNA           = "na"
	OrderGroupingNormalTpSl   = "normalTpsl"
	OrderGroupingPositionTpSl = "positionTpsl"
)

// ordersToAction converts a slice of orderWires to an orderAction
func ordersToAction(orders []orderWire, builder mo.Option[BuilderInfo], grouping mo.Option[OrderGrouping]) orderAction {
	action := orderAction{
		Type:   "order",
		Orders: orders,
	}
	if g, ok := grouping.Get(); ok {
		action.Grouping = g
	} else {
		action.Grouping = OrderGroupingNA
	}
	action.Builder = optionMap(builder, BuilderInfo.toWire).ToPointer()
	return action
}

// ============================================================================
// Modify Request
// ============================================================================

type ModifyRequest struct {
	oid   mo.Option[int64]
	cloid mo.Option[types.Cloid]
	order OrderRequest
}

type modifyRequestConfig struct {
	oid   mo.Option[int64]
	cloid mo.Option[types.Cloid]
}

type modifyRequestOption func(*modifyRequestConfig)

// NewModifyRequest creates a modify request for the order identified by
// WithModifyOrderId or WithModifyCloid. The given order replaces it.
func NewModifyRequest(order OrderRequest, opts ...modifyRequestOption) ModifyRequest {
	cfg := modifyRequestConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.oid.IsAbsent() && cfg.cloid.IsAbsent() {
		panic("failed to create modify request. either order ID or CLOID must be provided")
	}

	return ModifyRequest{
		oid:   cfg.oid,
		cloid: cfg.cloid,
		order: order,
	}
}

// WithModifyOrderId identifies the order to modify by its order ID.
func WithModifyOrderId(oid int64) modifyRequestOption {
	return func(cfg *modifyRequestConfig) {
		cfg.oid = mo.Some(oid)
	}
}

// WithModifyCloid identifies the order to modify by its client order ID.
func WithModifyCloid(cloid types.Cloid) modifyRequestOption {
	return func(cfg *modifyRequestConfig) {
		cfg.cloid = mo.Some(cloid)
	}
}

type modifyWire struct {
	Oid   any       `json:"oid" msgpack:"oid"`
	Order orderWire `json:"order" msgpack:"order"`
}

// toModifyWire converts a ModifyRequest to a modifyWire
func (m ModifyRequest) toModifyWire(assetId int64) (modifyWire, error) {
	order, err := m.order.toOrderWire(assetId)
	if err != nil {
		return modifyWire{}, fmt.Errorf("failed to convert order: %w", err)
	}

	var oid any
	if id, ok := m.oid.Get(); ok {
		oid = id
	} else {
		oid = m.cloid.MustGet()
	}

	return modifyWire{
		Oid:   oid,
		Order: order,
	}, nil
}

type batchModifyAction struct {
	Type     string       `json:"type" msgpack:"type"`
	Modifies []modifyWire `json:"modifies" msgpack:"modifies"`
}

func (a batchModifyAction) getType() string {
	return a.Type
}

func (a batchModifyAction) signingScheme() signingScheme {
	return schemeAgent
}

// modifiesToAction converts a slice of modifyWires to a batchModifyAction
func modifiesToAction(modifies []modifyWire) batchModifyAction {
	return batchModifyAction{
		Type:     "batchModify",
		Modifies: modifies,
	}
}

// ============================================================================
// Cancel Request
// ============================================================================

type CancelRequest struct {
	Coin string
	Oid  int64
}

type cancelWire struct {
	AssetId int64 `json:"a" msgpack:"a"`
	Oid     int64 `json:"o" msgpack:"o"`
}

type cancelAction struct {
	Type    string       `json:"type" msgpack:"type"`
	Cancels []cancelWire `json:"cancels" msgpack:"cancels"`
}

func (a cancelAction) getType() string {
	return a.Type
}

func (a cancelAction) signingScheme() signingScheme {
	return schemeAgent
}

// cancelsToAction converts a slice of cancelWires to a cancelAction
func cancelsToAction(cancels []cancelWire) cancelAction {
	return cancelAction{
		Type:    "cancel",
		Cancels: cancels,
	}
}

// ============================================================================
// Cancel by CLOID Request
// ============================================================================

type CancelByCloidRequest struct {
	Coin  string
	Cloid types.Cloid
}

type cancelByCloidWire struct {
	AssetId int64       `json:"asset" msgpack:"asset"`
	Cloid   types.Cloid `json:"cloid" msgpack:"cloid"`
}

type cancelByCloidAction struct {
	Type    string              `json:"type" msgpack:"type"`
	Cancels []cancelByCloidWire `json:"cancels" msgpack:"cancels"`
}

func (a cancelByCloidAction) getType() string {
	return a.Type
}

func (a cancelByCloidAction) signingScheme() signingScheme {
	return schemeAgent
}

// cancelsByCloidToAction converts a slice of cancelByCloidWires to a cancelByCloidAction
func cancelsByCloidToAction(cancels []cancelByCloidWire) cancelByCloidAction {
	return cancelByCloidAction{
		Type:    "cancelByCloid",
		Cancels: cancels,
	}
}

// ============================================================================
// Update Leverage Request
// ============================================================================

type updateLeverageRequest struct {
	coin     string
	leverage int64
	isCross  mo.Option[bool]
}

type updateLeverageConfig struct {
	isCross mo.Option[bool]
}

type updateLeverageOption func(*updateLeverageConfig)

// WithIsCross sets whether to use cross margin (default is true)
func WithIsCross(isCross bool) updateLeverageOption {
	return func(cfg *updateLeverageConfig) {
		cfg.isCross = mo.Some(isCross)
	}
}

type updateLeverageAction struct {
	Type     string `json:"type" msgpack:"type"`
	Asset    int64  `json:"asset" msgpack:"asset"`
	IsCross  bool   `json:"isCross" msgpack:"isCross"`
	Leverage int64  `json:"leverage" msgpack:"leverage"`
}

func (a updateLeverageAction) getType() string {
	return a.Type
}

func (a updateLeverageAction) signingScheme() signingScheme {
	return schemeAgent
}

// toAction converts an updateLeverageRequest to an updateLeverageAction
func (u updateLeverageRequest) toAction(b *Builder, opts ...any) (action, error) {
	assetId, err := b.resolver.Resolve(u.coin)
	if err != nil {
		return nil, err
	}

	return updateLeverageAction{
		Type:     "updateLeverage",
		Asset:    assetId,
		IsCross:  u.isCross.OrElse(true),
		Leverage: u.leverage,
	}, nil
}

// ============================================================================
// Update Isolated Margin Request
// ============================================================================

type updateIsolatedMarginRequest struct {
	coin   string
	amount string
}

type updateIsolatedMarginAction struct {
	Type  string `json:"type" msgpack:"type"`
	Asset int64  `json:"asset" msgpack:"asset"`
	IsBuy bool   `json:"isBuy" msgpack:"isBuy"`
	Ntli  int64  `json:"ntli" msgpack:"ntli"`
}

func (a updateIsolatedMarginAction) getType() string {
	return a.Type
}

func (a updateIsolatedMarginAction) signingScheme() signingScheme {
	return schemeAgent
}

// toAction converts an updateIsolatedMarginRequest to an updateIsolatedMarginAction
func (u updateIsolatedMarginRequest) toAction(b *Builder, opts ...any) (action, error) {
	assetId, err := b.resolver.Resolve(u.coin)
	if err != nil {
		return nil, err
	}

	amount, err := utils.StringToFloat(u.amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q", ErrInvalidNumericField, u.amount)
	}
	ntli, err := utils.FloatToUsdInt(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to convert amount to USD: %w", err)
	}

	return updateIsolatedMarginAction{
		Type:  "updateIsolatedMargin",
		Asset: assetId,
		IsBuy: true,
		Ntli:  ntli,
	}, nil
}

// ============================================================================
// Vault Transfer Request
// ============================================================================

type vaultTransferRequest struct {
	vaultAddress common.Address
	isDeposit    bool
	usd          int64
}

type vaultTransferAction struct {
	Type         string `json:"type" msgpack:"type"`
	VaultAddress string `json:"vaultAddress" msgpack:"vaultAddress"`
	IsDeposit    bool   `json:"isDeposit" msgpack:"isDeposit"`
	Usd          int64  `json:"usd" msgpack:"usd"`
}

func (a vaultTransferAction) getType() string {
	return a.Type
}

func (a vaultTransferAction) signingScheme() signingScheme {
	return schemeAgent
}

// toAction converts a vaultTransferRequest to a vaultTransferAction
func (v vaultTransferRequest) toAction(b *Builder, opts ...any) (action, error) {
	return vaultTransferAction{
		Type:         "vaultTransfer",
		VaultAddress: strings.ToLower(v.vaultAddress.Hex()),
		IsDeposit:    v.isDeposit,
		Usd:          v.usd,
	}, nil
}

// ============================================================================
// USD Transfer Request
// ============================================================================

type usdTransferRequest struct {
	amount      string
	destination common.Address
}

type usdTransferAction struct {
	Type             string `json:"type"`
	Amount           string `json:"amount"`
	Destination      string `json:"destination"`
	Time             int64  `json:"time"`
	SignatureChainId string `json:"signatureChainId"`
	HyperliquidChain string `json:"hyperliquidChain"`
}

func (a usdTransferAction) getType() string {
	return a.Type
}

func (a usdTransferAction) signingScheme() signingScheme {
	return schemeUserSigned
}

func (a usdTransferAction) primaryType() string {
	return "HyperliquidTransaction:UsdSend"
}

func (a usdTransferAction) typedDataTypes() []apitypes.Type {
	return []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "destination", Type: "string"},
		{Name: "amount", Type: "string"},
		{Name: "time", Type: "uint64"},
	}
}

func (a usdTransferAction) typedDataMessage() apitypes.TypedDataMessage {
	return apitypes.TypedDataMessage{
		"hyperliquidChain": a.HyperliquidChain,
		"destination":      a.Destination,
		"amount":           a.Amount,
		"time":             big.NewInt(a.Time),
	}
}

// toAction converts a usdTransferRequest to a usdTransferAction
// Note: This requires timestamp (int64) in opts
func (u usdTransferRequest) toAction(b *Builder, opts ...any) (action, error) {
	// Extract timestamp from opts
	var timestamp int64
	for _, opt := range opts {
		if ts, ok := opt.(int64); ok {
			timestamp = ts
			break
		}
	}
	if timestamp == 0 {
		return nil, fmt.Errorf("timestamp is required in opts for usdTransferRequest")
	}

	if _, err := utils.StringToFloat(u.amount); err != nil {
		return nil, fmt.Errorf("%w: amount %q", ErrInvalidNumericField, u.amount)
	}

	return usdTransferAction{
		Type:             "usdSend",
		Amount:           u.amount,
		Destination:      strings.ToLower(u.destination.Hex()),
		Time:             timestamp,
		SignatureChainId: signatureChainId(b.rest.IsMainnet()),
		HyperliquidChain: b.rest.NetworkName(),
	}, nil
}

// ============================================================================
// Withdraw Request
// ============================================================================

type withdrawRequest struct {
	amount      string
	destination common.Address
}

type withdrawAction struct {
	Type             string `json:"type"`
	Destination      string `json:"destination"`
	Amount           string `json:"amount"`
	Time             int64  `json:"time"`
	SignatureChainId string `json:"signatureChainId"`
	HyperliquidChain string `json:"hyperliquidChain"`
}

func (a withdrawAction) getType() string {
	return a.Type
}

func (a withdrawAction) signingScheme() signingScheme {
	return schemeUserSigned
}

func (a withdrawAction) primaryType() string {
	return "HyperliquidTransaction:Withdraw"
}

func (a withdrawAction) typedDataTypes() []apitypes.Type {
	return []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "destination", Type: "string"},
		{Name: "amount", Type: "string"},
		{Name: "time", Type: "uint64"},
	}
}

func (a withdrawAction) typedDataMessage() apitypes.TypedDataMessage {
	return apitypes.TypedDataMessage{
		"hyperliquidChain": a.HyperliquidChain,
		"destination":      a.Destination,
		"amount":           a.Amount,
		"time":             big.NewInt(a.Time),
	}
}

// toAction converts a withdrawRequest to a withdrawAction
// Note: This requires timestamp (int64) in opts
func (w withdrawRequest) toAction(b *Builder, opts ...any) (action, error) {
	// Extract timestamp from opts
	var timestamp int64
	for _, opt := range opts {
		if ts, ok := opt.(int64); ok {
			timestamp = ts
			break
		}
	}
	if timestamp == 0 {
		return nil, fmt.Errorf("timestamp is required in opts for withdrawRequest")
	}

	if _, err := utils.StringToFloat(w.amount); err != nil {
		return nil, fmt.Errorf("%w: amount %q", ErrInvalidNumericField, w.amount)
	}

	return withdrawAction{
		Type:             "withdraw3",
		Destination:      strings.ToLower(w.destination.Hex()),
		Amount:           w.amount,
		Time:             timestamp,
		SignatureChainId: signatureChainId(b.rest.IsMainnet()),
		HyperliquidChain: b.rest.NetworkName(),
	}, nil
}

// ============================================================================
// Spot Transfer Request
// ============================================================================

type spotTransferRequest struct {
	amount      string
	destination common.Address
	token       string
}

type spotTransferAction struct {
	Type             string `json:"type"`
	Destination      string `json:"destination"`
	Token            string `json:"token"`
	Amount           string `json:"amount"`
	Time             int64  `json:"time"`
	SignatureChainId string `json:"signatureChainId"`
	HyperliquidChain string `json:"hyperliquidChain"`
}

func (a spotTransferAction) getType() string {
	return a.Type
}

func (a spotTransferAction) signingScheme() signingScheme {
	return schemeUserSigned
}

func (a spotTransferAction) primaryType() string {
	return "HyperliquidTransaction:SpotSend"
}

func (a spotTransferAction) typedDataTypes() []apitypes.Type {
	return []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "destination", Type: "string"},
		{Name: "token", Type: "string"},
		{Name: "amount", Type: "string"},
		{Name: "time", Type: "uint64"},
	}
}

func (a spotTransferAction) typedDataMessage() apitypes.TypedDataMessage {
	return apitypes.TypedDataMessage{
		"hyperliquidChain": a.HyperliquidChain,
		"destination":      a.Destination,
		"token":            a.Token,
		"amount":           a.Amount,
		"time":             big.NewInt(a.Time),
	}
}

// toAction converts a spotTransferRequest to a spotTransferAction
// Note: This requires timestamp (int64) in opts
func (s spotTransferRequest) toAction(b *Builder, opts ...any) (action, error) {
	// Extract timestamp from opts
	var timestamp int64
	for _, opt := range opts {
		if ts, ok := opt.(int64); ok {
			timestamp = ts
			break
		}
	}
	if timestamp == 0 {
		return nil, fmt.Errorf("timestamp is required in opts for spotTransferRequest")
	}

	if _, err := utils.StringToFloat(s.amount); err != nil {
		return nil, fmt.Errorf("%w: amount %q", ErrInvalidNumericField, s.amount)
	}

	return spotTransferAction{
		Type:             "spotSend",
		Destination:      strings.ToLower(s.destination.Hex()),
		Token:            s.token,
		Amount:           s.amount,
		Time:             timestamp,
		SignatureChainId: signatureChainId(b.rest.IsMainnet()),
		HyperliquidChain: b.rest.NetworkName(),
	}, nil
}

// ============================================================================
// Approve Agent Request
// ============================================================================

type approveAgentRequest struct {
	agentAddress common.Address
	agentName    mo.Option[string]
}

type approveAgentConfig struct {
	agentName mo.Option[string]
}

type approveAgentOption func(*approveAgentConfig)

// WithAgentName gives the agent a display name.
func WithAgentName(name string) approveAgentOption {
	return func(cfg *approveAgentConfig) {
		cfg.agentName = mo.Some(name)
	}
}

type approveAgentAction struct {
	Type             string `json:"type"`
	AgentAddress     string `json:"agentAddress"`
	AgentName        string `json:"agentName"`
	Nonce            int64  `json:"nonce"`
	SignatureChainId string `json:"signatureChainId"`
	HyperliquidChain string `json:"hyperliquidChain"`
}

func (a approveAgentAction) getType() string {
	return a.Type
}

func (a approveAgentAction) signingScheme() signingScheme {
	return schemeUserSigned
}

func (a approveAgentAction) primaryType() string {
	return "HyperliquidTransaction:ApproveAgent"
}

func (a approveAgentAction) typedDataTypes() []apitypes.Type {
	return []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "agentAddress", Type: "address"},
		{Name: "agentName", Type: "string"},
		{Name: "nonce", Type: "uint64"},
	}
}

func (a approveAgentAction) typedDataMessage() apitypes.TypedDataMessage {
	return apitypes.TypedDataMessage{
		"hyperliquidChain": a.HyperliquidChain,
		"agentAddress":     a.AgentAddress,
		"agentName":        a.AgentName,
		"nonce":            big.NewInt(a.Nonce),
	}
}

// toAction converts an approveAgentRequest to an approveAgentAction
// Note: This requires timestamp (int64) in opts
func (r approveAgentRequest) toAction(b *Builder, opts ...any) (action, error) {
	// Extract timestamp from opts
	var timestamp int64
	for _, opt := range opts {
		if ts, ok := opt.(int64); ok {
			timestamp = ts
			break
		}
	}
	if timestamp == 0 {
		return nil, fmt.Errorf("timestamp is required in opts for approveAgentRequest")
	}

	return approveAgentAction{
		Type:             "approveAgent",
		AgentAddress:     strings.ToLower(r.agentAddress.Hex()),
		AgentName:        r.agentName.OrElse(""),
		Nonce:            timestamp,
		SignatureChainId: signatureChainId(b.rest.IsMainnet()),
		HyperliquidChain: b.rest.NetworkName(),
	}, nil
}

// ============================================================================
// Approve Builder Fee Request
// ============================================================================

type approveBuilderFeeRequest struct {
	builder    common.Address
	maxFeeRate string
}

type approveBuilderFeeAction struct {
	Type             string `json:"type"`
	MaxFeeRate       string `json:"maxFeeRate"`
	Builder          string `json:"builder"`
	Nonce            int64  `json:"nonce"`
	SignatureChainId string `json:"signatureChainId"`
	HyperliquidChain string `json:"hyperliquidChain"`
}

func (a approveBuilderFeeAction) getType() string {
	return a.Type
}

func (a approveBuilderFeeAction) signingScheme() signingScheme {
	return schemeUserSigned
}

func (a approveBuilderFeeAction) primaryType() string {
	return "HyperliquidTransaction:ApproveBuilderFee"
}

func (a approveBuilderFeeAction) typedDataTypes() []apitypes.Type {
	return []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "maxFeeRate", Type: "string"},
		{Name: "builder", Type: "address"},
		{Name: "nonce", Type: "uint64"},
	}
}

func (a approveBuilderFeeAction) typedDataMessage() apitypes.TypedDataMessage {
	return apitypes.TypedDataMessage{
		"hyperliquidChain": a.HyperliquidChain,
		"maxFeeRate":       a.MaxFeeRate,
		"builder":          a.Builder,
		"nonce":            big.NewInt(a.Nonce),
	}
}

// toAction converts an approveBuilderFeeRequest to an approveBuilderFeeAction
// Note: This requires timestamp (int64) in opts
func (r approveBuilderFeeRequest) toAction(b *Builder, opts ...any) (action, error) {
	// Extract timestamp from opts
	var timestamp int64
	for _, opt := range opts {
		if ts, ok := opt.(int64); ok {
			timestamp = ts
			break
		}
	}
	if timestamp == 0 {
		return nil, fmt.Errorf("timestamp is required in opts for approveBuilderFeeRequest")
	}

	return approveBuilderFeeAction{
		Type:             "approveBuilderFee",
		MaxFeeRate:       r.maxFeeRate,
		Builder:          strings.ToLower(r.builder.Hex()),
		Nonce:            timestamp,
		SignatureChainId: signatureChainId(b.rest.IsMainnet()),
		HyperliquidChain: b.rest.NetworkName(),
	}, nil
}

func optionMap[T, U any](o mo.Option[T], f func(T) U) mo.Option[U] {
	if value, ok := o.Get(); ok {
		return mo.Some(f(value))
	}
	return mo.None[U]()
}
