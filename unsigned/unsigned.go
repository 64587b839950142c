// Package unsigned converts typed trading intents into the components an
// external signer needs: the canonical JSON action payload and the digest
// that must be signed to authorize it. No key material enters the package;
// signing and posting stay with the caller.
package unsigned

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/mo"
	"golang.org/x/sync/errgroup"

	"github.com/corvan/hl-prepare/constants"
	"github.com/corvan/hl-prepare/info"
	"github.com/corvan/hl-prepare/rest"
	"github.com/corvan/hl-prepare/types"
)

// Config for initializing the Builder
type Config struct {
	BaseURL string
	Timeout uint
	// VaultAddress routes agent-signed actions to a vault or subaccount.
	// Leave zero to act on the signer's own account.
	VaultAddress common.Address
	// Meta and SpotMeta override the fetched metadata snapshots. With both
	// set, construction performs no network calls.
	Meta     *info.Meta
	SpotMeta *info.SpotMeta
	// NonceSource overrides the default timestamp nonce source.
	NonceSource NonceSource
}

// Builder prepares unsigned transactions for the venue. Methods return the
// canonical payload and digest; the caller signs the digest and posts the
// payload with its own tooling.
type Builder struct {
	rest     rest.ClientInterface
	resolver *AssetResolver
	vault    mo.Option[common.Address]
	nonces   NonceSource
}

// New creates a Builder, fetching whichever metadata snapshot the config
// does not override.
func New(ctx context.Context, cfg Config) (*Builder, error) {
	restClient := rest.New(rest.Config{
		BaseUrl: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})

	return NewWithClient(ctx, restClient, cfg)
}

// NewWithClient creates a Builder on an existing transport.
func NewWithClient(ctx context.Context, client rest.ClientInterface, cfg Config) (*Builder, error) {
	meta := cfg.Meta
	spotMeta := cfg.SpotMeta

	if meta == nil || spotMeta == nil {
		infoClient := info.NewWithClient(client)

		g, gctx := errgroup.WithContext(ctx)
		if meta == nil {
			g.Go(func() error {
				m, err := infoClient.Meta(gctx, "")
				if err != nil {
					return fmt.Errorf("failed to fetch meta: %w", err)
				}
				meta = m
				return nil
			})
		}
		if spotMeta == nil {
			g.Go(func() error {
				sm, err := infoClient.SpotMeta(gctx)
				if err != nil {
					return fmt.Errorf("failed to fetch spot meta: %w", err)
				}
				spotMeta = sm
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	var vault mo.Option[common.Address]
	if cfg.VaultAddress != constants.ZERO_ADDRESS {
		vault = mo.Some(cfg.VaultAddress)
	}

	nonces := cfg.NonceSource
	if nonces == nil {
		nonces = NewTimestampNonceSource()
	}

	return &Builder{
		rest:     client,
		resolver: NewAssetResolver(meta, spotMeta),
		vault:    vault,
		nonces:   nonces,
	}, nil
}

// Resolver returns the symbol table built at construction.
func (b *Builder) Resolver() *AssetResolver {
	return b.resolver
}

// prepare runs the shared pipeline: derive the digest under the action's
// signing scheme, then marshal the canonical payload.
func (b *Builder) prepare(a action, nonce uint64) (*UnsignedTransaction, error) {
	var (
		digest           common.Hash
		err              error
		domainChain      mo.Option[int64]
		hyperliquidChain mo.Option[string]
		vault            mo.Option[common.Address]
	)

	switch a.signingScheme() {
	case schemeAgent:
		digest, err = agentDigest(a, b.vault, nonce)
		domainChain = mo.Some[int64](constants.AGENT_CHAIN_ID)
		vault = b.vault
	case schemeUserSigned:
		isMainnet := b.rest.IsMainnet()
		digest, err = userSignedDigest(a.(userSignedAction), isMainnet)
		domainChain = mo.Some(domainChainId(isMainnet))
		hyperliquidChain = mo.Some(b.rest.NetworkName())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash %s action: %w", a.getType(), err)
	}

	payload, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal %s action: %v", ErrSerialization, a.getType(), err)
	}

	return &UnsignedTransaction{
		ActionPayload:    payload,
		Nonce:            nonce,
		DigestToSign:     digest,
		VaultAddress:     vault,
		DomainChainId:    domainChain,
		HyperliquidChain: hyperliquidChain,
		IsAgentSignature: a.signingScheme() == schemeAgent,
	}, nil
}

// prepareUserSigned draws one nonce and threads it through both the action
// fields and the component, keeping the embedded time and the nonce
// identical.
func (b *Builder) prepareUserSigned(req request) (*UnsignedTransaction, error) {
	nonce := b.nonces.Next()
	a, err := req.toAction(b, int64(nonce))
	if err != nil {
		return nil, err
	}

	return b.prepare(a, nonce)
}

// PrepareOrder prepares a single order
func (b *Builder) PrepareOrder(order OrderRequest, opts ...CreateOrderOption) (*UnsignedTransaction, error) {
	return b.PrepareOrders([]OrderRequest{order}, opts...)
}

// PrepareOrders prepares multiple orders as a single transaction
func (b *Builder) PrepareOrders(orders []OrderRequest, opts ...CreateOrderOption) (*UnsignedTransaction, error) {
	if len(orders) == 0 {
		return nil, fmt.Errorf("at least one order is required")
	}

	cfg := createOrderConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	orderWires := make([]orderWire, len(orders))
	for i, order := range orders {
		assetId, err := b.resolver.Resolve(order.coin)
		if err != nil {
			return nil, err
		}

		wire, err := order.toOrderWire(assetId)
		if err != nil {
			return nil, fmt.Errorf("failed to convert order %d: %w", i, err)
		}
		orderWires[i] = wire
	}

	action := ordersToAction(orderWires, cfg.builder, cfg.grouping)

	return b.prepare(action, b.nonces.Next())
}

// PrepareCancel prepares a single cancel by order ID
func (b *Builder) PrepareCancel(coin string, oid int64) (*UnsignedTransaction, error) {
	return b.PrepareCancels([]CancelRequest{{Coin: coin, Oid: oid}})
}

// PrepareCancels prepares multiple cancels as a single transaction
func (b *Builder) PrepareCancels(cancels []CancelRequest) (*UnsignedTransaction, error) {
	if len(cancels) == 0 {
		return nil, fmt.Errorf("at least one cancel is required")
	}

	cancelWires := make([]cancelWire, len(cancels))
	for i, cancel := range cancels {
		assetId, err := b.resolver.Resolve(cancel.Coin)
		if err != nil {
			return nil, err
		}

		cancelWires[i] = cancelWire{AssetId: assetId, Oid: cancel.Oid}
	}

	return b.prepare(cancelsToAction(cancelWires), b.nonces.Next())
}

// PrepareCancelByCloid prepares a single cancel by client order ID
func (b *Builder) PrepareCancelByCloid(coin string, cloid types.Cloid) (*UnsignedTransaction, error) {
	return b.PrepareCancelsByCloid([]CancelByCloidRequest{{Coin: coin, Cloid: cloid}})
}

// PrepareCancelsByCloid prepares multiple cancels by client order ID as a
// single transaction
func (b *Builder) PrepareCancelsByCloid(cancels []CancelByCloidRequest) (*UnsignedTransaction, error) {
	if len(cancels) == 0 {
		return nil, fmt.Errorf("at least one cancel is required")
	}

	cancelWires := make([]cancelByCloidWire, len(cancels))
	for i, cancel := range cancels {
		assetId, err := b.resolver.Resolve(cancel.Coin)
		if err != nil {
			return nil, err
		}

		cancelWires[i] = cancelByCloidWire{AssetId: assetId, Cloid: cancel.Cloid}
	}

	return b.prepare(cancelsByCloidToAction(cancelWires), b.nonces.Next())
}

// PrepareModifyOrder prepares a single order modification
func (b *Builder) PrepareModifyOrder(modify ModifyRequest) (*UnsignedTransaction, error) {
	return b.PrepareBatchModify([]ModifyRequest{modify})
}

// PrepareBatchModify prepares multiple order modifications as a single
// transaction
func (b *Builder) PrepareBatchModify(modifies []ModifyRequest) (*UnsignedTransaction, error) {
	if len(modifies) == 0 {
		return nil, fmt.Errorf("at least one modify is required")
	}

	modifyWires := make([]modifyWire, len(modifies))
	for i, modify := range modifies {
		assetId, err := b.resolver.Resolve(modify.order.coin)
		if err != nil {
			return nil, err
		}

		wire, err := modify.toModifyWire(assetId)
		if err != nil {
			return nil, fmt.Errorf("failed to convert modify %d: %w", i, err)
		}
		modifyWires[i] = wire
	}

	return b.prepare(modifiesToAction(modifyWires), b.nonces.Next())
}

// PrepareUpdateLeverage prepares a leverage change for an asset
func (b *Builder) PrepareUpdateLeverage(coin string, leverage int64, opts ...updateLeverageOption) (*UnsignedTransaction, error) {
	cfg := updateLeverageConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	req := updateLeverageRequest{coin: coin, leverage: leverage, isCross: cfg.isCross}
	a, err := req.toAction(b)
	if err != nil {
		return nil, err
	}

	return b.prepare(a, b.nonces.Next())
}

// PrepareUpdateIsolatedMargin prepares an isolated margin top-up for an
// asset. amount is a decimal USD string; negative values remove margin.
func (b *Builder) PrepareUpdateIsolatedMargin(coin string, amount string) (*UnsignedTransaction, error) {
	req := updateIsolatedMarginRequest{coin: coin, amount: amount}
	a, err := req.toAction(b)
	if err != nil {
		return nil, err
	}

	return b.prepare(a, b.nonces.Next())
}

// PrepareVaultTransfer prepares a deposit to or withdrawal from a vault.
// usd is in USDC base units (6 decimals).
func (b *Builder) PrepareVaultTransfer(vaultAddress common.Address, isDeposit bool, usd int64) (*UnsignedTransaction, error) {
	req := vaultTransferRequest{vaultAddress: vaultAddress, isDeposit: isDeposit, usd: usd}
	a, err := req.toAction(b)
	if err != nil {
		return nil, err
	}

	return b.prepare(a, b.nonces.Next())
}

// PrepareUsdTransfer prepares a USDC transfer to another venue account.
// amount is a decimal USD string.
func (b *Builder) PrepareUsdTransfer(destination common.Address, amount string) (*UnsignedTransaction, error) {
	return b.prepareUserSigned(usdTransferRequest{amount: amount, destination: destination})
}

// PrepareWithdraw prepares a withdrawal to the settlement chain.
// amount is a decimal USD string.
func (b *Builder) PrepareWithdraw(destination common.Address, amount string) (*UnsignedTransaction, error) {
	return b.prepareUserSigned(withdrawRequest{amount: amount, destination: destination})
}

// PrepareSpotTransfer prepares a spot token transfer to another venue
// account. token is the venue token identifier, eg. "PURR:0xc1fb593ae..."
func (b *Builder) PrepareSpotTransfer(destination common.Address, token string, amount string) (*UnsignedTransaction, error) {
	return b.prepareUserSigned(spotTransferRequest{amount: amount, destination: destination, token: token})
}

// PrepareApproveAgent prepares approval of a delegated agent key
func (b *Builder) PrepareApproveAgent(agentAddress common.Address, opts ...approveAgentOption) (*UnsignedTransaction, error) {
	cfg := approveAgentConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return b.prepareUserSigned(approveAgentRequest{agentAddress: agentAddress, agentName: cfg.agentName})
}

// PrepareApproveBuilderFee prepares approval of a builder fee cap.
// maxFeeRate is a percent string, eg. "0.001%".
func (b *Builder) PrepareApproveBuilderFee(builder common.Address, maxFeeRate string) (*UnsignedTransaction, error) {
	return b.prepareUserSigned(approveBuilderFeeRequest{builder: builder, maxFeeRate: maxFeeRate})
}
