package info

import (
	"context"
	"errors"
	"testing"

	"github.com/corvan/hl-prepare/constants"
	"github.com/corvan/hl-prepare/rest"
)

// Mock REST client for testing
type mockRestClient struct {
	postFunc func(ctx context.Context, path string, body any, result any) error
	testnet  bool
}

var _ rest.ClientInterface = (*mockRestClient)(nil)

func (m *mockRestClient) Post(ctx context.Context, path string, body any, result any) error {
	return m.postFunc(ctx, path, body, result)
}

func (m *mockRestClient) BaseUrl() string {
	if m.testnet {
		return constants.TESTNET_API_URL
	}
	return constants.MAINNET_API_URL
}

func (m *mockRestClient) IsMainnet() bool {
	return !m.testnet
}

func (m *mockRestClient) NetworkName() string {
	if m.testnet {
		return "Testnet"
	}
	return "Mainnet"
}

func TestMetaSuccess(t *testing.T) {
	expectedMeta := &Meta{
		Universe: []AssetInfo{
			{Name: "BTC", SzDecimals: 8},
			{Name: "ETH", SzDecimals: 8},
		},
	}

	info := &Info{
		rest: &mockRestClient{
			postFunc: func(ctx context.Context, path string, body any, result any) error {
				if path != "/info" {
					t.Errorf("expected path /info, got %s", path)
				}
				req := body.(map[string]any)
				if req["type"] != "meta" {
					t.Errorf("expected type meta, got %v", req["type"])
				}
				if req["dex"] != "" {
					t.Errorf("expected empty dex, got %v", req["dex"])
				}
				*result.(*Meta) = *expectedMeta
				return nil
			},
		},
	}

	meta, err := info.Meta(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(meta.Universe) != len(expectedMeta.Universe) {
		t.Errorf("expected %d assets, got %d", len(expectedMeta.Universe), len(meta.Universe))
	}
}

func TestMetaDexPassthrough(t *testing.T) {
	info := &Info{
		rest: &mockRestClient{
			postFunc: func(ctx context.Context, path string, body any, result any) error {
				req := body.(map[string]any)
				if req["dex"] != "testdex" {
					t.Errorf("expected dex testdex, got %v", req["dex"])
				}
				return nil
			},
		},
	}

	if _, err := info.Meta(context.Background(), "testdex"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestMetaError(t *testing.T) {
	expectedErr := errors.New("network error")
	info := &Info{
		rest: &mockRestClient{
			postFunc: func(ctx context.Context, path string, body any, result any) error {
				return expectedErr
			},
		},
	}

	_, err := info.Meta(context.Background(), "")
	if err != expectedErr {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

func TestSpotMetaSuccess(t *testing.T) {
	expectedMeta := &SpotMeta{
		Universe: []SpotAssetInfo{
			{Name: "PURR/USDC", Tokens: [2]int{1, 0}, Index: 0, IsCanonical: true},
		},
		Tokens: []SpotTokenInfo{
			{Name: "USDC", SzDecimals: 8, WeiDecimals: 8, Index: 0, TokenId: "0x6d1e7cde53ba9467b783cb7c530ce054", IsCanonical: true},
			{Name: "PURR", SzDecimals: 0, WeiDecimals: 5, Index: 1, TokenId: "0xc1fb593aeffbeb02f85e0308e9956a90", IsCanonical: true},
		},
	}

	info := &Info{
		rest: &mockRestClient{
			postFunc: func(ctx context.Context, path string, body any, result any) error {
				req := body.(map[string]any)
				if req["type"] != "spotMeta" {
					t.Errorf("expected type spotMeta, got %v", req["type"])
				}
				*result.(*SpotMeta) = *expectedMeta
				return nil
			},
		},
	}

	meta, err := info.SpotMeta(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(meta.Universe) != 1 {
		t.Errorf("expected 1 pair, got %d", len(meta.Universe))
	}
	if len(meta.Tokens) != 2 {
		t.Errorf("expected 2 tokens, got %d", len(meta.Tokens))
	}
}

func TestSpotMetaError(t *testing.T) {
	expectedErr := errors.New("network error")
	info := &Info{
		rest: &mockRestClient{
			postFunc: func(ctx context.Context, path string, body any, result any) error {
				return expectedErr
			},
		},
	}

	_, err := info.SpotMeta(context.Background())
	if err != expectedErr {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}
