package unsigned

import (
	"errors"
	"testing"

	"github.com/corvan/hl-prepare/info"
)

func testMeta() *info.Meta {
	return &info.Meta{
		Universe: []info.AssetInfo{
			{Name: "BTC", SzDecimals: 5},
			{Name: "ETH", SzDecimals: 4},
			{Name: "SOL", SzDecimals: 2},
		},
	}
}

func testSpotMeta() *info.SpotMeta {
	return &info.SpotMeta{
		Universe: []info.SpotAssetInfo{
			{Name: "PURR/USDC", Tokens: [2]int{1, 0}, Index: 0, IsCanonical: true},
			{Name: "@107", Tokens: [2]int{150, 0}, Index: 107},
			// References a token index that does not exist.
			{Name: "@42", Tokens: [2]int{99, 0}, Index: 42},
		},
		Tokens: []info.SpotTokenInfo{
			{Name: "USDC", Index: 0, IsCanonical: true},
			{Name: "PURR", Index: 1, IsCanonical: true},
			{Name: "HYPE", Index: 150},
		},
	}
}

func TestResolvePerpByPosition(t *testing.T) {
	resolver := NewAssetResolver(testMeta(), testSpotMeta())

	cases := []struct {
		symbol string
		want   int64
	}{
		{"BTC", 0},
		{"ETH", 1},
		{"SOL", 2},
	}

	for _, tc := range cases {
		got, err := resolver.Resolve(tc.symbol)
		if err != nil {
			t.Fatalf("Resolve(%q) returned error: %v", tc.symbol, err)
		}
		if got != tc.want {
			t.Errorf("Resolve(%q) = %d, want %d", tc.symbol, got, tc.want)
		}
	}
}

func TestResolveSpotPair(t *testing.T) {
	resolver := NewAssetResolver(testMeta(), testSpotMeta())

	cases := []struct {
		symbol string
		want   int64
	}{
		{"PURR/USDC", 10000},
		{"@107", 10107},
		{"HYPE/USDC", 10107},
	}

	for _, tc := range cases {
		got, err := resolver.Resolve(tc.symbol)
		if err != nil {
			t.Fatalf("Resolve(%q) returned error: %v", tc.symbol, err)
		}
		if got != tc.want {
			t.Errorf("Resolve(%q) = %d, want %d", tc.symbol, got, tc.want)
		}
	}
}

func TestResolveUnknownSymbol(t *testing.T) {
	resolver := NewAssetResolver(testMeta(), testSpotMeta())

	_, err := resolver.Resolve("DOGE")
	if !errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("expected ErrSymbolNotFound, got %v", err)
	}
}

func TestResolveSkipsPairsWithUnknownTokens(t *testing.T) {
	resolver := NewAssetResolver(testMeta(), testSpotMeta())

	if _, err := resolver.Resolve("@42"); !errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("expected pair with unknown token to be skipped, got %v", err)
	}
}

// Spot pairs are inserted after the perp universe, so a name collision
// resolves to the spot index.
func TestResolveSpotShadowsPerpOnCollision(t *testing.T) {
	meta := &info.Meta{
		Universe: []info.AssetInfo{
			{Name: "BTC", SzDecimals: 5},
			{Name: "PURR/USDC", SzDecimals: 2},
		},
	}

	resolver := NewAssetResolver(meta, testSpotMeta())

	got, err := resolver.Resolve("PURR/USDC")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != 10000 {
		t.Errorf("expected spot index 10000 to win, got %d", got)
	}
}
