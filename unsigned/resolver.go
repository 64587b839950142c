package unsigned

import (
	"fmt"

	"github.com/corvan/hl-prepare/info"
)

// Spot pair indices are offset past the perp universe on the wire.
const SPOT_ASSET_OFFSET = 10000

// AssetResolver maps venue symbols to the asset indices actions carry on
// the wire. The mapping is built once from meta and spotMeta and never
// changes afterwards.
type AssetResolver struct {
	indexBySymbol map[string]int64
}

// NewAssetResolver indexes the perp universe by position and spot pairs at
// Index+10000. Each spot pair is inserted under a synthetic "BASE/QUOTE"
// alias and then under the venue pair name, so on a name collision the
// later insertion wins. Pairs referencing an unknown token are skipped.
func NewAssetResolver(meta *info.Meta, spotMeta *info.SpotMeta) *AssetResolver {
	indexBySymbol := make(
		map[string]int64,
		len(meta.Universe)+2*len(spotMeta.Universe),
	)

	for i, asset := range meta.Universe {
		indexBySymbol[asset.Name] = int64(i)
	}

	tokenNames := make(map[int]string, len(spotMeta.Tokens))
	for _, token := range spotMeta.Tokens {
		tokenNames[token.Index] = token.Name
	}

	for _, pair := range spotMeta.Universe {
		base, baseOk := tokenNames[pair.Tokens[0]]
		quote, quoteOk := tokenNames[pair.Tokens[1]]
		if !baseOk || !quoteOk {
			continue
		}

		index := int64(pair.Index + SPOT_ASSET_OFFSET)
		indexBySymbol[base+"/"+quote] = index
		indexBySymbol[pair.Name] = index
	}

	return &AssetResolver{indexBySymbol: indexBySymbol}
}

// Resolve returns the asset index for a symbol. Unknown symbols are an
// error, never a default index.
func (r *AssetResolver) Resolve(symbol string) (int64, error) {
	index, ok := r.indexBySymbol[symbol]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrSymbolNotFound, symbol)
	}
	return index, nil
}
