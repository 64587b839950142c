package info

// AssetInfo describes one perpetual contract in the venue universe. Its
// position in Meta.Universe is the asset index actions reference.
type AssetInfo struct {
	Name       string `json:"name"`
	SzDecimals int    `json:"szDecimals"`
}

// Meta is the perpetuals metadata feed.
type Meta struct {
	Universe []AssetInfo `json:"universe"`
}

// SpotAssetInfo describes one spot trading pair. Tokens holds the base
// and quote token indices into SpotMeta.Tokens.
type SpotAssetInfo struct {
	Name        string `json:"name"`
	Tokens      [2]int `json:"tokens"`
	Index       int    `json:"index"`
	IsCanonical bool   `json:"isCanonical"`
}

// SpotTokenInfo describes one spot token.
type SpotTokenInfo struct {
	Name        string  `json:"name"`
	SzDecimals  int     `json:"szDecimals"`
	WeiDecimals int     `json:"weiDecimals"`
	Index       int     `json:"index"`
	TokenId     string  `json:"tokenId"`
	IsCanonical bool    `json:"isCanonical"`
	EvmContract *string `json:"evmContract"`
	FullName    *string `json:"fullName"`
}

// SpotMeta is the spot metadata feed.
type SpotMeta struct {
	Universe []SpotAssetInfo `json:"universe"`
	Tokens   []SpotTokenInfo `json:"tokens"`
}
