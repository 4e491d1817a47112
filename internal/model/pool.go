package model

// Pool represents whirlpool metadata for storage.
type Pool struct {
	Address          string `json:"address"`
	TickSpacing      uint16 `json:"tick_spacing"`
	TokenMintA       string `json:"token_mint_a"`
	TokenMintB       string `json:"token_mint_b"`
	DecimalsA        uint8  `json:"decimals_a"`
	DecimalsB        uint8  `json:"decimals_b"`
	Liquidity        string `json:"liquidity"`
	SqrtPrice        string `json:"sqrt_price"`
	TickCurrentIndex int32  `json:"tick_current_index"`
}
